package model

import "errors"

var (
	// ErrInvalidSignature indicates the delivery signature did not match.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidPayload indicates the delivery body could not be parsed.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrNoLinkedBounty indicates no bounty matches the issue referenced by
	// the pull request.
	ErrNoLinkedBounty = errors.New("no bounty linked to pull request")
)

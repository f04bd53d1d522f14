package model

import "errors"

var (
	// ErrContributorNotFound indicates that the requested contributor does not exist.
	ErrContributorNotFound = errors.New("contributor not found")
	// ErrWalletAlreadyBound indicates that the wallet address is already bound to a contributor.
	ErrWalletAlreadyBound = errors.New("wallet address already bound")
	// ErrInvalidWalletAddress indicates that the provided wallet address is invalid.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	// ErrContributorExists indicates that a contributor with the external id already exists.
	ErrContributorExists = errors.New("contributor already exists")
)

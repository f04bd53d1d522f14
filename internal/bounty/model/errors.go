package model

import "errors"

var (
	// ErrBountyNotFound indicates that the requested bounty does not exist.
	ErrBountyNotFound = errors.New("bounty not found")
	// ErrBountyExists indicates that a bounty for the issue URL already exists.
	ErrBountyExists = errors.New("bounty already exists for issue")
	// ErrInvalidBountyID indicates that the provided bounty id is invalid (e.g., empty).
	ErrInvalidBountyID = errors.New("invalid bounty ID")
	// ErrMissingFields indicates that required creation fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrEscrowAlreadyCreated indicates a second fund attempt for an already funded bounty.
	ErrEscrowAlreadyCreated = errors.New("escrow already created")
	// ErrEscrowNotFound indicates a release attempt for an unfunded or unknown bounty.
	ErrEscrowNotFound = errors.New("escrow not found for bounty")
	// ErrEscrowRejected indicates that the payment network refused the operation.
	ErrEscrowRejected = errors.New("escrow operation rejected")
)

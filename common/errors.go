package common

import "errors"

// Entry-point assertion failures. All of them abort the invocation before
// any state mutation and before any call is scheduled.
var (
	// ErrAlreadyInitialized appears when init is called on an already
	// initialized contract instance.
	ErrAlreadyInitialized = errors.New("contract is already initialized")
	// ErrNotInitialized appears when a method requiring initialization is
	// called before init.
	ErrNotInitialized = errors.New("contract must be initialized first")
	// ErrInsufficientStake appears when the attached deposit is below the
	// minimum account balance required to cover storage staking.
	ErrInsufficientStake = errors.New("minimum account balance must be attached")
	// ErrInvalidAccountName appears when a derived child account name does
	// not satisfy the chain's account-name grammar.
	ErrInvalidAccountName = errors.New("invalid account name")
	// ErrAccountAlreadyExists appears when the derived child account is
	// already registered.
	ErrAccountAlreadyExists = errors.New("donation account already exists")
	// ErrBelowMinimumDonation appears when the attached deposit is below
	// the minimum accepted donation.
	ErrBelowMinimumDonation = errors.New("minimum donation must be attached")
	// ErrInsufficientBalance appears when a withdrawal exceeds the ledger
	// balance.
	ErrInsufficientBalance = errors.New("amount is more than balance")
	// ErrUnauthorized appears when the caller fails the method's
	// authorization predicate.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPageOutOfRange appears when a donations page has no records.
	ErrPageOutOfRange = errors.New("page does not exist")
)

package donate

import "github.com/opendonate/donation-contract/runtime"

// Donation is an immutable record of one confirmed donation. It is created
// only in the success branch of the donation continuation and never
// mutated or deleted afterwards.
type Donation struct {
	Donor     runtime.AccountID `json:"donor"`
	Amount    runtime.Amount    `json:"amount"`
	Timestamp uint64            `json:"timestamp"`
}

// InitArgs are the arguments of the init entry point. Owners defaults to
// the transaction signer when empty.
type InitArgs struct {
	FactoryAccount runtime.AccountID   `json:"factory_account"`
	Owners         []runtime.AccountID `json:"owners,omitempty"`
}

// DonateArgs carry the pending donation through the fee-forwarding
// continuation: the net amount to credit and the original donor. The donor
// travels in the args because the continuation's caller is the contract
// itself, not the donor.
type DonateArgs struct {
	Donor  runtime.AccountID `json:"donor"`
	Amount runtime.Amount    `json:"amount"`
}

// WithdrawArgs are the arguments of withdraw_donations.
type WithdrawArgs struct {
	Amount runtime.Amount `json:"amount"`
}

// DonationsWithdrawnArgs carry the in-flight withdrawal amount through the
// transfer continuation.
type DonationsWithdrawnArgs struct {
	Amount runtime.Amount `json:"amount"`
}

// GetDonationsArgs are the arguments of get_donations. A nil page requests
// the full listing.
type GetDonationsArgs struct {
	Page *uint32 `json:"page,omitempty"`
}

package factory

import "github.com/opendonate/donation-contract/runtime"

// InitArgs are the arguments of the init entry point. Owners defaults to
// the transaction signer when empty.
type InitArgs struct {
	Owners []runtime.AccountID `json:"owners,omitempty"`
}

// AccountCreatedArgs carry the derived child identifier through the
// provisioning continuation.
type AccountCreatedArgs struct {
	Account runtime.AccountID `json:"account"`
}

// WithdrawFeesArgs are the arguments of withdraw_fees.
type WithdrawFeesArgs struct {
	Amount runtime.Amount `json:"amount"`
}

// FeesWithdrawnArgs carry the in-flight fee withdrawal through the
// transfer continuation.
type FeesWithdrawnArgs struct {
	Owner  runtime.AccountID `json:"owner"`
	Amount runtime.Amount    `json:"amount"`
}

package common

import "github.com/opendonate/donation-contract/runtime"

// DebitStrategy selects how a withdrawal entry point accounts for the
// asynchronous transfer it dispatches.
type DebitStrategy int

const (
	// DeferredDebit dispatches the transfer first and debits the ledger
	// only in the Success branch of the continuation.
	DeferredDebit DebitStrategy = iota
	// OptimisticDebit debits the ledger before dispatching and credits the
	// amount back if the transfer fails.
	OptimisticDebit
)

// OutcomeHandler carries the reaction to each promise outcome tag. Nil
// branches are no-ops.
type OutcomeHandler struct {
	OnPending func()
	OnSuccess func(payload []byte)
	OnFailure func()
	// OnUnknown handles outcome tags outside the three known states. Such
	// values are logged as unexpected and never escalate.
	OnUnknown func(status runtime.PromiseStatus)
}

// HandleOutcome drives the three-way outcome switch shared by every
// money-moving continuation.
func HandleOutcome(res runtime.PromiseResult, h OutcomeHandler) {
	switch res.Status {
	case runtime.NotReady:
		if h.OnPending != nil {
			h.OnPending()
		}
	case runtime.Succeeded:
		if h.OnSuccess != nil {
			h.OnSuccess(res.Payload)
		}
	case runtime.Failed:
		if h.OnFailure != nil {
			h.OnFailure()
		}
	default:
		if h.OnUnknown != nil {
			h.OnUnknown(res.Status)
		}
	}
}

package runtime

import "errors"

// AccountID is the unique name of an account in the chain's hierarchical
// namespace, e.g. "donate.myorg.chain".
type AccountID = string

// Gas is a computation budget attached to a scheduled function call.
type Gas = uint64

// ErrUnknownMethod is returned by contract dispatch when the requested
// entry point does not exist.
var ErrUnknownMethod = errors.New("unknown method")

// Env is the execution context the host passes into every entry-point
// invocation. Scheduling is deferred: batches registered through Batch are
// submitted by the host only if the entry point returns without error.
type Env interface {
	// CurrentAccount is the account the code is executing on.
	CurrentAccount() AccountID
	// Predecessor is the immediate caller of this invocation.
	Predecessor() AccountID
	// Signer is the account that signed the originating transaction.
	Signer() AccountID
	// SignerPublicKey is the base58-encoded public key of the signer.
	SignerPublicKey() string
	// AttachedDeposit is the token value bundled with this call. It has
	// already been credited to the current account when the code runs.
	AttachedDeposit() Amount
	// BlockTimestamp is the current block time in nanoseconds.
	BlockTimestamp() uint64

	// Storage is the persistent key/value store of the current account.
	Storage() Storage

	// Batch registers a new action batch against the target account and
	// returns its builder.
	Batch(target AccountID) *PromiseBatch
	// PromiseResults returns the resolved outcomes of the calls this
	// invocation was scheduled to follow. It is empty outside of
	// continuation entry points.
	PromiseResults() []PromiseResult

	// Log emits a human-readable log line attributed to the contract.
	Log(msg string)
}

// Contract is the dispatch surface the host invokes entry points through.
// Args and results are raw JSON.
type Contract interface {
	Invoke(env Env, method string, args []byte) ([]byte, error)
}

// Storage is per-account persistent key/value storage. Get returns nil for
// absent keys; an empty value is distinguishable from absence via Has.
type Storage interface {
	Get(key []byte) []byte
	Put(key, value []byte)
	Has(key []byte) bool
	Delete(key []byte)
}

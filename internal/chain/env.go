package chain

import (
	"go.uber.org/zap"

	"github.com/opendonate/donation-contract/runtime"
)

// env binds one entry-point invocation to the chain. It implements
// runtime.Env. Batches registered through it are enqueued by the caller
// only if the invocation returns without error.
type env struct {
	chain           *Chain
	account         *Account
	predecessor     runtime.AccountID
	signer          runtime.AccountID
	signerPublicKey string
	deposit         runtime.Amount
	results         []runtime.PromiseResult
	batches         []*runtime.PromiseBatch
}

func (e *env) CurrentAccount() runtime.AccountID { return e.account.id }
func (e *env) Predecessor() runtime.AccountID    { return e.predecessor }
func (e *env) Signer() runtime.AccountID         { return e.signer }
func (e *env) SignerPublicKey() string           { return e.signerPublicKey }
func (e *env) AttachedDeposit() runtime.Amount   { return e.deposit }
func (e *env) BlockTimestamp() uint64            { return e.chain.now }
func (e *env) Storage() runtime.Storage          { return e.account.storage }

func (e *env) Batch(target runtime.AccountID) *runtime.PromiseBatch {
	b := &runtime.PromiseBatch{Target: target}
	e.batches = append(e.batches, b)
	return b
}

func (e *env) PromiseResults() []runtime.PromiseResult {
	return e.results
}

func (e *env) Log(msg string) {
	e.chain.log.Info("contract log",
		zap.String("account", e.account.id),
		zap.String("message", msg))
}

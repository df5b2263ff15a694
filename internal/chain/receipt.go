package chain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"github.com/opendonate/donation-contract/runtime"
)

// receipt is one scheduled action batch awaiting execution. results holds
// the resolved outcomes of the receipts this one was chained after.
type receipt struct {
	id              string
	predecessor     runtime.AccountID
	signer          runtime.AccountID
	signerPublicKey string
	batch           *runtime.PromiseBatch
	results         []runtime.PromiseResult
}

func newReceipt(predecessor, signer runtime.AccountID, signerPK string, batch *runtime.PromiseBatch, results []runtime.PromiseResult) *receipt {
	return &receipt{
		id:              uuid.NewString(),
		predecessor:     predecessor,
		signer:          signer,
		signerPublicKey: signerPK,
		batch:           batch,
		results:         results,
	}
}

func (c *Chain) enqueue(r *receipt) {
	c.queue = append(c.queue, r)
}

// drain resolves queued receipts in FIFO order. Failures of non-root
// receipts are outcomes, not errors; they are logged and surface to
// contracts only through continuation results.
func (c *Chain) drain() {
	for len(c.queue) > 0 {
		r := c.queue[0]
		c.queue = c.queue[1:]
		if _, err := c.resolve(r); err != nil {
			c.log.Info("receipt failed",
				zap.String("receipt", r.id),
				zap.String("target", r.batch.Target),
				zap.Error(err))
		}
	}
}

// resolve executes a receipt's batch and, if a continuation is chained,
// enqueues it carrying this batch's final outcome.
func (c *Chain) resolve(r *receipt) (runtime.PromiseResult, error) {
	c.now += blockInterval

	result, err := c.executeBatch(r)

	if next := r.batch.Next; next != nil {
		c.enqueue(newReceipt(r.predecessor, r.signer, r.signerPublicKey, next, []runtime.PromiseResult{result}))
	}
	return result, err
}

// executeBatch applies the batch's actions in order against its target.
// The batch is atomic: the first failing action rolls back every effect of
// the batch, including receipts it enqueued and deposits it moved, and the
// whole batch resolves to Failed.
func (c *Chain) executeBatch(r *receipt) (runtime.PromiseResult, error) {
	target := r.batch.Target

	var undo []func()
	queued := len(c.queue)
	fail := func(err error) (runtime.PromiseResult, error) {
		c.queue = c.queue[:queued]
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		return runtime.PromiseResult{Status: runtime.Failed}, err
	}

	var payload []byte
	for _, act := range r.batch.Actions {
		switch act.Kind {
		case runtime.ActionCreateAccount:
			if !runtime.IsValidAccountID(target) {
				return fail(fmt.Errorf("create account %q: invalid account name", target))
			}
			if _, ok := c.accounts[target]; ok {
				return fail(fmt.Errorf("create account %q: already exists", target))
			}
			c.accounts[target] = newAccount(target)
			undo = append(undo, func() { delete(c.accounts, target) })

		case runtime.ActionDeployContract:
			acc, err := c.existing(target)
			if err != nil {
				return fail(err)
			}
			factory, ok := c.programs[string(act.Code)]
			if !ok {
				return fail(fmt.Errorf("deploy to %q: unknown program image %q", target, act.Code))
			}
			prevContract, prevCode := acc.contract, acc.code
			acc.contract = factory()
			acc.code = append([]byte(nil), act.Code...)
			undo = append(undo, func() { acc.contract, acc.code = prevContract, prevCode })

		case runtime.ActionAddFullAccessKey:
			acc, err := c.existing(target)
			if err != nil {
				return fail(err)
			}
			key := base58.Encode(act.PublicKey)
			if _, ok := acc.keys[key]; !ok {
				acc.keys[key] = struct{}{}
				undo = append(undo, func() { delete(acc.keys, key) })
			}

		case runtime.ActionTransfer:
			from, amount := r.predecessor, act.Amount
			if err := c.move(from, target, amount); err != nil {
				return fail(err)
			}
			undo = append(undo, func() { _ = c.move(target, from, amount) })

		case runtime.ActionFunctionCall:
			acc, err := c.existing(target)
			if err != nil {
				return fail(err)
			}
			from, deposit := r.predecessor, act.Deposit
			if err := c.move(from, target, deposit); err != nil {
				return fail(err)
			}
			undo = append(undo, func() { _ = c.move(target, from, deposit) })
			if acc.contract == nil {
				return fail(fmt.Errorf("call %s.%s: account has no contract", target, act.Method))
			}

			snapshot := acc.storage.snapshot()
			e := &env{
				chain:           c,
				account:         acc,
				predecessor:     r.predecessor,
				signer:          r.signer,
				signerPublicKey: r.signerPublicKey,
				deposit:         deposit,
				results:         r.results,
			}
			ret, err := acc.contract.Invoke(e, act.Method, act.Args)
			if err != nil {
				acc.storage.restore(snapshot)
				return fail(fmt.Errorf("call %s.%s: %w", target, act.Method, err))
			}
			payload = ret
			undo = append(undo, func() { acc.storage.restore(snapshot) })

			// Batches registered by the invocation become receipts
			// scheduled by the account the code ran on.
			for _, b := range e.batches {
				c.enqueue(newReceipt(target, r.signer, r.signerPublicKey, b, nil))
			}

		default:
			return fail(fmt.Errorf("unknown action kind %d", act.Kind))
		}
	}

	return runtime.PromiseResult{Status: runtime.Succeeded, Payload: payload}, nil
}

func (c *Chain) existing(id runtime.AccountID) (*Account, error) {
	acc := c.accounts[id]
	if acc == nil {
		return nil, fmt.Errorf("account %q does not exist", id)
	}
	return acc, nil
}

// move shifts native balance between accounts. Zero moves always succeed.
func (c *Chain) move(from, to runtime.AccountID, amount runtime.Amount) error {
	if amount.IsZero() {
		return nil
	}
	src := c.accounts[from]
	dst := c.accounts[to]
	if src == nil || dst == nil {
		return fmt.Errorf("transfer %s -> %s: unknown account", from, to)
	}
	remaining, ok := src.balance.Sub(amount)
	if !ok {
		return fmt.Errorf("transfer %s -> %s: insufficient balance", from, to)
	}
	src.balance = remaining
	dst.balance = dst.balance.Add(amount)
	return nil
}

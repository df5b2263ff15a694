package chain

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/opendonate/donation-contract/runtime"
)

const (
	// genesisTimestamp is the block time of a fresh chain, nanoseconds.
	genesisTimestamp = uint64(1_700_000_000_000_000_000)
	// blockInterval is how far block time advances per resolved receipt.
	blockInterval = uint64(1_000_000_000)
)

// ProgramFactory constructs a fresh contract instance for a deployed
// program image.
type ProgramFactory func() runtime.Contract

// Chain is the simulated chain state: accounts, the program registry and
// the receipt queue. It is not safe for concurrent use; the runtime model
// is single-threaded.
type Chain struct {
	log      *zap.Logger
	accounts map[runtime.AccountID]*Account
	programs map[string]ProgramFactory
	queue    []*receipt
	now      uint64
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger routes chain and contract logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithGenesisTime overrides the initial block time, nanoseconds.
func WithGenesisTime(ns uint64) Option {
	return func(c *Chain) { c.now = ns }
}

// New returns an empty chain.
func New(opts ...Option) *Chain {
	c := &Chain{
		log:      zap.NewNop(),
		accounts: make(map[runtime.AccountID]*Account),
		programs: make(map[string]ProgramFactory),
		now:      genesisTimestamp,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RegisterProgram makes a program image deployable. The factory is called
// once per deployment.
func (c *Chain) RegisterProgram(image []byte, f ProgramFactory) {
	c.programs[string(image)] = f
}

// CreateAccount creates a plain account with the given native balance.
func (c *Chain) CreateAccount(id runtime.AccountID, balance runtime.Amount) (*Account, error) {
	if !runtime.IsValidAccountID(id) {
		return nil, fmt.Errorf("create account %q: invalid account name", id)
	}
	if _, ok := c.accounts[id]; ok {
		return nil, fmt.Errorf("create account %q: already exists", id)
	}
	acc := newAccount(id)
	acc.balance = balance
	c.accounts[id] = acc
	return acc, nil
}

// CreateContractAccount creates an account and deploys a registered
// program image onto it, the genesis equivalent of what the factory's
// provisioning batch does at run time.
func (c *Chain) CreateContractAccount(id runtime.AccountID, balance runtime.Amount, image []byte) (*Account, error) {
	acc, err := c.CreateAccount(id, balance)
	if err != nil {
		return nil, err
	}
	factory, ok := c.programs[string(image)]
	if !ok {
		delete(c.accounts, id)
		return nil, fmt.Errorf("deploy to %q: unknown program image %q", id, image)
	}
	acc.contract = factory()
	acc.code = append([]byte(nil), image...)
	return acc, nil
}

// Account returns the account with the given id, nil if absent.
func (c *Chain) Account(id runtime.AccountID) *Account {
	return c.accounts[id]
}

// Balance returns the native balance of id, zero if the account is absent.
func (c *Chain) Balance(id runtime.AccountID) runtime.Amount {
	acc := c.accounts[id]
	if acc == nil {
		return runtime.Amount{}
	}
	return acc.balance
}

// SetBalance overwrites the native balance of an existing account. Test
// hook for injecting transfer failures.
func (c *Chain) SetBalance(id runtime.AccountID, balance runtime.Amount) {
	if acc := c.accounts[id]; acc != nil {
		acc.balance = balance
	}
}

// Now returns the current block time, nanoseconds.
func (c *Chain) Now() uint64 {
	return c.now
}

// Call submits a transaction: signer invokes receiver's entry point with
// JSON-marshalable args and an attached deposit, then the receipt queue is
// drained. The returned payload and error are those of the submitted call;
// outcomes of downstream receipts are observed through state queries, as
// on a real chain.
func (c *Chain) Call(signer, receiver runtime.AccountID, method string, args any, deposit runtime.Amount) ([]byte, error) {
	sender := c.accounts[signer]
	if sender == nil {
		return nil, fmt.Errorf("call: unknown signer %q", signer)
	}
	raw, err := marshalArgs(args)
	if err != nil {
		return nil, err
	}

	batch := &runtime.PromiseBatch{Target: receiver}
	batch.FunctionCall(method, raw, deposit, 0)

	root := newReceipt(signer, signer, sender.publicKey, batch, nil)
	result, execErr := c.resolve(root)
	c.drain()

	if execErr != nil {
		return nil, execErr
	}
	return result.Payload, nil
}

// View invokes a read-only entry point and decodes its JSON result into
// out (skipped when out is nil). Scheduling from view calls is ignored.
func (c *Chain) View(receiver runtime.AccountID, method string, args any, out any) error {
	acc := c.accounts[receiver]
	if acc == nil {
		return fmt.Errorf("view: unknown account %q", receiver)
	}
	if acc.contract == nil {
		return fmt.Errorf("view: account %q has no contract", receiver)
	}
	raw, err := marshalArgs(args)
	if err != nil {
		return err
	}

	e := &env{
		chain:           c,
		account:         acc,
		predecessor:     receiver,
		signer:          receiver,
		signerPublicKey: acc.publicKey,
	}
	res, err := acc.contract.Invoke(e, method, raw)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func marshalArgs(args any) ([]byte, error) {
	switch v := args.(type) {
	case nil:
		return []byte("{}"), nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encode args: %w", err)
		}
		return raw, nil
	}
}

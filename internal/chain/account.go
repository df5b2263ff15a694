package chain

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/opendonate/donation-contract/runtime"
)

// Account is one account of the simulated chain: a native balance, a
// key/value store and, when code is deployed, a contract instance.
type Account struct {
	id        runtime.AccountID
	balance   runtime.Amount
	storage   *memStorage
	contract  runtime.Contract
	code      []byte
	publicKey string
	keys      map[string]struct{}
}

func newAccount(id runtime.AccountID) *Account {
	pk := derivePublicKey(id)
	return &Account{
		id:        id,
		storage:   newMemStorage(),
		publicKey: pk,
		keys:      map[string]struct{}{pk: {}},
	}
}

// ID returns the account identifier.
func (a *Account) ID() runtime.AccountID {
	return a.id
}

// Balance returns the native token balance.
func (a *Account) Balance() runtime.Amount {
	return a.balance
}

// PublicKey returns the account's base58-encoded signing key.
func (a *Account) PublicKey() string {
	return a.publicKey
}

// HasFullAccessKey reports whether the base58-encoded key is attached to
// the account.
func (a *Account) HasFullAccessKey(publicKey string) bool {
	_, ok := a.keys[publicKey]
	return ok
}

// derivePublicKey produces a stable per-account key so signatures stay
// deterministic across runs.
func derivePublicKey(id runtime.AccountID) string {
	sum := sha256.Sum256([]byte(id))
	return base58.Encode(sum[:])
}

// Package factory contains client wrappers for the Factory contract entry
// points.
package factory

import (
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Invoker submits transactions and view calls to a chain runtime.
type Invoker interface {
	Call(signer, receiver runtime.AccountID, method string, args any, deposit runtime.Amount) ([]byte, error)
	View(receiver runtime.AccountID, method string, args any, out any) error
}

// Client calls one deployed Factory contract.
type Client struct {
	inv      Invoker
	contract runtime.AccountID
}

// New returns a client bound to the contract deployed at account.
func New(inv Invoker, account runtime.AccountID) *Client {
	return &Client{inv: inv, contract: account}
}

type initArgs struct {
	Owners []runtime.AccountID `json:"owners,omitempty"`
}

type withdrawFeesArgs struct {
	Amount runtime.Amount `json:"amount"`
}

// Init performs the one-time contract setup.
func (c *Client) Init(signer runtime.AccountID, owners []runtime.AccountID, deposit runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, factoryconst.MethodInit, initArgs{Owners: owners}, deposit)
	return err
}

// CreateAccount provisions a donation account for the signer, consuming
// the attached deposit as the child's stake.
func (c *Client) CreateAccount(signer runtime.AccountID, deposit runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, factoryconst.MethodCreateAccount, nil, deposit)
	return err
}

// WithdrawFees asks the factory to transfer amount of accrued fees to the
// signer.
func (c *Client) WithdrawFees(signer runtime.AccountID, amount runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, factoryconst.MethodWithdrawFees,
		withdrawFeesArgs{Amount: amount}, runtime.Amount{})
	return err
}

// GetAccounts returns the registry of provisioned donation accounts.
func (c *Client) GetAccounts() ([]runtime.AccountID, error) {
	var out []runtime.AccountID
	err := c.inv.View(c.contract, factoryconst.MethodGetAccounts, nil, &out)
	return out, err
}

// GetFees returns the accrued platform fees.
func (c *Client) GetFees() (runtime.Amount, error) {
	var out runtime.Amount
	err := c.inv.View(c.contract, factoryconst.MethodGetFees, nil, &out)
	return out, err
}

// GetOwners returns the owner set.
func (c *Client) GetOwners() ([]runtime.AccountID, error) {
	var out []runtime.AccountID
	err := c.inv.View(c.contract, factoryconst.MethodGetOwners, nil, &out)
	return out, err
}

// Version returns the contract version.
func (c *Client) Version() (int, error) {
	var out int
	err := c.inv.View(c.contract, factoryconst.MethodVersion, nil, &out)
	return out, err
}

// Package donate contains client wrappers for the Donation Account
// contract entry points.
package donate

import (
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Invoker submits transactions and view calls to a chain runtime.
type Invoker interface {
	Call(signer, receiver runtime.AccountID, method string, args any, deposit runtime.Amount) ([]byte, error)
	View(receiver runtime.AccountID, method string, args any, out any) error
}

// Donation is a client-side copy of the contract's donation record.
type Donation struct {
	Donor     runtime.AccountID `json:"donor"`
	Amount    runtime.Amount    `json:"amount"`
	Timestamp uint64            `json:"timestamp"`
}

// Client calls one deployed Donation Account contract.
type Client struct {
	inv      Invoker
	contract runtime.AccountID
}

// New returns a client bound to the contract deployed at account.
func New(inv Invoker, account runtime.AccountID) *Client {
	return &Client{inv: inv, contract: account}
}

type initArgs struct {
	FactoryAccount runtime.AccountID   `json:"factory_account"`
	Owners         []runtime.AccountID `json:"owners,omitempty"`
}

type withdrawArgs struct {
	Amount runtime.Amount `json:"amount"`
}

type getDonationsArgs struct {
	Page *uint32 `json:"page,omitempty"`
}

// Init performs the one-time contract setup.
func (c *Client) Init(signer, factory runtime.AccountID, owners []runtime.AccountID, deposit runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, donateconst.MethodInit,
		initArgs{FactoryAccount: factory, Owners: owners}, deposit)
	return err
}

// Donate sends the attached deposit as a donation.
func (c *Client) Donate(signer runtime.AccountID, deposit runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, donateconst.MethodDonate, nil, deposit)
	return err
}

// WithdrawDonations asks the contract to transfer amount to the signer.
func (c *Client) WithdrawDonations(signer runtime.AccountID, amount runtime.Amount) error {
	_, err := c.inv.Call(signer, c.contract, donateconst.MethodWithdrawDonations,
		withdrawArgs{Amount: amount}, runtime.Amount{})
	return err
}

// GetBalance returns the confirmed ledger balance.
func (c *Client) GetBalance() (runtime.Amount, error) {
	var out runtime.Amount
	err := c.inv.View(c.contract, donateconst.MethodGetBalance, nil, &out)
	return out, err
}

// GetOwners returns the owner set.
func (c *Client) GetOwners() ([]runtime.AccountID, error) {
	var out []runtime.AccountID
	err := c.inv.View(c.contract, donateconst.MethodGetOwners, nil, &out)
	return out, err
}

// GetDonations returns the full donation listing.
func (c *Client) GetDonations() ([]Donation, error) {
	var out []Donation
	err := c.inv.View(c.contract, donateconst.MethodGetDonations, nil, &out)
	return out, err
}

// GetDonationsPage returns one fixed-size page of donation records.
func (c *Client) GetDonationsPage(page uint32) ([]Donation, error) {
	var out []Donation
	err := c.inv.View(c.contract, donateconst.MethodGetDonations, getDonationsArgs{Page: &page}, &out)
	return out, err
}

// Version returns the contract version.
func (c *Client) Version() (int, error) {
	var out int
	err := c.inv.View(c.contract, donateconst.MethodVersion, nil, &out)
	return out, err
}

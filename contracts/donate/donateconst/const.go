// Package donateconst holds constants of the Donation Account contract
// shared with off-chain code (rpc wrappers, the factory, harnesses).
package donateconst

// Entry-point names of the Donation Account contract.
const (
	MethodInit                 = "init"
	MethodDonate               = "donate"
	MethodSendDonation         = "send_donation"
	MethodOnDonate             = "on_donate"
	MethodWithdrawDonations    = "withdraw_donations"
	MethodOnDonationsWithdrawn = "on_donations_withdrawn"
	MethodGetBalance           = "get_balance"
	MethodGetOwners            = "get_owners"
	MethodGetDonations         = "get_donations"
	MethodVersion              = "version"
)

// PageSize is the fixed number of donation records per page returned by
// get_donations.
const PageSize = 25

// ProgramImage identifies the Donation Account program in the host's code
// registry. The factory deploys it onto every provisioned child account.
var ProgramImage = []byte("donate-account/v1")

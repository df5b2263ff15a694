// Package factoryconst holds constants of the Factory contract shared with
// off-chain code (rpc wrappers, the donation account contract, harnesses).
package factoryconst

// Entry-point names of the Factory contract.
const (
	MethodInit             = "init"
	MethodCreateAccount    = "create_account"
	MethodAddAccount       = "add_account"
	MethodAddDonateAccount = "add_donate_account"
	MethodOnAccountCreated = "on_account_created"
	MethodDepositFees      = "deposit_fees"
	MethodWithdrawFees     = "withdraw_fees"
	MethodOnFeesWithdrawn  = "on_fees_withdrawn"
	MethodGetAccounts      = "get_accounts"
	MethodGetFees          = "get_fees"
	MethodGetOwners        = "get_owners"
	MethodVersion          = "version"
)

// ChildPrefix is the label the default naming strategy prepends to the
// caller's account to derive the donation account name.
const ChildPrefix = "donate"

// ProgramImage identifies the Factory program in the host's code registry.
var ProgramImage = []byte("donation-factory/v1")

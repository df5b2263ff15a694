package factory

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"

	"github.com/opendonate/donation-contract/common"
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Storage layout of the Factory instance.
const (
	initKey     = 'i' // initialization sentinel
	ownersKey   = 'o' // JSON owner set
	feesKey     = 'f' // accrued platform fees
	accountsKey = 'a' // JSON registry of provisioned donation accounts
)

// Config selects the constructor-time behavior of the Factory.
type Config struct {
	// Naming derives child account identifiers and the deposit_fees
	// relation check. Defaults to PrefixNaming with factoryconst.ChildPrefix.
	Naming common.NamingStrategy
	// Debit is the fee-withdrawal accounting strategy.
	Debit common.DebitStrategy
}

// Contract is the Factory contract.
type Contract struct {
	cfg Config
}

// New returns a Factory contract with the given configuration.
func New(cfg Config) *Contract {
	if cfg.Naming == nil {
		cfg.Naming = common.PrefixNaming{Prefix: factoryconst.ChildPrefix}
	}
	return &Contract{cfg: cfg}
}

// Init performs the one-time setup of the factory. It fails with
// ErrAlreadyInitialized on repeated calls and with ErrInsufficientStake if
// the attached deposit does not cover the minimum account balance. Owners
// defaults to the transaction signer.
func (c *Contract) Init(env runtime.Env, args InitArgs) error {
	s := env.Storage()
	if isInitialized(s) {
		return common.ErrAlreadyInitialized
	}
	if env.AttachedDeposit().Less(common.MinAccountBalance) {
		return common.ErrInsufficientStake
	}

	owners := args.Owners
	if len(owners) == 0 {
		owners = []runtime.AccountID{env.Signer()}
	}

	common.PutJSON(s, []byte{ownersKey}, owners)
	common.PutAmount(s, []byte{feesKey}, runtime.Amount{})
	common.PutJSON(s, []byte{accountsKey}, []runtime.AccountID{})
	s.Put([]byte{initKey}, []byte{1})

	env.Log("factory created")
	return nil
}

// CreateAccount provisions a donation account for the caller. The derived
// child identifier must be syntactically valid and not registered yet. The
// batch creates the child, deploys the donation account program, attaches
// the signer's full-access key and invokes the program's init carrying the
// attached stake; the registry is updated only in the success branch of
// the on_account_created continuation.
func (c *Contract) CreateAccount(env runtime.Env) error {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return err
	}
	if env.AttachedDeposit().Less(common.MinAccountBalance) {
		return common.ErrInsufficientStake
	}

	child := c.cfg.Naming.ChildAccount(env.Predecessor(), env.CurrentAccount())
	if !runtime.IsValidAccountID(child) {
		return fmt.Errorf("%w: %s", common.ErrInvalidAccountName, child)
	}
	if common.Contains(accounts(s), child) {
		return fmt.Errorf("%w: %s", common.ErrAccountAlreadyExists, child)
	}

	publicKey, err := base58.Decode(env.SignerPublicKey())
	if err != nil {
		return fmt.Errorf("decode signer public key: %w", err)
	}

	initArgs, err := json.Marshal(donateInitArgs{
		FactoryAccount: env.CurrentAccount(),
		Owners:         []runtime.AccountID{env.Predecessor()},
	})
	if err != nil {
		return fmt.Errorf("encode init args: %w", err)
	}
	cbArgs, err := json.Marshal(AccountCreatedArgs{Account: child})
	if err != nil {
		return fmt.Errorf("encode on_account_created args: %w", err)
	}

	env.Log("attempting to create account " + child)

	env.Batch(child).
		CreateAccount().
		DeployContract(donateconst.ProgramImage).
		AddFullAccessKey(publicKey).
		FunctionCall(donateconst.MethodInit, initArgs, env.AttachedDeposit(), common.XCCGas).
		Then(env.CurrentAccount()).
		FunctionCall(factoryconst.MethodOnAccountCreated, cbArgs, runtime.Amount{}, common.XCCGas)

	return nil
}

// OnAccountCreated is the private continuation of CreateAccount. On
// success it registers the child; on failure the registry stays untouched
// and the consumed stake is not refunded.
func (c *Contract) OnAccountCreated(env runtime.Env, args AccountCreatedArgs) error {
	if err := common.CheckSelf(env); err != nil {
		return err
	}
	results := env.PromiseResults()
	if len(results) == 0 {
		return fmt.Errorf("on_account_created: no promise result to handle")
	}

	common.HandleOutcome(results[0], common.OutcomeHandler{
		OnPending: func() {
			env.Log("account creation for [ " + args.Account + " ] is pending")
		},
		OnSuccess: func([]byte) {
			s := env.Storage()
			registry := accounts(s)
			if common.Contains(registry, args.Account) {
				return
			}
			common.PutJSON(s, []byte{accountsKey}, append(registry, args.Account))
			env.Log("account creation for [ " + args.Account + " ] succeeded")
		},
		OnFailure: func() {
			env.Log("account creation for [ " + args.Account + " ] failed")
		},
		OnUnknown: func(status runtime.PromiseStatus) {
			env.Log("unexpected promise status " + strconv.Itoa(int(status)))
		},
	})
	return nil
}

// DepositFees accrues the attached value as platform fees. The caller must
// name an account the configured strategy would have provisioned; the
// relation check is syntactic on purpose, looser than registry membership.
// This path is a direct value transfer, no call is scheduled.
func (c *Contract) DepositFees(env runtime.Env) error {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return err
	}
	if !c.cfg.Naming.IsProvisionedChild(env.CurrentAccount(), env.Predecessor()) {
		return common.ErrUnauthorized
	}

	fees := common.GetAmount(s, []byte{feesKey})
	common.PutAmount(s, []byte{feesKey}, fees.Add(env.AttachedDeposit()))

	env.Log("received " + common.FormatTokens(env.AttachedDeposit()) + " tokens in fees from " + env.Predecessor())
	return nil
}

// WithdrawFees transfers amount of accrued fees to the calling owner.
// Accounting follows the configured debit strategy, mirroring
// WithdrawDonations on the donation account.
func (c *Contract) WithdrawFees(env runtime.Env, args WithdrawFeesArgs) error {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return err
	}

	caller := env.Predecessor()
	if !common.IsOwner(caller, owners(s)) {
		return common.ErrUnauthorized
	}

	fees := common.GetAmount(s, []byte{feesKey})
	if fees.Less(args.Amount) {
		return common.ErrInsufficientBalance
	}

	if c.cfg.Debit == common.OptimisticDebit {
		remaining, _ := fees.Sub(args.Amount)
		common.PutAmount(s, []byte{feesKey}, remaining)
	}

	cbArgs, err := json.Marshal(FeesWithdrawnArgs{Owner: caller, Amount: args.Amount})
	if err != nil {
		return fmt.Errorf("encode on_fees_withdrawn args: %w", err)
	}

	env.Batch(caller).
		Transfer(args.Amount).
		Then(env.CurrentAccount()).
		FunctionCall(factoryconst.MethodOnFeesWithdrawn, cbArgs, runtime.Amount{}, common.XCCGas)

	return nil
}

// OnFeesWithdrawn is the private continuation of WithdrawFees.
func (c *Contract) OnFeesWithdrawn(env runtime.Env, args FeesWithdrawnArgs) error {
	if err := common.CheckSelf(env); err != nil {
		return err
	}
	results := env.PromiseResults()
	if len(results) == 0 {
		return fmt.Errorf("on_fees_withdrawn: no promise result to handle")
	}

	s := env.Storage()
	common.HandleOutcome(results[0], common.OutcomeHandler{
		OnPending: func() {
			env.Log("fee withdrawal is pending")
		},
		OnSuccess: func([]byte) {
			if c.cfg.Debit == common.DeferredDebit {
				// Re-read: the fee counter may have changed since dispatch.
				fees := common.GetAmount(s, []byte{feesKey})
				remaining, ok := fees.Sub(args.Amount)
				if !ok {
					env.Log("fee withdrawal exceeds recorded fees, clamping to zero")
					remaining = runtime.Amount{}
				}
				common.PutAmount(s, []byte{feesKey}, remaining)
			}
			env.Log("transferred " + common.FormatTokens(args.Amount) + " tokens in fees to " + args.Owner)
		},
		OnFailure: func() {
			if c.cfg.Debit == common.OptimisticDebit {
				fees := common.GetAmount(s, []byte{feesKey})
				common.PutAmount(s, []byte{feesKey}, fees.Add(args.Amount))
			}
			env.Log("fee withdrawal failed")
		},
		OnUnknown: func(status runtime.PromiseStatus) {
			env.Log("unexpected promise status " + strconv.Itoa(int(status)))
		},
	})
	return nil
}

// GetAccounts returns the registry of provisioned donation accounts.
func (c *Contract) GetAccounts(env runtime.Env) []runtime.AccountID {
	return accounts(env.Storage())
}

// GetFees returns the accrued platform fees.
func (c *Contract) GetFees(env runtime.Env) (runtime.Amount, error) {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return runtime.Amount{}, err
	}
	return common.GetAmount(s, []byte{feesKey}), nil
}

// GetOwners returns the owner set.
func (c *Contract) GetOwners(env runtime.Env) ([]runtime.AccountID, error) {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return nil, err
	}
	return owners(s), nil
}

// Version returns the contract version.
func (c *Contract) Version() int {
	return common.Version
}

// donateInitArgs mirrors the donation account's init arguments. Kept local
// to avoid importing the contract package of the deployed child.
type donateInitArgs struct {
	FactoryAccount runtime.AccountID   `json:"factory_account"`
	Owners         []runtime.AccountID `json:"owners,omitempty"`
}

func isInitialized(s runtime.Storage) bool {
	return s.Has([]byte{initKey})
}

func requireInitialized(s runtime.Storage) error {
	if !isInitialized(s) {
		return common.ErrNotInitialized
	}
	return nil
}

func owners(s runtime.Storage) []runtime.AccountID {
	var out []runtime.AccountID
	common.GetJSON(s, []byte{ownersKey}, &out)
	return out
}

func accounts(s runtime.Storage) []runtime.AccountID {
	var out []runtime.AccountID
	common.GetJSON(s, []byte{accountsKey}, &out)
	return out
}

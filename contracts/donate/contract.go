package donate

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opendonate/donation-contract/common"
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Storage layout of a Donation Account instance.
const (
	initKey          = 'i' // initialization sentinel
	factoryKey       = 'f' // parent factory account id
	ownersKey        = 'o' // JSON owner set
	balanceKey       = 'b' // confirmed ledger balance
	donationCountKey = 'n' // number of donation records
	donationPrefix   = 'd' // donationPrefix + 8-byte index -> Donation
)

// PlatformFeeDivisor is the fixed divisor applied to every incoming
// donation to compute the platform fee share.
const PlatformFeeDivisor = 100

// MinDonation is the smallest accepted donation, 1 token.
var MinDonation = common.Tokens("1")

// Config selects the constructor-time behavior of a Donation Account
// instance.
type Config struct {
	// Debit is the withdrawal accounting strategy.
	Debit common.DebitStrategy
}

// Contract is the Donation Account contract.
type Contract struct {
	cfg Config
}

// New returns a Donation Account contract with the given configuration.
func New(cfg Config) *Contract {
	return &Contract{cfg: cfg}
}

// Init performs the one-time setup of the instance. It fails with
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

	s.Put([]byte{factoryKey}, []byte(args.FactoryAccount))
	common.PutJSON(s, []byte{ownersKey}, owners)
	common.PutAmount(s, []byte{balanceKey}, runtime.Amount{})
	s.Put([]byte{initKey}, []byte{1})

	env.Log("donation account created")
	return nil
}

// Donate accepts an attached donation. It splits off the platform fee,
// schedules its transfer to the factory's deposit_fees entry point and
// registers the on_donate continuation carrying the net amount and the
// donor. The ledger is not touched here; it mutates only once the fee
// leg's outcome is known.
func (c *Contract) Donate(env runtime.Env) error {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return err
	}

	deposit := env.AttachedDeposit()
	if deposit.Less(MinDonation) {
		return common.ErrBelowMinimumDonation
	}

	fee := deposit.Div(PlatformFeeDivisor)
	net, _ := deposit.Sub(fee) // fee <= deposit, cannot underflow

	args, err := json.Marshal(DonateArgs{Donor: env.Predecessor(), Amount: net})
	if err != nil {
		return fmt.Errorf("encode on_donate args: %w", err)
	}

	env.Batch(factoryAccount(s)).
		FunctionCall(factoryconst.MethodDepositFees, []byte("{}"), fee, common.XCCGas).
		Then(env.CurrentAccount()).
		FunctionCall(donateconst.MethodOnDonate, args, runtime.Amount{}, common.XCCGas)

	return nil
}

// OnDonate is the private continuation of Donate. On success it credits
// the net amount and appends the donation record; on failure the ledger
// stays untouched.
func (c *Contract) OnDonate(env runtime.Env, args DonateArgs) error {
	if err := common.CheckSelf(env); err != nil {
		return err
	}
	results := env.PromiseResults()
	if len(results) == 0 {
		return fmt.Errorf("on_donate: no promise result to handle")
	}

	common.HandleOutcome(results[0], common.OutcomeHandler{
		OnPending: func() {
			env.Log("donation is pending")
		},
		OnSuccess: func([]byte) {
			s := env.Storage()
			balance := common.GetAmount(s, []byte{balanceKey})
			common.PutAmount(s, []byte{balanceKey}, balance.Add(args.Amount))
			appendDonation(s, Donation{
				Donor:     args.Donor,
				Amount:    args.Amount,
				Timestamp: env.BlockTimestamp(),
			})
			env.Log("received " + common.FormatTokens(args.Amount) + " tokens from " + args.Donor)
		},
		OnFailure: func() {
			// The fee leg failed. The attached tokens already left the
			// donor and are not re-credited anywhere; see the accounting
			// gap note in the package documentation of the factory.
			env.Log("donation failed")
		},
		OnUnknown: func(status runtime.PromiseStatus) {
			env.Log("unexpected promise status " + strconv.Itoa(int(status)))
		},
	})
	return nil
}

// WithdrawDonations transfers amount to the caller, gated to the owner set
// and the parent account. Depending on the configured strategy the ledger
// is debited either before dispatch (with compensation on failure) or in
// the success branch of the continuation.
func (c *Contract) WithdrawDonations(env runtime.Env, args WithdrawArgs) error {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return err
	}

	caller := env.Predecessor()
	if !common.IsOwner(caller, owners(s)) && !common.IsParent(env.CurrentAccount(), caller) {
		return common.ErrUnauthorized
	}

	balance := common.GetAmount(s, []byte{balanceKey})
	if balance.Less(args.Amount) {
		return common.ErrInsufficientBalance
	}

	if c.cfg.Debit == common.OptimisticDebit {
		remaining, _ := balance.Sub(args.Amount)
		common.PutAmount(s, []byte{balanceKey}, remaining)
	}

	cbArgs, err := json.Marshal(DonationsWithdrawnArgs{Amount: args.Amount})
	if err != nil {
		return fmt.Errorf("encode on_donations_withdrawn args: %w", err)
	}

	env.Batch(caller).
		Transfer(args.Amount).
		Then(env.CurrentAccount()).
		FunctionCall(donateconst.MethodOnDonationsWithdrawn, cbArgs, runtime.Amount{}, common.XCCGas)

	return nil
}

// OnDonationsWithdrawn is the private continuation of WithdrawDonations.
// It completes or compensates the debit according to the configured
// strategy; exactly one of {debit applied once, debit never applied} holds
// after it runs.
func (c *Contract) OnDonationsWithdrawn(env runtime.Env, args DonationsWithdrawnArgs) error {
	if err := common.CheckSelf(env); err != nil {
		return err
	}
	results := env.PromiseResults()
	if len(results) == 0 {
		return fmt.Errorf("on_donations_withdrawn: no promise result to handle")
	}

	s := env.Storage()
	common.HandleOutcome(results[0], common.OutcomeHandler{
		OnPending: func() {
			env.Log("donation withdrawal is pending")
		},
		OnSuccess: func([]byte) {
			if c.cfg.Debit == common.DeferredDebit {
				// Re-read: the balance may have changed since dispatch.
				balance := common.GetAmount(s, []byte{balanceKey})
				remaining, ok := balance.Sub(args.Amount)
				if !ok {
					env.Log("withdrawal exceeds recorded balance, clamping to zero")
					remaining = runtime.Amount{}
				}
				common.PutAmount(s, []byte{balanceKey}, remaining)
			}
			env.Log("transferred " + common.FormatTokens(args.Amount) + " tokens")
		},
		OnFailure: func() {
			if c.cfg.Debit == common.OptimisticDebit {
				balance := common.GetAmount(s, []byte{balanceKey})
				common.PutAmount(s, []byte{balanceKey}, balance.Add(args.Amount))
			}
			env.Log("donation withdrawal failed")
		},
		OnUnknown: func(status runtime.PromiseStatus) {
			env.Log("unexpected promise status " + strconv.Itoa(int(status)))
		},
	})
	return nil
}

// GetBalance returns the confirmed ledger balance.
func (c *Contract) GetBalance(env runtime.Env) (runtime.Amount, error) {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return runtime.Amount{}, err
	}
	return common.GetAmount(s, []byte{balanceKey}), nil
}

// GetOwners returns the owner set.
func (c *Contract) GetOwners(env runtime.Env) ([]runtime.AccountID, error) {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return nil, err
	}
	return owners(s), nil
}

// GetDonations returns donation records. Without a page argument the full
// listing is returned; with one, the fixed-size page starting at
// page*PageSize.
func (c *Contract) GetDonations(env runtime.Env, args GetDonationsArgs) ([]Donation, error) {
	s := env.Storage()
	if err := requireInitialized(s); err != nil {
		return nil, err
	}

	count := donationCount(s)
	if args.Page == nil {
		all := make([]Donation, 0, count)
		for i := uint64(0); i < count; i++ {
			all = append(all, donationAt(s, i))
		}
		return all, nil
	}

	start := uint64(*args.Page) * donateconst.PageSize
	end := uint64(*args.Page+1)*donateconst.PageSize - 1
	if count > 0 && end > count-1 {
		end = count - 1
	}
	if count == 0 || start >= end {
		return nil, common.ErrPageOutOfRange
	}

	page := make([]Donation, 0, end-start+1)
	for i := start; i <= end; i++ {
		page = append(page, donationAt(s, i))
	}
	return page, nil
}

// Version returns the contract version.
func (c *Contract) Version() int {
	return common.Version
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

func factoryAccount(s runtime.Storage) runtime.AccountID {
	return runtime.AccountID(s.Get([]byte{factoryKey}))
}

func owners(s runtime.Storage) []runtime.AccountID {
	var out []runtime.AccountID
	common.GetJSON(s, []byte{ownersKey}, &out)
	return out
}

func donationCount(s runtime.Storage) uint64 {
	raw := s.Get([]byte{donationCountKey})
	if raw == nil {
		return 0
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("corrupted donation count: %v", err))
	}
	return n
}

func donationKey(i uint64) []byte {
	key := make([]byte, 9)
	key[0] = donationPrefix
	binary.BigEndian.PutUint64(key[1:], i)
	return key
}

func appendDonation(s runtime.Storage, d Donation) {
	n := donationCount(s)
	common.PutJSON(s, donationKey(n), d)
	s.Put([]byte{donationCountKey}, []byte(strconv.FormatUint(n+1, 10)))
}

func donationAt(s runtime.Storage, i uint64) Donation {
	var d Donation
	if !common.GetJSON(s, donationKey(i), &d) {
		panic(fmt.Sprintf("missing donation record %d", i))
	}
	return d
}

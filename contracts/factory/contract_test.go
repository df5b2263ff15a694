package factory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendonate/donation-contract/common"
	"github.com/opendonate/donation-contract/contracts/donate"
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/internal/chain"
	"github.com/opendonate/donation-contract/runtime"
)

const (
	factoryID = "factory.test"
	adminID   = "admin.test"
	orgID     = "myorg.test"
	childID   = "donate.myorg.test"
)

func newFactoryChain(t *testing.T, cfg Config) *chain.Chain {
	t.Helper()

	c := chain.New()
	c.RegisterProgram(donateconst.ProgramImage, func() runtime.Contract {
		return donate.New(donate.Config{Debit: cfg.Debit})
	})
	c.RegisterProgram(factoryconst.ProgramImage, func() runtime.Contract {
		return New(cfg)
	})

	_, err := c.CreateAccount(adminID, common.Tokens("10"))
	require.NoError(t, err)
	_, err = c.CreateAccount(orgID, common.Tokens("10"))
	require.NoError(t, err)

	_, err = c.CreateContractAccount(factoryID, runtime.Amount{}, factoryconst.ProgramImage)
	require.NoError(t, err)
	_, err = c.Call(adminID, factoryID, factoryconst.MethodInit, nil, common.MinAccountBalance)
	require.NoError(t, err)

	return c
}

func registry(t *testing.T, c *chain.Chain) []runtime.AccountID {
	t.Helper()
	var out []runtime.AccountID
	require.NoError(t, c.View(factoryID, factoryconst.MethodGetAccounts, nil, &out))
	return out
}

func fees(t *testing.T, c *chain.Chain) runtime.Amount {
	t.Helper()
	var out runtime.Amount
	require.NoError(t, c.View(factoryID, factoryconst.MethodGetFees, nil, &out))
	return out
}

func TestInit(t *testing.T) {
	c := newFactoryChain(t, Config{})

	var owners []runtime.AccountID
	require.NoError(t, c.View(factoryID, factoryconst.MethodGetOwners, nil, &owners))
	require.Equal(t, []runtime.AccountID{adminID}, owners)
	require.Empty(t, registry(t, c))
	require.True(t, fees(t, c).IsZero())

	_, err := c.Call(adminID, factoryID, factoryconst.MethodInit, nil, common.MinAccountBalance)
	require.ErrorIs(t, err, common.ErrAlreadyInitialized)
}

func TestInitInsufficientStake(t *testing.T) {
	c := chain.New()
	c.RegisterProgram(factoryconst.ProgramImage, func() runtime.Contract { return New(Config{}) })
	_, err := c.CreateAccount(adminID, common.Tokens("10"))
	require.NoError(t, err)
	_, err = c.CreateContractAccount(factoryID, runtime.Amount{}, factoryconst.ProgramImage)
	require.NoError(t, err)

	_, err = c.Call(adminID, factoryID, factoryconst.MethodInit, nil, common.Tokens("2"))
	require.ErrorIs(t, err, common.ErrInsufficientStake)
	require.Zero(t, c.Balance(adminID).Cmp(common.Tokens("10")))
}

func TestCreateAccount(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.NoError(t, err)

	require.Equal(t, []runtime.AccountID{childID}, registry(t, c))

	// The child exists, carries the stake, runs the donation account
	// program and holds the org's full-access key.
	child := c.Account(childID)
	require.NotNil(t, child)
	require.Zero(t, child.Balance().Cmp(common.MinAccountBalance))
	require.True(t, child.HasFullAccessKey(c.Account(orgID).PublicKey()))

	var owners []runtime.AccountID
	require.NoError(t, c.View(childID, donateconst.MethodGetOwners, nil, &owners))
	require.Equal(t, []runtime.AccountID{orgID}, owners)

	var balance runtime.Amount
	require.NoError(t, c.View(childID, donateconst.MethodGetBalance, nil, &balance))
	require.True(t, balance.IsZero())
}

func TestCreateAccountAliases(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodAddAccount, nil, common.MinAccountBalance)
	require.NoError(t, err)
	require.Equal(t, []runtime.AccountID{childID}, registry(t, c))

	// Same derived child, so the second alias is rejected.
	_, err = c.Call(orgID, factoryID, factoryconst.MethodAddDonateAccount, nil, common.MinAccountBalance)
	require.ErrorIs(t, err, common.ErrAccountAlreadyExists)
	require.Len(t, registry(t, c), 1)
}

func TestCreateAccountBeforeInit(t *testing.T) {
	c := chain.New()
	c.RegisterProgram(factoryconst.ProgramImage, func() runtime.Contract { return New(Config{}) })
	_, err := c.CreateAccount(orgID, common.Tokens("10"))
	require.NoError(t, err)
	_, err = c.CreateContractAccount(factoryID, runtime.Amount{}, factoryconst.ProgramImage)
	require.NoError(t, err)

	_, err = c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.ErrorIs(t, err, common.ErrNotInitialized)
}

func TestCreateAccountInsufficientStake(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.Tokens("1"))
	require.ErrorIs(t, err, common.ErrInsufficientStake)
	require.Zero(t, c.Balance(orgID).Cmp(common.Tokens("10")))
	require.Empty(t, registry(t, c))
}

func TestCreateAccountDuplicate(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.NoError(t, err)

	_, err = c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.ErrorIs(t, err, common.ErrAccountAlreadyExists)
	require.Len(t, registry(t, c), 1)
}

func TestCreateAccountInvalidName(t *testing.T) {
	c := newFactoryChain(t, Config{})

	// The org name is valid on its own but the derived child name exceeds
	// the 64-character limit.
	longOrg := strings.Repeat("a", 55) + ".test"
	_, err := c.CreateAccount(longOrg, common.Tokens("10"))
	require.NoError(t, err)

	_, err = c.Call(longOrg, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.ErrorIs(t, err, common.ErrInvalidAccountName)
	require.Empty(t, registry(t, c))
}

func TestCreateAccountProvisioningFailure(t *testing.T) {
	c := newFactoryChain(t, Config{})

	// The registry does not know the child yet, but the chain does: the
	// provisioning batch fails on the create-account action.
	_, err := c.CreateAccount(childID, runtime.Amount{})
	require.NoError(t, err)

	factoryBefore := c.Balance(factoryID)
	_, err = c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.NoError(t, err)

	// Registry untouched; the stake stays stranded on the factory rather
	// than being refunded to the org.
	require.Empty(t, registry(t, c))
	require.Zero(t, c.Balance(orgID).Cmp(common.Tokens("7")))
	require.Zero(t, c.Balance(factoryID).Cmp(factoryBefore.Add(common.MinAccountBalance)))
}

func TestDepositFees(t *testing.T) {
	c := newFactoryChain(t, Config{})

	// The relation check is syntactic: any "donate."-prefixed caller is
	// accepted, registered or not.
	_, err := c.CreateAccount("donate.other.test", common.Tokens("5"))
	require.NoError(t, err)
	_, err = c.Call("donate.other.test", factoryID, factoryconst.MethodDepositFees, nil, common.Tokens("1"))
	require.NoError(t, err)
	require.Zero(t, fees(t, c).Cmp(common.Tokens("1")))

	_, err = c.Call(orgID, factoryID, factoryconst.MethodDepositFees, nil, common.Tokens("1"))
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Zero(t, fees(t, c).Cmp(common.Tokens("1")))
	require.Zero(t, c.Balance(orgID).Cmp(common.Tokens("10")))
}

func TestWithdrawFees(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.CreateAccount("donate.other.test", common.Tokens("5"))
	require.NoError(t, err)
	_, err = c.Call("donate.other.test", factoryID, factoryconst.MethodDepositFees, nil, common.Tokens("2"))
	require.NoError(t, err)

	before := c.Balance(adminID)
	_, err = c.Call(adminID, factoryID, factoryconst.MethodWithdrawFees,
		WithdrawFeesArgs{Amount: common.Tokens("1.5")}, runtime.Amount{})
	require.NoError(t, err)

	require.Zero(t, fees(t, c).Cmp(common.Tokens("0.5")))
	require.Zero(t, c.Balance(adminID).Cmp(before.Add(common.Tokens("1.5"))))
}

func TestWithdrawFeesUnauthorized(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodWithdrawFees,
		WithdrawFeesArgs{Amount: common.Tokens("1")}, runtime.Amount{})
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestWithdrawFeesInsufficient(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(adminID, factoryID, factoryconst.MethodWithdrawFees,
		WithdrawFeesArgs{Amount: common.Tokens("1")}, runtime.Amount{})
	require.ErrorIs(t, err, common.ErrInsufficientBalance)
}

func TestWithdrawFeesOptimisticCompensation(t *testing.T) {
	c := newFactoryChain(t, Config{Debit: common.OptimisticDebit})

	_, err := c.CreateAccount("donate.other.test", common.Tokens("5"))
	require.NoError(t, err)
	_, err = c.Call("donate.other.test", factoryID, factoryconst.MethodDepositFees, nil, common.Tokens("2"))
	require.NoError(t, err)

	// Strip the native balance so the transfer leg fails; the optimistic
	// debit has to be compensated.
	c.SetBalance(factoryID, runtime.Amount{})
	_, err = c.Call(adminID, factoryID, factoryconst.MethodWithdrawFees,
		WithdrawFeesArgs{Amount: common.Tokens("1")}, runtime.Amount{})
	require.NoError(t, err)
	require.Zero(t, fees(t, c).Cmp(common.Tokens("2")))
}

func TestOnAccountCreatedRejectsExternalCaller(t *testing.T) {
	c := newFactoryChain(t, Config{})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodOnAccountCreated,
		AccountCreatedArgs{Account: childID}, runtime.Amount{})
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Empty(t, registry(t, c))
}

func TestSuffixNaming(t *testing.T) {
	c := newFactoryChain(t, Config{Naming: common.SuffixNaming{}})

	_, err := c.Call(orgID, factoryID, factoryconst.MethodCreateAccount, nil, common.MinAccountBalance)
	require.NoError(t, err)

	suffixChild := runtime.AccountID("myorg." + factoryID)
	require.Equal(t, []runtime.AccountID{suffixChild}, registry(t, c))
	require.NotNil(t, c.Account(suffixChild))

	// Fee deposits are gated on the matching relation: subaccounts of the
	// factory pass, "donate."-prefixed strangers do not.
	_, err = c.CreateAccount("donate.other.test", common.Tokens("5"))
	require.NoError(t, err)
	_, err = c.Call("donate.other.test", factoryID, factoryconst.MethodDepositFees, nil, common.Tokens("1"))
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVersion(t *testing.T) {
	c := newFactoryChain(t, Config{})

	var v int
	require.NoError(t, c.View(factoryID, factoryconst.MethodVersion, nil, &v))
	require.Equal(t, common.Version, v)
}

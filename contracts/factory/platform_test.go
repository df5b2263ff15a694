package factory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendonate/donation-contract/common"
	"github.com/opendonate/donation-contract/contracts/donate"
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/internal/chain"
	rpcdonate "github.com/opendonate/donation-contract/rpc/donate"
	rpcfactory "github.com/opendonate/donation-contract/rpc/factory"
	"github.com/opendonate/donation-contract/runtime"
)

// TestPlatformLifecycle drives the full donation flow through the rpc
// clients: factory setup, account provisioning, a fee-split donation and
// withdrawals on both tiers.
func TestPlatformLifecycle(t *testing.T) {
	c := chain.New()
	c.RegisterProgram(donateconst.ProgramImage, func() runtime.Contract {
		return donate.New(donate.Config{})
	})
	c.RegisterProgram(factoryconst.ProgramImage, func() runtime.Contract {
		return New(Config{})
	})

	for _, acc := range []runtime.AccountID{adminID, orgID, "bob.test"} {
		_, err := c.CreateAccount(acc, common.Tokens("10"))
		require.NoError(t, err)
	}
	_, err := c.CreateContractAccount(factoryID, runtime.Amount{}, factoryconst.ProgramImage)
	require.NoError(t, err)

	platform := rpcfactory.New(c, factoryID)
	require.NoError(t, platform.Init(adminID, nil, common.MinAccountBalance))

	v, err := platform.Version()
	require.NoError(t, err)
	require.Equal(t, common.Version, v)

	// The org provisions its donation account through the factory.
	require.NoError(t, platform.CreateAccount(orgID, common.MinAccountBalance))
	accounts, err := platform.GetAccounts()
	require.NoError(t, err)
	require.Equal(t, []runtime.AccountID{childID}, accounts)

	account := rpcdonate.New(c, childID)
	owners, err := account.GetOwners()
	require.NoError(t, err)
	require.Equal(t, []runtime.AccountID{orgID}, owners)

	// A donor sends one token; 1% lands as platform fees.
	require.NoError(t, account.Donate("bob.test", common.Tokens("1")))

	balance, err := account.GetBalance()
	require.NoError(t, err)
	require.Zero(t, balance.Cmp(common.Tokens("0.99")))

	platformFees, err := platform.GetFees()
	require.NoError(t, err)
	require.Zero(t, platformFees.Cmp(common.Tokens("0.01")))

	recs, err := account.GetDonations()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, runtime.AccountID("bob.test"), recs[0].Donor)
	require.Zero(t, recs[0].Amount.Cmp(common.Tokens("0.99")))

	// Both tiers pay out to their owners.
	orgBefore := c.Balance(orgID)
	require.NoError(t, account.WithdrawDonations(orgID, common.Tokens("0.99")))
	balance, err = account.GetBalance()
	require.NoError(t, err)
	require.True(t, balance.IsZero())
	require.Zero(t, c.Balance(orgID).Cmp(orgBefore.Add(common.Tokens("0.99"))))

	adminBefore := c.Balance(adminID)
	require.NoError(t, platform.WithdrawFees(adminID, common.Tokens("0.01")))
	platformFees, err = platform.GetFees()
	require.NoError(t, err)
	require.True(t, platformFees.IsZero())
	require.Zero(t, c.Balance(adminID).Cmp(adminBefore.Add(common.Tokens("0.01"))))
}

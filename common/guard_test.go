package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendonate/donation-contract/runtime"
)

func TestContains(t *testing.T) {
	owners := []runtime.AccountID{"alice.test", "bob.test"}
	require.True(t, Contains(owners, "alice.test"))
	require.False(t, Contains(owners, "carol.test"))
	require.False(t, Contains(nil, "alice.test"))
}

func TestIsParent(t *testing.T) {
	require.True(t, IsParent("donate.myorg.test", "myorg.test"))
	require.False(t, IsParent("donate.myorg.test", "otherorg.test"))
	require.False(t, IsParent("donate.myorg.test", ""))
	// A grandparent also passes the suffix relation.
	require.True(t, IsParent("donate.myorg.test", "test"))
}

func TestIsSubaccount(t *testing.T) {
	require.True(t, IsSubaccount("factory.test", "donate.factory.test"))
	require.True(t, IsSubaccount("factory.test", "a.b.factory.test"))
	require.False(t, IsSubaccount("factory.test", "factory.test"))
	require.False(t, IsSubaccount("factory.test", "donate.other.test"))
	require.False(t, IsSubaccount("", "donate.factory.test"))
}

type guardEnv struct {
	runtime.Env

	current     runtime.AccountID
	predecessor runtime.AccountID
}

func (e guardEnv) CurrentAccount() runtime.AccountID { return e.current }
func (e guardEnv) Predecessor() runtime.AccountID    { return e.predecessor }

func TestCheckSelf(t *testing.T) {
	require.NoError(t, CheckSelf(guardEnv{current: "app.test", predecessor: "app.test"}))
	require.ErrorIs(t, CheckSelf(guardEnv{current: "app.test", predecessor: "alice.test"}), ErrUnauthorized)
}

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixNaming(t *testing.T) {
	n := PrefixNaming{Prefix: "donate"}

	require.Equal(t, "donate.myorg.test", string(n.ChildAccount("myorg.test", "factory.test")))

	require.True(t, n.IsProvisionedChild("factory.test", "donate.myorg.test"))
	require.False(t, n.IsProvisionedChild("factory.test", "myorg.test"))
	require.False(t, n.IsProvisionedChild("factory.test", "donateer.myorg.test"))
}

func TestSuffixNaming(t *testing.T) {
	var n SuffixNaming

	require.Equal(t, "myorg.factory.test", string(n.ChildAccount("myorg.test", "factory.test")))
	require.Equal(t, "myorg.factory.test", string(n.ChildAccount("myorg", "factory.test")))

	require.True(t, n.IsProvisionedChild("factory.test", "myorg.factory.test"))
	require.False(t, n.IsProvisionedChild("factory.test", "myorg.test"))
	require.False(t, n.IsProvisionedChild("factory.test", "factory.test"))
}

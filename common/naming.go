package common

import (
	"strings"

	"github.com/opendonate/donation-contract/runtime"
)

// NamingStrategy derives the deterministic child account identifier of a
// provisioned donation account and supplies the matching relation check
// used when the child later reports back to the factory. Strategies are
// selected at contract construction time, never per entry point.
type NamingStrategy interface {
	// ChildAccount derives the donation account name for caller under
	// factory.
	ChildAccount(caller, factory runtime.AccountID) runtime.AccountID
	// IsProvisionedChild reports whether caller names an account this
	// strategy would have provisioned under factory.
	IsProvisionedChild(factory, caller runtime.AccountID) bool
}

// PrefixNaming derives children as "<prefix>.<caller>", placing the
// donation account under the calling organization's namespace.
type PrefixNaming struct {
	Prefix string
}

// ChildAccount implements NamingStrategy.
func (n PrefixNaming) ChildAccount(caller, _ runtime.AccountID) runtime.AccountID {
	return n.Prefix + "." + caller
}

// IsProvisionedChild implements NamingStrategy.
func (n PrefixNaming) IsProvisionedChild(_ runtime.AccountID, caller runtime.AccountID) bool {
	return strings.HasPrefix(caller, n.Prefix+".")
}

// SuffixNaming derives children as "<caller label>.<factory>", placing the
// donation account under the factory's namespace.
type SuffixNaming struct{}

// ChildAccount implements NamingStrategy.
func (SuffixNaming) ChildAccount(caller, factory runtime.AccountID) runtime.AccountID {
	label := caller
	if i := strings.IndexByte(caller, '.'); i >= 0 {
		label = caller[:i]
	}
	return label + "." + factory
}

// IsProvisionedChild implements NamingStrategy.
func (SuffixNaming) IsProvisionedChild(factory, caller runtime.AccountID) bool {
	return IsSubaccount(factory, caller)
}

package common

import (
	"strings"

	"github.com/opendonate/donation-contract/runtime"
)

// Contains reports whether id is a member of the account list.
func Contains(list []runtime.AccountID, id runtime.AccountID) bool {
	for _, a := range list {
		if a == id {
			return true
		}
	}
	return false
}

// IsOwner reports whether caller is a member of the owner set.
func IsOwner(caller runtime.AccountID, owners []runtime.AccountID) bool {
	return Contains(owners, caller)
}

// IsParent reports whether caller is a dot-delimited parent of contract,
// e.g. "myorg.chain" is the parent of "donate.myorg.chain".
func IsParent(contract, caller runtime.AccountID) bool {
	return caller != "" && strings.HasSuffix(contract, "."+caller)
}

// IsSubaccount reports whether caller is a dot-delimited descendant of
// contract. This is a syntactic relation check, deliberately looser than
// registry membership.
func IsSubaccount(contract, caller runtime.AccountID) bool {
	return contract != "" && strings.HasSuffix(caller, "."+contract)
}

// CheckSelf returns ErrUnauthorized unless the caller is the contract
// instance itself. Continuation entry points use it to reject external
// invocations.
func CheckSelf(env runtime.Env) error {
	if env.Predecessor() != env.CurrentAccount() {
		return ErrUnauthorized
	}
	return nil
}

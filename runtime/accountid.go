package runtime

import "regexp"

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// Account names are dot-separated sequences of lowercase alphanumeric
// labels; hyphens and underscores may join characters within a label but
// never lead, trail or repeat.
var accountIDRx = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// IsValidAccountID reports whether s satisfies the chain's account-name
// grammar. It is a pure function and performs no chain lookups.
func IsValidAccountID(s AccountID) bool {
	if len(s) < minAccountIDLen || len(s) > maxAccountIDLen {
		return false
	}
	return accountIDRx.MatchString(s)
}

package common

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/opendonate/donation-contract/runtime"
)

// tokenDecimals is the denomination scale: one token is 10^24 smallest
// units.
const tokenDecimals = 24

var (
	// OneToken is a single whole token in the smallest unit.
	OneToken = runtime.MustAmount("1000000000000000000000000")

	// MinAccountBalance is the stake that must stay attached to a contract
	// account to offset the chain's storage cost, 3 tokens.
	MinAccountBalance = Tokens("3")
)

// XCCGas is the gas budget attached to one cross-contract call hop.
const XCCGas runtime.Gas = 20_000_000_000_000

// ParseTokens converts a human token denomination such as "0.99" into an
// exact Amount in the smallest unit.
func ParseTokens(s string) (runtime.Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return runtime.Amount{}, fmt.Errorf("parse token amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return runtime.Amount{}, fmt.Errorf("parse token amount %q: negative", s)
	}
	shifted := d.Shift(tokenDecimals)
	if !shifted.IsInteger() {
		return runtime.Amount{}, fmt.Errorf("parse token amount %q: more than %d decimals", s, tokenDecimals)
	}
	return runtime.AmountFromString(shifted.BigInt().String())
}

// Tokens is like ParseTokens but panics on malformed input. Use it for
// package-level constants and tests only.
func Tokens(s string) runtime.Amount {
	a, err := ParseTokens(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FormatTokens renders an Amount in the human token denomination.
func FormatTokens(a runtime.Amount) string {
	return decimal.NewFromBigInt(a.Big(), -tokenDecimals).String()
}

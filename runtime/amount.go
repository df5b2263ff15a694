package runtime

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Amount is a token quantity in the smallest indivisible unit. It is an
// exact unsigned integer wide enough for 128-bit chain balances; all
// arithmetic is explicit and debits are guarded against underflow.
//
// The zero value is a zero amount ready to use.
type Amount struct {
	i uint256.Int
}

// NewAmount returns an Amount holding the given value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.i.SetUint64(v)
	return a
}

// AmountFromString parses a base-10 amount in the smallest unit.
func AmountFromString(s string) (Amount, error) {
	var a Amount
	if err := a.i.SetFromDecimal(s); err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return a, nil
}

// MustAmount is like AmountFromString but panics on malformed input. Use it
// for package-level constants only.
func MustAmount(s string) Amount {
	a, err := AmountFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	var r Amount
	r.i.Add(&a.i, &b.i)
	return r
}

// Sub returns a - b and false if the subtraction would underflow, in which
// case the returned amount is zero.
func (a Amount) Sub(b Amount) (Amount, bool) {
	var r Amount
	if _, overflow := r.i.SubOverflow(&a.i, &b.i); overflow {
		return Amount{}, false
	}
	return r, true
}

// Div returns a / d using integer division. Division by zero yields zero.
func (a Amount) Div(d uint64) Amount {
	var r Amount
	var div uint256.Int
	div.SetUint64(d)
	r.i.Div(&a.i, &div)
	return r
}

// Mul returns a * m.
func (a Amount) Mul(m uint64) Amount {
	var r Amount
	var mul uint256.Int
	mul.SetUint64(m)
	r.i.Mul(&a.i, &mul)
	return r
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.i.Cmp(&b.i)
}

// Less reports whether a < b.
func (a Amount) Less(b Amount) bool {
	return a.i.Lt(&b.i)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.i.IsZero()
}

// Big returns the amount as a big.Int copy.
func (a Amount) Big() *big.Int {
	return a.i.ToBig()
}

// String returns the base-10 representation in the smallest unit.
func (a Amount) String() string {
	return a.i.Dec()
}

// MarshalJSON encodes the amount as a quoted base-10 string, the wire
// convention for 128-bit balances.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a quoted base-10 string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := AmountFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

package common

import (
	"encoding/json"
	"fmt"

	"github.com/opendonate/donation-contract/runtime"
)

// GetAmount loads an amount stored under key, zero if absent.
func GetAmount(s runtime.Storage, key []byte) runtime.Amount {
	raw := s.Get(key)
	if raw == nil {
		return runtime.Amount{}
	}
	a, err := runtime.AmountFromString(string(raw))
	if err != nil {
		panic(fmt.Sprintf("corrupted amount under %q: %v", key, err))
	}
	return a
}

// PutAmount stores an amount under key.
func PutAmount(s runtime.Storage, key []byte, a runtime.Amount) {
	s.Put(key, []byte(a.String()))
}

// GetJSON loads a JSON-serialized value stored under key into out and
// reports whether the key was present.
func GetJSON(s runtime.Storage, key []byte, out any) bool {
	raw := s.Get(key)
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("corrupted value under %q: %v", key, err))
	}
	return true
}

// PutJSON serializes value and stores it under key.
func PutJSON(s runtime.Storage, key []byte, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("serialize value for %q: %v", key, err))
	}
	s.Put(key, raw)
}

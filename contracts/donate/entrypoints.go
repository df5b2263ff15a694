package donate

import (
	"encoding/json"
	"fmt"

	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Invoke dispatches a named entry point with raw JSON args. It implements
// runtime.Contract.
func (c *Contract) Invoke(env runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case donateconst.MethodInit:
		var a InitArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.Init(env, a)
	case donateconst.MethodDonate, donateconst.MethodSendDonation:
		return nil, c.Donate(env)
	case donateconst.MethodOnDonate:
		var a DonateArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.OnDonate(env, a)
	case donateconst.MethodWithdrawDonations:
		var a WithdrawArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.WithdrawDonations(env, a)
	case donateconst.MethodOnDonationsWithdrawn:
		var a DonationsWithdrawnArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.OnDonationsWithdrawn(env, a)
	case donateconst.MethodGetBalance:
		balance, err := c.GetBalance(env)
		if err != nil {
			return nil, err
		}
		return marshalResult(balance)
	case donateconst.MethodGetOwners:
		owners, err := c.GetOwners(env)
		if err != nil {
			return nil, err
		}
		return marshalResult(owners)
	case donateconst.MethodGetDonations:
		var a GetDonationsArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		donations, err := c.GetDonations(env, a)
		if err != nil {
			return nil, err
		}
		return marshalResult(donations)
	case donateconst.MethodVersion:
		return marshalResult(c.Version())
	default:
		return nil, fmt.Errorf("%w: %s", runtime.ErrUnknownMethod, method)
	}
}

func unmarshalArgs(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}

func marshalResult(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return raw, nil
}

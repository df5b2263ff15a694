package factory

import (
	"encoding/json"
	"fmt"

	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Invoke dispatches a named entry point with raw JSON args. It implements
// runtime.Contract.
func (c *Contract) Invoke(env runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case factoryconst.MethodInit:
		var a InitArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.Init(env, a)
	case factoryconst.MethodCreateAccount, factoryconst.MethodAddAccount, factoryconst.MethodAddDonateAccount:
		return nil, c.CreateAccount(env)
	case factoryconst.MethodOnAccountCreated:
		var a AccountCreatedArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.OnAccountCreated(env, a)
	case factoryconst.MethodDepositFees:
		return nil, c.DepositFees(env)
	case factoryconst.MethodWithdrawFees:
		var a WithdrawFeesArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.WithdrawFees(env, a)
	case factoryconst.MethodOnFeesWithdrawn:
		var a FeesWithdrawnArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, c.OnFeesWithdrawn(env, a)
	case factoryconst.MethodGetAccounts:
		return marshalResult(c.GetAccounts(env))
	case factoryconst.MethodGetFees:
		fees, err := c.GetFees(env)
		if err != nil {
			return nil, err
		}
		return marshalResult(fees)
	case factoryconst.MethodGetOwners:
		owners, err := c.GetOwners(env)
		if err != nil {
			return nil, err
		}
		return marshalResult(owners)
	case factoryconst.MethodVersion:
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

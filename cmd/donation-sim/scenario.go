package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opendonate/donation-contract/common"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/runtime"
)

// Scenario is a YAML description of a simulation run: the factory setup,
// the genesis accounts and the ordered steps to submit.
type Scenario struct {
	Factory  FactorySetup     `yaml:"factory"`
	Accounts []GenesisAccount `yaml:"accounts"`
	Steps    []Step           `yaml:"steps"`
}

// FactorySetup configures the factory contract account.
type FactorySetup struct {
	Account string   `yaml:"account"`
	Owners  []string `yaml:"owners"`
	// Naming is "prefix" (default) or "suffix".
	Naming string `yaml:"naming"`
	// Debit is "deferred" (default) or "optimistic".
	Debit string `yaml:"debit"`
	// Stake is the deposit attached to factory init, token denomination.
	// Defaults to the minimum account balance.
	Stake string `yaml:"stake"`
}

// GenesisAccount is a plain account funded at genesis.
type GenesisAccount struct {
	ID      string `yaml:"id"`
	Balance string `yaml:"balance"`
}

// Step is one submitted transaction. Amounts are in the token
// denomination.
type Step struct {
	// Action is one of create_account, donate, withdraw_donations,
	// withdraw_fees.
	Action  string `yaml:"action"`
	Signer  string `yaml:"signer"`
	Account string `yaml:"account"` // donation account, donate/withdraw_donations
	Deposit string `yaml:"deposit"`
	Amount  string `yaml:"amount"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Factory.Account == "" {
		return nil, fmt.Errorf("scenario: factory.account is required")
	}
	if len(s.Factory.Owners) == 0 {
		return nil, fmt.Errorf("scenario: factory.owners is required")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "create_account", "donate", "withdraw_donations", "withdraw_fees":
		default:
			return nil, fmt.Errorf("scenario: step %d: unknown action %q", i, st.Action)
		}
		if st.Signer == "" {
			return nil, fmt.Errorf("scenario: step %d: signer is required", i)
		}
	}
	return &s, nil
}

func (s *Scenario) naming() (common.NamingStrategy, error) {
	switch s.Factory.Naming {
	case "", "prefix":
		return common.PrefixNaming{Prefix: factoryconst.ChildPrefix}, nil
	case "suffix":
		return common.SuffixNaming{}, nil
	default:
		return nil, fmt.Errorf("scenario: unknown naming strategy %q", s.Factory.Naming)
	}
}

func (s *Scenario) debit() (common.DebitStrategy, error) {
	switch s.Factory.Debit {
	case "", "deferred":
		return common.DeferredDebit, nil
	case "optimistic":
		return common.OptimisticDebit, nil
	default:
		return 0, fmt.Errorf("scenario: unknown debit strategy %q", s.Factory.Debit)
	}
}

func (s *Scenario) stake() (runtime.Amount, error) {
	if s.Factory.Stake == "" {
		return common.MinAccountBalance, nil
	}
	return common.ParseTokens(s.Factory.Stake)
}

// Command donation-sim runs a donation platform scenario against the
// in-memory chain runtime and reports the resulting balances, fee counters
// and donation records.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/opendonate/donation-contract/common"
	donatecontract "github.com/opendonate/donation-contract/contracts/donate"
	"github.com/opendonate/donation-contract/contracts/donate/donateconst"
	factorycontract "github.com/opendonate/donation-contract/contracts/factory"
	"github.com/opendonate/donation-contract/contracts/factory/factoryconst"
	"github.com/opendonate/donation-contract/internal/chain"
	donaterpc "github.com/opendonate/donation-contract/rpc/donate"
	factoryrpc "github.com/opendonate/donation-contract/rpc/factory"
	"github.com/opendonate/donation-contract/runtime"
)

func main() {
	// .env is optional, flags and defaults win over it.
	_ = godotenv.Load()

	scenarioPath := flag.String("scenario", os.Getenv("DONATION_SIM_SCENARIO"), "Path to the scenario YAML file")
	debug := flag.Bool("debug", false, "Verbose chain and contract logging")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("missing scenario file, pass -scenario or set DONATION_SIM_SCENARIO")
	}

	logger := zap.NewNop()
	if *debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync() //nolint:errcheck

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(logger, scenario); err != nil {
		log.Fatal(err)
	}
}

func run(logger *zap.Logger, scenario *Scenario) error {
	naming, err := scenario.naming()
	if err != nil {
		return err
	}
	debit, err := scenario.debit()
	if err != nil {
		return err
	}
	stake, err := scenario.stake()
	if err != nil {
		return err
	}

	c := chain.New(chain.WithLogger(logger))
	c.RegisterProgram(donateconst.ProgramImage, func() runtime.Contract {
		return donatecontract.New(donatecontract.Config{Debit: debit})
	})
	c.RegisterProgram(factoryconst.ProgramImage, func() runtime.Contract {
		return factorycontract.New(factorycontract.Config{Naming: naming, Debit: debit})
	})

	for _, acc := range scenario.Accounts {
		balance, err := common.ParseTokens(acc.Balance)
		if err != nil {
			return fmt.Errorf("account %s: %w", acc.ID, err)
		}
		if _, err := c.CreateAccount(acc.ID, balance); err != nil {
			return err
		}
	}
	if _, err := c.CreateContractAccount(scenario.Factory.Account, runtime.Amount{}, factoryconst.ProgramImage); err != nil {
		return err
	}

	factory := factoryrpc.New(c, scenario.Factory.Account)
	if err := factory.Init(scenario.Factory.Owners[0], scenario.Factory.Owners, stake); err != nil {
		return fmt.Errorf("factory init: %w", err)
	}
	logger.Info("factory initialized", zap.String("account", scenario.Factory.Account))

	for i, step := range scenario.Steps {
		if err := runStep(c, factory, scenario, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}

	return report(c, factory, scenario)
}

func runStep(c *chain.Chain, factory *factoryrpc.Client, scenario *Scenario, step Step) error {
	switch step.Action {
	case "create_account":
		deposit, err := common.ParseTokens(step.Deposit)
		if err != nil {
			return err
		}
		return factory.CreateAccount(step.Signer, deposit)
	case "donate":
		deposit, err := common.ParseTokens(step.Deposit)
		if err != nil {
			return err
		}
		return donaterpc.New(c, step.Account).Donate(step.Signer, deposit)
	case "withdraw_donations":
		amount, err := common.ParseTokens(step.Amount)
		if err != nil {
			return err
		}
		return donaterpc.New(c, step.Account).WithdrawDonations(step.Signer, amount)
	case "withdraw_fees":
		amount, err := common.ParseTokens(step.Amount)
		if err != nil {
			return err
		}
		return factory.WithdrawFees(step.Signer, amount)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

func report(c *chain.Chain, factory *factoryrpc.Client, scenario *Scenario) error {
	fees, err := factory.GetFees()
	if err != nil {
		return err
	}
	accounts, err := factory.GetAccounts()
	if err != nil {
		return err
	}

	fmt.Printf("factory %s\n", scenario.Factory.Account)
	fmt.Printf("  accrued fees: %s tokens\n", common.FormatTokens(fees))

	for _, account := range accounts {
		client := donaterpc.New(c, account)
		balance, err := client.GetBalance()
		if err != nil {
			return err
		}
		donations, err := client.GetDonations()
		if err != nil {
			return err
		}
		fmt.Printf("donation account %s\n", account)
		fmt.Printf("  ledger balance: %s tokens\n", common.FormatTokens(balance))
		for _, d := range donations {
			fmt.Printf("  donation of %s tokens from %s\n", common.FormatTokens(d.Amount), d.Donor)
		}
	}

	for _, acc := range scenario.Accounts {
		fmt.Printf("account %s: %s tokens\n", acc.ID, common.FormatTokens(c.Balance(acc.ID)))
	}
	return nil
}

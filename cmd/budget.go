package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type budgetCmd struct {
	category string
	limit    float64
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set a monthly spending limit for a category" }
func (*budgetCmd) Usage() string {
	return `efx budget -c <category> -limit <amount>

  Sets the spending limit for a category in the current month, creating the
  budget on first use. The spent total is recomputed from the transactions.

Usage Examples:
# Cap groceries at 400 for this month.
$ efx budget -c groceries -limit 400

`
}

func (p *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.category, "c", "", "Category id to budget.")
	f.Float64Var(&p.limit, "limit", 0, "Spending limit for the month.")
}

func (p *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.category == "" {
		fmt.Fprintln(os.Stderr, "Error: -c is required.")
		return subcommands.ExitUsageError
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	budget, err := svc.SetBudget(ctx, p.category, expensefox.A(p.limit))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Budget for %s in %s: %s spent of %s\n",
		svc.Ledger().CategoryName(budget.Category), budget.Month,
		money(svc, budget.Spent), money(svc, budget.Limit))
	return subcommands.ExitSuccess
}

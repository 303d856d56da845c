package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type budgetsCmd struct {
	month string
	all   bool
}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "list budgets and their progress" }
func (*budgetsCmd) Usage() string {
	return `efx budgets [-m <month>] [-all]

  Lists the current month's budgets with spent, limit, and remaining amounts.
`
}

func (p *budgetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.month, "m", "", "Month to show (YYYY-MM). Defaults to the current month.")
	f.BoolVar(&p.all, "all", false, "Show budgets of every month.")
}

func (p *budgetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month := expensefox.ThisMonth()
	if p.month != "" {
		var err error
		month, err = expensefox.ParseMonth(p.month)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()
	ledger := svc.Ledger()

	var b strings.Builder
	fmt.Fprintln(&b, "| Month | Category | Spent | Limit | Remaining | Used |")
	fmt.Fprintln(&b, "|---|---|---:|---:|---:|---:|")
	n := 0
	for _, budget := range ledger.Budgets() {
		if !p.all && budget.Month != month {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.0f%% |\n",
			budget.Month,
			ledger.CategoryName(budget.Category),
			money(svc, budget.Spent),
			money(svc, budget.Limit),
			money(svc, budget.Remaining()),
			budget.Progress()*100,
		)
		n++
	}
	if n == 0 {
		fmt.Println("No budgets.")
		return subcommands.ExitSuccess
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

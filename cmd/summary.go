package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the current month's financial summary" }
func (*summaryCmd) Usage() string {
	return `efx summary

  Displays the total balance, the current month's income and expenses, and
  the per-category expense breakdown.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (p *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	var b strings.Builder
	fmt.Fprintln(&b, "# Summary")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Total balance: **%s**\n", money(svc, svc.TotalBalance()))
	fmt.Fprintf(&b, "- Income this month: %s\n", money(svc, svc.MonthlyIncome()))
	fmt.Fprintf(&b, "- Expenses this month: %s\n", money(svc, svc.MonthlyExpenses()))

	breakdown := svc.CategoryBreakdown()
	if len(breakdown) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Category | Spent | Share |")
		fmt.Fprintln(&b, "|---|---:|---:|")
		for _, row := range breakdown {
			fmt.Fprintf(&b, "| %s | %s | %.1f%% |\n",
				svc.Ledger().CategoryName(row.Category),
				money(svc, row.Spent),
				row.Share*100,
			)
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

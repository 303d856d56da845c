package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `efx accounts

  Lists all accounts with their current balances and the overall total.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (p *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	var b strings.Builder
	fmt.Fprintln(&b, "| Id | Name | Balance |")
	fmt.Fprintln(&b, "|---|---|---:|")
	for _, a := range svc.Ledger().Accounts() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", a.ID, a.Name, money(svc, a.Balance))
	}
	fmt.Fprintf(&b, "| | **Total** | **%s** |\n", money(svc, svc.TotalBalance()))

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type rmAccountCmd struct {
	id string
}

func (*rmAccountCmd) Name() string     { return "rm-account" }
func (*rmAccountCmd) Synopsis() string { return "remove an account" }
func (*rmAccountCmd) Usage() string {
	return `efx rm-account -id <account_id>

  Removes an account. The three built-in accounts cannot be removed.
  Transactions referencing the removed account are kept.
`
}

func (p *rmAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Account id to remove.")
}

func (p *rmAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	if expensefox.IsSeedAccount(p.id) {
		fmt.Fprintf(os.Stderr, "Account %s is built in and cannot be removed.\n", p.id)
		return subcommands.ExitFailure
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if _, ok := svc.Ledger().Account(p.id); !ok {
		fmt.Fprintf(os.Stderr, "No account with id %q.\n", p.id)
		return subcommands.ExitFailure
	}

	if err := svc.RemoveAccount(ctx, p.id); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Removed account %s\n", p.id)
	return subcommands.ExitSuccess
}

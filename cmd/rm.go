package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction" }
func (*rmCmd) Usage() string {
	return `efx rm -id <transaction_id>

  Deletes a transaction and reverses its effect on the account balance and on
  the current-month budget.
`
}

func (p *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Transaction id to delete.")
}

func (p *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if _, ok := svc.Ledger().Transaction(p.id); !ok {
		fmt.Fprintf(os.Stderr, "No transaction with id %q.\n", p.id)
		return subcommands.ExitFailure
	}

	if err := svc.DeleteTransaction(ctx, p.id); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted transaction %s\n", p.id)
	return subcommands.ExitSuccess
}

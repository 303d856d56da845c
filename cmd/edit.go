package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type editCmd struct {
	id          string
	typ         string
	amount      float64
	category    string
	account     string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit fields of an existing transaction" }
func (*editCmd) Usage() string {
	return `efx edit -id <transaction_id> [-t <type>] [-a <amount>] [-c <category>] [-acc <account_id>] [-d <description>] [-on <date>]

  Edits a transaction in place. Only the provided flags change; balances and
  budgets are reconciled by reversing the old effect and applying the new one.
`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Transaction id to edit.")
	f.StringVar(&p.typ, "t", "", "New transaction type.")
	f.Float64Var(&p.amount, "a", 0, "New amount.")
	f.StringVar(&p.category, "c", "", "New category id.")
	f.StringVar(&p.account, "acc", "", "New account id.")
	f.StringVar(&p.description, "d", "", "New description.")
	f.StringVar(&p.date, "on", "", "New date (RFC3339 or YYYY-MM-DD).")
}

func (p *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	// Only flags the user actually set become part of the partial update.
	var upd expensefox.TransactionUpdate
	var badFlag error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "t":
			typ, err := expensefox.ParseTransactionType(p.typ)
			if err != nil {
				badFlag = err
				return
			}
			upd.Type = &typ
		case "a":
			amount := expensefox.A(p.amount)
			upd.Amount = &amount
		case "c":
			upd.Category = &p.category
		case "acc":
			upd.AccountID = &p.account
		case "d":
			upd.Description = &p.description
		case "on":
			date, err := parseDateFlag(p.date)
			if err != nil {
				badFlag = err
				return
			}
			upd.Date = &date
		}
	})
	if badFlag != nil {
		fmt.Fprintln(os.Stderr, "Error:", badFlag)
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

	if err := svc.UpdateTransaction(ctx, p.id, upd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Updated transaction %s\n", p.id)
	return subcommands.ExitSuccess
}

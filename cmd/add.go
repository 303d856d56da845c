package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type addCmd struct {
	typ         string
	amount      float64
	category    string
	account     string
	description string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new expense or income" }
func (*addCmd) Usage() string {
	return `efx add -a <amount> -c <category> [-t expense|income] [-acc <account_id>] [-d <description>] [-on <date>]

  Records a new transaction. The referenced account's balance is adjusted,
  and for an expense the matching current-month budget is updated.

Usage Examples:
# A 12.50 grocery expense paid from the Cash account.
$ efx add -a 12.50 -c groceries -acc 1 -d "farmers market"

`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "expense", "Transaction type: expense or income.")
	f.Float64Var(&p.amount, "a", 0, "Transaction amount (positive).")
	f.StringVar(&p.category, "c", "", "Category id.")
	f.StringVar(&p.account, "acc", "1", "Account id the transaction applies to.")
	f.StringVar(&p.description, "d", "", "Free-form description.")
	f.StringVar(&p.date, "on", "", "Transaction date (RFC3339 or YYYY-MM-DD). Defaults to now.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := expensefox.ParseTransactionType(p.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	var date time.Time
	if p.date != "" {
		date, err = parseDateFlag(p.date)
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

	tx, err := svc.AddTransaction(ctx, expensefox.TransactionInput{
		Type:        typ,
		Amount:      expensefox.A(p.amount),
		Category:    p.category,
		AccountID:   p.account,
		Description: p.description,
		Date:        date,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s of %s in %s (id %s)\n", tx.Type, money(svc, tx.Amount), svc.Ledger().CategoryName(tx.Category), tx.ID)
	return subcommands.ExitSuccess
}

// parseDateFlag accepts full timestamps and bare dates.
func parseDateFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

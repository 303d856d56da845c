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

type txCmd struct {
	typ      string
	category string
	account  string
	month    string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `efx tx [-t <type>] [-c <category>] [-acc <account_id>] [-m <month>] [-head <n>]

  Lists transactions, most recent first, with options for filtering and
  limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "", "Only transactions of this type (expense or income).")
	f.StringVar(&p.category, "c", "", "Only transactions of this category.")
	f.StringVar(&p.account, "acc", "", "Only transactions on this account.")
	f.StringVar(&p.month, "m", "", "Only transactions in this month (YYYY-MM).")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()
	ledger := svc.Ledger()

	// Filters combine as a conjunction, so they are checked here instead of
	// being passed to Transactions (which accepts a disjunction).
	matches := func(tx expensefox.Transaction) bool { return true }
	if p.typ != "" {
		typ, err := expensefox.ParseTransactionType(p.typ)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		prev := matches
		matches = func(tx expensefox.Transaction) bool { return prev(tx) && tx.Type == typ }
	}
	if p.category != "" {
		prev := matches
		matches = func(tx expensefox.Transaction) bool { return prev(tx) && tx.Category == p.category }
	}
	if p.account != "" {
		prev := matches
		matches = func(tx expensefox.Transaction) bool { return prev(tx) && tx.AccountID == p.account }
	}
	if p.month != "" {
		month, err := expensefox.ParseMonth(p.month)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		prev := matches
		matches = func(tx expensefox.Transaction) bool { return prev(tx) && month.Contains(tx.Date) }
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| Date | Type | Amount | Category | Account | Description | Id |")
	fmt.Fprintln(&b, "|---|---|---:|---|---|---|---|")
	n := 0
	for tx := range ledger.Transactions(matches) {
		if p.head > 0 && n >= p.head {
			break
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date.Format("2006-01-02"),
			tx.Type,
			money(svc, tx.Amount),
			ledger.CategoryName(tx.Category),
			ledger.AccountName(tx.AccountID),
			tx.Description,
			tx.ID,
		)
		n++
	}
	if n == 0 {
		fmt.Println("No transactions.")
		return subcommands.ExitSuccess
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

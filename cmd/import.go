package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type importCmd struct {
	input       string
	items       string
	amount      string
	category    string
	account     string
	description string
	date        string
	typ         string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a third-party JSON export" }
func (*importCmd) Usage() string {
	return `efx import -i <file> [-items <path>] [-amount <path>] [-category <path>] [-account <path>] [-description <path>] [-date <path>] [-type <path>]

  Reads a JSON document and replays each record as a new transaction, so
  balances and budgets stay consistent with the imported history. The flags
  are jsonpath expressions; -items selects the record list, the others are
  evaluated against each record. The defaults match this app's own export.

Usage Examples:
# Import a bank's export where records live under "rows".
$ efx import -i bank.json -items "$.rows" -amount "$.value" -category "$.tag" -date "$.when"

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "Input file. Defaults to stdin.")
	f.StringVar(&p.items, "items", "$.transactions", "Path selecting the list of records.")
	f.StringVar(&p.amount, "amount", "$.amount", "Path to the amount of a record.")
	f.StringVar(&p.category, "category", "$.category", "Path to the category of a record.")
	f.StringVar(&p.account, "account", "$.accountId", "Path to the account of a record. Empty to skip.")
	f.StringVar(&p.description, "description", "$.description", "Path to the description of a record. Empty to skip.")
	f.StringVar(&p.date, "date", "$.date", "Path to the date of a record. Empty to use now.")
	f.StringVar(&p.typ, "type", "$.type", "Path to the type of a record. Empty when every record is an expense.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := os.Stdin
	if p.input != "" {
		var err error
		in, err = os.Open(p.input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		defer in.Close()
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	count, err := svc.ImportTransactions(ctx, in, expensefox.ImportMapping{
		Items:       p.items,
		Amount:      p.amount,
		Category:    p.category,
		Account:     p.account,
		Description: p.description,
		Date:        p.date,
		Type:        p.typ,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error after %d records: %v\n", count, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions\n", count)
	return subcommands.ExitSuccess
}

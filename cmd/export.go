package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the financial data as JSON" }
func (*exportCmd) Usage() string {
	return `efx export [-o <file>]

  Writes accounts, transactions, and budgets as one JSON document to stdout
  or to the given file. Preferences are not part of the export.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	out := os.Stdout
	if p.output != "" {
		out, err = os.Create(p.output)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := expensefox.Export(out, svc.Ledger()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if p.output != "" {
		fmt.Printf("Exported to %s\n", p.output)
	}
	return subcommands.ExitSuccess
}

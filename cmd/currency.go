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

type currencyCmd struct {
	code string
	list bool
}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "show or change the display currency" }
func (*currencyCmd) Usage() string {
	return `efx currency [-set <code>] [-list]

  Without flags, shows the current display currency. -set switches to another
  currency; amounts are not converted. -list shows the available currencies.
`
}

func (p *currencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "set", "", "Currency code to switch to (e.g. EUR).")
	f.BoolVar(&p.list, "list", false, "List the available currencies.")
}

func (p *currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.list {
		var b strings.Builder
		fmt.Fprintln(&b, "| Code | Symbol | Country |")
		fmt.Fprintln(&b, "|---|---|---|")
		for _, c := range expensefox.CurrencyOptions() {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Code, c.Symbol, c.Country)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if p.code == "" {
		current := svc.Ledger().Currency()
		fmt.Printf("Display currency: %s (%s)\n", current.Code, current.Symbol)
		return subcommands.ExitSuccess
	}

	code := strings.ToUpper(p.code)
	symbol := code
	if option, ok := expensefox.LookupCurrencyOption(code); ok {
		symbol = option.Symbol
	}
	if err := svc.SetCurrency(ctx, code, symbol); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Display currency set to %s\n", code)
	return subcommands.ExitSuccess
}

package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "erase all financial data" }
func (*resetCmd) Usage() string {
	return `efx reset [-f]

  Erases all transactions and budgets and restores the built-in accounts at
  zero balance. Currency and other preferences are kept. Asks for
  confirmation unless -f is given.
`
}

func (p *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "f", false, "Do not ask for confirmation.")
}

func (p *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.force {
		fmt.Print("This erases all accounts, transactions, and budgets. Type 'yes' to continue: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return subcommands.ExitSuccess
		}
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if err := svc.ResetAllData(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Println("All financial data erased.")
	return subcommands.ExitSuccess
}

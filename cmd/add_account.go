package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type addAccountCmd struct {
	name    string
	balance float64
	icon    string
	color   string
	noSeed  bool
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a new account" }
func (*addAccountCmd) Usage() string {
	return `efx add-account -n <name> [-b <balance>] [-icon <icon>] [-color <color>] [-no-seed]

  Creates a new account. A positive opening balance is recorded as one income
  transaction so the balance shows up in history; -no-seed skips that record.

Usage Examples:
# A savings account opened with 500 already in it.
$ efx add-account -n "Savings" -b 500

`
}

func (p *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "n", "", "Account name.")
	f.Float64Var(&p.balance, "b", 0, "Opening balance.")
	f.StringVar(&p.icon, "icon", "wallet", "Icon name.")
	f.StringVar(&p.color, "color", "#6C63FF", "Display color.")
	f.BoolVar(&p.noSeed, "no-seed", false, "Do not record the opening balance as an income transaction.")
}

func (p *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	account, err := svc.AddAccount(ctx, expensefox.AccountInput{
		Name:    p.name,
		Balance: expensefox.A(p.balance),
		Icon:    p.icon,
		Color:   p.color,
	}, !p.noSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created account %q with balance %s (id %s)\n", account.Name, money(svc, account.Balance), account.ID)
	return subcommands.ExitSuccess
}

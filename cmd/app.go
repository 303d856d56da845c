// Package cmd implements the CLI application to manage the expense ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
	"github.com/mgalet/expensefox/docs"
	"github.com/mgalet/expensefox/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&accountsCmd{}, "accounts")
	c.Register(&addAccountCmd{}, "accounts")
	c.Register(&rmAccountCmd{}, "accounts")

	c.Register(&budgetCmd{}, "budgets")
	c.Register(&budgetsCmd{}, "budgets")

	c.Register(&summaryCmd{}, "reports")

	c.Register(&currencyCmd{}, "settings")
	c.Register(&settingsCmd{}, "settings")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&resetCmd{}, "data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", defaultDataDir(), "Path to the folder holding the ledger database")

func defaultDataDir() string {
	if dir := os.Getenv("EXPENSEFOX_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expensefox"
	}
	return filepath.Join(home, ".expensefox")
}

// openService loads the ledger from the slot database and builds the engine.
// The returned closer must be called before the process exits.
func openService(ctx context.Context) (*expensefox.Service, func(), error) {
	st, err := store.OpenSQLite(filepath.Join(*dataDir, "expensefox.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("could not open ledger database: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ledger := expensefox.Load(ctx, st, logger)
	svc := expensefox.NewService(ledger, st, logger)

	welcome(ctx, svc)

	return svc, func() { st.Close() }, nil
}

// welcome shows the one-time welcome topic on first run, then clears the flag.
func welcome(ctx context.Context, svc *expensefox.Service) {
	if !svc.Ledger().FirstRun() {
		return
	}
	if doc, err := docs.Topic("welcome"); err == nil {
		printMarkdown(doc)
	}
	if err := svc.MarkReturningUser(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record welcome: %v\n", err)
	}
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built (e.g. no TTY information).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// money formats an amount in the ledger's display currency.
func money(svc *expensefox.Service, a expensefox.Amount) string {
	return svc.Ledger().Currency().Format(a)
}

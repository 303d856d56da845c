package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
)

type settingsCmd struct {
	theme       string
	tapFeedback string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change preferences" }
func (*settingsCmd) Usage() string {
	return `efx settings [-theme light|dark] [-tap-feedback true|false]

  Without flags, shows the current preferences.
`
}

func (p *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.theme, "theme", "", "Display theme: light or dark.")
	f.StringVar(&p.tapFeedback, "tap-feedback", "", "Enable or disable tap feedback.")
}

func (p *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if p.theme == "" && p.tapFeedback == "" {
		ledger := svc.Ledger()
		fmt.Printf("Theme: %s\n", ledger.Theme())
		fmt.Printf("Tap feedback: %v\n", ledger.TapFeedback())
		return subcommands.ExitSuccess
	}

	if p.theme != "" {
		theme, err := expensefox.ParseTheme(p.theme)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		if err := svc.SetTheme(ctx, theme); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Theme set to %s\n", theme)
	}

	if p.tapFeedback != "" {
		enabled, err := strconv.ParseBool(p.tapFeedback)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -tap-feedback value %q\n", p.tapFeedback)
			return subcommands.ExitUsageError
		}
		if err := svc.SetTapFeedback(ctx, enabled); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Tap feedback set to %v\n", enabled)
	}

	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mgalet/expensefox"
	"github.com/mgalet/expensefox/advisor"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI advisor" }
func (*assistCmd) Usage() string {
	return `efx assist [<question>]

  Starts an interactive chat with a finance advisor briefed on your ledger.
  Requires the GEMINI_API_KEY environment variable.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	svc, closer, err := openService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	briefing := advisor.Briefing(svc.Ledger(), expensefox.ThisMonth())
	a := advisor.New(os.Stdout, os.Stdin)

	var prompts []string
	if initialPrompt != "" {
		prompts = append(prompts, initialPrompt)
	}
	if err := a.Run(ctx, client, briefing, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// Command efx is the expensefox command line interface.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/mgalet/expensefox/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Optional .env for GEMINI_API_KEY and EXPENSEFOX_DATA.
	_ = godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the efx binary. It exits the
// process when invoked by the shell's completion machinery.
func completion() {
	typeFlag := predict.Set{"expense", "income"}
	dateFlag := predict.Nothing

	efx := &complete.Command{
		Flags: map[string]complete.Predictor{
			"data": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"add": {Flags: map[string]complete.Predictor{
				"t": typeFlag, "a": predict.Nothing, "c": predict.Nothing,
				"acc": predict.Nothing, "d": predict.Nothing, "on": dateFlag,
			}},
			"edit": {Flags: map[string]complete.Predictor{
				"id": predict.Nothing, "t": typeFlag, "a": predict.Nothing,
				"c": predict.Nothing, "acc": predict.Nothing, "d": predict.Nothing, "on": dateFlag,
			}},
			"rm": {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"tx": {Flags: map[string]complete.Predictor{
				"t": typeFlag, "c": predict.Nothing, "acc": predict.Nothing,
				"m": predict.Nothing, "head": predict.Nothing,
			}},
			"accounts": {},
			"add-account": {Flags: map[string]complete.Predictor{
				"n": predict.Nothing, "b": predict.Nothing, "icon": predict.Nothing,
				"color": predict.Nothing, "no-seed": predict.Nothing,
			}},
			"rm-account": {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"budget":     {Flags: map[string]complete.Predictor{"c": predict.Nothing, "limit": predict.Nothing}},
			"budgets":    {Flags: map[string]complete.Predictor{"m": predict.Nothing, "all": predict.Nothing}},
			"summary":    {},
			"currency":   {Flags: map[string]complete.Predictor{"set": predict.Nothing, "list": predict.Nothing}},
			"settings": {Flags: map[string]complete.Predictor{
				"theme": predict.Set{"light", "dark"}, "tap-feedback": predict.Set{"true", "false"},
			}},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
			"import": {Flags: map[string]complete.Predictor{
				"i": predict.Files("*.json"), "items": predict.Nothing, "amount": predict.Nothing,
				"category": predict.Nothing, "account": predict.Nothing, "description": predict.Nothing,
				"date": predict.Nothing, "type": predict.Nothing,
			}},
			"reset":  {Flags: map[string]complete.Predictor{"f": predict.Nothing}},
			"topic":  {Args: predict.Set{"readme", "welcome", "budgets", "import", "*"}},
			"assist": {},
		},
	}
	efx.Complete("efx")
}

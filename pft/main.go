// Command pft reconciles the peer funds spreadsheets.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/peerfunds/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete("pft")

	commander := subcommands.NewCommander(flag.CommandLine, "pft")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

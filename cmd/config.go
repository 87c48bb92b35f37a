package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

type configCmd struct{}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print the configuration in use" }
func (*configCmd) Usage() string {
	return `pft config

  Prints the configuration in use as YAML: the defaults, overlaid with the -config
  file if any. The output is a valid -config file.
`
}

func (*configCmd) SetFlags(f *flag.FlagSet) {}

func (*configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	if err := cfg.Encode(os.Stdout); err != nil {
		return failure("%v", err)
	}
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"path/filepath"

	"github.com/etnz/peerfunds"
	"github.com/etnz/peerfunds/renderer"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	registry string
	export   string
	output   string
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "find the export records of companies new to the registry or out of date"
}
func (*compareCmd) Usage() string {
	return `pft compare -registry <file> -export <file> [-o <file>]

  Compares a tracker export with the Peer Funds registry. Writes the export records
  of the companies missing from the registry, then those of the companies whose
  registry entry is stale, and prints a report.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.registry, "registry", "", "Peer Funds registry (xlsx or csv)")
	f.StringVar(&c.export, "export", "", "tracker export (xlsx or csv)")
	f.StringVar(&c.output, "o", "查缺补漏数据.xlsx", "output file")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("registry", c.registry, "export", c.export); err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	registry, err := peerfunds.Open(c.registry, cfg.Registry)
	if err != nil {
		return failure("%v", err)
	}
	export, err := peerfunds.Open(c.export, cfg.Export)
	if err != nil {
		return failure("%v", err)
	}

	res, err := peerfunds.Compare(registry, export, cfg)
	if err != nil {
		return failure("could not compare: %v", err)
	}
	if err := write(c.output, res.Table); err != nil {
		return failure("%v", err)
	}
	printMarkdown(renderer.RenderCompare(renderer.NewCompare(res, filepath.Base(c.registry), filepath.Base(c.export), cfg.Reconcile.StaleAfterMonths)))
	return subcommands.ExitSuccess
}

// matchedCmd holds the flags for the 'matched' subcommand.
type matchedCmd struct {
	registry string
	export   string
	output   string
}

func (*matchedCmd) Name() string { return "matched" }
func (*matchedCmd) Synopsis() string {
	return "find the export records of companies already in the registry"
}
func (*matchedCmd) Usage() string {
	return `pft matched -registry <file> -export <file> [-o <file>]

  Writes the export records of the companies already in the registry.
`
}

func (c *matchedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.registry, "registry", "", "Peer Funds registry (xlsx or csv)")
	f.StringVar(&c.export, "export", "", "tracker export (xlsx or csv)")
	f.StringVar(&c.output, "o", "matched.xlsx", "output file")
}

func (c *matchedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("registry", c.registry, "export", c.export); err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	registry, err := peerfunds.Open(c.registry, cfg.Registry)
	if err != nil {
		return failure("%v", err)
	}
	export, err := peerfunds.Open(c.export, cfg.Export)
	if err != nil {
		return failure("%v", err)
	}

	matched, err := peerfunds.Matched(registry, export, cfg.Reconcile)
	if err != nil {
		return failure("could not match: %v", err)
	}
	if err := write(c.output, matched); err != nil {
		return failure("%v", err)
	}
	return subcommands.ExitSuccess
}

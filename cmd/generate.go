package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/etnz/peerfunds"
	"github.com/etnz/peerfunds/date"
	"github.com/etnz/peerfunds/renderer"
	"github.com/google/subcommands"
)

// generateCmd holds the flags for the 'generate' subcommand.
type generateCmd struct {
	exportA  string
	exportB  string
	profiles string
	tracked  string
	date     string
	output   string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "build the Peer Funds table from two exports" }
func (*generateCmd) Usage() string {
	return `pft generate -a <file> -b <file> -profiles <file> -tracked <file> [-date <date>] [-o <file>]

  Merges the two exports, cleans them, projects them into the Peer Funds columns,
  back-fills the notes from the profiles and tags the tracked investors.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exportA, "a", "", "first export, it wins over the second one")
	f.StringVar(&c.exportB, "b", "", "second export")
	f.StringVar(&c.profiles, "profiles", "", "company profiles export")
	f.StringVar(&c.tracked, "tracked", "", "tracked funds list")
	f.StringVar(&c.date, "date", "", "date stamped in the Updated column (defaults to today)")
	f.StringVar(&c.output, "o", "completed_peer_fund_table.xlsx", "output file")
}

func (c *generateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("a", c.exportA, "b", c.exportB, "profiles", c.profiles, "tracked", c.tracked); err != nil {
		return usageError(err)
	}
	today := date.Today()
	if c.date != "" {
		var err error
		if today, err = date.Parse(c.date); err != nil {
			return usageError(fmt.Errorf("invalid -date: %w", err))
		}
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}

	var in peerfunds.GenerateInput
	for _, x := range []struct {
		t    **peerfunds.Table
		path string
		l    peerfunds.Layout
	}{
		{&in.ExportA, c.exportA, cfg.ExportA},
		{&in.ExportB, c.exportB, cfg.ExportB},
		{&in.Profiles, c.profiles, cfg.Profiles},
		{&in.Tracked, c.tracked, cfg.Tracked},
	} {
		if *x.t, err = peerfunds.Open(x.path, x.l); err != nil {
			return failure("%v", err)
		}
	}

	res, err := peerfunds.Generate(in, cfg, today)
	if err != nil {
		return failure("could not generate: %v", err)
	}
	if err := write(c.output, res.Table); err != nil {
		return failure("%v", err)
	}
	printMarkdown(renderer.RenderGenerate(renderer.NewGenerate(res, today,
		filepath.Base(c.exportA), filepath.Base(c.exportB), filepath.Base(c.profiles), filepath.Base(c.tracked), c.output)))
	return subcommands.ExitSuccess
}

// missingCmd holds the flags for the 'missing' subcommand.
type missingCmd struct {
	exportA  string
	exportB  string
	profiles string
	output   string
}

func (*missingCmd) Name() string { return "missing" }
func (*missingCmd) Synopsis() string {
	return "list the profiled companies absent from both exports"
}
func (*missingCmd) Usage() string {
	return `pft missing -a <file> -b <file> -profiles <file> [-o <file>]

  Merges the two exports and writes the profiles of the companies that are not in
  the merged table.
`
}

func (c *missingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exportA, "a", "", "first export")
	f.StringVar(&c.exportB, "b", "", "second export")
	f.StringVar(&c.profiles, "profiles", "", "company profiles export")
	f.StringVar(&c.output, "o", "missing_companies.xlsx", "output file")
}

func (c *missingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("a", c.exportA, "b", c.exportB, "profiles", c.profiles); err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	a, err := peerfunds.Open(c.exportA, cfg.ExportA)
	if err != nil {
		return failure("%v", err)
	}
	b, err := peerfunds.Open(c.exportB, cfg.ExportB)
	if err != nil {
		return failure("%v", err)
	}
	profiles, err := peerfunds.Open(c.profiles, cfg.Profiles)
	if err != nil {
		return failure("%v", err)
	}

	res, err := peerfunds.FindMissing(a, b, profiles, cfg)
	if err != nil {
		return failure("could not find missing companies: %v", err)
	}
	if err := write(c.output, res.Table); err != nil {
		return failure("%v", err)
	}
	printMarkdown(renderer.RenderMissing(renderer.NewMissing(res,
		filepath.Base(c.exportA), filepath.Base(c.exportB), filepath.Base(c.profiles), cfg.Missing.ProfileKey)))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/peerfunds"
	"github.com/etnz/peerfunds/renderer"
	"github.com/google/subcommands"
)

// mergeCmd holds the flags for the 'merge' subcommand.
type mergeCmd struct {
	exportA string
	exportB string
	output  string
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "normalize and merge two exports" }
func (*mergeCmd) Usage() string {
	return `pft merge -a <file> -b <file> [-o <file>]

  Cuts both exports at their footer, imposes the export columns, appends the second
  export to the first one and drops the duplicated companies.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exportA, "a", "", "first export, it wins over the second one")
	f.StringVar(&c.exportB, "b", "", "second export")
	f.StringVar(&c.output, "o", "merged.xlsx", "output file")
}

func (c *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("a", c.exportA, "b", c.exportB); err != nil {
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

	res, err := peerfunds.Merge(a, b, cfg.Merge)
	if err != nil {
		return failure("could not merge: %v", err)
	}
	if err := write(c.output, res.Table); err != nil {
		return failure("%v", err)
	}
	printMarkdown(renderer.RenderMerge(renderer.NewMerge(res, filepath.Base(c.exportA), filepath.Base(c.exportB))))
	return subcommands.ExitSuccess
}

// notesCmd holds the flags for the 'notes' subcommand.
type notesCmd struct {
	pf       string
	profiles string
	output   string
}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "back-fill the notes of a Peer Funds table from the profiles" }
func (*notesCmd) Usage() string {
	return `pft notes -pf <file> -profiles <file> [-o <file>]

  Copies the profile description of each company into the Notes column.
`
}

func (c *notesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pf, "pf", "", "Peer Funds table")
	f.StringVar(&c.profiles, "profiles", "", "company profiles export")
	f.StringVar(&c.output, "o", "peer_funds_notes.xlsx", "output file")
}

func (c *notesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("pf", c.pf, "profiles", c.profiles); err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	pf, err := peerfunds.Open(c.pf, cfg.PeerFunds)
	if err != nil {
		return failure("%v", err)
	}
	profiles, err := peerfunds.Open(c.profiles, cfg.Profiles)
	if err != nil {
		return failure("%v", err)
	}

	out, filled, err := peerfunds.BackfillNotes(pf, profiles, cfg.Notes)
	if err != nil {
		return failure("could not back-fill notes: %v", err)
	}
	if err := write(c.output, out); err != nil {
		return failure("%v", err)
	}
	fmt.Fprintf(os.Stderr, "%d of %d notes filled\n", filled, out.Len())
	return subcommands.ExitSuccess
}

// investorsCmd holds the flags for the 'investors' subcommand.
type investorsCmd struct {
	pf      string
	tracked string
	output  string
}

func (*investorsCmd) Name() string     { return "investors" }
func (*investorsCmd) Synopsis() string { return "tag the tracked investors of a Peer Funds table" }
func (*investorsCmd) Usage() string {
	return `pft investors -pf <file> -tracked <file> [-o <file>]

  Fills the Peer Fund column with the investors that match a tracked fund.
`
}

func (c *investorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pf, "pf", "", "Peer Funds table")
	f.StringVar(&c.tracked, "tracked", "", "tracked funds list")
	f.StringVar(&c.output, "o", "peer_funds_investors.xlsx", "output file")
}

func (c *investorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := requireFlags("pf", c.pf, "tracked", c.tracked); err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	pf, err := peerfunds.Open(c.pf, cfg.PeerFunds)
	if err != nil {
		return failure("%v", err)
	}
	tracked, err := peerfunds.Open(c.tracked, cfg.Tracked)
	if err != nil {
		return failure("%v", err)
	}

	out, tagged, err := peerfunds.TagInvestors(pf, peerfunds.TrackedFrom(tracked), cfg.Investors)
	if err != nil {
		return failure("could not tag investors: %v", err)
	}
	if err := write(c.output, out); err != nil {
		return failure("%v", err)
	}
	fmt.Fprintf(os.Stderr, "%d of %d records tagged\n", tagged, out.Len())
	return subcommands.ExitSuccess
}

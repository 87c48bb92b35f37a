// Package cmd implements the pft command line application.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/peerfunds"
	"github.com/google/subcommands"
)

// Commands are the pft subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"workflows": {&compareCmd{}, &generateCmd{}, &missingCmd{}},
	"steps":     {&matchedCmd{}, &mergeCmd{}, &notesCmd{}, &investorsCmd{}},
	"":          {&serveCmd{}, &topicCmd{}, &configCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range []string{"workflows", "steps", ""} {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML file overriding the default column names and layouts")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose logging")

// SetupLogging installs the logger used by the library, on stderr.
func SetupLogging() {
	level := slog.LevelWarn
	if *Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	peerfunds.SetLogger(logger)
}

// loadConfig returns the configuration selected by the -config flag.
func loadConfig() (*peerfunds.Config, error) { return peerfunds.LoadConfig(*configFile) }

// requireFlags returns an error for the first empty flag, given as name, value pairs.
func requireFlags(nameValues ...string) error {
	for i := 0; i+1 < len(nameValues); i += 2 {
		if nameValues[i+1] == "" {
			return fmt.Errorf("-%s is required", nameValues[i])
		}
	}
	return nil
}

// write saves t to path and reports it on stderr.
func write(path string, t *peerfunds.Table) error {
	if err := peerfunds.Create(path, t); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d records written to %s\n", t.Len(), path)
	return nil
}

// printMarkdown renders md for the terminal, or prints it as is when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// usageError reports a missing or invalid flag.
func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}

// failure reports an error that occurred while running a command.
func failure(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// Known reports whether name is a pft subcommand, the subcommands builtins included.
func Known(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

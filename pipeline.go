package peerfunds

import (
	"fmt"

	"github.com/etnz/peerfunds/date"
)

// GenerateInput holds the tables needed to generate a Peer Funds table.
type GenerateInput struct {
	ExportA  *Table
	ExportB  *Table
	Profiles *Table
	Tracked  *Table
}

// GenerateResult is the outcome of Generate, with statistics for each stage.
type GenerateResult struct {
	Table       *Table
	Merge       *MergeResult
	NotesFilled int
	Tagged      int
}

// Generate builds the Peer Funds table: it merges both exports, cleans the funding
// history, projects the records into the canonical schema, back-fills the notes
// from the profiles and tags the tracked investors.
func Generate(in GenerateInput, cfg *Config, today date.Date) (*GenerateResult, error) {
	merged, err := Merge(in.ExportA, in.ExportB, cfg.Merge)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	formatted, err := Format(merged.Table, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	pf, err := Project(formatted, cfg.Project, today)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	pf, filled, err := BackfillNotes(pf, in.Profiles, cfg.Notes)
	if err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}
	pf, tagged, err := TagInvestors(pf, TrackedFrom(in.Tracked), cfg.Investors)
	if err != nil {
		return nil, fmt.Errorf("investors: %w", err)
	}
	pf.Name = "peer funds"
	return &GenerateResult{Table: pf, Merge: merged, NotesFilled: filled, Tagged: tagged}, nil
}

// Compare finds the export records of companies that are new to the registry or
// whose registry entry is stale.
func Compare(registry, export *Table, cfg *Config) (*Reconciliation, error) {
	return Reconcile(registry, export, cfg.Reconcile)
}

// MissingResult is the outcome of FindMissing.
type MissingResult struct {
	Table *Table
	Merge *MergeResult
	Known int
}

// FindMissing returns the profiles of the companies absent from both exports.
func FindMissing(a, b, profiles *Table, cfg *Config) (*MissingResult, error) {
	merged, err := Merge(a, b, cfg.Merge)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	known, err := Keys(merged.Table, cfg.Missing.Key)
	if err != nil {
		return nil, err
	}
	missing, err := Missing(known, profiles, cfg.Missing.ProfileKey)
	if err != nil {
		return nil, err
	}
	return &MissingResult{Table: missing, Merge: merged, Known: known.Len()}, nil
}

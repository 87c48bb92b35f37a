package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/peerfunds"
	"github.com/etnz/peerfunds/date"
)

// Compare is the view of a reconciliation between a registry and an export.
type Compare struct {
	Registry  string    `json:"registry"`
	Export    string    `json:"export"`
	Threshold int       `json:"threshold"`
	Records   int       `json:"records"`
	New       []string  `json:"new"`
	Stale     []Stale   `json:"stale"`
	Skipped   []Skipped `json:"skipped"`
}

// Stale is a company whose registry entry is out of date.
type Stale struct {
	Company      string `json:"company"`
	RegistryDate string `json:"registryDate"`
	ExportDate   string `json:"exportDate"`
	Gap          string `json:"gap"`
}

// Skipped is a company left out of the staleness test.
type Skipped struct {
	Company string `json:"company"`
	Reason  string `json:"reason"`
}

// NewCompare builds the Compare view of r.
func NewCompare(r *peerfunds.Reconciliation, registry, export string, threshold int) *Compare {
	c := &Compare{
		Registry:  registry,
		Export:    export,
		Threshold: threshold,
		Records:   r.Table.Len(),
		New:       r.New,
	}
	for _, s := range r.Stale {
		c.Stale = append(c.Stale, Stale{
			Company:      s.Key,
			RegistryDate: s.RegistryDate.String(),
			ExportDate:   s.ExportDate.String(),
			Gap:          Gap(s.Span),
		})
	}
	for _, s := range r.Skipped {
		c.Skipped = append(c.Skipped, Skipped{Company: s.Key, Reason: s.Reason})
	}
	return c
}

// Gap formats a span for humans: "1 year 2 months 3 days". Zero parts are omitted.
func Gap(s date.Span) string {
	var parts []string
	for _, p := range []struct {
		n    int
		unit string
	}{{s.Years, "year"}, {s.Months, "month"}, {s.Days, "day"}} {
		switch {
		case p.n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", p.unit))
		case p.n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", p.n, p.unit))
		}
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, " ")
}

// Bound is where an export data block ended.
type Bound struct {
	End      int  `json:"end"`
	Sentinel bool `json:"sentinel"`
}

// Merge is the view of the merge of two exports.
type Merge struct {
	ExportA    string   `json:"exportA"`
	ExportB    string   `json:"exportB"`
	BoundA     Bound    `json:"boundA"`
	BoundB     Bound    `json:"boundB"`
	FromA      int      `json:"fromA"`
	FromB      int      `json:"fromB"`
	Records    int      `json:"records"`
	Duplicates []string `json:"duplicates"`
}

// NewMerge builds the Merge view of m.
func NewMerge(m *peerfunds.MergeResult, exportA, exportB string) *Merge {
	return &Merge{
		ExportA:    exportA,
		ExportB:    exportB,
		BoundA:     Bound(m.BoundA),
		BoundB:     Bound(m.BoundB),
		FromA:      m.FromA,
		FromB:      m.FromB,
		Records:    m.Table.Len(),
		Duplicates: m.Duplicates,
	}
}

// Generate is the view of a Peer Funds table generation.
type Generate struct {
	Date        string `json:"date"`
	Merge       *Merge `json:"merge"`
	Profiles    string `json:"profiles"`
	Tracked     string `json:"tracked"`
	NotesFilled int    `json:"notesFilled"`
	Tagged      int    `json:"tagged"`
	Records     int    `json:"records"`
	Output      string `json:"output"`
}

// NewGenerate builds the Generate view of g. output is the file written, if any.
func NewGenerate(g *peerfunds.GenerateResult, on date.Date, exportA, exportB, profiles, tracked, output string) *Generate {
	return &Generate{
		Date:        on.String(),
		Merge:       NewMerge(g.Merge, exportA, exportB),
		Profiles:    profiles,
		Tracked:     tracked,
		NotesFilled: g.NotesFilled,
		Tagged:      g.Tagged,
		Records:     g.Table.Len(),
		Output:      output,
	}
}

// Missing is the view of the companies missing from the exports.
type Missing struct {
	Merge     *Merge   `json:"merge"`
	Profiles  string   `json:"profiles"`
	Known     int      `json:"known"`
	Companies []string `json:"companies"`
}

// NewMissing builds the Missing view of m, key names the company column of the
// profiles.
func NewMissing(m *peerfunds.MissingResult, exportA, exportB, profiles, key string) *Missing {
	v := &Missing{
		Merge:    NewMerge(m.Merge, exportA, exportB),
		Profiles: profiles,
		Known:    m.Known,
	}
	for _, rec := range m.Table.Records {
		v.Companies = append(v.Companies, rec[key])
	}
	return v
}

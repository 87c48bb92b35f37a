package peerfunds

import (
	"fmt"
	"strings"

	"github.com/etnz/peerfunds/date"
)

// Rewrite replaces every occurrence of Old with New.
type Rewrite struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Rewrites is an ordered list of Rewrite.
//
// They are applied one after the other, each on the output of the previous one, so
// a rewrite can match text produced by an earlier one.
type Rewrites []Rewrite

// Apply applies the rewrites in order.
func (rs Rewrites) Apply(s string) string {
	for _, r := range rs {
		if r.Old == "" {
			continue
		}
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s
}

// FormatConfig names the free text column cleaned by Format and the rewrites to apply.
type FormatConfig struct {
	Column   string   `yaml:"column"`
	Rewrites Rewrites `yaml:"rewrites"`
}

// Format returns a copy of t where the configured column has been rewritten.
func Format(t *Table, cfg FormatConfig) (*Table, error) {
	if err := t.Require(cfg.Column); err != nil {
		return nil, err
	}
	c := t.Clone()
	for _, rec := range c.Records {
		rec[cfg.Column] = cfg.Rewrites.Apply(rec[cfg.Column])
	}
	return c, nil
}

// Field copies the export column From into the output column To.
type Field struct {
	To   string `yaml:"to"`
	From string `yaml:"from"`
}

// ProjectConfig describes the canonical Peer Funds schema and how export records
// map into it.
type ProjectConfig struct {
	// Columns is the canonical output schema, in order.
	Columns []string `yaml:"columns"`
	Fields  []Field  `yaml:"fields"`

	// Updated is stamped with the processing date, formatted with DateLayout.
	Updated    string `yaml:"updated"`
	DateLayout string `yaml:"date_layout"`

	// Category keeps only its first segment, up to CategorySeparator.
	Category          string `yaml:"category"`
	CategorySeparator string `yaml:"category_separator"`

	// Amount has its Placeholder value replaced by NotApplicable.
	Amount        string `yaml:"amount"`
	Placeholder   string `yaml:"placeholder"`
	NotApplicable string `yaml:"not_applicable"`

	// City is cleaned with TrimLocation.
	City           string `yaml:"city"`
	LocationMarker string `yaml:"location_marker"`
}

// Project builds the canonical Peer Funds table from export records.
//
// Canonical columns without a source field are left blank. today is stamped in the
// Updated column.
func Project(t *Table, cfg ProjectConfig, today date.Date) (*Table, error) {
	for _, f := range cfg.Fields {
		if err := t.Require(f.From); err != nil {
			return nil, err
		}
	}
	out := NewTable(t.Name, cfg.Columns...)
	for _, f := range cfg.Fields {
		if !out.HasColumn(f.To) {
			return nil, fmt.Errorf("field %q is not a canonical column", f.To)
		}
	}

	stamp := today.Format(cfg.DateLayout)
	for _, src := range t.Records {
		rec := make(Record, len(out.Columns))
		for _, col := range out.Columns {
			rec[col] = ""
		}
		for _, f := range cfg.Fields {
			rec[f.To] = src[f.From]
		}
		if cfg.Updated != "" {
			rec[cfg.Updated] = stamp
		}
		if cfg.Category != "" && cfg.CategorySeparator != "" {
			rec[cfg.Category], _, _ = strings.Cut(rec[cfg.Category], cfg.CategorySeparator)
		}
		if cfg.Amount != "" && cfg.Placeholder != "" && rec[cfg.Amount] == cfg.Placeholder {
			rec[cfg.Amount] = cfg.NotApplicable
		}
		if cfg.City != "" {
			rec[cfg.City] = TrimLocation(rec[cfg.City], cfg.LocationMarker)
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

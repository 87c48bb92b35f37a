package peerfunds

import (
	"strconv"
	"strings"
)

// MergeConfig describes how two exports are normalized into one table.
type MergeConfig struct {
	// Columns is the schema imposed, by position, on both exports.
	Columns []string `yaml:"columns"`
	// Key is the business key used to drop duplicates.
	Key string `yaml:"key"`
	// IndexColumn is renumbered 1..n after deduplication. Optional.
	IndexColumn string `yaml:"index_column"`
	// LocationColumn is cleaned with TrimLocation. Optional.
	LocationColumn string `yaml:"location_column"`
	LocationMarker string `yaml:"location_marker"`
}

// MergeResult is the outcome of Merge.
type MergeResult struct {
	Table *Table
	// BoundA and BoundB are where each export data block ended.
	BoundA, BoundB Bound
	// FromA and FromB count the records kept from each export.
	FromA, FromB int
	// Duplicates lists the keys of the records dropped, in order.
	Duplicates []string
}

// Merge normalizes two exports with different layouts into a single table.
//
// Each export is cut at its sentinel row (see FindBound), renamed to the configured
// columns, and appended: a before b. Records repeating a key already seen are dropped
// so that a wins over b. The index column is renumbered and the location column is
// trimmed.
func Merge(a, b *Table, cfg MergeConfig) (*MergeResult, error) {
	res := &MergeResult{BoundA: FindBound(a), BoundB: FindBound(b)}
	for _, x := range []struct {
		t *Table
		b Bound
	}{{a, res.BoundA}, {b, res.BoundB}} {
		if !x.b.Sentinel {
			logger.Warn("no sentinel row found, using the whole table", "table", x.t.Name, "records", x.b.End)
		}
	}

	ra, err := a.Cut(res.BoundA).Rename(cfg.Columns)
	if err != nil {
		return nil, err
	}
	rb, err := b.Cut(res.BoundB).Rename(cfg.Columns)
	if err != nil {
		return nil, err
	}
	if err := ra.Require(cfg.Key); err != nil {
		return nil, err
	}

	res.FromA = dedupe(ra, cfg.Key).Len()
	merged, dups := dedupeKeys(Concat(a.Name, ra, rb), cfg.Key)
	res.Duplicates = dups
	res.FromB = merged.Len() - res.FromA

	if cfg.IndexColumn != "" && merged.HasColumn(cfg.IndexColumn) {
		for i, rec := range merged.Records {
			rec[cfg.IndexColumn] = strconv.Itoa(i + 1)
		}
	}
	if cfg.LocationColumn != "" && merged.HasColumn(cfg.LocationColumn) {
		for _, rec := range merged.Records {
			rec[cfg.LocationColumn] = TrimLocation(rec[cfg.LocationColumn], cfg.LocationMarker)
		}
	}
	res.Table = merged
	return res, nil
}

// Dedupe returns a copy of t keeping only the first record of each key. Blank keys
// are never considered duplicates. Dedupe is idempotent.
func Dedupe(t *Table, key string) (*Table, error) {
	if err := t.Require(key); err != nil {
		return nil, err
	}
	return dedupe(t, key), nil
}

func dedupe(t *Table, key string) *Table {
	kept, _ := dedupeKeys(t, key)
	return kept
}

// dedupeKeys is Dedupe without the column check. It also returns the trimmed keys of
// the dropped records, in order.
func dedupeKeys(t *Table, key string) (*Table, []string) {
	var dropped []string
	seen := NewSet()
	kept := t.Filter(func(r Record) bool {
		if seen.Has(r[key]) {
			dropped = append(dropped, trimKey(r[key]))
			return false
		}
		seen.Add(r[key])
		return true
	})
	return kept, dropped
}

// TrimLocation drops the marker and everything after it, when something follows
// the marker: "上海市浦东新区" becomes "上海", "北京市" is left as is.
func TrimLocation(s, marker string) string {
	if marker == "" {
		return s
	}
	if i := strings.Index(s, marker); i >= 0 && i+len(marker) < len(s) {
		return s[:i]
	}
	return s
}

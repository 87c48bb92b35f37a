package peerfunds

import (
	"errors"

	"github.com/etnz/peerfunds/date"
)

// ReconcileConfig names the columns compared by Reconcile.
type ReconcileConfig struct {
	RegistryKey  string `yaml:"registry_key"`
	RegistryDate string `yaml:"registry_date"`
	ExportKey    string `yaml:"export_key"`
	ExportDate   string `yaml:"export_date"`
	// StaleAfterMonths is the longest gap, in calendar months, tolerated between the
	// registry date and the export date of a company. Any whole year is stale.
	StaleAfterMonths int `yaml:"stale_after_months"`
}

// staleness is enabled when both date columns are named.
func (c ReconcileConfig) staleness() bool { return c.RegistryDate != "" && c.ExportDate != "" }

// StaleEntry describes a company whose registry entry is out of date.
type StaleEntry struct {
	Key          string
	RegistryDate date.Date
	ExportDate   date.Date
	Span         date.Span
}

// Skip records a company left out of the staleness test, and why.
type Skip struct {
	Key    string
	Reason string
}

// Reconciliation is the outcome of Reconcile.
type Reconciliation struct {
	// Table holds the export records of new companies, then those of stale ones.
	Table   *Table
	New     []string
	Stale   []StaleEntry
	Skipped []Skip
}

// Reconcile compares a registry O with a new export N.
//
// New companies are N − O. Stale companies are in both, and the calendar span between
// their registry date and their export date exceeds the configured threshold. Only
// the first record of a company on each side is compared. Blank keys are ignored;
// blank or unparsable dates exclude the company from the staleness test only.
func Reconcile(registry, export *Table, cfg ReconcileConfig) (*Reconciliation, error) {
	o, err := Keys(registry, cfg.RegistryKey)
	if err != nil {
		return nil, err
	}
	n, err := Keys(export, cfg.ExportKey)
	if err != nil {
		return nil, err
	}
	if cfg.staleness() {
		if err := registry.Require(cfg.RegistryDate); err != nil {
			return nil, err
		}
		if err := export.Require(cfg.ExportDate); err != nil {
			return nil, err
		}
	}

	res := &Reconciliation{New: n.Difference(o).Keys()}

	stale := NewSet()
	if cfg.staleness() {
		registryFirst := firstByKey(registry, cfg.RegistryKey)
		exportFirst := firstByKey(export, cfg.ExportKey)
		for _, key := range n.Intersect(o).Keys() {
			od, oerr := date.Parse(registryFirst[key][cfg.RegistryDate])
			nd, nerr := date.Parse(exportFirst[key][cfg.ExportDate])
			if err := errors.Join(oerr, nerr); err != nil {
				logger.Warn("skipping staleness test", "company", key, "error", err)
				res.Skipped = append(res.Skipped, Skip{Key: key, Reason: err.Error()})
				continue
			}
			span := date.Between(od, nd)
			if span.Exceeds(cfg.StaleAfterMonths) {
				stale.Add(key)
				res.Stale = append(res.Stale, StaleEntry{Key: key, RegistryDate: od, ExportDate: nd, Span: span})
			}
		}
	}

	isNew := NewSet(res.New...)
	newRecords := export.Filter(func(r Record) bool { return isNew.Has(r[cfg.ExportKey]) })
	staleRecords := export.Filter(func(r Record) bool { return stale.Has(r[cfg.ExportKey]) })
	res.Table = Concat(export.Name, newRecords, staleRecords)
	return res, nil
}

// Matched returns the export records of companies already in the registry.
func Matched(registry, export *Table, cfg ReconcileConfig) (*Table, error) {
	o, err := Keys(registry, cfg.RegistryKey)
	if err != nil {
		return nil, err
	}
	if err := export.Require(cfg.ExportKey); err != nil {
		return nil, err
	}
	return export.Filter(func(r Record) bool { return o.Has(r[cfg.ExportKey]) }), nil
}

// Missing returns the candidate records whose key is not known. Records with a blank
// key are left out.
func Missing(known *Set, candidates *Table, key string) (*Table, error) {
	if err := candidates.Require(key); err != nil {
		return nil, err
	}
	return candidates.Filter(func(r Record) bool {
		return !isBlank(r[key]) && !known.Has(r[key])
	}), nil
}

// firstByKey indexes the first record of each non blank key.
func firstByKey(t *Table, key string) map[string]Record {
	index := make(map[string]Record)
	for _, rec := range t.Records {
		k := trimKey(rec[key])
		if k == "" {
			continue
		}
		if _, ok := index[k]; !ok {
			index[k] = rec
		}
	}
	return index
}

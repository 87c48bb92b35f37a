package peerfunds

import (
	"strings"
)

// NotesConfig describes how descriptions are copied from a profiles table.
type NotesConfig struct {
	Key          string `yaml:"key"`           // join column of the Peer Funds table
	ProfileKey   string `yaml:"profile_key"`   // join column of the profiles table
	ProfileField string `yaml:"profile_field"` // description column of the profiles table
	Notes        string `yaml:"notes"`         // destination column
	DropKey      bool   `yaml:"drop_key"`      // drop Key from the output
}

// BackfillNotes copies into the notes column the description of the profile whose
// key equals the record key. The first profile wins, matching is exact, blank
// descriptions are not copied. Records without a match are left unchanged.
//
// It returns the enriched copy and the number of records filled.
func BackfillNotes(pf, profiles *Table, cfg NotesConfig) (*Table, int, error) {
	if err := pf.Require(cfg.Key); err != nil {
		return nil, 0, err
	}
	if err := profiles.Require(cfg.ProfileKey, cfg.ProfileField); err != nil {
		return nil, 0, err
	}

	descriptions := make(map[string]string)
	for _, rec := range profiles.Records {
		k := rec[cfg.ProfileKey]
		if k == "" {
			continue
		}
		if _, ok := descriptions[k]; !ok {
			descriptions[k] = rec[cfg.ProfileField]
		}
	}

	out := pf.Clone()
	out.AddColumn(cfg.Notes)
	filled := 0
	for _, rec := range out.Records {
		d, ok := descriptions[rec[cfg.Key]]
		if !ok || isBlank(d) {
			continue
		}
		rec[cfg.Notes] = d
		filled++
	}
	if cfg.DropKey {
		out = out.Drop(cfg.Key)
	}
	return out, filled, nil
}

// Tracked is the list of entities (funds) the team follows.
type Tracked []string

// TrackedFrom collects every non blank cell of t, row by row.
func TrackedFrom(t *Table) Tracked {
	var tr Tracked
	for i := range t.Records {
		for _, cell := range t.Row(i) {
			if cell = strings.TrimSpace(cell); cell != "" {
				tr = append(tr, cell)
			}
		}
	}
	return tr
}

// Match reports whether token and a tracked entry contain one another.
//
// Investor names are free text: "IDG资本" matches the entry "IDG", and "红杉" matches
// the entry "红杉中国".
func (tr Tracked) Match(token string) bool {
	if token == "" {
		return false
	}
	for _, e := range tr {
		if strings.Contains(e, token) || strings.Contains(token, e) {
			return true
		}
	}
	return false
}

// InvestorConfig describes how the investor free text becomes the peer fund list.
type InvestorConfig struct {
	Investors     string   `yaml:"investors"`      // free text investor column
	PeerFund      string   `yaml:"peer_fund"`      // destination column
	Qualifiers    []string `yaml:"qualifiers"`     // role tokens stripped first
	Delimiters    string   `yaml:"delimiters"`     // any of these runes splits names
	Separator     string   `yaml:"separator"`      // joins the retained names
	DropInvestors bool     `yaml:"drop_investors"` // drop Investors from the output
}

// Split splits an investor field into names, after stripping the role qualifiers.
// Blank names are dropped.
func (cfg InvestorConfig) Split(field string) []string {
	for _, q := range cfg.Qualifiers {
		if q != "" {
			field = strings.ReplaceAll(field, q, "")
		}
	}
	parts := strings.FieldsFunc(field, func(r rune) bool { return strings.ContainsRune(cfg.Delimiters, r) })
	names := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// TagInvestors fills the peer fund column with the investors that are tracked,
// joined by the separator. Blank investor fields yield a blank peer fund.
//
// It returns the tagged copy and the number of records with at least one peer fund.
func TagInvestors(pf *Table, tracked Tracked, cfg InvestorConfig) (*Table, int, error) {
	if err := pf.Require(cfg.Investors); err != nil {
		return nil, 0, err
	}
	out := pf.Clone()
	out.AddColumn(cfg.PeerFund)
	tagged := 0
	for _, rec := range out.Records {
		var peers []string
		for _, name := range cfg.Split(rec[cfg.Investors]) {
			if tracked.Match(name) {
				peers = append(peers, name)
			}
		}
		rec[cfg.PeerFund] = strings.Join(peers, cfg.Separator)
		if len(peers) > 0 {
			tagged++
		}
	}
	if cfg.DropInvestors {
		out = out.Drop(cfg.Investors)
	}
	return out, tagged, nil
}

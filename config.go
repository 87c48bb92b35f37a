package peerfunds

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every column name, layout and threshold used by the workflows.
//
// DefaultConfig returns the values matching the production exports; LoadConfig
// overlays a YAML file on top of them.
type Config struct {
	// Registry is the Peer Funds table the team maintains.
	Registry Layout `yaml:"registry"`
	// Export is the tracker export compared against the registry.
	Export Layout `yaml:"export"`
	// ExportA and ExportB are the two exports merged into the Peer Funds table.
	ExportA Layout `yaml:"export_a"`
	ExportB Layout `yaml:"export_b"`
	// Profiles is the company profiles export used to back-fill descriptions.
	Profiles Layout `yaml:"profiles"`
	// Tracked is the list of tracked funds, one name per cell.
	Tracked Layout `yaml:"tracked"`
	// PeerFunds is the layout of a generated Peer Funds table read back.
	PeerFunds Layout `yaml:"peer_funds"`

	Reconcile ReconcileConfig `yaml:"reconcile"`
	Merge     MergeConfig     `yaml:"merge"`
	Format    FormatConfig    `yaml:"format"`
	Project   ProjectConfig   `yaml:"project"`
	Notes     NotesConfig     `yaml:"notes"`
	Investors InvestorConfig  `yaml:"investors"`
	Missing   MissingConfig   `yaml:"missing"`
}

// MissingConfig names the columns compared by FindMissing.
type MissingConfig struct {
	Key        string `yaml:"key"`         // merged export column
	ProfileKey string `yaml:"profile_key"` // profiles column
}

// ExportColumns is the schema of the deal-flow exports, by position.
var ExportColumns = []string{
	"序号", "公司名", "简介", "烯牛行业（一级）", "成立时间", "地区", "最新融资时间",
	"最新融资轮次", "最新融资金额", "投资方", "融资历程（多条）", "工商名称", "联系电话",
}

// CanonicalColumns is the schema of the Peer Funds table.
var CanonicalColumns = []string{
	"Category", "Updated", "Company", "Business", "Peer Fund", "Round", "Amount",
	"城市", "是否值得跟进", "跟进人 & Deallog", "跟进记录", "是否值得考虑一下轮", "Funding History",
	"Notes", "Due Date", "工商名称", "投资方",
}

// DefaultFundingRewrites cleans the funding history column. Order matters.
var DefaultFundingRewrites = Rewrites{
	{Old: "金额：", New: ""},
	{Old: "、", New: "/"},
	{Old: "，", New: "/"},
	{Old: ",", New: " – "},
	{Old: "未披露", New: "N/A"},
}

// DefaultConfig returns the configuration of the production exports.
func DefaultConfig() *Config {
	return &Config{
		Registry:  Layout{Sheet: "New Investments", HeaderRow: 1, DataRow: 2},
		Export:    Layout{HeaderRow: 2, DataRow: 3},
		ExportA:   Layout{HeaderRow: 1, DataRow: 3},
		ExportB:   Layout{HeaderRow: 0, DataRow: 3},
		Profiles:  Layout{HeaderRow: 2, DataRow: 3},
		Tracked:   Layout{HeaderRow: 0, DataRow: 1},
		PeerFunds: Layout{HeaderRow: 1, DataRow: 2},
		Reconcile: ReconcileConfig{
			RegistryKey:      "Company",
			RegistryDate:     "Updated",
			ExportKey:        "被投公司",
			ExportDate:       "发布时间",
			StaleAfterMonths: 3,
		},
		Merge: MergeConfig{
			Columns:        append([]string(nil), ExportColumns...),
			Key:            "公司名",
			IndexColumn:    "序号",
			LocationColumn: "地区",
			LocationMarker: "市",
		},
		Format: FormatConfig{
			Column:   "融资历程（多条）",
			Rewrites: append(Rewrites(nil), DefaultFundingRewrites...),
		},
		Project: ProjectConfig{
			Columns: append([]string(nil), CanonicalColumns...),
			Fields: []Field{
				{To: "Category", From: "烯牛行业（一级）"},
				{To: "Company", From: "公司名"},
				{To: "Business", From: "简介"},
				{To: "Round", From: "最新融资轮次"},
				{To: "Amount", From: "最新融资金额"},
				{To: "城市", From: "地区"},
				{To: "Funding History", From: "融资历程（多条）"},
				{To: "工商名称", From: "工商名称"},
				{To: "投资方", From: "投资方"},
			},
			Updated:           "Updated",
			DateLayout:        "2006/01/02",
			Category:          "Category",
			CategorySeparator: "，",
			Amount:            "Amount",
			Placeholder:       "未披露",
			NotApplicable:     "N/A",
			City:              "城市",
			LocationMarker:    "市",
		},
		Notes: NotesConfig{
			Key:          "工商名称",
			ProfileKey:   "公司名称",
			ProfileField: "简介",
			Notes:        "Notes",
			DropKey:      true,
		},
		Investors: InvestorConfig{
			Investors:     "投资方",
			PeerFund:      "Peer Fund",
			Qualifiers:    []string{"领投", "跟投"},
			Delimiters:    "，,、",
			Separator:     "/",
			DropInvestors: true,
		},
		Missing: MissingConfig{
			Key:        "工商名称",
			ProfileKey: "公司名称",
		},
	}
}

// LoadConfig returns the default configuration overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := cfg.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays the YAML document read from r on c and validates the result.
// Unknown fields are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	for _, l := range []struct {
		name string
		Layout
	}{
		{"registry", c.Registry}, {"export", c.Export}, {"export_a", c.ExportA}, {"export_b", c.ExportB},
		{"profiles", c.Profiles}, {"tracked", c.Tracked}, {"peer_funds", c.PeerFunds},
	} {
		if err := l.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
		}
	}
	if c.Reconcile.RegistryKey == "" || c.Reconcile.ExportKey == "" {
		errs = append(errs, errors.New("reconcile: registry_key and export_key are required"))
	}
	if c.Reconcile.StaleAfterMonths < 0 {
		errs = append(errs, fmt.Errorf("reconcile: invalid stale_after_months %d", c.Reconcile.StaleAfterMonths))
	}
	if len(c.Merge.Columns) == 0 || c.Merge.Key == "" {
		errs = append(errs, errors.New("merge: columns and key are required"))
	}
	if len(c.Project.Columns) == 0 {
		errs = append(errs, errors.New("project: columns are required"))
	}
	if c.Notes.Key == "" || c.Notes.ProfileKey == "" || c.Notes.ProfileField == "" || c.Notes.Notes == "" {
		errs = append(errs, errors.New("notes: key, profile_key, profile_field and notes are required"))
	}
	if c.Investors.Investors == "" || c.Investors.PeerFund == "" {
		errs = append(errs, errors.New("investors: investors and peer_fund are required"))
	}
	return errors.Join(errs...)
}

// Encode writes c as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

package peerfunds

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Decode(t *testing.T) {
	in := `
registry:
  sheet: Pipeline
  header_row: 3
  data_row: 4
reconcile:
  stale_after_months: 6
format:
  rewrites:
    - old: "、"
      new: " / "
`
	cfg := DefaultConfig()
	if err := cfg.Decode(strings.NewReader(in)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got, want := cfg.Registry, (Layout{Sheet: "Pipeline", HeaderRow: 3, DataRow: 4}); got != want {
		t.Errorf("Registry = %+v, want %+v", got, want)
	}
	if cfg.Reconcile.StaleAfterMonths != 6 {
		t.Errorf("StaleAfterMonths = %d, want 6", cfg.Reconcile.StaleAfterMonths)
	}
	// fields absent from the document keep their default
	if cfg.Reconcile.RegistryKey != "Company" {
		t.Errorf("RegistryKey = %q, want Company", cfg.Reconcile.RegistryKey)
	}
	if got := cfg.Format.Rewrites; len(got) != 1 || got[0].New != " / " {
		t.Errorf("Rewrites = %v, want the document ones", got)
	}
	if cfg.Format.Column != "融资历程（多条）" {
		t.Errorf("Format.Column = %q", cfg.Format.Column)
	}
}

func TestConfig_Decode_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "registry:\n  sheets: x\n",
		"bad layout":    "export:\n  header_row: 3\n  data_row: 2\n",
		"no key":        "merge:\n  key: \"\"\n",
		"not yaml":      "registry: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if err := DefaultConfig().Decode(strings.NewReader(in)); err == nil {
				t.Errorf("Decode() error = nil, want an error")
			}
		})
	}
}

func TestConfig_Empty(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Decode(strings.NewReader("")); err != nil {
		t.Errorf("Decode() of an empty document error = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Merge.Key != "公司名" {
		t.Errorf("Merge.Key = %q, want the default", cfg.Merge.Key)
	}

	// an encoded configuration loads back to the same values
	var buf bytes.Buffer
	if err := DefaultConfig().Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "pft.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Investors.Delimiters != "，,、" || cfg.Registry.Sheet != "New Investments" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadConfig() of a missing file should fail")
	}
}

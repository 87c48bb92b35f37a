package peerfunds

import (
	"errors"
	"maps"
	"slices"
	"testing"
)

func TestMerge(t *testing.T) {
	cfg := DefaultConfig().Merge
	a := newTable("a.xlsx", slices.Clone(ExportColumns),
		exportRow("1", "Acme", "上海市浦东新区", "IDG资本"),
		exportRow("2", "Beta", "北京市", "红杉中国"),
		[]string{"", "数据来源：烯牛数据"},
		exportRow("9", "Ignored", "", ""),
	)
	b := newTable("b.xlsx", letterNames(len(ExportColumns)),
		exportRow("1", "Beta", "深圳市南山区", "other"),
		exportRow("2", "Gamma", "杭州市", ""),
		[]string{"", "数据来源：烯牛数据"},
	)

	got, err := Merge(a, b, cfg)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if want := []string{"Acme", "Beta", "Gamma"}; !slices.Equal(column(t, got.Table, "公司名"), want) {
		t.Errorf("公司名 = %v, want %v", column(t, got.Table, "公司名"), want)
	}
	if want := []string{"1", "2", "3"}; !slices.Equal(column(t, got.Table, "序号"), want) {
		t.Errorf("序号 = %v, want %v", column(t, got.Table, "序号"), want)
	}
	if want := []string{"上海", "北京市", "杭州市"}; !slices.Equal(column(t, got.Table, "地区"), want) {
		t.Errorf("地区 = %v, want %v", column(t, got.Table, "地区"), want)
	}
	// a wins over b
	if inv := got.Table.Records[1]["投资方"]; inv != "红杉中国" {
		t.Errorf("Beta 投资方 = %q, want the one from a", inv)
	}
	if !slices.Equal(got.Table.Columns, ExportColumns) {
		t.Errorf("Columns = %v, want %v", got.Table.Columns, ExportColumns)
	}
	if got.FromA != 2 || got.FromB != 1 {
		t.Errorf("FromA, FromB = %d, %d, want 2, 1", got.FromA, got.FromB)
	}
	if want := []string{"Beta"}; !slices.Equal(got.Duplicates, want) {
		t.Errorf("Duplicates = %v, want %v", got.Duplicates, want)
	}
	if want := (Bound{End: 2, Sentinel: true}); got.BoundA != want {
		t.Errorf("BoundA = %+v, want %+v", got.BoundA, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	cfg := DefaultConfig().Merge
	a := newTable("a", slices.Clone(ExportColumns),
		exportRow("1", "Acme", "上海市浦东新区", ""),
		exportRow("2", "Beta", "北京市", ""),
		exportRow("3", "Acme", "杭州市", ""),
	)
	b := newTable("b", letterNames(len(ExportColumns)), exportRow("1", "Gamma", "深圳市南山区", ""))
	once, err := Merge(a, b, cfg)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	for _, again := range []*Table{NewTable("empty", letterNames(len(ExportColumns))...), once.Table} {
		twice, err := Merge(once.Table, again, cfg)
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if !slices.Equal(twice.Table.Columns, once.Table.Columns) {
			t.Errorf("Columns = %v, want %v", twice.Table.Columns, once.Table.Columns)
		}
		if !slices.EqualFunc(twice.Table.Records, once.Table.Records, func(x, y Record) bool { return maps.Equal(x, y) }) {
			t.Errorf("merging %s again = %v, want %v", again.Name, twice.Table.Records, once.Table.Records)
		}
		if twice.FromA != once.Table.Len() || twice.FromB != 0 {
			t.Errorf("FromA, FromB = %d, %d, want %d, 0", twice.FromA, twice.FromB, once.Table.Len())
		}
	}
}

func TestMerge_NoSentinel(t *testing.T) {
	cfg := DefaultConfig().Merge
	a := newTable("a", slices.Clone(ExportColumns), exportRow("1", "Acme", "", ""))
	b := newTable("b", letterNames(len(ExportColumns)), exportRow("1", "Beta", "", ""), exportRow("2", "Gamma", "", ""))
	got, err := Merge(a, b, cfg)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got.BoundB.Sentinel || got.BoundB.End != 2 {
		t.Errorf("BoundB = %+v, want the whole table", got.BoundB)
	}
	if got.Table.Len() != 3 {
		t.Errorf("Merge() has %d records, want 3", got.Table.Len())
	}
}

func TestMerge_TooManyColumns(t *testing.T) {
	cfg := DefaultConfig().Merge
	a := newTable("a", slices.Clone(ExportColumns), exportRow("1", "Acme", "", ""))
	b := newTable("b", letterNames(len(ExportColumns)+1), append(exportRow("1", "Beta", "", ""), "extra"))
	_, err := Merge(a, b, cfg)
	var cce *ColumnCountError
	if !errors.As(err, &cce) {
		t.Errorf("Merge() error = %v, want *ColumnCountError", err)
	}
}

func TestMerge_BlankKeys(t *testing.T) {
	cfg := DefaultConfig().Merge
	cfg.IndexColumn = ""
	a := newTable("a", slices.Clone(ExportColumns), exportRow("1", "", "", ""), exportRow("2", "", "", ""))
	b := NewTable("b", letterNames(len(ExportColumns))...)
	got, err := Merge(a, b, cfg)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got.Table.Len() != 2 || len(got.Duplicates) != 0 {
		t.Errorf("Merge() kept %d records, duplicates %v, want 2 and none", got.Table.Len(), got.Duplicates)
	}
}

func TestDedupe(t *testing.T) {
	tb := newTable("t", []string{"k", "v"},
		[]string{"a", "1"},
		[]string{"b", "2"},
		[]string{"a", "3"},
		[]string{"", "4"},
		[]string{"", "5"},
	)
	once, err := Dedupe(tb, "k")
	if err != nil {
		t.Fatalf("Dedupe() error = %v", err)
	}
	if want := []string{"1", "2", "4", "5"}; !slices.Equal(column(t, once, "v"), want) {
		t.Errorf("Dedupe() = %v, want %v", column(t, once, "v"), want)
	}
	twice, err := Dedupe(once, "k")
	if err != nil {
		t.Fatalf("Dedupe() error = %v", err)
	}
	if !slices.Equal(column(t, twice, "v"), column(t, once, "v")) {
		t.Errorf("Dedupe() is not idempotent: %v", column(t, twice, "v"))
	}
}

func TestTrimLocation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"上海市浦东新区", "上海"},
		{"北京市", "北京市"},
		{"深圳", "深圳"},
		{"市", "市"},
		{"市中心", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TrimLocation(tt.in, "市"); got != tt.want {
			t.Errorf("TrimLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := TrimLocation("上海市浦东新区", ""); got != "上海市浦东新区" {
		t.Errorf("TrimLocation() without marker = %q", got)
	}
}

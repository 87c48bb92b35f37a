package peerfunds

import (
	"slices"
	"testing"

	"github.com/etnz/peerfunds/date"
)

func generateInput() GenerateInput {
	a := newTable("a.xlsx", slices.Clone(ExportColumns),
		exportRow("1", "Acme", "上海市浦东新区", "IDG资本领投，某某基金"),
		exportRow("2", "Beta", "北京市", "高瓴"),
		[]string{"", "数据来源：烯牛数据"},
	)
	b := newTable("b.xlsx", letterNames(len(ExportColumns)),
		exportRow("1", "Beta", "深圳市南山区", "红杉中国"),
		exportRow("2", "Gamma", "杭州市", "红杉中国跟投"),
		[]string{"", "数据来源：烯牛数据"},
	)
	profiles := newTable("profiles.xlsx", []string{"公司名称", "简介"},
		[]string{"Acme有限公司", "企业软件"},
		[]string{"Omega有限公司", "not in the exports"},
	)
	tracked := newTable("tracked.xlsx", []string{"A"}, []string{"IDG"}, []string{"红杉"})
	return GenerateInput{ExportA: a, ExportB: b, Profiles: profiles, Tracked: tracked}
}

func TestGenerate(t *testing.T) {
	got, err := Generate(generateInput(), DefaultConfig(), date.New(2024, 3, 9))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	pf := got.Table

	// 工商名称 and 投资方 are consumed by the enrichment
	want := slices.DeleteFunc(slices.Clone(CanonicalColumns), func(c string) bool { return c == "工商名称" || c == "投资方" })
	if !slices.Equal(pf.Columns, want) {
		t.Errorf("Columns = %v, want %v", pf.Columns, want)
	}
	if want := []string{"Acme", "Beta", "Gamma"}; !slices.Equal(column(t, pf, "Company"), want) {
		t.Errorf("Company = %v, want %v", column(t, pf, "Company"), want)
	}
	if want := []string{"IDG资本", "", "红杉中国"}; !slices.Equal(column(t, pf, "Peer Fund"), want) {
		t.Errorf("Peer Fund = %v, want %v", column(t, pf, "Peer Fund"), want)
	}
	if want := []string{"企业软件", "", ""}; !slices.Equal(column(t, pf, "Notes"), want) {
		t.Errorf("Notes = %v, want %v", column(t, pf, "Notes"), want)
	}
	if want := "A/B/C – DN/A"; pf.Records[0]["Funding History"] != want {
		t.Errorf("Funding History = %q, want %q", pf.Records[0]["Funding History"], want)
	}
	if pf.Records[2]["Updated"] != "2024/03/09" {
		t.Errorf("Updated = %q", pf.Records[2]["Updated"])
	}
	if got.NotesFilled != 1 || got.Tagged != 2 {
		t.Errorf("NotesFilled, Tagged = %d, %d, want 1, 2", got.NotesFilled, got.Tagged)
	}
	if want := []string{"Beta"}; !slices.Equal(got.Merge.Duplicates, want) {
		t.Errorf("Duplicates = %v, want %v", got.Merge.Duplicates, want)
	}
}

func TestCompare(t *testing.T) {
	registry := newTable("registry", registryColumns, []string{"A", "2023-02-05"})
	export := newTable("export", eventColumns, []string{"A", "2023-06-15"}, []string{"B", "2023-06-15"})
	got, err := Compare(registry, export, DefaultConfig())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if want := []string{"B", "A"}; !slices.Equal(column(t, got.Table, "被投公司"), want) {
		t.Errorf("Compare() = %v, want %v", column(t, got.Table, "被投公司"), want)
	}
}

func TestFindMissing(t *testing.T) {
	in := generateInput()
	in.Profiles.Append("Gamma有限公司", "in b")
	in.Profiles.Append("", "blank")
	got, err := FindMissing(in.ExportA, in.ExportB, in.Profiles, DefaultConfig())
	if err != nil {
		t.Fatalf("FindMissing() error = %v", err)
	}
	if want := []string{"Omega有限公司"}; !slices.Equal(column(t, got.Table, "公司名称"), want) {
		t.Errorf("FindMissing() = %v, want %v", column(t, got.Table, "公司名称"), want)
	}
	if got.Known != 3 {
		t.Errorf("Known = %d, want 3", got.Known)
	}
}

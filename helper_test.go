package peerfunds

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newTable is a helper for tests to build a table from positional rows.
func newTable(name string, columns []string, rows ...[]string) *Table {
	t := NewTable(name, columns...)
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

// workbook is a helper for tests to build an xlsx file holding rows in sheet.
func workbook(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("SetSheetName() error = %v", err)
		}
	}
	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.Bytes()
}

// column is a helper for tests that fails if the column is missing.
func column(t *testing.T, tb *Table, name string) []string {
	t.Helper()
	values, err := tb.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) error = %v", name, err)
	}
	return values
}

// exportRow builds a positional export row with the given company, region and
// investors, other cells are filled with plausible values.
func exportRow(index, company, region, investors string) []string {
	return []string{
		index, company, company + "简介", "企业服务，SaaS", "2018-01-01", region, "2023-05-05",
		"A轮", "未披露", investors, "金额：A、B，C,D未披露", company + "有限公司", "",
	}
}

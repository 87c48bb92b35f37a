package peerfunds

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/etnz/peerfunds/date"
	"github.com/xuri/excelize/v2"
)

func TestDecodeXLSX(t *testing.T) {
	data := workbook(t, "New Investments", [][]string{
		{"Company", "Updated", "Category"},
		{" Acme ", "2023-01-01", "SaaS"},
		{"Beta", "2023-02-05"},
	})

	tb, err := DecodeXLSX(bytes.NewReader(data), "registry.xlsx", Layout{Sheet: "New Investments", HeaderRow: 1, DataRow: 2})
	if err != nil {
		t.Fatalf("DecodeXLSX() error = %v", err)
	}
	if got, want := tb.Columns, []string{"Company", "Updated", "Category"}; !slices.Equal(got, want) {
		t.Errorf("Columns = %v, want %v", got, want)
	}
	if got, want := column(t, tb, "Company"), []string{"Acme", "Beta"}; !slices.Equal(got, want) {
		t.Errorf("Company = %v, want %v", got, want)
	}
	if got := tb.Records[1]["Category"]; got != "" {
		t.Errorf("short row Category = %q, want blank", got)
	}
	if tb.Name != "registry.xlsx" {
		t.Errorf("Name = %q", tb.Name)
	}
}

func TestDecodeXLSX_DateFormats(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	on := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	custom := `yyyy"年"m"月"d"日"`
	formats := []struct {
		name  string
		style excelize.Style
	}{
		{"m-d-yy", excelize.Style{NumFmt: 14}},
		{"d-mmm-yy", excelize.Style{NumFmt: 15}},
		{"d-mmm", excelize.Style{NumFmt: 16}},
		{"mmm-yy", excelize.Style{NumFmt: 17}},
		{"m/d/yy h:mm", excelize.Style{NumFmt: 22}},
		{"custom", excelize.Style{CustomNumFmt: &custom}},
	}
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"Format", "Updated"}); err != nil {
		t.Fatal(err)
	}
	for i, tt := range formats {
		row := i + 2
		style, err := f.NewStyle(&tt.style)
		if err != nil {
			t.Fatalf("NewStyle(%s) error = %v", tt.name, err)
		}
		cell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue("Sheet1", cell, on); err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellStyle("Sheet1", cell, cell, style); err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue("Sheet1", "A"+strconv.Itoa(row), tt.name); err != nil {
			t.Fatal(err)
		}
	}
	// a formatted number is not a date
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		t.Fatal(err)
	}
	last := strconv.Itoa(len(formats) + 2)
	if err := f.SetSheetRow("Sheet1", "A"+last, &[]any{"number", 1234}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "B"+last, "B"+last, thousands); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	tb, err := DecodeXLSX(&buf, "dates.xlsx", Layout{HeaderRow: 1, DataRow: 2})
	if err != nil {
		t.Fatalf("DecodeXLSX() error = %v", err)
	}
	if tb.Len() != len(formats)+1 {
		t.Fatalf("DecodeXLSX() has %d records, want %d", tb.Len(), len(formats)+1)
	}
	for i, tt := range formats {
		cell := tb.Records[i]["Updated"]
		got, err := date.Parse(cell)
		if err != nil || got != date.New(2023, 6, 15) {
			t.Errorf("%s cell %q parses to %v, %v, want 2023-06-15", tt.name, cell, got, err)
		}
		if tt.style.NumFmt != 0 && cell != "2023-06-15" {
			t.Errorf("%s cell = %q, want 2023-06-15", tt.name, cell)
		}
	}
	if got := tb.Records[len(formats)]["Updated"]; strings.Contains(got, "-") {
		t.Errorf("number cell = %q, read as a date", got)
	}
}

func TestDecodeXLSX_NoSheet(t *testing.T) {
	data := workbook(t, "Sheet1", [][]string{{"Company"}, {"Acme"}})
	_, err := DecodeXLSX(bytes.NewReader(data), "registry.xlsx", Layout{Sheet: "New Investments", HeaderRow: 1, DataRow: 2})
	if !errors.Is(err, ErrNoSheet) {
		t.Errorf("DecodeXLSX() error = %v, want ErrNoSheet", err)
	}
}

func TestDecodeXLSX_TitleRow(t *testing.T) {
	// exports carry a title row above the header
	data := workbook(t, "Sheet1", [][]string{
		{"2023年投资事件"},
		{"序号", "被投公司", "发布时间"},
		{"1", "Acme", "2023-06-15"},
	})
	tb, err := Decode(bytes.NewReader(data), "export.xlsx", Layout{HeaderRow: 2, DataRow: 3})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got, want := column(t, tb, "被投公司"), []string{"Acme"}; !slices.Equal(got, want) {
		t.Errorf("被投公司 = %v, want %v", got, want)
	}
}

func TestDecodeXLSX_Headerless(t *testing.T) {
	data := workbook(t, "Sheet1", [][]string{
		{"title"},
		{"ignored", "header"},
		{"1", "Acme", "上海"},
	})
	tb, err := DecodeXLSX(bytes.NewReader(data), "b.xlsx", Layout{HeaderRow: 0, DataRow: 3})
	if err != nil {
		t.Fatalf("DecodeXLSX() error = %v", err)
	}
	if got, want := tb.Columns, []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("Columns = %v, want %v", got, want)
	}
	if got, want := tb.Row(0), []string{"1", "Acme", "上海"}; !slices.Equal(got, want) {
		t.Errorf("Row(0) = %v, want %v", got, want)
	}
}

func TestDecodeCSV(t *testing.T) {
	in := "\ufeffname,name,\n a ,b,c\n"
	tb, err := DecodeCSV(strings.NewReader(in), "dup.csv", Layout{HeaderRow: 1, DataRow: 2})
	if err != nil {
		t.Fatalf("DecodeCSV() error = %v", err)
	}
	if got, want := tb.Columns, []string{"name", "name.1", "Unnamed: 2"}; !slices.Equal(got, want) {
		t.Errorf("Columns = %v, want %v", got, want)
	}
	if got, want := tb.Row(0), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Row(0) = %v, want %v", got, want)
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		l       Layout
		wantErr bool
	}{
		{Layout{HeaderRow: 1, DataRow: 2}, false},
		{Layout{HeaderRow: 0, DataRow: 1}, false},
		{Layout{HeaderRow: 2, DataRow: 2}, true},
		{Layout{HeaderRow: -1, DataRow: 2}, true},
	}
	for _, tt := range tests {
		if err := tt.l.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.l, err, tt.wantErr)
		}
	}
}

func TestOpen(t *testing.T) {
	tb := newTable("t", []string{"公司名", "地区"}, []string{"Acme", "上海"}, []string{"Beta", ""})
	for _, ext := range []string{".xlsx", ".csv"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Create(path, tb); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			got, err := Open(path, Layout{HeaderRow: 1, DataRow: 2})
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !slices.Equal(got.Columns, tb.Columns) {
				t.Errorf("Columns = %v, want %v", got.Columns, tb.Columns)
			}
			for i := range tb.Records {
				if !slices.Equal(got.Row(i), tb.Row(i)) {
					t.Errorf("Row(%d) = %v, want %v", i, got.Row(i), tb.Row(i))
				}
			}
		})
	}
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"), Layout{HeaderRow: 1, DataRow: 2}); err == nil {
		t.Errorf("Open() of a missing file should fail")
	}
}

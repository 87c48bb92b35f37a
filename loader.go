package peerfunds

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/peerfunds/date"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned when a workbook does not contain the requested sheet.
var ErrNoSheet = errors.New("sheet not found")

// Layout describes where the data sits in a spreadsheet.
//
// Rows are numbered from 1, as in spreadsheet tools.
type Layout struct {
	// Sheet is the name of the sheet to read, the first sheet when empty.
	Sheet string `yaml:"sheet,omitempty"`
	// HeaderRow is the row holding the column names. 0 means the sheet has no header
	// and columns are named by their letters (A, B, ...).
	HeaderRow int `yaml:"header_row"`
	// DataRow is the first row of data.
	DataRow int `yaml:"data_row"`
}

// Validate checks the layout is consistent.
func (l Layout) Validate() error {
	if l.HeaderRow < 0 {
		return fmt.Errorf("invalid header row %d", l.HeaderRow)
	}
	if l.DataRow <= l.HeaderRow {
		return fmt.Errorf("data row %d must be after header row %d", l.DataRow, l.HeaderRow)
	}
	return nil
}

// Open reads a spreadsheet file (.xlsx or .csv).
func Open(path string, l Layout) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Decode(bytes.NewReader(data), filepath.Base(path), l)
}

// Decode detects the content type (xlsx or CSV) and reads a table from r.
func Decode(r io.Reader, name string, l Layout) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", name, err)
	}
	if isXLSX(data) {
		return DecodeXLSX(bytes.NewReader(data), name, l)
	}
	return DecodeCSV(bytes.NewReader(data), name, l)
}

// isXLSX checks magic bytes for xlsx (ZIP/PK header).
func isXLSX(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DecodeXLSX reads a table from an Excel workbook.
func DecodeXLSX(r io.Reader, name string, l Layout) (*Table, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file %q: %w", name, err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" || !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%q: %w: %q", name, ErrNoSheet, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q sheet %q: %w", name, sheet, err)
	}
	if err := isoDates(f, sheet, rows); err != nil {
		return nil, fmt.Errorf("failed to read dates of %q sheet %q: %w", name, sheet, err)
	}
	return fromGrid(name, rows, l), nil
}

// dateNumFmts are the built-in number formats displaying a date, CJK ones included.
var dateNumFmts = []int{14, 15, 16, 17, 22, 27, 28, 29, 30, 31, 36, 50, 51, 52, 53, 54, 57, 58}

// literals matches the parts of a custom number format that are not format codes:
// quoted text, brackets like [$-409] or [Red], and escaped characters.
var literals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// isDateFormat reports whether the cell style id displays a date.
func isDateFormat(f *excelize.File, id int) bool {
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		code := strings.ToLower(literals.ReplaceAllString(*style.CustomNumFmt, ""))
		return strings.ContainsAny(code, "yd")
	}
	return slices.Contains(dateNumFmts, style.NumFmt)
}

// isoDates replaces, in the display rows, the text of date cells by their ISO date.
// Display formats like "15-Jun-23" or "6/15/23 0:00" then all read back alike.
func isoDates(f *excelize.File, sheet string, rows [][]string) error {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	dateStyles := make(map[int]bool)
	for i := 0; i < len(rows) && i < len(raw); i++ {
		for j := 0; j < len(rows[i]) && j < len(raw[i]); j++ {
			if raw[i][j] == rows[i][j] {
				continue
			}
			serial, err := strconv.ParseFloat(raw[i][j], 64)
			if err != nil || serial < 1 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			id, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return err
			}
			isDate, ok := dateStyles[id]
			if !ok {
				isDate = isDateFormat(f, id)
				dateStyles[id] = isDate
			}
			if isDate {
				rows[i][j] = date.FromSerial(serial).String()
			}
		}
	}
	return nil
}

// DecodeCSV reads a table from CSV. The layout sheet is ignored.
func DecodeCSV(r io.Reader, name string, l Layout) (*Table, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %q: %w", name, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return fromGrid(name, rows, l), nil
}

// fromGrid builds a table out of raw spreadsheet rows. Cells are trimmed.
func fromGrid(name string, rows [][]string, l Layout) *Table {
	start := l.DataRow - 1
	width := 0
	for i := max(l.HeaderRow-1, 0); i < len(rows); i++ {
		width = max(width, len(rows[i]))
	}

	var columns []string
	if l.HeaderRow > 0 {
		var header []string
		if l.HeaderRow <= len(rows) {
			header = rows[l.HeaderRow-1]
		}
		columns = headerNames(header, width)
	} else {
		columns = letterNames(width)
	}

	t := NewTable(name, columns...)
	for i := start; i < len(rows); i++ {
		cells := make([]string, len(rows[i]))
		for j, cell := range rows[i] {
			cells[j] = strings.TrimSpace(cell)
		}
		t.Append(cells...)
	}
	return t
}

// headerNames returns unique column names: blank headers are called "Unnamed: i",
// repeated ones get a ".n" suffix.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int)
	for i := range names {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// letterNames names columns after their spreadsheet letters.
func letterNames(width int) []string {
	names := make([]string, width)
	for i := range names {
		names[i], _ = excelize.ColumnNumberToName(i + 1)
	}
	return names
}

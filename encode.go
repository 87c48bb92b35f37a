package peerfunds

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// sheetName is the sheet written by EncodeXLSX.
const sheetName = "Sheet1"

// Create writes t into a new file, choosing the format after the file extension
// (.csv for CSV, anything else is xlsx).
func Create(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if err := Encode(f, t, filepath.Ext(path)); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// Encode writes t to w in the format named by ext (".csv" or ".xlsx").
func Encode(w io.Writer, t *Table, ext string) error {
	if strings.EqualFold(ext, ".csv") {
		return EncodeCSV(w, t)
	}
	return EncodeXLSX(w, t)
}

// EncodeXLSX writes t as a single sheet workbook: a bold header row followed by one
// row per record, columns in table order. An empty table still gets its header.
func EncodeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range t.Records {
		row := make([]any, len(t.Columns))
		for j, v := range t.Row(i) {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(t.Columns) > 0 {
		// Style the header row (bold)
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
			return err
		}
		for i, col := range t.Columns {
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheetName, name, name, columnWidth(t, col)); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// columnWidth approximates a readable width, wide runes count double.
func columnWidth(t *Table, col string) float64 {
	width := textWidth(col)
	for _, rec := range t.Records {
		width = max(width, textWidth(rec[col]))
	}
	return float64(min(max(width+2, 10), 60))
}

func textWidth(s string) int {
	n := 0
	for _, r := range s {
		if utf8.RuneLen(r) > 1 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// EncodeCSV writes t as CSV with a header line.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range t.Records {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

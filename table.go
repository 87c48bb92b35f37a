package peerfunds

import (
	"fmt"
	"slices"
	"strings"
)

// Record is a single row of a table, mapping column names to cell text.
// A missing key reads as a blank cell.
type Record map[string]string

// Table is an in-memory spreadsheet: an ordered list of named columns and an
// ordered list of records.
type Table struct {
	Name    string // used in error messages, usually the source file name
	Columns []string
	Records []Record
}

// NewTable returns an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: slices.Clone(columns)}
}

// MissingColumnError is returned when a table lacks a column an operation needs.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %q: missing column %q", e.Table, e.Column)
}

// ColumnCountError is returned when a positional schema cannot be imposed on a table.
type ColumnCountError struct {
	Table     string
	Got, Want int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("table %q: has %d non blank columns, want at most %d", e.Table, e.Got, e.Want)
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool { return slices.Contains(t.Columns, name) }

// Require returns a *MissingColumnError for the first name that is not a column of t.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return &MissingColumnError{Table: t.Name, Column: name}
		}
	}
	return nil
}

// Column returns the values of a column, in record order.
func (t *Table) Column(name string) ([]string, error) {
	if err := t.Require(name); err != nil {
		return nil, err
	}
	values := make([]string, len(t.Records))
	for i, rec := range t.Records {
		values[i] = rec[name]
	}
	return values, nil
}

// Append adds a record from positional values. Extra values are ignored, missing
// ones are blank.
func (t *Table) Append(values ...string) {
	rec := make(Record, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			rec[col] = values[i]
		} else {
			rec[col] = ""
		}
	}
	t.Records = append(t.Records, rec)
}

// Row returns the record i as positional values in column order.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = t.Records[i][col]
	}
	return row
}

// AddColumn appends a blank column if it does not exist yet.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, rec := range t.Records {
		rec[name] = ""
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{Name: t.Name, Columns: slices.Clone(t.Columns), Records: make([]Record, len(t.Records))}
	for i, rec := range t.Records {
		c.Records[i] = cloneRecord(rec)
	}
	return c
}

func cloneRecord(rec Record) Record {
	c := make(Record, len(rec))
	for k, v := range rec {
		c[k] = v
	}
	return c
}

// Slice returns a copy of the records in [from, to), bounds are clamped.
func (t *Table) Slice(from, to int) *Table {
	from = max(0, min(from, len(t.Records)))
	to = max(from, min(to, len(t.Records)))
	c := &Table{Name: t.Name, Columns: slices.Clone(t.Columns)}
	for _, rec := range t.Records[from:to] {
		c.Records = append(c.Records, cloneRecord(rec))
	}
	return c
}

// Filter returns a copy holding only the records for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	c := &Table{Name: t.Name, Columns: slices.Clone(t.Columns)}
	for _, rec := range t.Records {
		if keep(rec) {
			c.Records = append(c.Records, cloneRecord(rec))
		}
	}
	return c
}

// Drop returns a copy without the given columns. Unknown columns are ignored.
func (t *Table) Drop(names ...string) *Table {
	c := t.Clone()
	c.Columns = slices.DeleteFunc(c.Columns, func(col string) bool { return slices.Contains(names, col) })
	for _, rec := range c.Records {
		for _, name := range names {
			delete(rec, name)
		}
	}
	return c
}

// Rename imposes positional column names: the i-th column of t is called names[i].
//
// Missing trailing columns are added blank. Extra trailing columns are dropped when
// they are entirely blank, otherwise Rename fails with a *ColumnCountError.
func (t *Table) Rename(names []string) (*Table, error) {
	for i := len(names); i < len(t.Columns); i++ {
		for _, rec := range t.Records {
			if strings.TrimSpace(rec[t.Columns[i]]) != "" {
				return nil, &ColumnCountError{Table: t.Name, Got: i + 1, Want: len(names)}
			}
		}
	}
	c := NewTable(t.Name, names...)
	for i := range t.Records {
		c.Append(t.Row(i)...)
	}
	return c, nil
}

// Concat appends the records of all tables into a new one. Its columns are the union
// of all columns, in order of first appearance.
func Concat(name string, tables ...*Table) *Table {
	c := NewTable(name)
	for _, t := range tables {
		for _, col := range t.Columns {
			if !c.HasColumn(col) {
				c.Columns = append(c.Columns, col)
			}
		}
	}
	for _, t := range tables {
		for _, rec := range t.Records {
			r := make(Record, len(c.Columns))
			for _, col := range c.Columns {
				r[col] = rec[col]
			}
			c.Records = append(c.Records, r)
		}
	}
	return c
}

// Bound marks where the contiguous data block of a loosely structured export ends.
//
// Exports mark the end of their data with a sentinel row: the first record whose
// leading cell is blank. When there is no such row, End is the table length and
// Sentinel is false.
type Bound struct {
	End      int
	Sentinel bool
}

// FindBound scans the leading column of t for the sentinel row.
func FindBound(t *Table) Bound {
	if len(t.Columns) == 0 {
		return Bound{End: len(t.Records)}
	}
	lead := t.Columns[0]
	for i, rec := range t.Records {
		if isBlank(rec[lead]) {
			return Bound{End: i, Sentinel: true}
		}
	}
	return Bound{End: len(t.Records)}
}

// Cut returns the records above b.
func (t *Table) Cut(b Bound) *Table { return t.Slice(0, b.End) }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Package table loads heterogeneous spreadsheet-derived tables into
// ordered row mappings. No schema is assumed beyond a header row; blank
// cells are absent rather than empty.
package table

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind discriminates the scalar types a cell can hold.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a tagged scalar cell value.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// String wraps a string as a Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number wraps a float64 as a Value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Boolean wraps a bool as a Value.
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Text returns the display form of the value. Numbers render without a
// trailing ".0" so integer-valued cells round-trip as written.
func (v Value) Text() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// MarshalJSON serializes the underlying scalar, not the tag wrapper.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}

// Row maps column name to cell value. Absent keys are null cells.
type Row map[string]Value

// Get returns the display text of a column, or "" if absent.
func (r Row) Get(col string) string {
	v, ok := r[col]
	if !ok {
		return ""
	}
	return v.Text()
}

// Has reports whether the row has a non-null value for the column.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// Table is one loaded tabular source: a display name, the header columns
// in file order, and one Row per data line.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table header contains the exact column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// displayName derives a table's display name from its file path.
// "DATA/Investor DATA - Contacts (DFD).xlsx" → "Investor DATA - Contacts (DFD)".
func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseValue converts a raw cell string into a tagged Value. Non-finite
// floats ("inf", "Infinity") stay strings: metadata must marshal to JSON
// and encoding/json rejects ±Inf.
func parseValue(s string) Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Number(f)
	}
	if strings.EqualFold(s, "true") {
		return Boolean(true)
	}
	if strings.EqualFold(s, "false") {
		return Boolean(false)
	}
	return String(s)
}

// missingCell reports whether a raw cell string should be treated as null.
// Pandas-exported sheets carry literal "nan"/"none" strings for empty cells.
func missingCell(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return true
	}
	return false
}

// buildTable assembles a Table from a header row and raw string records.
// Rows where every cell is null are dropped.
func buildTable(name string, header []string, records [][]string) *Table {
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		cols[i] = h
	}

	t := &Table{Name: name, Columns: cols}
	for _, rec := range records {
		row := make(Row, len(cols))
		for i, col := range cols {
			if i >= len(rec) {
				break
			}
			cell := strings.TrimSpace(rec[i])
			if missingCell(cell) {
				continue
			}
			row[col] = parseValue(cell)
		}
		if len(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

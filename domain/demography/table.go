package demography

import (
	"fmt"
)

// NameColumn is the join key shared by every table.
const NameColumn = "Name"

// Table is one indicator dataset: a Name column plus one column per year.
// Cells keep their source text; numeric coercion happens at query time.
// A Table is not modified after NewTable returns.
type Table struct {
	Columns []string
	Rows    [][]string

	colIndex  map[string]int
	nameIndex map[string][]int
}

// NewTable indexes columns and rows. Short rows are padded with empty cells
// and long rows are truncated to the header width.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns:   columns,
		Rows:      make([][]string, 0, len(rows)),
		colIndex:  make(map[string]int, len(columns)),
		nameIndex: map[string][]int{},
	}
	for i, c := range columns {
		if _, dup := t.colIndex[c]; !dup {
			t.colIndex[c] = i
		}
	}
	nameCol, hasName := t.colIndex[NameColumn]
	for _, r := range rows {
		row := make([]string, len(columns))
		copy(row, r)
		t.Rows = append(t.Rows, row)
		if hasName {
			n := row[nameCol]
			t.nameIndex[n] = append(t.nameIndex[n], len(t.Rows)-1)
		}
	}
	return t
}

// Column returns the position of a column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.colIndex[name]
	return i, ok
}

// Names lists the Name column in row order.
func (t *Table) Names() []string {
	i, ok := t.colIndex[NameColumn]
	if !ok {
		return nil
	}
	out := make([]string, len(t.Rows))
	for j, r := range t.Rows {
		out[j] = r[i]
	}
	return out
}

// DuplicateNames returns every Name value held by more than one row.
func (t *Table) DuplicateNames() []string {
	var dups []string
	reported := map[string]bool{}
	for _, n := range t.Names() {
		if len(t.nameIndex[n]) > 1 && !reported[n] {
			dups = append(dups, n)
			reported[n] = true
		}
	}
	return dups
}

// Row returns the single row for a municipality.
func (t *Table) Row(name string) ([]string, error) {
	idx := t.nameIndex[name]
	switch len(idx) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	case 1:
		return t.Rows[idx[0]], nil
	default:
		return nil, fmt.Errorf("%w: %q (%d rows)", ErrAmbiguousLocation, name, len(idx))
	}
}

// Cell reads a year column of a row returned by Row.
func (t *Table) Cell(row []string, year string) (string, error) {
	i, ok := t.colIndex[year]
	if !ok || !IsYear(year) {
		return "", fmt.Errorf("%w: %s", ErrMissingYear, year)
	}
	return row[i], nil
}

// Records returns the header followed by every row, ready for a CSV writer.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, r := range t.Rows {
		out = append(out, append([]string(nil), r...))
	}
	return out
}

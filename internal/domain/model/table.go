// Package model contains domain models passed between layers.
package model

// Row holds one table row as raw text cells keyed by column name.
// Cells stay untyped; numeric coercion happens at use sites via ParseNumeric.
type Row map[string]string

// Table is an in-memory tabular dataset with a stable column order.
// Tables are handed to the engine already materialized and are never
// mutated by it.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([]Row, 0)}
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the raw text of a cell, or the empty string when the
// column is absent from the row.
func (t *Table) Cell(i int, column string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][column]
}

// Vector maps a competency name to a numeric level. The canonical key
// order lives outside the map and is carried as a []string wherever
// deterministic column ordering matters.
type Vector map[string]float64

// Sum returns the total of all entries.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// Mean returns the arithmetic mean over all entries, or 0 for an empty
// vector.
func (v Vector) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	return v.Sum() / float64(len(v))
}

// Package dataset loads CSV files into an in-memory table with per-column
// type inference. The table lives for one pipeline invocation; there is no
// identity or persistence beyond it.
package dataset

import (
	"math"
	"time"
)

// ColumnType is the inferred type of a column.
type ColumnType int

const (
	Categorical ColumnType = iota
	Numeric
	Datetime
)

// String returns the human readable name of the column type.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Datetime:
		return "datetime"
	default:
		return "categorical"
	}
}

// Column holds one named, typed column. Raw holds the original cell text for
// every row (empty string for missing cells). Numbers is populated for
// Numeric columns with NaN marking missing or malformed cells; Times is
// populated for Datetime columns with the zero time marking missing cells.
type Column struct {
	Name    string
	Type    ColumnType
	Raw     []string
	Numbers []float64
	Times   []time.Time
}

// Missing reports whether the cell at row i is missing or unparsable.
func (c *Column) Missing(i int) bool {
	switch c.Type {
	case Numeric:
		return math.IsNaN(c.Numbers[i])
	case Datetime:
		return c.Times[i].IsZero()
	default:
		return c.Raw[i] == ""
	}
}

// ValidNumbers returns the non-missing numeric values of the column.
func (c *Column) ValidNumbers() []float64 {
	out := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Table is a rows-by-named-columns dataset snapshot.
type Table struct {
	Columns []Column
	rows    int
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnNames returns the column names in file order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// FirstOfType returns the first column of the given type, or nil.
func (t *Table) FirstOfType(typ ColumnType) *Column {
	for i := range t.Columns {
		if t.Columns[i].Type == typ {
			return &t.Columns[i]
		}
	}
	return nil
}

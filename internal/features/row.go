package features

import (
	"fmt"
	"strings"
)

// CellKind distinguishes numeric and categorical cells.
type CellKind int

const (
	KindNumber CellKind = iota
	KindText
)

// Cell is one typed value of a feature row.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// Num builds a numeric cell.
func Num(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// Text builds a categorical cell.
func Text(v string) Cell { return Cell{Kind: KindText, Text: v} }

func (c Cell) String() string {
	if c.Kind == KindText {
		return c.Text
	}
	return fmt.Sprintf("%g", c.Number)
}

// Row is a single-row table: ordered column names with one cell per column.
type Row struct {
	columns []string
	cells   []Cell
}

// NewRow builds a row. columns and cells must have the same length.
func NewRow(columns []string, cells []Cell) (Row, error) {
	if len(columns) != len(cells) {
		return Row{}, fmt.Errorf("%w: %d columns but %d cells", ErrSchemaMismatch, len(columns), len(cells))
	}
	return Row{
		columns: append([]string(nil), columns...),
		cells:   append([]Cell(nil), cells...),
	}, nil
}

// Columns returns a copy of the ordered column names.
func (r Row) Columns() []string { return append([]string(nil), r.columns...) }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// At returns the column name and cell at position i.
func (r Row) At(i int) (string, Cell) { return r.columns[i], r.cells[i] }

// Get looks a cell up by column name.
func (r Row) Get(column string) (Cell, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.cells[i], true
		}
	}
	return Cell{}, false
}

// CheckColumns fails with ErrSchemaMismatch unless the row has exactly the expected
// columns in the expected order.
func (r Row) CheckColumns(expected []string) error {
	if len(expected) != len(r.columns) {
		return fmt.Errorf("%w: expected %d columns [%s], got %d [%s]", ErrSchemaMismatch,
			len(expected), strings.Join(expected, ","), len(r.columns), strings.Join(r.columns, ","))
	}
	for i := range expected {
		if expected[i] != r.columns[i] {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrSchemaMismatch, i, r.columns[i], expected[i])
		}
	}
	return nil
}

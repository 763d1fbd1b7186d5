// Package features holds the m6A feature table: named columns of string
// cells, required-column validation, and typed records parsed from rows.
package features

import (
	"errors"
	"fmt"
	"strings"
)

// Required feature column names.
const (
	ColGCContent                = "gc_content"
	ColRNAType                  = "RNA_type"
	ColRNARegion                = "RNA_region"
	ColExonLength               = "exon_length"
	ColDistanceToJunction       = "distance_to_junction"
	ColEvolutionaryConservation = "evolutionary_conservation"
	ColDNA5mer                  = "DNA_5mer"
)

// RequiredColumns lists every column a table must carry before prediction.
var RequiredColumns = []string{
	ColGCContent,
	ColRNAType,
	ColRNARegion,
	ColExonLength,
	ColDistanceToJunction,
	ColEvolutionaryConservation,
	ColDNA5mer,
}

// ErrDuplicateColumn is returned when a table header names a column twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// MissingColumnsError lists the required columns absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// Table is an ordered set of named columns over rows of string cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Columns returns the header in order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddRow appends one row. The number of values must match the header.
func (t *Table) AddRow(values ...string) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]string, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns row i. The slice must not be modified.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, name string) (string, bool) {
	j, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.rows[i][j], true
}

// Column returns a copy of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	j, ok := t.index[name]
	if !ok {
		return nil
	}
	col := make([]string, len(t.rows))
	for i, r := range t.rows {
		col[i] = r[j]
	}
	return col
}

// SetColumn replaces the named column, or appends it if absent.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	j, ok := t.index[name]
	if !ok {
		j = len(t.columns)
		t.index[name] = j
		t.columns = append(t.columns, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], values[i])
		}
		return nil
	}
	for i := range t.rows {
		t.rows[i][j] = values[i]
	}
	return nil
}

// Require checks that every named column is present. All missing names are
// reported in one MissingColumnsError.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: append([]string(nil), t.columns...),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]string, len(t.rows)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, r := range t.rows {
		c.rows[i] = append([]string(nil), r...)
	}
	return c
}

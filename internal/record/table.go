// internal/record/table.go
package record

import (
	"sort"

	"github.com/parquet-go/parquet-go"
)

// Table is an in-memory set of rows plus the columns known to be present in
// the source data. Operations return new tables and never mutate their input.
//
// Passthrough lists the top-level source fields that are not Record columns,
// sorted by name. Their values ride along in Record.Passthrough.
type Table struct {
	Rows        []Record
	Passthrough []parquet.Field
	columns     map[string]struct{}
}

// NewTable builds a table; with no columns given, all Record columns count
// as present.
func NewTable(rows []Record, columns ...string) Table {
	if len(columns) == 0 {
		columns = AllColumns
	}
	return FromColumns(rows, columns)
}

// FromColumns builds a table with exactly cols present, even when cols is
// empty.
func FromColumns(rows []Record, cols []string) Table {
	t := Table{Rows: rows, columns: make(map[string]struct{}, len(cols))}
	for _, c := range cols {
		t.columns[c] = struct{}{}
	}
	return t
}

// Len returns the row count.
func (t Table) Len() int { return len(t.Rows) }

// Has reports whether column c is present.
func (t Table) Has(c string) bool {
	_, ok := t.columns[c]
	return ok
}

// Columns returns the present columns, sorted.
func (t Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Require returns a *SchemaError naming every column in cols that is absent.
func (t Table) Require(op string, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Op: op, Missing: missing}
	}
	return nil
}

// WithRows returns a table over rows with the same column set.
func (t Table) WithRows(rows []Record) Table {
	return Table{Rows: rows, Passthrough: t.Passthrough, columns: t.columns}
}

// WithColumns returns a copy of t whose column set also includes cols.
// Rows are copied so callers may fill the new columns freely.
func (t Table) WithColumns(cols ...string) Table {
	m := make(map[string]struct{}, len(t.columns)+len(cols))
	for c := range t.columns {
		m[c] = struct{}{}
	}
	for _, c := range cols {
		m[c] = struct{}{}
	}
	rows := make([]Record, len(t.Rows))
	copy(rows, t.Rows)
	return Table{Rows: rows, Passthrough: t.Passthrough, columns: m}
}

// Filter keeps rows where keep returns true, preserving order.
func (t Table) Filter(keep func(Record) bool) Table {
	out := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return t.WithRows(out)
}

// Intersect narrows the column set of t to those also listed in cols.
// Used when concatenating partitions.
func (t Table) Intersect(cols []string) Table {
	keep := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if t.Has(c) {
			keep[c] = struct{}{}
		}
	}
	return Table{Rows: t.Rows, Passthrough: t.Passthrough, columns: keep}
}

// internal/tableio/read.go
package tableio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"agab/internal/record"
)

// ReadFile reads one parquet file. Record columns are coerced from
// whatever physical type the file uses: numbers are formatted as text for
// string columns, so a DOUBLE affinity of 50 becomes "50". Record columns
// missing from the file are null in every row and absent from the table's
// column set. Every other top-level field is carried as passthrough.
func ReadFile(path string) (t record.Table, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return record.Table{}, err
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return record.Table{}, err
	}
	pf, err := parquet.OpenFile(fh, st.Size())
	if err != nil {
		return record.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	src, err := newSourceLayout(pf.Schema())
	if err != nil {
		return record.Table{}, fmt.Errorf("%s: %w", path, err)
	}

	defer func() {
		if p := recover(); p != nil {
			t, err = record.Table{}, fmt.Errorf("%s: read rows: %v", path, p)
		}
	}()
	rows := make([]record.Record, 0, pf.NumRows())
	for _, rg := range pf.RowGroups() {
		if rows, err = src.readGroup(rg, rows); err != nil {
			return record.Table{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	t = record.FromColumns(rows, src.columns)
	t.Passthrough = src.passthrough
	return t, nil
}

// sourceLayout maps the leaf columns of a file onto Record cells and
// passthrough slots.
type sourceLayout struct {
	columns     []string
	passthrough []parquet.Field
	cell        map[int]string // leaf → Record column
	slot        map[int]int    // leaf → passthrough leaf
}

func newSourceLayout(s *parquet.Schema) (*sourceLayout, error) {
	l := &sourceLayout{cell: map[int]string{}, slot: map[int]int{}}
	for _, f := range s.Fields() {
		if !record.IsColumn(f.Name()) {
			l.passthrough = append(l.passthrough, f)
			continue
		}
		if !f.Leaf() || f.Repeated() {
			return nil, fmt.Errorf("column %q: want a single value per row", f.Name())
		}
	}
	l.passthrough = sortedFields(l.passthrough)

	ps := passthroughSchema(l.passthrough)
	for i, path := range s.Columns() {
		if len(path) == 1 && record.IsColumn(path[0]) {
			l.cell[i] = path[0]
			l.columns = append(l.columns, path[0])
			continue
		}
		leaf, ok := ps.Lookup(path...)
		if !ok {
			return nil, fmt.Errorf("column %s: no passthrough slot", strings.Join(path, "."))
		}
		l.slot[i] = leaf.ColumnIndex
	}
	return l, nil
}

func (l *sourceLayout) readGroup(rg parquet.RowGroup, out []record.Record) ([]record.Record, error) {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 256)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			r, derr := l.decode(row)
			if derr != nil {
				return out, derr
			}
			out = append(out, r)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

func (l *sourceLayout) decode(row parquet.Row) (record.Record, error) {
	var r record.Record
	for _, v := range row {
		col := v.Column()
		if name, ok := l.cell[col]; ok {
			if err := setCell(&r, name, v); err != nil {
				return r, err
			}
			continue
		}
		if at, ok := l.slot[col]; ok {
			r.Passthrough = append(r.Passthrough, v.Clone().Level(v.RepetitionLevel(), v.DefinitionLevel(), at))
		}
	}
	return r, nil
}

func setCell(r *record.Record, col string, v parquet.Value) error {
	if v.IsNull() {
		return nil
	}
	str, flag := r.Cell(col)
	switch {
	case flag != nil:
		b, err := boolOf(v)
		if err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		*flag = &b
	case str != nil:
		s, err := textOf(v)
		if err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		*str = &s
	}
	return nil
}

func textOf(v parquet.Value) (string, error) {
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray()), nil
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10), nil
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10), nil
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32), nil
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64), nil
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean()), nil
	}
	return "", fmt.Errorf("cannot read %s value as text", v.Kind())
}

func boolOf(v parquet.Value) (bool, error) {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean(), nil
	case parquet.Int32:
		return v.Int32() != 0, nil
	case parquet.Int64:
		return v.Int64() != 0, nil
	case parquet.ByteArray:
		return strconv.ParseBool(strings.TrimSpace(string(v.ByteArray())))
	}
	return false, fmt.Errorf("cannot read %s value as boolean", v.Kind())
}

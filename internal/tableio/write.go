// internal/tableio/write.go
package tableio

import (
	"fmt"
	"sort"

	"github.com/parquet-go/parquet-go"

	"agab/internal/record"
)

type cellSlot struct {
	name string
	leaf int
}

// sinkLayout is the output schema of a table plus where each Record cell
// and passthrough leaf lands in it.
type sinkLayout struct {
	schema *parquet.Schema
	cells  []cellSlot
	slots  []int // passthrough leaf → output leaf
}

func newSinkLayout(t record.Table) (*sinkLayout, error) {
	g := parquet.Group{}
	cols := t.Columns()
	for _, c := range cols {
		if _, flag := new(record.Record).Cell(c); flag != nil {
			g[c] = parquet.Optional(parquet.Leaf(parquet.BooleanType))
		} else {
			g[c] = parquet.Optional(parquet.String())
		}
	}
	for _, f := range t.Passthrough {
		if _, clash := g[f.Name()]; clash {
			return nil, fmt.Errorf("passthrough column %q collides with a table column", f.Name())
		}
		g[f.Name()] = f
	}

	l := &sinkLayout{schema: parquet.NewSchema("agab", g)}
	for _, c := range cols {
		leaf, _ := l.schema.Lookup(c)
		l.cells = append(l.cells, cellSlot{name: c, leaf: leaf.ColumnIndex})
	}
	for _, path := range passthroughSchema(t.Passthrough).Columns() {
		leaf, _ := l.schema.Lookup(path...)
		l.slots = append(l.slots, leaf.ColumnIndex)
	}
	return l, nil
}

// encode builds the output row of r. Every leaf gets at least one value,
// ordered by leaf; passthrough leaves r has no value for are written null.
func (l *sinkLayout) encode(r *record.Record) parquet.Row {
	row := make(parquet.Row, 0, len(l.cells)+len(l.slots))
	for _, c := range l.cells {
		row = append(row, cellValue(r, c))
	}
	seen := make([]bool, len(l.slots))
	for _, v := range r.Passthrough {
		at := v.Column()
		if at >= len(l.slots) {
			continue
		}
		seen[at] = true
		row = append(row, v.Level(v.RepetitionLevel(), v.DefinitionLevel(), l.slots[at]))
	}
	for at, ok := range seen {
		if !ok {
			row = append(row, parquet.NullValue().Level(0, 0, l.slots[at]))
		}
	}
	sort.SliceStable(row, func(i, j int) bool { return row[i].Column() < row[j].Column() })
	return row
}

func cellValue(r *record.Record, c cellSlot) parquet.Value {
	str, flag := r.Cell(c.name)
	switch {
	case str != nil && *str != nil:
		return parquet.ByteArrayValue([]byte(**str)).Level(0, 1, c.leaf)
	case flag != nil && *flag != nil:
		return parquet.BooleanValue(**flag).Level(0, 1, c.leaf)
	}
	return parquet.NullValue().Level(0, 0, c.leaf)
}

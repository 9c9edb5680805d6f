// internal/tableio/passthrough.go
package tableio

import (
	"fmt"
	"sort"

	"github.com/parquet-go/parquet-go"
)

// Passthrough values in a Record are indexed by leaf column of the schema
// built from the table's passthrough fields alone.
func passthroughSchema(fields []parquet.Field) *parquet.Schema {
	g := parquet.Group{}
	for _, f := range fields {
		g[f.Name()] = f
	}
	return parquet.NewSchema("passthrough", g)
}

func sortedFields(fields []parquet.Field) []parquet.Field {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name() < fields[j].Name() })
	return fields
}

// sameType compares two fields by their printed schema, which covers
// physical type, logical type, repetition, and nested structure.
func sameType(a, b parquet.Field) bool {
	return parquet.Group{"f": a}.String() == parquet.Group{"f": b}.String()
}

// commonFields keeps the fields of have that next also has.
func commonFields(have, next []parquet.Field) ([]parquet.Field, error) {
	byName := make(map[string]parquet.Field, len(next))
	for _, f := range next {
		byName[f.Name()] = f
	}
	var out []parquet.Field
	for _, f := range have {
		g, ok := byName[f.Name()]
		if !ok {
			continue
		}
		if !sameType(f, g) {
			return nil, fmt.Errorf("column %q changes type between partitions", f.Name())
		}
		out = append(out, f)
	}
	return out, nil
}

// passthroughRemap returns a function moving values laid out for from into
// the layout of to. Leaves of from that to lacks are dropped.
func passthroughRemap(from, to []parquet.Field) func(parquet.Row) parquet.Row {
	if len(from) == len(to) {
		return func(r parquet.Row) parquet.Row { return r }
	}
	dst := passthroughSchema(to)
	index := map[int]int{}
	for i, path := range passthroughSchema(from).Columns() {
		if leaf, ok := dst.Lookup(path...); ok {
			index[i] = leaf.ColumnIndex
		}
	}
	return func(r parquet.Row) parquet.Row {
		out := make(parquet.Row, 0, len(r))
		for _, v := range r {
			if at, ok := index[v.Column()]; ok {
				out = append(out, v.Level(v.RepetitionLevel(), v.DefinitionLevel(), at))
			}
		}
		return out
	}
}

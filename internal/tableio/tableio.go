// internal/tableio/tableio.go
package tableio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"

	"agab/internal/record"
)

// PartitionPattern matches the partition files of a dataset directory.
const PartitionPattern = "part-*.parquet"

// NoInputFilesError means a dataset directory held no partition files.
type NoInputFilesError struct {
	Dir     string
	Pattern string
}

func (e *NoInputFilesError) Error() string {
	return fmt.Sprintf("no %s files found in %s", e.Pattern, e.Dir)
}

// Partitions lists the partition files of dir in lexical order.
func Partitions(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, PartitionPattern))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoInputFilesError{Dir: dir, Pattern: PartitionPattern}
	}
	sort.Strings(files)
	return files, nil
}

// LoadPartitions reads every partition of dir into one table. Partition
// order is lexical and each partition keeps its row order.
func LoadPartitions(dir string) (record.Table, []string, error) {
	files, err := Partitions(dir)
	if err != nil {
		return record.Table{}, nil, err
	}
	t, err := Concat(files)
	return t, files, err
}

// Concat reads and concatenates files. Both the Record columns and the
// passthrough fields of the result are those present in every file. A
// passthrough field whose type differs between files is an error.
func Concat(files []string) (record.Table, error) {
	tables := make([]record.Table, 0, len(files))
	for _, f := range files {
		t, err := ReadFile(f)
		if err != nil {
			return record.Table{}, err
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return record.FromColumns(nil, nil), nil
	}

	cols := tables[0].Columns()
	fields := tables[0].Passthrough
	for i, t := range tables[1:] {
		cols = t.Intersect(cols).Columns()
		var err error
		if fields, err = commonFields(fields, t.Passthrough); err != nil {
			return record.Table{}, fmt.Errorf("%s: %w", files[i+1], err)
		}
	}

	var rows []record.Record
	for _, t := range tables {
		remap := passthroughRemap(t.Passthrough, fields)
		for _, r := range t.Rows {
			r.Passthrough = remap(r.Passthrough)
			rows = append(rows, r)
		}
	}
	out := record.FromColumns(rows, cols)
	out.Passthrough = fields
	return out, nil
}

// Save writes t to path as a single parquet file, replacing any existing
// file. The directory is created if needed. Only the columns present in t
// are written, followed by its passthrough fields unchanged.
func Save(path string, t record.Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	sink, err := newSinkLayout(t)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	rows := make([]parquet.Row, len(t.Rows))
	for i := range t.Rows {
		rows[i] = sink.encode(&t.Rows[i])
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewWriter(fh, sink.schema)
	if _, err := w.WriteRows(rows); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}

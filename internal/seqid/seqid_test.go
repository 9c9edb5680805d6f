// internal/seqid/seqid_test.go
package seqid

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agab/internal/record"
)

func TestHashIsStableMD5(t *testing.T) {
	// md5("ABC")
	assert.Equal(t, "902fbdd2b1df0c4f70b4a5d23525e932", Hash("ABC"))
	assert.Equal(t, Hash("ABC"), Hash("ABC"))
	assert.NotEqual(t, Hash("ABC"), Hash("abc"))
	assert.NotEqual(t, Hash("ABC"), Hash("ABC "))
	assert.Len(t, Hash(""), 32)
}

func table(seqs ...*string) record.Table {
	rows := make([]record.Record, len(seqs))
	for i, s := range seqs {
		rows[i] = record.Record{AntigenSequence: s}
	}
	return record.NewTable(rows, record.ColAntigenSequence)
}

func TestExportAntigensUniqueNonEmpty(t *testing.T) {
	ex, err := ExportAntigens(table(
		record.Str("ABC"), nil, record.Str(""), record.Str("XYZ"), record.Str("ABC"), record.Str("abc"),
	))
	require.NoError(t, err)
	require.Len(t, ex.Records, 3)
	assert.Equal(t, "ABC", ex.Records[0].Seq)
	assert.Equal(t, Hash("ABC"), ex.Records[0].ID)
	assert.Equal(t, "XYZ", ex.Records[1].Seq)
	assert.Equal(t, "abc", ex.Records[2].Seq)
	assert.Len(t, ex.Mapping, 3)
}

func TestExportOrderIndependent(t *testing.T) {
	a, err := ExportAntigens(table(record.Str("A"), record.Str("B"), record.Str("C")))
	require.NoError(t, err)
	b, err := ExportAntigens(table(record.Str("C"), record.Str("A"), record.Str("B"), record.Str("A")))
	require.NoError(t, err)

	assert.Equal(t, a.Mapping, b.Mapping)
	ids := func(e Export) []string {
		var out []string
		for _, r := range e.Records {
			out = append(out, r.ID)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, ids(a), ids(b))
}

func TestExportMissingColumn(t *testing.T) {
	_, err := ExportAntigens(record.NewTable(nil, record.ColHeavySequence))
	var mc *record.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, record.ColAntigenSequence, mc.Column)
}

func TestMappingSaveLoadDeterministic(t *testing.T) {
	dir := t.TempDir()
	m := Collect([]string{"ZZZ", "AAA", "MMM"}).Mapping

	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	require.NoError(t, m.Save(p1))
	require.NoError(t, Collect([]string{"MMM", "ZZZ", "AAA"}).Mapping.Save(p2))

	b1, err := os.ReadFile(p1)
	require.NoError(t, err)
	b2, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))

	got, err := LoadMapping(p1)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	seq, ok := got.Lookup(Hash("AAA"))
	assert.True(t, ok)
	assert.Equal(t, "AAA", seq)
}

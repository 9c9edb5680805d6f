// internal/numbering/pool_test.go
package numbering

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agab/internal/fasta"
	"agab/internal/record"
	"agab/internal/seqid"
)

// fakeNumberer assigns every sequence a heavy chain, except batches that
// contain the sequence fail (error) or crash (panic).
type fakeNumberer struct {
	fail, crash string
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeNumberer) Number(ctx context.Context, batch []fasta.Record) (map[string]Assignment, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		old := f.maxInFlight.Load()
		if cur <= old || f.maxInFlight.CompareAndSwap(old, cur) {
			break
		}
	}
	out := map[string]Assignment{}
	for _, r := range batch {
		switch r.Seq {
		case f.fail:
			return nil, errors.New("anarci: bad input")
		case f.crash:
			panic("worker crashed")
		}
		out[r.ID] = Assignment{ChainType: "H", VGene: "IGHV1-" + r.Seq}
	}
	return out, nil
}

func recs(seqs ...string) []fasta.Record {
	return seqid.Collect(seqs).Records
}

func TestBatches(t *testing.T) {
	b := Batches(recs("a", "b", "c", "d", "e"), 2)
	require.Len(t, b, 3)
	assert.Len(t, b[0], 2)
	assert.Len(t, b[2], 1)
	assert.Empty(t, Batches(nil, 10))
	assert.Len(t, Batches(recs("a", "b"), 0), 2)
}

func TestRunIsolatesFailures(t *testing.T) {
	n := &fakeNumberer{fail: "c", crash: "e"}
	batches := Batches(recs("a", "b", "c", "d", "e", "f", "g"), 2)

	results, err := Run(context.Background(), n, batches, 3)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, i, r.BatchIndex())
	}
	assert.IsType(t, Success{}, results[0])
	f, ok := results[1].(Failure)
	require.True(t, ok)
	assert.Equal(t, "anarci: bad input", f.Message)
	assert.Equal(t, 2, f.Size)
	p, ok := results[2].(Failure)
	require.True(t, ok)
	assert.Contains(t, p.Message, "worker crashed")
	assert.IsType(t, Success{}, results[3])

	all, rep := Collect(results)
	assert.Equal(t, 2, rep.Failed)
	assert.Equal(t, 3, rep.Assigned)
	assert.Contains(t, all, seqid.Hash("g"))
	assert.NotContains(t, all, seqid.Hash("d"))
}

func TestRunRespectsWorkerLimit(t *testing.T) {
	n := &fakeNumberer{}
	var seqs []string
	for i := 0; i < 40; i++ {
		seqs = append(seqs, fmt.Sprintf("s%d", i))
	}
	_, err := Run(context.Background(), n, Batches(recs(seqs...), 1), 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, n.maxInFlight.Load(), int32(2))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &fakeNumberer{}, Batches(recs("a"), 1), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotate(t *testing.T) {
	rows := []record.Record{
		{HeavySequence: record.Str("HH"), LightSequence: record.Str("LL")},
		{HeavySequence: record.Str("HH"), LightSequence: record.Str("")},
		{HeavySequence: nil, LightSequence: record.Str("XX")},
	}
	in := record.NewTable(rows, record.ColHeavySequence, record.ColLightSequence)
	chains, err := Chains(in)
	require.NoError(t, err)
	require.Len(t, chains, 3)

	assignments := map[string]Assignment{
		seqid.Hash("HH"): {ChainType: "H", VGene: "IGHV3-23", JGene: "IGHJ4"},
		seqid.Hash("LL"): {ChainType: "K", VGene: "IGKV1-39"},
	}
	out := Annotate(in, assignments)

	assert.Equal(t, "IGHV3-23", record.Value(out.Rows[0].HeavyVGene))
	assert.Equal(t, "K", record.Value(out.Rows[0].LightChainType))
	assert.Nil(t, out.Rows[0].LightJGene)
	assert.Nil(t, out.Rows[1].LightChainType)
	assert.Nil(t, out.Rows[2].LightChainType)
	assert.True(t, out.Has(record.ColHeavyVGene))
	assert.Nil(t, in.Rows[0].HeavyVGene)
}

func TestChainsSchemaError(t *testing.T) {
	_, err := Chains(record.NewTable(nil, record.ColHeavySequence))
	var se *record.SchemaError
	assert.True(t, errors.As(err, &se))
}

// internal/numbering/pool.go
package numbering

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"agab/internal/fasta"
)

// Numberer numbers one batch of sequences. Implementations must be safe
// for concurrent use by independent batches.
type Numberer interface {
	Number(ctx context.Context, batch []fasta.Record) (map[string]Assignment, error)
}

// Batches splits recs into consecutive batches of at most size records.
func Batches(recs []fasta.Record, size int) [][]fasta.Record {
	if size < 1 {
		size = 1
	}
	var out [][]fasta.Record
	for len(recs) > 0 {
		n := size
		if n > len(recs) {
			n = len(recs)
		}
		out = append(out, recs[:n:n])
		recs = recs[n:]
	}
	return out
}

// Run numbers every batch with at most workers concurrent calls and
// returns one Result per batch, indexed like batches. Errors and panics
// inside a batch become Failures. The returned error is only ever the
// context's.
func Run(ctx context.Context, n Numberer, batches [][]fasta.Record, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range batches {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = runBatch(gctx, n, i, b)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBatch(ctx context.Context, n Numberer, idx int, batch []fasta.Record) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Failure{Batch: idx, Size: len(batch), Message: fmt.Sprint(p)}
		}
	}()
	got, err := n.Number(ctx, batch)
	if err != nil {
		return Failure{Batch: idx, Size: len(batch), Message: err.Error()}
	}
	if got == nil {
		got = map[string]Assignment{}
	}
	return Success{Batch: idx, Assignments: got}
}

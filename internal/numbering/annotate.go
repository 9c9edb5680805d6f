// internal/numbering/annotate.go
package numbering

import (
	"agab/internal/fasta"
	"agab/internal/record"
	"agab/internal/seqid"
)

// Chains collects the distinct non-empty heavy and light sequences of t,
// each identified by its seqid hash, in first-appearance order.
func Chains(t record.Table) ([]fasta.Record, error) {
	if err := t.Require("numbering", record.ColHeavySequence, record.ColLightSequence); err != nil {
		return nil, err
	}
	seqs := make([]string, 0, 2*t.Len())
	for _, r := range t.Rows {
		seqs = append(seqs, record.Value(r.HeavySequence), record.Value(r.LightSequence))
	}
	return seqid.Collect(seqs).Records, nil
}

// Report summarises a numbering pass.
type Report struct {
	Batches   int
	Failed    int
	Sequences int // sequences submitted
	Assigned  int // sequences that received an assignment
	Failures  []Failure
}

// Collect merges batch results into one lookup and a report.
func Collect(results []Result) (map[string]Assignment, Report) {
	all := map[string]Assignment{}
	rep := Report{Batches: len(results)}
	for _, res := range results {
		switch r := res.(type) {
		case Success:
			for id, a := range r.Assignments {
				all[id] = a
			}
		case Failure:
			rep.Failed++
			rep.Failures = append(rep.Failures, r)
		}
	}
	rep.Assigned = len(all)
	return all, rep
}

// Annotate returns a copy of t with heavy_* and light_* assignment columns
// filled from assignments. Chains without an assignment stay null.
func Annotate(t record.Table, assignments map[string]Assignment) record.Table {
	out := t.WithColumns(
		record.ColHeavyChainType, record.ColHeavyVGene, record.ColHeavyJGene,
		record.ColLightChainType, record.ColLightVGene, record.ColLightJGene,
	)
	for i := range out.Rows {
		r := &out.Rows[i]
		r.HeavyChainType, r.HeavyVGene, r.HeavyJGene = lookup(assignments, r.HeavySequence)
		r.LightChainType, r.LightVGene, r.LightJGene = lookup(assignments, r.LightSequence)
	}
	return out
}

func lookup(m map[string]Assignment, seq *string) (chain, v, j *string) {
	if !record.Present(seq) {
		return nil, nil, nil
	}
	a, ok := m[seqid.Hash(*seq)]
	if !ok {
		return nil, nil, nil
	}
	return nonEmpty(a.ChainType), nonEmpty(a.VGene), nonEmpty(a.JGene)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return record.Str(s)
}

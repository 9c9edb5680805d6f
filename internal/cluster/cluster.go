// internal/cluster/cluster.go
package cluster

import (
	"agab/internal/record"
	"agab/internal/seqid"
)

// Map is member sequence → representative sequence.
type Map struct {
	rep map[string]string
}

// Lookup returns the representative for a member sequence. ok is false for
// sequences the clustering output did not cover.
func (m Map) Lookup(seq string) (rep string, ok bool) {
	rep, ok = m.rep[seq]
	return rep, ok
}

// Len is the number of mapped member sequences.
func (m Map) Len() int { return len(m.rep) }

// BuildStats counts what BuildMap did with each pair.
type BuildStats struct {
	Pairs      int // pairs read
	Mapped     int // pairs that resolved on both sides
	Unresolved int // pairs skipped because an identifier was unknown
	Reassigned int // member edges that replaced an earlier representative
}

// BuildMap resolves identifier pairs into sequence pairs. Pairs with an
// unknown identifier on either side are skipped and counted. A member seen
// more than once takes the representative of its last pair.
func BuildMap(ids seqid.Mapping, pairs []Pair) (Map, BuildStats) {
	m := Map{rep: make(map[string]string, len(pairs))}
	st := BuildStats{Pairs: len(pairs)}
	for _, p := range pairs {
		repSeq, ok1 := ids.Lookup(p.Representative)
		memSeq, ok2 := ids.Lookup(p.Member)
		if !ok1 || !ok2 || repSeq == "" || memSeq == "" {
			st.Unresolved++
			continue
		}
		if prev, seen := m.rep[memSeq]; seen && prev != repSeq {
			st.Reassigned++
		}
		m.rep[memSeq] = repSeq
		st.Mapped++
	}
	return m, st
}

// Coverage summarises an annotated table.
type Coverage struct {
	Rows     int
	Null     int // rows without a representative
	Clusters int // distinct non-null representatives
}

// Annotate returns a copy of t with cluster_representative filled from m.
// Rows whose antigen sequence is null or unmapped get a null value.
func Annotate(t record.Table, m Map) (record.Table, Coverage, error) {
	if !t.Has(record.ColAntigenSequence) {
		return record.Table{}, Coverage{}, &record.MissingColumnError{Column: record.ColAntigenSequence}
	}
	out := t.WithColumns(record.ColClusterRepresentative)
	cov := Coverage{Rows: out.Len()}
	reps := make(map[string]struct{})
	for i := range out.Rows {
		r := &out.Rows[i]
		r.ClusterRepresentative = nil
		if r.AntigenSequence == nil {
			cov.Null++
			continue
		}
		rep, ok := m.Lookup(*r.AntigenSequence)
		if !ok {
			cov.Null++
			continue
		}
		r.ClusterRepresentative = record.Str(rep)
		reps[rep] = struct{}{}
	}
	cov.Clusters = len(reps)
	return out, cov, nil
}

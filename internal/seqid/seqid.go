// internal/seqid/seqid.go
package seqid

import (
	"crypto/md5"
	"encoding/hex"

	"agab/internal/fasta"
	"agab/internal/record"
)

// Hash returns the identifier for a sequence: lowercase hex MD5 of its
// bytes. The clustering tool only ever sees these identifiers.
func Hash(seq string) string {
	sum := md5.Sum([]byte(seq))
	return hex.EncodeToString(sum[:])
}

// Export is the set of unique antigen sequences with their identifiers,
// in first-appearance order.
type Export struct {
	Records []fasta.Record
	Mapping Mapping
}

// ExportAntigens collects the distinct non-empty antigen sequences of t.
// Text is compared exactly; case and whitespace are significant.
func ExportAntigens(t record.Table) (Export, error) {
	if !t.Has(record.ColAntigenSequence) {
		return Export{}, &record.MissingColumnError{Column: record.ColAntigenSequence}
	}
	return Collect(antigens(t)), nil
}

// Collect hashes each distinct non-empty sequence once.
func Collect(seqs []string) Export {
	ex := Export{Mapping: make(Mapping, len(seqs))}
	for _, s := range seqs {
		if s == "" {
			continue
		}
		id := Hash(s)
		if _, ok := ex.Mapping[id]; ok {
			continue
		}
		ex.Mapping[id] = s
		ex.Records = append(ex.Records, fasta.Record{ID: id, Seq: s})
	}
	return ex
}

func antigens(t record.Table) []string {
	out := make([]string, 0, t.Len())
	for _, r := range t.Rows {
		if r.AntigenSequence != nil {
			out = append(out, *r.AntigenSequence)
		}
	}
	return out
}

// internal/record/record.go
package record

import "github.com/parquet-go/parquet-go"

// Column names as they appear in the parquet files.
const (
	ColNanobody        = "nanobody"
	ColSCFV            = "scfv"
	ColHeavySequence   = "heavy_sequence"
	ColLightSequence   = "light_sequence"
	ColAntigenSequence = "antigen_sequence"
	ColAffinity        = "affinity"
	ColAffinityType    = "affinity_type"
	ColConfidence      = "confidence"

	ColHeavyChainType = "heavy_chain_type"
	ColHeavyVGene     = "heavy_v_gene"
	ColHeavyJGene     = "heavy_j_gene"
	ColLightChainType = "light_chain_type"
	ColLightVGene     = "light_v_gene"
	ColLightJGene     = "light_j_gene"

	ColClusterRepresentative = "cluster_representative"
)

// Record is one antibody-antigen observation. Every field is nullable;
// a nil pointer is a null cell.
type Record struct {
	Nanobody        *bool   `parquet:"nanobody,optional"`
	SCFV            *bool   `parquet:"scfv,optional"`
	HeavySequence   *string `parquet:"heavy_sequence,optional"`
	LightSequence   *string `parquet:"light_sequence,optional"`
	AntigenSequence *string `parquet:"antigen_sequence,optional"`
	Affinity        *string `parquet:"affinity,optional"`
	AffinityType    *string `parquet:"affinity_type,optional"`
	Confidence      *string `parquet:"confidence,optional"`

	HeavyChainType *string `parquet:"heavy_chain_type,optional"`
	HeavyVGene     *string `parquet:"heavy_v_gene,optional"`
	HeavyJGene     *string `parquet:"heavy_j_gene,optional"`
	LightChainType *string `parquet:"light_chain_type,optional"`
	LightVGene     *string `parquet:"light_v_gene,optional"`
	LightJGene     *string `parquet:"light_j_gene,optional"`

	ClusterRepresentative *string `parquet:"cluster_representative,optional"`

	// Passthrough holds the values of source columns no stage interprets,
	// indexed by leaf within the owning Table's Passthrough fields.
	Passthrough parquet.Row `parquet:"-"`
}

// AllColumns lists every column a Record carries, in schema order.
var AllColumns = []string{
	ColNanobody, ColSCFV, ColHeavySequence, ColLightSequence, ColAntigenSequence,
	ColAffinity, ColAffinityType, ColConfidence,
	ColHeavyChainType, ColHeavyVGene, ColHeavyJGene,
	ColLightChainType, ColLightVGene, ColLightJGene,
	ColClusterRepresentative,
}

// Cell returns the address of the named cell: a text cell in str or a
// boolean cell in flag. Both are nil when col is not a Record column.
func (r *Record) Cell(col string) (str **string, flag **bool) {
	switch col {
	case ColNanobody:
		return nil, &r.Nanobody
	case ColSCFV:
		return nil, &r.SCFV
	case ColHeavySequence:
		return &r.HeavySequence, nil
	case ColLightSequence:
		return &r.LightSequence, nil
	case ColAntigenSequence:
		return &r.AntigenSequence, nil
	case ColAffinity:
		return &r.Affinity, nil
	case ColAffinityType:
		return &r.AffinityType, nil
	case ColConfidence:
		return &r.Confidence, nil
	case ColHeavyChainType:
		return &r.HeavyChainType, nil
	case ColHeavyVGene:
		return &r.HeavyVGene, nil
	case ColHeavyJGene:
		return &r.HeavyJGene, nil
	case ColLightChainType:
		return &r.LightChainType, nil
	case ColLightVGene:
		return &r.LightVGene, nil
	case ColLightJGene:
		return &r.LightJGene, nil
	case ColClusterRepresentative:
		return &r.ClusterRepresentative, nil
	}
	return nil, nil
}

// IsColumn reports whether col is one of the Record columns.
func IsColumn(col string) bool {
	str, flag := new(Record).Cell(col)
	return str != nil || flag != nil
}

// Str and Bool build nullable cells.
func Str(s string) *string { return &s }
func Bool(b bool) *bool    { return &b }

// Present reports whether s is non-null and non-empty.
func Present(s *string) bool { return s != nil && *s != "" }

// Value returns the cell text, or "" for null.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsTrue / IsFalse treat null as neither.
func IsTrue(b *bool) bool  { return b != nil && *b }
func IsFalse(b *bool) bool { return b != nil && !*b }

// internal/filter/filter.go
package filter

import (
	"agab/internal/record"
)

// Eligible keeps non-nanobody rows that are either scFv or carry both a
// heavy and a light chain. Null nanobody/scfv flags count as neither value.
func Eligible(t record.Table) (record.Table, error) {
	if err := t.Require("filter eligible",
		record.ColNanobody, record.ColSCFV,
		record.ColHeavySequence, record.ColLightSequence,
	); err != nil {
		return record.Table{}, err
	}
	return t.Filter(IsEligible), nil
}

// IsEligible is the per-row eligibility predicate.
func IsEligible(r record.Record) bool {
	if !record.IsFalse(r.Nanobody) {
		return false
	}
	if record.IsTrue(r.SCFV) {
		return true
	}
	return record.Present(r.HeavySequence) && record.Present(r.LightSequence)
}

// ByAffinity keeps rows whose value satisfies the rule of their own
// affinity type. Rows with an unknown type are dropped.
func ByAffinity(t record.Table, rules Rules) (record.Table, error) {
	if err := t.Require("filter affinity", record.ColAffinity, record.ColAffinityType); err != nil {
		return record.Table{}, err
	}
	return t.Filter(func(r record.Record) bool {
		if r.AffinityType == nil {
			return false
		}
		return rules.Match(*r.AffinityType, r.Affinity)
	}), nil
}

// ByConfidence keeps rows whose confidence is one of levels. An empty
// levels list disables the filter.
func ByConfidence(t record.Table, levels []string) (record.Table, error) {
	if len(levels) == 0 {
		return t, nil
	}
	if err := t.Require("filter confidence", record.ColConfidence); err != nil {
		return record.Table{}, err
	}
	allowed := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		allowed[l] = struct{}{}
	}
	return t.Filter(func(r record.Record) bool {
		if r.Confidence == nil {
			return false
		}
		_, ok := allowed[*r.Confidence]
		return ok
	}), nil
}

// cell distinguishes null from empty so both act as separate dedup values.
type cell struct {
	null bool
	v    string
}

func cellOf(s *string) cell {
	if s == nil {
		return cell{null: true}
	}
	return cell{v: *s}
}

type tripleKey struct {
	heavy, light, antigen cell
}

// Deduplicate keeps the first row for each (heavy, light, antigen) triple.
// Null equals null, so rows whose triple is entirely null collapse to one.
func Deduplicate(t record.Table) (record.Table, error) {
	if err := t.Require("deduplicate",
		record.ColHeavySequence, record.ColLightSequence, record.ColAntigenSequence,
	); err != nil {
		return record.Table{}, err
	}
	seen := make(map[tripleKey]struct{}, t.Len())
	return t.Filter(func(r record.Record) bool {
		k := tripleKey{cellOf(r.HeavySequence), cellOf(r.LightSequence), cellOf(r.AntigenSequence)}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	}), nil
}

// internal/filter/pipeline.go
package filter

import (
	"fmt"

	"agab/internal/record"
)

// Step is one table→table stage of the curation pass.
type Step struct {
	Name  string
	Apply func(record.Table) (record.Table, error)
}

// Options configures Steps.
type Options struct {
	Rules            Rules
	ConfidenceLevels []string // empty disables the confidence step
}

// Steps returns the fixed curation order: eligibility, optional confidence,
// affinity, then dedup. Dedup must run last; moving it changes results.
func Steps(o Options) []Step {
	steps := []Step{{Name: "eligible", Apply: Eligible}}
	if len(o.ConfidenceLevels) > 0 {
		levels := append([]string(nil), o.ConfidenceLevels...)
		steps = append(steps, Step{Name: "confidence", Apply: func(t record.Table) (record.Table, error) {
			return ByConfidence(t, levels)
		}})
	}
	rules := o.Rules
	steps = append(steps,
		Step{Name: "affinity", Apply: func(t record.Table) (record.Table, error) {
			return ByAffinity(t, rules)
		}},
		Step{Name: "deduplicate", Apply: Deduplicate},
	)
	return steps
}

// Run applies steps in order and calls observe with the row counts around
// each one. It returns the first error, wrapped with the step name.
func Run(t record.Table, steps []Step, observe func(step string, before, after int)) (record.Table, error) {
	for _, s := range steps {
		before := t.Len()
		out, err := s.Apply(t)
		if err != nil {
			return record.Table{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		if observe != nil {
			observe(s.Name, before, out.Len())
		}
		t = out
	}
	return t, nil
}

// internal/filter/rules.go
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a comparison applied to an affinity value.
type Op string

const (
	OpEq Op = "=="
	OpLt Op = "<"
	OpGt Op = ">"
)

// Rule is the threshold for one affinity measurement type.
type Rule struct {
	Type      string `yaml:"type"`
	Op        Op     `yaml:"op"`
	Threshold string `yaml:"threshold"`
}

// Rules is an immutable set of rules, at most one per measurement type.
// Build it with NewRules.
type Rules struct {
	order  []string
	byType map[string]compiled
}

type compiled struct {
	rule Rule
	num  float64 // numeric threshold, valid for < and >
}

// DefaultRules is the measurement-type catalog used by the curation pipeline.
func DefaultRules() []Rule {
	return []Rule{
		{Type: "fuzzy", Op: OpEq, Threshold: "h"},
		{Type: "bool", Op: OpEq, Threshold: "1"},
		{Type: "alphaseq", Op: OpLt, Threshold: "2"},
		{Type: "-log KD", Op: OpGt, Threshold: "7"},
		{Type: "kd", Op: OpLt, Threshold: "100"},
		{Type: "delta_g", Op: OpLt, Threshold: "-9.5"},
		{Type: "log_enrichment", Op: OpGt, Threshold: "1"},
		{Type: "elisa_mut_to_wt_ratio", Op: OpGt, Threshold: "1"},
		{Type: "ic_50", Op: OpLt, Threshold: "100"},
	}
}

// MustDefault compiles DefaultRules.
func MustDefault() Rules {
	r, err := NewRules(DefaultRules())
	if err != nil {
		panic(err)
	}
	return r
}

// NewRules validates and compiles a rule list. Types must be unique,
// operators known, and < / > thresholds numeric.
func NewRules(list []Rule) (Rules, error) {
	rs := Rules{byType: make(map[string]compiled, len(list))}
	for i, r := range list {
		if r.Type == "" {
			return Rules{}, fmt.Errorf("affinity rule %d: empty type", i+1)
		}
		if _, dup := rs.byType[r.Type]; dup {
			return Rules{}, fmt.Errorf("affinity rule %d: duplicate type %q", i+1, r.Type)
		}
		c := compiled{rule: r}
		switch r.Op {
		case OpEq:
		case OpLt, OpGt:
			v, ok := parseNumber(r.Threshold)
			if !ok {
				return Rules{}, fmt.Errorf("affinity rule %q: threshold %q is not numeric", r.Type, r.Threshold)
			}
			c.num = v
		default:
			return Rules{}, fmt.Errorf("affinity rule %q: unknown operator %q", r.Type, r.Op)
		}
		rs.byType[r.Type] = c
		rs.order = append(rs.order, r.Type)
	}
	return rs, nil
}

// Types lists rule types in declaration order.
func (rs Rules) Types() []string { return append([]string(nil), rs.order...) }

// Lookup returns the rule for a measurement type.
func (rs Rules) Lookup(typ string) (Rule, bool) {
	c, ok := rs.byType[typ]
	return c.rule, ok
}

// Match reports whether value satisfies the rule for typ. Unknown types and
// null values never match.
func (rs Rules) Match(typ string, value *string) bool {
	c, ok := rs.byType[typ]
	if !ok || value == nil {
		return false
	}
	switch c.rule.Op {
	case OpEq:
		return tokensEqual(*value, c.rule.Threshold)
	case OpLt:
		v, ok := parseNumber(*value)
		return ok && v < c.num
	case OpGt:
		v, ok := parseNumber(*value)
		return ok && v > c.num
	}
	return false
}

// parseNumber is the numeric coercion used by < and >. Booleans and
// category tokens do not coerce.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// tokensEqual compares raw affinity tokens: identical text, equal numbers,
// or a boolean token against 1/0.
func tokensEqual(a, b string) bool {
	if a == b {
		return true
	}
	x, okA := numericOrBool(a)
	y, okB := numericOrBool(b)
	return okA && okB && x == y
}

func numericOrBool(s string) (float64, bool) {
	if v, ok := parseNumber(s); ok {
		return v, true
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	return 0, false
}

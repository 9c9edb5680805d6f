// internal/filter/rules_test.go
package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agab/internal/record"
)

func TestDefaultRulesCompile(t *testing.T) {
	rs := MustDefault()
	assert.Len(t, rs.Types(), 9)
	r, ok := rs.Lookup("kd")
	require.True(t, ok)
	assert.Equal(t, OpLt, r.Op)
}

func TestNewRulesRejects(t *testing.T) {
	cases := map[string][]Rule{
		"duplicate":   {{Type: "kd", Op: OpLt, Threshold: "1"}, {Type: "kd", Op: OpGt, Threshold: "2"}},
		"bad op":      {{Type: "kd", Op: "<=", Threshold: "1"}},
		"non-numeric": {{Type: "kd", Op: OpLt, Threshold: "low"}},
		"empty type":  {{Op: OpEq, Threshold: "x"}},
	}
	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRules(list)
			assert.Error(t, err)
		})
	}
}

func TestMatch(t *testing.T) {
	rs := MustDefault()
	tests := []struct {
		typ   string
		value *string
		want  bool
	}{
		{"kd", record.Str("50"), true},
		{"kd", record.Str("100"), false},
		{"kd", record.Str("1e1"), true},
		{"kd", record.Str("n/a"), false},
		{"kd", nil, false},
		{"-log KD", record.Str("7.5"), true},
		{"-log KD", record.Str("7"), false},
		{"delta_g", record.Str("-10"), true},
		{"delta_g", record.Str("-9"), false},
		{"fuzzy", record.Str("h"), true},
		{"fuzzy", record.Str("H"), false},
		{"fuzzy", record.Str("m"), false},
		{"bool", record.Str("1"), true},
		{"bool", record.Str("1.0"), true},
		{"bool", record.Str("True"), true},
		{"bool", record.Str("false"), false},
		{"bool", record.Str("0"), false},
		{"unknown", record.Str("1"), false},
	}
	for _, tc := range tests {
		got := rs.Match(tc.typ, tc.value)
		assert.Equalf(t, tc.want, got, "%s %v", tc.typ, record.Value(tc.value))
	}
}

func TestSubstituteRules(t *testing.T) {
	rs, err := NewRules([]Rule{{Type: "kd", Op: OpGt, Threshold: "10"}})
	require.NoError(t, err)
	assert.True(t, rs.Match("kd", record.Str("50")))
	assert.False(t, rs.Match("ic_50", record.Str("50")))
}

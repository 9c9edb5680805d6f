// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agab/internal/filter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".", ".."}, cfg.Layout.Roots)
	assert.Len(t, cfg.Filter.AffinityRules, 9)
	assert.Empty(t, cfg.Filter.ConfidenceLevels)
	assert.Greater(t, cfg.Workers(), 0)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Setenv("AGAB_ROOT", "")
	t.Setenv("AGAB_LOG_LEVEL", "")
	t.Setenv("AGAB_NUMBERING_WORKERS", "")

	path := filepath.Join(t.TempDir(), "agab.yaml")
	body := `
filter:
  affinity_rules:
    - type: kd
      op: "<"
      threshold: "10"
    - type: fuzzy
      op: "=="
      threshold: h
  confidence_levels: [high, very_high]
numbering:
  workers: 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/asd", cfg.Layout.PartitionsDir)
	assert.Equal(t, 500, cfg.Numbering.BatchSize)
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, []string{"high", "very_high"}, cfg.Filter.ConfidenceLevels)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, []string{"kd", "fuzzy"}, rules.Types())
	r, _ := rules.Lookup("kd")
	assert.Equal(t, filter.Rule{Type: "kd", Op: filter.OpLt, Threshold: "10"}, r)
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("AGAB_ROOT", "")
	path := filepath.Join(t.TempDir(), "nested", "agab.yaml")
	cfg := Default()
	cfg.Numbering.Command = []string{"python3", "number.py"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Numbering.Command, loaded.Numbering.Command)
	assert.Equal(t, cfg.Filter.AffinityRules, loaded.Filter.AffinityRules)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AGAB_ROOT", "/srv/agab")
	t.Setenv("AGAB_LOG_LEVEL", "debug")
	t.Setenv("AGAB_NUMBERING_WORKERS", "7")

	cfg, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/agab"}, cfg.Layout.Roots)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Workers())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Layout.Roots = nil
	cfg.Numbering.BatchSize = 0
	cfg.Logging.Level = "loud"
	cfg.Filter.AffinityRules = append(cfg.Filter.AffinityRules, filter.Rule{Type: "kd", Op: filter.OpLt, Threshold: "1"})

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"layout.roots", "batch_size", "logging.level", "duplicate type"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLayoutBindFallsBack(t *testing.T) {
	base := t.TempDir()
	project := filepath.Join(base, "project")
	sub := filepath.Join(project, "mmseq")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "data"), 0o755))
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "data", "agab.parquet"), nil, 0o644))

	l := DefaultLayout()
	l.Roots = []string{sub, project}
	p, err := l.Bind(l.NumberedTable)
	require.NoError(t, err)
	assert.Equal(t, project, p.Root)
	assert.Equal(t, filepath.Join(project, "mmseq", "antigen_mapping.json"), p.MappingFile())
	assert.Equal(t, filepath.Join(project, "data", "agab_mmseq.parquet"), p.ClusteredTable())

	l.Roots = []string{sub}
	_, err = l.Bind(l.NumberedTable)
	var nf *InputNotFoundError
	assert.ErrorAs(t, err, &nf)
}

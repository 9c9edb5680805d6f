// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)

	log.With("stage", "filter").Info("rows after step", "step", "eligible", "rows", 12)
	log.Debug("hidden")
	log.Sync()

	out := buf.String()
	assert.Contains(t, out, "rows after step")
	assert.Contains(t, out, `"stage": "filter"`)
	assert.Contains(t, out, `"rows": 12`)
	assert.NotContains(t, out, "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	Nop().Info("nothing", "k", "v")
}

// internal/numbering/exec_test.go
package numbering

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecNumberer(t *testing.T) {
	requireShell(t)
	// Echo each FASTA header back as a heavy-chain call.
	script := `while read -r line; do
case "$line" in
">"*) printf '%s\tH\tIGHV1-2\tIGHJ6\n' "${line#>}" ;;
esac
done`
	n := ExecNumberer{Command: []string{"sh", "-c", script}}
	got, err := n.Number(context.Background(), recs("QVQL", "EVQL"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.Equal(t, Assignment{ChainType: "H", VGene: "IGHV1-2", JGene: "IGHJ6"}, a)
	}
}

func TestExecNumbererFailureCarriesStderr(t *testing.T) {
	requireShell(t)
	n := ExecNumberer{Command: []string{"sh", "-c", "cat >/dev/null; echo 'hmmscan failed' >&2; exit 3"}}
	_, err := n.Number(context.Background(), recs("QVQL"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hmmscan failed")
}

func TestExecNumbererUnconfigured(t *testing.T) {
	_, err := ExecNumberer{}.Number(context.Background(), recs("QVQL"))
	assert.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments(strings.NewReader("# header\nabc\tK\tIGKV1\nxyz\tH\n\n"))
	require.NoError(t, err)
	assert.Equal(t, Assignment{ChainType: "K", VGene: "IGKV1"}, got["abc"])
	assert.Equal(t, Assignment{ChainType: "H"}, got["xyz"])

	_, err = ParseAssignments(strings.NewReader("only-id\n"))
	assert.Error(t, err)
}

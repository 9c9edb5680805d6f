// internal/numbering/exec.go
package numbering

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"agab/internal/fasta"
)

// ExecNumberer runs an external command once per batch. The batch is
// written to the command's stdin as FASTA; the command prints one
// tab-separated line per numbered sequence:
//
//	id  chain_type  v_gene  j_gene
//
// Trailing gene columns may be omitted. Lines starting with '#' are
// ignored. A non-zero exit fails the batch with the command's stderr.
type ExecNumberer struct {
	Command []string
}

func (e ExecNumberer) Number(ctx context.Context, batch []fasta.Record) (map[string]Assignment, error) {
	if len(e.Command) == 0 {
		return nil, errors.New("numbering command not configured")
	}
	var stdin, stdout, stderr bytes.Buffer
	if err := fasta.Write(&stdin, batch); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", e.Command[0], err)
		}
		return nil, fmt.Errorf("%s: %w: %s", e.Command[0], err, msg)
	}
	return ParseAssignments(&stdout)
}

// ParseAssignments reads the numbering command's TSV output.
func ParseAssignments(r io.Reader) (map[string]Assignment, error) {
	out := map[string]Assignment{}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 2 || len(f) > 4 {
			return nil, fmt.Errorf("numbering output line %d: bad field count %d", ln, len(f))
		}
		for len(f) < 4 {
			f = append(f, "")
		}
		out[f[0]] = Assignment{ChainType: f[1], VGene: f[2], JGene: f[3]}
	}
	return out, sc.Err()
}

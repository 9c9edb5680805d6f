// internal/cluster/pairs.go
package cluster

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Pair is one membership edge from the clustering tool:
// representative identifier, member identifier.
type Pair struct {
	Representative string
	Member         string
}

// ResultsMissingError means the clustering tool has not produced its
// output yet. Callers treat it as a recoverable, user-facing condition.
type ResultsMissingError struct {
	Path string
}

func (e *ResultsMissingError) Error() string {
	return fmt.Sprintf("cluster results not found at %s", e.Path)
}

// ReadPairs reads a headerless two-column TSV. Blank lines are skipped.
func ReadPairs(path string) ([]Pair, error) {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ResultsMissingError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var list []Pair
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count (want 2, got %d)", path, ln, len(f))
		}
		list = append(list, Pair{
			Representative: strings.TrimSpace(f[0]),
			Member:         strings.TrimSpace(f[1]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

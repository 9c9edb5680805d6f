// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. Seq is kept byte-for-byte as read; no case or
// whitespace normalisation beyond joining wrapped lines.
type Record struct {
	ID  string
	Seq string
}

// Read parses every record from r. The ID is the first whitespace-delimited
// token of the header line.
func Read(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var (
		out []Record
		cur *Record
		seq strings.Builder
		ln  int
	)
	flush := func() {
		if cur != nil {
			cur.Seq = seq.String()
			out = append(out, *cur)
			seq.Reset()
		}
	}
	for {
		line, err := br.ReadString('\n')
		eof := err == io.EOF
		if err != nil && !eof {
			return nil, err
		}
		if line != "" {
			ln++
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
		case line[0] == '>':
			flush()
			f := strings.Fields(line[1:])
			if len(f) == 0 {
				return nil, fmt.Errorf("fasta: line %d: empty header", ln)
			}
			cur = &Record{ID: f[0]}
		default:
			if cur == nil {
				return nil, fmt.Errorf("fasta: line %d: sequence before first header", ln)
			}
			seq.WriteString(line)
		}
		if eof {
			break
		}
	}
	flush()
	return out, nil
}

// ReadFile reads every record of the FASTA file at path.
func ReadFile(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	recs, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

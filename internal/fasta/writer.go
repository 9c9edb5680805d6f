// internal/fasta/writer.go
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write emits one two-line record per entry: ">id" then the sequence.
func Write(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", r.ID, r.Seq); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes recs to path, replacing any existing file.
func WriteFile(path string, recs []Record) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := Write(bw, recs); err != nil {
		fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

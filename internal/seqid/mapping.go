// internal/seqid/mapping.go
package seqid

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Mapping is identifier → sequence.
type Mapping map[string]string

// Lookup resolves an identifier.
func (m Mapping) Lookup(id string) (string, bool) {
	s, ok := m[id]
	return s, ok
}

// Save writes m as indented JSON. encoding/json sorts map keys, so the
// file is byte-identical across runs over the same sequences.
func (m Mapping) Save(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// LoadMapping reads a mapping written by Save.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := Mapping{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

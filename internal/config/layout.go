// internal/config/layout.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LayoutConfig names the files each stage reads and writes, relative to a
// project root. Stages try each root in order and use the first one where
// their input exists.
type LayoutConfig struct {
	Roots []string `yaml:"roots"`

	PartitionsDir  string `yaml:"partitions_dir"`
	FilteredTable  string `yaml:"filtered_table"`
	NumberedTable  string `yaml:"numbered_table"`
	ClusteredTable string `yaml:"clustered_table"`

	WorkDir     string `yaml:"work_dir"`
	FastaFile   string `yaml:"fasta_file"`
	MappingFile string `yaml:"mapping_file"`
	ClusterFile string `yaml:"cluster_file"`
}

// DefaultLayout is the project layout the stages were written against:
// run from the project root, or from a direct subdirectory of it.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Roots:          []string{".", ".."},
		PartitionsDir:  "data/asd",
		FilteredTable:  "data/agab_filtered.parquet",
		NumberedTable:  "data/agab.parquet",
		ClusteredTable: "data/agab_mmseq.parquet",
		WorkDir:        "mmseq",
		FastaFile:      "antigens.fasta",
		MappingFile:    "antigen_mapping.json",
		ClusterFile:    "cluster_results_cluster.tsv",
	}
}

// InputNotFoundError means a stage input exists under none of the roots.
type InputNotFoundError struct {
	Rel   string
	Roots []string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s (looked under %s)", e.Rel, strings.Join(e.Roots, ", "))
}

// Root returns the first root under which rel exists.
func (l LayoutConfig) Root(rel string) (string, error) {
	for _, r := range l.Roots {
		if _, err := os.Stat(filepath.Join(r, rel)); err == nil {
			return r, nil
		}
	}
	return "", &InputNotFoundError{Rel: rel, Roots: l.Roots}
}

// Paths is a layout bound to one root.
type Paths struct {
	Root string
	l    LayoutConfig
}

// Bind resolves rel against the roots and returns the layout bound to the
// matching root.
func (l LayoutConfig) Bind(rel string) (Paths, error) {
	root, err := l.Root(rel)
	if err != nil {
		return Paths{}, err
	}
	return Paths{Root: root, l: l}, nil
}

func (p Paths) join(rel string) string { return filepath.Join(p.Root, rel) }

func (p Paths) PartitionsDir() string  { return p.join(p.l.PartitionsDir) }
func (p Paths) FilteredTable() string  { return p.join(p.l.FilteredTable) }
func (p Paths) NumberedTable() string  { return p.join(p.l.NumberedTable) }
func (p Paths) ClusteredTable() string { return p.join(p.l.ClusteredTable) }
func (p Paths) WorkDir() string        { return p.join(p.l.WorkDir) }
func (p Paths) FastaFile() string      { return filepath.Join(p.WorkDir(), p.l.FastaFile) }
func (p Paths) MappingFile() string    { return filepath.Join(p.WorkDir(), p.l.MappingFile) }
func (p Paths) ClusterFile() string    { return filepath.Join(p.WorkDir(), p.l.ClusterFile) }

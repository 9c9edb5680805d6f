// internal/exportapp/app.go
package exportapp

import (
	"context"
	"io"
	"os"

	"agab/internal/clibase"
	"agab/internal/fasta"
	"agab/internal/seqid"
	"agab/internal/tableio"
)

var stage = clibase.Stage{
	Name:  "agab-export",
	Short: "Export unique antigen sequences for clustering",
	Long: `Writes each distinct antigen sequence once to a FASTA file, keyed by the MD5
of its text, plus a JSON mapping from identifier back to sequence. The
FASTA file is the input of the external clustering run.`,
	Run: run,
}

// Run executes agab-export and returns its exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, stage, argv, stdout, stderr)
}

func run(ctx context.Context, env clibase.Env) error {
	cfg, log := env.Cfg, env.Log

	paths, err := cfg.Layout.Bind(cfg.Layout.NumberedTable)
	if err != nil {
		return err
	}
	src := paths.NumberedTable()
	log.Info("reading", "path", src)
	t, err := tableio.ReadFile(src)
	if err != nil {
		return err
	}

	ex, err := seqid.ExportAntigens(t)
	if err != nil {
		return err
	}
	log.Info("unique antigen sequences", "count", len(ex.Records), "rows", t.Len())

	if err := os.MkdirAll(paths.WorkDir(), 0o755); err != nil {
		return err
	}
	fa := paths.FastaFile()
	if err := fasta.WriteFile(fa, ex.Records); err != nil {
		return err
	}
	log.Info("wrote fasta", "path", fa)

	mp := paths.MappingFile()
	if err := ex.Mapping.Save(mp); err != nil {
		return err
	}
	log.Info("wrote mapping", "path", mp, "entries", len(ex.Mapping))
	return nil
}

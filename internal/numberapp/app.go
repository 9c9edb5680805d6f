// internal/numberapp/app.go
package numberapp

import (
	"context"
	"io"

	"agab/internal/clibase"
	"agab/internal/numbering"
	"agab/internal/tableio"
)

var stage = clibase.Stage{
	Name:  "agab-number",
	Short: "Annotate heavy/light chains with germline calls from the numbering tool",
	Long: `Collects the distinct heavy and light chain sequences of the curated table,
sends them in fixed-size batches to the configured numbering command, and
writes chain type and V/J gene columns. A batch the tool fails on is
reported and its chains stay unannotated; other batches are unaffected.`,
	Run: run,
}

// Run executes agab-number and returns its exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, stage, argv, stdout, stderr)
}

func run(ctx context.Context, env clibase.Env) error {
	cfg, log := env.Cfg, env.Log

	paths, err := cfg.Layout.Bind(cfg.Layout.FilteredTable)
	if err != nil {
		return err
	}
	src := paths.FilteredTable()
	t, err := tableio.ReadFile(src)
	if err != nil {
		return err
	}
	log.Info("loaded table", "path", src, "rows", t.Len())

	chains, err := numbering.Chains(t)
	if err != nil {
		return err
	}
	batches := numbering.Batches(chains, cfg.Numbering.BatchSize)
	log.Info("numbering", "sequences", len(chains), "batches", len(batches), "workers", cfg.Workers(),
		"command", cfg.Numbering.Command)

	results, err := numbering.Run(ctx, numbering.ExecNumberer{Command: cfg.Numbering.Command}, batches, cfg.Workers())
	if err != nil {
		return err
	}
	assignments, rep := numbering.Collect(results)
	rep.Sequences = len(chains)
	for _, f := range rep.Failures {
		log.Warn("numbering batch failed", "batch", f.Batch, "size", f.Size, "error", f.Message)
	}
	if missing := rep.Sequences - rep.Assigned; missing > 0 {
		log.Warn("chains without assignment", "count", missing)
	}

	out := numbering.Annotate(t, assignments)
	dst := paths.NumberedTable()
	if err := tableio.Save(dst, out); err != nil {
		return err
	}
	log.Info("saved", "path", dst, "rows", out.Len(), "assigned", rep.Assigned,
		"failed_batches", rep.Failed)
	return nil
}

// internal/filterapp/app.go
package filterapp

import (
	"context"
	"io"

	"agab/internal/clibase"
	"agab/internal/filter"
	"agab/internal/tableio"
)

var stage = clibase.Stage{
	Name:  "agab-filter",
	Short: "Load raw partitions, filter, deduplicate, and write the curated table",
	Long: `Reads every part-*.parquet file of the raw dataset directory and applies,
in order: the eligibility filter (non-nanobody; scFv or paired heavy+light),
the optional confidence filter, the per-type affinity thresholds, and
deduplication on (heavy_sequence, light_sequence, antigen_sequence).`,
	Run: run,
}

// Run executes agab-filter and returns its exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, stage, argv, stdout, stderr)
}

func run(ctx context.Context, env clibase.Env) error {
	cfg, log := env.Cfg, env.Log

	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	paths, err := cfg.Layout.Bind(cfg.Layout.PartitionsDir)
	if err != nil {
		return err
	}

	t, files, err := tableio.LoadPartitions(paths.PartitionsDir())
	if err != nil {
		return err
	}
	log.Info("loaded partitions", "dir", paths.PartitionsDir(), "files", len(files), "rows", t.Len())
	log.Debug("columns present", "columns", t.Columns())

	steps := filter.Steps(filter.Options{Rules: rules, ConfidenceLevels: cfg.Filter.ConfidenceLevels})
	out, err := filter.Run(t, steps, func(step string, before, after int) {
		log.Info("filter step", "step", step, "rows_before", before, "rows_after", after)
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := paths.FilteredTable()
	if err := tableio.Save(dst, out); err != nil {
		return err
	}
	log.Info("saved", "path", dst, "rows", out.Len())
	return nil
}

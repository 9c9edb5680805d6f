// internal/annotateapp/app.go
package annotateapp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"agab/internal/clibase"
	"agab/internal/cluster"
	"agab/internal/record"
	"agab/internal/seqid"
	"agab/internal/tableio"
)

var stage = clibase.Stage{
	Name:  "agab-annotate",
	Short: "Add the cluster representative of each antigen to the table",
	Long: `Reads the clustering tool's representative/member TSV, resolves both
identifiers through the export mapping, and writes a copy of the table with
a cluster_representative column. Rows whose antigen was not clustered get
a null value. If the cluster results do not exist yet, nothing is written.`,
	Run: run,
}

// Run executes agab-annotate and returns its exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, stage, argv, stdout, stderr)
}

func run(ctx context.Context, env clibase.Env) error {
	cfg, log := env.Cfg, env.Log

	paths, err := cfg.Layout.Bind(cfg.Layout.NumberedTable)
	if err != nil {
		return err
	}

	pairs, err := cluster.ReadPairs(paths.ClusterFile())
	var missing *cluster.ResultsMissingError
	if errors.As(err, &missing) {
		log.Warn("cluster results missing", "path", missing.Path)
		fmt.Fprintf(env.Stdout, "Cluster results not found at %s. Run the clustering step on %s first.\n",
			missing.Path, paths.FastaFile())
		return nil
	}
	if err != nil {
		return err
	}

	ids, err := seqid.LoadMapping(paths.MappingFile())
	if err != nil {
		return err
	}
	log.Info("loaded mapping", "path", paths.MappingFile(), "entries", len(ids), "pairs", len(pairs))

	m, st := cluster.BuildMap(ids, pairs)
	if st.Unresolved > 0 {
		log.Warn("cluster pairs with unknown identifiers skipped", "count", st.Unresolved)
	}
	if st.Reassigned > 0 {
		log.Warn("members listed under more than one representative; last pair wins", "count", st.Reassigned)
	}

	src := paths.NumberedTable()
	t, err := tableio.ReadFile(src)
	if err != nil {
		return err
	}
	out, cov, err := cluster.Annotate(t, m)
	if err != nil {
		return err
	}
	if cov.Null > 0 {
		log.Warn("rows without a cluster representative", "count", cov.Null, "column", record.ColClusterRepresentative)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := paths.ClusteredTable()
	if err := tableio.Save(dst, out); err != nil {
		return err
	}
	log.Info("saved", "path", dst, "rows", cov.Rows, "clusters", cov.Clusters)
	return nil
}

// internal/clibase/stage.go
package clibase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"agab/internal/config"
	"agab/internal/logging"
	"agab/internal/version"
)

// Exit codes shared by every stage binary.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitFailure     = 3
	ExitInterrupted = 130
)

// Env is what a stage runs with.
type Env struct {
	Cfg    *config.Config
	Log    *logging.Logger
	Stdout io.Writer
	Stderr io.Writer
	RunID  string
}

// Stage describes one pipeline binary.
type Stage struct {
	Name  string
	Short string
	Long  string
	Run   func(ctx context.Context, env Env) error
}

// Common holds the flags shared by every stage. All are optional; a stage
// run with no flags uses the conventional layout.
type Common struct {
	ConfigPath string
	Root       string
	Verbose    bool
}

// usageError marks errors caused by bad flags or config.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// Command builds the cobra command for a stage.
func Command(s Stage, stdout, stderr io.Writer) *cobra.Command {
	var c Common
	cmd := &cobra.Command{
		Use:           s.Name,
		Short:         s.Short,
		Long:          s.Long,
		Version:       version.Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(c, stdout, stderr)
			if err != nil {
				return usageError{err}
			}
			defer env.Log.Sync()
			env.Log = env.Log.With("stage", s.Name, "run_id", env.RunID)
			return s.Run(cmd.Context(), env)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	f := cmd.Flags()
	f.StringVar(&c.ConfigPath, "config", "", "YAML config file (default: ./"+config.FileName+" if present)")
	f.StringVar(&c.Root, "root", "", "project root (default: try . then ..)")
	f.BoolVarP(&c.Verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

func setup(c Common, stdout, stderr io.Writer) (Env, error) {
	cfg, err := config.Discover(c.ConfigPath)
	if err != nil {
		return Env{}, err
	}
	if c.Root != "" {
		cfg.Layout.Roots = []string{c.Root}
	}
	if c.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Env{}, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logging.New(stdout, cfg.Logging.Level)
	if err != nil {
		return Env{}, err
	}
	return Env{Cfg: cfg, Log: log, Stdout: stdout, Stderr: stderr, RunID: uuid.NewString()}, nil
}

// Execute runs a stage with argv and maps the outcome to an exit code.
func Execute(ctx context.Context, s Stage, argv []string, stdout, stderr io.Writer) int {
	cmd := Command(s, stdout, stderr)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	fmt.Fprintf(stderr, "%s: error: %v\n", s.Name, err)
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}

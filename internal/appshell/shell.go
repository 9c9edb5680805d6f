// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"agab/internal/clibase"
)

// Main is the body of every stage binary. The arguments after the program
// name go to run unchanged, so a bare invocation executes the stage on the
// default layout rather than printing help. SIGINT and SIGTERM cancel the
// stage's context.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(ctx, run(ctx, os.Args[1:], os.Stdout, os.Stderr))
	stop()
	os.Exit(code)
}

// exitCode reports a canceled run as interrupted even if the stage itself
// returned success.
func exitCode(ctx context.Context, code int) int {
	if code == clibase.ExitOK && ctx.Err() != nil {
		return clibase.ExitInterrupted
	}
	return code
}

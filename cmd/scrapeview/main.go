// Command scrapeview browses scraped-document report snapshots.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/scrapeview/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set via ldflags

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(version).ExecuteContext(ctx)
}

// exitCode maps the command error to a process exit code. Cobra has already
// printed the error.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

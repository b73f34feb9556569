package main

import (
	"fmt"
	"os"

	"github.com/xolan/tock/cmd"
	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/service"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run opens the services, executes the command line and returns the exit code.
func run() int {
	cmd.SetVersionInfo(version, commit, date)

	services, err := service.NewServices()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, "Hint: Check your config file with 'tock config' or the TOCK_* environment variables")
		return 1
	}
	defer func() { _ = services.Close() }()

	cmd.SetDeps(cli.NewDeps(services))
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

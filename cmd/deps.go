package cmd

import (
	"fmt"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/timeutil"
)

// deps is the global dependencies instance used by commands.
// main sets it once services are open. Tests replace it.
var deps *cli.Deps

// SetDeps sets the global dependencies.
func SetDeps(d *cli.Deps) {
	deps = d
}

// periodArg parses an optional period argument, reporting an invalid one
// the same way handlers report errors.
func periodArg(args []string) (timeutil.Period, bool) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}
	p, err := timeutil.ParsePeriod(raw)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return "", false
	}
	return p, true
}

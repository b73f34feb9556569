package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
)

// hints maps an error class to the hint printed under it.
type hints struct {
	notFound string
	invalid  string
}

// fail prints err and a matching hint to stderr and exits with status 1.
func fail(deps *cli.Deps, err error, h hints) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)

	hint := ""
	switch {
	case errors.Is(err, entry.ErrNotFound):
		hint = h.notFound
	case errors.Is(err, entry.ErrInvalidArgument):
		hint = h.invalid
	case errors.Is(err, entry.ErrConflict):
		hint = "Another tock process changed the timer at the same time. Run 'tock status' and retry."
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

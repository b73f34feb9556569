package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/timeutil"
)

// ShowSummary prints per-project totals for a period
func ShowSummary(ctx context.Context, deps *cli.Deps, period timeutil.Period, projectID string) {
	result, err := deps.Services.Timer.Summary(ctx, period, projectID)
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Summary for %s (%s)\n", result.Period.Label(), cli.FormatDateRangeForDisplay(result.Start, result.End))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	if result.EntryCount == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No time tracked")
		return
	}

	nameWidth := 0
	for _, p := range result.Projects {
		nameWidth = max(nameWidth, len(p.ProjectName))
	}
	for _, p := range result.Projects {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-*s  %8s  (%d %s)\n",
			nameWidth, p.ProjectName,
			entry.FormatDuration(p.TotalMinutes),
			p.EntryCount, entryWord(p.EntryCount))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s across %d %s\n",
		entry.FormatDuration(result.TotalMinutes),
		result.EntryCount, entryWord(result.EntryCount))
	if result.Period != timeutil.PeriodToday {
		_, _ = fmt.Fprintf(deps.Stdout, "Tracked on %d %s\n", result.Days, dayWord(result.Days))
	}
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func entryWord(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

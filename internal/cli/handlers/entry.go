package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/filter"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/stats"
	"github.com/xolan/tock/internal/timeutil"
)

// LogFlags holds the optional flags of the log command
type LogFlags struct {
	TaskID    string
	SubtaskID string
	Notes     string
	Date      string // YYYY-MM-DD or natural language
}

// LogTime records a finished manual entry
func LogTime(ctx context.Context, deps *cli.Deps, projectID, duration string, flags LogFlags) {
	in := service.LogInput{
		ProjectID: projectID,
		TaskID:    flags.TaskID,
		SubtaskID: flags.SubtaskID,
		Duration:  duration,
		Notes:     flags.Notes,
	}

	if flags.Date != "" {
		day, err := cli.ParseDate(flags.Date, now(deps))
		if err != nil {
			fail(deps, err, hints{})
			return
		}
		in.Date = day.Format("2006-01-02")
	}

	result, err := deps.Services.Timer.Log(ctx, in)
	if err != nil {
		fail(deps, err, hints{
			notFound: "List projects with 'tock project list'",
			invalid:  "Example: tock log <projectId> 1h30m --date yesterday",
		})
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s (%s) on %s\n",
		cli.FormatTarget(result.Labels),
		entry.FormatDuration(result.Entry.Duration),
		result.Entry.StartTime.Format("2006-01-02"))
	_, _ = fmt.Fprintf(deps.Stdout, "Entry ID: %s\n", result.Entry.ID)
}

// EditEntry applies the supplied changes to an entry
func EditEntry(ctx context.Context, deps *cli.Deps, in service.UpdateInput) {
	if in.IsEmpty() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--duration, --notes, --project or --task) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  tock edit <entryId> --duration 2h")
		_, _ = fmt.Fprintln(deps.Stderr, "  tock edit <entryId> --notes 'reviewed PR'")
		deps.Exit(1)
		return
	}

	result, err := deps.Services.Timer.Update(ctx, in)
	if err != nil {
		fail(deps, err, hints{notFound: "List entries with 'tock list week' to see entry IDs"})
		return
	}

	if len(result.Changed) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No changes to entry %s\n", result.Entry.ID)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated %s of entry %s: %s (%s)\n",
		strings.Join(result.Changed, ", "),
		result.Entry.ID,
		cli.FormatTarget(result.Labels),
		entry.FormatDuration(result.Entry.Duration))
}

// DeleteEntry deletes an entry with optional confirmation
func DeleteEntry(ctx context.Context, deps *cli.Deps, entryID string, skipConfirm bool) {
	// Get the entry first to show it
	le, err := deps.Services.Timer.Get(ctx, entryID)
	if err != nil {
		fail(deps, err, hints{notFound: "List entries with 'tock list week' to see entry IDs"})
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s (%s)\n",
		le.Entry.StartTime.Format("2006-01-02 15:04"),
		cli.FormatTarget(le.Labels),
		formatEntryDuration(le.Entry))

	if !skipConfirm {
		if !promptConfirmation(deps.Stdout, deps.Stdin) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	deleted, err := deps.Services.Timer.Delete(ctx, entryID)
	if err != nil {
		fail(deps, err, hints{})
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%s)\n", cli.FormatTarget(deleted.Labels), formatEntryDuration(deleted.Entry))
}

// ListEntries lists the entries of a period
func ListEntries(ctx context.Context, deps *cli.Deps, period timeutil.Period, f *filter.Filter) {
	result, err := deps.Services.Timer.Entries(ctx, period, projectOf(f))
	if err != nil {
		fail(deps, err, hints{})
		return
	}
	printFilter(deps, f)
	printEntries(deps, "for "+result.Period, narrow(deps, result, f))
}

// ListEntriesSince lists the entries from a natural-language or YYYY-MM-DD date until today
func ListEntriesSince(ctx context.Context, deps *cli.Deps, since string, f *filter.Filter) {
	day, err := cli.ParseDate(since, now(deps))
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	result, err := deps.Services.Timer.EntriesSince(ctx, day, projectOf(f))
	if err != nil {
		fail(deps, err, hints{})
		return
	}
	printFilter(deps, f)
	printEntries(deps, result.Period, narrow(deps, result, f))
}

func printFilter(deps *cli.Deps, f *filter.Filter) {
	if !f.IsEmpty() {
		_, _ = fmt.Fprintf(deps.Stdout, "Filter: %s\n", f.Describe())
	}
}

// projectOf returns the project criterion, which the store applies itself.
func projectOf(f *filter.Filter) string {
	if f == nil {
		return ""
	}
	return f.ProjectID
}

// narrow drops entries failing the task and keyword criteria and recomputes the total.
func narrow(deps *cli.Deps, result *service.ListResult, f *filter.Filter) *service.ListResult {
	if f.IsEmpty() {
		return result
	}
	at := now(deps)
	kept := make([]service.LabeledEntry, 0, len(result.Entries))
	total := 0
	for _, le := range result.Entries {
		if !f.Matches(le.Entry) {
			continue
		}
		kept = append(kept, le)
		total += stats.LiveMinutes(le.Entry, at)
	}
	narrowed := *result
	narrowed.Entries = kept
	narrowed.Total = total
	return &narrowed
}

// printEntries lists entries under a header such as "for today" or "since Mon, Jan 8, 2024".
func printEntries(deps *cli.Deps, period string, result *service.ListResult) {
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries %s (%s):\n", period, cli.FormatDateRangeForDisplay(result.Start, result.End))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	showDate := spansMultipleDays(result.Entries)
	for _, le := range result.Entries {
		e := le.Entry
		when := cli.FormatTimeRange(e)
		if showDate {
			when = e.StartTime.Format("2006-01-02") + " " + when
		}
		_, _ = fmt.Fprintf(deps.Stdout, "[%s] %s  %s (%s)\n",
			cli.ShortID(e.ID), when, cli.FormatTarget(le.Labels), formatEntryDuration(e))
		if e.Notes != "" {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatNotes(e.Notes, "           "))
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", entry.FormatDuration(result.Total))
}

// formatEntryDuration shows a running entry as running rather than 0m.
func formatEntryDuration(e entry.Entry) string {
	if e.IsActive() {
		return "running"
	}
	return entry.FormatDuration(e.Duration)
}

func spansMultipleDays(entries []service.LabeledEntry) bool {
	if len(entries) < 2 {
		return false
	}
	first := entries[0].Entry.StartTime.Format("2006-01-02")
	for _, le := range entries[1:] {
		if le.Entry.StartTime.Format("2006-01-02") != first {
			return true
		}
	}
	return false
}

// now returns the current time in the configured timezone.
func now(deps *cli.Deps) time.Time {
	t := deps.Clock.Now()
	if loc, err := deps.Services.Config.Get().Location(); err == nil {
		return t.In(loc)
	}
	return t
}

// promptConfirmation asks the user to confirm deletion
func promptConfirmation(stdout io.Writer, stdin io.Reader) bool {
	_, _ = fmt.Fprint(stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
)

// StartTimer starts a new timer, closing any timer that is already running
func StartTimer(ctx context.Context, deps *cli.Deps, in service.StartInput) {
	result, err := deps.Services.Timer.Start(ctx, in)
	if err != nil {
		fail(deps, err, hints{notFound: "List projects with 'tock project list' and tasks with 'tock task list <projectId>'"})
		return
	}

	if prev := result.AutoStopped; prev != nil && prev.Stopped {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s (%s)\n",
			cli.FormatTarget(prev.Labels), entry.FormatDuration(prev.Entry.Duration))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s\n", cli.FormatTarget(result.Labels))
	_, _ = fmt.Fprintf(deps.Stdout, "Entry ID: %s\n", result.Entry.ID)
}

// StopTimer stops the running timer. Stopping when idle is not an error.
func StopTimer(ctx context.Context, deps *cli.Deps, notes string) {
	result, err := deps.Services.Timer.Stop(ctx, notes)
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	if !result.Stopped {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s (%s)\n",
		cli.FormatTarget(result.Labels), entry.FormatDuration(result.Entry.Duration))
}

// ShowTimerStatus shows the current timer status
func ShowTimerStatus(ctx context.Context, deps *cli.Deps) {
	status, err := deps.Services.Timer.Status(ctx)
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	if !status.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a timer with: tock start <projectId>")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Timer running:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatTarget(status.Labels))
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatTimerStartTime(status.Entry.StartTime, deps.Clock.Now().In(status.Entry.StartTime.Location())))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", entry.FormatDuration(status.ElapsedMinutes))
	if status.Entry.Notes != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  Notes:   %s\n", status.Entry.Notes)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Entry ID: %s\n", status.Entry.ID)
}

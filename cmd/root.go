package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
	"github.com/xolan/tock/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "tock",
	Short: "Track time against projects and tasks",
	Long: `tock tracks time against projects and tasks with a single running timer.

Usage:
  tock                                      List today's entries
  tock start <projectId> [--task id]        Start a timer (stops any running timer)
  tock stop [--notes text]                  Stop the running timer
  tock status                               Show the running timer
  tock log <projectId> <duration>           Log finished time (e.g., tock log p1 1h30m)
  tock list [today|week|month]              List entries
  tock summary [today|week|month]           Show totals per project
  tock edit <entryId> --duration 2h         Edit an entry
  tock delete <entryId>                     Delete an entry (with confirmation)
  tock serve                                Run the MCP tool server on stdio

Duration format: 2h, 30m, 1h30m, 2h 30m, 1.5h, 1:30 or 90 (minutes)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListEntries(cmd.Context(), deps, timeutil.PeriodToday, nil)
	},
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tock version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. Interrupts cancel the command context so
// long-running commands such as serve shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

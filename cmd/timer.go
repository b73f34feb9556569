package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
	"github.com/xolan/tock/internal/service"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <projectId>",
	Short: "Start a timer for a project",
	Long: `Start a timer for a project and optionally one of its tasks.

Only one timer runs at a time. Starting a new timer stops the running one
and records its time first.

Examples:
  tock start p1
  tock start p1 --task t1 --notes "hero section"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, _ := cmd.Flags().GetString("task")
		subtask, _ := cmd.Flags().GetString("subtask")
		notes, _ := cmd.Flags().GetString("notes")
		handlers.StartTimer(cmd.Context(), deps, service.StartInput{
			ProjectID: args[0],
			TaskID:    task,
			SubtaskID: subtask,
			Notes:     notes,
		})
	},
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer",
	Long: `Stop the running timer and record its time.

Notes given with --notes are appended to the entry's existing notes.
Stopping when no timer is running does nothing.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		notes, _ := cmd.Flags().GetString("notes")
		handlers.StopTimer(cmd.Context(), deps, notes)
	},
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowTimerStatus(cmd.Context(), deps)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)

	startCmd.Flags().StringP("task", "t", "", "task ID within the project")
	startCmd.Flags().String("subtask", "", "subtask ID")
	startCmd.Flags().StringP("notes", "n", "", "notes for the entry")

	stopCmd.Flags().StringP("notes", "n", "", "notes to append to the entry")
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
	"github.com/xolan/tock/internal/filter"
	"github.com/xolan/tock/internal/service"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <projectId> <duration>",
	Short: "Log finished time",
	Long: `Log time that was not tracked with a timer.

Without --date the entry ends now. With --date it starts at the configured
manual_entry_hour of that day. The running timer is not affected.

Examples:
  tock log p1 1h30m
  tock log p1 45 --task t1 --notes "standup"
  tock log p2 2h --date yesterday
  tock log p2 2h --date 2024-01-10`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var flags handlers.LogFlags
		flags.TaskID, _ = cmd.Flags().GetString("task")
		flags.SubtaskID, _ = cmd.Flags().GetString("subtask")
		flags.Notes, _ = cmd.Flags().GetString("notes")
		flags.Date, _ = cmd.Flags().GetString("date")
		handlers.LogTime(cmd.Context(), deps, args[0], args[1], flags)
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <entryId>",
	Short: "Edit an existing entry",
	Long: `Edit the duration, notes, project or task of an entry.

A new duration moves the end time to start + duration, which also stops a
running entry. An empty --task clears the task.
At least one flag is required.

Examples:
  tock edit <entryId> --duration 2h
  tock edit <entryId> --notes "reviewed PR" --project p2
  tock edit <entryId> --task ""`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := service.UpdateInput{EntryID: args[0]}
		in.Duration = changedString(cmd, "duration")
		in.Notes = changedString(cmd, "notes")
		in.ProjectID = changedString(cmd, "project")
		in.TaskID = changedString(cmd, "task")
		handlers.EditEntry(cmd.Context(), deps, in)
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <entryId>",
	Short: "Delete an entry",
	Long: `Delete an entry permanently.

Shows the entry and asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteEntry(cmd.Context(), deps, args[0], yes)
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [today|week|month]",
	Short: "List entries",
	Long: `List the entries of a period, newest first.

Week and month run from Monday or the 1st through today. --since lists
from a date through today and accepts YYYY-MM-DD or words like "last monday".
--task and --search narrow the listing further; the search ignores case.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"today", "week", "month"},
	Run: func(cmd *cobra.Command, args []string) {
		project, _ := cmd.Flags().GetString("project")
		task, _ := cmd.Flags().GetString("task")
		search, _ := cmd.Flags().GetString("search")
		f := filter.NewFilter(project, task, search)
		if since, _ := cmd.Flags().GetString("since"); since != "" {
			handlers.ListEntriesSince(cmd.Context(), deps, since, f)
			return
		}
		period, ok := periodArg(args)
		if !ok {
			return
		}
		handlers.ListEntries(cmd.Context(), deps, period, f)
	},
}

// changedString returns a pointer to the flag's value only when it was set,
// so that an explicitly empty value can be told apart from an absent one.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)

	logCmd.Flags().StringP("task", "t", "", "task ID within the project")
	logCmd.Flags().String("subtask", "", "subtask ID")
	logCmd.Flags().StringP("notes", "n", "", "notes for the entry")
	logCmd.Flags().StringP("date", "d", "", "day of the entry (YYYY-MM-DD or e.g. 'yesterday')")

	editCmd.Flags().String("duration", "", "new duration (e.g., 2h, 30m)")
	editCmd.Flags().String("notes", "", "new notes")
	editCmd.Flags().String("project", "", "new project ID")
	editCmd.Flags().String("task", "", "new task ID (empty clears the task)")

	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	listCmd.Flags().StringP("project", "p", "", "only entries of this project")
	listCmd.Flags().String("since", "", "list from this date through today")
	listCmd.Flags().StringP("task", "t", "", "only entries of this task")
	listCmd.Flags().StringP("search", "s", "", "only entries whose notes contain this text")
}

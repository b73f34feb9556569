package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary [today|week|month]",
	Short: "Show time totals per project",
	Long: `Show total tracked time per project for a period (default today).

A running timer counts its elapsed time so far.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"today", "week", "month"},
	Run: func(cmd *cobra.Command, args []string) {
		period, ok := periodArg(args)
		if !ok {
			return
		}
		project, _ := cmd.Flags().GetString("project")
		handlers.ShowSummary(cmd.Context(), deps, period, project)
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <json|csv|ics> [today|week|month]",
	Short: "Export entries",
	Long: `Export the entries of a period (default today) to stdout.

Formats:
  json   array of entry records
  csv    one row per entry with a header
  ics    iCalendar with one event per finished entry

Examples:
  tock export csv week > week.csv
  tock export ics month --project p1 > p1.ics`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{handlers.FormatJSON, handlers.FormatCSV, handlers.FormatICS},
	Run: func(cmd *cobra.Command, args []string) {
		period, ok := periodArg(args[1:])
		if !ok {
			return
		}
		project, _ := cmd.Flags().GetString("project")
		handlers.ExportEntries(cmd.Context(), deps, args[0], period, project)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)

	summaryCmd.Flags().StringP("project", "p", "", "only this project")
	exportCmd.Flags().StringP("project", "p", "", "only entries of this project")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/toolserver"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdio",
	Long: `Run tock as a Model Context Protocol tool server over stdin/stdout.

Exposes start_timer, stop_timer, get_timer_status, log_time,
get_time_summary, update_time_entry, delete_time_entry, list_projects and
list_tasks. Logs go to stderr so they never corrupt the protocol stream.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := toolserver.New(deps.Services, cmd.Root().Version, deps.Services.Logger)
		if err := toolserver.Serve(cmd.Context(), s, deps.Stdin, deps.Stdout); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: tool server stopped: %v\n", err)
			deps.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

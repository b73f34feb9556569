package cmd

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/timer"
	"github.com/xolan/tock/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive session timer",
	Long: `Launch the interactive Terminal User Interface for tock.

The session view runs a local stopwatch that can be paused and resumed.
Stopping it records the elapsed whole minutes as a finished entry; sessions
under a minute are dropped. The session survives restarts of the TUI.

Keyboard shortcuts:
  - Tab/Shift+Tab or 1-2: Switch between Session and Summary
  - s: Start, p: Pause/resume, x: Stop and record
  - t/w/m: Summary period
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI restores the saved session and runs the TUI application
func runTUI() {
	timerPath, err := timer.GetTimerPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine timer location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	session, err := timer.LoadSession(clockwork.NewRealClock(), timer.FileStore{Path: timerPath}, deps.Services.Logger)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore timer session: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Delete %s to start fresh\n", timerPath)
		deps.Exit(1)
		return
	}

	if err := tui.Run(deps.Services, session); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

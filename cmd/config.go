package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or create the configuration file",
	Long: `Display the effective configuration for tock.

Shows the configuration file location, whether it exists, and all current
settings. Settings come from the config file over built-in defaults, and
TOCK_STORAGE_BACKEND, TOCK_STORAGE_PATH, TOCK_LOG_LEVEL and TOCK_TIMEZONE
override both.

Examples:
  tock config            Show all current settings
  tock config --init     Write a config file with the defaults

Configuration file location:
  ~/.config/tock/config.toml          Linux
  %APPDATA%\tock\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			handlers.InitConfig(deps)
			return
		}
		handlers.ShowConfig(deps)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "create a config file with default settings")
}

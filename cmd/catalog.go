package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tock/internal/cli/handlers"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddProject(cmd.Context(), deps, strings.Join(args, " "))
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListProjects(cmd.Context(), deps)
	},
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <projectId> <name>",
	Short: "Create a task in a project",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddTask(cmd.Context(), deps, args[0], strings.Join(args[1:], " "))
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list [projectId]",
	Short: "List tasks, optionally of one project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectID := ""
		if len(args) == 1 {
			projectID = args[0]
		}
		handlers.ListTasks(cmd.Context(), deps, projectID)
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd, projectListCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
}

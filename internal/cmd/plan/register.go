// Package plan wires the planning wizard commands: generate a plan through
// the configured webhook, inspect it, and apply it to a project.
package plan

import "github.com/spf13/cobra"

// Register adds all planning-related commands to the given parent command.
// This is the main entry point for integrating the plan subpackage with the
// root command.
func Register(parent *cobra.Command) {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and apply AI project plans",
	}

	planCmd.AddCommand(generateCmd)
	planCmd.AddCommand(showCmd)
	planCmd.AddCommand(applyCmd)
	parent.AddCommand(planCmd)
}

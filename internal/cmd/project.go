package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Browse projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects visible to the logged-in user",
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show one project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectShow,
}

var projectTeamCmd = &cobra.Command{
	Use:   "team [project-id]",
	Short: "Show a project's team roster",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectTeam,
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectTeamCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Description)
	}
	return w.Flush()
}

// projectArg resolves the target project from the positional arg, then the
// --project flag / config default.
func projectArg(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return cmdutil.ResolveProject(cfg, "")
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := projectArg(cfg, args)
	if err != nil {
		return err
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	project, err := client.GetProject(cmd.Context(), projectID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", project.ID)
	fmt.Fprintf(out, "Name:        %s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", project.Description)
	}
	return nil
}

func runProjectTeam(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := projectArg(cfg, args)
	if err != nil {
		return err
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	team, err := client.GetTeam(cmd.Context(), projectID)
	if err != nil {
		return err
	}
	if len(team) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No team members.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, m := range team {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.Email)
	}
	return w.Flush()
}

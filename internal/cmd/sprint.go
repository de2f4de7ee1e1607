package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/api"
	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Browse and manage sprints",
}

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's sprints",
	RunE:  runSprintList,
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sprint",
	RunE:  runSprintCreate,
}

var sprintAssignCmd = &cobra.Command{
	Use:   "assign <sprint-id> <story-id> [story-id...]",
	Short: "Assign backlog stories to a sprint",
	Long: `Assign one or more stories to a sprint.

The server owns the assignment semantics; depending on its version this may
replace the sprint's story set rather than extend it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSprintAssign,
}

var (
	sprintName  string
	sprintStart string
	sprintEnd   string
)

func init() {
	sprintCreateCmd.Flags().StringVar(&sprintName, "name", "", "sprint name (required)")
	sprintCreateCmd.Flags().StringVar(&sprintStart, "start", "", "start date (YYYY-MM-DD)")
	sprintCreateCmd.Flags().StringVar(&sprintEnd, "end", "", "end date (YYYY-MM-DD)")
	_ = sprintCreateCmd.MarkFlagRequired("name")

	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintCreateCmd)
	sprintCmd.AddCommand(sprintAssignCmd)
	rootCmd.AddCommand(sprintCmd)
}

func runSprintList(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := cmdutil.ResolveProject(cfg, "")
	if err != nil {
		return err
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	sprints, err := client.ListSprints(cmd.Context(), projectID)
	if err != nil {
		return err
	}
	if len(sprints) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sprints.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tSTORIES\tSTATUS")
	for _, s := range sprints {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Name, s.StartDate, s.EndDate, len(s.Stories), s.Status)
	}
	return w.Flush()
}

func runSprintCreate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := cmdutil.ResolveProject(cfg, "")
	if err != nil {
		return err
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	sprint, err := client.CreateSprint(cmd.Context(), projectID, api.CreateSprintRequest{
		Name:      sprintName,
		StartDate: sprintStart,
		EndDate:   sprintEnd,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created sprint %s (%s).\n", sprint.ID, sprint.Name)
	return nil
}

func runSprintAssign(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	sprintID, storyIDs := args[0], args[1:]
	sprint, err := client.AssignStories(cmd.Context(), sprintID, storyIDs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sprint %s now holds %d stories.\n", sprint.ID, len(sprint.Stories))
	return nil
}

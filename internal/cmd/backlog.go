package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/api"
	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/plan"
)

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Browse and extend the product backlog",
}

var backlogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's backlog stories",
	RunE:  runBacklogList,
}

var backlogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a backlog story",
	Long: `Create a single user story in the product backlog.

Examples:
  boardctl backlog add --title "Login" --persona "registered user" \
    --objective "sign in with email" --benefit "access my board" \
    --estimate 3 --criterion "shows an error on bad password"`,
	RunE: runBacklogAdd,
}

var (
	storyTitle     string
	storyPersona   string
	storyObjective string
	storyBenefit   string
	storyEstimate  int
	storyCriteria  []string
)

func init() {
	backlogAddCmd.Flags().StringVar(&storyTitle, "title", "", "story title (required)")
	backlogAddCmd.Flags().StringVar(&storyPersona, "persona", "", "who the story is for")
	backlogAddCmd.Flags().StringVar(&storyObjective, "objective", "", "what the persona wants to do")
	backlogAddCmd.Flags().StringVar(&storyBenefit, "benefit", "", "why the persona wants it")
	backlogAddCmd.Flags().IntVar(&storyEstimate, "estimate", 0, "story points")
	backlogAddCmd.Flags().StringArrayVar(&storyCriteria, "criterion", nil, "acceptance criterion (repeatable)")
	_ = backlogAddCmd.MarkFlagRequired("title")

	backlogCmd.AddCommand(backlogListCmd)
	backlogCmd.AddCommand(backlogAddCmd)
	rootCmd.AddCommand(backlogCmd)
}

func runBacklogList(cmd *cobra.Command, args []string) error {
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

	stories, err := client.ListStories(cmd.Context(), projectID)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Backlog is empty.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tESTIMATE\tSPRINT")
	for _, s := range stories {
		sprint := s.SprintID
		if sprint == "" {
			sprint = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Title, s.Estimate, sprint)
	}
	return w.Flush()
}

func runBacklogAdd(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := cmdutil.ResolveProject(cfg, "")
	if err != nil {
		return err
	}
	if storyEstimate < 0 {
		return fmt.Errorf("%w: estimate must not be negative", apierr.ErrInvalidInput)
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	story, err := client.CreateStory(cmd.Context(), projectID, api.CreateStoryRequest{
		Title:              storyTitle,
		Persona:            storyPersona,
		Objective:          storyObjective,
		Benefit:            storyBenefit,
		Estimate:           storyEstimate,
		AcceptanceCriteria: plan.JoinCriteria(storyCriteria),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created story %s (%s).\n", story.ID, story.Title)
	return nil
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/api"
	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/roster"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Browse and create tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's tasks",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Long: `Create a task, optionally attached to a sprint and story.

--assignee takes a team member's name and is matched against the project
roster ignoring case and surrounding whitespace; an unknown name leaves the
task unassigned.`,
	RunE: runTaskAdd,
}

var (
	taskName        string
	taskDescription string
	taskSprintID    string
	taskStoryID     string
	taskAssignee    string
)

func init() {
	taskAddCmd.Flags().StringVar(&taskName, "name", "", "task name (required, at most 80 characters)")
	taskAddCmd.Flags().StringVar(&taskDescription, "description", "", "longer description")
	taskAddCmd.Flags().StringVar(&taskSprintID, "sprint", "", "sprint ID to attach to")
	taskAddCmd.Flags().StringVar(&taskStoryID, "story", "", "story ID to attach to")
	taskAddCmd.Flags().StringVar(&taskAssignee, "assignee", "", "team member name")
	_ = taskAddCmd.MarkFlagRequired("name")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
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

	tasks, err := client.ListTasks(cmd.Context(), projectID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tASSIGNEE\tSPRINT\tSTATUS")
	for _, t := range tasks {
		assignee := "-"
		if t.AssignedTo != nil {
			assignee = *t.AssignedTo
		}
		sprint := t.SprintID
		if sprint == "" {
			sprint = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, assignee, sprint, t.Status)
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := cmdutil.ResolveProject(cfg, "")
	if err != nil {
		return err
	}
	if limit := cfg.Apply.TaskNameLimit; len([]rune(taskName)) > limit {
		return fmt.Errorf("%w: task name exceeds %d characters", apierr.ErrInvalidInput, limit)
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	var assignee *string
	if taskAssignee != "" {
		team, err := client.GetTeam(cmd.Context(), projectID)
		if err != nil {
			return err
		}
		if member, ok := roster.New(team).Match(taskAssignee); ok {
			assignee = &member.ID
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "No team member matches %q; creating unassigned.\n", taskAssignee)
		}
	}

	task, err := client.CreateTask(cmd.Context(), api.CreateTaskRequest{
		Name:        taskName,
		Description: taskDescription,
		AssignedTo:  assignee,
		SprintID:    taskSprintID,
		StoryID:     taskStoryID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s.\n", task.ID)
	return nil
}

package plan

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/apply"
	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/plan"
	"github.com/mfigueredo/boardctl/internal/roster"
	"github.com/mfigueredo/boardctl/internal/tui"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the generated plan to a project",
	Long: `Materialize the plan into persisted stories, sprints and tasks.

Stories are created from the plan's backlog first; then sprints are resolved
or created, stories are assigned to them by title, and tasks are created with
assignees matched against the project roster. The run is sequential and stops
at the first failure; already-created items are left in place.`,
	RunE: runApply,
}

var (
	applyFile string
	applyYes  bool
	applyNoUI bool
)

func init() {
	applyCmd.Flags().StringVar(&applyFile, "file", "", "plan file (default from config)")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "apply without confirmation")
	applyCmd.Flags().BoolVar(&applyNoUI, "no-tui", false, "plain line output instead of the progress view")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	projectID, err := cmdutil.ResolveProject(cfg, "")
	if err != nil {
		return err
	}

	file := applyFile
	if file == "" {
		file = cfg.Apply.PlanFile
	}

	payload, err := plan.Load(file)
	if err != nil {
		return err
	}

	warnings, err := plan.Validate(payload)
	if err != nil {
		return fmt.Errorf("refusing to apply: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.OutOrStdout(), "warning: "+w)
	}

	backlog, _ := payload.Backlog()
	devPlan, _ := payload.DevPlan()

	if !applyYes && !cfg.Apply.SkipConfirm {
		fmt.Fprintf(cmd.OutOrStdout(),
			"About to create %d stories and plan %d items into sprints on project %s.\n",
			len(backlog), len(devPlan), projectID)
		fmt.Fprint(cmd.OutOrStdout(), "Continue? [y/N] ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, true)
	if err != nil {
		return err
	}

	team, err := client.GetTeam(cmd.Context(), projectID)
	if err != nil {
		return fmt.Errorf("loading team roster: %w", err)
	}

	run := func(ctx context.Context, onProgress apply.ProgressFunc) (*apply.Result, error) {
		runner := apply.NewRunner(client, roster.New(team), logger, apply.Options{
			TaskNameLimit: cfg.Apply.TaskNameLimit,
			OnProgress:    onProgress,
		})
		return runner.Run(ctx, projectID, payload)
	}

	var result *apply.Result
	if cfg.TUI.Enabled && !applyNoUI {
		result, err = tui.RunApply(run)
	} else {
		result, err = run(cmd.Context(), func(p apply.Progress) {
			if p.Message != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "[%3.0f%%] %s: %s\n", p.Percent, p.Stage, p.Message)
			}
		})
	}

	if result != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nCreated %d stories, %d sprints, %d tasks (%d assignments).\n",
			result.StoriesCreated, result.SprintsCreated, result.TasksCreated, result.StoriesAssigned)
		for _, title := range result.Skipped {
			fmt.Fprintf(out, "Skipped %q: no created story matches this title.\n", title)
		}
	}
	if err != nil {
		return fmt.Errorf("apply did not complete: %w", err)
	}
	return nil
}

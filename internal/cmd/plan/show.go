package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/plan"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the generated plan",
	RunE:  runShow,
}

var showFile string

func init() {
	showCmd.Flags().StringVar(&showFile, "file", "", "plan file (default from config)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	file := showFile
	if file == "" {
		file = cfg.Apply.PlanFile
	}

	payload, err := plan.Load(file)
	if err != nil {
		return err
	}

	backlog, err := payload.Backlog()
	if err != nil {
		return err
	}
	devPlan, err := payload.DevPlan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Plan: %s\n\n", file)

	fmt.Fprintf(out, "Backlog (%d stories):\n", len(backlog))
	for i, item := range backlog {
		fmt.Fprintf(out, "  %d. %s", i+1, item.Title)
		if item.Points > 0 {
			fmt.Fprintf(out, " (%d pts)", item.Points)
		}
		fmt.Fprintln(out)
		if item.Persona != "" || item.Objective != "" {
			fmt.Fprintf(out, "     As %s, I want %s, so that %s\n",
				item.Persona, item.Objective, item.Benefit)
		}
		for _, c := range item.AcceptanceCriteria {
			fmt.Fprintf(out, "     - %s\n", c)
		}
	}

	fmt.Fprintf(out, "\nDeveloper plan (%d items):\n", len(devPlan))
	for _, item := range devPlan {
		fmt.Fprintf(out, "  %s -> %s", item.Title, plan.SprintName(item.Sprint.Index))
		if item.Sprint.StartDate != "" {
			fmt.Fprintf(out, " (%s .. %s)", item.Sprint.StartDate, item.Sprint.EndDate)
		}
		fmt.Fprintln(out)
		for _, task := range item.Tasks {
			line := fmt.Sprintf("     - %s", task.Description)
			if strings.TrimSpace(task.Responsible) != "" {
				line += " [" + task.Responsible + "]"
			}
			fmt.Fprintln(out, line)
		}
	}

	if warnings, err := plan.Validate(payload); err != nil {
		fmt.Fprintf(out, "\nPlan is invalid: %v\n", err)
	} else {
		for _, w := range warnings {
			fmt.Fprintln(out, "\nwarning: "+w)
		}
	}

	return nil
}

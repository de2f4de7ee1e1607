package plan

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/plan"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a project plan through the planning webhook",
	Long: `Send the project description to the configured planning webhook and
write the returned plan to a file for review.

The plan is not applied; inspect it with 'plan show' and persist it with
'plan apply'.

Examples:
  boardctl plan generate --name "Shop" --description "online shop" \
    --team "Jane Doe" --team "Luis Pérez" \
    --requirements-file requirements.md`,
	RunE: runGenerate,
}

var (
	genName             string
	genDescription      string
	genTeam             []string
	genRequirements     string
	genRequirementsFile string
	genOut              string
)

func init() {
	generateCmd.Flags().StringVar(&genName, "name", "", "project name (required)")
	generateCmd.Flags().StringVar(&genDescription, "description", "", "short project description")
	generateCmd.Flags().StringArrayVar(&genTeam, "team", nil, "team member name (repeatable)")
	generateCmd.Flags().StringVar(&genRequirements, "requirements", "", "requirements text")
	generateCmd.Flags().StringVar(&genRequirementsFile, "requirements-file", "", "file with requirements text")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output plan file (default from config)")
	_ = generateCmd.MarkFlagRequired("name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if cfg.Generator.WebhookURL == "" {
		return fmt.Errorf("%w: generator.webhook_url is not configured", apierr.ErrInvalidInput)
	}

	requirements := genRequirements
	if genRequirementsFile != "" {
		data, err := os.ReadFile(genRequirementsFile)
		if err != nil {
			return fmt.Errorf("reading requirements file: %w", err)
		}
		requirements = string(data)
	}

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	generator, err := plan.NewGenerator(cfg.Generator.WebhookURL, cfg.Generator.Timeout(), logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Generating plan; this can take a few minutes...")
	payload, err := generator.Generate(cmd.Context(), plan.GenerateRequest{
		ProjectName:  genName,
		Description:  genDescription,
		Team:         genTeam,
		Requirements: requirements,
	})
	if err != nil {
		return err
	}

	warnings, err := plan.Validate(payload)
	if err != nil {
		return fmt.Errorf("generated plan failed validation: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.OutOrStdout(), "warning: "+w)
	}

	out := genOut
	if out == "" {
		out = cfg.Apply.PlanFile
	}
	if err := plan.Save(payload, out); err != nil {
		return err
	}

	backlog, _ := payload.Backlog()
	devPlan, _ := payload.DevPlan()
	fmt.Fprintf(cmd.OutOrStdout(), "Plan written to %s: %d stories, %d developer items.\n",
		out, len(backlog), len(devPlan))
	fmt.Fprintf(cmd.OutOrStdout(), "Review it with `boardctl plan show%s`.\n", showHint(out, cfg))
	return nil
}

func showHint(out string, cfg *config.Config) string {
	if out == cfg.Apply.PlanFile {
		return ""
	}
	return " --file " + strings.TrimSpace(out)
}

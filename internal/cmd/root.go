package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	plancmd "github.com/mfigueredo/boardctl/internal/cmd/plan"
	"github.com/mfigueredo/boardctl/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "Terminal client for a Scrum board",
	Long: `Boardctl is a terminal client for a Scrum board REST API. It browses
projects, the product backlog, sprints, tasks and the team roster, and
carries a planning wizard that generates a project plan through an
external webhook and applies it: stories are created from the plan's
backlog, sprints are resolved or created, stories are assigned by title
and tasks are created with best-effort assignees from the roster.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/boardctl/config.yaml)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "project ID to operate on (default from config)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api.project", rootCmd.PersistentFlags().Lookup("project"))

	plancmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/boardctl")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BOARDCTL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., BOARDCTL_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

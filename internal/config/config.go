package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete boardctl configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Apply     ApplyConfig     `mapstructure:"apply"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig controls how the client reaches the Scrum board API
type APIConfig struct {
	// BaseURL is the root of the board API, e.g. "https://board.example.com/api"
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds is the per-request HTTP timeout (default: 30)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// Project is the default project ID used when --project is not given
	Project string `mapstructure:"project"`
}

// GeneratorConfig controls the AI plan-generation webhook
type GeneratorConfig struct {
	// WebhookURL is the endpoint that accepts a planning request and returns
	// a plan payload. Empty disables `plan generate`.
	WebhookURL string `mapstructure:"webhook_url"`
	// TimeoutSeconds is the webhook request timeout. Plan generation is slow;
	// the default is deliberately generous (default: 300)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ApplyConfig controls plan-apply behavior
type ApplyConfig struct {
	// PlanFile is the default path where generated plans are written and
	// read back for apply (default: ".boardctl-plan.json")
	PlanFile string `mapstructure:"plan_file"`
	// TaskNameLimit is the maximum task name length accepted by the server;
	// longer descriptions are truncated to this many characters (default: 80)
	TaskNameLimit int `mapstructure:"task_name_limit"`
	// SkipConfirm applies plans without the interactive confirmation prompt
	SkipConfirm bool `mapstructure:"skip_confirm"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Enabled turns the progress TUI on for `plan apply` (default: true).
	// When false, or when stdout is not a terminal, progress is logged as
	// plain lines instead.
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 30,
			Project:        "",
		},
		Generator: GeneratorConfig{
			WebhookURL:     "",
			TimeoutSeconds: 300,
		},
		Apply: ApplyConfig{
			PlanFile:      ".boardctl-plan.json",
			TaskNameLimit: 80,
			SkipConfirm:   false,
		},
		TUI: TUIConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Timeout returns the API request timeout as a time.Duration
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the webhook request timeout as a time.Duration
func (c *GeneratorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout_seconds", defaults.API.TimeoutSeconds)
	viper.SetDefault("api.project", defaults.API.Project)

	// Generator defaults
	viper.SetDefault("generator.webhook_url", defaults.Generator.WebhookURL)
	viper.SetDefault("generator.timeout_seconds", defaults.Generator.TimeoutSeconds)

	// Apply defaults
	viper.SetDefault("apply.plan_file", defaults.Apply.PlanFile)
	viper.SetDefault("apply.task_name_limit", defaults.Apply.TaskNameLimit)
	viper.SetDefault("apply.skip_confirm", defaults.Apply.SkipConfirm)

	// TUI defaults
	viper.SetDefault("tui.enabled", defaults.TUI.Enabled)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "boardctl")
	}
	// Fall back to ~/.config/boardctl
	home, err := os.UserHomeDir()
	if err != nil {
		return ".boardctl"
	}
	return filepath.Join(home, ".config", "boardctl")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory where log files are written
func LogDir() string {
	return filepath.Join(ConfigDir(), "logs")
}

// Package cmdutil holds helpers shared by the command packages: building an
// authenticated API client from the loaded config and resolving which
// project a command operates on.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/mfigueredo/boardctl/internal/api"
	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/config"
	"github.com/mfigueredo/boardctl/internal/logging"
)

// NewLogger builds the logger configured in cfg. Disabled logging returns a
// no-op logger so commands never nil-check.
func NewLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.Nop()
	}
	logger, err := logging.New(config.LogDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return logging.Nop()
	}
	return logger
}

// NewClient builds an API client from the config and the stored credentials.
// Commands that require auth should pass requireAuth=true to fail fast with
// a login hint instead of a 401 later.
func NewClient(cfg *config.Config, logger *logging.Logger, requireAuth bool) (api.Client, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	if requireAuth && token == "" {
		return nil, fmt.Errorf("%w: run `boardctl login` first", apierr.ErrNotLoggedIn)
	}
	return api.New(cfg.API.BaseURL, token, cfg.API.Timeout(), logger)
}

// ResolveProject returns the project the command targets: the --project flag
// when set, otherwise the configured default.
func ResolveProject(cfg *config.Config, flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(cfg.API.Project); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: no project selected; pass --project or set api.project in config", apierr.ErrInvalidInput)
}

package config

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestValidateAPI(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url",
		},
		{
			name:    "non-http base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://host/api" },
			wantErr: "api.base_url",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "/api" },
			wantErr: "api.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = 0 },
			wantErr: "api.timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation error, got none")
			}
			if errs[0].Field != tt.wantErr {
				t.Errorf("error field = %q, want %q", errs[0].Field, tt.wantErr)
			}
		})
	}
}

func TestValidateGenerator(t *testing.T) {
	cfg := Default()
	cfg.Generator.WebhookURL = "not-a-url"

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "generator.webhook_url" {
		t.Errorf("expected generator.webhook_url error, got %v", errs)
	}

	// Empty webhook is allowed: it just disables plan generation
	cfg.Generator.WebhookURL = ""
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("empty webhook URL should be valid, got %v", errs)
	}
}

func TestValidateApply(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		valid bool
	}{
		{"minimum", 1, true},
		{"server cap", 80, true},
		{"zero", 0, false},
		{"over cap", 81, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Apply.TaskNameLimit = tt.limit

			errs := cfg.Validate()
			if tt.valid && len(errs) != 0 {
				t.Errorf("limit %d should be valid, got %v", tt.limit, errs)
			}
			if !tt.valid && len(errs) == 0 {
				t.Errorf("limit %d should be invalid", tt.limit)
			}
		})
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "logging.level" {
		t.Errorf("expected logging.level error, got %v", errs)
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "api.base_url", Value: "", Message: "must not be empty"},
		{Field: "logging.level", Value: "verbose", Message: "must be one of: debug, info, warn, error"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "api.base_url") {
		t.Errorf("expected field name in message, got %q", msg)
	}

	single := ValidationErrors{errs[0]}
	if strings.Contains(single.Error(), "validation errors") {
		t.Errorf("single error should not use plural form: %q", single.Error())
	}

	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("empty ValidationErrors should format as empty string")
	}
}

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAPI()...)
	errors = append(errors, c.validateGenerator()...)
	errors = append(errors, c.validateApply()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	if c.API.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must not be empty",
		})
	} else if !isHTTPURL(c.API.BaseURL) {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be an http or https URL",
		})
	}

	if c.API.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.timeout_seconds",
			Value:   c.API.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateGenerator() []ValidationError {
	var errors []ValidationError

	// Empty webhook URL just disables plan generation
	if c.Generator.WebhookURL != "" && !isHTTPURL(c.Generator.WebhookURL) {
		errors = append(errors, ValidationError{
			Field:   "generator.webhook_url",
			Value:   c.Generator.WebhookURL,
			Message: "must be an http or https URL",
		})
	}

	if c.Generator.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "generator.timeout_seconds",
			Value:   c.Generator.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateApply() []ValidationError {
	var errors []ValidationError

	if c.Apply.PlanFile == "" {
		errors = append(errors, ValidationError{
			Field:   "apply.plan_file",
			Value:   c.Apply.PlanFile,
			Message: "must not be empty",
		})
	}

	// 80 is the server-side cap on task names
	if c.Apply.TaskNameLimit < 1 || c.Apply.TaskNameLimit > 80 {
		errors = append(errors, ValidationError{
			Field:   "apply.task_name_limit",
			Value:   c.Apply.TaskNameLimit,
			Message: "must be between 1 and 80",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}

	return errors
}

// isHTTPURL reports whether s parses as an absolute http(s) URL.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

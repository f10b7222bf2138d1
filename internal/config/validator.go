package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "generation.base_url")
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

// ValidThemes returns the list of valid TUI themes
func ValidThemes() []string {
	return []string{"dark", "light"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGeneration()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateGeneration validates the GenerationConfig
func (c *Config) validateGeneration() []ValidationError {
	var errors []ValidationError

	if c.Generation.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "generation.base_url",
			Value:   c.Generation.BaseURL,
			Message: "cannot be empty",
		})
	} else {
		u, err := url.Parse(c.Generation.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "generation.base_url",
				Value:   c.Generation.BaseURL,
				Message: "must be an absolute URL (e.g. https://api.openai.com/v1)",
			})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, ValidationError{
				Field:   "generation.base_url",
				Value:   c.Generation.BaseURL,
				Message: "scheme must be http or https",
			})
		}
	}

	if c.Generation.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "generation.model",
			Value:   c.Generation.Model,
			Message: "cannot be empty",
		})
	}

	if c.Generation.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "generation.timeout_seconds",
			Value:   c.Generation.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	// Generation calls can take a while, but an hour is a misconfiguration
	const maxTimeoutSeconds = 3600
	if c.Generation.TimeoutSeconds > maxTimeoutSeconds {
		errors = append(errors, ValidationError{
			Field:   "generation.timeout_seconds",
			Value:   c.Generation.TimeoutSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxTimeoutSeconds),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if c.Paths.DataDir != "" {
		path := c.Paths.DataDir

		// Check for null bytes which are invalid in paths
		if strings.ContainsRune(path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   "paths.data_dir",
				Value:   path,
				Message: "path contains invalid null character",
			})
		}

		// Reasonable path length limit (most filesystems have limits around 4096)
		const maxPathLength = 4096
		if len(path) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   "paths.data_dir",
				Value:   path,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

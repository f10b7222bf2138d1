package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

func hasFieldError(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate_Generation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		field    string
		hasError bool
	}{
		{"valid defaults", func(c *Config) {}, "generation.base_url", false},
		{"empty base_url", func(c *Config) { c.Generation.BaseURL = "" }, "generation.base_url", true},
		{"relative base_url", func(c *Config) { c.Generation.BaseURL = "api.openai.com/v1" }, "generation.base_url", true},
		{"ftp scheme", func(c *Config) { c.Generation.BaseURL = "ftp://example.com" }, "generation.base_url", true},
		{"local http server", func(c *Config) { c.Generation.BaseURL = "http://localhost:8080/v1" }, "generation.base_url", false},
		{"empty model", func(c *Config) { c.Generation.Model = "" }, "generation.model", true},
		{"zero timeout", func(c *Config) { c.Generation.TimeoutSeconds = 0 }, "generation.timeout_seconds", true},
		{"negative timeout", func(c *Config) { c.Generation.TimeoutSeconds = -5 }, "generation.timeout_seconds", true},
		{"excessive timeout", func(c *Config) { c.Generation.TimeoutSeconds = 7200 }, "generation.timeout_seconds", true},
		{"empty api_key is valid", func(c *Config) { c.Generation.APIKey = "" }, "generation.api_key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()

			if got := hasFieldError(errs, tt.field); got != tt.hasError {
				t.Errorf("Validate(): hasError(%s)=%v, want %v (errors: %v)", tt.field, got, tt.hasError, errs)
			}
		})
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		hasError bool
	}{
		{"valid dark", "dark", false},
		{"valid light", "light", false},
		{"empty is valid", "", false},
		{"invalid theme", "solarized", true},
		{"case sensitive", "DARK", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.TUI.Theme = tt.theme
			errs := cfg.Validate()

			if got := hasFieldError(errs, "tui.theme"); got != tt.hasError {
				t.Errorf("Validate() for theme=%q: hasError=%v, want %v", tt.theme, got, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		hasError bool
	}{
		{"valid debug", "debug", false},
		{"valid info", "info", false},
		{"valid warn", "warn", false},
		{"valid error", "error", false},
		{"empty is valid", "", false},
		{"invalid level", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Logging.Level = tt.level
			errs := cfg.Validate()

			if got := hasFieldError(errs, "logging.level"); got != tt.hasError {
				t.Errorf("Validate() for level=%q: hasError=%v, want %v", tt.level, got, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_Paths(t *testing.T) {
	t.Run("null byte in data_dir", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.DataDir = "bad\x00path"
		errs := cfg.Validate()
		if !hasFieldError(errs, "paths.data_dir") {
			t.Error("expected error for null byte in data_dir")
		}
	})

	t.Run("excessively long data_dir", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.DataDir = strings.Repeat("a", 5000)
		errs := cfg.Validate()
		if !hasFieldError(errs, "paths.data_dir") {
			t.Error("expected error for oversized data_dir path")
		}
	})

	t.Run("empty data_dir is valid", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.DataDir = ""
		errs := cfg.Validate()
		if hasFieldError(errs, "paths.data_dir") {
			t.Error("empty data_dir should be valid")
		}
	})
}

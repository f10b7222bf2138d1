package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Counterpoint configuration
type Config struct {
	Generation GenerationConfig `mapstructure:"generation"`
	TUI        TUIConfig        `mapstructure:"tui"`
	Paths      PathsConfig      `mapstructure:"paths"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// GenerationConfig controls how the text generation service is reached
type GenerationConfig struct {
	// BaseURL is the root of an OpenAI-compatible API
	// (e.g. "https://api.openai.com/v1" or a local llama.cpp server)
	BaseURL string `mapstructure:"base_url"`
	// APIKey is the bearer token sent with each request.
	// Leave empty for local servers that do not check authentication.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier passed to the service
	Model string `mapstructure:"model"`
	// TimeoutSeconds bounds a single generation request (default: 120)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "dark")
	// Options: "dark", "light"
	Theme string `mapstructure:"theme"`
}

// PathsConfig controls where Counterpoint stores data
type PathsConfig struct {
	// DataDir is the directory holding the session library and the log file.
	// If empty, defaults to the user config directory.
	// Supports ~ for home directory expansion.
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Timeout returns the generation request timeout as a time.Duration
func (g *GenerationConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// ResolveDataDir returns the resolved data directory path.
// If DataDir is empty, it returns the user config directory.
// If DataDir starts with ~, it expands to the user's home directory.
func (p *PathsConfig) ResolveDataDir() string {
	if p.DataDir == "" {
		return ConfigDir()
	}

	path := p.DataDir

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return path
}

// LibraryFile returns the path to the session library file
func (p *PathsConfig) LibraryFile() string {
	return filepath.Join(p.ResolveDataDir(), "sessions.json")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKey:         "",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 120,
		},
		TUI: TUIConfig{
			Theme: "dark",
		},
		Paths: PathsConfig{
			DataDir: "", // Empty means use the config directory
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Generation defaults
	viper.SetDefault("generation.base_url", defaults.Generation.BaseURL)
	viper.SetDefault("generation.api_key", defaults.Generation.APIKey)
	viper.SetDefault("generation.model", defaults.Generation.Model)
	viper.SetDefault("generation.timeout_seconds", defaults.Generation.TimeoutSeconds)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)

	// Paths defaults
	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
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
		return filepath.Join(xdg, "counterpoint")
	}
	// Fall back to ~/.config/counterpoint
	home, err := os.UserHomeDir()
	if err != nil {
		return ".counterpoint"
	}
	return filepath.Join(home, ".config", "counterpoint")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

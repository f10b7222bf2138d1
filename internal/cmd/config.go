package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify Counterpoint configuration",
	Long: `View or modify Counterpoint configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  counterpoint config set generation.model gpt-4o
  counterpoint config set tui.theme light

Valid keys:
  generation.base_url        - Root URL of the generation service
  generation.api_key         - Bearer token for the service
  generation.model           - Model identifier
  generation.timeout_seconds - Request timeout in seconds
  tui.theme                  - Color theme (dark, light)
  paths.data_dir             - Directory for session data and logs
  logging.enabled            - Enable debug logging (true/false)
  logging.level              - Log level (debug, info, warn, error)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/counterpoint/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("generation:")
	fmt.Printf("  base_url: %s\n", cfg.Generation.BaseURL)
	if cfg.Generation.APIKey != "" {
		fmt.Printf("  api_key: (set)\n")
	} else {
		fmt.Printf("  api_key: (not set)\n")
	}
	fmt.Printf("  model: %s\n", cfg.Generation.Model)
	fmt.Printf("  timeout_seconds: %d\n", cfg.Generation.TimeoutSeconds)

	fmt.Println("tui:")
	fmt.Printf("  theme: %s\n", cfg.TUI.Theme)

	fmt.Println("paths:")
	fmt.Printf("  data_dir: %s\n", cfg.Paths.ResolveDataDir())

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"generation.base_url":        "string",
		"generation.api_key":         "string",
		"generation.model":           "string",
		"generation.timeout_seconds": "int",
		"tui.theme":                  "string",
		"paths.data_dir":             "string",
		"logging.enabled":            "bool",
		"logging.level":              "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'counterpoint config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "tui.theme" && !contains(config.ValidThemes(), value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidThemes(), ", "))
		}
		if key == "logging.level" && !contains(config.ValidLogLevels(), value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal <= 0 {
			return fmt.Errorf("invalid value for %s: must be positive", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'counterpoint config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Counterpoint Configuration

# Text generation service settings
generation:
  # Root URL of an OpenAI-compatible API
  base_url: https://api.openai.com/v1
  # Bearer token (leave empty for local servers)
  api_key: ""
  # Model identifier
  model: gpt-4o-mini
  # Request timeout in seconds
  timeout_seconds: 120

# TUI (terminal user interface) settings
tui:
  # Color theme: dark or light
  theme: dark

# Storage settings
paths:
  # Directory for session data and logs (empty = config directory)
  data_dir: ""

# Logging settings
logging:
  enabled: true
  level: info
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize Counterpoint's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/counterpoint/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: COUNTERPOINT_* (e.g., COUNTERPOINT_GENERATION_MODEL)")

	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

package cmd

import (
	"fmt"

	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/fjordlane/counterpoint/internal/controller"
	"github.com/fjordlane/counterpoint/internal/genai"
	"github.com/fjordlane/counterpoint/internal/logging"
	"github.com/fjordlane/counterpoint/internal/session"
	"github.com/fjordlane/counterpoint/internal/tui"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Launch the Counterpoint TUI",
	Long: `Launch the interactive terminal interface. From there you can start a
guided refinement session, a debate, or resume a saved session.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// buildLibrary wires the session library from the active configuration.
func buildLibrary(cfg *config.Config, logger *logging.Logger) (*session.Library, error) {
	medium, err := session.NewFileMedium(cfg.Paths.LibraryFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open session library: %w", err)
	}
	return session.NewLibrary(medium, logger), nil
}

func buildLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	level := logging.ParseLevel(cfg.Logging.Level)
	logger, err := logging.NewLogger(cfg.Paths.ResolveDataDir(), level)
	if err != nil {
		return logging.NopLogger()
	}
	return logger
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := buildLogger(cfg)
	defer logger.Close()

	library, err := buildLibrary(cfg, logger)
	if err != nil {
		return err
	}

	client := genai.NewHTTPClient(genai.Config{
		BaseURL: cfg.Generation.BaseURL,
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.Timeout(),
	}, logger)

	ctrl := controller.New(client, library, logger)

	app := tui.New(ctrl, library, cfg, logger)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

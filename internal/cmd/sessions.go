package cmd

import (
	"fmt"
	"strings"

	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/fjordlane/counterpoint/internal/session"
	"github.com/fjordlane/counterpoint/internal/util"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved Counterpoint sessions",
	Long:  `Commands for listing, inspecting, and deleting saved sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved sessions",
	Long: `List all saved sessions, most recently updated first, with their
title, mode, and last update time.`,
	RunE: runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

// openLibrary builds a session library for one-shot CLI commands.
func openLibrary() (*session.Library, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return buildLibrary(cfg, buildLogger(cfg))
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}

	sessions := library.LoadAll()

	fmt.Println(strings.Repeat("─", 70))
	fmt.Println("Counterpoint Sessions")
	fmt.Println(strings.Repeat("─", 70))

	if len(sessions) == 0 {
		fmt.Println("\nNo sessions found.")
		fmt.Println("Run 'counterpoint' to start one.")
		return nil
	}

	for _, s := range sessions {
		mode := string(s.Type)
		if s.Type == session.TypeDebate && s.Opponent != "" {
			mode = fmt.Sprintf("%s (vs %s)", mode, s.Opponent)
		}
		fmt.Printf("\n  %s\n", util.TruncateString(s.Title, 60))
		fmt.Printf("    id: %s\n", s.ID)
		fmt.Printf("    mode: %s  updated: %s\n", mode, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}

	s, err := library.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	fmt.Println(s.Title)
	fmt.Println(strings.Repeat("─", 70))

	switch s.Type {
	case session.TypeGuided:
		for _, step := range s.Guided {
			fmt.Printf("\nStep %d\n%s\n", step.Step, step.Thought)
			fmt.Printf("Focus: %s\n", step.FocusQuestion)
		}
	case session.TypeDebate:
		for _, turn := range s.Debate {
			speaker := "You"
			if turn.Role == session.RoleOpponent {
				speaker = "Opponent"
			}
			fmt.Printf("\n%s: %s\n", speaker, turn.Text)
		}
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}

	if err := library.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/fjordlane/counterpoint/internal/controller"
	"github.com/fjordlane/counterpoint/internal/logging"
	"github.com/fjordlane/counterpoint/internal/session"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	ctrl    *controller.Controller
}

// New creates a new TUI application
func New(ctrl *controller.Controller, library *session.Library, cfg *config.Config, logger *logging.Logger) *App {
	return &App{
		model: NewModel(ctrl, library, cfg, logger),
		ctrl:  ctrl,
	}
}

// Run starts the TUI application
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Save the active session when the process is terminated
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		a.ctrl.NewSession()
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	return err
}

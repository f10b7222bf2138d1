package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/fjordlane/counterpoint/internal/controller"
	"github.com/fjordlane/counterpoint/internal/logging"
	"github.com/fjordlane/counterpoint/internal/persona"
	"github.com/fjordlane/counterpoint/internal/session"
)

// viewState identifies which screen the TUI is showing
type viewState int

const (
	viewMenu viewState = iota
	viewGuidedInput
	viewFocusSelect
	viewClaimInput
	viewOpponentSelect
	viewDebateInput
	viewSessions
	viewSummary
)

// menu entries shown on the home screen
var menuEntries = []string{
	"Refine a thought",
	"Spar with an opponent",
	"Saved sessions",
	"Quit",
}

// Model is the Bubbletea model for the whole application
type Model struct {
	ctrl    *controller.Controller
	library *session.Library
	cfg     *config.Config
	logger  *logging.Logger
	theme   Theme

	view         viewState
	menuCursor   int
	optionCursor int

	input       textarea.Model
	spinner     spinner.Model
	sessionList list.Model
	personas    []persona.Persona

	// busy disables input while a generation call is in flight
	busy          bool
	confirmDelete bool
	errMsg        string

	summaryTitle string
	summaryText  string

	width  int
	height int
}

// sessionItem adapts a saved session for the bubbles list component
type sessionItem struct {
	s session.Session
}

func (i sessionItem) Title() string { return i.s.Title }

func (i sessionItem) Description() string {
	mode := string(i.s.Type)
	if i.s.Type == session.TypeDebate && i.s.Opponent != "" {
		mode = fmt.Sprintf("%s vs %s", mode, i.s.Opponent)
	}
	return fmt.Sprintf("%s · updated %s", mode, i.s.UpdatedAt.Format("2006-01-02 15:04"))
}

func (i sessionItem) FilterValue() string { return i.s.Title }

// NewModel creates the initial model
func NewModel(ctrl *controller.Controller, library *session.Library, cfg *config.Config, logger *logging.Logger) Model {
	theme := ThemeByName(cfg.TUI.Theme)

	input := textarea.New()
	input.Placeholder = "Type here..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.ModelText

	delegate := list.NewDefaultDelegate()
	sessionList := list.New(nil, delegate, 0, 0)
	sessionList.Title = "Saved Sessions"
	sessionList.SetShowStatusBar(false)
	sessionList.SetFilteringEnabled(false)

	return Model{
		ctrl:        ctrl,
		library:     library,
		cfg:         cfg,
		logger:      logger,
		theme:       theme,
		view:        viewMenu,
		input:       input,
		spinner:     sp,
		sessionList: sessionList,
		personas:    persona.All(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// viewForPhase maps a controller phase to the screen that can act on it
func viewForPhase(phase controller.Phase) viewState {
	switch phase {
	case controller.PhaseGuidedInput:
		return viewGuidedInput
	case controller.PhaseGuidedFocus:
		return viewFocusSelect
	case controller.PhaseOpponentSelection:
		return viewOpponentSelect
	case controller.PhaseDebateResponse, controller.PhaseDebateRebuttal:
		return viewDebateInput
	default:
		return viewMenu
	}
}

// reloadSessions refreshes the session list from the library
func (m *Model) reloadSessions() {
	sessions := m.library.LoadAll()
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{s: s}
	}
	m.sessionList.SetItems(items)
}

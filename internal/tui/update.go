package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/fjordlane/counterpoint/internal/errors"
	"github.com/spf13/viper"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 6)
		m.sessionList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refinementReadyMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.view = viewFocusSelect
		m.optionCursor = 0
		return m, nil

	case debateTurnMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			// A failed opening response leaves the opponent unbound
			m.view = viewForPhase(m.ctrl.State().Phase)
			return m, nil
		}
		m.view = viewDebateInput
		m.resetInput("Your rebuttal...")
		return m, nil

	case summaryReadyMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.summaryTitle = msg.title
		m.summaryText = msg.text
		m.view = viewSummary
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateComponents(msg)
}

// handleKey routes key presses based on the active view
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings
	switch msg.String() {
	case "ctrl+c":
		m.ctrl.NewSession()
		return m, tea.Quit
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	}

	// Ignore everything else while a generation call is in flight
	if m.busy {
		return m, nil
	}

	m.errMsg = ""

	switch m.view {
	case viewMenu:
		return m.handleMenuKey(msg)
	case viewGuidedInput:
		return m.handleGuidedInputKey(msg)
	case viewFocusSelect:
		return m.handleFocusSelectKey(msg)
	case viewClaimInput:
		return m.handleClaimInputKey(msg)
	case viewOpponentSelect:
		return m.handleOpponentSelectKey(msg)
	case viewDebateInput:
		return m.handleDebateInputKey(msg)
	case viewSessions:
		return m.handleSessionsKey(msg)
	case viewSummary:
		if msg.String() == "esc" || msg.String() == "q" {
			m.summaryText = ""
			m.view = viewForPhase(m.ctrl.State().Phase)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuEntries)-1 {
			m.menuCursor++
		}
	case "enter":
		switch m.menuCursor {
		case 0:
			if err := m.ctrl.BeginGuided(); err != nil {
				m.errMsg = userMessage(err)
				return m, nil
			}
			m.view = viewGuidedInput
			m.resetInput("What are you thinking through?")
			return m, textarea.Blink
		case 1:
			m.view = viewClaimInput
			m.resetInput("State the claim you want to defend...")
			return m, textarea.Blink
		case 2:
			m.reloadSessions()
			m.view = viewSessions
		case 3:
			return m, tea.Quit
		}
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGuidedInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.NewSession()
		m.view = viewMenu
		return m, nil
	case "ctrl+s":
		text := m.input.Value()
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.submitThoughtCmd(text))
	case "ctrl+b":
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.blogSummaryCmd())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFocusSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.ctrl.State()
	if st.Pending == nil {
		m.view = viewGuidedInput
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case "down", "j":
		if m.optionCursor < len(st.Pending.Questions)-1 {
			m.optionCursor++
		}
	case "enter":
		if err := m.ctrl.SelectFocusQuestion(st.Pending.Questions[m.optionCursor]); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.view = viewGuidedInput
		m.resetInput("Write your next pass at the thought...")
		return m, textarea.Blink
	}
	return m, nil
}

func (m Model) handleClaimInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewMenu
		return m, nil
	case "ctrl+s":
		if err := m.ctrl.StartDebate(m.input.Value()); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.view = viewOpponentSelect
		m.optionCursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleOpponentSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.NewSession()
		m.view = viewMenu
		return m, nil
	case "up", "k":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case "down", "j":
		if m.optionCursor < len(m.personas)-1 {
			m.optionCursor++
		}
	case "enter":
		key := m.personas[m.optionCursor].Key
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.selectOpponentCmd(key))
	}
	return m, nil
}

func (m Model) handleDebateInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+e":
		if err := m.ctrl.EndDebate(); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.view = viewMenu
		return m, nil
	case "ctrl+s":
		text := m.input.Value()
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.submitRebuttalCmd(text))
	case "ctrl+b":
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.debateSummaryCmd())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
				if err := m.library.Remove(item.s.ID); err != nil {
					m.errMsg = userMessage(err)
				}
				m.reloadSessions()
			}
			m.confirmDelete = false
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.view = viewMenu
		return m, nil
	case "d":
		if m.sessionList.SelectedItem() != nil {
			m.confirmDelete = true
		}
		return m, nil
	case "enter":
		item, ok := m.sessionList.SelectedItem().(sessionItem)
		if !ok {
			return m, nil
		}
		if err := m.ctrl.LoadSession(item.s.ID); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.view = viewForPhase(m.ctrl.State().Phase)
		m.optionCursor = 0
		switch m.view {
		case viewGuidedInput:
			m.resetInput("Write your next pass at the thought...")
			return m, textarea.Blink
		case viewDebateInput:
			m.resetInput("Your rebuttal...")
			return m, textarea.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// updateComponents forwards non-key messages to the active components
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.view {
	case viewGuidedInput, viewClaimInput, viewDebateInput:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	case viewSessions:
		m.sessionList, cmd = m.sessionList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// resetInput clears the textarea and installs a new placeholder
func (m *Model) resetInput(placeholder string) {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

// toggleTheme flips between dark and light and persists the choice
func (m *Model) toggleTheme() {
	if m.theme.Name == "dark" {
		m.theme = LightTheme()
	} else {
		m.theme = DarkTheme()
	}
	m.cfg.TUI.Theme = m.theme.Name
	m.spinner.Style = m.theme.ModelText

	viper.Set("tui.theme", m.theme.Name)
	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		m.logger.Warn("failed to persist theme", "error", err)
	}
}

// Generation commands. Each one runs the blocking controller call off the
// update loop and reports back with a message.

func (m Model) submitThoughtCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return refinementReadyMsg{err: m.ctrl.SubmitGuidedThought(context.Background(), text)}
	}
}

func (m Model) selectOpponentCmd(key string) tea.Cmd {
	return func() tea.Msg {
		return debateTurnMsg{err: m.ctrl.SelectOpponent(context.Background(), key)}
	}
}

func (m Model) submitRebuttalCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return debateTurnMsg{err: m.ctrl.SubmitRebuttal(context.Background(), text)}
	}
}

func (m Model) blogSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := m.ctrl.GenerateBlogSummary(context.Background())
		return summaryReadyMsg{title: "Blog Draft", text: text, err: err}
	}
}

func (m Model) debateSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := m.ctrl.GenerateDebateSummary(context.Background())
		return summaryReadyMsg{title: "Debate Summary", text: text, err: err}
	}
}

// userMessage turns an error into a line suitable for the status area
func userMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrEmptyInput):
		return "Type something first."
	case errors.Is(err, errors.ErrServiceUnavailable):
		return "The generation service is unreachable. Your session is unchanged; try again."
	case errors.Is(err, errors.ErrBadPayload):
		return "The generation service returned something unusable. Try again."
	case errors.Is(err, errors.ErrEmptyTranscript):
		return "There is nothing to summarize yet."
	default:
		return strings.TrimSpace(err.Error())
	}
}

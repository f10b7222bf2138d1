package tui

import (
	"fmt"
	"strings"

	"github.com/fjordlane/counterpoint/internal/session"
	"github.com/fjordlane/counterpoint/internal/util"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Header.Render("Counterpoint"))
	b.WriteString("\n")

	switch m.view {
	case viewMenu:
		b.WriteString(m.renderMenu())
	case viewGuidedInput:
		b.WriteString(m.renderGuidedInput())
	case viewFocusSelect:
		b.WriteString(m.renderFocusSelect())
	case viewClaimInput:
		b.WriteString(m.renderClaimInput())
	case viewOpponentSelect:
		b.WriteString(m.renderOpponentSelect())
	case viewDebateInput:
		b.WriteString(m.renderDebateInput())
	case viewSessions:
		b.WriteString(m.renderSessions())
	case viewSummary:
		b.WriteString(m.renderSummary())
	}

	if m.errMsg != "" {
		line := m.errMsg
		if m.width > 0 {
			line = util.TruncateANSI(line, m.width)
		}
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorText.Render(line))
	}

	return b.String()
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("What would you like to do?"))
	b.WriteString("\n")

	for i, entry := range menuEntries {
		if i == m.menuCursor {
			b.WriteString(m.theme.Selected.Render("› " + entry))
		} else {
			b.WriteString(m.theme.Unselected.Render("  " + entry))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help("↑/↓", "move", "enter", "select", "ctrl+t", "theme", "q", "quit"))
	return b.String()
}

func (m Model) renderGuidedInput() string {
	var b strings.Builder
	st := m.ctrl.State()

	b.WriteString(m.renderGuidedTranscript(st.Session.Guided))
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Step %d", st.NextStep())))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Subtitle.Render(" refining your thought..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if len(st.Session.Guided) > 0 {
		b.WriteString(m.help("ctrl+s", "submit", "ctrl+b", "blog draft", "esc", "save & exit"))
	} else {
		b.WriteString(m.help("ctrl+s", "submit", "esc", "back"))
	}
	return b.String()
}

func (m Model) renderGuidedTranscript(steps []session.GuidedStep) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	for _, step := range steps {
		b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Step %d", step.Step)))
		b.WriteString("\n")
		b.WriteString(m.theme.UserText.Render(step.Thought))
		b.WriteString("\n")
		b.WriteString(m.theme.ModelText.Render("Focus: " + step.FocusQuestion))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) renderFocusSelect() string {
	var b strings.Builder
	st := m.ctrl.State()
	if st.Pending == nil {
		return ""
	}

	b.WriteString(m.theme.Title.Render("Refined thought"))
	b.WriteString("\n")
	b.WriteString(m.theme.ContentBox.Render(st.Pending.Corrected))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Title.Render("Pick the question to pursue next"))
	b.WriteString("\n")

	for i, q := range st.Pending.Questions {
		if i == m.optionCursor {
			b.WriteString(m.theme.Selected.Render("› " + q))
		} else {
			b.WriteString(m.theme.Unselected.Render("  " + q))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help("↑/↓", "move", "enter", "select"))
	return b.String()
}

func (m Model) renderClaimInput() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("State your claim"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("An opposing persona will argue against it."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help("ctrl+s", "continue", "esc", "back"))
	return b.String()
}

func (m Model) renderOpponentSelect() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Choose your opponent"))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Subtitle.Render(" your opponent is preparing an opening response..."))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range m.personas {
		line := fmt.Sprintf("%s — %s", p.DisplayName, p.Description)
		if i == m.optionCursor {
			b.WriteString(m.theme.Selected.Render("› " + line))
		} else {
			b.WriteString(m.theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help("↑/↓", "move", "enter", "select", "esc", "cancel"))
	return b.String()
}

func (m Model) renderDebateInput() string {
	var b strings.Builder
	st := m.ctrl.State()

	for _, turn := range st.Session.Debate {
		if turn.Role == session.RoleUser {
			b.WriteString(m.theme.Selected.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.theme.UserText.Render(turn.Text))
		} else {
			b.WriteString(m.theme.ModelText.Render("Opponent"))
			b.WriteString("\n")
			b.WriteString(m.theme.UserText.Render(turn.Text))
		}
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Subtitle.Render(" your opponent is thinking..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help("ctrl+s", "rebut", "ctrl+b", "summary", "ctrl+e/esc", "end debate"))
	return b.String()
}

func (m Model) renderSessions() string {
	var b strings.Builder
	b.WriteString(m.sessionList.View())
	b.WriteString("\n")
	if m.confirmDelete {
		b.WriteString(m.theme.ErrorText.Render("Delete this session? (y/n)"))
	} else {
		b.WriteString(m.help("enter", "resume", "d", "delete", "esc", "back"))
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.summaryTitle))
	b.WriteString("\n")
	b.WriteString(m.theme.ContentBox.Render(m.summaryText))
	b.WriteString("\n")
	b.WriteString(m.help("esc", "back"))
	return b.String()
}

// help renders alternating key/description pairs in the status bar style
func (m Model) help(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.theme.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return m.theme.HelpBar.Render(strings.Join(parts, "  ·  "))
}

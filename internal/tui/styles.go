package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color palette and derived styles for one color scheme.
type Theme struct {
	Name string

	PrimaryColor lipgloss.Color
	AccentColor  lipgloss.Color
	WarningColor lipgloss.Color
	ErrorColor   lipgloss.Color
	MutedColor   lipgloss.Color
	TextColor    lipgloss.Color
	BorderColor  lipgloss.Color

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Header     lipgloss.Style
	ContentBox lipgloss.Style
	UserText   lipgloss.Style
	ModelText  lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	ErrorText  lipgloss.Style
	HelpBar    lipgloss.Style
	HelpKey    lipgloss.Style
}

func buildTheme(t Theme) Theme {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.PrimaryColor).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.MutedColor).
		Italic(true)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.BorderColor).
		MarginBottom(1)

	t.ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderColor).
		Padding(1, 2)

	t.UserText = lipgloss.NewStyle().
		Foreground(t.TextColor)

	t.ModelText = lipgloss.NewStyle().
		Foreground(t.AccentColor)

	t.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.PrimaryColor)

	t.Unselected = lipgloss.NewStyle().
		Foreground(t.MutedColor)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(t.ErrorColor)

	t.HelpBar = lipgloss.NewStyle().
		Foreground(t.MutedColor).
		MarginTop(1)

	t.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.AccentColor)

	return t
}

// DarkTheme returns the default palette for dark terminals.
// Colors meet WCAG AA contrast (4.5:1) on dark surfaces.
func DarkTheme() Theme {
	return buildTheme(Theme{
		Name:         "dark",
		PrimaryColor: lipgloss.Color("#A78BFA"), // Purple (violet-400)
		AccentColor:  lipgloss.Color("#10B981"), // Green
		WarningColor: lipgloss.Color("#F59E0B"), // Amber
		ErrorColor:   lipgloss.Color("#F87171"), // Red (red-400)
		MutedColor:   lipgloss.Color("#9CA3AF"), // Gray
		TextColor:    lipgloss.Color("#F9FAFB"), // Light text
		BorderColor:  lipgloss.Color("#6B7280"), // Gray (gray-500)
	})
}

// LightTheme returns the palette for light terminals.
func LightTheme() Theme {
	return buildTheme(Theme{
		Name:         "light",
		PrimaryColor: lipgloss.Color("#6D28D9"), // Purple (violet-700)
		AccentColor:  lipgloss.Color("#047857"), // Green (emerald-700)
		WarningColor: lipgloss.Color("#B45309"), // Amber (amber-700)
		ErrorColor:   lipgloss.Color("#B91C1C"), // Red (red-700)
		MutedColor:   lipgloss.Color("#6B7280"), // Gray
		TextColor:    lipgloss.Color("#111827"), // Dark text
		BorderColor:  lipgloss.Color("#9CA3AF"), // Gray (gray-400)
	})
}

// ThemeByName returns the theme matching the given name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

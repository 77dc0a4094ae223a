package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by both screens.
type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Received lipgloss.Style
	Paid     lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Box      lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme is green for money in, red for money out.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Received: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Paid: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#404040")).
		Foreground(lipgloss.Color("#fafafa")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		MarginTop(1),
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Lists
	ItemSelected lipgloss.Style
	ItemNormal   lipgloss.Style

	// Session
	SessionRunning lipgloss.Style
	SessionPaused  lipgloss.Style
	SessionIdle    lipgloss.Style
	SessionClock   lipgloss.Style

	// Summary
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	Dialog lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	// Color palette
	primary := lipgloss.Color("99")     // Purple
	secondary := lipgloss.Color("39")   // Cyan
	muted := lipgloss.Color("240")      // Gray
	success := lipgloss.Color("82")     // Green
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		ItemSelected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		ItemNormal: lipgloss.NewStyle(),

		SessionRunning: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		SessionPaused: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		SessionIdle: lipgloss.NewStyle().
			Foreground(muted),
		SessionClock: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted),
		StatValue: lipgloss.NewStyle().
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

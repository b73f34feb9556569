// Package tui provides the Terminal User Interface for tock.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/timer"
	"github.com/xolan/tock/internal/tui/ui"
	"github.com/xolan/tock/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabSession Tab = iota
	TabSummary
)

var tabNames = []string{"Session", "Summary"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	sessionView views.SessionModel
	summaryView views.SummaryModel

	styles ui.Styles
	keys   ui.KeyMap
}

// New creates a new TUI model around a client session
func New(services *service.Services, session *timer.Session) Model {
	styles := ui.DefaultStyles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:    services,
		activeTab:   TabSession,
		styles:      styles,
		keys:        keys,
		sessionView: views.NewSessionModel(services, session, styles, keys),
		summaryView: views.NewSummaryModel(services, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sessionView.Init(),
		m.summaryView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		picking := m.activeTab == TabSession && m.sessionView.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit) && !picking:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !picking:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !picking:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !picking:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !picking:
			m.activeTab = TabSession
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !picking:
			m.activeTab = TabSummary
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.sessionView.SetSize(m.width, contentHeight)
		m.summaryView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.EntryRecordedMsg:
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd
	}

	// Session ticks and async results must reach the session view even
	// while the summary tab is showing.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		var cmds []tea.Cmd
		m.sessionView, cmd = m.sessionView.Update(msg)
		cmds = append(cmds, cmd)
		m.summaryView, cmd = m.summaryView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.activeTab {
	case TabSession:
		m.sessionView, cmd = m.sessionView.Update(msg)
	case TabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabSession:
		b.WriteString(m.sessionView.View())
	case TabSummary:
		b.WriteString(m.summaryView.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.activeTab == TabSession && m.sessionView.IsInputMode() {
		parts = append(parts, m.renderKeyHelp("j/k", "choose"))
		parts = append(parts, m.renderKeyHelp("Enter", "start"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabSession:
			parts = append(parts, m.renderKeyHelp("s", "start"))
			parts = append(parts, m.renderKeyHelp("p", "pause"))
			parts = append(parts, m.renderKeyHelp("x", "stop"))
		case TabSummary:
			parts = append(parts, m.renderKeyHelp("t/w/m", "period"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		}
		parts = append(parts, m.renderKeyHelp("1-2", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// initCurrentView refreshes the view being switched to
func (m Model) initCurrentView() tea.Cmd {
	if m.activeTab == TabSummary {
		return m.summaryView.Init()
	}
	return nil
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-2    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabSession:
		help.WriteString(m.styles.StatLabel.Render("Session:"))
		help.WriteString("\n")
		help.WriteString("  s          Choose a project or task and start\n")
		help.WriteString("  p/Space    Pause or resume\n")
		help.WriteString("  x          Stop and record (sessions under a minute are dropped)\n")
		help.WriteString("  r          Reload projects and tasks\n")
	case TabSummary:
		help.WriteString(m.styles.StatLabel.Render("Summary:"))
		help.WriteString("\n")
		help.WriteString("  t/w/m      Today, this week, this month\n")
		help.WriteString("  r          Refresh\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services, session *timer.Session) error {
	model := New(services, session)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

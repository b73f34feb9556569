package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/timeutil"
	"github.com/xolan/tock/internal/tui/ui"
)

// SummaryModel is the model for the summary view
type SummaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	period  timeutil.Period
	result  *service.SummaryResult
	err     error
}

// NewSummaryModel creates a new summary view model
func NewSummaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SummaryModel {
	return SummaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		period:   timeutil.PeriodToday,
	}
}

// summaryLoadedMsg is sent when a summary is loaded
type summaryLoadedMsg struct {
	result *service.SummaryResult
	err    error
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return m.loadSummary()
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Today):
			m.period = timeutil.PeriodToday
			return m, m.loadSummary()
		case key.Matches(msg, m.keys.ThisWeek):
			m.period = timeutil.PeriodWeek
			return m, m.loadSummary()
		case key.Matches(msg, m.keys.ThisMonth):
			m.period = timeutil.PeriodMonth
			return m, m.loadSummary()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSummary()
		}

	case summaryLoadedMsg:
		m.err = msg.err
		m.result = msg.result

	case ui.EntryRecordedMsg:
		return m, m.loadSummary()
	}

	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Summary for " + m.period.Label()))
	b.WriteString("\n\n")

	if m.result == nil && m.err == nil {
		b.WriteString("Loading...")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	r := m.result
	b.WriteString(m.styles.StatLabel.Render(cli.FormatDateRangeForDisplay(r.Start, r.End)))
	b.WriteString("\n\n")

	if r.EntryCount == 0 {
		b.WriteString(m.styles.StatLabel.Render("No time tracked"))
		return b.String()
	}

	nameWidth := 0
	for _, p := range r.Projects {
		nameWidth = max(nameWidth, len(p.ProjectName))
	}
	for _, p := range r.Projects {
		b.WriteString(fmt.Sprintf("%-*s  ", nameWidth, p.ProjectName))
		b.WriteString(m.styles.StatValue.Render(fmt.Sprintf("%8s", entry.FormatDuration(p.TotalMinutes))))
		b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("  %d %s", p.EntryCount, entryWord(p.EntryCount))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Total: "))
	b.WriteString(m.styles.StatValue.Render(entry.FormatDuration(r.TotalMinutes)))
	return b.String()
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadSummary creates a command to load the summary for the current period
func (m SummaryModel) loadSummary() tea.Cmd {
	period := m.period
	return func() tea.Msg {
		result, err := m.services.Timer.Summary(context.Background(), period, "")
		return summaryLoadedMsg{result: result, err: err}
	}
}

func entryWord(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

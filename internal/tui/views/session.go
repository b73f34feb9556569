package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/timer"
	"github.com/xolan/tock/internal/tui/ui"
)

// target is one selectable project or project/task pair.
type target struct {
	timer.Target
}

func (t target) label() string {
	return cli.FormatTarget(service.Labels{ProjectName: t.ProjectName, TaskName: t.TaskName})
}

// SessionModel is the model for the session view. It owns the client
// stopwatch and hands finished sessions to the timer service.
type SessionModel struct {
	services *service.Services
	session  *timer.Session
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	err     error
	message string

	// Target picker
	picking bool
	targets []target
	cursor  int
}

// NewSessionModel creates a new session view model
func NewSessionModel(services *service.Services, session *timer.Session, styles ui.Styles, keys ui.KeyMap) SessionModel {
	return SessionModel{
		services: services,
		session:  session,
		styles:   styles,
		keys:     keys,
	}
}

// targetsLoadedMsg is sent when the project and task catalog is loaded
type targetsLoadedMsg struct {
	targets []target
	err     error
}

// sessionRecordedMsg is sent after a stopped session was handed off
type sessionRecordedMsg struct {
	handoff timer.Handoff
	entry   *entry.Entry
	err     error
}

// sessionTickMsg is sent every second to redraw the clock
type sessionTickMsg time.Time

// Init implements tea.Model
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.loadTargets(), m.tick())
}

// Update implements tea.Model
func (m SessionModel) Update(msg tea.Msg) (SessionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.handlePicker(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Start):
			if len(m.targets) == 0 {
				m.message = "No projects yet. Create one with: tock project add <name>"
				return m, nil
			}
			m.picking = true
			m.message = ""
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			switch m.session.Status() {
			case timer.StatusRunning:
				m.session.Pause()
			case timer.StatusPaused:
				m.session.Resume()
			}
			return m, nil
		case key.Matches(msg, m.keys.Stop):
			h, ok := m.session.Stop()
			if !ok {
				return m, nil
			}
			return m, m.record(h)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadTargets()
		}

	case targetsLoadedMsg:
		m.err = msg.err
		m.targets = msg.targets
		if m.cursor >= len(m.targets) {
			m.cursor = 0
		}
		return m, nil

	case sessionRecordedMsg:
		m.err = msg.err
		switch {
		case msg.err != nil:
			m.message = ""
		case msg.entry == nil:
			m.message = "Session under a minute, nothing recorded"
		default:
			m.message = fmt.Sprintf("Recorded %s for %s",
				entry.FormatDuration(msg.entry.Duration), target{msg.handoff.Target}.label())
			return m, func() tea.Msg { return ui.EntryRecordedMsg{Entry: *msg.entry} }
		}
		return m, nil

	case sessionTickMsg:
		// Ticks only redraw; elapsed time is always derived from the clock.
		return m, m.tick()
	}

	return m, nil
}

// handlePicker handles key events while choosing what to time
func (m SessionModel) handlePicker(msg tea.KeyMsg) (SessionModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.targets)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.picking = false
		if m.cursor < len(m.targets) {
			m.session.Start(m.targets[m.cursor].Target)
			m.message = ""
		}
	case key.Matches(msg, m.keys.Back):
		m.picking = false
	}
	return m, nil
}

// View implements tea.Model
func (m SessionModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Session"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.picking {
		b.WriteString(m.styles.StatLabel.Render("Choose what to time:"))
		b.WriteString("\n\n")
		for i, t := range m.targets {
			line := "  " + t.label()
			style := m.styles.ItemNormal
			if i == m.cursor {
				line = "> " + t.label()
				style = m.styles.ItemSelected
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Enter to start, Esc to cancel"))
		return b.String()
	}

	switch m.session.Status() {
	case timer.StatusIdle:
		b.WriteString(m.styles.SessionIdle.Render("No session running"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 's' to start a session"))
	default:
		if m.session.Status() == timer.StatusPaused {
			b.WriteString(m.styles.SessionPaused.Render("‖ Paused"))
		} else {
			b.WriteString(m.styles.SessionRunning.Render("● Running"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Tracking:"))
		b.WriteString(" ")
		b.WriteString(m.styles.StatValue.Render(target{m.session.Target()}.label()))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Elapsed: "))
		b.WriteString(" ")
		b.WriteString(m.styles.SessionClock.Render(cli.FormatClock(m.session.Elapsed())))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'p' to pause or resume, 'x' to stop and record"))
	}

	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Success.Render(m.message))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *SessionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m SessionModel) IsInputMode() bool {
	return m.picking
}

// loadTargets lists every project followed by its tasks
func (m SessionModel) loadTargets() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		projects, err := m.services.Catalog.ListProjects(ctx)
		if err != nil {
			return targetsLoadedMsg{err: err}
		}
		tasks, err := m.services.Catalog.ListTasks(ctx, "")
		if err != nil {
			return targetsLoadedMsg{err: err}
		}

		byProject := make(map[string][]entry.Task)
		for _, t := range tasks {
			byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
		}

		var targets []target
		for _, p := range projects {
			targets = append(targets, target{timer.Target{ProjectID: p.ID, ProjectName: p.Name}})
			for _, t := range byProject[p.ID] {
				targets = append(targets, target{timer.Target{
					ProjectID:   p.ID,
					ProjectName: p.Name,
					TaskID:      t.ID,
					TaskName:    t.Name,
				}})
			}
		}
		return targetsLoadedMsg{targets: targets}
	}
}

// record hands a stopped session to the timer service
func (m SessionModel) record(h timer.Handoff) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Timer.RecordSession(context.Background(), h)
		return sessionRecordedMsg{handoff: h, entry: e, err: err}
	}
}

// tick returns a command that sends a tick every second
func (m SessionModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return sessionTickMsg(t)
	})
}

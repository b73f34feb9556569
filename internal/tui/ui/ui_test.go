package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		msg     tea.KeyMsg
	}{
		{"start", keys.Start, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}},
		{"pause", keys.Pause, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}},
		{"stop", keys.Stop, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}},
		{"quit", keys.Quit, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"select", keys.Select, tea.KeyMsg{Type: tea.KeyEnter}},
		{"next tab", keys.NextTab, tea.KeyMsg{Type: tea.KeyTab}},
		{"down", keys.Down, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected %q to match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestDefaultStyles_Render(t *testing.T) {
	styles := DefaultStyles()

	for name, out := range map[string]string{
		"title": styles.ViewTitle.Render("Session"),
		"clock": styles.SessionClock.Render("0:00:08"),
		"error": styles.Error.Render("boom"),
	} {
		if out == "" {
			t.Errorf("%s style rendered an empty string", name)
		}
	}
}

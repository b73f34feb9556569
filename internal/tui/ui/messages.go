package ui

import "github.com/xolan/tock/internal/entry"

// EntryRecordedMsg is broadcast to all views after a session was saved as an entry.
type EntryRecordedMsg struct {
	Entry entry.Entry
}

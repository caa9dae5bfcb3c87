package testutil

import (
	"time"

	"github.com/zjrosen/vimline/internal/vim"
)

// sessionData holds everything needed to seed one session.
type sessionData struct {
	guid       string
	name       string
	registers  map[rune]vim.Register
	marks      map[rune]vim.Position
	lastSearch *vim.CharSearch
	lines      []string
	createdAt  time.Time
	updatedAt  time.Time
	deleted    bool
}

func defaultSession(name string) sessionData {
	now := time.Now()
	return sessionData{
		guid:      "guid-" + name,
		name:      name,
		registers: map[rune]vim.Register{},
		marks:     map[rune]vim.Position{},
		createdAt: now,
		updatedAt: now,
	}
}

// SessionOption configures a seeded session.
type SessionOption func(*sessionData)

// GUID overrides the generated GUID.
func GUID(guid string) SessionOption {
	return func(s *sessionData) { s.guid = guid }
}

// Register stores a charwise register.
func Register(name rune, text string) SessionOption {
	return func(s *sessionData) { s.registers[name] = vim.Register{Text: text} }
}

// LinewiseRegister stores a linewise register.
func LinewiseRegister(name rune, text string) SessionOption {
	return func(s *sessionData) { s.registers[name] = vim.Register{Text: text, Linewise: true} }
}

// Mark sets a mark.
func Mark(name rune, line, col int) SessionOption {
	return func(s *sessionData) { s.marks[name] = vim.Position{Line: line, Col: col} }
}

// LastSearch sets the remembered character search.
func LastSearch(char rune, forward, till bool) SessionOption {
	return func(s *sessionData) {
		s.lastSearch = &vim.CharSearch{Char: char, Forward: forward, Till: till}
	}
}

// Lines sets the saved buffer.
func Lines(lines ...string) SessionOption {
	return func(s *sessionData) { s.lines = lines }
}

// UpdatedAt sets the update timestamp.
func UpdatedAt(t time.Time) SessionOption {
	return func(s *sessionData) { s.updatedAt = t }
}

// Deleted soft-deletes the session after insert.
func Deleted() SessionOption {
	return func(s *sessionData) { s.deleted = true }
}

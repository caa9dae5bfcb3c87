// Package domain provides the pure domain layer for persisted editing sessions.
//
// A Session carries the long-lived parts of a vim session state (registers,
// marks and the last character search) so a later invocation can resume them.
// The package has no knowledge of databases or file I/O; it depends only on the
// engine's data types.
package domain

import (
	"maps"
	"time"

	"github.com/zjrosen/vimline/internal/vim"
)

// Session represents a named, persisted editing session.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Session struct {
	id   int64
	guid string
	name string

	registers  map[rune]vim.Register
	marks      map[rune]vim.Position
	lastSearch *vim.CharSearch

	// Buffer contents at the time of the last save.
	lines []string

	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewSession creates a new empty Session with the given GUID and name.
// The ID is left as zero; it will be assigned by the persistence layer.
func NewSession(guid, name string) *Session {
	now := time.Now()
	return &Session{
		guid:      guid,
		name:      name,
		registers: map[rune]vim.Register{},
		marks:     map[rune]vim.Position{},
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstituteSession creates a Session from existing data, typically when
// hydrating from the database.
func ReconstituteSession(
	id int64,
	guid, name string,
	registers map[rune]vim.Register,
	marks map[rune]vim.Position,
	lastSearch *vim.CharSearch,
	lines []string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Session {
	if registers == nil {
		registers = map[rune]vim.Register{}
	}
	if marks == nil {
		marks = map[rune]vim.Position{}
	}
	return &Session{
		id:         id,
		guid:       guid,
		name:       name,
		registers:  registers,
		marks:      marks,
		lastSearch: lastSearch,
		lines:      lines,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		deletedAt:  deletedAt,
	}
}

// ID returns the database identifier for this session.
// Returns 0 for newly created sessions that haven't been persisted.
func (s *Session) ID() int64 {
	return s.id
}

// SetID is called by the persistence layer after insert.
func (s *Session) SetID(id int64) {
	s.id = id
}

// GUID returns the globally unique identifier for this session.
func (s *Session) GUID() string {
	return s.guid
}

// Name returns the user-facing session name.
func (s *Session) Name() string {
	return s.name
}

// Registers returns a copy of the stored register table.
func (s *Session) Registers() map[rune]vim.Register {
	return maps.Clone(s.registers)
}

// Marks returns a copy of the stored marks.
func (s *Session) Marks() map[rune]vim.Position {
	return maps.Clone(s.marks)
}

// LastSearch returns the stored character search, or nil.
func (s *Session) LastSearch() *vim.CharSearch {
	if s.lastSearch == nil {
		return nil
	}
	cs := *s.lastSearch
	return &cs
}

// Lines returns the buffer saved with the session.
func (s *Session) Lines() []string {
	return append([]string(nil), s.lines...)
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the session was last modified.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// DeletedAt returns when the session was soft-deleted, or nil.
func (s *Session) DeletedAt() *time.Time {
	return s.deletedAt
}

// IsDeleted reports whether the session has been soft-deleted.
func (s *Session) IsDeleted() bool {
	return s.deletedAt != nil
}

// Capture records the persistable parts of st and the current buffer.
func (s *Session) Capture(st *vim.SessionState, lines []string) {
	snap := st.Snapshot()
	s.registers = snap.Registers
	s.marks = snap.Marks
	s.lastSearch = snap.LastSearch
	s.lines = append([]string(nil), lines...)
	s.updatedAt = time.Now()
}

// Apply loads the stored registers, marks and last search into st.
func (s *Session) Apply(st *vim.SessionState) {
	st.Restore(vim.Snapshot{
		Registers:  s.Registers(),
		Marks:      s.Marks(),
		LastSearch: s.LastSearch(),
	})
}

// Rename changes the session name.
func (s *Session) Rename(name string) {
	s.name = name
	s.updatedAt = time.Now()
}

// MarkDeleted soft-deletes the session.
func (s *Session) MarkDeleted() {
	now := time.Now()
	s.deletedAt = &now
	s.updatedAt = now
}

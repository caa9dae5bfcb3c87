package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/sessions/domain"
)

// Builder accumulates sessions and saves them in order.
type Builder struct {
	t        *testing.T
	repo     domain.SessionRepository
	sessions []sessionData
}

// NewBuilder creates a builder for the given repository.
func NewBuilder(t *testing.T, repo domain.SessionRepository) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo}
}

// WithSession adds a session with optional configuration.
func (b *Builder) WithSession(name string, opts ...SessionOption) *Builder {
	s := defaultSession(name)
	for _, opt := range opts {
		opt(&s)
	}
	b.sessions = append(b.sessions, s)
	return b
}

// Build saves all sessions, failing the test on error.
func (b *Builder) Build() {
	b.t.Helper()
	for _, s := range b.sessions {
		session := domain.ReconstituteSession(
			0, s.guid, s.name, s.registers, s.marks, s.lastSearch, s.lines,
			s.createdAt, s.updatedAt, nil,
		)
		require.NoError(b.t, b.repo.Save(session), "failed to save session %s", s.name)
		if s.deleted {
			require.NoError(b.t, b.repo.Delete(s.name), "failed to delete session %s", s.name)
		}
	}
}

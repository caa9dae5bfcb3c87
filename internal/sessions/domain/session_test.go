package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/vim"
)

func TestNewSession(t *testing.T) {
	before := time.Now()
	session := NewSession("test-guid-123", "scratch")
	after := time.Now()

	require.Equal(t, int64(0), session.ID(), "new session should have ID 0")
	require.Equal(t, "test-guid-123", session.GUID())
	require.Equal(t, "scratch", session.Name())
	require.Empty(t, session.Registers())
	require.Empty(t, session.Marks())
	require.Nil(t, session.LastSearch())

	require.False(t, session.CreatedAt().Before(before), "createdAt should be >= before")
	require.False(t, session.CreatedAt().After(after), "createdAt should be <= after")
	require.Equal(t, session.CreatedAt(), session.UpdatedAt())

	require.Nil(t, session.DeletedAt())
	require.False(t, session.IsDeleted())
}

func TestReconstituteSession(t *testing.T) {
	createdAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	deletedAt := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

	session := ReconstituteSession(
		42,
		"reconstituted-guid",
		"notes",
		map[rune]vim.Register{'a': {Text: "alpha"}},
		map[rune]vim.Position{'m': {Line: 1, Col: 3}},
		&vim.CharSearch{Char: 'x', Forward: true},
		[]string{"one", "two"},
		createdAt,
		updatedAt,
		&deletedAt,
	)

	require.Equal(t, int64(42), session.ID())
	require.Equal(t, "reconstituted-guid", session.GUID())
	require.Equal(t, "notes", session.Name())
	require.Equal(t, "alpha", session.Registers()['a'].Text)
	require.Equal(t, vim.Position{Line: 1, Col: 3}, session.Marks()['m'])
	require.Equal(t, &vim.CharSearch{Char: 'x', Forward: true}, session.LastSearch())
	require.Equal(t, []string{"one", "two"}, session.Lines())
	require.Equal(t, createdAt, session.CreatedAt())
	require.Equal(t, updatedAt, session.UpdatedAt())
	require.True(t, session.IsDeleted())
}

func TestReconstituteSession_NilMaps(t *testing.T) {
	session := ReconstituteSession(1, "g", "n", nil, nil, nil, nil, time.Now(), time.Now(), nil)

	require.NotNil(t, session.Registers())
	require.NotNil(t, session.Marks())
}

func TestSession_CaptureAndApply(t *testing.T) {
	st := vim.NewSessionState()
	st.Registers().Store('a', "hello", false, true)
	st.SetMark('q', vim.Position{Line: 2, Col: 4})

	session := NewSession("guid", "work")
	created := session.UpdatedAt()
	time.Sleep(time.Millisecond)
	session.Capture(st, []string{"line"})

	require.True(t, session.UpdatedAt().After(created), "capture should bump updatedAt")
	require.Equal(t, "hello", session.Registers()['a'].Text)
	require.Equal(t, []string{"line"}, session.Lines())

	restored := vim.NewSessionState()
	session.Apply(restored)

	reg, ok := restored.Registers().Get('a')
	require.True(t, ok)
	require.Equal(t, "hello", reg.Text)
	mark, ok := restored.Mark('q')
	require.True(t, ok)
	require.Equal(t, vim.Position{Line: 2, Col: 4}, mark)
}

func TestSession_GettersReturnCopies(t *testing.T) {
	session := ReconstituteSession(1, "g", "n",
		map[rune]vim.Register{'a': {Text: "x"}}, nil,
		&vim.CharSearch{Char: 'c'}, []string{"l"}, time.Now(), time.Now(), nil)

	regs := session.Registers()
	regs['a'] = vim.Register{Text: "mutated"}
	session.LastSearch().Char = 'z'
	session.Lines()[0] = "changed"

	require.Equal(t, "x", session.Registers()['a'].Text)
	require.Equal(t, 'c', session.LastSearch().Char)
	require.Equal(t, "l", session.Lines()[0])
}

func TestSession_RenameAndDelete(t *testing.T) {
	session := NewSession("guid", "old")
	session.Rename("new")
	require.Equal(t, "new", session.Name())

	session.MarkDeleted()
	require.True(t, session.IsDeleted())
	require.NotNil(t, session.DeletedAt())
}

func TestErrors(t *testing.T) {
	require.Equal(t, `session "a" not found`, (&SessionNotFoundError{Name: "a"}).Error())
	require.Equal(t, "session with guid g not found", (&SessionNotFoundError{GUID: "g"}).Error())
	require.Equal(t, "session with id 3 not found", (&SessionNotFoundError{ID: 3}).Error())
	require.Equal(t, `session "a" already exists`, (&SessionExistsError{Name: "a"}).Error())
}

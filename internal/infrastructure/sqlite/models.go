package sqlite

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/vimline/internal/sessions/domain"
	"github.com/zjrosen/vimline/internal/vim"
)

// SessionModel represents the database row for the sessions table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type SessionModel struct {
	ID         int64
	GUID       string
	Name       string
	Registers  *string // nullable, JSON encoded
	Marks      *string // nullable, JSON encoded
	LastSearch *string // nullable, JSON encoded
	Lines      *string // nullable, JSON encoded

	CreatedAt int64  // Unix timestamp
	UpdatedAt int64  // Unix timestamp
	DeletedAt *int64 // Unix timestamp, nullable
}

// JSON objects need string keys, so register and mark names are stored as
// their one-character string form.

func encodeKeys[V any](m map[rune]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func decodeKeys[V any](m map[string]V) map[rune]V {
	out := make(map[rune]V, len(m))
	for k, v := range m {
		r, size := utf8.DecodeRuneInString(k)
		if size == 0 || size != len(k) {
			continue
		}
		out[r] = v
	}
	return out
}

func marshalNullable(v any, empty bool) *string {
	if empty {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

// toSessionModel converts a domain Session entity to a database SessionModel.
func toSessionModel(s *domain.Session) *SessionModel {
	regs := s.Registers()
	marks := s.Marks()
	search := s.LastSearch()
	lines := s.Lines()

	m := &SessionModel{
		ID:         s.ID(),
		GUID:       s.GUID(),
		Name:       s.Name(),
		Registers:  marshalNullable(encodeKeys(regs), len(regs) == 0),
		Marks:      marshalNullable(encodeKeys(marks), len(marks) == 0),
		LastSearch: marshalNullable(search, search == nil),
		Lines:      marshalNullable(lines, len(lines) == 0),
		CreatedAt:  s.CreatedAt().Unix(),
		UpdatedAt:  s.UpdatedAt().Unix(),
	}
	if s.DeletedAt() != nil {
		deletedAt := s.DeletedAt().Unix()
		m.DeletedAt = &deletedAt
	}
	return m
}

// toDomain converts a database SessionModel to a domain Session entity.
// Malformed JSON columns hydrate as empty values.
func (m *SessionModel) toDomain() *domain.Session {
	var regs map[string]vim.Register
	if m.Registers != nil {
		_ = json.Unmarshal([]byte(*m.Registers), &regs)
	}
	var marks map[string]vim.Position
	if m.Marks != nil {
		_ = json.Unmarshal([]byte(*m.Marks), &marks)
	}
	var search *vim.CharSearch
	if m.LastSearch != nil {
		var cs vim.CharSearch
		if err := json.Unmarshal([]byte(*m.LastSearch), &cs); err == nil {
			search = &cs
		}
	}
	var lines []string
	if m.Lines != nil {
		_ = json.Unmarshal([]byte(*m.Lines), &lines)
	}
	var deletedAt *time.Time
	if m.DeletedAt != nil {
		t := time.Unix(*m.DeletedAt, 0)
		deletedAt = &t
	}
	return domain.ReconstituteSession(
		m.ID,
		m.GUID,
		m.Name,
		decodeKeys(regs),
		decodeKeys(marks),
		search,
		lines,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.UpdatedAt, 0),
		deletedAt,
	)
}

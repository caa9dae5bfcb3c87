package presentation

import (
	"sort"
	"time"

	"github.com/zjrosen/vimline/internal/sessions/domain"
	"github.com/zjrosen/vimline/internal/vim"
)

// SessionDTO represents a saved session for presentation
type SessionDTO struct {
	Name      string     `json:"name"`
	GUID      string     `json:"guid"`
	Registers []string   `json:"registers"`
	Marks     []string   `json:"marks"`
	Lines     int        `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EvalDTO is the result of running keys against a buffer.
type EvalDTO struct {
	Lines   []string `json:"lines"`
	Line    int      `json:"line"`
	Col     int      `json:"col"`
	Mode    string   `json:"mode"`
	Pending string   `json:"pending,omitempty"`
}

// FromDomainSession converts a domain session to a DTO
func FromDomainSession(s *domain.Session) SessionDTO {
	return SessionDTO{
		Name:      s.Name(),
		GUID:      s.GUID(),
		Registers: runeKeys(s.Registers()),
		Marks:     runeKeys(s.Marks()),
		Lines:     len(s.Lines()),
		UpdatedAt: s.UpdatedAt(),
		DeletedAt: s.DeletedAt(),
	}
}

// FromDomainSessions converts a slice of domain sessions to DTOs
func FromDomainSessions(sessions []*domain.Session) []SessionDTO {
	dtos := make([]SessionDTO, len(sessions))
	for i, s := range sessions {
		dtos[i] = FromDomainSession(s)
	}
	return dtos
}

// NewEvalDTO captures the final buffer and cursor.
func NewEvalDTO(lines []string, cur vim.Position, mode vim.Mode, pending string) EvalDTO {
	if lines == nil {
		lines = []string{}
	}
	return EvalDTO{
		Lines:   lines,
		Line:    cur.Line,
		Col:     cur.Col,
		Mode:    mode.String(),
		Pending: pending,
	}
}

// runeKeys returns the map's keys as sorted one-character strings.
func runeKeys[V any](m map[rune]V) []string {
	names := make([]rune, 0, len(m))
	for r := range m {
		names = append(names, r)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	out := make([]string, len(names))
	for i, r := range names {
		out[i] = string(r)
	}
	return out
}

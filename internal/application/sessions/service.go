package sessions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/sessions/domain"
	"github.com/zjrosen/vimline/internal/vim"
)

// ErrEmptyName is returned for blank session names.
var ErrEmptyName = errors.New("session name is required")

// Service manages named sessions on top of a repository.
type Service struct {
	repo    domain.SessionRepository
	newGUID func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithGUIDFunc replaces the GUID generator.
func WithGUIDFunc(f func() string) ServiceOption {
	return func(s *Service) { s.newGUID = f }
}

// NewService creates a service over repo.
func NewService(repo domain.SessionRepository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, newGUID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns the live session called name, or a new unsaved session when
// none exists. The bool reports whether the session is new.
func (s *Service) Open(name string) (*domain.Session, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrEmptyName
	}
	sess, err := s.repo.FindByName(name)
	if err == nil {
		return sess, false, nil
	}
	var notFound *domain.SessionNotFoundError
	if !errors.As(err, &notFound) {
		return nil, false, fmt.Errorf("opening session %q: %w", name, err)
	}
	log.Debug(log.CatDB, "Starting new session", "name", name)
	return domain.NewSession(s.newGUID(), name), true, nil
}

// Load opens name and restores its state into st. It returns the session
// and its saved buffer, which is nil for a new session.
func (s *Service) Load(name string, st *vim.SessionState) (*domain.Session, []string, error) {
	sess, created, err := s.Open(name)
	if err != nil {
		return nil, nil, err
	}
	if created {
		return sess, nil, nil
	}
	sess.Apply(st)
	log.Debug(log.CatDB, "Loaded session", "name", name, "registers", len(sess.Registers()), "marks", len(sess.Marks()))
	return sess, sess.Lines(), nil
}

// Save captures st and lines into sess and persists it.
func (s *Service) Save(sess *domain.Session, st *vim.SessionState, lines []string) error {
	sess.Capture(st, lines)
	if err := s.repo.Save(sess); err != nil {
		return fmt.Errorf("saving session %q: %w", sess.Name(), err)
	}
	log.Debug(log.CatDB, "Saved session", "name", sess.Name(), "id", sess.ID())
	return nil
}

// List returns sessions, most recently updated first.
func (s *Service) List(filter domain.ListFilter) ([]*domain.Session, error) {
	list, err := s.repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return list, nil
}

// Delete soft-deletes the session called name.
func (s *Service) Delete(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if err := s.repo.Delete(name); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

package domain

import "fmt"

// SessionNotFoundError is returned when a lookup matches no live session.
type SessionNotFoundError struct {
	Name string
	GUID string
	ID   int64
}

func (e *SessionNotFoundError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("session %q not found", e.Name)
	case e.GUID != "":
		return fmt.Sprintf("session with guid %s not found", e.GUID)
	default:
		return fmt.Sprintf("session with id %d not found", e.ID)
	}
}

// SessionExistsError is returned when saving would duplicate a live session name.
type SessionExistsError struct {
	Name string
}

func (e *SessionExistsError) Error() string {
	return fmt.Sprintf("session %q already exists", e.Name)
}

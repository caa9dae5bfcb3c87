package domain

// ListFilter provides filtering options for listing sessions.
type ListFilter struct {
	// Limit restricts the number of sessions returned.
	// If 0, no limit is applied.
	Limit int

	// IncludeDeleted includes soft-deleted sessions in results.
	// By default, deleted sessions are excluded.
	IncludeDeleted bool
}

// SessionRepository defines the persistence interface for Session entities.
type SessionRepository interface {
	// Save persists a session to the repository.
	// For new sessions (ID == 0), this creates a new record and sets the ID.
	// For existing sessions (ID > 0), this updates the existing record.
	// Returns SessionExistsError if another live session has the same name.
	Save(session *Session) error

	// FindByName retrieves a live session by name.
	// Returns SessionNotFoundError if no matching session exists.
	FindByName(name string) (*Session, error)

	// FindByGUID retrieves a live session by its GUID.
	// Returns SessionNotFoundError if no matching session exists.
	FindByGUID(guid string) (*Session, error)

	// FindByID retrieves a live session by its internal database ID.
	// Returns SessionNotFoundError if no matching session exists.
	FindByID(id int64) (*Session, error)

	// Delete soft-deletes the session with the given name.
	// Returns SessionNotFoundError if no matching session exists.
	Delete(name string) error

	// List retrieves sessions ordered by updated_at descending.
	List(filter ListFilter) ([]*Session, error)

	// Close releases any resources held by the repository.
	Close() error
}

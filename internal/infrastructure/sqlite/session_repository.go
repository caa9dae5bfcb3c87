package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/zjrosen/vimline/internal/sessions/domain"
)

// sessionColumns is the list of columns to select for session queries.
const sessionColumns = `id, guid, name, registers, marks, last_search, lines, created_at, updated_at, deleted_at`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

func newSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Ensure sessionRepository implements domain.SessionRepository.
var _ domain.SessionRepository = (*sessionRepository)(nil)

func scanSession(scanner interface{ Scan(...any) error }) (*SessionModel, error) {
	var model SessionModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Name,
		&model.Registers, &model.Marks, &model.LastSearch, &model.Lines,
		&model.CreatedAt, &model.UpdatedAt, &model.DeletedAt,
	)
	return &model, err
}

// Save persists a session to the database.
// For new sessions (ID == 0), inserts a new row and sets the session ID.
// For existing sessions (ID > 0), updates the existing row.
func (r *sessionRepository) Save(session *domain.Session) error {
	model := toSessionModel(session)

	if session.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO sessions (guid, name, registers, marks, last_search, lines, created_at, updated_at, deleted_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Name, model.Registers, model.Marks, model.LastSearch, model.Lines,
			model.CreatedAt, model.UpdatedAt, model.DeletedAt,
		)
		if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
			return &domain.SessionExistsError{Name: model.Name}
		}
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		session.SetID(id)
		return nil
	}

	_, err := r.db.Exec(
		`UPDATE sessions SET
			name = ?, registers = ?, marks = ?, last_search = ?, lines = ?, updated_at = ?, deleted_at = ?
		 WHERE id = ?`,
		model.Name, model.Registers, model.Marks, model.LastSearch, model.Lines, model.UpdatedAt, model.DeletedAt,
		model.ID,
	)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return &domain.SessionExistsError{Name: model.Name}
	}
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (r *sessionRepository) findOne(query string, notFound error, args ...any) (*domain.Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE `+query+` AND deleted_at IS NULL`, args...)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return model.toDomain(), nil
}

// FindByName retrieves a live session by name.
func (r *sessionRepository) FindByName(name string) (*domain.Session, error) {
	return r.findOne(`name = ?`, &domain.SessionNotFoundError{Name: name}, name)
}

// FindByGUID retrieves a live session by GUID.
func (r *sessionRepository) FindByGUID(guid string) (*domain.Session, error) {
	return r.findOne(`guid = ?`, &domain.SessionNotFoundError{GUID: guid}, guid)
}

// FindByID retrieves a live session by its internal database ID.
func (r *sessionRepository) FindByID(id int64) (*domain.Session, error) {
	return r.findOne(`id = ?`, &domain.SessionNotFoundError{ID: id}, id)
}

// Delete performs a soft delete by setting deleted_at.
// Returns SessionNotFoundError if no live session has the name.
func (r *sessionRepository) Delete(name string) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(
		`UPDATE sessions SET deleted_at = ?, updated_at = ?
		 WHERE name = ? AND deleted_at IS NULL`,
		now, now, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.SessionNotFoundError{Name: name}
	}
	return nil
}

// List retrieves sessions matching the filter, most recently updated first.
func (r *sessionRepository) List(filter domain.ListFilter) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	var args []any

	if !filter.IncludeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}

	query += ` ORDER BY updated_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		model, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// Close is a no-op; the connection is owned by DB.
func (r *sessionRepository) Close() error {
	return nil
}

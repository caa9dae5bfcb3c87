// Package sessions implements the application layer for persisted editing
// sessions.
//
// It bridges the domain entity (internal/sessions/domain) and the vim session
// state used by the editor:
//   - Open finds a live session by name or starts a new one with a fresh GUID
//   - Load restores registers, marks and the last character search into a
//     vim.SessionState and returns the saved buffer
//   - Save captures the state and buffer back into the repository
//
// Storage is behind domain.SessionRepository; the sqlite implementation lives
// in internal/infrastructure/sqlite.
//
// # Import Aliasing
//
// The domain package has a different name, but the application package shares
// its name with the sessions subcommand in cmd. Import it as:
//
//	appsessions "github.com/zjrosen/vimline/internal/application/sessions"
package sessions

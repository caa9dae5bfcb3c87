package cmd

import (
	"fmt"

	appsessions "github.com/zjrosen/vimline/internal/application/sessions"
	"github.com/zjrosen/vimline/internal/clipboard"
	"github.com/zjrosen/vimline/internal/editor"
	"github.com/zjrosen/vimline/internal/infrastructure/sqlite"
	"github.com/zjrosen/vimline/internal/sessions/domain"
	"github.com/zjrosen/vimline/internal/vim"
	"github.com/zjrosen/vimline/internal/vim/inputbuf"
)

// openStore opens the session database from the loaded config. The caller
// closes the returned DB.
func openStore() (*sqlite.DB, *appsessions.Service, error) {
	if cfg.Store.Path == "" {
		return nil, nil, fmt.Errorf("store.path is not set")
	}
	db, err := sqlite.NewDB(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	return db, appsessions.NewService(db.SessionRepository()), nil
}

// loadedSession is a session restored into a fresh vim state.
type loadedSession struct {
	db    *sqlite.DB
	svc   *appsessions.Service
	sess  *domain.Session
	state *vim.SessionState
	lines []string
}

// loadSession restores name, or returns an empty state when name is blank.
func loadSession(name string) (*loadedSession, error) {
	ls := &loadedSession{state: vim.NewSessionState()}
	if name == "" {
		return ls, nil
	}
	db, svc, err := openStore()
	if err != nil {
		return nil, err
	}
	sess, lines, err := svc.Load(name, ls.state)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	ls.db, ls.svc, ls.sess, ls.lines = db, svc, sess, lines
	return ls, nil
}

// save persists state and lines back to the session, if there is one.
func (ls *loadedSession) save(lines []string) error {
	if ls.sess == nil {
		return nil
	}
	return ls.svc.Save(ls.sess, ls.state, lines)
}

func (ls *loadedSession) close() {
	if ls.db != nil {
		_ = ls.db.Close()
	}
}

// newEditor builds an editor over lines configured from cfg.
func newEditor(lines []string, ls *loadedSession, name string) *editor.Editor {
	if cfg.Vim.Clipboard {
		ls.state.Registers().SetClipboard(clipboard.New())
	}
	engineOpts := []vim.EngineOption{
		vim.WithSpanCache(vim.DefaultSpanCacheTTL),
		vim.WithOptions(cfg.Vim.Options()),
	}
	opts := []editor.Option{
		editor.WithState(ls.state),
		editor.WithOptions(cfg.Vim.Options()),
		editor.WithAutoIndent(cfg.Vim.AutoIndent),
		editor.WithInputOptions(inputbuf.WithTimeout(cfg.Vim.IdleTimeout)),
		editor.WithSessionName(name),
	}
	if tracer != nil {
		opts = append(opts, editor.WithTracer(tracer.Tracer()))
		engineOpts = append(engineOpts, vim.WithTracer(tracer.Tracer()))
	}
	opts = append(opts, editor.WithEngine(vim.NewEngine(engineOpts...)))
	ed := editor.New(lines, opts...)
	if !cfg.Vim.Enabled {
		ed.SetEnabled(false)
	}
	return ed
}

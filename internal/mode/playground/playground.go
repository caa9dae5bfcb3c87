// Package playground is an interactive terminal editor for trying vim
// commands against a scratch buffer or a saved session.
package playground

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vimline/internal/config"
	"github.com/zjrosen/vimline/internal/editor"
	"github.com/zjrosen/vimline/internal/keys"
	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/pubsub"
	"github.com/zjrosen/vimline/internal/ui/toaster"
	"github.com/zjrosen/vimline/internal/watcher"
)

// SaveFunc persists the editor buffer and session state.
type SaveFunc func(ed *editor.Editor) error

// Config configures the playground.
type Config struct {
	Vim config.VimConfig
	// ConfigPath is watched for changes to the vim section. Empty disables
	// hot reload.
	ConfigPath string
	// Session names the saved session being edited, if any.
	Session string
	Save    SaveFunc
}

// Model is the Bubble Tea model wrapping an editor.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	editor   *editor.Editor
	listener *pubsub.ContinuousListener[editor.Event]
	watcher  *watcher.Watcher
	changes  <-chan struct{}

	cfg      Config
	help     help.Model
	toaster  toaster.Model
	rejected string

	width    int
	height   int
	quitting bool
}

// configReloadedMsg carries the result of re-reading the config file.
type configReloadedMsg struct {
	cfg config.Config
	err error
}

// New creates a playground over ed.
func New(ed *editor.Editor, cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		ctx:      ctx,
		cancel:   cancel,
		editor:   ed,
		listener: pubsub.NewContinuousListener[editor.Event](ctx, ed),
		cfg:      cfg,
		help:     help.New(),
		toaster:  toaster.New(),
		width:    80,
		height:   24,
	}
	if cfg.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfg.ConfigPath))
		if err == nil {
			if m.changes, err = w.Start(); err != nil {
				_ = w.Stop()
			}
		}
		if err != nil {
			log.Warn(log.CatWatcher, "Config hot reload disabled", "path", cfg.ConfigPath, "error", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listener.Listen(), m.waitForConfig())
}

// Close stops the config watcher and event subscription.
func (m Model) Close() {
	m.cancel()
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
}

// waitForConfig blocks until the watched config changes, then reloads it.
func (m Model) waitForConfig() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ctx, ch, path := m.ctx, m.changes, m.cfg.ConfigPath
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
		}
		cfg, err := config.Load(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pubsub.Event[editor.Event]:
		switch msg.Type {
		case pubsub.CommandRejected:
			m.rejected = msg.Payload.Keys
		case pubsub.CommandExecuted:
			m.rejected = ""
		}
		return m, m.listener.Listen()

	case configReloadedMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Config reload failed", msg.err)
			m.toaster, cmd = m.toaster.Show("Config error: "+msg.err.Error(), toaster.StyleError, toaster.DefaultDuration)
		} else {
			m.ApplyConfig(msg.cfg)
			m.toaster, cmd = m.toaster.Show("Config reloaded", toaster.StyleInfo, toaster.DefaultDuration)
		}
		return m, tea.Batch(cmd, m.waitForConfig())

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}
	return m, nil
}

// ApplyConfig pushes new settings into the editor and key bindings.
func (m *Model) ApplyConfig(cfg config.Config) {
	v := cfg.Vim
	m.cfg.Vim = v
	m.editor.SetOptions(v.Options())
	m.editor.SetAutoIndent(v.AutoIndent)
	m.editor.SetIdleTimeout(v.IdleTimeout)
	m.editor.SetEnabled(v.Enabled)
	keys.ApplyConfig(cfg.Keys.Quit, cfg.Keys.Save, cfg.Keys.Help)
	log.Info(log.CatConfig, "Applied config", "tab_width", v.TabWidth, "lang", v.Lang)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Playground.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, keys.Playground.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Playground.Save):
		return m.save()
	}

	if tok, ok := editorToken(msg); ok {
		m.editor.HandleKey(m.ctx, tok)
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.Save == nil {
		m.toaster, cmd = m.toaster.Show("No session to save to", toaster.StyleWarn, toaster.DefaultDuration)
		return m, cmd
	}
	if err := m.cfg.Save(m.editor); err != nil {
		log.ErrorErr(log.CatDB, "Saving session failed", err, "session", m.cfg.Session)
		m.toaster, cmd = m.toaster.Show(fmt.Sprintf("Save failed: %v", err), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	m.toaster, cmd = m.toaster.Show(fmt.Sprintf("Saved %q", m.cfg.Session), toaster.StyleSuccess, toaster.DefaultDuration)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.toaster.Overlay(m.render(), m.width, m.height)
}

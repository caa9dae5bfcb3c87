package playground

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/config"
	"github.com/zjrosen/vimline/internal/editor"
	"github.com/zjrosen/vimline/internal/keys"
	"github.com/zjrosen/vimline/internal/pubsub"
	"github.com/zjrosen/vimline/internal/vim"
)

func newModel(t *testing.T, lines []string, cfg Config) Model {
	t.Helper()
	if cfg.Vim == (config.VimConfig{}) {
		cfg.Vim = config.DefaultVim()
	}
	ed := editor.New(lines)
	m := New(ed, cfg)
	t.Cleanup(func() {
		m.Close()
		ed.Close()
		keys.ResetForTesting()
	})
	return update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func statusRow(t *testing.T, m Model) string {
	t.Helper()
	return m.statusLine(m.editor.Mode(), m.editor.Cursor())
}

func TestView_ShowsBufferAndMode(t *testing.T) {
	m := newModel(t, []string{"hello world", "second"}, Config{Session: "work"})
	view := m.View()

	assert.Contains(t, view, "vimline · work")
	assert.Contains(t, view, "ello world")
	assert.Contains(t, view, "second")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "1:1")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 12)
}

func TestView_HidesModeIndicator(t *testing.T) {
	v := config.DefaultVim()
	v.ShowModeIndicator = false
	m := newModel(t, []string{"x"}, Config{Vim: v})
	assert.NotContains(t, m.View(), "NORMAL")
}

func TestKeys_DriveEditor(t *testing.T) {
	m := newModel(t, []string{"hello world"}, Config{})
	m = typeKeys(t, m, "dw")
	assert.Equal(t, []string{"world"}, m.editor.Lines())

	m = typeKeys(t, m, "i")
	assert.Contains(t, m.View(), "INSERT")
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{" world"}, m.editor.Lines())
	assert.Equal(t, vim.ModeNormal, m.editor.Mode())
}

func TestStatus_PendingAndRejected(t *testing.T) {
	m := newModel(t, []string{"abc"}, Config{})
	m = typeKeys(t, m, "d")
	assert.Contains(t, statusRow(t, m), "d")

	m = update(t, m, pubsub.Event[editor.Event]{Type: pubsub.CommandRejected, Payload: editor.Event{Keys: "dq"}})
	assert.Contains(t, statusRow(t, m), "✗ dq")

	m = update(t, m, pubsub.Event[editor.Event]{Type: pubsub.CommandExecuted, Payload: editor.Event{Keys: "dw"}})
	assert.NotContains(t, statusRow(t, m), "✗")
}

func TestModeLabel_Languages(t *testing.T) {
	assert.Equal(t, "INSERT", ModeLabel("en", vim.ModeInsert))
	assert.Equal(t, "INSERTAR", ModeLabel("es", vim.ModeInsert))
	assert.Equal(t, "ERSETZEN", ModeLabel("de", vim.ModeReplace))
	assert.Equal(t, "可视", ModeLabel("zh", vim.ModeVisual))
	assert.Equal(t, "NORMAL", ModeLabel("fr", vim.ModeNormal), "unknown languages fall back to English")
	for lang := range modeLabels {
		assert.Contains(t, config.Languages, lang)
	}
}

func TestView_LocalizedIndicator(t *testing.T) {
	v := config.DefaultVim()
	v.Lang = "zh"
	m := newModel(t, []string{"x"}, Config{Vim: v})
	assert.Contains(t, m.View(), "普通")
}

func TestView_VisualSelection(t *testing.T) {
	m := newModel(t, []string{"hello"}, Config{})
	m = typeKeys(t, m, "vll")
	sel := m.selection(m.editor.Cursor(), m.editor.Mode())
	require.NotNil(t, sel)
	assert.Equal(t, vim.Position{}, sel.Start)
	assert.Equal(t, vim.Position{Col: 2}, sel.End)
	assert.Contains(t, m.View(), "VISUAL")
}

func TestRenderLine_ClipsWideRunes(t *testing.T) {
	m := newModel(t, []string{""}, Config{})
	out := m.renderLine("插入插入", 5, vim.Position{}, nil, 5)
	assert.Equal(t, "插入", out)
}

func TestRenderLine_ExpandsTabs(t *testing.T) {
	m := newModel(t, []string{""}, Config{})
	out := m.renderLine("\tx", 5, vim.Position{}, nil, 20)
	assert.Equal(t, "  x", out)
}

func TestScrollTop(t *testing.T) {
	assert.Equal(t, 0, scrollTop(3, 10))
	assert.Equal(t, 11, scrollTop(20, 10))
}

func TestSave(t *testing.T) {
	var saved []string
	m := newModel(t, []string{"abc"}, Config{
		Session: "work",
		Save: func(ed *editor.Editor) error {
			saved = ed.Lines()
			return nil
		},
	})
	m = typeKeys(t, m, "x")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, []string{"bc"}, saved)
	assert.Contains(t, m.toaster.Message(), `Saved "work"`)
}

func TestSave_Error(t *testing.T) {
	m := newModel(t, []string{"abc"}, Config{
		Save: func(*editor.Editor) error { return errors.New("disk full") },
	})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Save failed: disk full", m.toaster.Message())
}

func TestSave_NoSession(t *testing.T) {
	m := newModel(t, []string{"abc"}, Config{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "No session to save to", m.toaster.Message())
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t, []string{"abc"}, Config{})
	require.False(t, m.help.ShowAll)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "save session")
}

func TestQuit(t *testing.T) {
	m := newModel(t, []string{"abc"}, Config{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestConfigReloaded_Applies(t *testing.T) {
	m := newModel(t, []string{""}, Config{})
	cfg := config.Defaults()
	cfg.Vim.TabWidth = 4
	cfg.Vim.Lang = "de"
	cfg.Keys.Save = "ctrl+w"

	m = update(t, m, configReloadedMsg{cfg: cfg})
	assert.Equal(t, "Config reloaded", m.toaster.Message())
	assert.Contains(t, m.View(), "NORMAL")

	m = typeKeys(t, m, "i")
	assert.Contains(t, statusRow(t, m), "EINFÜGEN")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, []string{"    "}, m.editor.Lines())
	assert.Equal(t, []string{"ctrl+w"}, keys.Playground.Save.Keys())
}

func TestConfigReloaded_Error(t *testing.T) {
	m := newModel(t, []string{""}, Config{})
	m = update(t, m, configReloadedMsg{err: errors.New("vim.tab_width must be between 1 and 16")})
	assert.Contains(t, m.toaster.Message(), "Config error")
	assert.Equal(t, config.DefaultVim(), m.cfg.Vim, "settings unchanged")
}

func TestHotReload_FromWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newModel(t, []string{""}, Config{ConfigPath: path})
	require.NotNil(t, m.watcher)
	cmd := m.waitForConfig()
	require.NotNil(t, cmd)

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("vim:\n  tab_width: 8\n"), 0o600))

	select {
	case msg := <-msgs:
		reloaded, ok := msg.(configReloadedMsg)
		require.True(t, ok)
		require.NoError(t, reloaded.err)
		assert.Equal(t, 8, reloaded.cfg.Vim.TabWidth)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWaitForConfig_Disabled(t *testing.T) {
	m := newModel(t, []string{""}, Config{})
	assert.Nil(t, m.waitForConfig())
}

func TestEditorToken(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, editor.KeyEsc, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, editor.KeyEnter, true},
		{tea.KeyMsg{Type: tea.KeyBackspace}, editor.KeyBack, true},
		{tea.KeyMsg{Type: tea.KeyTab}, editor.KeyTab, true},
		{tea.KeyMsg{Type: tea.KeyUp}, editor.KeyUp, true},
		{tea.KeyMsg{Type: tea.KeySpace}, " ", true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("é")}, "é", true},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, "", false},
		{tea.KeyMsg{Type: tea.KeyRunes}, "", false},
	}
	for _, tt := range tests {
		got, ok := editorToken(tt.msg)
		assert.Equal(t, tt.ok, ok, tt.msg.String())
		assert.Equal(t, tt.want, got, tt.msg.String())
	}
}

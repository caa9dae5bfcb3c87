// Package toaster shows short notifications over the playground view.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vimline/internal/ui/overlay"
	"github.com/zjrosen/vimline/internal/ui/styles"
)

// Style picks the border color and icon.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the current toast. The zero value shows nothing.
type Model struct {
	message string
	style   Style
	// seq identifies the toast a DismissMsg was scheduled for.
	seq int
}

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast and returns a command that dismisses it
// after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update hides the toast when its dismiss timer fires. Timers for toasts
// that were since replaced are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if m.message == "" {
		return ""
	}
	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	var icon string
	switch m.style {
	case StyleError:
		box, icon = box.BorderForeground(styles.ToastBorderErrorColor), "✗ "
	case StyleInfo:
		box, icon = box.BorderForeground(styles.ToastBorderInfoColor), "i "
	case StyleWarn:
		box, icon = box.BorderForeground(styles.ToastBorderWarnColor), "! "
	default:
		box, icon = box.BorderForeground(styles.ToastBorderSuccessColor), "✓ "
	}
	return box.Render(icon + m.message)
}

// Overlay draws the toast in the bottom-right corner of bg.
func (m Model) Overlay(bg string, width, height int) string {
	return overlay.Place(overlay.Config{
		Width:  width,
		Height: height,
		Anchor: overlay.BottomRight,
		Margin: 1,
	}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

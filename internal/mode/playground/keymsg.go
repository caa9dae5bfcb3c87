package playground

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vimline/internal/editor"
)

// editorToken converts a terminal key into an editor token. Keys the editor
// has no use for, such as unbound ctrl chords, report false.
func editorToken(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return editor.KeyEsc, true
	case tea.KeyEnter:
		return editor.KeyEnter, true
	case tea.KeyBackspace:
		return editor.KeyBack, true
	case tea.KeyTab:
		return editor.KeyTab, true
	case tea.KeyLeft:
		return editor.KeyLeft, true
	case tea.KeyRight:
		return editor.KeyRight, true
	case tea.KeyUp:
		return editor.KeyUp, true
	case tea.KeyDown:
		return editor.KeyDown, true
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return "", false
		}
		return string(msg.Runes), true
	}
	return "", false
}

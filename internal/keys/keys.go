// Package keys contains keybinding definitions for the playground host.
//
// Only host-level actions are bound here. Every other keystroke goes to the
// editor so normal-mode commands are never shadowed.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// PlaygroundKeyMap holds the host bindings.
type PlaygroundKeyMap struct {
	Quit key.Binding
	Save key.Binding
	Help key.Binding
}

// ShortHelp implements help.KeyMap.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Help, k.Quit}}
}

func defaultPlayground() PlaygroundKeyMap {
	return PlaygroundKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save session"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "toggle help"),
		),
	}
}

// Playground is the active host keymap.
var Playground = defaultPlayground()

// ApplyConfig rebinds host actions from user config. Empty values keep the
// current binding.
func ApplyConfig(quit, save, help string) {
	rebind(&Playground.Quit, quit, "quit")
	rebind(&Playground.Save, save, "save session")
	rebind(&Playground.Help, help, "toggle help")
}

func rebind(b *key.Binding, value, desc string) {
	if value == "" {
		return
	}
	k := translateToTerminal(value)
	b.SetKeys(k)
	b.SetHelp(translateToDisplay(k), desc)
}

// ResetForTesting restores the default bindings.
func ResetForTesting() {
	Playground = defaultPlayground()
}

// translateToTerminal maps user-facing key names to what bubbletea reports.
func translateToTerminal(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	switch k {
	case "ctrl+space", "ctrl+ ":
		return "ctrl+@"
	}
	return k
}

// translateToDisplay is the inverse of translateToTerminal for help text.
func translateToDisplay(k string) string {
	if k == "ctrl+@" {
		return "ctrl+space"
	}
	return k
}

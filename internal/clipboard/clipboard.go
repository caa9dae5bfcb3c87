// Package clipboard backs the + register with the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/zjrosen/vimline/internal/vim"
)

// System implements vim.Clipboard using the OS clipboard.
type System struct{}

var _ vim.Clipboard = System{}

// Available reports whether a clipboard utility was found on this system.
func Available() bool {
	return !clipboard.Unsupported
}

// Get reads clipboard text.
func (System) Get() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// Set writes clipboard text.
func (System) Set(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard for tests and headless hosts.
type Memory struct {
	Text string
	Err  error
}

var _ vim.Clipboard = (*Memory)(nil)

// Get returns the stored text or Err.
func (m *Memory) Get() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// Set stores text unless Err is set.
func (m *Memory) Set(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}

// New returns the system clipboard when one is available, otherwise an
// in-memory one.
func New() vim.Clipboard {
	if Available() {
		return System{}
	}
	return &Memory{}
}

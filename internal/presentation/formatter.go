// Package presentation renders command output as JSON.
package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatSessions formats a list of sessions as JSON
func (f *Formatter) FormatSessions(sessions []SessionDTO) error {
	return f.encode(sessions)
}

// FormatEval formats an eval result as JSON
func (f *Formatter) FormatEval(result EvalDTO) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

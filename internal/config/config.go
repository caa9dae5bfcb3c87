// Package config provides configuration types and defaults for vimline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/tracing"
	"github.com/zjrosen/vimline/internal/vim"
	"github.com/zjrosen/vimline/internal/vim/inputbuf"
)

// Tab width bounds accepted by ValidateVim.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Supported display languages for the mode indicator.
var Languages = []string{"en", "es", "de", "zh"}

// Config holds all configuration options for vimline.
type Config struct {
	Vim     VimConfig      `mapstructure:"vim"`
	Store   StoreConfig    `mapstructure:"store"`
	Keys    KeysConfig     `mapstructure:"keys"`
	Tracing tracing.Config `mapstructure:"tracing"`
	Debug   bool           `mapstructure:"debug"`
	LogPath string         `mapstructure:"log_path"`
}

// VimConfig holds the editing preferences passed to the engine by its host.
type VimConfig struct {
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	ShowModeIndicator bool          `mapstructure:"show_mode_indicator" yaml:"show_mode_indicator"`
	AutoIndent        bool          `mapstructure:"auto_indent" yaml:"auto_indent"`
	ExpandTab         bool          `mapstructure:"expand_tab" yaml:"expand_tab"`
	TabWidth          int           `mapstructure:"tab_width" yaml:"tab_width"`
	SmartCase         bool          `mapstructure:"smart_case" yaml:"smart_case"`
	Lang              string        `mapstructure:"lang" yaml:"lang"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	Clipboard         bool          `mapstructure:"clipboard" yaml:"clipboard"`
}

// Options converts the config to operator options.
func (v VimConfig) Options() vim.Options {
	return vim.Options{TabWidth: v.TabWidth, UseSpaces: v.ExpandTab}
}

// StoreConfig holds session store settings.
type StoreConfig struct {
	// Path is the sqlite file. Default: ~/.config/vimline/sessions.db
	Path string `mapstructure:"path"`
}

// KeysConfig holds playground host keybindings. Values use bubbletea key
// names such as "ctrl+s".
type KeysConfig struct {
	Quit string `mapstructure:"quit"`
	Save string `mapstructure:"save"`
	Help string `mapstructure:"help"`
}

// DefaultConfigDir returns ~/.config/vimline, or empty if the home dir is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vimline")
}

// DefaultStorePath returns the default sqlite path.
func DefaultStorePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sessions.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultVim returns the default editing preferences.
func DefaultVim() VimConfig {
	return VimConfig{
		Enabled:           true,
		ShowModeIndicator: true,
		AutoIndent:        false,
		ExpandTab:         true,
		TabWidth:          vim.DefaultTabWidth,
		SmartCase:         false,
		Lang:              "en",
		IdleTimeout:       inputbuf.DefaultIdleTimeout,
		Clipboard:         false,
	}
}

// DefaultKeys returns the default playground keybindings.
func DefaultKeys() KeysConfig {
	return KeysConfig{Quit: "ctrl+c", Save: "ctrl+s", Help: "ctrl+h"}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Vim:     DefaultVim(),
		Store:   StoreConfig{Path: DefaultStorePath()},
		Keys:    DefaultKeys(),
		Tracing: tr,
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateVim(c.Vim); err != nil {
		return err
	}
	if err := ValidateKeybindings(c.Keys); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateVim checks editing preferences.
func ValidateVim(v VimConfig) error {
	if v.TabWidth < MinTabWidth || v.TabWidth > MaxTabWidth {
		return fmt.Errorf("vim.tab_width must be between %d and %d, got %d", MinTabWidth, MaxTabWidth, v.TabWidth)
	}
	if v.Lang != "" && !isLanguage(v.Lang) {
		return fmt.Errorf("vim.lang must be one of %s, got %q", strings.Join(Languages, ", "), v.Lang)
	}
	if v.IdleTimeout < 0 {
		return fmt.Errorf("vim.idle_timeout must not be negative, got %s", v.IdleTimeout)
	}
	return nil
}

func isLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ValidateKeybindings checks playground keybindings.
// Empty values fall back to defaults. Single printable characters are rejected
// because normal mode consumes them as commands.
func ValidateKeybindings(kb KeysConfig) error {
	bindings := []struct{ name, value string }{
		{"quit", kb.Quit}, {"save", kb.Save}, {"help", kb.Help},
	}
	seen := map[string]string{}
	for _, b := range bindings {
		name, value := b.name, b.value
		if value == "" {
			continue
		}
		if utf8.RuneCountInString(value) == 1 || value == "enter" || value == "esc" || value == "backspace" {
			return fmt.Errorf("keys.%s: %q is reserved for editing", name, value)
		}
		if other, ok := seen[value]; ok {
			return fmt.Errorf("keys.%s: %q is already bound to keys.%s", name, value, other)
		}
		seen[value] = name
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}

	if tr.Exporter != "" {
		switch tr.Exporter {
		case tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
		}
	}

	if tr.Enabled {
		if tr.Exporter == tracing.ExporterFile && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == tracing.ExporterOTLP && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vimline configuration

# Editing preferences
vim:
  enabled: true              # Enable vim keybindings in the line editor
  show_mode_indicator: true  # Show NORMAL/INSERT/VISUAL/REPLACE next to the prompt
  auto_indent: false         # Copy the current line's indent on <cr> in insert mode
  expand_tab: true           # Indent with spaces (true) or a tab character (false)
  tab_width: 2               # Columns per indent level for > and < (1-16)
  smart_case: false          # Reserved for case-aware searches
  lang: en                   # Mode indicator language: en, es, de, zh
  idle_timeout: 3s           # Clear a half-typed command after this long idle (0 disables)
  clipboard: false           # Back the + register with the system clipboard

# Session store (registers, marks and last f/t search)
# store:
#   path: ~/.config/vimline/sessions.db

# Playground keybindings (bubbletea key names)
# keys:
#   quit: ctrl+c
#   save: ctrl+s
#   help: ctrl+h

# Tracing: one span per executed command
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/vimline/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Debug logging
# debug: false
# log_path: debug.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

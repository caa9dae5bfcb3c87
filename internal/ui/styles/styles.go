// Package styles contains Lip Gloss style definitions for the playground.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vimline/internal/vim"
)

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Mode badge backgrounds
	ModeNormalColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ModeInsertColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#2E8B57"}
	ModeVisualColor  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	ModeReplaceColor = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#C0392B"}

	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = BorderFocusColor
	ToastBorderWarnColor    = StatusWarningColor

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))

	CursorStyle    = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "#D6EAF8", Dark: "#3B3B5B"})
	GutterStyle    = lipgloss.NewStyle().Foreground(TextMutedColor)
	PendingStyle   = lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ErrorStyle     = lipgloss.NewStyle().Foreground(StatusErrorColor)
)

// ModeBadgeStyle returns the badge style for m.
func ModeBadgeStyle(m vim.Mode) lipgloss.Style {
	switch m {
	case vim.ModeInsert:
		return badgeStyle.Background(ModeInsertColor)
	case vim.ModeVisual:
		return badgeStyle.Background(ModeVisualColor)
	case vim.ModeReplace:
		return badgeStyle.Background(ModeReplaceColor)
	default:
		return badgeStyle.Background(ModeNormalColor)
	}
}

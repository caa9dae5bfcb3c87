// Package overlay draws a box over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor is where the box sits inside the viewport.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
	BottomRight
)

// Config describes the viewport and the box placement.
type Config struct {
	Width  int
	Height int
	Anchor Anchor
	// Margin keeps the box away from the anchored edges.
	Margin int
}

// Place writes fg over bg, keeping the styling of the background cells on
// either side of every overlaid row.
func Place(cfg Config, fg, bg string) string {
	if fg == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, "")
	}
	fgLines := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, row := range fgLines {
		if y+i >= len(bgLines) {
			break
		}
		bgLines[y+i] = splice(bgLines[y+i], row, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at column x with row.
func splice(line, row string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(row)
	var right string
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + row + right
}

func origin(cfg Config, w, h int) (int, int) {
	var x, y int
	switch cfg.Anchor {
	case Top:
		x, y = (cfg.Width-w)/2, cfg.Margin
	case Bottom:
		x, y = (cfg.Width-w)/2, cfg.Height-h-cfg.Margin
	case BottomRight:
		x, y = cfg.Width-w-cfg.Margin, cfg.Height-h-cfg.Margin
	default:
		x, y = (cfg.Width-w)/2, (cfg.Height-h)/2
	}
	return max(x, 0), max(y, 0)
}

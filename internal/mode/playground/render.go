package playground

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/vimline/internal/keys"
	"github.com/zjrosen/vimline/internal/ui/styles"
	"github.com/zjrosen/vimline/internal/vim"
)

func (m Model) render() string {
	lines := m.editor.Lines()
	cur := m.editor.Cursor()
	mode := m.editor.Mode()

	helpView := m.help.View(keys.Playground)
	frameHeight := max(m.height-1-lipgloss.Height(helpView), 3)
	rows := frameHeight - 2
	gutter := len(strconv.Itoa(len(lines)))
	textWidth := max(m.width-2-gutter-1, 1)

	sel := m.selection(cur, mode)
	top := scrollTop(cur.Line, rows)

	var b strings.Builder
	for i := top; i < min(len(lines), top+rows); i++ {
		if i > top {
			b.WriteByte('\n')
		}
		b.WriteString(styles.GutterStyle.Render(fmt.Sprintf("%*d ", gutter, i+1)))
		b.WriteString(m.renderLine(lines[i], i, cur, sel, textWidth))
	}

	title := "vimline"
	if m.cfg.Session != "" {
		title += " · " + m.cfg.Session
	}
	frame := styles.Frame(b.String(), title, m.width, frameHeight, true)
	return lipgloss.JoinVertical(lipgloss.Left, frame, m.statusLine(mode, cur), helpView)
}

// scrollTop keeps the cursor line on screen.
func scrollTop(cursorLine, rows int) int {
	return max(cursorLine-rows+1, 0)
}

// renderLine draws one buffer line clipped to width cells, with the cursor
// cell reversed and any visual selection highlighted.
func (m Model) renderLine(line string, idx int, cur vim.Position, sel *vim.Range, width int) string {
	tab := strings.Repeat(" ", max(m.cfg.Vim.TabWidth, 1))
	var b strings.Builder
	used := 0
	gs := vim.Graphemes(line)
	for col, g := range gs {
		if g == "\t" {
			g = tab
		}
		w := runewidth.StringWidth(g)
		if used+w > width {
			break
		}
		used += w
		p := vim.Position{Line: idx, Col: col}
		switch {
		case p == cur:
			b.WriteString(styles.CursorStyle.Render(g))
		case sel != nil && inRange(*sel, p):
			b.WriteString(styles.SelectionStyle.Render(g))
		default:
			b.WriteString(g)
		}
	}
	if cur.Line == idx && cur.Col >= len(gs) && used < width {
		b.WriteString(styles.CursorStyle.Render(" "))
	}
	return b.String()
}

// selection returns the charwise visual range, or nil outside visual mode.
func (m Model) selection(cur vim.Position, mode vim.Mode) *vim.Range {
	if mode != vim.ModeVisual {
		return nil
	}
	anchor, ok := m.editor.State().VisualStart()
	if !ok {
		return nil
	}
	if cur.Before(anchor) {
		anchor, cur = cur, anchor
	}
	return &vim.Range{Start: anchor, End: cur}
}

func inRange(r vim.Range, p vim.Position) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

func (m Model) statusLine(mode vim.Mode, cur vim.Position) string {
	var left []string
	if m.cfg.Vim.ShowModeIndicator {
		left = append(left, styles.ModeBadgeStyle(mode).Render(ModeLabel(m.cfg.Vim.Lang, mode)))
	}
	if pending := m.editor.Pending(); pending != "" {
		left = append(left, styles.PendingStyle.Render(pending))
	}
	if m.rejected != "" {
		left = append(left, styles.ErrorStyle.Render("✗ "+m.rejected))
	}
	l := strings.Join(left, " ")
	r := fmt.Sprintf("%d:%d", cur.Line+1, cur.Col+1)
	pad := max(m.width-lipgloss.Width(l)-runewidth.StringWidth(r), 1)
	return styles.StatusBarStyle.Render(l + strings.Repeat(" ", pad) + r)
}

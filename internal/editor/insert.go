package editor

import (
	"slices"
	"strings"

	"github.com/zjrosen/vimline/internal/pubsub"
	"github.com/zjrosen/vimline/internal/vim"
)

func (e *Editor) handleInsert(token string) {
	cur := e.state.Cursor()
	line := e.lines[cur.Line]

	switch token {
	case KeyEsc:
		if e.enabled {
			e.setMode(vim.ModeNormal)
		}
		return
	case KeyLeft:
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col - 1})
		return
	case KeyRight:
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col + 1})
		return
	case KeyUp:
		e.moveCursor(vim.Position{Line: cur.Line - 1, Col: cur.Col})
		return
	case KeyDown:
		e.moveCursor(vim.Position{Line: cur.Line + 1, Col: cur.Col})
		return
	case KeyBack:
		e.backspace(cur)
		return
	case KeyEnter:
		e.splitLine(cur)
		return
	case KeyTab:
		token = e.opts.IndentUnit()
	}

	e.lines[cur.Line] = vim.InsertAtGrapheme(line, cur.Col, token)
	e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col + vim.GraphemeCount(token)})
	e.publish(pubsub.BufferChanged, token, "")
}

func (e *Editor) backspace(cur vim.Position) {
	if cur.Col > 0 {
		line := e.lines[cur.Line]
		deleted := vim.SliceByGraphemes(line, cur.Col-1, cur.Col)
		e.lines[cur.Line] = vim.SliceByGraphemes(line, 0, cur.Col-1) + vim.SliceByGraphemes(line, cur.Col, vim.GraphemeCount(line))
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col - 1})
		e.publish(pubsub.BufferChanged, KeyBack, deleted)
		return
	}
	if cur.Line == 0 {
		return
	}
	prev := e.lines[cur.Line-1]
	col := vim.GraphemeCount(prev)
	e.lines[cur.Line-1] = prev + e.lines[cur.Line]
	e.lines = slices.Delete(e.lines, cur.Line, cur.Line+1)
	e.moveCursor(vim.Position{Line: cur.Line - 1, Col: col})
	e.publish(pubsub.BufferChanged, KeyBack, "\n")
}

func (e *Editor) splitLine(cur vim.Position) {
	line := e.lines[cur.Line]
	n := vim.GraphemeCount(line)
	head := vim.SliceByGraphemes(line, 0, cur.Col)
	tail := vim.SliceByGraphemes(line, cur.Col, n)
	indent := ""
	if e.autoIndent {
		indent = leadingIndent(head)
		tail = strings.TrimLeft(tail, " \t")
	}
	e.lines[cur.Line] = head
	e.lines = slices.Insert(e.lines, cur.Line+1, indent+tail)
	e.moveCursor(vim.Position{Line: cur.Line + 1, Col: vim.GraphemeCount(indent)})
	e.publish(pubsub.BufferChanged, KeyEnter, "")
}

// handleReplace overwrites the grapheme under the cursor, appending at the
// end of the line.
func (e *Editor) handleReplace(token string) {
	cur := e.state.Cursor()
	line := e.lines[cur.Line]
	n := vim.GraphemeCount(line)

	switch token {
	case KeyEsc:
		e.setMode(vim.ModeNormal)
		return
	case KeyBack, KeyLeft:
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col - 1})
		return
	case KeyRight:
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col + 1})
		return
	case KeyEnter:
		e.splitLine(cur)
		return
	}
	if IsSpecial(token) {
		return
	}

	width := vim.GraphemeCount(token)
	end := min(cur.Col+width, n)
	replaced := vim.SliceByGraphemes(line, cur.Col, end)
	e.lines[cur.Line] = vim.SliceByGraphemes(line, 0, cur.Col) + token + vim.SliceByGraphemes(line, end, n)
	e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col + width})
	e.publish(pubsub.BufferChanged, token, replaced)
}

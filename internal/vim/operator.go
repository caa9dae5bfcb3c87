package vim

import "strings"

// DefaultTabWidth is the indent width used when Options.TabWidth is unset.
const DefaultTabWidth = 2

// Options parameterizes indentation for the executor.
type Options struct {
	TabWidth  int
	UseSpaces bool
}

// DefaultOptions indents with two spaces.
func DefaultOptions() Options {
	return Options{TabWidth: DefaultTabWidth, UseSpaces: true}
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return o.TabWidth
}

// IndentUnit is the text one indent level inserts.
func (o Options) IndentUnit() string {
	if o.UseSpaces {
		return strings.Repeat(" ", o.tabWidth())
	}
	return "\t"
}

// OperatorResult is the outcome of applying an operator.
type OperatorResult struct {
	Lines []string
	// Deleted is the text removed (d, c) or copied (y).
	Deleted string
	// Linewise is set when Deleted holds whole lines.
	Linewise bool
	Cursor   Position
}

// ApplyOperator applies op to rng over lines. lines is never modified; the
// result carries a fresh slice. The bool is false for operators that are not
// applied to ranges (p, P, unknown) and for ranges outside the buffer.
func ApplyOperator(op Operator, rng Range, lines []string, count int, opts Options) (OperatorResult, bool) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	rng = rng.normalized()
	if rng.Start.Line < 0 || rng.Start.Line >= len(lines) {
		return OperatorResult{}, false
	}
	if rng.End.Line >= len(lines) {
		rng.End.Line = len(lines) - 1
	}
	count = max(count, 1)

	switch op {
	case OpDelete, OpChange:
		if rng.Linewise {
			return deleteLines(lines, rng.Start.Line, rng.End.Line, op == OpChange), true
		}
		deleted, out := spliceRange(lines, rng)
		return OperatorResult{Lines: out, Deleted: deleted, Cursor: rng.Start}, true

	case OpYank:
		var text string
		if rng.Linewise {
			text = strings.Join(lines[rng.Start.Line:rng.End.Line+1], "\n")
		} else {
			text, _ = spliceRange(lines, rng)
		}
		if count > 1 {
			text = strings.TrimSuffix(strings.Repeat(text+"\n", count), "\n")
		}
		cursor := rng.Start
		if rng.Linewise {
			cursor.Col = 0
		}
		return OperatorResult{
			Lines:    cloneLines(lines),
			Deleted:  text,
			Linewise: rng.Linewise,
			Cursor:   cursor,
		}, true

	case OpIndent, OpDedent:
		return shiftLines(lines, rng.Start.Line, count, op == OpIndent, opts), true

	case OpJoin:
		return joinLines(lines, rng.Start.Line, count), true
	}

	return OperatorResult{}, false
}

// spliceRange removes a charwise range and returns the removed text and the
// remaining lines.
func spliceRange(lines []string, rng Range) (string, []string) {
	first, last := lines[rng.Start.Line], lines[rng.End.Line]
	startCol := clampCol(rng.Start.Col, GraphemeCount(first))
	endCol := rng.End.Col
	if !rng.Exclusive {
		endCol++
	}
	endCol = clampCol(endCol, GraphemeCount(last))

	head := SliceByGraphemes(first, 0, startCol)
	tail := SliceByGraphemes(last, endCol, GraphemeCount(last))

	var deleted string
	if rng.Start.Line == rng.End.Line {
		if endCol <= startCol {
			return "", cloneLines(lines)
		}
		deleted = SliceByGraphemes(first, startCol, endCol)
	} else {
		parts := make([]string, 0, rng.End.Line-rng.Start.Line+1)
		parts = append(parts, SliceByGraphemes(first, startCol, GraphemeCount(first)))
		parts = append(parts, lines[rng.Start.Line+1:rng.End.Line]...)
		parts = append(parts, SliceByGraphemes(last, 0, endCol))
		deleted = strings.Join(parts, "\n")
	}

	out := make([]string, 0, len(lines)-(rng.End.Line-rng.Start.Line))
	out = append(out, lines[:rng.Start.Line]...)
	out = append(out, head+tail)
	out = append(out, lines[rng.End.Line+1:]...)
	return deleted, out
}

// deleteLines removes whole lines. With keepEmpty a single empty line takes
// their place, as cc does.
func deleteLines(lines []string, first, last int, keepEmpty bool) OperatorResult {
	deleted := strings.Join(lines[first:last+1], "\n")

	out := make([]string, 0, len(lines))
	out = append(out, lines[:first]...)
	if keepEmpty {
		out = append(out, "")
	}
	out = append(out, lines[last+1:]...)
	if len(out) == 0 {
		out = []string{""}
	}

	line := min(first, len(out)-1)
	cursor := Position{Line: line}
	if !keepEmpty {
		cursor.Col = firstNonBlank(Graphemes(out[line]))
	}
	return OperatorResult{Lines: out, Deleted: deleted, Linewise: true, Cursor: cursor}
}

// shiftLines indents or dedents count lines starting at first.
func shiftLines(lines []string, first, count int, indent bool, opts Options) OperatorResult {
	out := cloneLines(lines)
	last := min(first+count, len(out))
	width := opts.tabWidth()
	unit := opts.IndentUnit()

	for i := first; i < last; i++ {
		line := out[i]
		if indent {
			if line != "" {
				out[i] = unit + line
			}
			continue
		}
		spaces := len(line) - len(strings.TrimLeft(line, " "))
		switch {
		case spaces > 0:
			out[i] = line[min(spaces, width):]
		case strings.HasPrefix(line, "\t"):
			out[i] = line[1:]
		}
	}

	return OperatorResult{
		Lines:  out,
		Cursor: Position{Line: first, Col: firstNonBlank(Graphemes(out[first]))},
	}
}

// joinLines merges count lines (at least two) starting at first into one,
// separated by single spaces. Each line is trimmed of spaces and tabs and
// blank lines contribute nothing.
func joinLines(lines []string, first, count int) OperatorResult {
	n := max(count, 2)
	if first+n > len(lines) {
		return OperatorResult{Lines: cloneLines(lines), Cursor: Position{Line: first}}
	}

	parts := make([]string, 0, n)
	for _, line := range lines[first : first+n] {
		if trimmed := strings.Trim(line, " \t"); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	joined := strings.Join(parts, " ")

	out := make([]string, 0, len(lines)-n+1)
	out = append(out, lines[:first]...)
	out = append(out, joined)
	out = append(out, lines[first+n:]...)

	col := 0
	if len(parts) > 1 {
		col = GraphemeCount(joined) - GraphemeCount(parts[len(parts)-1]) - 1
	}
	return OperatorResult{Lines: out, Cursor: Position{Line: first, Col: col}}
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

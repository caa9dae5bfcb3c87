// Package textdiff computes line diffs between two buffers.
package textdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change for one line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Line is one line of diff output.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs before against after line by line.
func Lines(before, after []string) []Line {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(join(before), join(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffInsert:
			op = Insert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return out
}

// join terminates every line so the last one diffs like the others.
func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Changed reports whether the diff holds any insert or delete.
func Changed(diff []Line) bool {
	for _, l := range diff {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Format renders diff with "-", "+" and " " prefixes, one line each.
func Format(diff []Line) string {
	var b strings.Builder
	for _, l := range diff {
		switch l.Op {
		case Delete:
			b.WriteString("-")
		case Insert:
			b.WriteString("+")
		default:
			b.WriteString(" ")
		}
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}

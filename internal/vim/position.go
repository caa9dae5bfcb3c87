package vim

import "fmt"

// Position is a zero-based line and grapheme column.
type Position struct {
	Line int
	Col  int
}

// String formats the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range spans Start..End. End is inclusive unless Exclusive is set, in which
// case the range stops just before End. Linewise ranges cover whole lines from
// Start.Line to End.Line and ignore the columns.
type Range struct {
	Start     Position
	End       Position
	Exclusive bool
	Linewise  bool
}

// normalized returns r with Start <= End.
func (r Range) normalized() Range {
	if r.End.Before(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// lineRange returns a linewise range over lines first..last.
func lineRange(first, last int) Range {
	if last < first {
		first, last = last, first
	}
	return Range{
		Start:    Position{Line: first},
		End:      Position{Line: last},
		Linewise: true,
	}
}

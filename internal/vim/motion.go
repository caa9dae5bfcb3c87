package vim

import "strings"

// motionKeys are the single-key motions accepted by the parser.
const motionKeys = "wWbBeE0^$hl"

// MotionResolver turns motion tokens into ranges on a single line.
// The zero value scans spans without caching.
type MotionResolver struct {
	Scanner SpanScanner
}

// ResolveMotion resolves token against line with the default scanner.
func ResolveMotion(token string, pos Position, line string) (Range, bool) {
	return MotionResolver{}.Resolve(token, pos, line)
}

// Resolve returns the range covered by moving from pos with token. The
// returned range is always normalized. The bool is false when the motion
// cannot be satisfied; the caller must then leave the buffer untouched.
//
// Mark motions (`x and 'x) need session state and are resolved by Engine.
func (r MotionResolver) Resolve(token string, pos Position, line string) (Range, bool) {
	if token == "" {
		return Range{}, false
	}
	graphemes := Graphemes(line)
	col := clampCol(pos.Col, len(graphemes))
	at := func(c int) Position { return Position{Line: pos.Line, Col: c} }
	cur := at(col)

	key, arg := token[0], token[1:]
	switch key {
	case 'f', 'F', 't', 'T':
		if arg == "" || GraphemeCount(arg) != 1 {
			return Range{}, false
		}
		forward := key == 'f' || key == 't'
		idx := scanFor(graphemes, col, arg, forward)
		if idx < 0 {
			return Range{}, false
		}
		switch key {
		case 'f':
			return Range{Start: cur, End: at(idx)}, true
		case 't':
			return Range{Start: cur, End: at(idx - 1)}, true
		case 'F':
			return Range{Start: at(idx), End: cur, Exclusive: true}, true
		default:
			return Range{Start: at(idx + 1), End: cur, Exclusive: true}, true
		}
	}

	if arg != "" {
		return Range{}, false
	}

	switch key {
	case 'w', 'W':
		for _, s := range r.spans(line, key == 'W') {
			if s.Start > col {
				return Range{Start: cur, End: at(s.Start), Exclusive: true}, true
			}
		}
		return Range{}, false

	case 'b', 'B':
		spans := r.spans(line, key == 'B')
		for i := len(spans) - 1; i >= 0; i-- {
			if spans[i].End <= col {
				return Range{Start: at(spans[i].Start), End: cur, Exclusive: true}, true
			}
		}
		return Range{}, false

	case 'e', 'E':
		// On a span's last character e moves on to the next span.
		for _, s := range r.spans(line, key == 'E') {
			if s.Contains(col) && col < s.End-1 {
				return Range{Start: cur, End: at(s.End - 1)}, true
			}
			if s.Start > col {
				return Range{Start: cur, End: at(s.End - 1)}, true
			}
		}
		return Range{}, false

	case '0':
		return Range{Start: at(0), End: cur, Exclusive: true}, true

	case '^':
		first := firstNonBlank(graphemes)
		if first < col {
			return Range{Start: at(first), End: cur, Exclusive: true}, true
		}
		return Range{Start: cur, End: at(first), Exclusive: true}, true

	case '$':
		last := max(len(graphemes)-1, 0)
		return Range{Start: cur, End: at(last)}.normalized(), true

	case 'h':
		if col == 0 {
			return Range{}, false
		}
		return Range{Start: at(col - 1), End: cur, Exclusive: true}, true

	case 'l':
		if col >= len(graphemes) {
			return Range{}, false
		}
		return Range{Start: cur, End: at(col + 1), Exclusive: true}, true
	}

	return Range{}, false
}

func (r MotionResolver) spans(line string, big bool) []Span {
	scanner := r.Scanner
	if scanner == nil {
		scanner = RegexpScanner{}
	}
	kind := SpanWord
	if big {
		kind = SpanBigWord
	}
	return scanner.Spans(line, kind)
}

// isMotion reports whether token is a complete single-line motion.
func isMotion(token string) bool {
	return len(token) == 1 && strings.ContainsRune(motionKeys, rune(token[0]))
}

// scanFor finds the nearest grapheme equal to target, excluding col itself.
func scanFor(graphemes []string, col int, target string, forward bool) int {
	if forward {
		for i := col + 1; i < len(graphemes); i++ {
			if graphemes[i] == target {
				return i
			}
		}
		return -1
	}
	for i := min(col, len(graphemes)) - 1; i >= 0; i-- {
		if graphemes[i] == target {
			return i
		}
	}
	return -1
}

// firstNonBlank returns the column of the first non-blank grapheme, or the
// last column when the line is blank.
func firstNonBlank(graphemes []string) int {
	for i, g := range graphemes {
		if !isBlank(g) {
			return i
		}
	}
	return max(len(graphemes)-1, 0)
}

// clampCol limits col to [0, n].
func clampCol(col, n int) int {
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}

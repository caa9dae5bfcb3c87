package vim

// TextObjectMatch is a resolved text object on one line.
type TextObjectMatch struct {
	Range Range
	Text  string
}

// delimiterPairs maps bracket object types to their open and close keys.
var delimiterPairs = map[TextObjectType][2]string{
	ObjectParen:   {"(", ")"},
	ObjectBracket: {"[", "]"},
	ObjectBrace:   {"{", "}"},
}

// FindTextObject resolves obj around col on line with the default scanner.
func FindTextObject(line string, col int, obj TextObject) (TextObjectMatch, bool) {
	return MotionResolver{}.TextObject(line, col, obj)
}

// TextObject resolves obj around col on line. Only the cursor line is
// searched; pairs spanning lines are never matched. Positions carry line 0
// and the caller rebases them.
func (r MotionResolver) TextObject(line string, col int, obj TextObject) (TextObjectMatch, bool) {
	graphemes := Graphemes(line)
	if col < 0 || col >= len(graphemes) {
		return TextObjectMatch{}, false
	}

	var lo, hi int
	switch obj.Type {
	case ObjectWord, ObjectBigWord:
		for _, s := range r.spans(line, obj.Type == ObjectBigWord) {
			if !s.Contains(col) {
				continue
			}
			start := s.Start
			if obj.Inclusive && start > 0 {
				start--
			}
			return TextObjectMatch{
				Range: Range{Start: Position{Col: start}, End: Position{Col: s.End}, Exclusive: true},
				Text:  SliceByGraphemes(line, start, s.End),
			}, true
		}
		return TextObjectMatch{}, false

	case ObjectQuote:
		var ok bool
		lo, hi, ok = findQuotePair(graphemes, col, string(obj.Char))
		if !ok {
			return TextObjectMatch{}, false
		}

	case ObjectParen, ObjectBracket, ObjectBrace:
		pair := delimiterPairs[obj.Type]
		var ok bool
		lo, hi, ok = findBracketPair(graphemes, col, pair[0], pair[1])
		if !ok {
			return TextObjectMatch{}, false
		}

	default:
		return TextObjectMatch{}, false
	}

	if obj.Inclusive {
		return TextObjectMatch{
			Range: Range{Start: Position{Col: lo}, End: Position{Col: hi}},
			Text:  SliceByGraphemes(line, lo, hi+1),
		}, true
	}
	return TextObjectMatch{
		Range: Range{Start: Position{Col: lo + 1}, End: Position{Col: hi}, Exclusive: true},
		Text:  SliceByGraphemes(line, lo+1, hi),
	}, true
}

// findQuotePair pairs unescaped quotes left to right and returns the pair
// containing col.
func findQuotePair(graphemes []string, col int, quote string) (int, int, bool) {
	open := -1
	for i, g := range graphemes {
		if g != quote || isEscaped(graphemes, i) {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		if col >= open && col <= i {
			return open, i, true
		}
		open = -1
	}
	return -1, -1, false
}

// findBracketPair returns the innermost balanced pair containing col.
func findBracketPair(graphemes []string, col int, openKey, closeKey string) (int, int, bool) {
	var stack []int
	best := [2]int{-1, -1}
	for i, g := range graphemes {
		switch {
		case g == openKey && !isEscaped(graphemes, i):
			stack = append(stack, i)
		case g == closeKey && !isEscaped(graphemes, i):
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if col < open || col > i {
				continue
			}
			if best[0] < 0 || i-open < best[1]-best[0] {
				best = [2]int{open, i}
			}
		}
	}
	return best[0], best[1], best[0] >= 0
}

// isEscaped reports whether the grapheme at pos follows an odd number of
// backslashes.
func isEscaped(graphemes []string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && graphemes[i] == `\`; i-- {
		n++
	}
	return n%2 == 1
}

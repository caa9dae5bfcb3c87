package vim

// Columns throughout this package are grapheme indices, not byte offsets.
// A Position.Col of 3 on "héllo" addresses the second 'l' even though the
// accented letter occupies two bytes. The helpers below convert between
// grapheme indices and byte offsets so that regexp matches (byte based) and
// slicing stay consistent with cursor columns.

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for idx <= 0 and len(s) for idx past the end.
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// ByteToGraphemeOffset converts a byte offset to the index of the grapheme
// containing it. Offsets at or past len(s) map to the grapheme count.
func ByteToGraphemeOffset(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		return GraphemeCount(s)
	}

	idx := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		pos += len(cluster)
		if offset < pos {
			return idx
		}
		idx++
	}
	return idx
}

// SliceByGraphemes returns s[start:end] measured in graphemes, clamped to the
// string bounds.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	from := GraphemeToByteOffset(s, start)
	to := GraphemeToByteOffset(s, end)
	if from >= len(s) {
		return ""
	}
	return s[from:to]
}

// InsertAtGrapheme inserts text before the grapheme at idx.
func InsertAtGrapheme(s string, idx int, text string) string {
	at := GraphemeToByteOffset(s, idx)
	return s[:at] + text + s[at:]
}

// DisplayWidth returns the terminal cell width of s.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func isBlank(g string) bool {
	return g == " " || g == "\t"
}

// FirstNonBlank returns the column of the first non-blank grapheme in line.
// A blank line yields its last column.
func FirstNonBlank(line string) int {
	return firstNonBlank(Graphemes(line))
}

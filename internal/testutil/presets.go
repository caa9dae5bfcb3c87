package testutil

import "time"

// WithStandardSessions adds three live sessions and one deleted one.
//
//	work     registers a, b; mark m; last search fx
//	notes    linewise register a; saved buffer
//	scratch  empty, oldest
//	old      deleted
func (b *Builder) WithStandardSessions() *Builder {
	now := time.Now()
	return b.
		WithSession("work",
			Register('a', "alpha"), Register('b', "beta"),
			Mark('m', 0, 4), LastSearch('x', true, false),
			UpdatedAt(now)).
		WithSession("notes",
			LinewiseRegister('a', "line one\n"),
			Lines("first line", "second line"),
			UpdatedAt(now.Add(-time.Hour))).
		WithSession("scratch", UpdatedAt(now.Add(-24*time.Hour))).
		WithSession("old", Deleted())
}

package vim

import (
	"context"
	"regexp"
	"time"

	"github.com/zjrosen/vimline/internal/cachemanager"
)

// SpanKind selects how a line is split into spans.
type SpanKind int

const (
	// SpanWord splits on runs of letters, digits, marks and underscores.
	SpanWord SpanKind = iota
	// SpanBigWord splits on runs of non-blank characters.
	SpanBigWord
)

func (k SpanKind) String() string {
	if k == SpanBigWord {
		return "WORD"
	}
	return "word"
}

// Span is a half-open grapheme interval [Start, End) of a line.
type Span struct {
	Start int
	End   int
}

// Contains reports whether col falls inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End
}

// SpanScanner splits a line into word or WORD spans.
// Returned slices are shared and must not be modified.
type SpanScanner interface {
	Spans(line string, kind SpanKind) []Span
}

var (
	wordPattern    = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+`)
	bigWordPattern = regexp.MustCompile(`[^ \t]+`)
)

// RegexpScanner scans spans with no caching.
type RegexpScanner struct{}

// Spans implements SpanScanner.
func (RegexpScanner) Spans(line string, kind SpanKind) []Span {
	pattern := wordPattern
	if kind == SpanBigWord {
		pattern = bigWordPattern
	}

	matches := pattern.FindAllStringIndex(line, -1)
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		start := ByteToGraphemeOffset(line, m[0])
		end := ByteToGraphemeOffset(line, m[1])
		if end <= start {
			continue
		}
		// Merge matches that split a single grapheme.
		if n := len(spans); n > 0 && spans[n-1].End > start {
			spans[n-1].End = end
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

type spanQuery struct {
	line string
	kind SpanKind
}

// CachedScanner memoizes span tables per line. Hosts that resolve many
// motions against the same line (counted motions, ; repetition) avoid
// rescanning it.
type CachedScanner struct {
	reader *cachemanager.ReadThroughCache[string, []Span, spanQuery]
	ttl    time.Duration
}

// DefaultSpanCacheTTL is how long a line's span table stays cached.
const DefaultSpanCacheTTL = 5 * time.Minute

// WithSpanCache caches span tables in memory for ttl. Non-positive values
// use DefaultSpanCacheTTL.
func WithSpanCache(ttl time.Duration) EngineOption {
	if ttl <= 0 {
		ttl = DefaultSpanCacheTTL
	}
	return func(e *Engine) {
		cache := cachemanager.NewInMemoryCacheManager[string, []Span]("spans", ttl, 2*ttl)
		e.resolver.Scanner = NewCachedScanner(cache, e.resolver.Scanner, ttl)
	}
}

// NewCachedScanner wraps next with a read-through cache.
func NewCachedScanner(cache cachemanager.CacheManager[string, []Span], next SpanScanner, ttl time.Duration) *CachedScanner {
	if next == nil {
		next = RegexpScanner{}
	}
	return &CachedScanner{
		reader: cachemanager.NewReadThroughCache(
			cache,
			func(_ context.Context, q spanQuery) ([]Span, error) {
				return next.Spans(q.line, q.kind), nil
			},
			false,
		),
		ttl: ttl,
	}
}

// Spans implements SpanScanner.
func (c *CachedScanner) Spans(line string, kind SpanKind) []Span {
	q := spanQuery{line: line, kind: kind}
	spans, _ := c.reader.Get(context.Background(), kind.String()+":"+line, q, c.ttl)
	return spans
}

package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/vimline/internal/pubsub"
	"github.com/zjrosen/vimline/internal/testutil"
	"github.com/zjrosen/vimline/internal/tracing"
	"github.com/zjrosen/vimline/internal/vim"
	"github.com/zjrosen/vimline/internal/vim/inputbuf"
)

// drain returns every event already published to ch.
func drain(ch <-chan pubsub.Event[Event]) []pubsub.Event[Event] {
	var events []pubsub.Event[Event]
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func eventTypes(events []pubsub.Event[Event]) []pubsub.EventType {
	types := make([]pubsub.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func newEditor(t *testing.T, lines []string, opts ...Option) *Editor {
	t.Helper()
	e := New(lines, opts...)
	t.Cleanup(e.Close)
	return e
}

func TestEditor_DeleteWord(t *testing.T) {
	e := newEditor(t, []string{"hello world"})
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "dw")

	require.Equal(t, []string{"world"}, e.Lines())
	require.Equal(t, vim.Position{}, e.Cursor())
	require.Empty(t, e.Pending())

	events := drain(ch)
	require.Equal(t, []pubsub.EventType{pubsub.CommandExecuted, pubsub.BufferChanged}, eventTypes(events))
	require.Equal(t, "dw", events[0].Payload.Keys)
	require.Equal(t, "hello ", events[0].Payload.Deleted)
	reg, ok := e.State().Registers().Get(vim.DefaultRegister)
	require.True(t, ok)
	require.Equal(t, "hello ", reg.Text)
}

func TestEditor_JoinWithCount(t *testing.T) {
	e := newEditor(t, []string{"a", "b", "c"})
	e.Feed(context.Background(), "3J")
	require.Equal(t, []string{"a b c"}, e.Lines())
}

func TestEditor_PendingUntilComplete(t *testing.T) {
	e := newEditor(t, []string{"foo bar"}, WithInputOptions(inputbuf.WithClock(testutil.NewFakeClock())))
	e.Feed(context.Background(), "d")
	require.Equal(t, "d", e.Pending())
	e.Feed(context.Background(), "i")
	require.Equal(t, "di", e.Pending())
	require.Equal(t, vim.ModeNormal, e.Mode(), "i after an operator is a text object prefix")
	e.Feed(context.Background(), "w")
	require.Empty(t, e.Pending())
	require.Equal(t, []string{" bar"}, e.Lines())
}

func TestEditor_InsertText(t *testing.T) {
	e := newEditor(t, []string{"world"})
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "ihello <esc>")

	require.Equal(t, []string{"hello world"}, e.Lines())
	require.Equal(t, vim.ModeNormal, e.Mode())
	require.Equal(t, vim.Position{Col: 5}, e.Cursor(), "esc steps back onto the last typed character")

	types := eventTypes(drain(ch))
	require.Equal(t, pubsub.ModeChanged, types[0])
	require.Equal(t, pubsub.ModeChanged, types[len(types)-1])
}

func TestEditor_ModeEntryKeys(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		keys   string
		want   []string
		cursor vim.Position
	}{
		{"append", []string{"ab"}, "aX<esc>", []string{"aXb"}, vim.Position{Col: 1}},
		{"append end", []string{"ab"}, "AX<esc>", []string{"abX"}, vim.Position{Col: 2}},
		{"insert first non-blank", []string{"  ab"}, "$IX<esc>", []string{"  Xab"}, vim.Position{Col: 2}},
		{"open below", []string{"one", "three"}, "otwo<esc>", []string{"one", "two", "three"}, vim.Position{Line: 1, Col: 2}},
		{"open above", []string{"two"}, "Oone<esc>", []string{"one", "two"}, vim.Position{Col: 2}},
		{"empty buffer", nil, "ihi<esc>", []string{"hi"}, vim.Position{Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.lines)
			e.Feed(context.Background(), tt.keys)
			require.Equal(t, tt.want, e.Lines())
			require.Equal(t, tt.cursor, e.Cursor())
			require.Equal(t, vim.ModeNormal, e.Mode())
		})
	}
}

func TestEditor_InsertEditing(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		keys   string
		want   []string
		cursor vim.Position
	}{
		{"split line", []string{"abcd"}, "lli<cr>", []string{"ab", "cd"}, vim.Position{Line: 1}},
		{"backspace", []string{"abc"}, "A<bs>", []string{"ab"}, vim.Position{Col: 2}},
		{"backspace joins", []string{"ab", "cd"}, "ji<bs>", []string{"abcd"}, vim.Position{Col: 2}},
		{"backspace at start", []string{"ab"}, "i<bs>", []string{"ab"}, vim.Position{}},
		{"tab", []string{"x"}, "i<tab>", []string{"  x"}, vim.Position{Col: 2}},
		{"arrows", []string{"abc"}, "i<right><right>X", []string{"abXc"}, vim.Position{Col: 3}},
		{"grapheme backspace", []string{"né"}, "A<bs>", []string{"n"}, vim.Position{Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.lines)
			e.Feed(context.Background(), tt.keys)
			require.Equal(t, tt.want, e.Lines())
			require.Equal(t, tt.cursor, e.Cursor())
			require.Equal(t, vim.ModeInsert, e.Mode())
		})
	}
}

func TestEditor_AutoIndent(t *testing.T) {
	e := newEditor(t, []string{"  foo"}, WithAutoIndent(true))
	e.Feed(context.Background(), "obar<cr>baz")
	require.Equal(t, []string{"  foo", "  bar", "  baz"}, e.Lines())
	require.Equal(t, vim.Position{Line: 2, Col: 5}, e.Cursor())
}

func TestEditor_TabUsesOptions(t *testing.T) {
	e := newEditor(t, []string{""}, WithOptions(vim.Options{TabWidth: 4, UseSpaces: false}))
	e.Feed(context.Background(), "i<tab>")
	require.Equal(t, []string{"\t"}, e.Lines())

	e.SetOptions(vim.Options{TabWidth: 4, UseSpaces: true})
	e.Feed(context.Background(), "<tab>")
	require.Equal(t, []string{"\t    "}, e.Lines())
}

func TestEditor_ChangeInnerWord(t *testing.T) {
	e := newEditor(t, []string{"foo bar"})
	e.Feed(context.Background(), "ciw")
	require.Equal(t, vim.ModeInsert, e.Mode())
	require.Equal(t, []string{" bar"}, e.Lines())

	e.Feed(context.Background(), "baz<esc>")
	require.Equal(t, []string{"baz bar"}, e.Lines())
	require.Equal(t, vim.Position{Col: 2}, e.Cursor())
}

func TestEditor_Aliases(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"x", "x", "bc"},
		{"count x", "2x", "c"},
		{"X", "$X", "ac"},
		{"D", "lD", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, []string{"abc"})
			e.Feed(context.Background(), tt.keys)
			require.Equal(t, []string{tt.want}, e.Lines())
			require.Equal(t, vim.ModeNormal, e.Mode())
		})
	}
}

func TestEditor_ChangeToEnd(t *testing.T) {
	e := newEditor(t, []string{"abc"})
	e.Feed(context.Background(), "lCZ<esc>")
	require.Equal(t, []string{"aZ"}, e.Lines())
}

func TestEditor_VerticalMovement(t *testing.T) {
	e := newEditor(t, []string{"one", "two", "three"})

	e.Feed(context.Background(), "j")
	require.Equal(t, 1, e.Cursor().Line)
	e.Feed(context.Background(), "5j")
	require.Equal(t, 2, e.Cursor().Line)
	e.Feed(context.Background(), "<up>")
	require.Equal(t, 1, e.Cursor().Line)
	e.Feed(context.Background(), "9k")
	require.Equal(t, 0, e.Cursor().Line)
	require.Empty(t, e.Pending())
}

func TestEditor_VerticalMovementClampsColumn(t *testing.T) {
	e := newEditor(t, []string{"three", "to"})
	e.Feed(context.Background(), "$j")
	require.Equal(t, vim.Position{Line: 1, Col: 1}, e.Cursor())
}

func TestEditor_RejectsInvalid(t *testing.T) {
	e := newEditor(t, []string{"abc"})
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "dq")

	require.Empty(t, e.Pending())
	require.Equal(t, []string{"abc"}, e.Lines())
	events := drain(ch)
	require.Len(t, events, 1)
	require.Equal(t, pubsub.CommandRejected, events[0].Type)
	require.Equal(t, "dq", events[0].Payload.Keys)

	e.Feed(context.Background(), "dw")
	require.Equal(t, []string{""}, e.Lines(), "editor recovers after a rejected command")
}

func TestEditor_UnresolvedCommandIsRejected(t *testing.T) {
	e := newEditor(t, []string{"abc"})
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "fz")

	events := drain(ch)
	require.Len(t, events, 1)
	require.Equal(t, pubsub.CommandRejected, events[0].Type)
	require.Equal(t, vim.Position{}, e.Cursor())
}

func TestEditor_BackspaceEditsPending(t *testing.T) {
	e := newEditor(t, []string{"abc def"})
	e.Feed(context.Background(), "d<bs>w")
	require.Equal(t, []string{"abc def"}, e.Lines(), "w alone is a motion")
	require.Equal(t, vim.Position{Col: 4}, e.Cursor())

	e.Feed(context.Background(), "<bs>")
	require.Equal(t, vim.Position{Col: 3}, e.Cursor(), "empty buffer backspace moves left")
}

func TestEditor_EscapeClearsPending(t *testing.T) {
	e := newEditor(t, []string{"abc"})
	e.Feed(context.Background(), "2d<esc>")
	require.Empty(t, e.Pending())
	require.Equal(t, vim.ModeNormal, e.Mode())
}

func TestEditor_IdleTimeout(t *testing.T) {
	clock := testutil.NewFakeClock()
	e := newEditor(t, []string{"abc"}, WithInputOptions(inputbuf.WithClock(clock)))
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "d")
	require.Equal(t, "d", e.Pending())

	clock.Advance(inputbuf.DefaultIdleTimeout)
	require.Empty(t, e.Pending())

	events := drain(ch)
	require.Len(t, events, 1)
	require.Equal(t, pubsub.UpdatedEvent, events[0].Type)

	e.Feed(context.Background(), "w")
	require.Equal(t, []string{"abc"}, e.Lines(), "stale operator is gone")
}

func TestEditor_Visual(t *testing.T) {
	e := newEditor(t, []string{"hello"})
	ch := e.Subscribe(context.Background())

	e.Feed(context.Background(), "vld")

	require.Equal(t, []string{"llo"}, e.Lines())
	require.Equal(t, vim.ModeNormal, e.Mode())

	var executed []string
	for _, ev := range drain(ch) {
		if ev.Type == pubsub.CommandExecuted {
			executed = append(executed, ev.Payload.Keys)
		}
	}
	require.Equal(t, []string{"l", "vd"}, executed)
}

func TestEditor_VisualYankToRegister(t *testing.T) {
	e := newEditor(t, []string{"hello world"})
	e.Feed(context.Background(), `ve"ay`)

	require.Equal(t, []string{"hello world"}, e.Lines())
	reg, ok := e.State().Registers().Get('a')
	require.True(t, ok)
	require.Equal(t, "hello", reg.Text)
	require.Equal(t, vim.ModeNormal, e.Mode())
}

func TestEditor_VisualChange(t *testing.T) {
	e := newEditor(t, []string{"hello world"})
	e.Feed(context.Background(), "vecbye<esc>")
	require.Equal(t, []string{"bye world"}, e.Lines())
}

func TestEditor_VisualEscape(t *testing.T) {
	e := newEditor(t, []string{"hello"})
	e.Feed(context.Background(), "vl<esc>")
	require.Equal(t, vim.ModeNormal, e.Mode())
	require.Equal(t, vim.Position{Col: 1}, e.Cursor())

	e.Feed(context.Background(), "vv")
	require.Equal(t, vim.ModeNormal, e.Mode())
	_, ok := e.State().VisualStart()
	require.False(t, ok)
}

func TestEditor_Replace(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		keys   string
		want   []string
		cursor vim.Position
	}{
		{"overwrite", []string{"abc"}, "Rxy<esc>", []string{"xyc"}, vim.Position{Col: 1}},
		{"append past end", []string{"ab"}, "lRxyz<esc>", []string{"axyz"}, vim.Position{Col: 3}},
		{"backspace moves left", []string{"abc"}, "lR<bs>Z<esc>", []string{"Zbc"}, vim.Position{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.lines)
			e.Feed(context.Background(), tt.keys)
			require.Equal(t, tt.want, e.Lines())
			require.Equal(t, tt.cursor, e.Cursor())
			require.Equal(t, vim.ModeNormal, e.Mode())
		})
	}
}

func TestEditor_Disabled(t *testing.T) {
	e := newEditor(t, []string{""})
	e.SetEnabled(false)

	e.Feed(context.Background(), "dw<esc>x")

	require.Equal(t, []string{"dwx"}, e.Lines())
	require.Equal(t, vim.ModeInsert, e.Mode())
}

func TestEditor_SetLinesClampsCursor(t *testing.T) {
	e := newEditor(t, []string{"one", "two", "three"})
	e.Feed(context.Background(), "jj$")
	require.Equal(t, vim.Position{Line: 2, Col: 4}, e.Cursor())

	ch := e.Subscribe(context.Background())
	e.SetLines([]string{"ab"})
	require.Equal(t, vim.Position{Col: 1}, e.Cursor())
	require.Equal(t, "ab", e.Text())
	require.Equal(t, []pubsub.EventType{pubsub.BufferChanged}, eventTypes(drain(ch)))
}

func TestEditor_LinesAreCopies(t *testing.T) {
	src := []string{"abc"}
	e := newEditor(t, src)
	src[0] = "mutated"
	got := e.Lines()
	got[0] = "also mutated"
	require.Equal(t, []string{"abc"}, e.Lines())
}

func TestEditor_PasteAfterYank(t *testing.T) {
	e := newEditor(t, []string{"one", "two"})
	e.Feed(context.Background(), "yyjp")
	require.Equal(t, []string{"one", "two", "one"}, e.Lines())
}

func TestEditor_RecordsKeySpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	e := newEditor(t, []string{"hello world"},
		WithTracer(provider.Tracer("test")),
		WithSessionName("work"),
	)

	e.Feed(context.Background(), "dw")

	var keys []string
	for _, span := range recorder.Ended() {
		if span.Name() != tracing.SpanEditorKey {
			continue
		}
		attrs := map[string]any{}
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
		require.Equal(t, "work", attrs[tracing.AttrSession])
		keys = append(keys, attrs[tracing.AttrKey].(string))
	}
	require.Equal(t, []string{"d", "w"}, keys)

	var execute int
	for _, span := range recorder.Ended() {
		if span.Name() == tracing.SpanVimExecute {
			execute++
			require.Equal(t, span.Parent().SpanID(), findSpan(t, recorder, tracing.SpanEditorKey, "w"), "engine span is a child of the key span")
		}
	}
	require.Equal(t, 1, execute)
}

func findSpan(t *testing.T, recorder *tracetest.SpanRecorder, name, key string) trace.SpanID {
	t.Helper()
	for _, span := range recorder.Ended() {
		if span.Name() != name {
			continue
		}
		for _, kv := range span.Attributes() {
			if string(kv.Key) == tracing.AttrKey && kv.Value.AsString() == key {
				return span.SpanContext().SpanID()
			}
		}
	}
	require.Fail(t, "span not found", "%s %s", name, key)
	return trace.SpanID{}
}

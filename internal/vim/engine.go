package vim

import (
	"context"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/tracing"
)

// Result is what the host applies after a command executes.
type Result struct {
	Lines   []string
	Cursor  Position
	Deleted string
	// Changed reports whether Lines differs from the input buffer.
	Changed bool
	Mode    Mode
}

// Engine resolves commands against a buffer and applies them, keeping the
// session's registers, marks, cursor and mode current.
type Engine struct {
	resolver MotionResolver
	opts     Options
	tracer   trace.Tracer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithScanner sets the span scanner used by word motions and text objects.
func WithScanner(s SpanScanner) EngineOption {
	return func(e *Engine) { e.resolver.Scanner = s }
}

// WithOptions sets the indentation options passed to the executor.
func WithOptions(o Options) EngineOption {
	return func(e *Engine) { e.opts = o }
}

// WithTracer records a span per executed command.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		opts:   DefaultOptions(),
		tracer: noop.NewTracerProvider().Tracer("vim"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOptions replaces the indentation options.
func (e *Engine) SetOptions(o Options) {
	e.opts = o
}

// Execute applies cmd at the session cursor. The bool is false when the
// command could not be resolved; the buffer and session are then unchanged.
func (e *Engine) Execute(ctx context.Context, st *SessionState, lines []string, cmd Command) (Result, bool) {
	_, span := e.tracer.Start(ctx, tracing.SpanVimExecute, trace.WithAttributes(
		attribute.String(tracing.AttrCommandKeys, cmd.String()),
		attribute.String(tracing.AttrOperator, cmd.Operator.String()),
		attribute.Int(tracing.AttrCount, cmd.Count),
		attribute.String(tracing.AttrMode, st.Mode().String()),
	))
	defer span.End()

	if len(lines) == 0 {
		lines = []string{""}
	}
	res, ok := e.execute(st, lines, cmd)
	span.SetAttributes(attribute.Bool(tracing.AttrResolved, ok))
	if !ok {
		log.Debug(log.CatEngine, "Command not applied", "keys", cmd.String(), "cursor", st.Cursor().String())
		return Result{}, false
	}

	last := cmd
	if cmd.TextObject != nil {
		obj := *cmd.TextObject
		last.TextObject = &obj
	}
	st.lastCommand = &last
	st.cursor = res.Cursor
	res.Mode = st.Mode()

	log.Debug(log.CatEngine, "Executed command",
		"keys", cmd.String(),
		"cursor", res.Cursor.String(),
		"changed", res.Changed)
	return res, true
}

// ExecuteVisual applies op to the visual selection (anchor to cursor,
// inclusive) and returns to normal mode, or insert mode for change.
func (e *Engine) ExecuteVisual(ctx context.Context, st *SessionState, lines []string, op Operator, register rune) (Result, bool) {
	anchor, ok := st.VisualStart()
	if !ok || !op.takesMotion() {
		return Result{}, false
	}
	_, span := e.tracer.Start(ctx, tracing.SpanVimExecute, trace.WithAttributes(
		attribute.String(tracing.AttrOperator, op.String()),
		attribute.String(tracing.AttrMode, ModeVisual.String()),
	))
	defer span.End()

	if len(lines) == 0 {
		lines = []string{""}
	}
	rng := Range{Start: anchor, End: st.Cursor()}.normalized()
	count := 1
	if op == OpIndent || op == OpDedent {
		count = rng.End.Line - rng.Start.Line + 1
	}
	res, ok := e.apply(st, lines, Command{Operator: op, Register: register}, rng, count)
	span.SetAttributes(attribute.Bool(tracing.AttrResolved, ok))
	if !ok {
		return Result{}, false
	}
	if op != OpChange {
		st.SetMode(ModeNormal)
	}
	st.visualStart = nil
	st.cursor = res.Cursor
	res.Mode = st.Mode()
	log.Debug(log.CatEngine, "Executed visual operator", "operator", op.String(), "changed", res.Changed)
	return res, true
}

func (e *Engine) execute(st *SessionState, lines []string, cmd Command) (Result, bool) {
	cursor := clampCursor(st.Cursor(), lines, true)

	if cmd.Mark != 0 {
		st.SetMark(cmd.Mark, cursor)
		return unchanged(lines, cursor), true
	}

	switch cmd.Operator {
	case OpPasteAfter, OpPasteBefore:
		return e.paste(st, lines, cursor, cmd)
	case OpJoin:
		res, ok := ApplyOperator(OpJoin, Range{Start: cursor, End: cursor}, lines, cmd.Count, e.opts)
		return e.result(lines, res), ok
	}

	if cmd.IsLinewise() {
		first := cursor.Line
		last := first
		if cmd.Operator == OpDelete || cmd.Operator == OpChange {
			last = min(first+cmd.EffectiveCount()-1, len(lines)-1)
		}
		return e.apply(st, lines, cmd, lineRange(first, last), cmd.Count)
	}

	if cmd.TextObject != nil {
		match, ok := e.resolver.TextObject(lines[cursor.Line], cursor.Col, *cmd.TextObject)
		if !ok {
			return Result{}, false
		}
		rng := match.Range
		rng.Start.Line, rng.End.Line = cursor.Line, cursor.Line
		return e.apply(st, lines, cmd, rng, cmd.Count)
	}

	rng, ok := e.resolveRange(st, lines, cursor, cmd)
	if !ok {
		return Result{}, false
	}

	if cmd.Operator == OpNone {
		target := rng.End
		if rng.Start != cursor {
			target = rng.Start
		}
		if mark, ok := markTarget(st, cmd.Motion); ok {
			target = mark
		}
		if rng.Linewise {
			target.Col = firstNonBlank(Graphemes(lines[target.Line]))
		}
		return unchanged(lines, clampCursor(target, lines, true)), true
	}

	count := cmd.Count
	switch cmd.Operator {
	case OpDelete, OpChange:
		count = 1
	case OpIndent, OpDedent:
		if !cmd.HasCount() {
			count = rng.End.Line - rng.Start.Line + 1
		}
	}
	return e.apply(st, lines, cmd, rng, count)
}

// resolveRange resolves the command's motion, repeating it for counts on
// bare motions, delete and change.
func (e *Engine) resolveRange(st *SessionState, lines []string, cursor Position, cmd Command) (Range, bool) {
	if strings.HasPrefix(cmd.Motion, "`") || strings.HasPrefix(cmd.Motion, "'") {
		return resolveMark(st, lines, cursor, cmd.Motion)
	}

	line := lines[cursor.Line]
	rng, ok := e.resolver.Resolve(cmd.Motion, cursor, line)
	if !ok {
		return Range{}, false
	}

	repeat := 1
	switch cmd.Operator {
	case OpNone, OpDelete, OpChange:
		repeat = cmd.EffectiveCount()
	}
	for i := 1; i < repeat; i++ {
		from := rng.End
		if rng.Start.Before(cursor) {
			from = rng.Start
		}
		next, ok := e.resolver.Resolve(cmd.Motion, from, line)
		if !ok || next == rng {
			break
		}
		if next.Start.Before(rng.Start) {
			rng.Start = next.Start
		}
		if rng.End.Before(next.End) {
			rng.End = next.End
			rng.Exclusive = next.Exclusive
		}
	}
	return rng, true
}

// resolveMark resolves `x (exact position) and 'x (linewise) motions.
func resolveMark(st *SessionState, lines []string, cursor Position, motion string) (Range, bool) {
	keys := []rune(motion)
	if len(keys) != 2 {
		return Range{}, false
	}
	mark, ok := st.Mark(keys[1])
	if !ok || mark.Line >= len(lines) {
		return Range{}, false
	}
	if keys[0] == '\'' {
		return lineRange(cursor.Line, mark.Line), true
	}
	mark = clampCursor(mark, lines, true)
	return Range{Start: cursor, End: mark, Exclusive: true}.normalized(), true
}

// markTarget returns the mark a bare `x or 'x motion jumps to.
func markTarget(st *SessionState, motion string) (Position, bool) {
	keys := []rune(motion)
	if len(keys) != 2 || (keys[0] != '`' && keys[0] != '\'') {
		return Position{}, false
	}
	return st.Mark(keys[1])
}

// apply runs the executor and records deleted or yanked text.
func (e *Engine) apply(st *SessionState, lines []string, cmd Command, rng Range, count int) (Result, bool) {
	res, ok := ApplyOperator(cmd.Operator, rng, lines, count, e.opts)
	if !ok {
		return Result{}, false
	}

	switch cmd.Operator {
	case OpDelete, OpChange, OpYank:
		if res.Deleted != "" || res.Linewise {
			st.registers.Store(cmd.Register, res.Deleted, res.Linewise, cmd.Operator == OpYank)
		}
	}

	out := e.result(lines, res)
	if cmd.Operator == OpChange {
		st.SetMode(ModeInsert)
		out.Cursor = clampCursor(res.Cursor, res.Lines, false)
	}
	return out, true
}

func (e *Engine) result(before []string, res OperatorResult) Result {
	return Result{
		Lines:   res.Lines,
		Cursor:  clampCursor(res.Cursor, res.Lines, true),
		Deleted: res.Deleted,
		Changed: !slices.Equal(before, res.Lines),
	}
}

// paste inserts a register after (p) or before (P) the cursor, count times.
func (e *Engine) paste(st *SessionState, lines []string, cursor Position, cmd Command) (Result, bool) {
	reg, ok := st.registers.Get(cmd.Register)
	if !ok || (reg.Text == "" && !reg.Linewise) {
		return Result{}, false
	}
	n := cmd.EffectiveCount()
	after := cmd.Operator == OpPasteAfter

	if reg.Linewise {
		block := strings.Split(reg.Text, "\n")
		inserted := make([]string, 0, len(block)*n)
		for range n {
			inserted = append(inserted, block...)
		}
		at := cursor.Line
		if after {
			at++
		}
		out := make([]string, 0, len(lines)+len(inserted))
		out = append(out, lines[:at]...)
		out = append(out, inserted...)
		out = append(out, lines[at:]...)
		pos := Position{Line: at, Col: firstNonBlank(Graphemes(out[at]))}
		return Result{Lines: out, Cursor: pos, Changed: true}, true
	}

	text := strings.Repeat(reg.Text, n)
	line := lines[cursor.Line]
	col := cursor.Col
	if after && GraphemeCount(line) > 0 {
		col++
	}
	merged := strings.Split(InsertAtGrapheme(line, col, text), "\n")

	out := make([]string, 0, len(lines)+len(merged)-1)
	out = append(out, lines[:cursor.Line]...)
	out = append(out, merged...)
	out = append(out, lines[cursor.Line+1:]...)

	pos := Position{Line: cursor.Line, Col: col}
	if !strings.Contains(text, "\n") {
		pos.Col = col + GraphemeCount(text) - 1
	}
	return Result{Lines: out, Cursor: clampCursor(pos, out, true), Changed: true}, true
}

func unchanged(lines []string, cursor Position) Result {
	return Result{Lines: cloneLines(lines), Cursor: cursor}
}

// clampCursor keeps p inside the buffer. In normal mode the cursor sits on a
// character; otherwise it may rest one past the end of the line.
func clampCursor(p Position, lines []string, normal bool) Position {
	if len(lines) == 0 {
		return Position{}
	}
	p.Line = min(max(p.Line, 0), len(lines)-1)
	n := GraphemeCount(lines[p.Line])
	limit := n
	if normal {
		limit = max(n-1, 0)
	}
	p.Col = min(max(p.Col, 0), limit)
	return p
}

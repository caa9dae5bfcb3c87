// Package editor drives the vim engine from a stream of key tokens.
//
// Normal-mode keys accumulate in an input buffer until they parse as a
// complete command, which the engine then applies to the editor's lines.
// Insert, replace, and visual mode keystrokes are handled here, since the
// engine only knows about commands. Every change is published as an Event.
package editor

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/pubsub"
	"github.com/zjrosen/vimline/internal/tracing"
	"github.com/zjrosen/vimline/internal/vim"
	"github.com/zjrosen/vimline/internal/vim/inputbuf"
)

// Event is the payload published for every editor change.
type Event struct {
	Lines  []string
	Cursor vim.Position
	Mode   vim.Mode
	// Keys is the command text for executed or rejected commands.
	Keys    string
	Deleted string
}

// aliases expand single keys the parser does not know into commands it does.
var aliases = map[rune]string{
	'x': "dl",
	'X': "dh",
	'D': "d$",
	'C': "c$",
}

// Editor owns a buffer of lines and a vim session. It is safe for concurrent
// use; calls are serialized.
type Editor struct {
	mu sync.Mutex

	engine *vim.Engine
	state  *vim.SessionState
	input  *inputbuf.Buffer
	broker *pubsub.Broker[Event]
	tracer trace.Tracer

	lines      []string
	opts       vim.Options
	enabled    bool
	autoIndent bool
	session    string
}

// Option configures an Editor.
type Option func(*Editor)

// WithState uses st instead of a fresh session.
func WithState(st *vim.SessionState) Option {
	return func(e *Editor) { e.state = st }
}

// WithEngine uses engine instead of a default one.
func WithEngine(engine *vim.Engine) Option {
	return func(e *Editor) { e.engine = engine }
}

// WithInputOptions configures the pending-command buffer.
func WithInputOptions(opts ...inputbuf.Option) Option {
	return func(e *Editor) {
		e.input = inputbuf.New(append(opts, inputbuf.WithIdleHook(e.onIdle))...)
	}
}

// WithOptions sets the indentation options.
func WithOptions(o vim.Options) Option {
	return func(e *Editor) { e.opts = o }
}

// WithAutoIndent copies the current indent onto new lines.
func WithAutoIndent(on bool) Option {
	return func(e *Editor) { e.autoIndent = on }
}

// WithTracer records an editor.key span per handled key.
func WithTracer(t trace.Tracer) Option {
	return func(e *Editor) { e.tracer = t }
}

// WithSessionName tags spans with the persisted session name.
func WithSessionName(name string) Option {
	return func(e *Editor) { e.session = name }
}

// New creates an editor over lines. An empty buffer holds one empty line.
func New(lines []string, opts ...Option) *Editor {
	e := &Editor{
		broker:  pubsub.NewBroker[Event](),
		tracer:  noop.NewTracerProvider().Tracer("editor"),
		opts:    vim.DefaultOptions(),
		enabled: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = vim.NewSessionState()
	}
	if e.input == nil {
		e.input = inputbuf.New(inputbuf.WithIdleHook(e.onIdle))
	}
	if e.engine == nil {
		e.engine = vim.NewEngine(vim.WithSpanCache(0), vim.WithOptions(e.opts), vim.WithTracer(e.tracer))
	}
	e.engine.SetOptions(e.opts)
	e.setLines(lines)
	return e
}

// Subscribe returns a channel of editor events until ctx is done.
func (e *Editor) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return e.broker.Subscribe(ctx)
}

// Broker exposes the event broker for Bubble Tea listeners.
func (e *Editor) Broker() *pubsub.Broker[Event] {
	return e.broker
}

// Close stops publishing events.
func (e *Editor) Close() {
	e.input.Clear()
	e.broker.Close()
}

// Lines returns a copy of the buffer.
func (e *Editor) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.lines)
}

// Text returns the buffer joined with newlines.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.lines, "\n")
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() vim.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Cursor()
}

// Mode returns the current mode.
func (e *Editor) Mode() vim.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Mode()
}

// Pending returns keys typed toward an incomplete command.
func (e *Editor) Pending() string {
	return e.input.String()
}

// State returns the session. Callers must not mutate it while keys are
// being handled.
func (e *Editor) State() *vim.SessionState {
	return e.state
}

// SetLines replaces the buffer and clamps the cursor.
func (e *Editor) SetLines(lines []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setLines(lines)
	e.publish(pubsub.BufferChanged, "", "")
}

func (e *Editor) setLines(lines []string) {
	e.lines = slices.Clone(lines)
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.moveCursor(e.state.Cursor())
}

// SetOptions updates indentation options.
func (e *Editor) SetOptions(o vim.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = o
	e.engine.SetOptions(o)
}

// SetAutoIndent toggles insert-mode auto indent.
func (e *Editor) SetAutoIndent(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.autoIndent = on
}

// SetIdleTimeout changes the pending-command timeout.
func (e *Editor) SetIdleTimeout(d time.Duration) {
	e.input.SetTimeout(d)
}

// SetEnabled turns vim handling on or off. When off every key edits text
// as in insert mode.
func (e *Editor) SetEnabled(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = on
	if !on {
		e.input.Clear()
		e.setMode(vim.ModeInsert)
	}
}

// Feed tokenizes keys and handles each token in order.
func (e *Editor) Feed(ctx context.Context, keys string) {
	for _, tok := range Tokenize(keys) {
		e.HandleKey(ctx, tok)
	}
}

// HandleKey processes one token: a special key such as KeyEsc, or text.
func (e *Editor) HandleKey(ctx context.Context, token string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	attrs := []attribute.KeyValue{
		attribute.String(tracing.AttrKey, token),
		attribute.String(tracing.AttrMode, e.state.Mode().String()),
	}
	if e.session != "" {
		attrs = append(attrs, attribute.String(tracing.AttrSession, e.session))
	}
	ctx, span := e.tracer.Start(ctx, tracing.SpanEditorKey, trace.WithAttributes(attrs...))
	defer span.End()

	if !e.enabled {
		e.handleInsert(token)
		return
	}
	e.dispatch(ctx, token)
}

func (e *Editor) dispatch(ctx context.Context, token string) {
	switch e.state.Mode() {
	case vim.ModeInsert:
		e.handleInsert(token)
	case vim.ModeReplace:
		e.handleReplace(token)
	case vim.ModeVisual:
		e.handleVisual(ctx, token)
	default:
		e.handleNormal(ctx, token)
	}
}

func (e *Editor) handleNormal(ctx context.Context, token string) {
	switch token {
	case KeyEsc:
		e.input.Clear()
		return
	case KeyBack:
		if _, ok := e.input.Pop(); ok {
			return
		}
		token = "h"
	case KeyLeft:
		token = "h"
	case KeyRight:
		token = "l"
	case KeyUp:
		token = "k"
	case KeyDown:
		token = "j"
	case KeyEnter:
		token = "j"
	case KeyTab:
		return
	}

	for i, r := range token {
		if e.input.Len() == 0 && e.enterMode(r) {
			if rest := token[i+utf8.RuneLen(r):]; rest != "" {
				e.dispatch(ctx, rest)
			}
			return
		}
		e.pushCommandKey(ctx, r)
	}
}

// pushCommandKey adds r to the pending command and executes it if complete.
func (e *Editor) pushCommandKey(ctx context.Context, r rune) {
	e.input.Push(r)
	cmd, status := e.input.Parse(e.state)
	switch status {
	case vim.StatusComplete:
		e.execute(ctx, cmd)
		return
	case vim.StatusPending:
		return
	}

	prefix := strings.TrimSuffix(e.input.String(), string(r))
	if expansion, ok := aliases[r]; ok {
		if cmd, status := vim.Parse(e.state, prefix+expansion); status == vim.StatusComplete {
			e.input.Clear()
			e.execute(ctx, cmd)
			return
		}
	}
	if (r == 'j' || r == 'k') && isCount(prefix) {
		e.input.Clear()
		e.moveVertical(r, countOf(prefix))
		return
	}

	keys := e.input.String()
	e.input.Clear()
	log.Debug(log.CatEditor, "Rejected input", "keys", keys)
	e.publish(pubsub.CommandRejected, keys, "")
}

func (e *Editor) execute(ctx context.Context, cmd vim.Command) {
	before := e.state.Mode()
	res, ok := e.engine.Execute(ctx, e.state, e.lines, cmd)
	if !ok {
		e.publish(pubsub.CommandRejected, cmd.String(), "")
		return
	}
	e.lines = res.Lines
	e.publish(pubsub.CommandExecuted, cmd.String(), res.Deleted)
	if res.Changed {
		e.publish(pubsub.BufferChanged, cmd.String(), res.Deleted)
	}
	if res.Mode != before {
		e.publish(pubsub.ModeChanged, cmd.String(), "")
	}
}

// enterMode handles keys that switch modes when no command is pending.
func (e *Editor) enterMode(r rune) bool {
	cur := e.state.Cursor()
	line := e.lines[cur.Line]
	n := vim.GraphemeCount(line)

	switch r {
	case 'i':
		e.setMode(vim.ModeInsert)
	case 'a':
		e.setMode(vim.ModeInsert)
		e.moveCursor(vim.Position{Line: cur.Line, Col: min(cur.Col+1, n)})
	case 'I':
		e.setMode(vim.ModeInsert)
		e.moveCursor(vim.Position{Line: cur.Line, Col: vim.FirstNonBlank(line)})
	case 'A':
		e.setMode(vim.ModeInsert)
		e.moveCursor(vim.Position{Line: cur.Line, Col: n})
	case 'o', 'O':
		at := cur.Line + 1
		if r == 'O' {
			at = cur.Line
		}
		indent := ""
		if e.autoIndent {
			indent = leadingIndent(line)
		}
		e.lines = slices.Insert(e.lines, at, indent)
		e.setMode(vim.ModeInsert)
		e.moveCursor(vim.Position{Line: at, Col: vim.GraphemeCount(indent)})
		e.publish(pubsub.BufferChanged, string(r), "")
	case 'R':
		e.setMode(vim.ModeReplace)
	case 'v':
		e.setMode(vim.ModeVisual)
	default:
		return false
	}
	return true
}

func (e *Editor) handleVisual(ctx context.Context, token string) {
	switch token {
	case KeyEsc:
		e.input.Clear()
		e.setMode(vim.ModeNormal)
		return
	case KeyLeft:
		token = "h"
	case KeyRight:
		token = "l"
	case KeyUp:
		token = "k"
	case KeyDown:
		token = "j"
	}
	if IsSpecial(token) {
		return
	}

	for _, r := range token {
		pending := e.input.String()
		if pending == "" {
			switch r {
			case 'v':
				e.setMode(vim.ModeNormal)
				return
			case 'i', 'a':
				// Text objects would parse as a delete.
				continue
			}
		}
		if op, ok := visualOperator(r); ok {
			if register, ok := registerPrefix(pending); ok {
				e.input.Clear()
				e.executeVisual(ctx, op, register)
				return
			}
		}
		e.pushCommandKey(ctx, r)
	}
}

func visualOperator(r rune) (vim.Operator, bool) {
	switch op := vim.Operator(r); op {
	case vim.OpDelete, vim.OpChange, vim.OpYank, vim.OpIndent, vim.OpDedent:
		return op, true
	}
	if r == 'x' {
		return vim.OpDelete, true
	}
	return vim.OpNone, false
}

// registerPrefix accepts an empty pending buffer or a lone `"r` prefix.
func registerPrefix(pending string) (rune, bool) {
	if pending == "" {
		return 0, true
	}
	rs := []rune(pending)
	if len(rs) == 2 && rs[0] == '"' && vim.ValidRegister(rs[1]) {
		return rs[1], true
	}
	return 0, false
}

func (e *Editor) executeVisual(ctx context.Context, op vim.Operator, register rune) {
	before := e.state.Mode()
	keys := "v" + string(rune(op))
	res, ok := e.engine.ExecuteVisual(ctx, e.state, e.lines, op, register)
	if !ok {
		e.publish(pubsub.CommandRejected, keys, "")
		return
	}
	e.lines = res.Lines
	e.publish(pubsub.CommandExecuted, keys, res.Deleted)
	if res.Changed {
		e.publish(pubsub.BufferChanged, keys, res.Deleted)
	}
	if res.Mode != before {
		e.publish(pubsub.ModeChanged, "", "")
	}
}

func (e *Editor) moveVertical(r rune, count int) {
	cur := e.state.Cursor()
	line := cur.Line + count
	if r == 'k' {
		line = cur.Line - count
	}
	line = max(0, min(line, len(e.lines)-1))
	e.moveCursor(vim.Position{Line: line, Col: cur.Col})
}

// setMode switches mode and publishes when it changed. Leaving insert or
// replace mode steps the cursor back onto the last typed character.
func (e *Editor) setMode(m vim.Mode) {
	before := e.state.Mode()
	if before == m {
		return
	}
	e.state.SetMode(m)
	if m == vim.ModeNormal && (before == vim.ModeInsert || before == vim.ModeReplace) {
		cur := e.state.Cursor()
		e.moveCursor(vim.Position{Line: cur.Line, Col: cur.Col - 1})
	}
	e.publish(pubsub.ModeChanged, "", "")
}

// moveCursor clamps p to the buffer. Normal and visual mode keep the cursor
// on a character; insert and replace mode allow the end of the line.
func (e *Editor) moveCursor(p vim.Position) {
	p.Line = max(0, min(p.Line, len(e.lines)-1))
	n := vim.GraphemeCount(e.lines[p.Line])
	limit := n
	if e.enabled && (e.state.Mode() == vim.ModeNormal || e.state.Mode() == vim.ModeVisual) {
		limit = max(n-1, 0)
	}
	p.Col = max(0, min(p.Col, limit))
	e.state.SetCursor(p)
}

func (e *Editor) publish(t pubsub.EventType, keys, deleted string) {
	e.broker.Publish(t, Event{
		Lines:   slices.Clone(e.lines),
		Cursor:  e.state.Cursor(),
		Mode:    e.state.Mode(),
		Keys:    keys,
		Deleted: deleted,
	})
}

// onIdle runs on the input buffer's timer when a partial command expires.
func (e *Editor) onIdle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.publish(pubsub.UpdatedEvent, "", "")
}

func isCount(s string) bool {
	if s == "" {
		return true
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func countOf(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return max(n, 1)
}

func leadingIndent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

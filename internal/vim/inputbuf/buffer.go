// Package inputbuf accumulates normal-mode keystrokes until they form a
// complete command, discarding stale partial input after an idle timeout.
package inputbuf

import (
	"sync"
	"time"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/vim"
)

// DefaultIdleTimeout clears a partial command after three seconds without
// input.
const DefaultIdleTimeout = 3000 * time.Millisecond

// Buffer holds pending keystrokes. The idle timer fires on the clock's
// goroutine, so all methods lock.
type Buffer struct {
	mu      sync.Mutex
	keys    []rune
	clock   Clock
	timeout time.Duration
	timer   Timer
	// gen invalidates callbacks of timers that were stopped too late.
	gen    uint64
	onIdle func()
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithClock sets the clock that drives the idle timer.
func WithClock(c Clock) Option {
	return func(b *Buffer) { b.clock = c }
}

// WithTimeout sets the idle timeout. Non-positive values disable it.
func WithTimeout(d time.Duration) Option {
	return func(b *Buffer) { b.timeout = d }
}

// WithIdleHook is called after the idle timer clears a non-empty buffer,
// for hosts that display pending keys.
func WithIdleHook(f func()) Option {
	return func(b *Buffer) { b.onIdle = f }
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{clock: RealClock{}, timeout: DefaultIdleTimeout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetTimeout changes the idle timeout for subsequent keystrokes.
func (b *Buffer) SetTimeout(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeout = d
}

// Push appends a key and restarts the idle timer.
func (b *Buffer) Push(key rune) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.keys = append(b.keys, key)
	b.restartLocked()
}

// Pop removes and returns the last key.
func (b *Buffer) Pop() (rune, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.keys) == 0 {
		return 0, false
	}
	key := b.keys[len(b.keys)-1]
	b.keys = b.keys[:len(b.keys)-1]
	if len(b.keys) == 0 {
		b.stopLocked()
	}
	return key, true
}

// Clear empties the buffer and cancels the idle timer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.keys = nil
	b.stopLocked()
}

// String returns the pending keys.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.keys)
}

// Len returns the number of pending keys.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.keys)
}

// Parse parses the pending keys. A complete command clears the buffer;
// otherwise the keys are kept so that later keystrokes can extend them.
func (b *Buffer) Parse(st *vim.SessionState) (vim.Command, vim.ParseStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	input := string(b.keys)
	cmd, status := vim.Parse(st, input)
	if status == vim.StatusComplete {
		b.keys = nil
		b.stopLocked()
	}
	log.Debug(log.CatInput, "Parsed input", "keys", input, "status", status)
	return cmd, status
}

func (b *Buffer) restartLocked() {
	b.stopLocked()
	if b.timeout <= 0 {
		return
	}
	gen := b.gen
	b.timer = b.clock.AfterFunc(b.timeout, func() { b.expire(gen) })
}

func (b *Buffer) stopLocked() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Buffer) expire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || len(b.keys) == 0 {
		b.mu.Unlock()
		return
	}
	stale := string(b.keys)
	b.keys = nil
	b.timer = nil
	hook := b.onIdle
	b.mu.Unlock()

	log.Debug(log.CatInput, "Idle timeout cleared input", "keys", stale)
	if hook != nil {
		hook()
	}
}

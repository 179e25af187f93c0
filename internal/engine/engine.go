package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/engine/macro"
	"github.com/dshills/keyline/internal/event"
	"github.com/dshills/keyline/internal/logging"
)

// Engine drives one buffer through the operation log.
type Engine struct {
	mu sync.Mutex

	// Core components
	buf     *buffer.Buffer
	history *history.History
	macros  *macro.Recorder

	// Notification
	bus          *event.Bus
	pending      []buffer.Change
	listeners    []listenerEntry
	nextListener uint64
	detach       func()

	// Configuration
	limit       history.Limit
	initContent string
	logger      *logging.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		limit:  history.Infinite(),
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.buf == nil {
		if e.initContent != "" {
			e.buf = buffer.NewFromString(e.initContent)
		} else {
			e.buf = buffer.New()
		}
	}
	if e.macros == nil {
		e.macros = macro.NewRecorder()
	}
	e.history = history.New(e.limit)
	e.logger = e.logger.WithComponent("engine")
	e.attach(e.buf)

	return e
}

// attach makes b the driven buffer and queues its changes for delivery.
func (e *Engine) attach(b *buffer.Buffer) {
	if e.detach != nil {
		e.detach()
	}
	e.buf = b
	e.detach = b.AddListener(buffer.ListenerFunc(func(c buffer.Change) {
		e.pending = append(e.pending, c)
	}))
}

// Execute applies op and returns nil or a named error. It is the only call
// that mutates buffer content.
func (e *Engine) Execute(op history.Operation) error {
	e.mu.Lock()
	err := e.execute(op)
	changes, listeners := e.takePendingLocked()
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug("execute %s failed: %v", op, err)
	} else {
		e.logger.Debug("execute %s", op)
	}
	e.deliver(changes, listeners)
	return err
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// TextRange returns the text in [begin, end).
func (e *Engine) TextRange(begin, end int) (s string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverPrecondition(&err)
	return e.buf.TextRange(begin, end), nil
}

// Len returns the number of runes in the buffer.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineCount()
}

// At returns the rune at offset.
func (e *Engine) At(offset int) (rune, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.At(offset)
}

// LineAtCursor returns the line holding the cursor.
func (e *Engine) LineAtCursor() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineAtCursor()
}

// FindRangeOf locates the text object of the given kind around cursor.
func (e *Engine) FindRangeOf(cursor int, kind buffer.ObjectKind) (start, end buffer.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.FindRangeOf(cursor, kind)
}

// PositionAt maps offset to its line and line start.
func (e *Engine) PositionAt(offset int) (p buffer.Position, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverPrecondition(&err)
	return e.buf.PositionAt(offset), nil
}

// IsDirty reports whether the buffer has unsaved changes.
func (e *Engine) IsDirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.IsDirty()
}

// BufferID returns the identity of the driven buffer.
func (e *Engine) BufferID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.ID()
}

// ============================================================================
// Cursor Operations
// ============================================================================

// Cursor returns the cursor position.
func (e *Engine) Cursor() buffer.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Cursor()
}

// SetCursor moves the cursor. It returns false if offset exceeds the
// buffer length.
func (e *Engine) SetCursor(offset int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.SetCursor(offset)
}

// MoveCursor applies a motion and returns the new cursor position.
func (e *Engine) MoveCursor(kind buffer.MoveKind) buffer.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.MoveCursor(kind)
}

// ============================================================================
// History
// ============================================================================

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redo entries.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoLog returns the recorded edits, oldest first.
func (e *Engine) UndoLog() []history.Operation {
	entries := e.history.UndoEntries()
	ops := make([]history.Operation, len(entries))
	for i, entry := range entries {
		ops[i] = entry.Op
	}
	return ops
}

// SetHistoryLimit changes the history limit at runtime.
func (e *Engine) SetHistoryLimit(l history.Limit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limit = l
	e.history.SetLimit(l)
	e.logger.Info("history limit set to %s", l)
}

// HistoryLimit returns the current history limit.
func (e *Engine) HistoryLimit() history.Limit {
	return e.history.Limit()
}

// Macros returns the macro recorder.
func (e *Engine) Macros() *macro.Recorder {
	return e.macros
}

// recoverPrecondition converts a buffer precondition panic into an error
// for the current call. Other panics propagate.
func recoverPrecondition(err *error) {
	r := recover()
	if r == nil {
		return
	}
	pe, ok := r.(*buffer.PreconditionError)
	if !ok {
		panic(r)
	}
	*err = fmt.Errorf("%w: %w", ErrPrecondition, pe)
}

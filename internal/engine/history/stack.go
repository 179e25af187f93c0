package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one record on the undo or redo stack.
//
// On the undo stack Op is the executed edit. On the redo stack Op is the
// inverse that was applied and Origin is the edit it reverted. Cursor is
// the cursor offset to restore when the entry is reverted. Entries with the
// same non-zero Group are popped together by PopRedo.
type Entry struct {
	Op     Operation
	Origin Operation
	Cursor int
	Group  uint64
	Time   time.Time
}

// History manages undo/redo stacks for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []Entry
	redoStack []Entry

	limit     Limit
	lastGroup uint64
}

// New creates a new history with the given limit.
func New(limit Limit) *History {
	return &History{limit: limit}
}

// Push records an executed edit and clears the redo stack.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	h.pushUndoLocked(e)
}

// PushUndo records an entry without touching the redo stack.
// Redo uses it to move an entry back onto the undo stack.
func (h *History) PushUndo(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushUndoLocked(e)
}

func (h *History) pushUndoLocked(e Entry) {
	if h.limit.Kind == LimitNone {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	h.undoStack = append(h.undoStack, e)
	h.trimLocked()
}

// trimLocked drops the oldest undo entries beyond the limit.
func (h *History) trimLocked() {
	if h.limit.allows(len(h.undoStack)) {
		return
	}
	keep := 0
	if h.limit.Kind == LimitBounded {
		keep = h.limit.N
	}
	excess := len(h.undoStack) - keep
	clear(h.undoStack[:excess])
	h.undoStack = h.undoStack[excess:]
}

// PopUndo removes and returns the most recent undo entry.
func (h *History) PopUndo() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return e, true
}

// PushRedo records an applied inverse on the redo stack.
func (h *History) PushRedo(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit.Kind == LimitNone {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	h.redoStack = append(h.redoStack, e)
}

// PopRedo removes and returns the most recent redo entry together with
// every entry below it that shares its group, most recent first.
func (h *History) PopRedo() ([]Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.redoStack)
	if n == 0 {
		return nil, false
	}
	top := h.redoStack[n-1]
	i := n - 1
	if top.Group != 0 {
		for i > 0 && h.redoStack[i-1].Group == top.Group {
			i--
		}
	}

	popped := make([]Entry, 0, n-i)
	for j := n - 1; j >= i; j-- {
		popped = append(popped, h.redoStack[j])
	}
	h.redoStack = h.redoStack[:i]
	return popped, true
}

// NextGroup returns a fresh group id.
func (h *History) NextGroup() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastGroup++
	return h.lastGroup
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// UndoEntries returns a copy of the undo stack, oldest first.
func (h *History) UndoEntries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.undoStack...)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// SetLimit changes the limit. If the undo stack is larger, the oldest
// entries are removed. Disabling history also clears the redo stack.
func (h *History) SetLimit(l Limit) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.limit = l
	h.trimLocked()
	if l.Kind == LimitNone {
		h.redoStack = nil
	}
}

// Limit returns the current limit.
func (h *History) Limit() Limit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}

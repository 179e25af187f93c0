package buffer

// ChangeKind categorizes a content change.
type ChangeKind uint8

const (
	// ChangeInsertion is emitted when text is inserted at the cursor.
	ChangeInsertion ChangeKind = iota
	// ChangeForwardDeletion is emitted when the rune after the cursor is deleted.
	ChangeForwardDeletion
	// ChangeBackwardDeletion is emitted when the rune before the cursor is removed.
	ChangeBackwardDeletion
)

// String returns the string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsertion:
		return "insertion"
	case ChangeForwardDeletion:
		return "forward-deletion"
	case ChangeBackwardDeletion:
		return "backward-deletion"
	default:
		return "unknown"
	}
}

// Change describes one content change. Offset is the anchor of the change:
// where the inserted text begins, or where the deleted rune used to be.
// Exactly one of Char and Text is meaningful: Text is set for bulk inserts.
type Change struct {
	BufferID string
	Kind     ChangeKind
	Offset   int
	Char     rune
	Text     string
}

// Payload returns the changed text regardless of whether it was a single
// rune or a bulk insert.
func (c Change) Payload() string {
	if c.Text != "" {
		return c.Text
	}
	return string(c.Char)
}

// Listener observes content changes. OnChange is called synchronously after
// the mutation completes, so the listener sees the post-mutation state.
type Listener interface {
	OnChange(c Change)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(c Change)

// OnChange calls f(c).
func (f ListenerFunc) OnChange(c Change) {
	f(c)
}

type listenerEntry struct {
	id       uint64
	listener Listener
}

// AddListener registers l and returns a function that unregisters it.
// The buffer never depends on the presence or behavior of listeners.
func (b *Buffer) AddListener(l Listener) (remove func()) {
	b.nextListener++
	id := b.nextListener
	b.listeners = append(b.listeners, listenerEntry{id: id, listener: l})
	return func() {
		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Buffer) emit(c Change) {
	if len(b.listeners) == 0 {
		return
	}
	c.BufferID = b.id
	// Copy so a listener may unregister itself during delivery.
	ls := make([]listenerEntry, len(b.listeners))
	copy(ls, b.listeners)
	for _, e := range ls {
		e.listener.OnChange(c)
	}
}

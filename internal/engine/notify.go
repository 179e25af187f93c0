package engine

import (
	"context"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/event"
	"github.com/dshills/keyline/internal/event/events"
	"github.com/dshills/keyline/internal/event/topic"
)

type listenerEntry struct {
	id       uint64
	listener buffer.Listener
}

// Subscribe registers l for content changes. Listeners run after the engine
// lock is released, so they may call back into the engine.
//
// Changes are delivered once the whole operation has finished. Listeners
// observe the state after the whole operation: when an undo removes several
// runes, every callback already sees all of them gone.
func (e *Engine) Subscribe(l buffer.Listener) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextListener++
	id := e.nextListener
	e.listeners = append(e.listeners, listenerEntry{id: id, listener: l})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, entry := range e.listeners {
			if entry.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// takePendingLocked hands over the queued changes together with a snapshot
// of the listeners. The caller holds e.mu.
func (e *Engine) takePendingLocked() ([]buffer.Change, []listenerEntry) {
	if len(e.pending) == 0 {
		return nil, nil
	}
	changes := e.pending
	e.pending = nil
	return changes, append([]listenerEntry(nil), e.listeners...)
}

func (e *Engine) deliver(changes []buffer.Change, listeners []listenerEntry) {
	for _, c := range changes {
		for _, l := range listeners {
			l.listener.OnChange(c)
		}
		e.publish(contentTopic(c.Kind), events.BufferContentChanged{
			BufferID: c.BufferID,
			Kind:     c.Kind.String(),
			Offset:   c.Offset,
			Text:     c.Payload(),
		})
	}
}

func (e *Engine) publish(t topic.Topic, payload any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(context.Background(), event.NewEvent(t, payload, "engine")); err != nil {
		e.logger.Warn("publish %s: %v", t, err)
	}
}

func contentTopic(k buffer.ChangeKind) topic.Topic {
	switch k {
	case buffer.ChangeForwardDeletion:
		return events.TopicBufferContentDeleted
	case buffer.ChangeBackwardDeletion:
		return events.TopicBufferContentRemoved
	default:
		return events.TopicBufferContentInserted
	}
}

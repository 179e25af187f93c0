package engine

import (
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/event/events"
)

// Open replaces the buffer with the content of path. The buffer keeps its
// identity and history is cleared.
func (e *Engine) Open(path string) error {
	e.mu.Lock()
	b, err := buffer.FromFile(path, buffer.WithID(e.buf.ID()))
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.attach(b)
	e.history.Clear()
	e.pending = nil
	loaded := events.BufferLoaded{BufferID: b.ID(), Path: path, Lines: b.LineCount()}
	e.mu.Unlock()

	e.logger.Info("opened %s (%d lines)", path, loaded.Lines)
	e.publish(events.TopicBufferLoaded, loaded)
	return nil
}

// Reset empties the buffer and clears history. It is not undoable.
// Subscribers see a buffer.loaded event with an empty path.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.buf.Clear()
	e.history.Clear()
	e.pending = nil
	loaded := events.BufferLoaded{BufferID: e.buf.ID(), Lines: e.buf.LineCount()}
	e.mu.Unlock()

	e.logger.Debug("buffer reset")
	e.publish(events.TopicBufferLoaded, loaded)
}

// Save writes the buffer to path and returns the number of bytes written.
func (e *Engine) Save(path string, opt buffer.SaveOption) (int, error) {
	e.mu.Lock()
	n, err := e.buf.SaveToFile(path, opt)
	id := e.buf.ID()
	e.mu.Unlock()
	if err != nil {
		return 0, err
	}

	e.logger.Info("saved %s (%d bytes)", path, n)
	e.publish(events.TopicBufferSaved, events.BufferSaved{BufferID: id, Path: path, Bytes: n})
	return n, nil
}

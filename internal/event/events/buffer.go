package events

import "github.com/dshills/keyline/internal/event/topic"

// Buffer event topics.
const (
	// TopicBufferContentInserted is published when text is inserted into a buffer.
	TopicBufferContentInserted topic.Topic = "buffer.content.inserted"

	// TopicBufferContentDeleted is published when the rune after the cursor is deleted.
	TopicBufferContentDeleted topic.Topic = "buffer.content.deleted"

	// TopicBufferContentRemoved is published when the rune before the cursor is removed.
	TopicBufferContentRemoved topic.Topic = "buffer.content.removed"

	// TopicBufferLoaded is published when a buffer is replaced by file content.
	TopicBufferLoaded topic.Topic = "buffer.loaded"

	// TopicBufferSaved is published when a buffer is saved to disk.
	TopicBufferSaved topic.Topic = "buffer.saved"
)

// BufferContentChanged is the payload of every buffer.content topic.
type BufferContentChanged struct {
	// BufferID is the unique identifier of the buffer.
	BufferID string

	// Kind is "insertion", "forward-deletion" or "backward-deletion".
	Kind string

	// Offset is where the inserted text begins or where the deleted rune was.
	Offset int

	// Text is the inserted or deleted text.
	Text string
}

// BufferLoaded is published when a file is opened into a buffer.
type BufferLoaded struct {
	BufferID string
	Path     string
	Lines    int
}

// BufferSaved is published when a buffer is saved to disk.
type BufferSaved struct {
	BufferID string
	Path     string
	Bytes    int
}

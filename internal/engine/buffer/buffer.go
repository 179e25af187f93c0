package buffer

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/engine/gapbuffer"
)

// Buffer is an editable rune sequence with a cursor.
// It is not safe for concurrent use.
type Buffer struct {
	data      *gapbuffer.GapBuffer[rune]
	cursor    Position
	dirty     bool
	newlines  int
	id        string
	capacity  int
	listeners []listenerEntry

	nextListener uint64
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.capacity > 0 {
		b.data = gapbuffer.NewWithCapacity[rune](b.capacity)
	} else {
		b.data = gapbuffer.New[rune]()
	}
	return b
}

// NewFromString creates a buffer holding s with the cursor at offset 0.
// The buffer starts clean.
func NewFromString(s string, opts ...Option) *Buffer {
	opts = append([]Option{WithCapacity(utf8.RuneCountInString(s))}, opts...)
	b := New(opts...)
	b.load(s)
	return b
}

// NewFromReader creates a buffer from everything r yields.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// load bulk-inserts s into an empty buffer without emitting changes and
// leaves the cursor at the start.
func (b *Buffer) load(s string) {
	for _, r := range s {
		b.data.Insert(r)
	}
	b.newlines = strings.Count(s, "\n")
	b.cursor = Position{}
	b.dirty = false
}

// ID returns the buffer identity used in change events.
func (b *Buffer) ID() string {
	return b.id
}

// Read Operations

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return b.data.Len()
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.data.Len() == 0
}

// Cap returns the capacity of the underlying storage.
func (b *Buffer) Cap() int {
	return b.data.Cap()
}

// NewlineCount returns the number of newline runes in the buffer.
func (b *Buffer) NewlineCount() int {
	return b.newlines
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.newlines + 1
}

// IsDirty reports whether the buffer changed since it was created, loaded
// or last marked clean.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag.
func (b *Buffer) MarkClean() {
	b.dirty = false
}

// At returns the rune at offset.
// ok is false if offset is out of range.
func (b *Buffer) At(offset int) (r rune, ok bool) {
	return b.data.Get(offset)
}

// TextRange returns the text in [begin, end).
// It panics with a *PreconditionError if the range is invalid.
func (b *Buffer) TextRange(begin, end int) string {
	if end > b.data.Len() {
		precondition("text range", end, b.data.Len(), ErrOffsetOutOfRange)
	}
	if begin < 0 || begin > end {
		precondition("text range", begin, b.data.Len(), ErrRangeInvalid)
	}
	return string(b.data.Slice(begin, end))
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return string(b.data.Values())
}

// GapPosition returns the position of the gap in the underlying storage.
func (b *Buffer) GapPosition() Position {
	return b.PositionAt(b.data.GapStart())
}

// Cursor Operations

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// SetCursor moves the cursor and the gap to offset.
// It returns false and does nothing if offset exceeds the buffer length.
func (b *Buffer) SetCursor(offset int) bool {
	if offset < 0 || offset > b.data.Len() {
		return false
	}
	b.cursor = b.positionFrom(b.cursor, offset)
	b.data.SetGapPosition(offset)
	return true
}

// PositionAt computes the position of offset by scanning backward to the
// nearest newline. It panics with a *PreconditionError if offset is out of
// range.
func (b *Buffer) PositionAt(offset int) Position {
	if offset < 0 || offset > b.data.Len() {
		precondition("position", offset, b.data.Len(), ErrOffsetOutOfRange)
	}
	line := 0
	for _, r := range b.data.BeginToCursor(offset).All() {
		if r == '\n' {
			line++
		}
	}
	return Position{Absolute: offset, LineStart: b.lineStart(offset), Line: line}
}

// positionFrom computes the position of offset using a known position as
// the starting point, so only the runes in between are counted.
func (b *Buffer) positionFrom(from Position, offset int) Position {
	if from.Absolute > b.data.Len() {
		return b.PositionAt(offset)
	}
	line := from.Line
	switch {
	case offset > from.Absolute:
		for i := from.Absolute; i < offset; i++ {
			if b.data.At(i) == '\n' {
				line++
			}
		}
	case offset < from.Absolute:
		for i := offset; i < from.Absolute; i++ {
			if b.data.At(i) == '\n' {
				line--
			}
		}
	}
	return Position{Absolute: offset, LineStart: b.lineStart(offset), Line: line}
}

// lineStart returns the offset just after the nearest newline before offset.
func (b *Buffer) lineStart(offset int) int {
	return b.data.BeginToCursor(offset).LastIndex(isNewline) + 1
}

// Write Operations

// InsertChar inserts ch at the cursor and advances the cursor.
func (b *Buffer) InsertChar(ch rune) {
	at := b.cursor.Absolute
	b.data.SetGapPosition(at)
	b.data.Insert(ch)
	b.dirty = true

	if ch == '\n' {
		b.newlines++
		b.cursor = Position{Absolute: at + 1, LineStart: at + 1, Line: b.cursor.Line + 1}
	} else {
		b.cursor.Absolute++
	}

	b.emit(Change{Kind: ChangeInsertion, Offset: at, Char: ch})
}

// InsertData inserts text at the cursor and advances the cursor by its rune
// count.
func (b *Buffer) InsertData(text string) {
	if text == "" {
		return
	}
	at := b.cursor.Absolute
	b.data.SetGapPosition(at)

	n := 0
	lastNewline := -1
	lines := 0
	for _, r := range text {
		b.data.Insert(r)
		if r == '\n' {
			lines++
			lastNewline = n
		}
		n++
	}
	b.dirty = true

	b.cursor.Absolute = at + n
	if lines > 0 {
		b.newlines += lines
		b.cursor.Line += lines
		b.cursor.LineStart = at + lastNewline + 1
	}

	b.emit(Change{Kind: ChangeInsertion, Offset: at, Text: text})
}

// Delete removes the rune after the cursor, like the Delete key.
// ok is false if the cursor is at the end of the buffer.
func (b *Buffer) Delete() (r rune, ok bool) {
	at := b.cursor.Absolute
	b.data.SetGapPosition(at)
	r, ok = b.data.Delete()
	if !ok {
		return r, false
	}
	b.dirty = true
	if r == '\n' {
		b.newlines--
	}
	b.emit(Change{Kind: ChangeForwardDeletion, Offset: at, Char: r})
	return r, true
}

// Remove removes the rune before the cursor, like the Backspace key.
// ok is false if the cursor is at the start of the buffer.
func (b *Buffer) Remove() (r rune, ok bool) {
	at := b.cursor.Absolute
	b.data.SetGapPosition(at)
	r, ok = b.data.Remove()
	if !ok {
		return r, false
	}
	b.dirty = true
	if r == '\n' {
		b.newlines--
		b.cursor = Position{Absolute: at - 1, LineStart: b.lineStart(at - 1), Line: b.cursor.Line - 1}
	} else {
		b.cursor.Absolute--
	}
	b.emit(Change{Kind: ChangeBackwardDeletion, Offset: at - 1, Char: r})
	return r, true
}

// Clear removes all content and resets the cursor and line count.
// No change notifications are emitted.
func (b *Buffer) Clear() {
	b.data.Reset()
	b.cursor = Position{}
	b.newlines = 0
	b.dirty = false
}

// Line Operations

// LineAtCursor returns the text of the line holding the cursor, including
// its terminating newline if present.
func (b *Buffer) LineAtCursor() string {
	start := b.cursor.LineStart
	end := b.data.CursorToEnd(b.cursor.Absolute).Index(isNewline)
	if end < 0 {
		end = b.data.Len()
	} else {
		end++
	}
	return string(b.data.Slice(start, end))
}

// LineStart returns the position of the first rune of line.
// ok is false if the line does not exist.
func (b *Buffer) LineStart(line int) (p Position, ok bool) {
	if line < 0 || line > b.newlines {
		return Position{}, false
	}
	if line == 0 {
		return Position{}, true
	}
	seen := 0
	for i, r := range b.data.All() {
		if r == '\n' {
			seen++
			if seen == line {
				return Position{Absolute: i + 1, LineStart: i + 1, Line: line}, true
			}
		}
	}
	return Position{}, false
}

// LineEnd returns the position just before the newline that ends line, or
// the end of the buffer for the last line.
// ok is false if the line does not exist.
func (b *Buffer) LineEnd(line int) (p Position, ok bool) {
	start, ok := b.LineStart(line)
	if !ok {
		return Position{}, false
	}
	end := b.data.CursorToEnd(start.Absolute).Index(isNewline)
	if end < 0 {
		end = b.data.Len()
	}
	return Position{Absolute: end, LineStart: start.Absolute, Line: line}, true
}

func isNewline(r rune) bool {
	return r == '\n'
}

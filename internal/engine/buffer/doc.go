// Package buffer provides the editable text buffer used by the editor engine.
//
// A Buffer stores runes in a gap buffer and keeps a cursor Position that maps
// the absolute rune offset of the edit point to its line and line-start
// offset. Edits happen at the cursor: the gap is moved there first, then the
// rune is inserted or removed and the cursor bookkeeping is updated
// incrementally.
//
// The package provides:
//
//   - Cursor-local insertion and deletion (Insert key, Delete key, Backspace)
//   - Absolute-offset reads (TextRange, At, Text)
//   - Text object scanning for words, lines and { } blocks
//   - Whole-file load and save with an explicit overwrite option
//   - Change notifications to registered listeners
//
// Basic usage:
//
//	b := buffer.NewFromString("hello world")
//	b.SetCursor(5)
//	b.InsertData(",")          // "hello, world"
//	b.Remove()                 // "hello world"
//	start, end := b.FindRangeOf(8, buffer.ObjectWord)
//
// Offsets:
//
// All offsets are rune offsets into the logical (gap-free) text. Reading or
// positioning past the end of the text is a caller bug; such calls panic with
// a *PreconditionError rather than returning a partial result.
//
// Thread Safety:
//
// A Buffer is a plain synchronous data structure. Callers sharing a buffer
// between goroutines must serialize access; the engine package does this with
// a single mutex held for the duration of one operation.
package buffer

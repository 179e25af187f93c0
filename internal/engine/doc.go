// Package engine provides the command engine of the editor.
//
// The engine owns exactly one text buffer and the undo/redo history for it.
// Execute is the sole entry point that mutates buffer content; cursor
// movement and every read are separate calls that never touch history.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - gapbuffer: generic storage with one movable gap at the edit point
//   - buffer: rune buffer with cursor bookkeeping, text object scanning and
//     file I/O
//   - history: the closed Operation set, undo/redo stacks and the operation
//     log codec
//   - macro: registers of recorded edits
//
// # Basic Usage
//
//	e := engine.New(engine.WithInitialContent("hello world"))
//
//	e.Execute(history.InsertData{Pos: 5, Text: ","}) // "hello, world"
//	e.Execute(history.Remove{Pos: 12})               // "hello, worl"
//	e.Execute(history.Undo{})                        // "hello, world"
//	e.Execute(history.Redo{})                        // "hello, worl"
//
// Every Execute call returns nil or a named error such as ErrNothingToUndo,
// ErrRemoveAtStart or ErrOffsetOutOfRange. Requests that cannot be honored
// are reported, never silently ignored.
//
// # Undo and Redo
//
// Each history entry records the cursor offset from before the edit, so an
// undo restores content and cursor exactly. Undoing a bulk insert applies
// one Remove per rune; redo treats those removals as a single unit and
// inserts the text again in one step. A new edit clears the redo stack.
//
// # Macros
//
// MacroRecord starts recording successful edits into a register and
// MacroStop stores them. MacroPlay replays a register relative to the
// current cursor: the first recorded edit lands at the cursor and the rest
// keep their distance to it. Replayed edits are ordinary history entries.
//
// # Change Notifications
//
// Subscribe registers a listener for content changes. The engine queues
// changes while it holds its lock and delivers them after releasing it, so a
// listener may call back into the engine. When an event bus is configured
// the same changes are published on the buffer.content topics.
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. One mutex serializes every
// operation; it is held only for the duration of a single call.
package engine

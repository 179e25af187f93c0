// Package history provides the operation log behind undo and redo.
//
// # Operations
//
// Operation is a closed set of variants. The edit variants carry exactly
// the data needed to compute their own inverse:
//   - Insert: a rune inserted at Pos
//   - InsertData: a string inserted at Pos
//   - Delete: the rune that followed Pos (Delete key)
//   - Remove: the rune that preceded Pos (Backspace); Char is the rune that
//     was actually removed
//
// Undo, Redo and the macro variants are control operations. They are never
// recorded and have no inverse.
//
// # History Stacks
//
// History keeps an undo stack and a redo stack of Entry values:
//
//	h := history.New(history.Infinite())
//	h.Push(history.Entry{Op: history.Insert{Pos: 0, Char: 'a'}, Cursor: 0})
//	e, _ := h.PopUndo()
//	inv, _ := history.Invert(e.Op) // [Remove{Pos: 1, Char: 'a'}]
//
// Pushing a new entry clears the redo stack. Entries that undo one bulk
// insert share a group id so redo treats them as one unit.
//
// # Operation Log
//
// Encode and Decode convert operations to and from a tagged JSON record:
//
//	{"op":"insert","pos":3,"char":"x"}
//
// EncodeLog and DecodeLog handle newline-delimited sequences of records.
package history

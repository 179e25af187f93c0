// Package script runs Lua scripts against an editing engine.
//
// Scripts see a global table named keyline (also available through
// require("keyline")). Offsets are zero-based rune offsets, matching the
// engine. Failed edits raise a Lua error that scripts may catch with pcall.
//
//	keyline.insert_data(0, "hello")
//	keyline.remove(keyline.len())
//	keyline.undo()
//	print(keyline.text())
//
// The runtime opens only the base, table, string and math libraries and
// removes the functions that load code from disk.
package script

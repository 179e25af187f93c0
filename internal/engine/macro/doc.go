// Package macro records sequences of edit operations into named registers
// for later playback.
//
// Registers are the lowercase letters a-z and the digits 0-9. While a
// recording is active the engine appends every successfully executed edit
// to it. Undo, Redo and macro control operations are never recorded.
// Playback itself belongs to the engine, which replays the stored edits as
// ordinary history entries.
//
// Save and Load persist registers as JSON, one operation log record per
// edit.
package macro

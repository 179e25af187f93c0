// Package gapbuffer provides a generic gap buffer: contiguous storage with a
// single relocatable gap kept at the active edit point.
//
// The backing slice has capacity C and a half-open gap [start, end). Logical
// index i maps to raw index i when i < start, otherwise to i + (end - start).
// Insertions and deletions at the gap are O(1) amortized; moving the gap costs
// O(distance) element moves.
//
// Basic usage:
//
//	gb := gapbuffer.New[rune]()
//	gb.MapTo([]rune("hello world!"))
//	gb.SetGapPosition(6)
//	gb.MapTo([]rune("big "))   // "hello big world!"
//	gb.Delete()                // removes 'w' after the gap
//	gb.Remove()                // removes ' ' before the gap
//
// Slots inside the gap never hold live values: every slot that leaves the live
// range is reset to the zero value of T so that the buffer does not retain
// references the caller has already removed.
//
// A GapBuffer is not safe for concurrent use.
package gapbuffer

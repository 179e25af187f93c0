package gapbuffer

import "fmt"

// MinCapacity is the capacity allocated when an empty buffer first grows.
const MinCapacity = 16

// GapBuffer is a growable sequence of T with one movable gap.
type GapBuffer[T any] struct {
	data  []T
	start int // first slot of the gap
	end   int // first live slot after the gap
}

// New creates an empty buffer with no storage.
func New[T any]() *GapBuffer[T] {
	return &GapBuffer[T]{}
}

// NewWithCapacity creates an empty buffer whose gap spans n slots.
func NewWithCapacity[T any](n int) *GapBuffer[T] {
	if n < 0 {
		n = 0
	}
	return &GapBuffer[T]{
		data: make([]T, n),
		end:  n,
	}
}

// Cap returns the size of the backing storage.
func (g *GapBuffer[T]) Cap() int {
	return len(g.data)
}

// Len returns the logical number of elements.
func (g *GapBuffer[T]) Len() int {
	return len(g.data) - g.gapLen()
}

// GapStart returns the logical position of the gap.
func (g *GapBuffer[T]) GapStart() int {
	return g.start
}

// GapLen returns the number of free slots.
func (g *GapBuffer[T]) GapLen() int {
	return g.gapLen()
}

func (g *GapBuffer[T]) gapLen() int {
	return g.end - g.start
}

func (g *GapBuffer[T]) raw(i int) int {
	if i < g.start {
		return i
	}
	return i + g.gapLen()
}

// Get returns the element at logical index i.
// ok is false if i is outside [0, Len()).
func (g *GapBuffer[T]) Get(i int) (elem T, ok bool) {
	if i < 0 || i >= g.Len() {
		return elem, false
	}
	return g.data[g.raw(i)], true
}

// At returns the element at logical index i.
// It panics if i is out of range.
func (g *GapBuffer[T]) At(i int) T {
	if i < 0 || i >= g.Len() {
		panic(fmt.Sprintf("gapbuffer: index %d out of range [0,%d)", i, g.Len()))
	}
	return g.data[g.raw(i)]
}

// Insert writes elem at the gap start and advances the gap.
func (g *GapBuffer[T]) Insert(elem T) {
	if g.start == g.end {
		g.enlargeGap()
	}
	g.data[g.start] = elem
	g.start++
}

// MapTo inserts every element of seq in order.
func (g *GapBuffer[T]) MapTo(seq []T) {
	for _, elem := range seq {
		g.Insert(elem)
	}
}

// Delete removes and returns the element right after the gap, like the
// Delete key. ok is false when the gap is at the end of the storage.
func (g *GapBuffer[T]) Delete() (elem T, ok bool) {
	if g.end == len(g.data) {
		return elem, false
	}
	var zero T
	elem = g.data[g.end]
	g.data[g.end] = zero
	g.end++
	return elem, true
}

// Remove removes and returns the element right before the gap, like the
// Backspace key. ok is false when the gap is at position 0.
func (g *GapBuffer[T]) Remove() (elem T, ok bool) {
	if g.start == 0 {
		return elem, false
	}
	var zero T
	g.start--
	elem = g.data[g.start]
	g.data[g.start] = zero
	return elem, true
}

// SetGapPosition moves the gap so that it starts at logical position pos.
// It panics if pos is outside [0, Len()].
func (g *GapBuffer[T]) SetGapPosition(pos int) {
	if pos == g.start {
		return
	}
	if pos < 0 || pos > g.Len() {
		panic(fmt.Sprintf("gapbuffer: gap position %d out of range [0,%d]", pos, g.Len()))
	}

	var zero T
	gap := g.gapLen()
	if pos > g.start {
		// Elements in [end, end+distance) slide down into the gap.
		distance := pos - g.start
		copy(g.data[g.start:g.start+distance], g.data[g.end:g.end+distance])
		clearFrom := max(g.end, g.start+distance)
		for i := clearFrom; i < g.end+distance; i++ {
			g.data[i] = zero
		}
	} else {
		// Elements in [pos, start) slide up to the end of the gap.
		distance := g.start - pos
		copy(g.data[g.end-distance:g.end], g.data[pos:g.start])
		clearTo := min(g.start, g.end-distance)
		for i := pos; i < clearTo; i++ {
			g.data[i] = zero
		}
	}
	g.start = pos
	g.end = pos + gap
}

// enlargeGap doubles the storage (at least MinCapacity), keeping the
// pre-gap segment in place and moving the post-gap segment to the new tail.
func (g *GapBuffer[T]) enlargeGap() {
	newCap := max(MinCapacity, 2*len(g.data))
	data := make([]T, newCap)
	after := len(g.data) - g.end

	copy(data, g.data[:g.start])
	copy(data[newCap-after:], g.data[g.end:])

	g.data = data
	g.end = newCap - after
}

// Reset drops all content and storage.
func (g *GapBuffer[T]) Reset() {
	g.data = nil
	g.start = 0
	g.end = 0
}

// Slice copies the logical range [begin, end) into a new slice.
// It panics if the range is invalid.
func (g *GapBuffer[T]) Slice(begin, end int) []T {
	if begin < 0 || end > g.Len() || begin > end {
		panic(fmt.Sprintf("gapbuffer: slice [%d,%d) out of range [0,%d]", begin, end, g.Len()))
	}
	out := make([]T, 0, end-begin)
	if begin < g.start {
		out = append(out, g.data[begin:min(end, g.start)]...)
	}
	if end > g.start {
		out = append(out, g.data[g.raw(max(begin, g.start)):g.raw(end-1)+1]...)
	}
	return out
}

// Values returns a copy of all elements in logical order.
func (g *GapBuffer[T]) Values() []T {
	return g.Slice(0, g.Len())
}

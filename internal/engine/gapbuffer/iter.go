package gapbuffer

import "iter"

// All returns an iterator over (index, element) pairs in logical order.
func (g *GapBuffer[T]) All() iter.Seq2[int, T] {
	return g.span(0, g.Len()).All()
}

// Backward returns an iterator over (index, element) pairs from the last
// element to the first.
func (g *GapBuffer[T]) Backward() iter.Seq2[int, T] {
	return g.span(0, g.Len()).Backward()
}

// BeginToCursor returns the span [0, cursor). The cursor is clamped to
// [0, Len()].
func (g *GapBuffer[T]) BeginToCursor(cursor int) Span[T] {
	return g.span(0, cursor)
}

// CursorToEnd returns the span [cursor, Len()). The cursor is clamped to
// [0, Len()].
func (g *GapBuffer[T]) CursorToEnd(cursor int) Span[T] {
	return g.span(cursor, g.Len())
}

func (g *GapBuffer[T]) span(begin, end int) Span[T] {
	n := g.Len()
	begin = min(max(begin, 0), n)
	end = min(max(end, begin), n)
	return Span[T]{buf: g, begin: begin, end: end}
}

// Span is a read-only view over a logical range of a GapBuffer.
// It is invalidated by any mutation of the buffer.
type Span[T any] struct {
	buf   *GapBuffer[T]
	begin int
	end   int
}

// Bounds returns the absolute [begin, end) range covered by the span.
func (s Span[T]) Bounds() (begin, end int) {
	return s.begin, s.end
}

// Len returns the number of elements in the span.
func (s Span[T]) Len() int {
	return s.end - s.begin
}

// All iterates the span front to back, yielding absolute indices.
func (s Span[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := s.begin; i < s.end; i++ {
			if !yield(i, s.buf.data[s.buf.raw(i)]) {
				return
			}
		}
	}
}

// Backward iterates the span back to front, yielding absolute indices.
func (s Span[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := s.end - 1; i >= s.begin; i-- {
			if !yield(i, s.buf.data[s.buf.raw(i)]) {
				return
			}
		}
	}
}

// Index returns the absolute index of the first element satisfying pred,
// scanning forward, or -1.
func (s Span[T]) Index(pred func(T) bool) int {
	for i, v := range s.All() {
		if pred(v) {
			return i
		}
	}
	return -1
}

// LastIndex returns the absolute index of the last element satisfying pred,
// scanning backward from the end of the span, or -1.
func (s Span[T]) LastIndex(pred func(T) bool) int {
	for i, v := range s.Backward() {
		if pred(v) {
			return i
		}
	}
	return -1
}

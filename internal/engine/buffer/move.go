package buffer

// MoveKind selects a cursor motion.
type MoveKind uint8

const (
	MoveCharPrev MoveKind = iota
	MoveCharNext
	MoveWordPrev
	MoveWordNext
	MoveLinePrev
	MoveLineNext
	MoveLineHome
	MoveLineEnd
)

// String returns the string representation of the motion.
func (k MoveKind) String() string {
	switch k {
	case MoveCharPrev:
		return "char-prev"
	case MoveCharNext:
		return "char-next"
	case MoveWordPrev:
		return "word-prev"
	case MoveWordNext:
		return "word-next"
	case MoveLinePrev:
		return "line-prev"
	case MoveLineNext:
		return "line-next"
	case MoveLineHome:
		return "line-home"
	case MoveLineEnd:
		return "line-end"
	default:
		return "unknown"
	}
}

// MoveCursor applies a motion and returns the new cursor position.
// Motions stop at the buffer edges. Vertical motions keep the column,
// clamped to the length of the target line.
func (b *Buffer) MoveCursor(kind MoveKind) Position {
	at := b.cursor.Absolute
	target := at

	switch kind {
	case MoveCharPrev:
		target = max(at-1, 0)
	case MoveCharNext:
		target = min(at+1, b.data.Len())
	case MoveWordPrev:
		target = b.wordPrev(at)
	case MoveWordNext:
		target = b.wordNext(at)
	case MoveLinePrev:
		target = b.verticalTarget(b.cursor.Line - 1)
	case MoveLineNext:
		target = b.verticalTarget(b.cursor.Line + 1)
	case MoveLineHome:
		target = b.cursor.LineStart
	case MoveLineEnd:
		if end, ok := b.LineEnd(b.cursor.Line); ok {
			target = end.Absolute
		}
	}

	if target != at {
		b.SetCursor(target)
	}
	return b.cursor
}

// wordPrev returns the start of the word before at.
func (b *Buffer) wordPrev(at int) int {
	i := at
	for i > 0 && isWordBreak(b.data.At(i-1)) {
		i--
	}
	for i > 0 && !isWordBreak(b.data.At(i-1)) {
		i--
	}
	return i
}

// wordNext returns the start of the word after at.
func (b *Buffer) wordNext(at int) int {
	n := b.data.Len()
	i := at
	for i < n && !isWordBreak(b.data.At(i)) {
		i++
	}
	for i < n && isWordBreak(b.data.At(i)) {
		i++
	}
	return i
}

func (b *Buffer) verticalTarget(line int) int {
	start, ok := b.LineStart(line)
	if !ok {
		return b.cursor.Absolute
	}
	end, _ := b.LineEnd(line)
	return min(start.Absolute+b.cursor.Column(), end.Absolute)
}

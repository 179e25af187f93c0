package buffer

// ObjectKind selects the text object located by FindRangeOf.
type ObjectKind uint8

const (
	// ObjectWord is a run of runes delimited by spaces or newlines.
	ObjectWord ObjectKind = iota
	// ObjectLine is the text between two newlines.
	ObjectLine
	// ObjectBlock is the text enclosed by the nearest unmatched brace pair.
	ObjectBlock
)

// String returns the string representation of the object kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjectWord:
		return "word"
	case ObjectLine:
		return "line"
	case ObjectBlock:
		return "block"
	default:
		return "unknown"
	}
}

// FindRangeOf locates the text object of the given kind around cursor and
// returns its start and end positions.
//
// Word ends are inclusive: end is the last rune of the word. Line ends are
// exclusive: end is the terminating newline or the buffer length. Block
// ranges start at the opening brace and end at the matching closing brace,
// or the buffer length if none. The brace matcher counts every brace; it
// is not string- or comment-aware.
//
// An empty buffer yields two zero positions. cursor is clamped to the
// buffer.
func (b *Buffer) FindRangeOf(cursor int, kind ObjectKind) (start, end Position) {
	n := b.data.Len()
	if n == 0 {
		return Position{}, Position{}
	}
	cursor = min(max(cursor, 0), n)

	var s, e int
	switch kind {
	case ObjectWord:
		s = b.data.BeginToCursor(cursor).LastIndex(isWordBreak) + 1
		e = b.data.CursorToEnd(cursor).Index(isWordBreak)
		if e < 0 {
			e = n - 1
		} else {
			e--
		}
		if e < s {
			e = s
		}
	case ObjectLine:
		s = b.data.BeginToCursor(cursor).LastIndex(isNewline) + 1
		e = b.data.CursorToEnd(cursor).Index(isNewline)
		if e < 0 {
			e = n
		}
	case ObjectBlock:
		s, e = b.blockBounds(cursor)
	}

	return b.PositionAt(s), b.PositionAt(e)
}

// blockBounds returns the offset of the nearest unmatched '{' before cursor
// (0 if none) and the '}' that closes it (buffer length if none).
func (b *Buffer) blockBounds(cursor int) (start, end int) {
	depth := 0
	start = 0
	for i, r := range b.data.BeginToCursor(cursor).Backward() {
		if r == '}' {
			depth++
		} else if r == '{' {
			if depth == 0 {
				start = i
				break
			}
			depth--
		}
	}

	level := 1
	end = b.data.Len()
	for i, r := range b.data.CursorToEnd(cursor).All() {
		if r == '{' {
			level++
		} else if r == '}' {
			level--
			if level == 0 {
				end = i
				break
			}
		}
	}
	return start, end
}

func isWordBreak(r rune) bool {
	return r == ' ' || r == '\n'
}

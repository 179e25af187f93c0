package buffer

import "fmt"

// Position maps an absolute rune offset to its line.
// Positions are ordered and compared solely by Absolute.
type Position struct {
	Absolute  int // 0-indexed rune offset into the text
	LineStart int // offset of the first rune of the line
	Line      int // 0-indexed line number
}

// Column returns the 0-indexed rune column within the line.
func (p Position) Column() int {
	return p.Absolute - p.LineStart
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d@%d)", p.Line, p.Column(), p.Absolute)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Absolute < other.Absolute:
		return -1
	case p.Absolute > other.Absolute:
		return 1
	default:
		return 0
	}
}

// Equal returns true if both positions refer to the same offset.
func (p Position) Equal(other Position) bool {
	return p.Absolute == other.Absolute
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the start of the buffer.
func (p Position) IsZero() bool {
	return p.Absolute == 0
}

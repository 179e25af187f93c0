package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LimitKind selects how much undo history is kept.
type LimitKind uint8

const (
	// LimitInfinite keeps every entry.
	LimitInfinite LimitKind = iota
	// LimitBounded keeps the most recent N entries.
	LimitBounded
	// LimitNone disables history.
	LimitNone
)

// Limit bounds the undo stack.
type Limit struct {
	Kind LimitKind
	N    int
}

// Infinite returns a limit that never drops entries.
func Infinite() Limit { return Limit{Kind: LimitInfinite} }

// Bounded returns a limit that keeps the n most recent entries.
// A non-positive n disables history.
func Bounded(n int) Limit {
	if n <= 0 {
		return Disabled()
	}
	return Limit{Kind: LimitBounded, N: n}
}

// Disabled returns a limit that records nothing.
func Disabled() Limit { return Limit{Kind: LimitNone} }

// ErrInvalidLimit is returned by ParseLimit for malformed input.
var ErrInvalidLimit = errors.New("invalid history limit")

// ParseLimit parses "infinite", "none" or a positive entry count.
func ParseLimit(s string) (Limit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "infinite", "unbounded":
		return Infinite(), nil
	case "none", "off", "0":
		return Disabled(), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return Limit{}, fmt.Errorf("%w: %q", ErrInvalidLimit, s)
	}
	return Bounded(n), nil
}

// String returns the form accepted by ParseLimit.
func (l Limit) String() string {
	switch l.Kind {
	case LimitBounded:
		return strconv.Itoa(l.N)
	case LimitNone:
		return "none"
	default:
		return "infinite"
	}
}

// allows reports whether a stack of size n is within the limit.
func (l Limit) allows(n int) bool {
	switch l.Kind {
	case LimitBounded:
		return n <= l.N
	case LimitNone:
		return n == 0
	default:
		return true
	}
}

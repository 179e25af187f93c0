package gapbuffer

import (
	"strings"
	"testing"
)

func newRunes(s string) *GapBuffer[rune] {
	gb := New[rune]()
	gb.MapTo([]rune(s))
	return gb
}

func str(gb *GapBuffer[rune]) string {
	return string(gb.Values())
}

func TestNewIsEmpty(t *testing.T) {
	gb := New[rune]()
	if gb.Len() != 0 || gb.Cap() != 0 {
		t.Errorf("Len=%d Cap=%d, want 0,0", gb.Len(), gb.Cap())
	}
	if _, ok := gb.Get(0); ok {
		t.Error("Get(0) on empty buffer should fail")
	}
}

func TestNewWithCapacity(t *testing.T) {
	gb := NewWithCapacity[rune](40)
	if gb.Cap() != 40 || gb.GapLen() != 40 || gb.Len() != 0 {
		t.Fatalf("Cap=%d GapLen=%d Len=%d", gb.Cap(), gb.GapLen(), gb.Len())
	}
	gb.MapTo([]rune("hello"))
	if gb.Cap() != 40 {
		t.Errorf("pre-sized buffer grew: Cap=%d", gb.Cap())
	}
	if str(gb) != "hello" {
		t.Errorf("got %q", str(gb))
	}
}

func TestInsertGet(t *testing.T) {
	gb := newRunes("hello world!")
	if c, ok := gb.Get(0); !ok || c != 'h' {
		t.Errorf("Get(0) = %q, %v", c, ok)
	}
	if c, ok := gb.Get(11); !ok || c != '!' {
		t.Errorf("Get(11) = %q, %v", c, ok)
	}
	if _, ok := gb.Get(12); ok {
		t.Error("Get(12) should be out of range")
	}
	if _, ok := gb.Get(-1); ok {
		t.Error("Get(-1) should be out of range")
	}
}

func TestInsertMoveInsert(t *testing.T) {
	gb := newRunes("hello world!")
	gb.SetGapPosition(6)
	gb.MapTo([]rune("fucking "))
	if got := str(gb); got != "hello fucking world!" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteWorld(t *testing.T) {
	gb := newRunes("hello world")
	gb.SetGapPosition(6)
	for i := 0; i < 5; i++ {
		if _, ok := gb.Delete(); !ok {
			t.Fatalf("Delete %d failed", i)
		}
	}
	if got := str(gb); got != "hello " {
		t.Errorf("got %q", got)
	}

	gb.MapTo([]rune("Simon"))
	if got := str(gb); got != "hello Simon" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteAtEnd(t *testing.T) {
	gb := newRunes("ab")
	if _, ok := gb.Delete(); ok {
		t.Error("Delete at end should report nothing to do")
	}
	if str(gb) != "ab" {
		t.Errorf("content changed: %q", str(gb))
	}
}

func TestRemove(t *testing.T) {
	gb := newRunes("hello world!")
	c, ok := gb.Remove()
	if !ok || c != '!' {
		t.Errorf("Remove = %q, %v", c, ok)
	}
	if got := str(gb); got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestRemoveAtStart(t *testing.T) {
	gb := newRunes("ab")
	gb.SetGapPosition(0)
	if _, ok := gb.Remove(); ok {
		t.Error("Remove at start should report nothing to do")
	}
	if _, ok := New[rune]().Remove(); ok {
		t.Error("Remove on empty buffer should report nothing to do")
	}
}

func TestInsertNewline(t *testing.T) {
	gb := newRunes("hello wor")
	gb.SetGapPosition(5)
	gb.Insert('\n')
	if got := str(gb); got != "hello\n wor" {
		t.Errorf("got %q", got)
	}
}

func TestGrowthLaw(t *testing.T) {
	tests := []struct {
		n       int
		wantCap int
	}{
		{1, 16},
		{16, 16},
		{17, 32},
		{32, 32},
		{33, 64},
		{100, 128},
		{1000, 1024},
	}
	for _, tt := range tests {
		gb := New[int]()
		for i := 0; i < tt.n; i++ {
			gb.Insert(i)
		}
		if gb.Cap() != tt.wantCap {
			t.Errorf("after %d inserts Cap=%d, want %d", tt.n, gb.Cap(), tt.wantCap)
		}
		if gb.Len() != tt.n {
			t.Errorf("after %d inserts Len=%d", tt.n, gb.Len())
		}
	}
}

func TestGrowthKeepsGapPosition(t *testing.T) {
	gb := New[rune]()
	gb.MapTo([]rune("abcdefghijklmnop")) // exactly 16, gap now empty
	gb.SetGapPosition(4)
	gb.Insert('X')
	if got := str(gb); got != "abcdXefghijklmnop" {
		t.Errorf("got %q", got)
	}
	if gb.GapStart() != 5 {
		t.Errorf("GapStart=%d, want 5", gb.GapStart())
	}
	if gb.Cap() != 32 {
		t.Errorf("Cap=%d, want 32", gb.Cap())
	}
}

func TestGapTransparency(t *testing.T) {
	const text = "the quick brown fox\njumps over\nthe lazy dog"
	gb := newRunes(text)
	for pos := 0; pos <= gb.Len(); pos++ {
		gb.SetGapPosition(pos)
		if got := str(gb); got != text {
			t.Fatalf("after SetGapPosition(%d) got %q", pos, got)
		}
		for i, want := range []rune(text) {
			if c := gb.At(i); c != want {
				t.Fatalf("pos %d: At(%d)=%q want %q", pos, i, c, want)
			}
		}
	}
	// Jump back and forth across long distances (overlapping moves).
	for _, pos := range []int{0, gb.Len(), 3, gb.Len() - 2, 1, 20} {
		gb.SetGapPosition(pos)
		if got := str(gb); got != text {
			t.Fatalf("after SetGapPosition(%d) got %q", pos, got)
		}
	}
}

func TestSetGapPositionOutOfRangePanics(t *testing.T) {
	gb := newRunes("abc")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	gb.SetGapPosition(4)
}

func TestAtOutOfRangePanics(t *testing.T) {
	gb := newRunes("abc")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	gb.At(3)
}

func TestGapSlotsAreCleared(t *testing.T) {
	gb := New[*int]()
	for i := 0; i < 10; i++ {
		v := i
		gb.Insert(&v)
	}
	gb.SetGapPosition(2)
	gb.Delete()
	gb.Delete()
	gb.SetGapPosition(8)
	gb.Remove()
	gb.SetGapPosition(1)

	for i := gb.start; i < gb.end; i++ {
		if gb.data[i] != nil {
			t.Errorf("gap slot %d still holds a value", i)
		}
	}
	for i := 0; i < gb.Len(); i++ {
		if gb.At(i) == nil {
			t.Errorf("live element %d is nil", i)
		}
	}
}

func TestSlice(t *testing.T) {
	gb := newRunes("hello world")
	gb.SetGapPosition(4)
	tests := []struct {
		begin, end int
		want       string
	}{
		{0, 5, "hello"},
		{6, 11, "world"},
		{2, 8, "llo wo"},
		{4, 4, ""},
		{0, 11, "hello world"},
	}
	for _, tt := range tests {
		if got := string(gb.Slice(tt.begin, tt.end)); got != tt.want {
			t.Errorf("Slice(%d,%d) = %q, want %q", tt.begin, tt.end, got, tt.want)
		}
	}
}

func TestIterators(t *testing.T) {
	gb := newRunes("abc def")
	gb.SetGapPosition(2)

	var fwd strings.Builder
	for _, c := range gb.All() {
		fwd.WriteRune(c)
	}
	if fwd.String() != "abc def" {
		t.Errorf("All = %q", fwd.String())
	}

	var back strings.Builder
	for _, c := range gb.Backward() {
		back.WriteRune(c)
	}
	if back.String() != "fed cba" {
		t.Errorf("Backward = %q", back.String())
	}
}

func TestSpanSearch(t *testing.T) {
	gb := newRunes("hello world foo")
	isSpace := func(c rune) bool { return c == ' ' }

	if i := gb.BeginToCursor(8).LastIndex(isSpace); i != 5 {
		t.Errorf("LastIndex = %d, want 5", i)
	}
	if i := gb.CursorToEnd(8).Index(isSpace); i != 11 {
		t.Errorf("Index = %d, want 11", i)
	}
	if i := gb.BeginToCursor(4).LastIndex(isSpace); i != -1 {
		t.Errorf("LastIndex = %d, want -1", i)
	}
	if i := gb.CursorToEnd(12).Index(isSpace); i != -1 {
		t.Errorf("Index = %d, want -1", i)
	}

	s := gb.CursorToEnd(100)
	if b, e := s.Bounds(); b != 15 || e != 15 {
		t.Errorf("clamped bounds = %d,%d", b, e)
	}
}

func TestReset(t *testing.T) {
	gb := newRunes("abc")
	gb.Reset()
	if gb.Len() != 0 || gb.Cap() != 0 {
		t.Errorf("Len=%d Cap=%d after Reset", gb.Len(), gb.Cap())
	}
	gb.Insert('x')
	if str(gb) != "x" || gb.Cap() != MinCapacity {
		t.Errorf("got %q cap %d", str(gb), gb.Cap())
	}
}

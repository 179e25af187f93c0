package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.ID() == "" {
		t.Error("expected a generated buffer id")
	}
	if b.IsDirty() {
		t.Error("new buffer should be clean")
	}
}

func TestNewFromString(t *testing.T) {
	b := NewFromString("line1\nline2\nline3")

	if b.Text() != "line1\nline2\nline3" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	if !b.Cursor().IsZero() {
		t.Errorf("expected cursor at start, got %s", b.Cursor())
	}
	if b.IsDirty() {
		t.Error("loaded buffer should be clean")
	}
}

func TestNewFromReader(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("héllo"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 5 {
		t.Errorf("expected 5 runes, got %d", b.Len())
	}
}

func TestWithID(t *testing.T) {
	b := New(WithID("scratch"))
	if b.ID() != "scratch" {
		t.Errorf("expected id scratch, got %q", b.ID())
	}
}

func TestInsertChar(t *testing.T) {
	b := New()
	for _, r := range "ab\nc" {
		b.InsertChar(r)
	}

	if b.Text() != "ab\nc" {
		t.Errorf("expected %q, got %q", "ab\nc", b.Text())
	}
	want := Position{Absolute: 4, LineStart: 3, Line: 1}
	if b.Cursor() != want {
		t.Errorf("expected cursor %s, got %s", want, b.Cursor())
	}
	if b.NewlineCount() != 1 {
		t.Errorf("expected 1 newline, got %d", b.NewlineCount())
	}
	if !b.IsDirty() {
		t.Error("buffer should be dirty after insert")
	}
}

func TestInsertData(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		cursor  int
		text    string
		want    string
		pos     Position
	}{
		{"empty", "", 0, "hello", "hello", Position{Absolute: 5}},
		{"middle", "hello world", 6, "big ", "hello big world", Position{Absolute: 10}},
		{"multiline", "", 0, "ab\ncd\ne", "ab\ncd\ne", Position{Absolute: 7, LineStart: 6, Line: 2}},
		{"after newline", "x\ny", 2, "1\n2", "x\n1\n2y", Position{Absolute: 5, LineStart: 4, Line: 2}},
		{"runes", "", 0, "héllo", "héllo", Position{Absolute: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			b.SetCursor(tt.cursor)
			b.InsertData(tt.text)

			if b.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Text())
			}
			if b.Cursor() != tt.pos {
				t.Errorf("expected cursor %s, got %s", tt.pos, b.Cursor())
			}
			if b.Cursor() != b.PositionAt(b.Cursor().Absolute) {
				t.Errorf("incremental cursor %s differs from scanned %s", b.Cursor(), b.PositionAt(b.Cursor().Absolute))
			}
		})
	}
}

func TestDelete(t *testing.T) {
	b := NewFromString("ab\ncd")
	b.SetCursor(2)

	r, ok := b.Delete()
	if !ok || r != '\n' {
		t.Fatalf("expected newline deleted, got %q %v", r, ok)
	}
	if b.Text() != "abcd" {
		t.Errorf("expected abcd, got %q", b.Text())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.Cursor().Absolute != 2 {
		t.Errorf("cursor should not move, got %s", b.Cursor())
	}

	b.SetCursor(4)
	if _, ok := b.Delete(); ok {
		t.Error("delete at end should report nothing deleted")
	}
}

func TestRemove(t *testing.T) {
	b := NewFromString("ab\ncd")
	b.SetCursor(3)

	r, ok := b.Remove()
	if !ok || r != '\n' {
		t.Fatalf("expected newline removed, got %q %v", r, ok)
	}
	want := Position{Absolute: 2, LineStart: 0, Line: 0}
	if b.Cursor() != want {
		t.Errorf("expected cursor %s, got %s", want, b.Cursor())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	b.SetCursor(0)
	if _, ok := b.Remove(); ok {
		t.Error("remove at start should report nothing removed")
	}
	if b.Text() != "abcd" {
		t.Errorf("remove at start mutated buffer: %q", b.Text())
	}
}

func TestRemoveAtEnd(t *testing.T) {
	b := NewFromString("hello")
	b.SetCursor(5)

	r, ok := b.Remove()
	if !ok || r != 'o' {
		t.Fatalf("expected 'o' removed, got %q %v", r, ok)
	}
	if b.Text() != "hell" {
		t.Errorf("expected hell, got %q", b.Text())
	}
	if b.Cursor().Absolute != 4 {
		t.Errorf("expected cursor 4, got %s", b.Cursor())
	}
}

func TestSetCursor(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")

	if !b.SetCursor(9) {
		t.Fatal("SetCursor(9) should succeed")
	}
	want := Position{Absolute: 9, LineStart: 8, Line: 2}
	if b.Cursor() != want {
		t.Errorf("expected %s, got %s", want, b.Cursor())
	}
	if b.GapPosition().Absolute != 9 {
		t.Errorf("expected gap at 9, got %d", b.GapPosition().Absolute)
	}

	if !b.SetCursor(1) {
		t.Fatal("SetCursor(1) should succeed")
	}
	if b.Cursor() != (Position{Absolute: 1}) {
		t.Errorf("expected (0:1@1), got %s", b.Cursor())
	}

	if b.SetCursor(100) {
		t.Error("SetCursor past end should fail")
	}
	if b.Cursor().Absolute != 1 {
		t.Errorf("failed SetCursor moved the cursor to %s", b.Cursor())
	}
}

func TestPositionAt(t *testing.T) {
	b := NewFromString("ab\ncd\n\nef")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0, 0}},
		{2, Position{2, 0, 0}},
		{3, Position{3, 3, 1}},
		{4, Position{4, 3, 1}},
		{6, Position{6, 6, 2}},
		{7, Position{7, 7, 3}},
		{9, Position{9, 7, 3}},
	}

	for _, tt := range tests {
		got := b.PositionAt(tt.offset)
		if got != tt.want {
			t.Errorf("PositionAt(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestPositionColumn(t *testing.T) {
	p := Position{Absolute: 10, LineStart: 6, Line: 2}
	if p.Column() != 4 {
		t.Errorf("expected column 4, got %d", p.Column())
	}
	if p.String() != "(2:4@10)" {
		t.Errorf("unexpected string %q", p.String())
	}
	q := Position{Absolute: 10, LineStart: 0, Line: 0}
	if !p.Equal(q) || p.Compare(q) != 0 {
		t.Error("positions compare by absolute offset only")
	}
	if !q.Before(Position{Absolute: 11}) || !q.After(Position{Absolute: 9}) {
		t.Error("ordering by absolute offset failed")
	}
}

func TestTextRange(t *testing.T) {
	b := NewFromString("hello world")

	if got := b.TextRange(6, 11); got != "world" {
		t.Errorf("expected world, got %q", got)
	}
	if got := b.TextRange(3, 3); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestTextRangePanics(t *testing.T) {
	b := NewFromString("abc")

	tests := []struct {
		name       string
		begin, end int
		err        error
	}{
		{"end past length", 0, 4, ErrOffsetOutOfRange},
		{"inverted", 2, 1, ErrRangeInvalid},
		{"negative", -1, 2, ErrRangeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				pe, ok := r.(*PreconditionError)
				if !ok {
					t.Fatalf("expected *PreconditionError panic, got %v", r)
				}
				if !errors.Is(pe, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, pe)
				}
			}()
			b.TextRange(tt.begin, tt.end)
		})
	}
}

func TestAt(t *testing.T) {
	b := NewFromString("abc")

	if r, ok := b.At(1); !ok || r != 'b' {
		t.Errorf("At(1) = %q %v", r, ok)
	}
	if _, ok := b.At(3); ok {
		t.Error("At(3) should be out of range")
	}
	if _, ok := b.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
}

func TestLineAtCursor(t *testing.T) {
	b := NewFromString("ab\ncd\nef")

	tests := []struct {
		cursor int
		want   string
	}{
		{0, "ab\n"},
		{1, "ab\n"},
		{3, "cd\n"},
		{7, "ef"},
		{8, "ef"},
	}

	for _, tt := range tests {
		b.SetCursor(tt.cursor)
		if got := b.LineAtCursor(); got != tt.want {
			t.Errorf("cursor %d: expected %q, got %q", tt.cursor, tt.want, got)
		}
	}
}

func TestLineStartEnd(t *testing.T) {
	b := NewFromString("ab\n\ncde")

	tests := []struct {
		line       int
		start, end int
	}{
		{0, 0, 2},
		{1, 3, 3},
		{2, 4, 7},
	}

	for _, tt := range tests {
		start, ok := b.LineStart(tt.line)
		if !ok || start.Absolute != tt.start {
			t.Errorf("LineStart(%d) = %s %v, want %d", tt.line, start, ok, tt.start)
		}
		end, ok := b.LineEnd(tt.line)
		if !ok || end.Absolute != tt.end {
			t.Errorf("LineEnd(%d) = %s %v, want %d", tt.line, end, ok, tt.end)
		}
	}

	if _, ok := b.LineStart(3); ok {
		t.Error("LineStart(3) should not exist")
	}
}

func TestClear(t *testing.T) {
	b := NewFromString("a\nb")
	b.SetCursor(2)
	b.InsertChar('x')
	b.Clear()

	if !b.IsEmpty() || b.LineCount() != 1 || !b.Cursor().IsZero() || b.IsDirty() {
		t.Errorf("clear left state behind: len=%d lines=%d cursor=%s dirty=%v",
			b.Len(), b.LineCount(), b.Cursor(), b.IsDirty())
	}
}

func TestMarkClean(t *testing.T) {
	b := New()
	b.InsertChar('a')
	b.MarkClean()
	if b.IsDirty() {
		t.Error("MarkClean should clear dirty flag")
	}
}

func TestListeners(t *testing.T) {
	b := New(WithID("buf"))

	var changes []Change
	var seen []string
	remove := b.AddListener(ListenerFunc(func(c Change) {
		changes = append(changes, c)
		seen = append(seen, b.Text())
	}))

	b.InsertChar('a')
	b.InsertData("bc")
	b.Remove()
	b.SetCursor(0)
	b.Delete()

	want := []Change{
		{BufferID: "buf", Kind: ChangeInsertion, Offset: 0, Char: 'a'},
		{BufferID: "buf", Kind: ChangeInsertion, Offset: 1, Text: "bc"},
		{BufferID: "buf", Kind: ChangeBackwardDeletion, Offset: 2, Char: 'c'},
		{BufferID: "buf", Kind: ChangeForwardDeletion, Offset: 0, Char: 'a'},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(changes))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d: expected %+v, got %+v", i, want[i], changes[i])
		}
	}

	wantSeen := []string{"a", "abc", "ab", "b"}
	for i := range wantSeen {
		if seen[i] != wantSeen[i] {
			t.Errorf("listener %d saw %q, want %q", i, seen[i], wantSeen[i])
		}
	}

	remove()
	b.InsertChar('z')
	if len(changes) != len(want) {
		t.Error("removed listener still received changes")
	}
}

func TestListenerRemovesItself(t *testing.T) {
	b := New()
	calls := 0
	var remove func()
	remove = b.AddListener(ListenerFunc(func(Change) {
		calls++
		remove()
	}))
	other := 0
	b.AddListener(ListenerFunc(func(Change) { other++ }))

	b.InsertChar('a')
	b.InsertChar('b')

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if other != 2 {
		t.Errorf("expected 2 calls on remaining listener, got %d", other)
	}
}

func TestChangePayload(t *testing.T) {
	if got := (Change{Char: 'x'}).Payload(); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if got := (Change{Text: "xyz"}).Payload(); got != "xyz" {
		t.Errorf("expected xyz, got %q", got)
	}
	if ChangeBackwardDeletion.String() != "backward-deletion" {
		t.Errorf("unexpected kind string %q", ChangeBackwardDeletion.String())
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "one\ntwo\n" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	if b.Cap() < len("one\ntwo\n") {
		t.Errorf("expected capacity pre-sized, got %d", b.Cap())
	}
}

func TestFromFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := FromFile(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != path {
		t.Errorf("expected *FileError naming %s, got %v", path, err)
	}
}

func TestFromFileInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := NewFromString("héllo\n")
	b.InsertChar('>')

	n, err := b.SaveToFile(path, NoOverwrite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(">héllo\n") {
		t.Errorf("expected %d bytes, got %d", len(">héllo\n"), n)
	}
	if b.IsDirty() {
		t.Error("save should clear dirty flag")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ">héllo\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestSaveToFileExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("original"), 0o600); err != nil {
		t.Fatal(err)
	}

	b := NewFromString("replacement")
	_, err := b.SaveToFile(path, NoOverwrite)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("expected ErrFileExists, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("file modified despite NoOverwrite: %q", data)
	}

	if _, err := b.SaveToFile(path, Overwrite); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "replacement" {
		t.Errorf("expected replacement, got %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode preserved as 0600, got %v", info.Mode().Perm())
	}
}

func TestSaveToFileBadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	b := NewFromString("x")

	_, err := b.SaveToFile(path, Overwrite)
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FileError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyline/internal/engine"
)

func newTestState(t *testing.T, content string, opts ...Option) (*State, *engine.Engine) {
	t.Helper()
	e := engine.New(engine.WithInitialContent(content))
	s, err := NewState(e, opts...)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(s.Close)
	return s, e
}

func TestNewStateRequiresEditor(t *testing.T) {
	if _, err := NewState(nil); !errors.Is(err, ErrNoEditor) {
		t.Errorf("NewState(nil) error = %v", err)
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name string
		init string
		code string
		want string
	}{
		{"insert", "ac", `keyline.insert(1, "b")`, "abc"},
		{"insert data", "", `keyline.insert_data(0, "hello world")`, "hello world"},
		{"delete", "abc", `keyline.delete(0)`, "bc"},
		{"remove", "hello", `keyline.remove(5)`, "hell"},
		{"undo", "hello", `keyline.remove(5) keyline.undo()`, "hello"},
		{"redo", "hello", `keyline.remove(5) keyline.undo() keyline.redo()`, "hell"},
		{"macro", "", `
			keyline.record("a")
			keyline.insert_data(0, "ab")
			keyline.stop()
			keyline.play("a")
		`, "abab"},
		{"clear", "old", `keyline.clear() keyline.insert_data(0, "new")`, "new"},
		{"require", "x", `local k = require("keyline") k.insert(1, "y")`, "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := newTestState(t, tt.init)
			if err := s.DoString(context.Background(), tt.code); err != nil {
				t.Fatalf("DoString: %v", err)
			}
			if got := e.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueries(t *testing.T) {
	s, _ := newTestState(t, "hello\nworld {x}")

	code := `
		n = keyline.len()
		lines = keyline.line_count()
		sub = keyline.text(6, 11)
		keyline.set_cursor(8)
		off, line, col = keyline.cursor()
		ws, we = keyline.object("word")
		home = keyline.move("line-home")
		dirty = keyline.modified()
	`
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	wantNumbers := map[string]float64{
		"n": 15, "lines": 2, "off": 8, "line": 1, "col": 2, "ws": 6, "we": 10, "home": 6,
	}
	for name, want := range wantNumbers {
		got, ok := s.GetGlobal(name).(lua.LNumber)
		if !ok || float64(got) != want {
			t.Errorf("%s = %v, want %v", name, s.GetGlobal(name), want)
		}
	}
	if got := s.GetGlobal("sub"); got.String() != "world" {
		t.Errorf("sub = %q, want %q", got.String(), "world")
	}
	if got := s.GetGlobal("dirty"); got != lua.LFalse {
		t.Errorf("dirty = %v, want false", got)
	}
}

func TestEditErrorsRaise(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"remove at start", `keyline.remove(0)`, "cannot remove before buffer start"},
		{"undo empty", `keyline.undo()`, "nothing to undo"},
		{"bad char", `keyline.insert(0, "ab")`, "single character"},
		{"bad motion", `keyline.move("sideways")`, "unknown motion"},
		{"bad range", `keyline.text(0, 99)`, "precondition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := newTestState(t, "abc")
			err := s.DoString(context.Background(), tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("DoString error = %v, want it to mention %q", err, tt.want)
			}
			if e.Text() != "abc" {
				t.Errorf("failed call mutated buffer: %q", e.Text())
			}
		})
	}
}

func TestPcallCatchesEditError(t *testing.T) {
	s, _ := newTestState(t, "")
	if err := s.DoString(context.Background(), `ok = pcall(keyline.remove, 0)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if s.GetGlobal("ok") != lua.LFalse {
		t.Error("pcall should report failure")
	}
}

func TestSandbox(t *testing.T) {
	s, _ := newTestState(t, "")
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("%s should not be available, got %s", name, v.Type())
		}
	}
	if err := s.DoString(context.Background(), `require("os")`); err == nil {
		t.Error("require of os should fail")
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	s, _ := newTestState(t, "hi", WithOutput(&out))
	if err := s.DoString(context.Background(), `print(keyline.text(), 42)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if out.String() != "hi\t42\n" {
		t.Errorf("print wrote %q", out.String())
	}
}

func TestTimeout(t *testing.T) {
	s, _ := newTestState(t, "", WithTimeout(50*time.Millisecond))
	err := s.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("DoString error = %v, want deadline exceeded", err)
	}
}

func TestClosedState(t *testing.T) {
	s, _ := newTestState(t, "")
	s.Close()
	if err := s.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close error = %v", err)
	}
	if s.GetGlobal("keyline") != lua.LNil {
		t.Error("GetGlobal after Close should return nil")
	}
}

func TestRunFileSaves(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "edit.lua")
	out := filepath.Join(dir, "out.txt")
	code := `
		keyline.insert_data(keyline.len(), " world")
		keyline.save(...)
	`
	code = strings.Replace(code, "...", `"`+filepath.ToSlash(out)+`"`, 1)
	if err := os.WriteFile(script, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	e := engine.New(engine.WithInitialContent("hello"))
	if err := RunFile(context.Background(), e, script); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello world" {
		t.Errorf("saved %q", data)
	}
	if e.IsDirty() {
		t.Error("save should clear the dirty flag")
	}
}

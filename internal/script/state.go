package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyline/internal/logging"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 30 * time.Second

// State wraps a sandboxed gopher-lua state bound to one editor.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes every
// call into it.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	editor Editor
	out    io.Writer
	logger *logging.Logger

	timeout time.Duration
	closed  bool
}

// Option configures a State.
type Option func(*State)

// WithOutput sets where print writes. The default discards output.
func WithOutput(w io.Writer) Option {
	return func(s *State) {
		s.out = w
	}
}

// WithTimeout bounds each DoFile or DoString call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a sandboxed Lua state exposing editor as the keyline
// module.
func NewState(editor Editor, opts ...Option) (*State, error) {
	if editor == nil {
		return nil, ErrNoEditor
	}
	s := &State{
		editor:  editor,
		out:     io.Discard,
		logger:  logging.Null(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.L = L
	openSafeLibraries(L)
	s.installSandbox()

	mod := newEditorModule(editor)
	L.SetGlobal("keyline", mod.table(L))
	L.PreloadModule("keyline", func(L *lua.LState) int {
		L.Push(L.GetGlobal("keyline"))
		return 1
	})

	return s, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes code loading from disk and routes print to the
// configured writer.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, path, func() error { return s.L.DoFile(path) })
}

// DoString executes a Lua chunk.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, "<string>", func() error { return s.L.DoString(code) })
}

func (s *State) run(ctx context.Context, name string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s: lua panic: %v", name, r)
		}
	}()

	start := time.Now()
	if err := fn(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script %s: %w", name, ctxErr)
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	s.logger.Debug("ran %s in %s", name, time.Since(start))
	return nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// RunFile executes the script at path against editor.
func RunFile(ctx context.Context, editor Editor, path string, opts ...Option) error {
	s, err := NewState(editor, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.DoFile(ctx, path)
}

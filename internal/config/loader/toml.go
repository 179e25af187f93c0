package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// IncludeKey names a top-level string holding another TOML file to load
// underneath the current one. Relative names resolve against the including
// file's directory.
const IncludeKey = "include"

// MaxIncludeDepth bounds include chains, which also stops include cycles.
const MaxIncludeDepth = 8

// ErrIncludeDepthExceeded indicates an include chain longer than
// MaxIncludeDepth.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// TOMLLoader reads one TOML configuration file.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader returns a loader for the file at path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(osFS{}, path)
}

// NewTOMLLoaderWithFS returns a loader reading through fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load reads the file and its include chain. Keys in the including file
// win over keys from the included one.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.load(l.path, MaxIncludeDepth)
}

func (l *TOMLLoader) load(path string, depth int) (map[string]any, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrIncludeDepthExceeded)
	}

	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	m := make(map[string]any)
	if err := toml.Unmarshal(data, &m); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}

	inc, ok := m[IncludeKey]
	if !ok {
		return m, nil
	}
	delete(m, IncludeKey)

	name, ok := inc.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a file name, got %T", path, IncludeKey, inc)
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(filepath.Dir(path), name)
	}
	base, err := l.load(name, depth-1)
	if err != nil {
		return nil, err
	}
	return DeepMerge(base, m), nil
}

// ParseError reports malformed TOML. Line and Column are 1-based and zero
// when unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge copies src into dst, recursing where both hold a table, and
// returns dst. A nil dst is allocated.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, isTable := v.(map[string]any)
		if have, ok := dst[k].(map[string]any); ok && isTable {
			dst[k] = DeepMerge(have, sub)
			continue
		}
		dst[k] = v
	}
	return dst
}

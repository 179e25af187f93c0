package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// SaveOption controls whether SaveToFile may replace an existing file.
type SaveOption uint8

const (
	// NoOverwrite refuses to replace an existing file.
	NoOverwrite SaveOption = iota
	// Overwrite replaces an existing file.
	Overwrite
)

// FromFile creates a buffer holding the content of path.
// The buffer is pre-sized to the file size and starts clean.
func FromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	if !utf8.Valid(data) {
		return nil, &FileError{Op: "decode", Path: path, Err: ErrInvalidUTF8}
	}
	opts = append([]Option{WithCapacity(len(data))}, opts...)
	b := New(opts...)
	b.load(string(data))
	return b, nil
}

// SaveToFile writes the full buffer content to path and returns the number
// of bytes written. The file is written to a temporary sibling and renamed
// into place. The dirty flag is cleared on success.
func (b *Buffer) SaveToFile(path string, opt SaveOption) (int, error) {
	if opt == NoOverwrite {
		if _, err := os.Stat(path); err == nil {
			return 0, &FileError{Op: "save", Path: path, Err: ErrFileExists}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return 0, &FileError{Op: "stat", Path: path, Err: unwrapPathError(err)}
		}
	}

	data := []byte(b.Text())

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, &FileError{Op: "create", Path: path, Err: unwrapPathError(err)}
	}
	tmpPath := tmp.Name()

	n, err := tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, &FileError{Op: "write", Path: path, Err: unwrapPathError(err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, &FileError{Op: "write", Path: path, Err: unwrapPathError(err)}
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode().Perm())
	} else {
		_ = os.Chmod(tmpPath, 0o644)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, &FileError{Op: "rename", Path: path, Err: unwrapPathError(err)}
	}

	b.dirty = false
	return n, nil
}

// unwrapPathError strips the *fs.PathError layer so FileError carries the
// path only once.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

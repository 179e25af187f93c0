package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrFileExists       = errors.New("destination already exists")
	ErrInvalidUTF8      = errors.New("content is not valid UTF-8")
)

// PreconditionError reports a caller bug such as reading past the end of the
// buffer. Buffer methods panic with a *PreconditionError; the engine recovers
// it and fails only the offending call.
type PreconditionError struct {
	Op     string
	Offset int
	Len    int
	Err    error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: offset %d with length %d: %v", e.Op, e.Offset, e.Len, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// FileError reports a failed load or save, keeping the file name and the
// root cause.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if errors.Is(e.Err, ErrFileExists) {
		return fmt.Sprintf("%s exists already, writing to file denied", e.Path)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func precondition(op string, offset, length int, err error) {
	panic(&PreconditionError{Op: op, Offset: offset, Len: length, Err: err})
}

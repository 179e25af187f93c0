package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoEditor is returned when a state is created without an editor.
	ErrNoEditor = errors.New("script requires an editor")
)

package engine

import (
	"errors"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/engine/macro"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrMacroNotFound indicates a macro register is empty.
	ErrMacroNotFound = macro.ErrMacroNotFound

	// ErrRemoveAtStart indicates a backspace at offset 0.
	ErrRemoveAtStart = errors.New("cannot remove before buffer start")

	// ErrNothingToDelete indicates a delete at the end of the buffer.
	ErrNothingToDelete = errors.New("nothing to delete at end of buffer")

	// ErrEmptyText indicates an InsertData without text.
	ErrEmptyText = errors.New("insert data requires text")

	// ErrUnknownOperation indicates an operation the engine cannot execute.
	ErrUnknownOperation = history.ErrUnknownOperation

	// ErrPrecondition indicates a buffer precondition was violated during a
	// call. The call failed but the engine remains usable.
	ErrPrecondition = errors.New("precondition violated")
)

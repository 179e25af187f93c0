package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/keyline/internal/engine/history"
)

// execute dispatches op. The caller holds e.mu.
func (e *Engine) execute(op history.Operation) (err error) {
	defer recoverPrecondition(&err)

	switch o := op.(type) {
	case history.Insert:
		return e.insert(o)
	case history.InsertData:
		return e.insertData(o)
	case history.Delete:
		return e.delete(o)
	case history.Remove:
		return e.remove(o)
	case history.Undo:
		return e.undo()
	case history.Redo:
		return e.redo()
	case history.MacroRecord:
		return e.macros.Start(o.Register)
	case history.MacroStop:
		reg, n, err := e.macros.Stop()
		if err == nil {
			e.logger.Info("recorded %d operations into register %c", n, reg)
		}
		return err
	case history.MacroPlay:
		return e.play(o.Register)
	case nil:
		return fmt.Errorf("%w: nil operation", ErrUnknownOperation)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}
}

func (e *Engine) checkPos(op history.Operation, pos int) error {
	if pos < 0 || pos > e.buf.Len() {
		return fmt.Errorf("%s: %w", op, ErrOffsetOutOfRange)
	}
	return nil
}

// moveTo positions the cursor, and with it the gap, at pos.
func (e *Engine) moveTo(pos int) {
	if e.buf.Cursor().Absolute != pos {
		e.buf.SetCursor(pos)
	}
}

// record pushes a successful edit to history and to an active recording.
func (e *Engine) record(op history.Operation, cursor int) {
	e.history.Push(history.Entry{Op: op, Cursor: cursor})
	e.macros.Record(op)
}

func (e *Engine) insert(o history.Insert) error {
	if !utf8.ValidRune(o.Char) {
		return fmt.Errorf("%s: %w", o, history.ErrInvalidChar)
	}
	if err := e.checkPos(o, o.Pos); err != nil {
		return err
	}
	before := e.buf.Cursor().Absolute
	e.moveTo(o.Pos)
	e.buf.InsertChar(o.Char)
	e.record(o, before)
	return nil
}

func (e *Engine) insertData(o history.InsertData) error {
	if o.Text == "" {
		return fmt.Errorf("%s: %w", o, ErrEmptyText)
	}
	if !utf8.ValidString(o.Text) {
		return fmt.Errorf("%s: %w", o, history.ErrInvalidText)
	}
	if err := e.checkPos(o, o.Pos); err != nil {
		return err
	}
	before := e.buf.Cursor().Absolute
	e.moveTo(o.Pos)
	e.buf.InsertData(o.Text)
	e.record(o, before)
	return nil
}

func (e *Engine) delete(o history.Delete) error {
	if err := e.checkPos(o, o.Pos); err != nil {
		return err
	}
	if o.Pos == e.buf.Len() {
		return fmt.Errorf("%s: %w", o, ErrNothingToDelete)
	}
	before := e.buf.Cursor().Absolute
	e.moveTo(o.Pos)
	r, _ := e.buf.Delete()
	if o.Char != 0 && o.Char != r {
		e.logger.Warn("delete at %d expected %q, deleted %q", o.Pos, o.Char, r)
	}
	e.record(history.Delete{Pos: o.Pos, Char: r}, before)
	return nil
}

func (e *Engine) remove(o history.Remove) error {
	if o.Pos == 0 {
		return fmt.Errorf("%s: %w", o, ErrRemoveAtStart)
	}
	if err := e.checkPos(o, o.Pos); err != nil {
		return err
	}
	before := e.buf.Cursor().Absolute
	e.moveTo(o.Pos)
	r, _ := e.buf.Remove()
	if o.Char != 0 && o.Char != r {
		e.logger.Warn("remove at %d expected %q, removed %q", o.Pos, o.Char, r)
	}
	e.record(history.Remove{Pos: o.Pos, Char: r}, before)
	return nil
}

// apply performs op on the buffer without touching history.
func (e *Engine) apply(op history.Operation) error {
	switch o := op.(type) {
	case history.Insert:
		if !utf8.ValidRune(o.Char) {
			return fmt.Errorf("%s: %w", o, history.ErrInvalidChar)
		}
		if err := e.checkPos(o, o.Pos); err != nil {
			return err
		}
		e.moveTo(o.Pos)
		e.buf.InsertChar(o.Char)
	case history.InsertData:
		if err := e.checkPos(o, o.Pos); err != nil {
			return err
		}
		e.moveTo(o.Pos)
		e.buf.InsertData(o.Text)
	case history.Delete:
		if err := e.checkPos(o, o.Pos); err != nil {
			return err
		}
		e.moveTo(o.Pos)
		if _, ok := e.buf.Delete(); !ok {
			return fmt.Errorf("%s: %w", o, ErrNothingToDelete)
		}
	case history.Remove:
		if o.Pos == 0 {
			return fmt.Errorf("%s: %w", o, ErrRemoveAtStart)
		}
		if err := e.checkPos(o, o.Pos); err != nil {
			return err
		}
		e.moveTo(o.Pos)
		if r, _ := e.buf.Remove(); r != o.Char {
			e.logger.Warn("history out of sync: %s removed %q", o, r)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	return nil
}

func (e *Engine) undo() error {
	entry, ok := e.history.PopUndo()
	if !ok {
		return ErrNothingToUndo
	}
	inverse, err := history.Invert(entry.Op)
	if err != nil {
		e.history.PushUndo(entry)
		return fmt.Errorf("undo %s: %w", entry.Op, err)
	}

	cursor := e.buf.Cursor().Absolute
	var group uint64
	if len(inverse) > 1 {
		group = e.history.NextGroup()
	}
	for _, op := range inverse {
		if err := e.apply(op); err != nil {
			return fmt.Errorf("undo %s: %w", entry.Op, err)
		}
		e.history.PushRedo(history.Entry{Op: op, Origin: entry.Op, Cursor: cursor, Group: group})
	}
	e.moveTo(entry.Cursor)
	return nil
}

func (e *Engine) redo() error {
	entries, ok := e.history.PopRedo()
	if !ok {
		return ErrNothingToRedo
	}
	top := entries[0]

	cursor := e.buf.Cursor().Absolute
	if err := e.apply(top.Origin); err != nil {
		return fmt.Errorf("redo %s: %w", top.Origin, err)
	}
	e.history.PushUndo(history.Entry{Op: top.Origin, Cursor: cursor})
	e.moveTo(top.Cursor)
	return nil
}

// play replays a register relative to the cursor. It stops at the first
// failing edit; edits already applied stay in history.
func (e *Engine) play(register rune) error {
	ops, err := e.macros.Get(register)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	shift := e.buf.Cursor().Absolute - position(ops[0])
	for i, op := range ops {
		if err := e.execute(shifted(op, shift)); err != nil {
			return fmt.Errorf("macro %c step %d: %w", register, i, err)
		}
	}
	e.macros.MarkPlayed(register)
	return nil
}

func position(op history.Operation) int {
	switch o := op.(type) {
	case history.Insert:
		return o.Pos
	case history.InsertData:
		return o.Pos
	case history.Delete:
		return o.Pos
	case history.Remove:
		return o.Pos
	}
	return 0
}

func shifted(op history.Operation, shift int) history.Operation {
	switch o := op.(type) {
	case history.Insert:
		o.Pos += shift
		return o
	case history.InsertData:
		o.Pos += shift
		return o
	case history.Delete:
		o.Pos += shift
		return o
	case history.Remove:
		o.Pos += shift
		return o
	}
	return op
}

package history

import (
	"errors"
	"fmt"
)

// Kind identifies an operation variant.
type Kind uint8

const (
	KindInsert Kind = iota
	KindInsertData
	KindDelete
	KindRemove
	KindUndo
	KindRedo
	KindMacroRecord
	KindMacroStop
	KindMacroPlay
)

var kindNames = [...]string{
	KindInsert:      "insert",
	KindInsertData:  "insert_data",
	KindDelete:      "delete",
	KindRemove:      "remove",
	KindUndo:        "undo",
	KindRedo:        "redo",
	KindMacroRecord: "macro_record",
	KindMacroStop:   "macro_stop",
	KindMacroPlay:   "macro_play",
}

// String returns the tag used for the kind in the operation log.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsEdit reports whether operations of this kind mutate the buffer and are
// recorded in history.
func (k Kind) IsEdit() bool {
	return k <= KindRemove
}

// ParseKind returns the kind for a log tag.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Operation is one request to the command engine.
// The set of implementations is closed.
type Operation interface {
	Kind() Kind
	String() string
	operation()
}

// Insert inserts Char at Pos.
type Insert struct {
	Pos  int
	Char rune
}

// InsertData inserts Text at Pos.
type InsertData struct {
	Pos  int
	Text string
}

// Delete deletes the rune at Pos. Char is the deleted rune.
type Delete struct {
	Pos  int
	Char rune
}

// Remove removes the rune before Pos. Char is the removed rune.
type Remove struct {
	Pos  int
	Char rune
}

// Undo reverts the most recent history entry.
type Undo struct{}

// Redo reapplies the most recently undone entry.
type Redo struct{}

// MacroRecord starts recording edits into Register.
type MacroRecord struct {
	Register rune
}

// MacroStop stops the active recording.
type MacroStop struct{}

// MacroPlay replays the edits stored in Register.
type MacroPlay struct {
	Register rune
}

func (Insert) Kind() Kind      { return KindInsert }
func (InsertData) Kind() Kind  { return KindInsertData }
func (Delete) Kind() Kind      { return KindDelete }
func (Remove) Kind() Kind      { return KindRemove }
func (Undo) Kind() Kind        { return KindUndo }
func (Redo) Kind() Kind        { return KindRedo }
func (MacroRecord) Kind() Kind { return KindMacroRecord }
func (MacroStop) Kind() Kind   { return KindMacroStop }
func (MacroPlay) Kind() Kind   { return KindMacroPlay }

func (Insert) operation()      {}
func (InsertData) operation()  {}
func (Delete) operation()      {}
func (Remove) operation()      {}
func (Undo) operation()        {}
func (Redo) operation()        {}
func (MacroRecord) operation() {}
func (MacroStop) operation()   {}
func (MacroPlay) operation()   {}

func (o Insert) String() string      { return fmt.Sprintf("insert(%d, %q)", o.Pos, o.Char) }
func (o InsertData) String() string  { return fmt.Sprintf("insert_data(%d, %q)", o.Pos, o.Text) }
func (o Delete) String() string      { return fmt.Sprintf("delete(%d, %q)", o.Pos, o.Char) }
func (o Remove) String() string      { return fmt.Sprintf("remove(%d, %q)", o.Pos, o.Char) }
func (Undo) String() string          { return "undo" }
func (Redo) String() string          { return "redo" }
func (o MacroRecord) String() string { return fmt.Sprintf("macro_record(%c)", o.Register) }
func (MacroStop) String() string     { return "macro_stop" }
func (o MacroPlay) String() string   { return fmt.Sprintf("macro_play(%c)", o.Register) }

// Errors returned by Invert.
var (
	ErrNotInvertible  = errors.New("operation has no inverse")
	ErrInverseAtStart = errors.New("inverse would precede buffer start")
)

// Invert returns the operations that revert op, in the order they must be
// applied.
//
// Insert at p becomes a Remove at p+1. Remove at p becomes an Insert at p-1.
// Delete at p becomes an Insert at p. InsertData of n runes at p becomes n
// Removes from p+n down to p+1, last rune first.
func Invert(op Operation) ([]Operation, error) {
	switch o := op.(type) {
	case Insert:
		return []Operation{Remove{Pos: o.Pos + 1, Char: o.Char}}, nil
	case Delete:
		return []Operation{Insert{Pos: o.Pos, Char: o.Char}}, nil
	case Remove:
		if o.Pos <= 0 {
			return nil, fmt.Errorf("%s: %w", o, ErrInverseAtStart)
		}
		return []Operation{Insert{Pos: o.Pos - 1, Char: o.Char}}, nil
	case InsertData:
		runes := []rune(o.Text)
		inv := make([]Operation, 0, len(runes))
		for i := len(runes) - 1; i >= 0; i-- {
			inv = append(inv, Remove{Pos: o.Pos + i + 1, Char: runes[i]})
		}
		return inv, nil
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrNotInvertible)
	}
}

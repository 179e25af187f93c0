package script

import (
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/history"
)

// Editor is the engine surface scripts drive.
type Editor interface {
	Execute(op history.Operation) error
	Text() string
	TextRange(begin, end int) (string, error)
	Len() int
	LineCount() int
	Cursor() buffer.Position
	SetCursor(offset int) bool
	MoveCursor(kind buffer.MoveKind) buffer.Position
	FindRangeOf(cursor int, kind buffer.ObjectKind) (start, end buffer.Position)
	IsDirty() bool
	Reset()
	Save(path string, opt buffer.SaveOption) (int, error)
}

type editorModule struct {
	ed Editor
}

func newEditorModule(ed Editor) *editorModule {
	return &editorModule{ed: ed}
}

func (m *editorModule) table(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert":      m.insert,
		"insert_data": m.insertData,
		"delete":      m.delete,
		"remove":      m.remove,
		"undo":        m.undo,
		"redo":        m.redo,
		"record":      m.record,
		"stop":        m.stop,
		"play":        m.play,
		"text":        m.text,
		"len":         m.bufLen,
		"line_count":  m.lineCount,
		"cursor":      m.cursor,
		"set_cursor":  m.setCursor,
		"move":        m.move,
		"object":      m.object,
		"modified":    m.modified,
		"clear":       m.clear,
		"save":        m.save,
	})
}

func (m *editorModule) exec(L *lua.LState, op history.Operation) int {
	if err := m.ed.Execute(op); err != nil {
		L.RaiseError("%s: %v", op, err)
	}
	return 0
}

// insert(pos, ch)
func (m *editorModule) insert(L *lua.LState) int {
	pos := L.CheckInt(1)
	s := L.CheckString(2)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		L.ArgError(2, "expected a single character")
		return 0
	}
	return m.exec(L, history.Insert{Pos: pos, Char: r})
}

// insert_data(pos, text)
func (m *editorModule) insertData(L *lua.LState) int {
	return m.exec(L, history.InsertData{Pos: L.CheckInt(1), Text: L.CheckString(2)})
}

// delete(pos) deletes the character at pos.
func (m *editorModule) delete(L *lua.LState) int {
	return m.exec(L, history.Delete{Pos: L.CheckInt(1)})
}

// remove(pos) removes the character before pos.
func (m *editorModule) remove(L *lua.LState) int {
	return m.exec(L, history.Remove{Pos: L.CheckInt(1)})
}

func (m *editorModule) undo(L *lua.LState) int {
	return m.exec(L, history.Undo{})
}

func (m *editorModule) redo(L *lua.LState) int {
	return m.exec(L, history.Redo{})
}

func (m *editorModule) register(L *lua.LState) rune {
	s := L.CheckString(1)
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || size == 0 {
		L.ArgError(1, "expected a register name")
	}
	return r
}

// record(reg)
func (m *editorModule) record(L *lua.LState) int {
	return m.exec(L, history.MacroRecord{Register: m.register(L)})
}

// stop()
func (m *editorModule) stop(L *lua.LState) int {
	return m.exec(L, history.MacroStop{})
}

// play(reg)
func (m *editorModule) play(L *lua.LState) int {
	return m.exec(L, history.MacroPlay{Register: m.register(L)})
}

// text([start, end]) -> string
func (m *editorModule) text(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LString(m.ed.Text()))
		return 1
	}
	s, err := m.ed.TextRange(L.CheckInt(1), L.CheckInt(2))
	if err != nil {
		L.RaiseError("text: %v", err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}

// len() -> number of characters
func (m *editorModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.ed.Len()))
	return 1
}

func (m *editorModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.ed.LineCount()))
	return 1
}

// cursor() -> offset, line, column
func (m *editorModule) cursor(L *lua.LState) int {
	p := m.ed.Cursor()
	L.Push(lua.LNumber(p.Absolute))
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column()))
	return 3
}

// set_cursor(offset) -> bool
func (m *editorModule) setCursor(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.SetCursor(L.CheckInt(1))))
	return 1
}

// move(kind) -> offset
func (m *editorModule) move(L *lua.LState) int {
	name := L.CheckString(1)
	for k := buffer.MoveCharPrev; k <= buffer.MoveLineEnd; k++ {
		if k.String() == name {
			L.Push(lua.LNumber(m.ed.MoveCursor(k).Absolute))
			return 1
		}
	}
	L.ArgError(1, "unknown motion "+name)
	return 0
}

// object(kind[, offset]) -> start, end
func (m *editorModule) object(L *lua.LState) int {
	name := L.CheckString(1)
	at := L.OptInt(2, m.ed.Cursor().Absolute)
	for k := buffer.ObjectWord; k <= buffer.ObjectBlock; k++ {
		if k.String() == name {
			start, end := m.ed.FindRangeOf(at, k)
			L.Push(lua.LNumber(start.Absolute))
			L.Push(lua.LNumber(end.Absolute))
			return 2
		}
	}
	L.ArgError(1, "unknown object "+name)
	return 0
}

func (m *editorModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.IsDirty()))
	return 1
}

// clear() empties the buffer and forgets history.
func (m *editorModule) clear(L *lua.LState) int {
	m.ed.Reset()
	return 0
}

// save(path[, overwrite]) -> bytes written
func (m *editorModule) save(L *lua.LState) int {
	path := L.CheckString(1)
	opt := buffer.NoOverwrite
	if L.OptBool(2, false) {
		opt = buffer.Overwrite
	}
	n, err := m.ed.Save(path, opt)
	if err != nil {
		L.RaiseError("save: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyline/internal/engine/buffer"
)

// MacroRegister is the register the macro keys record to and play from.
const MacroRegister = 'q'

// actionKind categorizes what a key press does.
type actionKind uint8

const (
	actionNone actionKind = iota
	actionInsert
	actionRemove
	actionDelete
	actionMove
	actionUndo
	actionRedo
	actionSave
	actionQuit
	actionMacroRecord
	actionMacroStop
	actionMacroPlay
	actionMacroCancel
)

// action is a decoded key press.
type action struct {
	kind actionKind
	char rune
	move buffer.MoveKind
}

// keyAction maps a key event to an editor action.
func keyAction(ev *tcell.EventKey) action {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyRune:
		return action{kind: actionInsert, char: ev.Rune()}
	case tcell.KeyEnter:
		return action{kind: actionInsert, char: '\n'}
	case tcell.KeyTab:
		return action{kind: actionInsert, char: '\t'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return action{kind: actionRemove}
	case tcell.KeyDelete:
		return action{kind: actionDelete}

	case tcell.KeyLeft:
		if ctrl {
			return action{kind: actionMove, move: buffer.MoveWordPrev}
		}
		return action{kind: actionMove, move: buffer.MoveCharPrev}
	case tcell.KeyRight:
		if ctrl {
			return action{kind: actionMove, move: buffer.MoveWordNext}
		}
		return action{kind: actionMove, move: buffer.MoveCharNext}
	case tcell.KeyUp:
		return action{kind: actionMove, move: buffer.MoveLinePrev}
	case tcell.KeyDown:
		return action{kind: actionMove, move: buffer.MoveLineNext}
	case tcell.KeyHome, tcell.KeyCtrlA:
		return action{kind: actionMove, move: buffer.MoveLineHome}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return action{kind: actionMove, move: buffer.MoveLineEnd}

	case tcell.KeyCtrlZ:
		return action{kind: actionUndo}
	case tcell.KeyCtrlY:
		return action{kind: actionRedo}
	case tcell.KeyCtrlS:
		return action{kind: actionSave}
	case tcell.KeyCtrlQ:
		return action{kind: actionQuit}
	case tcell.KeyCtrlR:
		return action{kind: actionMacroRecord}
	case tcell.KeyCtrlT:
		return action{kind: actionMacroStop}
	case tcell.KeyCtrlP:
		return action{kind: actionMacroPlay}
	case tcell.KeyEscape:
		return action{kind: actionMacroCancel}
	}
	return action{}
}

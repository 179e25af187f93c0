package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

var (
	textStyle   = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// cellWidth returns the screen width of a grapheme cluster starting at
// column x. Tabs extend to the next tab stop.
func cellWidth(cluster string, x, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth - x%tabWidth
	}
	return uniseg.StringWidth(cluster)
}

// displayWidth returns the screen width of line.
func displayWidth(line string, tabWidth int) int {
	x := 0
	state := -1
	for line != "" {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		x += cellWidth(cluster, x, tabWidth)
	}
	return x
}

// draw paints the visible lines, the status line and the cursor.
func (a *Application) draw() {
	w, h := a.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	rows := h - 1
	tab := max(a.cfg.Editor.TabWidth, 1)

	lines := strings.Split(a.engine.Text(), "\n")
	cur := a.engine.Cursor()
	curLine := a.engine.LineAtCursor()
	curX := displayWidth(string([]rune(curLine)[:cur.Column()]), tab)
	a.scrollTo(cur.Line, curX, rows, w)

	a.screen.Clear()
	for y := range rows {
		n := a.top + y
		if n >= len(lines) {
			break
		}
		a.drawLine(lines[n], y, w, tab)
	}
	a.drawStatus(w, h-1, cur.Line+1, cur.Column()+1)

	if rows > 0 {
		a.screen.ShowCursor(curX-a.left, cur.Line-a.top)
	}
	a.screen.Show()
}

// scrollTo keeps the cursor cell inside the viewport.
func (a *Application) scrollTo(line, x, rows, cols int) {
	if line < a.top {
		a.top = line
	}
	if rows > 0 && line >= a.top+rows {
		a.top = line - rows + 1
	}
	if x < a.left {
		a.left = x
	}
	if x >= a.left+cols {
		a.left = x - cols + 1
	}
}

func (a *Application) drawLine(line string, y, w, tab int) {
	x := 0
	state := -1
	for line != "" {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		cw := cellWidth(cluster, x, tab)

		sx := x - a.left
		if sx >= w {
			return
		}
		if sx >= 0 {
			if cluster == "\t" {
				for i := range cw {
					if sx+i < w {
						a.screen.SetContent(sx+i, y, ' ', nil, textStyle)
					}
				}
			} else {
				runes := []rune(cluster)
				a.screen.SetContent(sx, y, runes[0], runes[1:], textStyle)
			}
		}
		x += cw
	}
}

func (a *Application) drawStatus(w, y, line, col int) {
	name := "[No Name]"
	if a.path != "" {
		name = filepath.Base(a.path)
	}
	if a.engine.IsDirty() {
		name += " [+]"
	}

	left := " " + name
	if a.macros.IsRecording() {
		left += fmt.Sprintf("  REC @%c", a.macros.CurrentRegister())
	}
	if a.status != "" {
		left += "  " + a.status
	}
	right := fmt.Sprintf("Ln %d, Col %d ", line, col)

	text := []rune(left)
	pad := w - len(text) - len([]rune(right))
	if pad < 1 {
		pad = 1
	}
	text = append(text, []rune(strings.Repeat(" ", pad)+right)...)

	for x := range w {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		a.screen.SetContent(x, y, r, nil, statusStyle)
	}
}

package display

import (
	"math"
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-golem/internal/level"
)

const cellWidth = 2

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleDoor   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHeld   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleExit   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	stylePad    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleSynced = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleDesync = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor = tcell.StyleDefault.Reverse(true)
	styleTitle  = tcell.StyleDefault.Bold(true)
)

const (
	glyphWall     = '#'
	glyphFloor    = '.'
	glyphClosed   = '+'
	glyphOpen     = '\''
	glyphPad      = '^'
	airborneLevel = 1.5
)

// drawBoard renders the grid with its origin cell at the top-left corner
// (x, y). North is up. It returns the number of rows used.
func drawBoard(s tcell.Screen, x, y int, w *level.World) int {
	width, depth := w.Spec.Size()
	at := func(cx, cz int) (int, int) {
		return x + cx*cellWidth, y + depth - 1 - cz
	}

	for cz := 0; cz < depth; cz++ {
		for cx := 0; cx < width; cx++ {
			sx, sy := at(cx, cz)
			switch w.Spec.Tile(level.Cell{X: cx, Z: cz}) {
			case level.TileWall:
				s.SetContent(sx, sy, glyphWall, nil, styleWall)
			case level.TileFloor:
				s.SetContent(sx, sy, glyphFloor, nil, styleFloor)
			}
		}
	}

	for _, p := range w.Pads {
		sx, sy := at(p.Position().X, p.Position().Z)
		s.SetContent(sx, sy, glyphPad, nil, stylePad)
	}

	exits := map[string]bool{}
	held := map[string]bool{}
	for _, bs := range w.Spec.Buttons {
		exits[bs.ID] = slices.Contains(bs.Targets, level.ExitTarget)
		held[bs.ID] = bs.Held
	}
	for _, b := range w.Buttons {
		style := styleButton
		switch {
		case exits[b.ID()]:
			style = styleExit
		case held[b.ID()]:
			style = styleHeld
		}
		sx, sy := at(b.Position().X, b.Position().Z)
		s.SetContent(sx, sy, digit(b.Required()), nil, style)
	}

	for _, d := range w.Doors {
		glyph := glyphClosed
		if d.IsOpen() {
			glyph = glyphOpen
		}
		sx, sy := at(d.Position().X, d.Position().Z)
		s.SetContent(sx, sy, glyph, nil, styleDoor)
	}

	for _, g := range w.Golems.All() {
		style := styleDesync
		if g.IsSynced() {
			style = styleSynced
		}
		drawDie(s, at, g.Visual().X, g.Visual().Y, g.Visual().Z, g.CurrentSide(), style)
	}
	v := w.Player.Visual()
	drawDie(s, at, v.X, v.Y, v.Z, w.Player.CurrentSide(), stylePlayer)

	return depth
}

func drawDie(s tcell.Screen, at func(int, int) (int, int), x, y, z float64, side int, style tcell.Style) {
	if y > airborneLevel {
		style = style.Bold(true).Underline(true)
	}
	sx, sy := at(int(math.Round(x)), int(math.Round(z)))
	s.SetContent(sx, sy, digit(side), nil, style)
}

func digit(n int) rune {
	if n < 0 || n > 9 {
		return '?'
	}
	return rune(strconv.Itoa(n)[0])
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

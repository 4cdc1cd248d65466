package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vincentfiestada/ai-nav/grid"
)

// Canvas is the drawing surface Draw needs. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleUnexplored = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlocked    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
	styleQueued     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCurrent    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleExplored   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleGoal       = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePath       = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleText       = tcell.StyleDefault
)

// Style returns the terminal style for a tile status.
func Style(s grid.Status) tcell.Style {
	switch s {
	case grid.Blocked:
		return styleBlocked
	case grid.Queued:
		return styleQueued
	case grid.Current:
		return styleCurrent
	case grid.Explored:
		return styleExplored
	case grid.Goal:
		return styleGoal
	}
	return styleUnexplored
}

// Draw paints snap onto c with its top-left tile at (x0, y0). Path cells are
// drawn over their status as in WriteText.
func Draw(c Canvas, snap grid.Snapshot, path []grid.Coordinate, x0, y0 int) {
	overlay := Overlay(path)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			status := snap.At(x, y)
			r, style := Symbol(status), Style(status)
			if o, ok := overlay[grid.Coordinate{X: x, Y: y}]; ok {
				r, style = o, stylePath
			}
			c.SetContent(x0+x, y0+y, r, nil, style)
		}
	}
}

// DrawString writes s left to right starting at (x, y).
func DrawString(c Canvas, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

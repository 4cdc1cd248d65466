// Package render draws grid snapshots, either as plain text or onto a
// terminal canvas.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/vincentfiestada/ai-nav/grid"
)

// Symbols used for each tile status.
const (
	SymbolUnexplored = '.'
	SymbolBlocked    = '#'
	SymbolQueued     = '+'
	SymbolCurrent    = '@'
	SymbolExplored   = '~'
	SymbolGoal       = 'G'
	SymbolPath       = '*'
	SymbolStart      = 'S'
)

// Symbol returns the character drawn for a tile status.
func Symbol(s grid.Status) rune {
	switch s {
	case grid.Blocked:
		return SymbolBlocked
	case grid.Queued:
		return SymbolQueued
	case grid.Current:
		return SymbolCurrent
	case grid.Explored:
		return SymbolExplored
	case grid.Goal:
		return SymbolGoal
	}
	return SymbolUnexplored
}

// Overlay maps path cells to the symbol drawn over their status. The first
// cell is the start, the last keeps its goal symbol.
func Overlay(path []grid.Coordinate) map[grid.Coordinate]rune {
	if len(path) == 0 {
		return nil
	}
	out := make(map[grid.Coordinate]rune, len(path))
	if len(path) == 1 {
		return out
	}
	for _, c := range path[1 : len(path)-1] {
		out[c] = SymbolPath
	}
	out[path[0]] = SymbolStart
	return out
}

// WriteText writes snap as one line per row, top row first. With headers,
// column numbers are written above the grid one digit per line and each row
// is prefixed with its index.
func WriteText(w io.Writer, snap grid.Snapshot, path []grid.Coordinate, headers bool) error {
	bw := bufio.NewWriter(w)
	overlay := Overlay(path)

	labelWidth := len(strconv.Itoa(max(snap.Height-1, 0)))
	if headers {
		digits := len(strconv.Itoa(max(snap.Width-1, 0)))
		for place := digits - 1; place >= 0; place-- {
			fmt.Fprintf(bw, "%*s ", labelWidth, "")
			div := pow10(place)
			for x := 0; x < snap.Width; x++ {
				if x < div && place > 0 {
					bw.WriteByte(' ')
					continue
				}
				bw.WriteByte(byte('0' + (x/div)%10))
			}
			bw.WriteByte('\n')
		}
	}

	for y := 0; y < snap.Height; y++ {
		if headers {
			fmt.Fprintf(bw, "%*d ", labelWidth, y)
		}
		for x := 0; x < snap.Width; x++ {
			c := grid.Coordinate{X: x, Y: y}
			if r, ok := overlay[c]; ok {
				bw.WriteRune(r)
				continue
			}
			bw.WriteRune(Symbol(snap.At(x, y)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func pow10(n int) int {
	v := 1
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}

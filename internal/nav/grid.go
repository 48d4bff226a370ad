// Package nav converts obstacle geometry into a walkability grid and finds
// shortest 4-connected paths across it.
package nav

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-rpg/internal/core"
)

// Cell is a grid coordinate (column X, row Y).
type Cell struct {
	X int
	Y int
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	return core.Abs(c.X-o.X) + core.Abs(c.Y-o.Y)
}

// Grid is a walkability grid stored in row-major order: index = y*W + x.
// 0 is walkable, 1 is blocked.
type Grid struct {
	W     int
	H     int
	Cells []uint8
}

// NewGrid creates an all-walkable grid.
func NewGrid(w, h int) *Grid {
	w = core.Max(w, 0)
	h = core.Max(h, 0)
	return &Grid{W: w, H: h, Cells: make([]uint8, w*h)}
}

// BuildGrid sizes a grid to worldW/tile × worldH/tile and marks the cell
// holding each obstacle's top-left corner as blocked. Obstacles outside the
// grid are ignored. The result depends only on the inputs.
func BuildGrid(worldW, worldH, tile int, obstacles []core.Rect) *Grid {
	if tile <= 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(worldW/tile, worldH/tile)
	for _, o := range obstacles {
		c := PixelToGrid(core.V(float64(o.X), float64(o.Y)), tile)
		g.Block(c)
	}
	return g
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return g != nil && c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Walkable returns true for in-bounds, unblocked cells.
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && g.Cells[g.index(c)] == 0
}

// Block marks a cell as blocked. Out-of-bounds cells are ignored.
func (g *Grid) Block(c Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = 1
	}
}

// String dumps the grid as rows of '.' and '#'.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			if g.Cells[g.index(Cell{X: x, Y: y})] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '.' (walkable) and '#' (blocked).
// Rows shorter than the longest are padded with walkable cells.
func ParseGrid(rows ...string) *Grid {
	w := 0
	for _, r := range rows {
		w = core.Max(w, len(r))
	}
	g := NewGrid(w, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			if r[x] == '#' {
				g.Block(Cell{X: x, Y: y})
			}
		}
	}
	return g
}

// PixelToGrid maps a world position to the cell containing it (floor division).
func PixelToGrid(p core.Vec2, tile int) Cell {
	t := float64(tile)
	return Cell{
		X: int(math.Floor(p.X / t)),
		Y: int(math.Floor(p.Y / t)),
	}
}

// GridToPixelCenter maps a cell to the world position of its center.
func GridToPixelCenter(c Cell, tile int) core.Vec2 {
	half := float64(tile) / 2
	return core.Vec2{
		X: float64(c.X*tile) + half,
		Y: float64(c.Y*tile) + half,
	}
}

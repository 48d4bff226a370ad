package world

import "github.com/vovakirdan/tui-rpg/internal/core"

// TileKind distinguishes static tiles.
type TileKind uint8

const (
	TileInvisible TileKind = iota // boundary block
	TileGrass                     // destructible, attackable
	TileObject                    // tall decoration, drawn one tile up
)

func (k TileKind) String() string {
	switch k {
	case TileGrass:
		return "grass"
	case TileObject:
		return "object"
	default:
		return "invisible"
	}
}

// hitbox insets per kind: (dx, dy) passed to Inflate.
var tileInset = map[TileKind][2]int{
	TileInvisible: {-10, 0},
	TileGrass:     {-10, -10},
	TileObject:    {-10, -40},
}

// Tile is a static obstacle. Origin is the pixel top-left of the layout
// cell it came from and identifies it across reloads.
type Tile struct {
	Kind    TileKind
	Code    int
	Origin  core.Point
	Rect    core.Rect
	Hitbox  core.Rect
	removed bool
}

// NewTile places a tile for the layout cell whose top-left is (x, y).
func NewTile(kind TileKind, code, x, y, size int) *Tile {
	t := &Tile{
		Kind:   kind,
		Code:   code,
		Origin: core.Point{X: x, Y: y},
		Rect:   core.NewRect(x, y, size, size),
	}
	if kind == TileObject {
		t.Rect.Y -= size
	}
	inset := tileInset[kind]
	t.Hitbox = t.Rect.Inflate(inset[0], inset[1])
	return t
}

// Removed reports whether the tile has been destroyed.
func (t *Tile) Removed() bool { return t.removed }

// ObstacleSet holds the tiles actors collide with, in insertion order.
// Collision resolution walks them in that order.
type ObstacleSet struct {
	tiles []*Tile
}

// NewObstacleSet creates an empty set.
func NewObstacleSet() *ObstacleSet {
	return &ObstacleSet{}
}

// Add appends a tile.
func (s *ObstacleSet) Add(t *Tile) {
	s.tiles = append(s.tiles, t)
}

// Remove drops a tile. It stops blocking immediately.
func (s *ObstacleSet) Remove(t *Tile) {
	t.removed = true
	for i, o := range s.tiles {
		if o == t {
			s.tiles = append(s.tiles[:i], s.tiles[i+1:]...)
			return
		}
	}
}

// Len returns the number of live tiles.
func (s *ObstacleSet) Len() int {
	return len(s.tiles)
}

// Tiles returns the live tiles in iteration order. The slice must not be
// modified.
func (s *ObstacleSet) Tiles() []*Tile {
	return s.tiles
}

// Rects returns each tile's display rect, in iteration order.
func (s *ObstacleSet) Rects() []core.Rect {
	rects := make([]core.Rect, len(s.tiles))
	for i, t := range s.tiles {
		rects[i] = t.Rect
	}
	return rects
}

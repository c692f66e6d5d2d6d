package grid

import "fmt"

// Pos is a cell coordinate. Plain value, no ownership.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Tile is the per-cell terrain contract. The engine only consults Walkable;
// Kind feeds observations and snapshots. New tile variants can carry extra
// data without changing the Grid API.
type Tile interface {
	Walkable() bool
	Kind() string
}

// Floor is the walkable base tile.
type Floor struct{}

func (Floor) Walkable() bool { return true }
func (Floor) Kind() string   { return "floor" }

// Wall is the non-walkable base tile.
type Wall struct{}

func (Wall) Walkable() bool { return false }
func (Wall) Kind() string   { return "wall" }

// OutOfBoundsError reports a Get/Set outside the grid dimensions.
type OutOfBoundsError struct {
	Pos Pos
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("out of bounds: %s", e.Pos)
}

// Grid owns map topology and walkability queries. Dimensions are fixed at
// construction; tiles are stored in a dense row-major array.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// New builds a width x height grid filled with def. A nil def means Floor.
func New(width, height int, def Tile) *Grid {
	if def == nil {
		def = Floor{}
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = def
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) idx(p Pos) int {
	return p.Y*g.width + p.X
}

// Get returns the tile at p, or OutOfBoundsError.
func (g *Grid) Get(p Pos) (Tile, error) {
	if !g.InBounds(p) {
		return nil, OutOfBoundsError{Pos: p}
	}
	return g.tiles[g.idx(p)], nil
}

// Set replaces the tile at p, or returns OutOfBoundsError.
func (g *Grid) Set(p Pos, t Tile) error {
	if !g.InBounds(p) {
		return OutOfBoundsError{Pos: p}
	}
	g.tiles[g.idx(p)] = t
	return nil
}

// Mover is the actor a walkability query is evaluated for. The base tiles
// ignore it; tile variants may use it for per-actor traversal rules.
type Mover interface {
	UID() uint64
}

// IsWalkable reports whether p can be occupied by m (nil for an
// actor-agnostic query). Out-of-bounds positions are not walkable rather
// than an error.
func (g *Grid) IsWalkable(p Pos, m Mover) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.tiles[g.idx(p)].Walkable()
}

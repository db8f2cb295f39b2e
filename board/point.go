package board

import (
	"github.com/tenuki/goban/game"
)

// Point identifies a single board intersection. Points are created once per
// Board and live as long as the board does; all navigation links are wired at
// construction and never change.
type Point struct {
	coord  game.Coord
	vertex string
	board  *Board

	stone  game.Colour
	region *Region // non-owning back reference

	left, right, above, below *Point
	next, prev                *Point // row-major total order over the board
}

// Vertex returns the human-readable notation of the point, e.g. "A1".
func (p *Point) Vertex() string { return p.vertex }

// Coord returns the (column, row) pair of the point, both 1-based.
func (p *Point) Coord() game.Coord { return p.coord }

// Stone returns the occupancy of the point.
func (p *Point) Stone() game.Colour { return p.stone }

// HasStone reports whether the point is occupied.
func (p *Point) HasStone() bool { return p.stone != game.None }

// Region returns the region the point currently belongs to. While the point
// belongs to a live board this is never nil, except transiently inside a
// region restructuring operation.
func (p *Point) Region() *Region { return p.region }

// Left returns the neighbouring point to the left, or nil at the board edge.
func (p *Point) Left() *Point { return p.left }

// Right returns the neighbouring point to the right, or nil at the board edge.
func (p *Point) Right() *Point { return p.right }

// Above returns the neighbouring point above, or nil at the board edge.
func (p *Point) Above() *Point { return p.above }

// Below returns the neighbouring point below, or nil at the board edge.
func (p *Point) Below() *Point { return p.below }

// Next returns the successor in the row-major total order over the whole
// board, or nil after the last point.
func (p *Point) Next() *Point { return p.next }

// Previous returns the predecessor in the row-major total order, or nil
// before the first point.
func (p *Point) Previous() *Point { return p.prev }

// Neighbours returns the points cardinally adjacent to p. Edge and corner
// points have fewer than four.
func (p *Point) Neighbours() []*Point {
	retVal := make([]*Point, 0, 4)
	for _, n := range [4]*Point{p.left, p.right, p.above, p.below} {
		if n != nil {
			retVal = append(retVal, n)
		}
	}
	return retVal
}

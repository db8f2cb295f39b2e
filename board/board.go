// Package board implements the Go board model: points wired into a neighbour
// graph, connected-region tracking with liberties, and zobrist hashing of
// board positions.
package board

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// MinSize and MaxSize bound the supported board sizes. Sizes are the odd
// numbers 7, 9, ... 19.
const (
	MinSize = 7
	MaxSize = 19
)

// Direction selects a neighbour in NeighbourOf. Left/Right/Up/Down walk the
// four cardinal directions; Next/Previous walk the row-major total order
// covering the whole board.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	Next
	Previous
)

// Board is an N×N grid of points. It owns all points and all regions; a
// freshly constructed board has a single all-empty region.
type Board struct {
	size    int
	points  []*Point // row-major, index (y-1)*size + (x-1)
	regions []*Region
	zobrist *ZobristTable
}

// New constructs a board of the given size. Valid sizes are the odd numbers
// between MinSize and MaxSize.
func New(size int) (*Board, error) {
	if size < MinSize || size > MaxSize || size%2 == 0 {
		return nil, errors.Wrapf(game.ErrInvalidArgument, "invalid board size %d", size)
	}
	b := &Board{
		size:   size,
		points: make([]*Point, size*size),
	}
	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			c := game.Coord{X: x, Y: y}
			b.points[b.index(x, y)] = &Point{
				coord:  c,
				vertex: c.Vertex(),
				board:  b,
			}
		}
	}
	// wire the neighbour graph and the row-major total order
	for i, p := range b.points {
		x, y := p.coord.X, p.coord.Y
		if x > 1 {
			p.left = b.points[b.index(x-1, y)]
		}
		if x < size {
			p.right = b.points[b.index(x+1, y)]
		}
		if y < size {
			p.above = b.points[b.index(x, y+1)]
		}
		if y > 1 {
			p.below = b.points[b.index(x, y-1)]
		}
		if i > 0 {
			p.prev = b.points[i-1]
		}
		if i < len(b.points)-1 {
			p.next = b.points[i+1]
		}
	}

	main := newRegion(b)
	main.points = append(main.points, b.points...)
	for _, p := range b.points {
		p.region = main
	}

	b.zobrist = NewZobristTable(size)
	return b, nil
}

func (b *Board) index(x, y int) int { return (y-1)*b.size + (x - 1) }

// Size returns the board size N.
func (b *Board) Size() int { return b.size }

// Zobrist returns the hash table built for this board's size.
func (b *Board) Zobrist() *ZobristTable { return b.zobrist }

// Regions returns all live regions. The returned slice must not be mutated.
func (b *Board) Regions() []*Region { return b.regions }

// PointAt returns the point at the given coordinate, or a range error if the
// coordinate lies outside the board.
func (b *Board) PointAt(c game.Coord) (*Point, error) {
	if c.X < 1 || c.X > b.size || c.Y < 1 || c.Y > b.size {
		return nil, errors.Wrapf(game.ErrRange, "coordinate %s outside %dx%d board", c.Vertex(), b.size, b.size)
	}
	return b.points[b.index(c.X, c.Y)], nil
}

// PointAtVertex parses a vertex string ("A1" .. "T19", letter I unused) and
// returns the point it names. Malformed strings are an invalid-argument
// error; well-formed vertices outside the board are a range error.
func (b *Board) PointAtVertex(vertex string) (*Point, error) {
	c, err := game.ParseVertex(vertex)
	if err != nil {
		return nil, err
	}
	return b.PointAt(c)
}

// NeighbourOf walks one step from p in the given direction. It returns nil
// at board edges (cardinal directions) and past either end of the total
// order (Next/Previous).
func (b *Board) NeighbourOf(p *Point, d Direction) *Point {
	if p == nil {
		return nil
	}
	switch d {
	case Left:
		return p.left
	case Right:
		return p.right
	case Up:
		return p.above
	case Down:
		return p.below
	case Next:
		return p.next
	case Previous:
		return p.prev
	}
	return nil
}

// PointEnumerator returns a restartable, ordered enumerator over all points.
func (b *Board) PointEnumerator() *PointEnumerator {
	return &PointEnumerator{first: b.points[0], next: b.points[0]}
}

// PointEnumerator walks the board's points in row-major order.
type PointEnumerator struct {
	first *Point
	next  *Point
}

// Next returns the next point, or nil once the sequence is exhausted.
func (e *PointEnumerator) Next() *Point {
	p := e.next
	if p != nil {
		e.next = p.next
	}
	return p
}

// Reset restarts the sequence from the first point.
func (e *PointEnumerator) Reset() { e.next = e.first }

// PlaceStone puts a stone of the given colour on an empty point, detaching
// the point into its own region and merging it with all same-coloured
// neighbour regions. The vacated empty region may split. Capture resolution
// is the caller's concern.
func (b *Board) PlaceStone(p *Point, c game.Colour) error {
	if p == nil || p.board != b {
		return errors.Wrap(game.ErrInvalidArgument, "PlaceStone: point does not belong to this board")
	}
	if c == game.None {
		return errors.Wrap(game.ErrInvalidArgument, "PlaceStone: no colour given")
	}
	if p.stone != game.None {
		return errors.Wrapf(game.ErrInconsistentState, "PlaceStone: point %s already has a %v stone", p.vertex, p.stone)
	}
	p.stone = c
	r := newRegion(b)
	if err := r.AddPoint(p); err != nil {
		p.stone = game.None
		b.dropRegion(r)
		return err
	}
	for _, n := range p.Neighbours() {
		if n.stone == c && n.region != p.region {
			if err := p.region.JoinRegion(n.region); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveStone clears an occupied point, detaching it into its own region and
// merging it with all neighbouring empty regions. The stone's former group
// may split.
func (b *Board) RemoveStone(p *Point) error {
	if p == nil || p.board != b {
		return errors.Wrap(game.ErrInvalidArgument, "RemoveStone: point does not belong to this board")
	}
	if p.stone == game.None {
		return errors.Wrapf(game.ErrInconsistentState, "RemoveStone: point %s has no stone", p.vertex)
	}
	previous := p.stone
	p.stone = game.None
	r := newRegion(b)
	if err := r.AddPoint(p); err != nil {
		p.stone = previous
		b.dropRegion(r)
		return err
	}
	for _, n := range p.Neighbours() {
		if n.stone == game.None && n.region != p.region {
			if err := p.region.JoinRegion(n.region); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Board) dropRegion(r *Region) {
	for i, reg := range b.regions {
		if reg == r {
			b.regions = append(b.regions[:i], b.regions[i+1:]...)
			return
		}
	}
}

// Format implements fmt.Formatter. %s draws the board top row first.
func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's':
		for y := b.size; y >= 1; y-- {
			fmt.Fprint(s, "⎢ ")
			for x := 1; x <= b.size; x++ {
				fmt.Fprintf(s, "%s ", b.points[b.index(x, y)].stone)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

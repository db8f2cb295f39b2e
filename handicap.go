package goban

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// HandicapCoords returns the fixed handicap placement for n stones on a
// board of the given size: star points on the third line below 13, on the
// fourth line from 13 up. The four corners come first, then the four side
// points; 5, 7 and 9 stones take the centre point instead of the last
// corner or side point.
func HandicapCoords(size, n int) ([]game.Coord, error) {
	if size < 9 {
		return nil, errors.Wrapf(game.ErrInvalidArgument, "no fixed handicap placement for size %d", size)
	}
	if n < 2 || n > 9 {
		return nil, errors.Wrapf(game.ErrRange, "handicap %d outside 2..9", n)
	}
	edge := 4
	if size < 13 {
		edge = 3
	}
	lo, hi, mid := edge, size+1-edge, (size+1)/2
	points := []game.Coord{
		{X: hi, Y: lo}, {X: lo, Y: hi}, {X: hi, Y: hi}, {X: lo, Y: lo},
		{X: lo, Y: mid}, {X: hi, Y: mid}, {X: mid, Y: lo}, {X: mid, Y: hi},
	}
	if n >= 5 && n%2 == 1 {
		coords := make([]game.Coord, 0, n)
		coords = append(coords, points[:n-1]...)
		return append(coords, game.Coord{X: mid, Y: mid}), nil
	}
	return points[:n:n], nil
}

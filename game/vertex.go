package game

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Coord represents a board intersection as a 1-based (column, row) pair.
// (1, 1) is the lower left corner; (19, 19) the upper right of a 19x19 board.
type Coord struct {
	X, Y int
}

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// columnLetters are the vertex column letters. The letter I is skipped, as
// is conventional in Go notation, to avoid confusion with the digit 1.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// Vertex returns the human-readable notation of a coordinate, e.g. "A1".
// Coordinates that cannot be expressed (non-positive, column beyond "Z")
// come back empty.
func (c Coord) Vertex() string {
	if c.X < 1 || c.Y < 1 || c.X > len(columnLetters) {
		return ""
	}
	return fmt.Sprintf("%c%d", columnLetters[c.X-1], c.Y)
}

// ParseVertex parses the human-readable notation of a board intersection
// ("A1" .. "T19", letter I unused). The result is not range checked against
// any particular board size; that is the board's job.
func ParseVertex(s string) (Coord, error) {
	if len(s) < 2 {
		return Coord{}, errors.Wrapf(ErrInvalidArgument, "malformed vertex %q", s)
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return Coord{}, errors.Wrapf(ErrInvalidArgument, "malformed vertex %q", s)
	}
	x := int(letter-'A') + 1
	if letter > 'I' {
		x-- // the letter I is skipped
	}
	y, err := strconv.Atoi(s[1:])
	if err != nil || y < 1 {
		return Coord{}, errors.Wrapf(ErrInvalidArgument, "malformed vertex %q", s)
	}
	return Coord{X: x, Y: y}, nil
}

// Package game holds the primitives shared by the board, record and façade
// packages: stone colours, players, coordinates and the human-readable
// vertex notation.
package game

import "fmt"

// Colour is the occupancy state of a board intersection.
type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board output
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the colour of the opponent player.
func Opponent(p Player) Player {
	switch Colour(p) {
	case White:
		return Player(Black)
	case Black:
		return Player(White)
	}
	panic("unreachable")
}

// OpponentColour returns the opposing stone colour. None has no opponent.
func OpponentColour(c Colour) Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return None
}

// IsValid checks that a player is indeed valid.
func IsValid(p Player) bool { return Colour(p) == Black || Colour(p) == White }

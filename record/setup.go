package record

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// Setup is a board setup directive: stones placed or removed outside normal
// move play, plus an optional override of the colour to move first. Like a
// move, a setup cycles between unapplied and applied; the states it replaces
// are recorded at apply time so revert restores them exactly.
type Setup struct {
	black []*board.Point // points that become black
	white []*board.Point // points that become white
	clear []*board.Point // points that become empty

	firstMoveColour game.Colour // game.None when not overridden

	previous []stoneState
	applied  bool
}

type stoneState struct {
	point  *board.Point
	colour game.Colour
}

// NewSetup returns an empty setup directive.
func NewSetup() *Setup { return &Setup{} }

// AddBlack adds a point that the setup turns black.
func (s *Setup) AddBlack(p *board.Point) { s.black = append(s.black, p) }

// AddWhite adds a point that the setup turns white.
func (s *Setup) AddWhite(p *board.Point) { s.white = append(s.white, p) }

// AddClear adds a point that the setup empties.
func (s *Setup) AddClear(p *board.Point) { s.clear = append(s.clear, p) }

// BlackStones returns the points the setup turns black.
func (s *Setup) BlackStones() []*board.Point { return s.black }

// WhiteStones returns the points the setup turns white.
func (s *Setup) WhiteStones() []*board.Point { return s.white }

// ClearedPoints returns the points the setup empties.
func (s *Setup) ClearedPoints() []*board.Point { return s.clear }

// FirstMoveColour returns the override of the colour to move next, or
// game.None when the setup does not override it.
func (s *Setup) FirstMoveColour() game.Colour { return s.firstMoveColour }

// SetFirstMoveColour overrides the colour to move next.
func (s *Setup) SetFirstMoveColour(c game.Colour) { s.firstMoveColour = c }

// IsEmpty reports whether the setup changes nothing.
func (s *Setup) IsEmpty() bool {
	return len(s.black) == 0 && len(s.white) == 0 && len(s.clear) == 0 && s.firstMoveColour == game.None
}

// IsApplied reports whether the setup's effect is currently on the board.
func (s *Setup) IsApplied() bool { return s.applied }

// checkConsistent rejects a point appearing in more than one list.
func (s *Setup) checkConsistent() error {
	seen := make(map[*board.Point]struct{}, len(s.black)+len(s.white)+len(s.clear))
	for _, list := range [][]*board.Point{s.black, s.white, s.clear} {
		for _, p := range list {
			if p == nil {
				return errors.Wrap(game.ErrInvalidArgument, "setup: nil point")
			}
			if _, dup := seen[p]; dup {
				return errors.Wrapf(game.ErrInconsistentState, "setup: point %s appears in contradictory setup lists", p.Vertex())
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}

func (s *Setup) apply(b *board.Board) error {
	if s.applied {
		return errors.Wrap(game.ErrInconsistentState, "setup is already applied")
	}
	if err := s.checkConsistent(); err != nil {
		return err
	}
	s.previous = s.previous[:0]
	change := func(p *board.Point, target game.Colour) error {
		if p.Stone() == target {
			return nil
		}
		s.previous = append(s.previous, stoneState{point: p, colour: p.Stone()})
		if p.Stone() != game.None {
			if err := b.RemoveStone(p); err != nil {
				return err
			}
		}
		if target != game.None {
			if err := b.PlaceStone(p, target); err != nil {
				return err
			}
		}
		return nil
	}
	for _, p := range s.black {
		if err := change(p, game.Black); err != nil {
			return err
		}
	}
	for _, p := range s.white {
		if err := change(p, game.White); err != nil {
			return err
		}
	}
	for _, p := range s.clear {
		if err := change(p, game.None); err != nil {
			return err
		}
	}
	s.applied = true
	return nil
}

func (s *Setup) revert(b *board.Board) error {
	if !s.applied {
		return errors.Wrap(game.ErrInconsistentState, "setup was never applied")
	}
	for i := len(s.previous) - 1; i >= 0; i-- {
		prev := s.previous[i]
		if prev.point.Stone() == prev.colour {
			continue
		}
		if prev.point.Stone() != game.None {
			if err := b.RemoveStone(prev.point); err != nil {
				return err
			}
		}
		if prev.colour != game.None {
			if err := b.PlaceStone(prev.point, prev.colour); err != nil {
				return err
			}
		}
	}
	s.previous = s.previous[:0]
	s.applied = false
	return nil
}

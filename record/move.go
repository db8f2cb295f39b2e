// Package record implements the game record: moves with full undo, the
// branching node tree, the current-variation bookkeeping and the board
// position cursor that replays node effects onto a live board.
package record

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// MoveKind distinguishes playing a stone from passing.
type MoveKind int

const (
	Play MoveKind = iota
	Pass
)

func (k MoveKind) String() string {
	switch k {
	case Play:
		return "play"
	case Pass:
		return "pass"
	}
	return "unknown"
}

// Move is a single ply by one player. A move cycles between unapplied and
// applied: DoIt mutates the board and records captures, Undo reverses
// exactly that, and the cycle may repeat.
type Move struct {
	kind     MoveKind
	player   game.Player
	point    *board.Point // nil for a pass
	captured []*board.Point

	// non-owning linkage to the neighbouring moves of the variation
	prev, next *Move

	applied bool
}

// NewMove constructs a move. A play needs a point, a pass must not carry
// one. previous links the move behind the preceding move of its variation
// and may be nil for the first move of a game.
func NewMove(kind MoveKind, player game.Player, p *board.Point, previous *Move) (*Move, error) {
	if !game.IsValid(player) {
		return nil, errors.Wrapf(game.ErrInvalidArgument, "NewMove: invalid player %v", player)
	}
	switch kind {
	case Play:
		if p == nil {
			return nil, errors.Wrap(game.ErrInvalidArgument, "NewMove: a play move needs a point")
		}
	case Pass:
		if p != nil {
			return nil, errors.Wrap(game.ErrInvalidArgument, "NewMove: a pass move cannot carry a point")
		}
	default:
		return nil, errors.Wrapf(game.ErrInvalidArgument, "NewMove: unknown move kind %d", kind)
	}
	m := &Move{kind: kind, player: player, point: p, prev: previous}
	if previous != nil {
		previous.next = m
	}
	return m, nil
}

// Kind returns whether the move plays a stone or passes.
func (m *Move) Kind() MoveKind { return m.kind }

// Player returns the player that made the move.
func (m *Move) Player() game.Player { return m.player }

// Point returns the played point, nil for a pass.
func (m *Move) Point() *board.Point { return m.point }

// CapturedStones returns the points captured by this move. Populated only
// while the move is applied. The stones may come from multiple disjoint
// opposing groups.
func (m *Move) CapturedStones() []*board.Point { return m.captured }

// Previous returns the preceding move of the variation, or nil.
func (m *Move) Previous() *Move { return m.prev }

// Next returns the following move of the variation, or nil.
func (m *Move) Next() *Move { return m.next }

// IsApplied reports whether the move's effect is currently on the board.
func (m *Move) IsApplied() bool { return m.applied }

func (m *Move) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		if m.kind == Pass {
			fmt.Fprintf(s, "%v pass", m.player)
			return
		}
		fmt.Fprintf(s, "%v %s", m.player, m.point.Vertex())
	}
}

// DoIt applies the move to the board. For a play this places the stone,
// merges it into neighbouring friendly groups, then removes every opposing
// neighbour group left without liberties and records the removed points as
// captures. A pass mutates nothing.
func (m *Move) DoIt(b *board.Board) error {
	if b == nil {
		return errors.Wrap(game.ErrInvalidArgument, "DoIt: nil board")
	}
	if m.applied {
		return errors.Wrapf(game.ErrInconsistentState, "DoIt: move %s is already applied", m)
	}
	if m.kind == Pass {
		m.applied = true
		return nil
	}
	if m.point == nil {
		return errors.Wrap(game.ErrInvalidArgument, "DoIt: play move without a point")
	}
	colour := game.Colour(m.player)
	if err := b.PlaceStone(m.point, colour); err != nil {
		return errors.WithMessagef(err, "DoIt: playing %s", m.point.Vertex())
	}

	opponent := game.OpponentColour(colour)
	m.captured = m.captured[:0]
	for _, adj := range m.point.Region().AdjacentRegions() {
		if adj.Colour() != opponent {
			continue
		}
		libs, err := adj.Liberties()
		if err != nil {
			return err
		}
		if libs > 0 {
			continue
		}
		// copy before removal: RemoveStone restructures the region
		prisoners := append([]*board.Point(nil), adj.Points()...)
		for _, prisoner := range prisoners {
			if err := b.RemoveStone(prisoner); err != nil {
				return err
			}
			m.captured = append(m.captured, prisoner)
		}
	}
	m.applied = true
	return nil
}

// Undo reverses exactly what DoIt did: captured stones are restored to their
// previous colour and region placement, then the played stone is removed and
// the vacated point merges back into the surrounding empty regions.
func (m *Move) Undo(b *board.Board) error {
	if b == nil {
		return errors.Wrap(game.ErrInvalidArgument, "Undo: nil board")
	}
	if !m.applied {
		return errors.Wrapf(game.ErrInconsistentState, "Undo: move %s was never applied", m)
	}
	if m.kind == Pass {
		m.applied = false
		return nil
	}
	colour := game.Colour(m.player)
	if m.point.Stone() != colour {
		return errors.Wrapf(game.ErrInconsistentState, "Undo: point %s holds %v, expected %v", m.point.Vertex(), m.point.Stone(), colour)
	}
	opponent := game.OpponentColour(colour)
	for _, prisoner := range m.captured {
		if err := b.PlaceStone(prisoner, opponent); err != nil {
			return err
		}
	}
	if err := b.RemoveStone(m.point); err != nil {
		return err
	}
	m.applied = false
	return nil
}

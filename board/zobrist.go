package board

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// ZobristTable holds one random 64-bit value per (point, colour) pair.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The table is seeded deterministically from the board size, so two tables
// built for the same size always map identically and a hash identifies a
// position independently of the process that produced it. The empty board
// hashes to 0. All computation is stateless; the table is never mutated
// after construction.
type ZobristTable struct {
	size  int
	table []uint64 // two values per point: index*2 for black, +1 for white
}

// NewZobristTable builds the table for the given board size.
func NewZobristTable(size int) *ZobristTable {
	r := rand.New(rand.NewSource(int64(size)))
	table := make([]uint64, size*size*2)
	for i := range table {
		table[i] = r.Uint64()
	}
	return &ZobristTable{size: size, table: table}
}

// Size returns the board size the table was built for.
func (z *ZobristTable) Size() int { return z.size }

func (z *ZobristTable) value(p *Point, c game.Colour) (uint64, error) {
	if p == nil {
		return 0, errors.Wrap(game.ErrInvalidArgument, "zobrist: nil point")
	}
	i := ((p.coord.Y-1)*z.size + (p.coord.X - 1)) * 2
	switch c {
	case game.Black:
		return z.table[i], nil
	case game.White:
		return z.table[i+1], nil
	}
	return 0, errors.Wrapf(game.ErrInvalidArgument, "zobrist: no value for colour %v", c)
}

func (z *ZobristTable) checkSize(b *Board) error {
	if b == nil {
		return errors.Wrap(game.ErrInvalidArgument, "zobrist: nil board")
	}
	if b.size != z.size {
		return errors.Wrapf(game.ErrSizeMismatch, "zobrist table built for size %d, board has size %d", z.size, b.size)
	}
	return nil
}

// HashForStone toggles the contribution of a single (point, colour) pair on
// top of prevHash. XOR is self-inverse, so toggling twice cancels out; this
// is the primitive the richer helpers are built from.
func (z *ZobristTable) HashForStone(p *Point, c game.Colour, prevHash uint64, b *Board) (uint64, error) {
	if err := z.checkSize(b); err != nil {
		return 0, err
	}
	v, err := z.value(p, c)
	if err != nil {
		return 0, err
	}
	return prevHash ^ v, nil
}

// HashForBoard computes the hash of the full board position by XORing the
// values of every occupied point. Order independent; an empty board yields 0.
func (z *ZobristTable) HashForBoard(b *Board) (uint64, error) {
	if err := z.checkSize(b); err != nil {
		return 0, err
	}
	var hash uint64
	for _, p := range b.points {
		if p.stone == game.None {
			continue
		}
		v, err := z.value(p, p.stone)
		if err != nil {
			return 0, err
		}
		hash ^= v
	}
	return hash, nil
}

// HashForStonePlayed computes the hash after a stone of the given colour is
// played on p, capturing the given opposing points, on top of prevHash.
// Captured stones are cancelled by XORing their value a second time. Pure
// arithmetic: the board argument is consulted for size checking only, so the
// call works both before and after the move mutates the board.
func (z *ZobristTable) HashForStonePlayed(c game.Colour, p *Point, captured []*Point, prevHash uint64, b *Board) (uint64, error) {
	if err := z.checkSize(b); err != nil {
		return 0, err
	}
	v, err := z.value(p, c)
	if err != nil {
		return 0, err
	}
	hash := prevHash ^ v
	opponent := game.OpponentColour(c)
	for _, cap := range captured {
		v, err := z.value(cap, opponent)
		if err != nil {
			return 0, err
		}
		hash ^= v
	}
	return hash, nil
}

// HashForSetup computes the hash after a multi-point setup delta on top of
// prevHash: blackSetup points become black, whiteSetup points become white,
// clearSetup points become empty. Each point's current stone state is taken
// as the state being replaced, so this must be called before the setup
// mutates the board. A point appearing in more than one list is a
// consistency error.
func (z *ZobristTable) HashForSetup(blackSetup, whiteSetup, clearSetup []*Point, prevHash uint64, b *Board) (uint64, error) {
	if err := z.checkSize(b); err != nil {
		return 0, err
	}
	seen := make(map[*Point]struct{})
	hash := prevHash
	apply := func(points []*Point, after game.Colour) error {
		for _, p := range points {
			if p == nil {
				return errors.Wrap(game.ErrInvalidArgument, "zobrist: nil setup point")
			}
			if _, dup := seen[p]; dup {
				return errors.Wrapf(game.ErrInconsistentState, "zobrist: point %s appears in contradictory setup lists", p.vertex)
			}
			seen[p] = struct{}{}
			if p.stone == after {
				continue
			}
			if p.stone != game.None {
				v, err := z.value(p, p.stone)
				if err != nil {
					return err
				}
				hash ^= v
			}
			if after != game.None {
				v, err := z.value(p, after)
				if err != nil {
					return err
				}
				hash ^= v
			}
		}
		return nil
	}
	if err := apply(blackSetup, game.Black); err != nil {
		return 0, err
	}
	if err := apply(whiteSetup, game.White); err != nil {
		return 0, err
	}
	if err := apply(clearSetup, game.None); err != nil {
		return 0, err
	}
	return hash, nil
}

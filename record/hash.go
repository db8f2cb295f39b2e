package record

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// NodeHash computes the position hash after n's effect on top of the cached
// hash of n's predecessor, using the incremental zobrist helpers rather than
// rehashing the whole board.
//
// For a setup node that is not yet applied the board must be in the
// predecessor's position. For a move node the move's capture record must be
// current, which it is once the move has been applied at least once.
func NodeHash(n *Node, b *board.Board) (uint64, error) {
	if n == nil {
		return 0, errors.Wrap(game.ErrInvalidArgument, "NodeHash: nil node")
	}
	if b == nil {
		return 0, errors.Wrap(game.ErrInvalidArgument, "NodeHash: nil board")
	}
	z := b.Zobrist()
	var hash uint64
	if n.parent != nil {
		hash = n.parent.zobristHash
	}

	if n.setup != nil {
		var err error
		if n.setup.applied {
			hash, err = appliedSetupHash(n.setup, z, b, hash)
		} else {
			hash, err = z.HashForSetup(n.setup.black, n.setup.white, n.setup.clear, hash, b)
		}
		if err != nil {
			return 0, err
		}
	}
	if n.move != nil && n.move.kind == Play {
		var err error
		hash, err = z.HashForStonePlayed(game.Colour(n.move.player), n.move.point, n.move.captured, hash, b)
		if err != nil {
			return 0, err
		}
	}
	return hash, nil
}

// appliedSetupHash recomputes a setup delta from the previous states the
// setup recorded when it was applied, so the board does not need to be in
// any particular position.
func appliedSetupHash(s *Setup, z *board.ZobristTable, b *board.Board, hash uint64) (uint64, error) {
	targets := make(map[*board.Point]game.Colour)
	for _, p := range s.black {
		targets[p] = game.Black
	}
	for _, p := range s.white {
		targets[p] = game.White
	}
	for _, p := range s.clear {
		targets[p] = game.None
	}
	var err error
	for _, prev := range s.previous {
		if prev.colour != game.None {
			hash, err = z.HashForStone(prev.point, prev.colour, hash, b)
			if err != nil {
				return 0, err
			}
		}
		if target := targets[prev.point]; target != game.None {
			hash, err = z.HashForStone(prev.point, target, hash, b)
			if err != nil {
				return 0, err
			}
		}
	}
	return hash, nil
}

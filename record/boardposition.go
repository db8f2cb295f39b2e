package record

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// BoardPosition is a cursor over the node model's current variation. Moving
// the cursor forward applies the intervening nodes' board effects in
// ascending order; moving it backward reverts them in descending order. The
// board is always left exactly as if the game had been replayed from the
// empty board up to the current node.
//
// As the cursor applies a node it also computes and caches the node's
// zobrist hash incrementally from its predecessor's cached hash.
type BoardPosition struct {
	model *NodeModel
	board *board.Board

	current      int
	numPositions int

	// fired once per SetCurrentBoardPosition call that actually changes
	// the cursor, before any board mutation. Not fired for same-value or
	// rejected assignments.
	onChange func(old, new int)
}

// NewBoardPosition builds a cursor at position 0. The board must be in its
// pre-game (empty) state; the root node's effect, if any, is applied.
func NewBoardPosition(model *NodeModel, b *board.Board) (*BoardPosition, error) {
	if model == nil || b == nil {
		return nil, errors.Wrap(game.ErrInvalidArgument, "NewBoardPosition: nil model or board")
	}
	bp := &BoardPosition{
		model:        model,
		board:        b,
		numPositions: model.NumberOfNodes(),
	}
	if err := bp.applyNode(model.root, 0); err != nil {
		return nil, err
	}
	return bp, nil
}

// CurrentBoardPosition returns the cursor index. Index 0 maps to the root.
func (bp *BoardPosition) CurrentBoardPosition() int { return bp.current }

// CurrentNode returns the node the cursor rests on, or nil if the cursor
// was pushed outside the variation through the raw position count setter.
func (bp *BoardPosition) CurrentNode() *Node {
	n, err := bp.model.NodeAtIndex(bp.current)
	if err != nil {
		return nil
	}
	return n
}

// NumberOfBoardPositions returns the position count the cursor ranges over.
func (bp *BoardPosition) NumberOfBoardPositions() int { return bp.numPositions }

// SetNumberOfBoardPositions overwrites the position count without touching
// the cursor or the board. Deliberately unvalidated: bulk tree
// restructuring adjusts the count before discarding nodes and reconciles
// the board itself.
func (bp *BoardPosition) SetNumberOfBoardPositions(n int) { bp.numPositions = n }

// ChangeToLastBoardPositionWithoutUpdatingBoard moves the cursor value to
// the last position (or -1 if there are none) without replaying or
// reverting anything. Only for bulk restructuring where the caller
// guarantees the board is separately reconciled.
func (bp *BoardPosition) ChangeToLastBoardPositionWithoutUpdatingBoard() {
	bp.current = bp.numPositions - 1
}

// IsFirstPosition reports whether the cursor is at the root position.
func (bp *BoardPosition) IsFirstPosition() bool { return bp.current == 0 }

// IsLastPosition reports whether the cursor is at the final position.
func (bp *BoardPosition) IsLastPosition() bool { return bp.current == bp.numPositions-1 }

// SetOnChange registers the position-change-in-progress callback.
func (bp *BoardPosition) SetOnChange(f func(old, new int)) { bp.onChange = f }

// SetCurrentBoardPosition moves the cursor to target, replaying or
// reverting every intervening node. Assigning the current value is a no-op
// without notification; out-of-range targets are rejected without
// notification.
func (bp *BoardPosition) SetCurrentBoardPosition(target int) error {
	if target == bp.current {
		return nil
	}
	if target < 0 || target >= bp.numPositions {
		return errors.Wrapf(game.ErrRange, "board position %d outside 0..%d", target, bp.numPositions-1)
	}
	if bp.onChange != nil {
		bp.onChange(bp.current, target)
	}
	if target > bp.current {
		for i := bp.current + 1; i <= target; i++ {
			n, err := bp.model.NodeAtIndex(i)
			if err != nil {
				return err
			}
			prev, err := bp.model.NodeAtIndex(i - 1)
			if err != nil {
				return err
			}
			if err := bp.applyNode(n, prev.zobristHash); err != nil {
				return err
			}
			bp.current = i
		}
		return nil
	}
	for i := bp.current; i > target; i-- {
		n, err := bp.model.NodeAtIndex(i)
		if err != nil {
			return err
		}
		if err := n.revertBoard(bp.board); err != nil {
			return err
		}
		bp.current = i - 1
	}
	return nil
}

// applyNode puts n's effect on the board and caches n's position hash,
// computed incrementally on top of prevHash. O(changed points), not
// O(board size).
func (bp *BoardPosition) applyNode(n *Node, prevHash uint64) error {
	b := bp.board
	z := b.Zobrist()
	hash := prevHash
	if n.setup != nil {
		// the setup hash reads the states being replaced, so it must be
		// computed before the setup mutates the board
		h, err := z.HashForSetup(n.setup.black, n.setup.white, n.setup.clear, hash, b)
		if err != nil {
			return err
		}
		if err := n.setup.apply(b); err != nil {
			return err
		}
		hash = h
	}
	if n.move != nil {
		if err := n.move.DoIt(b); err != nil {
			return err
		}
		if n.move.kind == Play {
			h, err := z.HashForStonePlayed(game.Colour(n.move.player), n.move.point, n.move.captured, hash, b)
			if err != nil {
				return err
			}
			hash = h
		}
	}
	n.zobristHash = hash
	return nil
}

package goban

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
	"github.com/tenuki/goban/record"
)

// AdoptNodeModel swaps in an externally built node model (typically parsed
// from SGF by an outside library) after validating its tree invariants,
// then rebuilds the board by replaying the current variation from the
// empty board. Every point referenced by the tree must belong to this
// game's board.
func (g *Game) AdoptNodeModel(m *record.NodeModel) error {
	if m == nil {
		return errors.Wrap(game.ErrInvalidArgument, "AdoptNodeModel: nil model")
	}
	if err := g.validateTree(m.Root()); err != nil {
		return err
	}

	// rewind the live board to its pre-game state
	if err := g.position.SetCurrentBoardPosition(0); err != nil {
		return err
	}
	bp, err := record.NewBoardPosition(m, g.board)
	if err != nil {
		return err
	}
	old, oldPosition := g.model, g.position
	g.model, g.position = m, bp
	if g.onChange != nil {
		bp.SetOnChange(g.onChange)
	}
	if err := bp.SetCurrentBoardPosition(m.NumberOfNodes() - 1); err != nil {
		// the cursor stops before the offending node; unwind what was
		// applied and restore the previous record
		g.model, g.position = old, oldPosition
		if rerr := bp.SetCurrentBoardPosition(0); rerr != nil {
			return errors.WithMessage(err, rerr.Error())
		}
		return err
	}

	g.resigned = game.None
	if m.NumberOfMoves() > 0 {
		g.state = InProgress
	} else {
		g.state = NotStarted
	}
	return nil
}

// validateTree walks the whole tree checking the structural invariants an
// adopted record must satisfy: an effect-free root without parent or
// siblings, bidirectional parent/child links, single ownership of every
// node, and points resolving to this game's board.
func (g *Game) validateTree(root *record.Node) error {
	if root == nil {
		return errors.Wrap(game.ErrInvalidArgument, "adopted tree has no root")
	}
	if root.Parent() != nil || root.NextSibling() != nil {
		return errors.Wrap(game.ErrInvalidArgument, "adopted root has a parent or sibling")
	}
	if !root.IsEmpty() {
		return errors.Wrap(game.ErrInvalidArgument, "adopted root carries board effects")
	}
	seen := make(map[*record.Node]bool)
	stack := []*record.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			return errors.Wrap(game.ErrInconsistentState, "adopted tree contains a cycle or a doubly owned node")
		}
		seen[n] = true
		if err := g.validateNodePoints(n); err != nil {
			return err
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if child.Parent() != n {
				return errors.Wrapf(game.ErrInconsistentState, "child of node does not link back to its parent")
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// validateNodePoints checks that each point a node references is the very
// point object this game's board owns at that vertex.
func (g *Game) validateNodePoints(n *record.Node) error {
	check := func(p *board.Point) error {
		if p == nil {
			return errors.Wrap(game.ErrInvalidArgument, "adopted node references a nil point")
		}
		own, err := g.board.PointAtVertex(p.Vertex())
		if err != nil {
			return err
		}
		if own != p {
			return errors.Wrapf(game.ErrInvalidArgument, "adopted node references a foreign point %s", p.Vertex())
		}
		return nil
	}
	if m := n.Move(); m != nil && m.Kind() == record.Play {
		if err := check(m.Point()); err != nil {
			return err
		}
	}
	if s := n.Setup(); s != nil {
		for _, list := range [][]*board.Point{s.BlackStones(), s.WhiteStones(), s.ClearedPoints()} {
			for _, p := range list {
				if err := check(p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

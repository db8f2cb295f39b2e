package record

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// Node is one entry of the game-record tree. A node optionally carries a
// move, a board setup directive, an annotation and markup — at most one of
// each. Parent, first-child and next-sibling links form a general ordered
// tree; last child and previous sibling are derived by walking.
//
// At most one place in the tree may claim a node: every linking operation
// that attaches an already-attached node moves it (detach, then reattach)
// instead of duplicating ownership.
type Node struct {
	move       *Move
	setup      *Setup
	annotation *Annotation
	markup     *Markup

	parent      *Node
	firstChild  *Node
	nextSibling *Node

	// zobrist hash of the board position after this node's effect, cached
	// by the board position cursor as it replays the variation
	zobristHash uint64
}

// NewNode returns an empty, unattached node.
func NewNode() *Node { return &Node{} }

// Move returns the node's move, or nil.
func (n *Node) Move() *Move { return n.move }

// SetMove attaches a move to the node.
func (n *Node) SetMove(m *Move) { n.move = m }

// Setup returns the node's board setup directive, or nil.
func (n *Node) Setup() *Setup { return n.setup }

// SetSetup attaches a setup directive to the node.
func (n *Node) SetSetup(s *Setup) { n.setup = s }

// Annotation returns the node's annotation, or nil.
func (n *Node) Annotation() *Annotation { return n.annotation }

// SetAnnotation attaches an annotation to the node.
func (n *Node) SetAnnotation(a *Annotation) { n.annotation = a }

// Markup returns the node's markup, or nil.
func (n *Node) Markup() *Markup { return n.markup }

// SetMarkup attaches markup to the node.
func (n *Node) SetMarkup(m *Markup) { n.markup = m }

// ZobristHash returns the cached hash of the board position after this
// node's effect. Valid once the position cursor has visited the node.
func (n *Node) ZobristHash() uint64 { return n.zobristHash }

// IsEmpty reports whether the node carries no content at all.
func (n *Node) IsEmpty() bool {
	return n.move == nil && n.setup == nil && n.annotation == nil && n.markup == nil
}

// Parent returns the node's parent, or nil for the root or a detached node.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the node's first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// NextSibling returns the node's next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// LastChild returns the node's last child, or nil.
func (n *Node) LastChild() *Node {
	child := n.firstChild
	if child == nil {
		return nil
	}
	for child.nextSibling != nil {
		child = child.nextSibling
	}
	return child
}

// PreviousSibling returns the sibling preceding n in its parent's child
// list, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.parent.firstChild == n {
		return nil
	}
	for child := n.parent.firstChild; child != nil; child = child.nextSibling {
		if child.nextSibling == n {
			return child
		}
	}
	return nil
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return n.firstChild != nil }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.firstChild == nil }

// IsBranching reports whether the node has more than one child.
func (n *Node) IsBranching() bool {
	return n.firstChild != nil && n.firstChild.nextSibling != nil
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

// Children returns the node's children in order.
func (n *Node) Children() []*Node {
	var retVal []*Node
	for child := n.firstChild; child != nil; child = child.nextSibling {
		retVal = append(retVal, child)
	}
	return retVal
}

// IsDescendantOf reports whether n lies anywhere in other's subtree.
func (n *Node) IsDescendantOf(other *Node) (bool, error) {
	if other == nil {
		return false, errors.Wrap(game.ErrInvalidArgument, "IsDescendantOf: nil node")
	}
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == other {
			return true, nil
		}
	}
	return false, nil
}

// IsAncestorOf reports whether other lies anywhere in n's subtree.
func (n *Node) IsAncestorOf(other *Node) (bool, error) {
	if other == nil {
		return false, errors.Wrap(game.ErrInvalidArgument, "IsAncestorOf: nil node")
	}
	return other.IsDescendantOf(n)
}

// checkLinkable verifies that attaching child below n neither duplicates the
// node nor creates a cycle.
func (n *Node) checkLinkable(child *Node) error {
	if child == nil {
		return errors.Wrap(game.ErrInvalidArgument, "nil node")
	}
	if child == n {
		return errors.Wrap(game.ErrInvalidArgument, "a node cannot become its own child")
	}
	isAncestor, err := child.IsAncestorOf(n)
	if err != nil {
		return err
	}
	if isAncestor {
		return errors.Wrap(game.ErrInvalidArgument, "an ancestor cannot become its descendant's child")
	}
	return nil
}

// detach unlinks n from its parent's child list. Links inside n's own
// subtree are left untouched.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if p.firstChild == n {
		p.firstChild = n.nextSibling
	} else {
		for child := p.firstChild; child != nil; child = child.nextSibling {
			if child.nextSibling == n {
				child.nextSibling = n.nextSibling
				break
			}
		}
	}
	n.parent = nil
	n.nextSibling = nil
}

// SetFirstChild makes child the node's only child, detaching every current
// child. A nil child merely clears the child list. The discarded children
// keep their links among themselves.
func (n *Node) SetFirstChild(child *Node) error {
	if child != nil {
		if err := n.checkLinkable(child); err != nil {
			return errors.WithMessage(err, "SetFirstChild")
		}
		child.detach()
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.parent = nil
	}
	n.firstChild = child
	if child != nil {
		child.parent = n
		child.nextSibling = nil
	}
	return nil
}

// AppendChild adds child as the node's last child, moving it from wherever
// it was attached before.
func (n *Node) AppendChild(child *Node) error {
	if err := n.checkLinkable(child); err != nil {
		return errors.WithMessage(err, "AppendChild")
	}
	if child.parent == n {
		return errors.Wrap(game.ErrInvalidArgument, "AppendChild: node is already a child")
	}
	child.detach()
	child.parent = n
	if n.firstChild == nil {
		n.firstChild = child
		return nil
	}
	n.LastChild().nextSibling = child
	return nil
}

// InsertChildBefore inserts child immediately before reference in the
// node's child list. reference must currently be a child of n.
func (n *Node) InsertChildBefore(child, reference *Node) error {
	if reference == nil {
		return errors.Wrap(game.ErrInvalidArgument, "InsertChildBefore: nil reference child")
	}
	if reference.parent != n {
		return errors.Wrap(game.ErrInvalidArgument, "InsertChildBefore: reference is not a child of this node")
	}
	if err := n.checkLinkable(child); err != nil {
		return errors.WithMessage(err, "InsertChildBefore")
	}
	if child == reference {
		return errors.Wrap(game.ErrInvalidArgument, "InsertChildBefore: child and reference are the same node")
	}
	child.detach()
	child.parent = n
	if n.firstChild == reference {
		child.nextSibling = reference
		n.firstChild = child
		return nil
	}
	prev := reference.PreviousSibling()
	child.nextSibling = reference
	prev.nextSibling = child
	return nil
}

// RemoveChild detaches child from the node. The child's own subtree links
// stay intact.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return errors.Wrap(game.ErrInvalidArgument, "RemoveChild: nil node")
	}
	if child.parent != n {
		return errors.Wrap(game.ErrInvalidArgument, "RemoveChild: node is not a child")
	}
	child.detach()
	return nil
}

// ReplaceChild puts newChild in oldChild's position in the child list,
// detaching oldChild.
func (n *Node) ReplaceChild(oldChild, newChild *Node) error {
	if oldChild == nil {
		return errors.Wrap(game.ErrInvalidArgument, "ReplaceChild: nil old child")
	}
	if oldChild.parent != n {
		return errors.Wrap(game.ErrInvalidArgument, "ReplaceChild: node is not a child")
	}
	if err := n.checkLinkable(newChild); err != nil {
		return errors.WithMessage(err, "ReplaceChild")
	}
	if oldChild == newChild {
		return nil
	}
	// detach newChild first: if it is a sibling adjacent to oldChild,
	// capturing prev/next before the detach would link it to itself
	newChild.detach()
	prev := oldChild.PreviousSibling()
	next := oldChild.nextSibling
	oldChild.detach()
	newChild.parent = n
	newChild.nextSibling = next
	if prev == nil {
		n.firstChild = newChild
	} else {
		prev.nextSibling = newChild
	}
	return nil
}

// SetNextSibling makes sibling follow n in their parent's child list,
// detaching the siblings that currently follow n. The root cannot have a
// sibling. A nil sibling truncates the list after n.
func (n *Node) SetNextSibling(sibling *Node) error {
	if n.parent == nil {
		return errors.Wrap(game.ErrInvalidArgument, "SetNextSibling: a root node cannot have siblings")
	}
	if sibling != nil {
		if sibling == n {
			return errors.Wrap(game.ErrInvalidArgument, "SetNextSibling: a node cannot become its own sibling")
		}
		isAncestor, err := sibling.IsAncestorOf(n)
		if err != nil {
			return err
		}
		if isAncestor {
			return errors.Wrap(game.ErrInvalidArgument, "SetNextSibling: an ancestor cannot become its descendant's sibling")
		}
		sibling.detach()
	}
	for trailing := n.nextSibling; trailing != nil; trailing = trailing.nextSibling {
		trailing.parent = nil
	}
	n.nextSibling = sibling
	if sibling != nil {
		sibling.parent = n.parent
	}
	return nil
}

// SetParent attaches n as the last child of parent, or detaches n when
// parent is nil.
func (n *Node) SetParent(parent *Node) error {
	if parent == nil {
		n.detach()
		return nil
	}
	if n.parent == parent {
		return nil
	}
	if err := parent.checkLinkable(n); err != nil {
		return errors.WithMessage(err, "SetParent")
	}
	return parent.AppendChild(n)
}

// modifyBoard applies the node's effect to the board: the setup directive
// first, then the move.
func (n *Node) modifyBoard(b *board.Board) error {
	if n.setup != nil {
		if err := n.setup.apply(b); err != nil {
			return err
		}
	}
	if n.move != nil {
		if err := n.move.DoIt(b); err != nil {
			return err
		}
	}
	return nil
}

// revertBoard reverts the node's effect: the move first, then the setup.
func (n *Node) revertBoard(b *board.Board) error {
	if n.move != nil {
		if err := n.move.Undo(b); err != nil {
			return err
		}
	}
	if n.setup != nil {
		if err := n.setup.revert(b); err != nil {
			return err
		}
	}
	return nil
}

package record

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// NodeModel owns the root of the game-record tree and tracks the current
// variation: the single root-to-leaf path the board position cursor walks,
// addressable as a flat list with the root at index 0.
type NodeModel struct {
	root             *Node
	currentVariation []*Node
}

// NewNodeModel returns a model holding a fresh, empty root node.
func NewNodeModel() *NodeModel {
	root := NewNode()
	return &NodeModel{
		root:             root,
		currentVariation: []*Node{root},
	}
}

// Root returns the tree's root node.
func (m *NodeModel) Root() *Node { return m.root }

// CurrentVariation returns the nodes of the current variation in order.
// The returned slice must not be mutated.
func (m *NodeModel) CurrentVariation() []*Node { return m.currentVariation }

// NumberOfNodes returns the length of the current variation.
func (m *NodeModel) NumberOfNodes() int { return len(m.currentVariation) }

// NumberOfMoves returns how many nodes of the current variation carry a move.
func (m *NodeModel) NumberOfMoves() int {
	count := 0
	for _, n := range m.currentVariation {
		if n.move != nil {
			count++
		}
	}
	return count
}

// NodeAtIndex returns the current variation's node at the given index.
// Index 0 is always the root.
func (m *NodeModel) NodeAtIndex(i int) (*Node, error) {
	if i < 0 || i >= len(m.currentVariation) {
		return nil, errors.Wrapf(game.ErrRange, "node index %d outside variation of length %d", i, len(m.currentVariation))
	}
	return m.currentVariation[i], nil
}

// IndexOfNode returns the index of n in the current variation, or a range
// error if n is not on the current path.
func (m *NodeModel) IndexOfNode(n *Node) (int, error) {
	if n == nil {
		return 0, errors.Wrap(game.ErrInvalidArgument, "IndexOfNode: nil node")
	}
	for i, candidate := range m.currentVariation {
		if candidate == n {
			return i, nil
		}
	}
	return 0, errors.Wrap(game.ErrRange, "IndexOfNode: node is not part of the current variation")
}

// LeafNode returns the last node of the current variation.
func (m *NodeModel) LeafNode() *Node { return m.currentVariation[len(m.currentVariation)-1] }

// ChangeToMainVariation recomputes the current variation by always following
// the first child from the root down to a leaf.
func (m *NodeModel) ChangeToMainVariation() {
	m.currentVariation = m.currentVariation[:0]
	for n := m.root; n != nil; n = n.firstChild {
		m.currentVariation = append(m.currentVariation, n)
	}
}

// ChangeToVariationContainingNode recomputes the current variation so that
// it passes through n: up from n to the root, then on below n following
// first children down to a leaf.
func (m *NodeModel) ChangeToVariationContainingNode(n *Node) error {
	if n == nil {
		return errors.Wrap(game.ErrInvalidArgument, "ChangeToVariationContainingNode: nil node")
	}
	var upward []*Node
	for walk := n; walk != nil; walk = walk.parent {
		upward = append(upward, walk)
	}
	if upward[len(upward)-1] != m.root {
		return errors.Wrap(game.ErrInvalidArgument, "ChangeToVariationContainingNode: node is not reachable from the root")
	}
	variation := make([]*Node, 0, len(upward))
	for i := len(upward) - 1; i >= 0; i-- {
		variation = append(variation, upward[i])
	}
	for walk := n.firstChild; walk != nil; walk = walk.firstChild {
		variation = append(variation, walk)
	}
	m.currentVariation = variation
	return nil
}

// AncestorOfNodeInCurrentVariation returns n itself if n lies on the current
// variation, otherwise n's nearest ancestor that does. Degenerates to the
// root when the branch point is the root.
func (m *NodeModel) AncestorOfNodeInCurrentVariation(n *Node) (*Node, error) {
	if n == nil {
		return nil, errors.Wrap(game.ErrInvalidArgument, "AncestorOfNodeInCurrentVariation: nil node")
	}
	for walk := n; walk != nil; walk = walk.parent {
		if _, err := m.IndexOfNode(walk); err == nil {
			return walk, nil
		}
	}
	return nil, errors.Wrap(game.ErrInvalidArgument, "AncestorOfNodeInCurrentVariation: node is not reachable from the root")
}

// AppendNode attaches n behind the current variation's leaf and extends the
// variation by it.
func (m *NodeModel) AppendNode(n *Node) error {
	if n == nil {
		return errors.Wrap(game.ErrInvalidArgument, "AppendNode: nil node")
	}
	if n == m.root {
		return errors.Wrap(game.ErrInvalidArgument, "AppendNode: cannot append the root node")
	}
	leaf := m.LeafNode()
	isAncestor, err := n.IsAncestorOf(leaf)
	if err != nil {
		return err
	}
	if isAncestor {
		return errors.Wrap(game.ErrInvalidArgument, "AppendNode: node is an ancestor of the current leaf")
	}
	if err := leaf.AppendChild(n); err != nil {
		return errors.WithMessage(err, "AppendNode")
	}
	m.currentVariation = append(m.currentVariation, n)
	return nil
}

// DiscardNodesFromIndex removes the tail of the current variation starting
// at index i. The first discarded node is detached from its parent; when it
// has a sibling, the next sibling (or, failing that, the previous sibling)
// and its subtree become the variation's new continuation, leaving the
// parent's remaining children intact. Linkage among the discarded nodes
// themselves is not severed. Discarding the root is illegal: valid indices
// are 1 .. NumberOfNodes()-1.
func (m *NodeModel) DiscardNodesFromIndex(i int) error {
	if i < 1 || i >= len(m.currentVariation) {
		return errors.Wrapf(game.ErrRange, "discard index %d outside 1..%d", i, len(m.currentVariation)-1)
	}
	discarded := m.currentVariation[i]
	parent := m.currentVariation[i-1]

	promoted := discarded.nextSibling
	if promoted == nil {
		promoted = discarded.PreviousSibling()
	}
	if err := parent.RemoveChild(discarded); err != nil {
		return err
	}

	m.currentVariation = m.currentVariation[:i]
	for walk := promoted; walk != nil; walk = walk.firstChild {
		m.currentVariation = append(m.currentVariation, walk)
	}
	return nil
}

// DiscardLeafNode removes the last node of the current variation.
func (m *NodeModel) DiscardLeafNode() error {
	return m.DiscardNodesFromIndex(len(m.currentVariation) - 1)
}

// DiscardAllNodes removes every node but the root. A model already reduced
// to its root is left alone.
func (m *NodeModel) DiscardAllNodes() error {
	if len(m.currentVariation) == 1 {
		return nil
	}
	return m.DiscardNodesFromIndex(1)
}

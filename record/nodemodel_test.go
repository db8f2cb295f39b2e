package record

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuki/goban/game"
)

func appendNodes(t *testing.T, m *NodeModel, count int) []*Node {
	t.Helper()
	nodes := make([]*Node, count)
	for i := range nodes {
		nodes[i] = NewNode()
		require.NoError(t, m.AppendNode(nodes[i]))
	}
	return nodes
}

func TestNewNodeModel(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	assert.NotNil(m.Root())
	assert.Equal(1, m.NumberOfNodes())
	assert.Zero(m.NumberOfMoves())
	n, err := m.NodeAtIndex(0)
	assert.NoError(err)
	assert.Same(m.Root(), n, "index 0 is always the root")
	assert.Same(m.Root(), m.LeafNode())

	_, err = m.NodeAtIndex(1)
	assert.Equal(game.ErrRange, errors.Cause(err))
	_, err = m.NodeAtIndex(-1)
	assert.Equal(game.ErrRange, errors.Cause(err))
}

func TestAppendNode(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	nodes := appendNodes(t, m, 3)

	assert.Equal(4, m.NumberOfNodes())
	assert.Same(nodes[2], m.LeafNode())
	assert.Same(nodes[0], m.Root().FirstChild())

	err := m.AppendNode(nil)
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err))
	err = m.AppendNode(m.Root())
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err), "the root cannot be appended")
	err = m.AppendNode(nodes[0])
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err), "an ancestor of the leaf cannot be appended")
}

func TestChangeToMainVariation(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	main := appendNodes(t, m, 2)

	// branch off the root: root -> (main[0] -> main[1], side -> sideLeaf)
	side, sideLeaf := NewNode(), NewNode()
	require.NoError(t, m.Root().AppendChild(side))
	require.NoError(t, side.AppendChild(sideLeaf))

	require.NoError(t, m.ChangeToVariationContainingNode(side))
	assert.Equal([]*Node{m.Root(), side, sideLeaf}, m.CurrentVariation())

	m.ChangeToMainVariation()
	assert.Equal([]*Node{m.Root(), main[0], main[1]}, m.CurrentVariation())
}

func TestChangeToVariationContainingNode(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	main := appendNodes(t, m, 3)

	// a side branch below main[0]
	side, sideLeaf := NewNode(), NewNode()
	require.NoError(t, main[0].AppendChild(side))
	require.NoError(t, side.AppendChild(sideLeaf))

	require.NoError(t, m.ChangeToVariationContainingNode(side))
	assert.Equal([]*Node{m.Root(), main[0], side, sideLeaf}, m.CurrentVariation(),
		"continues below the given node following first children")

	// a node already on the variation keeps the path and extends to a leaf
	require.NoError(t, m.ChangeToVariationContainingNode(main[1]))
	assert.Equal([]*Node{m.Root(), main[0], main[1], main[2]}, m.CurrentVariation())

	err := m.ChangeToVariationContainingNode(nil)
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err))
	err = m.ChangeToVariationContainingNode(NewNode())
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err), "detached node is not reachable")
}

func TestAncestorOfNodeInCurrentVariation(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	main := appendNodes(t, m, 2)

	side := NewNode()
	require.NoError(t, main[0].AppendChild(side))

	got, err := m.AncestorOfNodeInCurrentVariation(main[1])
	assert.NoError(err)
	assert.Same(main[1], got, "a node on the path is its own answer")

	got, err = m.AncestorOfNodeInCurrentVariation(side)
	assert.NoError(err)
	assert.Same(main[0], got, "nearest ancestor on the path")

	rootBranch := NewNode()
	require.NoError(t, m.Root().AppendChild(rootBranch))
	got, err = m.AncestorOfNodeInCurrentVariation(rootBranch)
	assert.NoError(err)
	assert.Same(m.Root(), got, "degenerates to the root")

	_, err = m.AncestorOfNodeInCurrentVariation(nil)
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err))
}

// Discarding from index 2 of a 4-node linear variation
// leaves 2 nodes, severs the link between the new leaf and the discarded
// child, and keeps the linkage among the discarded nodes intact.
func TestDiscardNodesFromIndex(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	nodes := appendNodes(t, m, 3)

	require.NoError(t, m.DiscardNodesFromIndex(2))
	assert.Equal(2, m.NumberOfNodes())
	assert.Same(nodes[0], m.LeafNode())
	assert.False(nodes[0].HasChildren(), "link to the discarded child is severed")
	assert.Nil(nodes[1].Parent())
	assert.Same(nodes[2], nodes[1].FirstChild(), "discarded nodes keep their own links")
	assert.Same(nodes[1], nodes[2].Parent())
}

func TestDiscardPromotesSibling(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	nodes := appendNodes(t, m, 2) // root -> n0 -> n1

	// n0 also has a second child with its own continuation
	alt, altLeaf := NewNode(), NewNode()
	require.NoError(t, nodes[0].AppendChild(alt))
	require.NoError(t, alt.AppendChild(altLeaf))

	// discarding n1 promotes its next sibling's subtree into the variation
	require.NoError(t, m.DiscardNodesFromIndex(2))
	assert.Equal([]*Node{m.Root(), nodes[0], alt, altLeaf}, m.CurrentVariation())
	assert.Equal([]*Node{alt}, nodes[0].Children(), "remaining children stay intact")
}

func TestDiscardPromotesPreviousSibling(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	nodes := appendNodes(t, m, 1) // root -> n0

	// make the current variation run through a *last* child
	alt := NewNode()
	require.NoError(t, m.Root().AppendChild(alt))
	require.NoError(t, m.ChangeToVariationContainingNode(alt))
	require.Equal(t, []*Node{m.Root(), alt}, m.CurrentVariation())

	// alt has no next sibling, so its previous sibling is promoted
	require.NoError(t, m.DiscardNodesFromIndex(1))
	assert.Equal([]*Node{m.Root(), nodes[0]}, m.CurrentVariation())
}

func TestDiscardBounds(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	appendNodes(t, m, 2)

	err := m.DiscardNodesFromIndex(0)
	assert.Equal(game.ErrRange, errors.Cause(err), "discarding the root is illegal")
	err = m.DiscardNodesFromIndex(3)
	assert.Equal(game.ErrRange, errors.Cause(err))
	err = m.DiscardNodesFromIndex(-1)
	assert.Equal(game.ErrRange, errors.Cause(err))

	require.NoError(t, m.DiscardLeafNode())
	assert.Equal(2, m.NumberOfNodes())

	require.NoError(t, m.DiscardAllNodes())
	assert.Equal(1, m.NumberOfNodes())
	assert.NoError(m.DiscardAllNodes(), "a root-only model stays untouched")
	err = m.DiscardLeafNode()
	assert.Equal(game.ErrRange, errors.Cause(err), "the root cannot be discarded")
}

func TestNumberOfMoves(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	nodes := appendNodes(t, m, 3)

	pass, err := NewMove(Pass, game.Player(game.Black), nil, nil)
	require.NoError(t, err)
	nodes[1].SetMove(pass)
	assert.Equal(1, m.NumberOfMoves())
	assert.Equal(4, m.NumberOfNodes())
}

func TestToDot(t *testing.T) {
	assert := assert.New(t)
	m := NewNodeModel()
	appendNodes(t, m, 2)

	dot := m.ToDot()
	assert.Contains(dot, "digraph G")
	assert.Contains(dot, "0->1")
	assert.Contains(dot, "1->2")
}

package record

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

func newPosition(t *testing.T, size int) (*NodeModel, *board.Board, *BoardPosition) {
	t.Helper()
	m := NewNodeModel()
	b := newBoard(t, size)
	bp, err := NewBoardPosition(m, b)
	require.NoError(t, err)
	return m, b, bp
}

// lastMove returns the most recent move on the current variation, for
// linking a new move behind it.
func lastMove(m *NodeModel) *Move {
	variation := m.CurrentVariation()
	for i := len(variation) - 1; i >= 0; i-- {
		if variation[i].Move() != nil {
			return variation[i].Move()
		}
	}
	return nil
}

// appendPlay grows the variation by one play node and advances the cursor
// onto it, the way the game façade does.
func appendPlay(t *testing.T, m *NodeModel, bp *BoardPosition, b *board.Board, player game.Player, vertex string) *Node {
	t.Helper()
	mv, err := NewMove(Play, player, point(t, b, vertex), lastMove(m))
	require.NoError(t, err)
	n := NewNode()
	n.SetMove(mv)
	require.NoError(t, m.AppendNode(n))
	bp.SetNumberOfBoardPositions(m.NumberOfNodes())
	require.NoError(t, bp.SetCurrentBoardPosition(m.NumberOfNodes()-1))
	return n
}

func TestCursorReplayAndRevert(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)
	empty := snapshot(t, b)

	appendPlay(t, m, bp, b, game.Player(game.Black), "E5")
	appendPlay(t, m, bp, b, game.Player(game.White), "E4")
	appendPlay(t, m, bp, b, game.Player(game.Black), "D4")
	assert.Equal(3, bp.CurrentBoardPosition())
	assert.Equal(4, bp.NumberOfBoardPositions())
	assert.True(bp.IsLastPosition())
	full := snapshot(t, b)

	// rewinding to the root restores the empty board
	require.NoError(t, bp.SetCurrentBoardPosition(0))
	assert.Equal(empty, snapshot(t, b))
	assert.True(bp.IsFirstPosition())

	// replaying forward restores the exact position
	require.NoError(t, bp.SetCurrentBoardPosition(3))
	assert.Equal(full, snapshot(t, b))

	// stepping to the middle yields the 2-stone position
	require.NoError(t, bp.SetCurrentBoardPosition(2))
	assert.True(point(t, b, "E5").HasStone())
	assert.True(point(t, b, "E4").HasStone())
	assert.False(point(t, b, "D4").HasStone())
}

func TestCursorIdempotence(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)
	appendPlay(t, m, bp, b, game.Player(game.Black), "E5")

	notifications := 0
	bp.SetOnChange(func(old, new int) { notifications++ })

	before := snapshot(t, b)
	require.NoError(t, bp.SetCurrentBoardPosition(bp.CurrentBoardPosition()))
	assert.Equal(before, snapshot(t, b), "same-value assignment mutates nothing")
	assert.Zero(notifications, "same-value assignment fires no notification")

	err := bp.SetCurrentBoardPosition(-1)
	assert.Equal(game.ErrRange, errors.Cause(err))
	err = bp.SetCurrentBoardPosition(bp.NumberOfBoardPositions())
	assert.Equal(game.ErrRange, errors.Cause(err))
	assert.Zero(notifications, "rejected assignments fire no notification")

	require.NoError(t, bp.SetCurrentBoardPosition(0))
	assert.Equal(1, notifications, "an actual change fires exactly once")
}

func TestCursorNotificationCarriesIndices(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)
	appendPlay(t, m, bp, b, game.Player(game.Black), "E5")
	appendPlay(t, m, bp, b, game.Player(game.White), "E4")

	var gotOld, gotNew int
	bp.SetOnChange(func(old, new int) { gotOld, gotNew = old, new })
	require.NoError(t, bp.SetCurrentBoardPosition(0))
	assert.Equal(2, gotOld)
	assert.Equal(0, gotNew)
}

func TestCaptureReplay(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)

	appendPlay(t, m, bp, b, game.Player(game.White), "A1")
	appendPlay(t, m, bp, b, game.Player(game.Black), "B1")
	n := appendPlay(t, m, bp, b, game.Player(game.Black), "A2")
	assert.Len(n.Move().CapturedStones(), 1)
	assert.False(point(t, b, "A1").HasStone())

	// rewind across the capture and replay it again
	require.NoError(t, bp.SetCurrentBoardPosition(2))
	assert.Equal(game.White, point(t, b, "A1").Stone(), "capture reverted")
	require.NoError(t, bp.SetCurrentBoardPosition(3))
	assert.False(point(t, b, "A1").HasStone(), "capture replayed")
}

// The incrementally cached node hashes must agree with rehashing the whole
// board at every position.
func TestNodeHashCaching(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)

	appendPlay(t, m, bp, b, game.Player(game.White), "A1")
	appendPlay(t, m, bp, b, game.Player(game.Black), "B1")
	appendPlay(t, m, bp, b, game.Player(game.Black), "A2") // captures A1

	for i := m.NumberOfNodes() - 1; i >= 0; i-- {
		require.NoError(t, bp.SetCurrentBoardPosition(i))
		full, err := b.Zobrist().HashForBoard(b)
		require.NoError(t, err)
		n, err := m.NodeAtIndex(i)
		require.NoError(t, err)
		assert.Equal(full, n.ZobristHash(), "cached hash at position %d", i)

		incremental, err := NodeHash(n, b)
		require.NoError(t, err)
		assert.Equal(full, incremental, "NodeHash at position %d", i)
	}
}

func TestSetupNodeReplay(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)

	setup := NewSetup()
	setup.AddBlack(point(t, b, "D4"))
	setup.AddBlack(point(t, b, "E5"))
	setup.AddWhite(point(t, b, "C3"))
	setup.SetFirstMoveColour(game.White)
	n := NewNode()
	n.SetSetup(setup)
	require.NoError(t, m.AppendNode(n))
	bp.SetNumberOfBoardPositions(m.NumberOfNodes())

	require.NoError(t, bp.SetCurrentBoardPosition(1))
	assert.Equal(game.Black, point(t, b, "D4").Stone())
	assert.Equal(game.White, point(t, b, "C3").Stone())
	full, err := b.Zobrist().HashForBoard(b)
	require.NoError(t, err)
	assert.Equal(full, n.ZobristHash())

	// the applied setup hash is recomputable without the parent position
	incremental, err := NodeHash(n, b)
	require.NoError(t, err)
	assert.Equal(full, incremental)

	require.NoError(t, bp.SetCurrentBoardPosition(0))
	assert.False(point(t, b, "D4").HasStone())
	assert.False(point(t, b, "C3").HasStone())
	assert.Len(b.Regions(), 1, "revert restores the single empty region")
}

func TestPositionCountEscapeHatch(t *testing.T) {
	assert := assert.New(t)
	m, b, bp := newPosition(t, 9)
	appendPlay(t, m, bp, b, game.Player(game.Black), "E5")
	appendPlay(t, m, bp, b, game.Player(game.White), "E4")

	// the raw setter performs no validation at all
	bp.SetNumberOfBoardPositions(-3)
	assert.Equal(-3, bp.NumberOfBoardPositions())

	// repositioning without board updates: the board is untouched
	before := snapshot(t, b)
	bp.ChangeToLastBoardPositionWithoutUpdatingBoard()
	assert.Equal(-4, bp.CurrentBoardPosition())
	assert.Equal(before, snapshot(t, b))

	bp.SetNumberOfBoardPositions(0)
	bp.ChangeToLastBoardPositionWithoutUpdatingBoard()
	assert.Equal(-1, bp.CurrentBoardPosition())
	assert.Nil(bp.CurrentNode())

	// restore sanity the way bulk restructuring callers do
	bp.SetNumberOfBoardPositions(m.NumberOfNodes())
	bp.ChangeToLastBoardPositionWithoutUpdatingBoard()
	assert.Equal(2, bp.CurrentBoardPosition())
}
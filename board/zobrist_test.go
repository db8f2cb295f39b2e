package board

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuki/goban/game"
)

func TestZobristDeterminism(t *testing.T) {
	assert := assert.New(t)
	a := NewZobristTable(9)
	b := NewZobristTable(9)
	assert.Equal(a.table, b.table, "same size seeds identically")
	assert.Equal(9, a.Size())

	c := NewZobristTable(19)
	assert.NotEqual(a.table[0], c.table[0], "different sizes seed differently")
}

func TestZobristEmptyBoard(t *testing.T) {
	assert := assert.New(t)
	b, err := New(9)
	require.NoError(t, err)

	hash, err := b.Zobrist().HashForBoard(b)
	assert.NoError(err)
	assert.Zero(hash, "the empty board always hashes to 0")
}

func TestZobristSizeMismatch(t *testing.T) {
	assert := assert.New(t)
	b, err := New(9)
	require.NoError(t, err)
	z := NewZobristTable(19)

	_, err = z.HashForBoard(b)
	assert.Equal(game.ErrSizeMismatch, errors.Cause(err))
	_, err = z.HashForStonePlayed(game.Black, mustPoint(t, b, "A1"), nil, 0, b)
	assert.Equal(game.ErrSizeMismatch, errors.Cause(err))
	_, err = z.HashForSetup(nil, nil, nil, 0, b)
	assert.Equal(game.ErrSizeMismatch, errors.Cause(err))
	_, err = b.Zobrist().HashForBoard(nil)
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err))
}

// The corner capture scenario: White A1, Black B1, Black A2 capturing A1.
// Incremental hashing must agree with rehashing the whole board at every
// step, and capturing must cancel the captured stone's contribution.
func TestZobristIncremental(t *testing.T) {
	assert := assert.New(t)
	b, err := New(19)
	require.NoError(t, err)
	z := b.Zobrist()

	var hash uint64

	a1 := mustPoint(t, b, "A1")
	hash, err = z.HashForStonePlayed(game.White, a1, nil, hash, b)
	require.NoError(t, err)
	assert.NotZero(hash)
	require.NoError(t, b.PlaceStone(a1, game.White))
	full, err := z.HashForBoard(b)
	require.NoError(t, err)
	assert.Equal(full, hash)
	assert.Len(b.Regions(), 2)

	b1 := mustPoint(t, b, "B1")
	hash, err = z.HashForStonePlayed(game.Black, b1, nil, hash, b)
	require.NoError(t, err)
	require.NoError(t, b.PlaceStone(b1, game.Black))
	full, err = z.HashForBoard(b)
	require.NoError(t, err)
	assert.Equal(full, hash)
	assert.Len(b.Regions(), 3)

	// A2 captures A1: the white value is XORed a second time and cancels out
	a2 := mustPoint(t, b, "A2")
	hash, err = z.HashForStonePlayed(game.Black, a2, []*Point{a1}, hash, b)
	require.NoError(t, err)
	require.NoError(t, b.PlaceStone(a2, game.Black))
	require.NoError(t, b.RemoveStone(a1))
	full, err = z.HashForBoard(b)
	require.NoError(t, err)
	assert.Equal(full, hash)

	// A1 is now an isolated empty region between the two black stones
	assert.Len(b.Regions(), 4)
	assert.Equal(1, a1.Region().Size())
	assert.False(a1.Region().IsStoneGroup())
	checkInvariants(t, b)

	// the captured point's contribution is gone: the position hash equals
	// the hash of just the two black stones
	vb1, err := z.value(b1, game.Black)
	require.NoError(t, err)
	va2, err := z.value(a2, game.Black)
	require.NoError(t, err)
	assert.Equal(vb1^va2, hash)
}

func TestZobristSetup(t *testing.T) {
	assert := assert.New(t)
	b, err := New(9)
	require.NoError(t, err)
	z := b.Zobrist()

	d4 := mustPoint(t, b, "D4")
	e5 := mustPoint(t, b, "E5")
	c3 := mustPlace(t, b, "C3", game.White)

	// one pass over additions and a removal, starting from the hash of
	// the current (C3-only) position
	before, err := z.HashForBoard(b)
	require.NoError(t, err)
	hash, err := z.HashForSetup([]*Point{d4}, []*Point{e5}, []*Point{c3}, before, b)
	require.NoError(t, err)
	require.NoError(t, b.PlaceStone(d4, game.Black))
	require.NoError(t, b.PlaceStone(e5, game.White))
	require.NoError(t, b.RemoveStone(c3))
	full, err := z.HashForBoard(b)
	require.NoError(t, err)
	assert.Equal(full, hash)

	// a no-op entry contributes nothing
	same, err := z.HashForSetup([]*Point{d4}, nil, nil, hash, b)
	require.NoError(t, err)
	assert.Equal(hash, same)

	// contradictory lists are rejected
	_, err = z.HashForSetup([]*Point{d4}, []*Point{d4}, nil, hash, b)
	assert.Equal(game.ErrInconsistentState, errors.Cause(err))
	_, err = z.HashForSetup(nil, nil, []*Point{nil}, hash, b)
	assert.Equal(game.ErrInvalidArgument, errors.Cause(err))
}

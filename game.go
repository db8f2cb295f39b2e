package goban

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
	"github.com/tenuki/goban/record"
)

// PlayerInfo describes who plays one colour. A computer player is consulted
// externally; its result comes back through an ordinary Play call.
type PlayerInfo struct {
	Name     string
	Computer bool
}

// Game is the façade external collaborators call. It owns exactly one
// board, one node model and one position cursor, and serializes every
// mutation on the calling goroutine. All methods assume single-writer
// access.
type Game struct {
	id    uuid.UUID
	rules Rules

	board    *board.Board
	model    *record.NodeModel
	position *record.BoardPosition

	state    State
	players  [3]PlayerInfo // indexed by colour
	resigned game.Colour
	onChange func(old, new int)
}

// NewGame builds a game under the given rules. A handicap is placed as a
// setup node handing the first move to White.
func NewGame(rules Rules) (*Game, error) {
	if err := rules.check(); err != nil {
		return nil, err
	}
	b, err := board.New(rules.BoardSize)
	if err != nil {
		return nil, err
	}
	m := record.NewNodeModel()
	bp, err := record.NewBoardPosition(m, b)
	if err != nil {
		return nil, err
	}
	g := &Game{
		id:       uuid.New(),
		rules:    rules,
		board:    b,
		model:    m,
		position: bp,
	}
	if rules.Handicap > 0 {
		coords, err := HandicapCoords(rules.BoardSize, rules.Handicap)
		if err != nil {
			return nil, err
		}
		setup := record.NewSetup()
		for _, c := range coords {
			p, err := b.PointAt(c)
			if err != nil {
				return nil, err
			}
			setup.AddBlack(p)
		}
		setup.SetFirstMoveColour(game.White)
		n := record.NewNode()
		n.SetSetup(setup)
		if err := g.appendNode(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ID returns the game's identity.
func (g *Game) ID() uuid.UUID { return g.id }

// Rules returns the rule configuration.
func (g *Game) Rules() Rules { return g.rules }

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// SetKomi changes the komi. Any value is accepted; scoring picks up the
// new value immediately.
func (g *Game) SetKomi(komi float32) { g.rules.Komi = komi }

// Board returns the live board.
func (g *Game) Board() *board.Board { return g.board }

// NodeModel returns the game record tree.
func (g *Game) NodeModel() *record.NodeModel { return g.model }

// Position returns the board position cursor.
func (g *Game) Position() *record.BoardPosition { return g.position }

// SetPlayer records who plays a colour.
func (g *Game) SetPlayer(c game.Colour, info PlayerInfo) error {
	if c != game.Black && c != game.White {
		return errors.Wrapf(game.ErrInvalidArgument, "SetPlayer: invalid colour %v", c)
	}
	g.players[c] = info
	return nil
}

// Player returns who plays a colour.
func (g *Game) Player(c game.Colour) PlayerInfo { return g.players[c] }

// IsComputerPlayersTurn reports whether the colour to move is played by a
// computer.
func (g *Game) IsComputerPlayersTurn() bool {
	return g.players[g.NextMoveColour()].Computer
}

// SetPositionChangeListener registers the position-change-in-progress
// callback, fired once per cursor assignment that actually changes it.
func (g *Game) SetPositionChangeListener(f func(old, new int)) {
	g.onChange = f
	g.position.SetOnChange(f)
}

// NextMoveColour determines whose turn it is: the opponent of the last
// move on the current variation, a setup node's first-move override, or
// Black on an even board and White after a handicap.
func (g *Game) NextMoveColour() game.Colour {
	for i := g.position.CurrentBoardPosition(); i >= 0; i-- {
		n, err := g.model.NodeAtIndex(i)
		if err != nil {
			break
		}
		if m := n.Move(); m != nil {
			return game.OpponentColour(game.Colour(m.Player()))
		}
		if s := n.Setup(); s != nil && s.FirstMoveColour() != game.None {
			return s.FirstMoveColour()
		}
	}
	if g.rules.Handicap > 0 {
		return game.White
	}
	return game.Black
}

// CurrentHash returns the zobrist hash of the current position.
func (g *Game) CurrentHash() uint64 {
	if n := g.position.CurrentNode(); n != nil {
		return n.ZobristHash()
	}
	return 0
}

// checkCommand gates the command surface: mutating intents are accepted
// only before the game ends, while not paused, with the cursor at the last
// position of the current variation.
func (g *Game) checkCommand() error {
	switch g.state {
	case Ended:
		return errors.Wrap(game.ErrInconsistentState, "the game has ended")
	case Paused:
		return errors.Wrap(game.ErrInconsistentState, "the game is paused")
	}
	if !g.position.IsLastPosition() {
		return errors.Wrapf(game.ErrInconsistentState,
			"board position %d is not the last position", g.position.CurrentBoardPosition())
	}
	return nil
}

// lastMove returns the most recent move on the current variation at or
// before the cursor.
func (g *Game) lastMove() *record.Move {
	for i := g.position.CurrentBoardPosition(); i >= 0; i-- {
		n, err := g.model.NodeAtIndex(i)
		if err != nil {
			return nil
		}
		if m := n.Move(); m != nil {
			return m
		}
	}
	return nil
}

// wouldCapture returns the points of every distinct opposing neighbour
// group left with zero liberties once c plays p. p itself is the last
// liberty of any such group, so a single liberty is the test.
func (g *Game) wouldCapture(c game.Colour, p *board.Point) []*board.Point {
	var captured []*board.Point
	seen := make(map[*board.Region]bool)
	for _, nb := range p.Neighbours() {
		r := nb.Region()
		if r == nil || seen[r] || r.Colour() != game.OpponentColour(c) {
			continue
		}
		seen[r] = true
		if libs, err := r.Liberties(); err == nil && libs == 1 {
			captured = append(captured, r.Points()...)
		}
	}
	return captured
}

// isSuicide reports whether playing c on p leaves the resulting group
// without liberties, assuming the play captures nothing.
func (g *Game) isSuicide(c game.Colour, p *board.Point) bool {
	for _, nb := range p.Neighbours() {
		if !nb.HasStone() {
			return false
		}
		if nb.Stone() != c {
			continue
		}
		// joining a friendly group keeps us alive iff the group holds a
		// liberty other than p
		if libs, err := nb.Region().Liberties(); err == nil && libs > 1 {
			return false
		}
	}
	return true
}

// IsLegal checks a prospective play without mutating anything: the point
// must be empty, the play must not be suicide, and the resulting position
// must not violate the configured ko rule.
func (g *Game) IsLegal(c game.Colour, p *board.Point) error {
	if p == nil {
		return errors.Wrap(game.ErrInvalidArgument, "IsLegal: nil point")
	}
	if c != game.Black && c != game.White {
		return errors.Wrapf(game.ErrInvalidArgument, "IsLegal: invalid colour %v", c)
	}
	if p.HasStone() {
		return errors.Wrapf(game.ErrInconsistentState, "%s already has a %v stone", p.Vertex(), p.Stone())
	}
	captured := g.wouldCapture(c, p)
	if len(captured) == 0 && g.isSuicide(c, p) {
		return errors.Wrapf(game.ErrInvalidArgument, "%v %s is suicide", c, p.Vertex())
	}
	hash, err := g.board.Zobrist().HashForStonePlayed(c, p, captured, g.CurrentHash(), g.board)
	if err != nil {
		return err
	}
	return g.checkKo(c, p, hash)
}

// checkKo compares the prospective position hash against the variation
// history according to the configured ko rule.
func (g *Game) checkKo(c game.Colour, p *board.Point, hash uint64) error {
	cur := g.position.CurrentBoardPosition()
	variation := g.model.CurrentVariation()
	switch g.rules.Ko {
	case SimpleKo:
		if cur >= 1 && variation[cur-1].ZobristHash() == hash {
			return errors.Wrapf(game.ErrInvalidArgument, "%v %s violates the ko rule", c, p.Vertex())
		}
	case PositionalSuperko:
		for i := 0; i <= cur; i++ {
			if variation[i].ZobristHash() == hash {
				return errors.Wrapf(game.ErrInvalidArgument, "%v %s recreates the position at node %d", c, p.Vertex(), i)
			}
		}
	case SituationalSuperko:
		for i := 0; i <= cur; i++ {
			if variation[i].ZobristHash() != hash {
				continue
			}
			m := variation[i].Move()
			if m != nil && game.Colour(m.Player()) == c {
				return errors.Wrapf(game.ErrInvalidArgument, "%v %s recreates the position at node %d", c, p.Vertex(), i)
			}
		}
	}
	return nil
}

// appendNode grows the current variation by one node and advances the
// cursor onto it, applying its board effect. A failed application rolls
// the append back.
func (g *Game) appendNode(n *record.Node) error {
	if err := g.model.AppendNode(n); err != nil {
		return err
	}
	g.position.SetNumberOfBoardPositions(g.model.NumberOfNodes())
	if err := g.position.SetCurrentBoardPosition(g.model.NumberOfNodes() - 1); err != nil {
		if derr := g.model.DiscardLeafNode(); derr != nil {
			return errors.WithMessage(err, derr.Error())
		}
		g.position.SetNumberOfBoardPositions(g.model.NumberOfNodes())
		return err
	}
	return nil
}

// Play validates and applies a stone placement by c, appending a move node
// and advancing the cursor.
func (g *Game) Play(c game.Colour, p *board.Point) error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	if next := g.NextMoveColour(); c != next {
		return errors.Wrapf(game.ErrInvalidArgument, "it is %v's turn, not %v's", next, c)
	}
	if err := g.IsLegal(c, p); err != nil {
		return err
	}
	mv, err := record.NewMove(record.Play, game.Player(c), p, g.lastMove())
	if err != nil {
		return err
	}
	n := record.NewNode()
	n.SetMove(mv)
	if err := g.appendNode(n); err != nil {
		return err
	}
	if g.state == NotStarted {
		g.state = InProgress
	}
	return nil
}

// Pass applies a pass by c. Two consecutive passes end the game.
func (g *Game) Pass(c game.Colour) error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	if next := g.NextMoveColour(); c != next {
		return errors.Wrapf(game.ErrInvalidArgument, "it is %v's turn, not %v's", next, c)
	}
	mv, err := record.NewMove(record.Pass, game.Player(c), nil, g.lastMove())
	if err != nil {
		return err
	}
	n := record.NewNode()
	n.SetMove(mv)
	if err := g.appendNode(n); err != nil {
		return err
	}
	if g.state == NotStarted {
		g.state = InProgress
	}
	if g.consecutivePasses() >= 2 {
		g.state = Ended
	}
	return nil
}

// consecutivePasses counts the trailing passes on the current variation.
func (g *Game) consecutivePasses() int {
	count := 0
	for i := g.position.CurrentBoardPosition(); i >= 0; i-- {
		n, err := g.model.NodeAtIndex(i)
		if err != nil || n.Move() == nil {
			break
		}
		if n.Move().Kind() != record.Pass {
			break
		}
		count++
	}
	return count
}

// Resign ends the game with c as the resigning side.
func (g *Game) Resign(c game.Colour) error {
	if c != game.Black && c != game.White {
		return errors.Wrapf(game.ErrInvalidArgument, "Resign: invalid colour %v", c)
	}
	if g.state == Ended {
		return errors.Wrap(game.ErrInconsistentState, "the game has ended")
	}
	g.resigned = c
	g.state = Ended
	return nil
}

// Pause suspends an in-progress game. The cursor may still be moved; the
// command surface is gated until Resume.
func (g *Game) Pause() error {
	if g.state != InProgress {
		return errors.Wrapf(game.ErrInconsistentState, "cannot pause a game that is %v", g.state)
	}
	g.state = Paused
	return nil
}

// Resume continues a paused game.
func (g *Game) Resume() error {
	if g.state != Paused {
		return errors.Wrapf(game.ErrInconsistentState, "cannot resume a game that is %v", g.state)
	}
	g.state = InProgress
	return nil
}

// SetupStones appends a setup node editing the board outside normal play,
// optionally overriding whose move is next.
func (g *Game) SetupStones(black, white, clear []*board.Point, firstMove game.Colour) error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	s := record.NewSetup()
	for _, p := range black {
		s.AddBlack(p)
	}
	for _, p := range white {
		s.AddWhite(p)
	}
	for _, p := range clear {
		s.AddClear(p)
	}
	s.SetFirstMoveColour(firstMove)
	if s.IsEmpty() && firstMove == game.None {
		return errors.Wrap(game.ErrInvalidArgument, "SetupStones: empty setup")
	}
	n := record.NewNode()
	n.SetSetup(s)
	return g.appendNode(n)
}

// UndoLastMove discards the leaf node of the current variation, reverting
// its board effect. Undoing past a game-ending pass reopens the game.
func (g *Game) UndoLastMove() error {
	if g.model.NumberOfNodes() <= 1 {
		return errors.Wrap(game.ErrInconsistentState, "nothing to undo")
	}
	if !g.position.IsLastPosition() {
		return errors.Wrapf(game.ErrInconsistentState,
			"board position %d is not the last position", g.position.CurrentBoardPosition())
	}
	if err := g.position.SetCurrentBoardPosition(g.model.NumberOfNodes() - 2); err != nil {
		return err
	}
	if err := g.model.DiscardLeafNode(); err != nil {
		return err
	}
	g.position.SetNumberOfBoardPositions(g.model.NumberOfNodes())
	if g.state == Ended && g.resigned == game.None {
		g.state = InProgress
	}
	return nil
}

// Result describes the outcome of an ended game, e.g. "B+3.5", "W+Resign"
// or "Draw". Empty until the game ends.
func (g *Game) Result() string {
	if g.state != Ended {
		return ""
	}
	if g.resigned != game.None {
		return fmt.Sprintf("%s+Resign", initial(game.OpponentColour(g.resigned)))
	}
	black, white := g.Score()
	switch {
	case black == white:
		return "Draw"
	case black > white:
		return fmt.Sprintf("B+%.1f", black-white)
	default:
		return fmt.Sprintf("W+%.1f", white-black)
	}
}

func initial(c game.Colour) string {
	if c == game.Black {
		return "B"
	}
	return "W"
}

// Format renders the current board.
func (g *Game) Format(s fmt.State, c rune) { g.board.Format(s, c) }

// Package goban is a rules and game-record engine for the game of Go. The
// Game façade orchestrates legality, turn order and end-of-game conditions
// on top of the board model, the node tree and the board position cursor.
package goban

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// KoRule selects how positional repetition is forbidden.
type KoRule int

const (
	// SimpleKo forbids recreating the position as it was immediately
	// before the opponent's last move.
	SimpleKo KoRule = iota
	// PositionalSuperko forbids recreating any earlier position.
	PositionalSuperko
	// SituationalSuperko forbids recreating any earlier position with the
	// same player having just moved.
	SituationalSuperko
)

func (k KoRule) String() string {
	switch k {
	case SimpleKo:
		return "simple"
	case PositionalSuperko:
		return "positional superko"
	case SituationalSuperko:
		return "situational superko"
	}
	return "unknown"
}

// Scoring selects the scoring system used by Game.Score.
type Scoring int

const (
	// AreaScoring counts stones plus surrounded empty points.
	AreaScoring Scoring = iota
	// TerritoryScoring counts surrounded empty points plus prisoners.
	TerritoryScoring
)

func (s Scoring) String() string {
	switch s {
	case AreaScoring:
		return "area"
	case TerritoryScoring:
		return "territory"
	}
	return "unknown"
}

// State is the lifecycle state of a Game.
type State int

const (
	NotStarted State = iota
	InProgress
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Rules is the rule configuration of a game. The zero value is not usable;
// start from DefaultRules.
type Rules struct {
	BoardSize int
	Komi      float32
	Handicap  int // 0 or 2..9
	Ko        KoRule
	Scoring   Scoring
}

// DefaultRules returns an even 19×19 game under simple ko and area scoring.
func DefaultRules() Rules {
	return Rules{
		BoardSize: 19,
		Komi:      7.5,
		Ko:        SimpleKo,
		Scoring:   AreaScoring,
	}
}

func (r Rules) check() error {
	if r.Handicap != 0 && (r.Handicap < 2 || r.Handicap > 9) {
		return errors.Wrapf(game.ErrInvalidArgument, "handicap %d outside 2..9", r.Handicap)
	}
	return nil
}

package goban

import (
	"github.com/chewxy/math32"

	"github.com/tenuki/goban/game"
)

// Score estimates both sides' scores for the current position under the
// configured scoring system. Stone groups marked dead in scoring mode are
// credited to their opponent. Empty regions bordering both colours count
// for neither.
func (g *Game) Score() (black, white float32) {
	var territoryB, territoryW, stonesB, stonesW, deadB, deadW float32

	for _, r := range g.board.Regions() {
		if r.IsDeadInScoring() {
			// dead stones become opposing territory (and prisoners,
			// under territory scoring)
			size := float32(r.Size())
			if r.Points()[0].Stone() == game.Black {
				deadB += size
			} else {
				deadW += size
			}
			continue
		}
		switch r.Colour() {
		case game.Black:
			stonesB += float32(r.Size())
		case game.White:
			stonesW += float32(r.Size())
		case game.None:
			var sawBlack, sawWhite bool
			for _, adj := range r.AdjacentRegions() {
				switch adj.Colour() {
				case game.Black:
					sawBlack = true
				case game.White:
					sawWhite = true
				}
			}
			switch {
			case sawBlack && !sawWhite:
				territoryB += float32(r.Size())
			case sawWhite && !sawBlack:
				territoryW += float32(r.Size())
			}
		}
	}

	switch g.rules.Scoring {
	case TerritoryScoring:
		// a dead stone is worth two points: the vacated territory point
		// plus the prisoner
		prisonersB, prisonersW := g.prisoners()
		black = territoryB + prisonersB + 2*deadW
		white = territoryW + prisonersW + 2*deadB
	default:
		black = territoryB + stonesB + deadW
		white = territoryW + stonesW + deadB
	}
	white += g.rules.Komi
	return black, white
}

// Margin returns the absolute score difference of the current position.
func (g *Game) Margin() float32 {
	black, white := g.Score()
	return math32.Abs(black - white)
}

// prisoners counts the stones each side has captured on the current
// variation up to the cursor.
func (g *Game) prisoners() (black, white float32) {
	for i := g.position.CurrentBoardPosition(); i >= 0; i-- {
		n, err := g.model.NodeAtIndex(i)
		if err != nil {
			break
		}
		m := n.Move()
		if m == nil {
			continue
		}
		taken := float32(len(m.CapturedStones()))
		if game.Colour(m.Player()) == game.Black {
			black += taken
		} else {
			white += taken
		}
	}
	return black, white
}

package board

import (
	"github.com/pkg/errors"

	"github.com/tenuki/goban/game"
)

// Region is a maximal connected set of points that all share the same
// occupancy: all empty, or all stones of one colour. The board owns the set
// of all regions; points hold a non-owning back reference to theirs.
type Region struct {
	board  *Board
	points []*Point

	// scoring mode freezes the computed properties so the UI can explore
	// hypothetical dead stone removal without touching the region graph
	scoringMode    bool
	deadInScoring  bool
	cachedSize     int
	cachedColour   game.Colour
	cachedLibs     int
	cachedLibsErr  error
	cachedAdjacent []*Region
}

func newRegion(b *Board) *Region {
	r := &Region{board: b}
	b.regions = append(b.regions, r)
	return r
}

// Size returns the number of member points.
func (r *Region) Size() int {
	if r.scoringMode {
		return r.cachedSize
	}
	return len(r.points)
}

// Points returns the member points. The returned slice must not be mutated.
func (r *Region) Points() []*Point { return r.points }

// Contains reports whether p is a member of the region.
func (r *Region) Contains(p *Point) bool {
	for _, member := range r.points {
		if member == p {
			return true
		}
	}
	return false
}

// Colour returns the occupancy shared by all members, or game.None for an
// empty-point region or a region with no members. In scoring mode a region
// marked dead reports game.None, as if its stones had been removed.
func (r *Region) Colour() game.Colour {
	if r.scoringMode {
		if r.deadInScoring {
			return game.None
		}
		return r.cachedColour
	}
	if len(r.points) == 0 {
		return game.None
	}
	return r.points[0].stone
}

// IsStoneGroup reports whether the region's members are occupied. In scoring
// mode a region marked dead no longer counts as a stone group.
func (r *Region) IsStoneGroup() bool { return r.Colour() != game.None }

// AddPoint absorbs p into the region, removing it from the region it
// previously belonged to. The previous region loses one point and is
// discarded when it becomes empty; its remainder may split.
func (r *Region) AddPoint(p *Point) error {
	if p == nil {
		return errors.Wrap(game.ErrInvalidArgument, "AddPoint: nil point")
	}
	previous := p.region
	if previous == r {
		return errors.Wrapf(game.ErrInvalidArgument, "AddPoint: point %s already belongs to this region", p.vertex)
	}
	if previous != nil && !previous.Contains(p) {
		// the back reference was updated without the region's bookkeeping
		return errors.Wrapf(game.ErrInconsistentState, "AddPoint: point %s references a region that does not contain it", p.vertex)
	}
	if len(r.points) > 0 && r.points[0].stone != p.stone {
		return errors.Wrapf(game.ErrInvalidArgument, "AddPoint: point %s has stone state %v, region members have %v", p.vertex, p.stone, r.points[0].stone)
	}
	if previous != nil {
		if err := previous.RemovePoint(p); err != nil {
			return errors.WithMessage(err, "AddPoint: detaching from previous region")
		}
	}
	p.region = r
	r.points = append(r.points, p)
	return nil
}

// RemovePoint removes p from the region. If the removal disconnects the
// remaining members the region splits; if the region becomes empty it is
// discarded from the board.
func (r *Region) RemovePoint(p *Point) error {
	if p == nil {
		return errors.Wrap(game.ErrInvalidArgument, "RemovePoint: nil point")
	}
	if p.region != r || !r.Contains(p) {
		return errors.Wrapf(game.ErrInvalidArgument, "RemovePoint: point %s is not a member", p.vertex)
	}
	for i, member := range r.points {
		if member == p {
			r.points = append(r.points[:i], r.points[i+1:]...)
			break
		}
	}
	p.region = nil
	if len(r.points) == 0 {
		r.board.dropRegion(r)
		return nil
	}
	r.splitIfRequired()
	return nil
}

// JoinRegion merges all of other's points into r, emptying other.
func (r *Region) JoinRegion(other *Region) error {
	if other == nil {
		return errors.Wrap(game.ErrInvalidArgument, "JoinRegion: nil region")
	}
	if other == r {
		return errors.Wrap(game.ErrInvalidArgument, "JoinRegion: cannot join a region with itself")
	}
	if len(r.points) > 0 && len(other.points) > 0 && r.points[0].stone != other.points[0].stone {
		return errors.Wrapf(game.ErrInvalidArgument, "JoinRegion: stone states disagree (%v vs %v)", r.points[0].stone, other.points[0].stone)
	}
	for _, p := range other.points {
		p.region = r
		r.points = append(r.points, p)
	}
	other.points = other.points[:0]
	r.board.dropRegion(other)
	return nil
}

// Liberties returns the number of distinct empty points adjacent to the
// group. Asking a region of empty points for its liberties is a caller
// protocol violation.
func (r *Region) Liberties() (int, error) {
	if r.scoringMode {
		return r.cachedLibs, r.cachedLibsErr
	}
	return r.liberties()
}

func (r *Region) liberties() (int, error) {
	if len(r.points) == 0 || r.points[0].stone == game.None {
		return 0, errors.Wrap(game.ErrInconsistentState, "Liberties: not a stone group")
	}
	seen := make(map[*Point]struct{})
	for _, p := range r.points {
		for _, n := range p.Neighbours() {
			if n.stone == game.None {
				seen[n] = struct{}{}
			}
		}
	}
	return len(seen), nil
}

// AdjacentRegions returns the distinct regions bordering any member point.
// Neighbours with a transiently nil region reference are silently skipped.
func (r *Region) AdjacentRegions() []*Region {
	if r.scoringMode {
		return r.cachedAdjacent
	}
	return r.adjacentRegions()
}

func (r *Region) adjacentRegions() []*Region {
	var retVal []*Region
	seen := make(map[*Region]struct{})
	for _, p := range r.points {
		for _, n := range p.Neighbours() {
			adj := n.region
			if adj == nil || adj == r {
				continue
			}
			if _, ok := seen[adj]; ok {
				continue
			}
			seen[adj] = struct{}{}
			retVal = append(retVal, adj)
		}
	}
	return retVal
}

// SetScoringMode freezes (true) or thaws (false) the computed properties of
// the region. While frozen, MarkDeadInScoring changes the apparent ownership
// without mutating any point.
func (r *Region) SetScoringMode(enabled bool) {
	if enabled == r.scoringMode {
		return
	}
	if enabled {
		r.cachedSize = len(r.points)
		if len(r.points) > 0 {
			r.cachedColour = r.points[0].stone
		} else {
			r.cachedColour = game.None
		}
		r.cachedLibs, r.cachedLibsErr = r.liberties()
		r.cachedAdjacent = r.adjacentRegions()
		r.scoringMode = true
		return
	}
	r.scoringMode = false
	r.deadInScoring = false
	r.cachedAdjacent = nil
	r.cachedLibsErr = nil
}

// MarkDeadInScoring marks the group as hypothetically dead. Only meaningful
// in scoring mode.
func (r *Region) MarkDeadInScoring(dead bool) { r.deadInScoring = dead }

// IsDeadInScoring reports whether the group is marked dead in scoring mode.
func (r *Region) IsDeadInScoring() bool { return r.scoringMode && r.deadInScoring }

// splitIfRequired recomputes connectivity among the remaining members and
// moves every component after the first into a fresh region. The flood fill
// is restricted to this region's membership.
func (r *Region) splitIfRequired() {
	if len(r.points) < 2 {
		return
	}
	membership := make(map[*Point]struct{}, len(r.points))
	for _, p := range r.points {
		membership[p] = struct{}{}
	}

	visited := make(map[*Point]struct{}, len(r.points))
	var components [][]*Point
	for _, start := range r.points {
		if _, ok := visited[start]; ok {
			continue
		}
		var component []*Point
		queue := []*Point{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			component = append(component, p)
			for _, n := range p.Neighbours() {
				if _, member := membership[n]; !member {
					continue
				}
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
		components = append(components, component)
	}
	if len(components) < 2 {
		return
	}

	// the first component stays; the rest move into fresh regions
	r.points = components[0]
	for _, component := range components[1:] {
		split := newRegion(r.board)
		split.points = component
		for _, p := range component {
			p.region = split
		}
	}
}

package steering

import (
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// FollowPath walks a precomputed shortest path to its target. The path is
// computed again when the target moves or the mover leaves it, and never
// starts by turning back.
type FollowPath struct {
	Target Target

	path    []world.Tile
	goal    world.Tile
	arrived bool
}

func (f *FollowPath) Direction(m *mover.Mover, b Board) world.Direction {
	if m.IsTeleporting() {
		return world.None
	}
	goal, ok := f.Target(m, b)
	if !ok {
		return world.None
	}
	tile := m.Tile()
	f.arrived = tile == goal
	if f.arrived {
		return world.None
	}

	i := f.indexOf(tile)
	if f.path == nil || goal != f.goal || i < 0 {
		f.goal = goal
		f.path = m.World.ShortestPathAhead(tile, m.MoveDir, goal)
		i = 0
	}
	if i+1 >= len(f.path) {
		return world.None
	}
	d, _ := m.World.DirectionTo(f.path[i], f.path[i+1])
	return d
}

func (f *FollowPath) RequiresGridAlignment() bool { return true }

func (f *FollowPath) Reset() {
	f.path = nil
	f.arrived = false
}

// Complete reports whether the mover stood on the target at the last decision.
func (f *FollowPath) Complete() bool {
	return f.arrived
}

// Path returns the current path, first tile included.
func (f *FollowPath) Path() []world.Tile {
	return f.path
}

func (f *FollowPath) indexOf(t world.Tile) int {
	for i, p := range f.path {
		if p == t {
			return i
		}
	}
	return -1
}

// NearestFood targets the closest remaining food by Manhattan distance.
func NearestFood() Target {
	return func(m *mover.Mover, b Board) (world.Tile, bool) {
		from := m.Tile()
		best, bestDist := world.Tile{}, -1
		for _, t := range b.World().FoodTiles() {
			if d := t.Manhattan(from); bestDist < 0 || d < bestDist {
				best, bestDist = t, d
			}
		}
		return best, bestDist >= 0
	}
}

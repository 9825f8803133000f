package steering

import (
	"math/rand"

	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// FleeRandom picks a random open direction at every tile, never reversing
// unless the mover is stuck.
type FleeRandom struct {
	Rand *rand.Rand

	forced bool
}

func (f *FleeRandom) Direction(m *mover.Mover, _ Board) world.Direction {
	if !decisionDue(m, f.forced) {
		return world.None
	}
	f.forced = false

	back := m.MoveDir.Opposite()
	options := make([]world.Direction, 0, 4)
	for _, d := range world.Directions {
		if d != back && m.CanCross(d) {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		if back != world.None && m.CanCross(back) {
			return back
		}
		return world.None
	}
	if len(options) == 1 {
		return options[0]
	}
	return options[f.Rand.Intn(len(options))]
}

func (f *FleeRandom) RequiresGridAlignment() bool { return true }

func (f *FleeRandom) Reset() {
	f.forced = true
}

// FleeToSafeCorner runs to the corner whose path ahead stays farthest from
// the player, and only chooses again once that corner is reached.
type FleeToSafeCorner struct {
	Corners []world.Tile

	corner world.Tile
	chosen bool
	path   FollowPath
}

func (f *FleeToSafeCorner) Direction(m *mover.Mover, b Board) world.Direction {
	if m.IsTeleporting() {
		return world.None
	}
	tile := m.Tile()
	if !f.chosen || tile == f.corner {
		corner, ok := SafeCorner(b.World(), tile, m.MoveDir, b.PlayerTile(), f.Corners)
		if !ok {
			return world.None
		}
		f.corner, f.chosen = corner, true
		f.path.Target = Corner(corner)
		f.path.Reset()
	}
	return f.path.Direction(m, b)
}

func (f *FleeToSafeCorner) RequiresGridAlignment() bool { return true }

func (f *FleeToSafeCorner) Reset() {
	f.chosen = false
	f.path.Reset()
}

// Goal is the corner currently fled to.
func (f *FleeToSafeCorner) Goal() (world.Tile, bool) {
	return f.corner, f.chosen
}

// SafeCorner chooses among corners other than from the one whose path keeps
// the largest minimum Manhattan distance to the player. Paths are the ones
// FollowPath walks for a mover heading in heading. Ties keep the earlier
// corner.
func SafeCorner(w *world.World, from world.Tile, heading world.Direction, player world.Tile, corners []world.Tile) (world.Tile, bool) {
	best, bestDist := world.Tile{}, -1
	for _, c := range corners {
		if c == from {
			continue
		}
		path := w.ShortestPathAhead(from, heading, c)
		if path == nil {
			continue
		}
		closest := -1
		for _, t := range path {
			if d := t.Manhattan(player); closest < 0 || d < closest {
				closest = d
			}
		}
		if closest > bestDist {
			best, bestDist = c, closest
		}
	}
	return best, bestDist >= 0
}

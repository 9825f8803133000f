package steering

import (
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// Board is the read-only view of a round that steering may consult. The round
// owns every agent; strategies never hold references to other agents.
type Board interface {
	World() *world.World
	PlayerTile() world.Tile
	PlayerDir() world.Direction
	PursuerTile(i int) world.Tile
}

// Steering computes the direction an agent wants to take next. Returning
// world.None keeps the current wish direction.
type Steering interface {
	Direction(m *mover.Mover, b Board) world.Direction
	RequiresGridAlignment() bool
}

// Resetter is implemented by strategies that keep state between ticks.
type Resetter interface {
	Reset()
}

// Completer is implemented by strategies with a natural end, such as the
// house choreography.
type Completer interface {
	Complete() bool
}

// Apply runs one steering step. Strategies requiring grid alignment are only
// consulted on tile entry, when blocked or when sitting on the grid.
func Apply(s Steering, m *mover.Mover, b Board) {
	if s == nil {
		return
	}
	if s.RequiresGridAlignment() && !m.EnteredNewTile && !m.Aligned() && !m.Blocked() {
		return
	}
	if d := s.Direction(m, b); d != world.None {
		m.WishDir = d
	}
}

func Reset(s Steering) {
	if r, ok := s.(Resetter); ok {
		r.Reset()
	}
}

func Complete(s Steering) bool {
	c, ok := s.(Completer)
	return ok && c.Complete()
}

// Intent steers by an externally supplied direction, the player's input.
type Intent func() world.Direction

func (f Intent) Direction(*mover.Mover, Board) world.Direction {
	return f()
}

func (f Intent) RequiresGridAlignment() bool { return false }

// BestDirection picks the open neighbor closest to target by straight-line
// distance. The reverse of the current direction is only taken when nothing
// else is open; ties go to Up, Left, Down, Right in that order.
func BestDirection(m *mover.Mover, target world.Tile) world.Direction {
	tile := m.Tile()
	back := m.MoveDir.Opposite()
	best, bestDist := world.None, 0
	for _, d := range world.Directions {
		if d == back || !m.CanCross(d) {
			continue
		}
		dist := m.World.Neighbor(tile, d).EuclideanSq(target)
		if best == world.None || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == world.None && back != world.None && m.CanCross(back) {
		return back
	}
	return best
}

// decisionDue reports whether a tile-level decision should be made this tick.
func decisionDue(m *mover.Mover, forced bool) bool {
	if m.IsTeleporting() {
		return false
	}
	return forced || m.EnteredNewTile || m.Blocked() || m.MoveDir == world.None
}

package mover

import (
	"math"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/world"
)

// Passage decides whether an agent may step from one tile to an adjacent one.
type Passage interface {
	CanMoveBetween(from, to world.Tile) bool
}

type PassageFunc func(from, to world.Tile) bool

func (f PassageFunc) CanMoveBetween(from, to world.Tile) bool {
	return f(from, to)
}

// Mover is the grid-constrained motion shared by every agent. X and Y are the
// pixel coordinates of the top-left corner of a tile-sized box; the box
// center decides which tile the mover is on.
type Mover struct {
	World *world.World
	Rules Passage

	X, Y    float64
	MoveDir world.Direction
	WishDir world.Direction

	// Speed is the speed requested for the last move, Moved the distance
	// actually covered.
	Speed float64
	Moved float64

	// EnteredNewTile is true only on the tick the tile position changed.
	EnteredNewTile bool
}

func New(w *world.World, rules Passage) Mover {
	return Mover{World: w, Rules: rules}
}

func (m *Mover) Tile() world.Tile {
	return world.T(
		int(math.Floor((m.X+common.HTS)/common.TS)),
		int(math.Floor((m.Y+common.HTS)/common.TS)),
	)
}

// OffsetX is the horizontal distance from the tile-aligned position, in
// [-HTS, HTS).
func (m *Mover) OffsetX() float64 {
	return m.X - m.Tile().X()
}

func (m *Mover) OffsetY() float64 {
	return m.Y - m.Tile().Y()
}

// Aligned reports whether the mover sits exactly on its tile.
func (m *Mover) Aligned() bool {
	return m.OffsetX() == 0 && m.OffsetY() == 0
}

func (m *Mover) PlaceAt(spot world.Spot) {
	m.X = spot.X()
	m.Y = spot.Y()
	m.EnteredNewTile = false
	m.Moved = 0
}

func (m *Mover) IsTeleporting() bool {
	return !m.World.InsideBoard(m.Tile())
}

// CanCross reports whether the neighbor of the current tile in direction d may
// be entered.
func (m *Mover) CanCross(d world.Direction) bool {
	if d == world.None {
		return false
	}
	from := m.Tile()
	to := m.World.Neighbor(from, d)
	if m.Rules != nil {
		return m.Rules.CanMoveBetween(from, to)
	}
	return m.World.Accessible(to)
}

// Blocked reports whether the tile ahead in the current direction is closed.
func (m *Mover) Blocked() bool {
	return !m.CanCross(m.MoveDir)
}

// Force sets both directions at once. House choreography uses it to turn off
// the grid.
func (m *Mover) Force(d world.Direction) {
	m.MoveDir = d
	m.WishDir = d
}

// Reverse asks for a turn-around on the next move.
func (m *Mover) Reverse() {
	m.WishDir = m.MoveDir.Opposite()
}

// Move advances the mover by at most speed pixels. A pending reversal is
// applied at once; a pending turn only when the mover passes the center of its
// tile, where it snaps onto the grid. The mover stops at the center of a tile
// whose exit ahead is closed.
func (m *Mover) Move(speed float64) {
	from := m.Tile()
	m.Speed = speed

	if m.WishDir != world.None && m.WishDir != m.MoveDir {
		switch {
		case m.MoveDir == world.None || m.WishDir == m.MoveDir.Opposite():
			m.MoveDir = m.WishDir
		case m.canTurn(speed) && m.CanCross(m.WishDir):
			m.snapAxis(m.MoveDir)
			m.MoveDir = m.WishDir
		}
	}

	step, clamped := m.allowance(m.MoveDir, speed)
	dx, dy := m.MoveDir.Vector()
	m.X += float64(dx) * step
	m.Y += float64(dy) * step
	if clamped {
		m.snapAxis(m.MoveDir)
	}
	m.Moved = step
	m.wrap()
	m.EnteredNewTile = m.Tile() != from
}

func (m *Mover) canTurn(speed float64) bool {
	tolerance := math.Max(speed/2, 1e-9)
	if m.MoveDir.IsHorizontal() {
		return math.Abs(m.OffsetX()) <= tolerance
	}
	return math.Abs(m.OffsetY()) <= tolerance
}

// snapAxis puts the mover exactly onto its tile along the axis of d.
func (m *Mover) snapAxis(d world.Direction) {
	t := m.Tile()
	if d.IsHorizontal() {
		m.X = t.X()
	} else {
		m.Y = t.Y()
	}
}

func (m *Mover) allowance(d world.Direction, speed float64) (float64, bool) {
	if d == world.None {
		return 0, false
	}
	if m.CanCross(d) {
		return speed, false
	}
	var left float64
	switch d {
	case world.Up:
		left = m.OffsetY()
	case world.Down:
		left = -m.OffsetY()
	case world.Left:
		left = m.OffsetX()
	case world.Right:
		left = -m.OffsetX()
	}
	if left <= 0 {
		return 0, false
	}
	if left <= speed {
		return left, true
	}
	return speed, false
}

func (m *Mover) wrap() {
	exit, other, ok := m.World.PortalExit(m.Tile())
	if !ok || exit != m.MoveDir {
		return
	}
	switch exit {
	case world.Right:
		if off := m.OffsetX(); off > 0 {
			m.X = other.X() + off
		}
	case world.Left:
		if off := m.OffsetX(); off < 0 {
			m.X = other.X() + off
		}
	}
}

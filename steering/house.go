package steering

import (
	"math"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// snapDistance is how close a house manoeuvre gets before snapping to its
// mark.
const snapDistance = 2.0

// Jitter bobs a locked pursuer up and down around its seat.
type Jitter struct {
	CenterY float64
}

func (j *Jitter) Direction(m *mover.Mover, _ Board) world.Direction {
	switch {
	case m.Y <= j.CenterY-common.HTS:
		m.Force(world.Down)
	case m.Y >= j.CenterY+common.HTS:
		m.Force(world.Up)
	case !m.MoveDir.IsVertical():
		m.Force(world.Up)
	}
	return world.None
}

func (j *Jitter) RequiresGridAlignment() bool { return false }

// LeavingHouse lines up with the house row, slides to the door column and
// rises through the door to the entry spot, then heads left.
type LeavingHouse struct {
	RowY float64

	done bool
}

func (l *LeavingHouse) Direction(m *mover.Mover, b Board) world.Direction {
	if l.done {
		return world.None
	}
	entry := b.World().House().Entry
	ex, ey := entry.X(), entry.Y()

	if math.Abs(m.X-ex) <= snapDistance {
		m.X = ex
		if m.Y-ey <= snapDistance {
			m.Y = ey
			m.Force(world.Left)
			l.done = true
			return world.None
		}
		m.Force(world.Up)
		return world.None
	}
	if math.Abs(m.Y-l.RowY) > snapDistance {
		m.Force(vertical(m.Y, l.RowY))
		return world.None
	}
	m.Y = l.RowY
	m.Force(horizontal(m.X, ex))
	return world.None
}

func (l *LeavingHouse) RequiresGridAlignment() bool { return false }

func (l *LeavingHouse) Reset() { l.done = false }

func (l *LeavingHouse) Complete() bool { return l.done }

// EnteringHouse lines up above the door, sinks to the seat row and slides
// onto the seat.
type EnteringHouse struct {
	Seat world.Spot

	inside bool
	done   bool
}

func (e *EnteringHouse) Direction(m *mover.Mover, b Board) world.Direction {
	if e.done {
		return world.None
	}
	if !e.inside {
		entry := b.World().House().Entry
		ex, ey := entry.X(), entry.Y()
		switch {
		case math.Abs(m.Y-ey) > snapDistance && math.Abs(m.X-ex) > snapDistance:
			m.Force(vertical(m.Y, ey))
			return world.None
		case math.Abs(m.X-ex) > snapDistance:
			m.Y = ey
			m.Force(horizontal(m.X, ex))
			return world.None
		}
		m.X = ex
		e.inside = true
	}

	sx, sy := e.Seat.X(), e.Seat.Y()
	if math.Abs(m.Y-sy) > snapDistance {
		m.Force(vertical(m.Y, sy))
		return world.None
	}
	m.Y = sy
	if math.Abs(m.X-sx) > snapDistance {
		m.Force(horizontal(m.X, sx))
		return world.None
	}
	m.X = sx
	m.Force(world.Up)
	e.done = true
	return world.None
}

func (e *EnteringHouse) RequiresGridAlignment() bool { return false }

func (e *EnteringHouse) Reset() {
	e.inside = false
	e.done = false
}

func (e *EnteringHouse) Complete() bool { return e.done }

func vertical(from, to float64) world.Direction {
	if to < from {
		return world.Up
	}
	return world.Down
}

func horizontal(from, to float64) world.Direction {
	if to < from {
		return world.Left
	}
	return world.Right
}

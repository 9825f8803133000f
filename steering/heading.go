package steering

import (
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// Target selects the tile a heading strategy steers toward. ok is false when
// there is nothing to aim at.
type Target func(m *mover.Mover, b Board) (tile world.Tile, ok bool)

// Heading steers toward a target tile, re-deciding once per tile.
type Heading struct {
	Target Target

	forced bool
}

func HeadingFor(target Target) *Heading {
	return &Heading{Target: target, forced: true}
}

func (h *Heading) Direction(m *mover.Mover, b Board) world.Direction {
	if !decisionDue(m, h.forced) {
		return world.None
	}
	h.forced = false
	target, ok := h.Target(m, b)
	if !ok {
		return world.None
	}
	return BestDirection(m, target)
}

func (h *Heading) RequiresGridAlignment() bool { return false }

func (h *Heading) Reset() {
	h.forced = true
}

func DirectChase() Target {
	return func(_ *mover.Mover, b Board) (world.Tile, bool) {
		return b.PlayerTile(), true
	}
}

// Ambush aims n tiles ahead of the player. With overflow set, facing up also
// shifts the target n tiles to the left, as the arcade hardware did.
func Ambush(n int, overflow bool) Target {
	return func(_ *mover.Mover, b Board) (world.Tile, bool) {
		return ahead(b, n, overflow), true
	}
}

// Pincer aims at the reflection of the lead pursuer through the tile two
// steps ahead of the player.
func Pincer(lead int, overflow bool) Target {
	return func(_ *mover.Mover, b Board) (world.Tile, bool) {
		pivot := ahead(b, 2, overflow)
		l := b.PursuerTile(lead)
		return world.T(2*pivot.Col-l.Col, 2*pivot.Row-l.Row), true
	}
}

func Corner(tile world.Tile) Target {
	return func(*mover.Mover, Board) (world.Tile, bool) {
		return tile, true
	}
}

// Cowardly chases the player while farther than distance tiles and heads for
// its corner otherwise.
func Cowardly(corner world.Tile, distance int) Target {
	return func(m *mover.Mover, b Board) (world.Tile, bool) {
		player := b.PlayerTile()
		if m.Tile().EuclideanSq(player) > distance*distance {
			return player, true
		}
		return corner, true
	}
}

func ahead(b Board, n int, overflow bool) world.Tile {
	dir := b.PlayerDir()
	t := b.PlayerTile().Towards(dir, n)
	if overflow && dir == world.Up {
		t = t.Towards(world.Left, n)
	}
	return t
}

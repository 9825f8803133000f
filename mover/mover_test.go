package mover

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/mazechase/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.New(world.Layout{
		Name: "mover",
		Rows: []string{
			"#######",
			"#     #",
			"# ### #",
			"       ",
			"# ### #",
			"#     #",
			"#######",
		},
		Portals:     []world.Portal{{Left: world.T(-1, 3), Right: world.T(7, 3)}},
		PlayerSpawn: world.Spot{Tile: world.T(1, 1)},
	})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func placed(t *testing.T, tile world.Tile, dir world.Direction) *Mover {
	m := New(testWorld(t), nil)
	m.PlaceAt(world.Spot{Tile: tile})
	m.Force(dir)
	return &m
}

func TestMoverStopsExactlyAtWall(t *testing.T) {
	m := placed(t, world.T(2, 1), world.Left)

	for i := 0; i < 10; i++ {
		m.Move(3)
	}
	if m.X != 8 || m.Y != 8 {
		t.Fatalf("expected to rest on (1,1) at 8,8, got %v,%v", m.X, m.Y)
	}
	if m.Moved != 0 {
		t.Fatalf("expected a stuck mover to move 0, got %v", m.Moved)
	}
	if !m.Blocked() {
		t.Fatalf("expected the wall ahead to block")
	}
}

func TestMoverTurnSnapsOntoGrid(t *testing.T) {
	m := placed(t, world.T(4, 1), world.Left)
	m.X += 0.3
	m.WishDir = world.Down

	for i := 0; i < 40 && m.MoveDir != world.Down; i++ {
		m.Move(1.25)
	}
	if m.MoveDir != world.Down {
		t.Fatalf("expected to turn down at (1,1)")
	}
	if m.Tile() != world.T(1, 1) && m.Tile() != world.T(1, 2) {
		t.Fatalf("expected the turn at column 1, got %s", m.Tile())
	}
	if m.OffsetX() != 0 {
		t.Fatalf("expected no horizontal offset after turning, got %v", m.OffsetX())
	}
}

func TestMoverReversesMidTile(t *testing.T) {
	m := placed(t, world.T(3, 3), world.Right)
	m.Move(1.25)
	m.Reverse()
	m.Move(1.25)

	if m.MoveDir != world.Left {
		t.Fatalf("expected an immediate reversal, got %s", m.MoveDir)
	}
	if m.X != 24 {
		t.Fatalf("expected to be back at x=24, got %v", m.X)
	}
}

func TestMoverWrapsThroughTunnel(t *testing.T) {
	m := placed(t, world.T(5, 3), world.Right)

	wrapped := false
	for i := 0; i < 40; i++ {
		before := m.X
		m.Move(1.25)
		if m.X < before {
			wrapped = true
			if want := before + 1.25 - 64; math.Abs(m.X-want) > 1e-9 {
				t.Fatalf("expected x=%v after the wrap, got %v", want, m.X)
			}
			if m.Tile() != world.T(-1, 3) {
				t.Fatalf("expected to reappear in the left portal, got %s", m.Tile())
			}
			if !m.EnteredNewTile {
				t.Fatalf("expected the wrap to enter a new tile")
			}
			break
		}
	}
	if !wrapped {
		t.Fatalf("expected the mover to wrap around")
	}
	if m.MoveDir != world.Right {
		t.Fatalf("expected direction to survive the wrap, got %s", m.MoveDir)
	}
}

func TestEnteredNewTileOncePerTile(t *testing.T) {
	m := placed(t, world.T(0, 3), world.Right)

	entered := 0
	prev := m.Tile()
	for i := 0; i < 30; i++ {
		m.Move(1.25)
		changed := m.Tile() != prev
		if changed != m.EnteredNewTile {
			t.Fatalf("tick %d: flag %v but tile changed %v", i, m.EnteredNewTile, changed)
		}
		if m.EnteredNewTile {
			entered++
		}
		prev = m.Tile()
	}
	// 37.5 px cross the tile borders at x = 4, 12, 20, 28 and 36.
	if entered != 5 {
		t.Fatalf("expected 5 tile entries, got %d", entered)
	}
}

func TestRandomWalkTurnsOnlyWhenAligned(t *testing.T) {
	m := placed(t, world.T(1, 1), world.Right)
	rng := rand.New(rand.NewSource(7))
	speeds := []float64{0.9, 1.0, 1.25, 1.1875}

	for i := 0; i < 5000; i++ {
		if rng.Intn(4) == 0 {
			m.WishDir = world.Directions[rng.Intn(4)]
		}
		prev := m.MoveDir
		m.Move(speeds[rng.Intn(len(speeds))])

		if m.MoveDir != prev && m.MoveDir != prev.Opposite() {
			if m.MoveDir.IsVertical() && m.OffsetX() != 0 {
				t.Fatalf("tick %d: turned %s with x offset %v", i, m.MoveDir, m.OffsetX())
			}
			if m.MoveDir.IsHorizontal() && m.OffsetY() != 0 {
				t.Fatalf("tick %d: turned %s with y offset %v", i, m.MoveDir, m.OffsetY())
			}
		}
		tile := m.Tile()
		if !m.World.InsideBoard(tile) && !m.World.IsPortal(tile) {
			t.Fatalf("tick %d: left the board at %s", i, tile)
		}
		if m.World.IsWall(tile) {
			t.Fatalf("tick %d: inside a wall at %s", i, tile)
		}
	}
}

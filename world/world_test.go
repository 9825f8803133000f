package world

import (
	"reflect"
	"testing"
)

func testLayout() Layout {
	return Layout{
		Name: "test",
		Rows: []string{
			"#######",
			"#.....#",
			"#.#*#.#",
			"  ...  ",
			"###-###",
			"#     #",
			"#######",
		},
		Tunnels: []Rect{{Col: 0, Row: 3, W: 2, H: 1}, {Col: 5, Row: 3, W: 2, H: 1}},
		Portals: []Portal{{Left: T(-1, 3), Right: T(7, 3)}},
		House: HouseLayout{
			Interior: Rect{Col: 1, Row: 5, W: 5, H: 1},
			Entry:    Spot{Tile: T(3, 3)},
			Seats:    []Spot{{Tile: T(3, 3)}, {Tile: T(2, 5)}},
		},
		PlayerSpawn: Spot{Tile: T(1, 1)},
		PlayerDir:   Right,
	}
}

func mustWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(testLayout())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func TestNewRejectsRaggedRows(t *testing.T) {
	layout := testLayout()
	layout.Rows[2] = "#.#"
	if _, err := New(layout); err == nil {
		t.Fatalf("expected an error for a ragged row")
	}
}

func TestNewRejectsUnknownSymbol(t *testing.T) {
	layout := testLayout()
	layout.Rows[1] = "#..x..#"
	if _, err := New(layout); err == nil {
		t.Fatalf("expected an error for an unknown symbol")
	}
}

func TestTileQueries(t *testing.T) {
	w := mustWorld(t)

	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "wall", got: w.IsWall(T(0, 0)), want: true},
		{name: "open", got: w.IsWall(T(1, 1)), want: false},
		{name: "outside is wall", got: w.IsWall(T(-1, 0)), want: true},
		{name: "portal is open", got: w.IsWall(T(-1, 3)), want: false},
		{name: "door", got: w.IsDoor(T(3, 4)), want: true},
		{name: "door not accessible", got: w.Accessible(T(3, 4)), want: false},
		{name: "tunnel", got: w.IsTunnel(T(1, 3)), want: true},
		{name: "portal tunnel", got: w.IsTunnel(T(7, 3)), want: true},
		{name: "not tunnel", got: w.IsTunnel(T(3, 3)), want: false},
		{name: "inside house", got: w.InsideHouse(T(2, 5)), want: true},
		{name: "door inside house", got: w.InsideHouse(T(3, 4)), want: true},
		{name: "energizer", got: w.ContainsEnergizer(T(3, 2)), want: true},
		{name: "pellet", got: w.ContainsPellet(T(1, 1)), want: true},
		{name: "intersection", got: w.IsIntersection(T(3, 3)), want: true},
		{name: "corridor", got: w.IsIntersection(T(2, 1)), want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("expected %v, got %v", c.want, c.got)
			}
		})
	}
}

func TestNeighborWrapsThroughPortals(t *testing.T) {
	w := mustWorld(t)

	if got := w.Neighbor(T(7, 3), Right); got != T(-1, 3) {
		t.Fatalf("expected (-1,3), got %s", got)
	}
	if got := w.Neighbor(T(-1, 3), Left); got != T(7, 3) {
		t.Fatalf("expected (7,3), got %s", got)
	}
	if got := w.Neighbor(T(-1, 3), Right); got != T(0, 3) {
		t.Fatalf("expected (0,3), got %s", got)
	}
	if d, ok := w.DirectionTo(T(7, 3), T(-1, 3)); !ok || d != Right {
		t.Fatalf("expected right across the portal, got %s %v", d, ok)
	}
}

func TestRestoreFoodIsIdempotent(t *testing.T) {
	w := mustWorld(t)
	total := w.TotalFood()

	w.RemoveFood(T(1, 1))
	w.RemoveFood(T(3, 2))
	if got := w.FoodRemaining(); got != total-2 {
		t.Fatalf("expected %d food, got %d", total-2, got)
	}

	w.RestoreFood()
	once := w.FoodTiles()
	w.RestoreFood()
	twice := w.FoodTiles()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected identical food after a second restore")
	}
	if len(once) != total {
		t.Fatalf("expected %d food after restore, got %d", total, len(once))
	}
}

func TestRemoveFoodFromEmptyTilePanics(t *testing.T) {
	w := mustWorld(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	w.RemoveFood(T(0, 0))
}

func TestShortestPath(t *testing.T) {
	w := mustWorld(t)

	path := w.ShortestPath(T(1, 1), T(5, 1))
	want := []Tile{T(1, 1), T(2, 1), T(3, 1), T(4, 1), T(5, 1)}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	if got := w.PathDirection(path); got != Right {
		t.Fatalf("expected first step right, got %s", got)
	}

	if got := w.ShortestPath(T(1, 1), T(0, 0)); got != nil {
		t.Fatalf("expected no path into a wall, got %v", got)
	}
	if got := w.ShortestPath(T(1, 1), T(2, 5)); got != nil {
		t.Fatalf("expected the door to block the path, got %v", got)
	}
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range Directions {
		if d.TurnLeft().TurnRight() != d {
			t.Fatalf("expected left then right to restore %s", d)
		}
		if d.Opposite().Opposite() != d {
			t.Fatalf("expected double reverse to restore %s", d)
		}
	}
	if Up.TurnLeft() != Left {
		t.Fatalf("expected up turned left to be left")
	}
}

func TestShortestPathAheadNeverTurnsBack(t *testing.T) {
	w := mustWorld(t)

	path := w.ShortestPathAhead(T(3, 1), Right, T(1, 1))
	want := []Tile{T(3, 1), T(3, 2), T(3, 3), T(2, 3), T(1, 3), T(1, 2), T(1, 1)}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	if got := w.ShortestPathAhead(T(3, 1), None, T(1, 1)); len(got) != 3 {
		t.Fatalf("expected the direct path without a heading, got %v", got)
	}
}

func TestCorners(t *testing.T) {
	w := mustWorld(t)
	want := []Tile{T(1, 1), T(5, 1), T(1, 5), T(5, 5)}
	if got := w.Corners(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

package world

import (
	"fmt"
	"sort"
)

type cell uint8

const (
	space cell = iota
	wall
	door
)

type Food uint8

const (
	NoFood Food = iota
	Pellet
	Energizer
)

// Layout is the serialized form of a maze.
type Layout struct {
	Name           string      `yaml:"name"`
	Rows           []string    `yaml:"rows"`
	Tunnels        []Rect      `yaml:"tunnels"`
	Portals        []Portal    `yaml:"portals"`
	House          HouseLayout `yaml:"house"`
	PlayerSpawn    Spot        `yaml:"player_spawn"`
	PlayerDir      Direction   `yaml:"player_dir"`
	BonusSpot      Spot        `yaml:"bonus_spot"`
	UpwardsBlocked []Tile      `yaml:"upwards_blocked"`
}

// Portal joins two out-of-board tiles on the same row; leaving the board
// through one re-enters through the other.
type Portal struct {
	Left  Tile `yaml:"left"`
	Right Tile `yaml:"right"`
}

type HouseLayout struct {
	Interior Rect   `yaml:"interior"`
	Entry    Spot   `yaml:"entry"`
	Seats    []Spot `yaml:"seats"`
}

// World is the maze: static geometry plus the mutable food set.
type World struct {
	name    string
	cols    int
	rows    int
	cells   []cell
	tunnels []Rect
	portals map[Tile]Tile
	exits   map[Tile]Direction

	upwardsBlocked map[Tile]bool

	house       *House
	playerSpawn Spot
	playerDir   Direction
	bonusSpot   Spot

	allFood map[Tile]Food
	food    map[Tile]Food
}

func New(layout Layout) (*World, error) {
	if len(layout.Rows) == 0 {
		return nil, fmt.Errorf("world: layout %q has no rows", layout.Name)
	}
	w := &World{
		name:           layout.Name,
		cols:           len(layout.Rows[0]),
		rows:           len(layout.Rows),
		tunnels:        layout.Tunnels,
		portals:        make(map[Tile]Tile),
		exits:          make(map[Tile]Direction),
		upwardsBlocked: make(map[Tile]bool),
		playerSpawn:    layout.PlayerSpawn,
		playerDir:      layout.PlayerDir,
		bonusSpot:      layout.BonusSpot,
		allFood:        make(map[Tile]Food),
		food:           make(map[Tile]Food),
	}
	w.cells = make([]cell, w.cols*w.rows)

	var doors []Tile
	for row, line := range layout.Rows {
		if len(line) != w.cols {
			return nil, fmt.Errorf("world: layout %q row %d has %d columns, want %d", layout.Name, row, len(line), w.cols)
		}
		for col, symbol := range []byte(line) {
			t := T(col, row)
			switch symbol {
			case '#':
				w.cells[w.index(t)] = wall
			case ' ':
			case '.':
				w.allFood[t] = Pellet
			case '*':
				w.allFood[t] = Energizer
			case '-':
				w.cells[w.index(t)] = door
				doors = append(doors, t)
			default:
				return nil, fmt.Errorf("world: layout %q has unknown symbol %q at %s", layout.Name, symbol, t)
			}
		}
	}

	for _, p := range layout.Portals {
		if p.Left.Row != p.Right.Row || w.InsideBoard(p.Left) || w.InsideBoard(p.Right) {
			return nil, fmt.Errorf("world: layout %q has invalid portal %s-%s", layout.Name, p.Left, p.Right)
		}
		w.portals[p.Left] = p.Right
		w.portals[p.Right] = p.Left
		w.exits[p.Left] = Left
		w.exits[p.Right] = Right
	}

	for _, t := range layout.UpwardsBlocked {
		w.upwardsBlocked[t] = true
	}

	w.house = &House{
		Interior: layout.House.Interior,
		Doors:    doors,
		Entry:    layout.House.Entry,
		Seats:    layout.House.Seats,
	}
	for i, seat := range w.house.Seats {
		if !w.InsideBoard(seat.Tile) {
			return nil, fmt.Errorf("world: layout %q seat %d at %s is outside the board", layout.Name, i, seat.Tile)
		}
	}
	if !w.InsideBoard(w.playerSpawn.Tile) {
		return nil, fmt.Errorf("world: layout %q player spawn %s is outside the board", layout.Name, w.playerSpawn.Tile)
	}

	w.RestoreFood()
	return w, nil
}

func (w *World) Name() string { return w.name }
func (w *World) Cols() int    { return w.cols }
func (w *World) Rows() int    { return w.rows }

func (w *World) House() *House        { return w.house }
func (w *World) PlayerSpawn() Spot    { return w.playerSpawn }
func (w *World) PlayerDir() Direction { return w.playerDir }
func (w *World) BonusSpot() Spot      { return w.bonusSpot }

func (w *World) index(t Tile) int {
	return t.Row*w.cols + t.Col
}

func (w *World) InsideBoard(t Tile) bool {
	return t.Col >= 0 && t.Col < w.cols && t.Row >= 0 && t.Row < w.rows
}

func (w *World) IsPortal(t Tile) bool {
	_, ok := w.portals[t]
	return ok
}

// IsWall reports true for every tile outside the board except portals.
func (w *World) IsWall(t Tile) bool {
	if !w.InsideBoard(t) {
		return !w.IsPortal(t)
	}
	return w.cells[w.index(t)] == wall
}

func (w *World) IsDoor(t Tile) bool {
	return w.InsideBoard(t) && w.cells[w.index(t)] == door
}

func (w *World) IsTunnel(t Tile) bool {
	if w.IsPortal(t) {
		return true
	}
	for _, r := range w.tunnels {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// Accessible reports whether a roaming agent may stand on t. Doors are not
// accessible; crossing them is a per-agent rule.
func (w *World) Accessible(t Tile) bool {
	return !w.IsWall(t) && !w.IsDoor(t)
}

func (w *World) InsideHouse(t Tile) bool {
	return w.house.Contains(t) || w.IsDoor(t)
}

func (w *World) IsUpwardsBlocked(t Tile) bool {
	return w.upwardsBlocked[t]
}

// PortalExit reports the direction leading off the board from portal t and
// the portal it re-enters through.
func (w *World) PortalExit(t Tile) (Direction, Tile, bool) {
	exit, ok := w.exits[t]
	if !ok {
		return None, Tile{}, false
	}
	return exit, w.portals[t], true
}

// Neighbor returns the adjacent tile in direction d, wrapping through portals.
func (w *World) Neighbor(t Tile, d Direction) Tile {
	if exit, ok := w.exits[t]; ok && exit == d {
		return w.portals[t]
	}
	return t.Towards(d, 1)
}

// DirectionTo returns the direction leading from a to the adjacent tile b.
func (w *World) DirectionTo(a, b Tile) (Direction, bool) {
	for _, d := range Directions {
		if w.Neighbor(a, d) == b {
			return d, true
		}
	}
	return None, false
}

func (w *World) IsIntersection(t Tile) bool {
	open := 0
	for _, d := range Directions {
		if w.Accessible(w.Neighbor(t, d)) {
			open++
		}
	}
	return open >= 3
}

func (w *World) ContainsFood(t Tile) bool {
	return w.food[t] != NoFood
}

func (w *World) ContainsEnergizer(t Tile) bool {
	return w.food[t] == Energizer
}

func (w *World) ContainsPellet(t Tile) bool {
	return w.food[t] == Pellet
}

// IsEnergizerTile reports whether t holds an energizer at round start.
func (w *World) IsEnergizerTile(t Tile) bool {
	return w.allFood[t] == Energizer
}

// RemoveFood eats the food on t. Callers must check ContainsFood first.
func (w *World) RemoveFood(t Tile) Food {
	f := w.food[t]
	if f == NoFood {
		panic(fmt.Sprintf("world: no food to remove at %s", t))
	}
	delete(w.food, t)
	return f
}

// RestoreFood refills every food tile of the layout.
func (w *World) RestoreFood() {
	for t, f := range w.allFood {
		w.food[t] = f
	}
}

func (w *World) FoodRemaining() int {
	return len(w.food)
}

func (w *World) TotalFood() int {
	return len(w.allFood)
}

// FoodTiles returns the remaining food in row-major order.
func (w *World) FoodTiles() []Tile {
	tiles := make([]Tile, 0, len(w.food))
	for t := range w.food {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Row != tiles[j].Row {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
	return tiles
}

// EnergizerTiles returns the layout's energizer tiles in row-major order,
// eaten or not.
func (w *World) EnergizerTiles() []Tile {
	var tiles []Tile
	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			if w.allFood[T(col, row)] == Energizer {
				tiles = append(tiles, T(col, row))
			}
		}
	}
	return tiles
}

package world

import (
	"fmt"

	"github.com/milk9111/mazechase/common"
	"gopkg.in/yaml.v3"
)

// Tile is a (column, row) grid cell. Tiles outside the board exist only as
// tunnel portals.
type Tile struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func T(col, row int) Tile {
	return Tile{Col: col, Row: row}
}

func (t Tile) Add(dc, dr int) Tile {
	return Tile{Col: t.Col + dc, Row: t.Row + dr}
}

// Towards returns the tile n steps away in direction d, ignoring walls and portals.
func (t Tile) Towards(d Direction, n int) Tile {
	dx, dy := d.Vector()
	return t.Add(dx*n, dy*n)
}

// EuclideanSq is the squared straight-line distance, enough for comparisons.
func (t Tile) EuclideanSq(o Tile) int {
	dc, dr := t.Col-o.Col, t.Row-o.Row
	return dc*dc + dr*dr
}

func (t Tile) Manhattan(o Tile) int {
	return common.Abs(t.Col-o.Col) + common.Abs(t.Row-o.Row)
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.Col, t.Row)
}

// X is the pixel x coordinate of the tile's top-left corner.
func (t Tile) X() float64 {
	return float64(t.Col * common.TS)
}

func (t Tile) Y() float64 {
	return float64(t.Row * common.TS)
}

func (t Tile) MarshalYAML() (any, error) {
	return []int{t.Col, t.Row}, nil
}

func (t *Tile) UnmarshalYAML(value *yaml.Node) error {
	var pair []int
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("tile must be a [col, row] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("tile must be a [col, row] pair, got %d values", len(pair))
	}
	t.Col, t.Row = pair[0], pair[1]
	return nil
}

// Spot is a tile plus a pixel offset, used for spawn points and seats that sit
// between two tiles.
type Spot struct {
	Tile Tile    `yaml:"tile" json:"tile"`
	DX   float64 `yaml:"dx" json:"dx"`
	DY   float64 `yaml:"dy" json:"dy"`
}

func (s Spot) X() float64 {
	return s.Tile.X() + s.DX
}

func (s Spot) Y() float64 {
	return s.Tile.Y() + s.DY
}

type Rect struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
	W   int `yaml:"w"`
	H   int `yaml:"h"`
}

func (r Rect) Contains(t Tile) bool {
	return t.Col >= r.Col && t.Col < r.Col+r.W && t.Row >= r.Row && t.Row < r.Row+r.H
}

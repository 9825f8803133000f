package level

import (
	"fmt"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/prefabs"
)

const DefaultTable = "level_table.yaml"

// Params is one row of the difficulty table. Speeds are fractions of
// common.BaseSpeed. Eating slows the player through digestion, not through a
// speed of its own.
type Params struct {
	Bonus            string  `yaml:"bonus" json:"bonus"`
	BonusValue       int     `yaml:"bonus_value" json:"bonus_value"`
	PlayerSpeed      float64 `yaml:"player_speed" json:"player_speed"`
	GhostSpeed       float64 `yaml:"ghost_speed" json:"ghost_speed"`
	GhostTunnelSpeed float64 `yaml:"ghost_tunnel_speed" json:"ghost_tunnel_speed"`
	Elroy1DotsLeft   int     `yaml:"elroy1_dots_left" json:"elroy1_dots_left"`
	Elroy1Speed      float64 `yaml:"elroy1_speed" json:"elroy1_speed"`
	Elroy2DotsLeft   int     `yaml:"elroy2_dots_left" json:"elroy2_dots_left"`
	Elroy2Speed      float64 `yaml:"elroy2_speed" json:"elroy2_speed"`
	PowerSpeed       float64 `yaml:"power_speed" json:"power_speed"`
	FrightenedSpeed  float64 `yaml:"frightened_speed" json:"frightened_speed"`
	PowerSeconds     int     `yaml:"power_seconds" json:"power_seconds"`
	Flashes          int     `yaml:"flashes" json:"flashes"`
}

// PowerTicks is the duration of an energizer's effect.
func (p Params) PowerTicks() int {
	return common.Sec(float64(p.PowerSeconds))
}

type Table struct {
	Levels []Params `yaml:"levels"`
}

// Load reads a level table from prefabs.
func Load(name string) (Table, error) {
	t, err := prefabs.LoadSpec[Table](name)
	if err != nil {
		return Table{}, err
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("level: %s: %w", name, err)
	}
	return t, nil
}

func (t Table) Validate() error {
	if len(t.Levels) == 0 {
		return fmt.Errorf("table has no levels")
	}
	for i, p := range t.Levels {
		if p.Elroy2DotsLeft > p.Elroy1DotsLeft {
			return fmt.Errorf("level %d: elroy2 threshold %d above elroy1 threshold %d", i+1, p.Elroy2DotsLeft, p.Elroy1DotsLeft)
		}
		if p.PlayerSpeed <= 0 || p.GhostSpeed <= 0 {
			return fmt.Errorf("level %d: speeds must be positive", i+1)
		}
	}
	return nil
}

func (t Table) Len() int {
	return len(t.Levels)
}

// Row returns the parameters of level n, counting from 1. Levels past the end
// of the table play its last row; clamped reports when that happened.
func (t Table) Row(n int) (p Params, clamped bool) {
	i := common.Clamp(n, 1, len(t.Levels)) - 1
	return t.Levels[i], n > len(t.Levels)
}

package game

import (
	"fmt"
	"strings"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/config"
	"github.com/milk9111/mazechase/prefabs"
	"github.com/milk9111/mazechase/world"
)

const DefaultConfig = "game.yaml"

// Config is everything a round needs besides the maze and the level table.
type Config struct {
	Layout               string  `yaml:"layout"`
	LevelTable           string  `yaml:"level_table"`
	StartLevel           int     `yaml:"start_level"`
	Lives                int     `yaml:"lives"`
	Immortal             bool    `yaml:"immortal"`
	Demo                 bool    `yaml:"demo"`
	SkipIntro            bool    `yaml:"skip_intro"`
	OverflowBug          bool    `yaml:"overflow_bug"`
	ClassicFlight        bool    `yaml:"classic_flight"`
	ReverseOnPhaseChange bool    `yaml:"reverse_on_phase_change"`
	PowerWarning         float64 `yaml:"power_warning"`

	Timing   Timing        `yaml:"timing"`
	Scoring  Scoring       `yaml:"scoring"`
	House    HouseRules    `yaml:"house"`
	Schedule []Schedule    `yaml:"schedule"`
	Pursuers []PursuerSpec `yaml:"pursuers"`
}

type Timing struct {
	Intro           int `yaml:"intro"`
	Ready           int `yaml:"ready"`
	GhostDying      int `yaml:"ghost_dying"`
	PlayerDying     int `yaml:"player_dying"`
	PlayerHide      int `yaml:"player_hide"`
	PlayerDyingAnim int `yaml:"player_dying_anim"`
	LevelChangeWait int `yaml:"level_change_wait"`
	Flash           int `yaml:"flash"`
	LevelResume     int `yaml:"level_resume"`
	LevelComplete   int `yaml:"level_complete"`
	GameOver        int `yaml:"game_over"`
	BonusConsumed   int `yaml:"bonus_consumed"`
}

type Scoring struct {
	Pellet       int   `yaml:"pellet"`
	Energizer    int   `yaml:"energizer"`
	ExtraLife    int   `yaml:"extra_life"`
	Bounties     []int `yaml:"bounties"`
	AllKilled    int   `yaml:"all_killed"`
	BonusAt      []int `yaml:"bonus_at"`
	BonusSeconds int   `yaml:"bonus_seconds"`
}

// Bounty is the value of the nth pursuer killed on one energizer, counting
// from 0.
func (s Scoring) Bounty(n int) int {
	return s.Bounties[common.Clamp(n, 0, len(s.Bounties)-1)]
}

type HouseRules struct {
	PersonalLimits      [][]int `yaml:"personal_limits"`
	GlobalLimits        []int   `yaml:"global_limits"`
	StarvationTicks     int     `yaml:"starvation_ticks"`
	StarvationTicksLate int     `yaml:"starvation_ticks_late"`
	StarvationLateLevel int     `yaml:"starvation_late_level"`
}

// PersonalLimit is the food count the pursuer with the given index needs on
// level n before it may leave. The lead pursuer has index 0 and no limit.
func (h HouseRules) PersonalLimit(n, index int) int {
	if index <= 0 || len(h.PersonalLimits) == 0 {
		return 0
	}
	row := h.PersonalLimits[common.Clamp(n, 1, len(h.PersonalLimits))-1]
	if index-1 >= len(row) {
		return 0
	}
	return row[index-1]
}

func (h HouseRules) GlobalLimit(index int) int {
	if index <= 0 || index-1 >= len(h.GlobalLimits) {
		return 0
	}
	return h.GlobalLimits[index-1]
}

func (h HouseRules) Starvation(n int) int {
	if h.StarvationLateLevel > 0 && n >= h.StarvationLateLevel {
		return h.StarvationTicksLate
	}
	return h.StarvationTicks
}

// Schedule lists the scatter and chase durations used from FromLevel on,
// scatter first. A negative duration never ends.
type Schedule struct {
	FromLevel int   `yaml:"from_level"`
	Phases    []int `yaml:"phases"`
}

type PursuerSpec struct {
	Name          string          `yaml:"name"`
	Seat          int             `yaml:"seat"`
	RevivalSeat   int             `yaml:"revival_seat"`
	StartDir      world.Direction `yaml:"start_dir"`
	ScatterCorner world.Tile      `yaml:"scatter_corner"`
	// Chase is one of direct, ambush, pincer, cowardly or script:<file>.
	Chase    string `yaml:"chase"`
	Ahead    int    `yaml:"ahead"`
	Distance int    `yaml:"distance"`
}

// ScriptName returns the tengo file of a script:<file> chase.
func (p PursuerSpec) ScriptName() (string, bool) {
	return strings.CutPrefix(p.Chase, "script:")
}

func LoadConfig(name string) (Config, error) {
	cfg, err := prefabs.LoadSpec[Config](name)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("game: %s: %w", name, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Lives <= 0 {
		return fmt.Errorf("lives must be positive, got %d", c.Lives)
	}
	if c.StartLevel < 1 {
		return fmt.Errorf("start level must be at least 1, got %d", c.StartLevel)
	}
	if len(c.Pursuers) == 0 {
		return fmt.Errorf("no pursuers")
	}
	if len(c.Scoring.Bounties) == 0 {
		return fmt.Errorf("no bounties")
	}
	if len(c.Schedule) == 0 || c.Schedule[0].FromLevel > 1 {
		return fmt.Errorf("schedule must start at level 1")
	}
	for _, s := range c.Schedule {
		if len(s.Phases) == 0 {
			return fmt.Errorf("schedule from level %d has no phases", s.FromLevel)
		}
	}
	for _, p := range c.Pursuers {
		switch p.Chase {
		case "direct", "ambush", "pincer", "cowardly":
		default:
			if _, ok := p.ScriptName(); !ok {
				return fmt.Errorf("pursuer %s: unknown chase %q", p.Name, p.Chase)
			}
		}
	}
	return nil
}

// WithEnv applies process settings on top of the file configuration.
func (c Config) WithEnv(env config.Env) Config {
	if env.StartLevel > 0 {
		c.StartLevel = env.StartLevel
	}
	c.SkipIntro = c.SkipIntro || env.SkipIntro
	c.Immortal = c.Immortal || env.Immortal
	c.Demo = c.Demo || env.Demo
	return c
}

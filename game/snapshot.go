package game

import (
	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/world"
)

// AgentView is the drawable state of one agent.
type AgentView struct {
	Name     string          `json:"name" yaml:"name"`
	Tile     world.Tile      `json:"tile" yaml:"tile"`
	X        float64         `json:"x" yaml:"x"`
	Y        float64         `json:"y" yaml:"y"`
	MoveDir  world.Direction `json:"move_dir" yaml:"move_dir"`
	WishDir  world.Direction `json:"wish_dir" yaml:"wish_dir"`
	Mode     string          `json:"mode" yaml:"mode"`
	Speed    float64         `json:"speed" yaml:"speed"`
	Visible  bool            `json:"visible" yaml:"visible"`
	Flashing bool            `json:"flashing,omitempty" yaml:"flashing,omitempty"`
	Bounty   int             `json:"bounty,omitempty" yaml:"bounty,omitempty"`
	Elroy    int             `json:"elroy,omitempty" yaml:"elroy,omitempty"`
	Power    int             `json:"power,omitempty" yaml:"power,omitempty"`
}

type BonusView struct {
	State     actor.BonusState `json:"state" yaml:"state"`
	Symbol    string           `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Value     int              `json:"value,omitempty" yaml:"value,omitempty"`
	Tile      world.Tile       `json:"tile" yaml:"tile"`
	X         float64          `json:"x" yaml:"x"`
	Y         float64          `json:"y" yaml:"y"`
	Remaining int              `json:"remaining" yaml:"remaining"`
}

// Snapshot is a copy of everything a view needs for one frame.
type Snapshot struct {
	State         State          `json:"state" yaml:"state"`
	StateTicks    int            `json:"state_ticks" yaml:"state_ticks"`
	Session       string         `json:"session" yaml:"session"`
	Level         int            `json:"level" yaml:"level"`
	Score         int            `json:"score" yaml:"score"`
	Lives         int            `json:"lives" yaml:"lives"`
	Hiscore       hiscore.Record `json:"hiscore" yaml:"hiscore"`
	FoodRemaining int            `json:"food_remaining" yaml:"food_remaining"`
	FoodTotal     int            `json:"food_total" yaml:"food_total"`
	Food          []world.Tile   `json:"food" yaml:"food,flow"`
	LevelCounter  []string       `json:"level_counter" yaml:"level_counter,flow"`
	MazeFlashing  bool           `json:"maze_flashing" yaml:"maze_flashing"`
	Immortal      bool           `json:"immortal" yaml:"immortal"`
	Demo          bool           `json:"demo" yaml:"demo"`
	Player        AgentView      `json:"player" yaml:"player"`
	Pursuers      []AgentView    `json:"pursuers" yaml:"pursuers"`
	Bonus         BonusView      `json:"bonus" yaml:"bonus"`
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:         c.fsm.Current(),
		StateTicks:    c.fsm.Ticks(),
		Session:       c.session.String(),
		Level:         c.level,
		Score:         c.score,
		Lives:         c.lives,
		Hiscore:       c.tracker.Record(),
		FoodRemaining: c.world.FoodRemaining(),
		FoodTotal:     c.world.TotalFood(),
		Food:          c.world.FoodTiles(),
		LevelCounter:  append([]string(nil), c.levelCounter...),
		MazeFlashing:  c.mazeFlashing,
		Immortal:      c.immortal,
		Demo:          c.demo,
	}

	pl := c.player
	s.Player = agentView("player", &pl.Mover, pl.State().String(), c.playerVisible)
	s.Player.Speed, _ = pl.Speed()
	s.Player.Power = pl.Power()

	for _, p := range c.pursuers {
		v := agentView(p.Name, &p.Mover, p.State().String(), c.pursuersVisible)
		v.Speed, _ = p.Speed()
		v.Flashing = p.Is(actor.Frightened) && pl.PowerFading()
		v.Bounty = p.Bounty
		v.Elroy = p.Madness.Elroy()
		s.Pursuers = append(s.Pursuers, v)
	}

	b := c.bonus
	s.Bonus = BonusView{
		State:     b.State(),
		Tile:      b.Tile(),
		X:         b.Spot.X(),
		Y:         b.Spot.Y(),
		Remaining: b.StateRemaining(),
	}
	if b.State() != actor.BonusInactive {
		s.Bonus.Symbol, s.Bonus.Value = b.Symbol, b.Value
	}
	return s
}

func agentView(name string, m *mover.Mover, mode string, visible bool) AgentView {
	return AgentView{
		Name:    name,
		Tile:    m.Tile(),
		X:       m.X,
		Y:       m.Y,
		MoveDir: m.MoveDir,
		WishDir: m.WishDir,
		Mode:    mode,
		Visible: visible,
	}
}

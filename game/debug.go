package game

import (
	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/event"
)

type DebugAction int

const (
	KillAll DebugAction = iota
	AddLife
	NextLevel
	EatAllPellets
	ToggleImmortal
	ToggleDemo
)

var debugActionNames = [...]string{
	KillAll:        "kill-all",
	AddLife:        "add-life",
	NextLevel:      "next-level",
	EatAllPellets:  "eat-all-pellets",
	ToggleImmortal: "toggle-immortal",
	ToggleDemo:     "toggle-demo",
}

func (a DebugAction) String() string {
	if a < 0 || int(a) >= len(debugActionNames) {
		return "unknown"
	}
	return debugActionNames[a]
}

// Debug runs a development cheat. Actions that need a running round do
// nothing outside Playing.
func (c *Controller) Debug(a DebugAction) {
	c.log.WithField("action", a).Info("debug action")
	switch a {
	case AddLife:
		c.lives++
	case ToggleImmortal:
		c.immortal = !c.immortal
	case ToggleDemo:
		c.useAutopilot(!c.demo)
	case KillAll:
		if !c.Is(Playing) {
			return
		}
		killed := false
		for _, p := range c.pursuers {
			if p.Is(actor.Scattering, actor.Chasing, actor.Frightened) {
				c.killPursuer(p)
				killed = true
			}
		}
		c.dispatch()
		if killed && c.Is(Playing) {
			c.fsm.SetState(GhostDying)
		}
	case NextLevel:
		if c.Is(Playing) {
			c.eatFood(func(bool) bool { return true })
		}
	case EatAllPellets:
		if c.Is(Playing) {
			c.eatFood(func(energizer bool) bool { return !energizer })
		}
	}
}

func (c *Controller) eatFood(match func(energizer bool) bool) {
	for _, t := range c.world.FoodTiles() {
		if match(c.world.ContainsEnergizer(t)) {
			c.world.RemoveFood(t)
			c.eaten++
		}
	}
	if c.world.FoodRemaining() == 0 {
		c.events.Push(event.Of(event.LevelCompleted))
	}
	c.dispatch()
}

func (c *Controller) Immortal() bool { return c.immortal }
func (c *Controller) Demo() bool     { return c.demo }

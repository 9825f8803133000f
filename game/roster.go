package game

import (
	"fmt"

	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/steering"
	"github.com/milk9111/mazechase/world"
)

func (c *Controller) buildPursuers() error {
	house := c.world.House()
	corners := c.world.Corners()
	for i, spec := range c.cfg.Pursuers {
		for _, seat := range []int{spec.Seat, spec.RevivalSeat} {
			if seat < 0 || seat >= len(house.Seats) {
				return fmt.Errorf("game: pursuer %s: house has no seat %d", spec.Name, seat)
			}
		}
		chase, err := c.chaseTarget(spec)
		if err != nil {
			return err
		}
		p := actor.NewPursuer(c.world, actor.PursuerConfig{
			Index:         i,
			Name:          spec.Name,
			Seat:          spec.Seat,
			RevivalSeat:   spec.RevivalSeat,
			StartDir:      spec.StartDir,
			ScatterCorner: spec.ScatterCorner,
			Chase:         chase,
			Flee:          c.flight(corners),
		}, c.baseLog)
		p.Phase = c.schedule.Phase
		p.Release = func(p *actor.Pursuer) bool { return c.doorMan.CanLeave(p) }
		p.ReverseOnPhaseChange = c.cfg.ReverseOnPhaseChange
		c.pursuers = append(c.pursuers, p)
	}
	return nil
}

func (c *Controller) chaseTarget(spec PursuerSpec) (steering.Target, error) {
	if name, ok := spec.ScriptName(); ok {
		s, err := steering.LoadScript(name, spec.ScatterCorner, 0, c.baseLog)
		if err != nil {
			return nil, fmt.Errorf("game: pursuer %s: %w", spec.Name, err)
		}
		return s.Target(), nil
	}
	switch spec.Chase {
	case "direct":
		return steering.DirectChase(), nil
	case "ambush":
		return steering.Ambush(spec.Ahead, c.cfg.OverflowBug), nil
	case "pincer":
		return steering.Pincer(0, c.cfg.OverflowBug), nil
	case "cowardly":
		return steering.Cowardly(spec.ScatterCorner, spec.Distance), nil
	}
	return nil, fmt.Errorf("game: pursuer %s: unknown chase %q", spec.Name, spec.Chase)
}

func (c *Controller) flight(corners []world.Tile) steering.Steering {
	if c.cfg.ClassicFlight {
		return &steering.FleeRandom{Rand: c.rng}
	}
	return &steering.FleeToSafeCorner{Corners: corners}
}

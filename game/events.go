package game

import (
	"slices"

	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/event"
)

// detectContacts queues bonus and pursuer contacts of this tick. Pursuer
// contacts count only on the tick one of the two entered the shared tile.
func (c *Controller) detectContacts() {
	pl := c.player
	if !pl.Is(actor.Running) || pl.IsTeleporting() {
		return
	}
	tile := pl.Tile()
	if c.bonus.Edible() && tile == c.bonus.Tile() {
		c.events.Push(event.Bonus(tile))
	}
	for _, p := range c.pursuers {
		if p.Tile() != tile || p.IsTeleporting() {
			continue
		}
		if pl.EnteredNewTile || p.EnteredNewTile {
			c.events.Push(event.Collision(p.Index, tile))
		}
	}
}

// dispatch handles queued events in emission order until the queue stays
// empty, including events raised by the handlers themselves. Listeners only
// hear of events that took effect.
func (c *Controller) dispatch() {
	for c.events.Len() > 0 {
		for _, evt := range c.events.Drain() {
			if !c.handle(evt) {
				c.log.WithField("event", evt.Kind).Trace("event ignored")
				continue
			}
			for _, l := range c.listeners {
				l.Event(evt)
			}
		}
	}
}

// handle applies evt and reports whether it changed anything. Kinds without a
// case here are announcements of changes already made.
func (c *Controller) handle(evt event.Event) bool {
	switch evt.Kind {
	case event.FoodFound:
		if !c.world.ContainsFood(evt.Tile) {
			return false
		}
		c.foodFound(evt)
	case event.BonusFound:
		if !c.bonus.Eat() {
			return false
		}
		c.addPoints(c.bonus.Value)
		c.log.WithField("bonus", c.bonus.Symbol).Debug("bonus eaten")
	case event.PowerLost:
		for _, p := range c.pursuers {
			p.Recover()
		}
	case event.PursuerCollision:
		if evt.Pursuer < 0 || evt.Pursuer >= len(c.pursuers) {
			return false
		}
		return c.collision(c.pursuers[evt.Pursuer])
	case event.PlayerKilled:
		if !c.Is(Playing) {
			return false
		}
		c.fsm.SetState(PlayerDying)
	case event.LevelCompleted:
		if !c.Is(Playing, GhostDying) {
			return false
		}
		c.fsm.SetState(ChangingLevel)
	}
	return true
}

func (c *Controller) foodFound(evt event.Event) {
	c.world.RemoveFood(evt.Tile)
	c.eaten++
	c.player.Digest(evt.Energizer)
	c.doorMan.FoodFound()

	if evt.Energizer {
		c.addPoints(c.cfg.Scoring.Energizer)
		c.kills = 0
		if ticks := c.params.PowerTicks(); ticks > 0 {
			c.player.GainPower(ticks)
			for _, p := range c.pursuers {
				p.Frighten(ticks)
			}
			evt := event.Of(event.PowerGained)
			evt.Ticks = ticks
			c.events.Push(evt)
		} else {
			for _, p := range c.pursuers {
				p.TurnAround()
			}
		}
	} else {
		c.addPoints(c.cfg.Scoring.Pellet)
	}
	c.madness.Update()

	if slices.Contains(c.cfg.Scoring.BonusAt, c.eaten) {
		seconds := float64(c.cfg.Scoring.BonusSeconds) + c.rng.Float64()
		c.bonus.Activate(c.params.Bonus, c.params.BonusValue, common.Sec(seconds))
		c.log.WithField("bonus", c.params.Bonus).Debug("bonus activated")
	}
	if c.world.FoodRemaining() == 0 {
		c.events.Push(event.Of(event.LevelCompleted))
	}
	c.log.WithField("tile", evt.Tile).Trace("food eaten")
}

func (c *Controller) collision(p *actor.Pursuer) bool {
	switch {
	case p.Is(actor.Frightened):
		if !c.Is(Playing, GhostDying) {
			return false
		}
		c.killPursuer(p)
		c.fsm.SetState(GhostDying)
		return true
	case p.Is(actor.Scattering, actor.Chasing):
		if !c.Is(Playing) || c.immortal {
			return false
		}
		evt := event.Of(event.PlayerKilled)
		evt.Pursuer, evt.Tile = p.Index, p.Tile()
		c.events.Push(evt)
		return true
	}
	return false
}

func (c *Controller) killPursuer(p *actor.Pursuer) {
	bounty := c.cfg.Scoring.Bounty(c.kills)
	c.kills++
	c.killsThisLevel++
	p.Kill(bounty, c.cfg.Timing.GhostDying)

	evt := event.Of(event.PursuerKilled)
	evt.Pursuer, evt.Tile, evt.Points = p.Index, p.Tile(), bounty
	c.events.Push(evt)
	c.addPoints(bounty)

	if c.killsThisLevel == len(c.pursuers)*len(c.world.EnergizerTiles()) {
		c.addPoints(c.cfg.Scoring.AllKilled)
		c.log.WithField("kills", c.killsThisLevel).Info("every pursuer killed on every energizer")
	}
	c.log.WithField("pursuer", p.Name).WithField("bounty", bounty).Debug("pursuer killed")
}

// addPoints raises the score, granting the extra life and announcing a beaten
// record at most once per game.
func (c *Controller) addPoints(points int) {
	before := c.score
	c.score += points
	if x := c.cfg.Scoring.ExtraLife; x > 0 && before < x && c.score >= x {
		c.lives++
		evt := event.Of(event.ExtraLife)
		evt.Points = c.score
		c.events.Push(evt)
		c.log.WithField("lives", c.lives).Info("extra life")
	}
	record, _ := c.tracker.Consider(c.score, c.level)
	if record && !c.recordAnnounced && c.tracker.Loaded().Points > 0 {
		c.recordAnnounced = true
		evt := event.Of(event.NewRecord)
		evt.Points = c.score
		c.events.Push(evt)
		c.log.WithField("score", c.score).Info("new high score")
	}
}

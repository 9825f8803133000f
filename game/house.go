package game

import (
	"github.com/milk9111/mazechase/actor"
	"github.com/sirupsen/logrus"
)

// DoorMan decides when locked pursuers leave the house. The lead pursuer
// leaves at once. The others leave one at a time in roster order, once their
// personal food counter, or after a lost life the global one, reaches its
// limit. A player who stops eating for too long forces the next one out.
type DoorMan struct {
	rules    HouseRules
	pursuers []*actor.Pursuer
	level    int

	globalEnabled bool
	globalCount   int
	starving      int
	forced        *actor.Pursuer

	log *logrus.Entry
}

func NewDoorMan(rules HouseRules, pursuers []*actor.Pursuer, log *logrus.Entry) *DoorMan {
	return &DoorMan{
		rules:    rules,
		pursuers: pursuers,
		level:    1,
		log:      log.WithField("component", "doorman"),
	}
}

func (d *DoorMan) StartLevel(n int) {
	d.level = n
	d.globalEnabled, d.globalCount = false, 0
	d.starving = 0
	d.forced = nil
	for _, p := range d.pursuers {
		p.FoodCount = 0
	}
}

// LifeLost switches to the global counter.
func (d *DoorMan) LifeLost() {
	d.globalEnabled, d.globalCount = true, 0
	d.starving = 0
	d.forced = nil
}

// Update advances the starvation timer by one tick.
func (d *DoorMan) Update() {
	limit := d.rules.Starvation(d.level)
	if limit <= 0 {
		return
	}
	d.starving++
	if d.starving < limit {
		return
	}
	d.starving = 0
	if p := d.Preferred(); p != nil && d.forced == nil {
		d.forced = p
		d.log.WithField("pursuer", p.Name).Debug("player starving, releasing pursuer")
	}
}

func (d *DoorMan) FoodFound() {
	d.starving = 0
	if d.globalEnabled {
		d.globalCount++
		last := d.pursuers[len(d.pursuers)-1]
		if last.Is(actor.Locked) && d.globalCount >= d.rules.GlobalLimit(last.Index) {
			d.globalEnabled, d.globalCount = false, 0
			d.log.Debug("global food counter disabled")
		}
		return
	}
	if p := d.Preferred(); p != nil {
		p.FoodCount++
	}
}

// Preferred is the first locked pursuer after the lead, or nil.
func (d *DoorMan) Preferred() *actor.Pursuer {
	for _, p := range d.pursuers[1:] {
		if p.Is(actor.Locked) {
			return p
		}
	}
	return nil
}

func (d *DoorMan) CanLeave(p *actor.Pursuer) bool {
	if p.Index == 0 {
		return true
	}
	if d.forced == p {
		d.forced = nil
		return true
	}
	if p != d.Preferred() {
		return false
	}
	if d.globalEnabled {
		return d.globalCount >= d.rules.GlobalLimit(p.Index)
	}
	return p.FoodCount >= d.rules.PersonalLimit(d.level, p.Index)
}

func (d *DoorMan) GlobalCounter() (count int, enabled bool) {
	return d.globalCount, d.globalEnabled
}

func (d *DoorMan) Starving() int { return d.starving }

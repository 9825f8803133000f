package game

import "github.com/milk9111/mazechase/actor"

// AttackSchedule alternates the scatter and chase phases of a level.
type AttackSchedule struct {
	phases []int
	index  int
	ticks  int
}

// PhasesFor picks the schedule of level n.
func PhasesFor(schedules []Schedule, n int) []int {
	var phases []int
	for _, s := range schedules {
		if s.FromLevel <= n {
			phases = s.Phases
		}
	}
	return phases
}

func (a *AttackSchedule) Start(phases []int) {
	a.phases = phases
	a.index, a.ticks = 0, 0
}

// Update advances the schedule unless paused and reports a phase change.
func (a *AttackSchedule) Update(paused bool) bool {
	if paused || a.index >= len(a.phases) {
		return false
	}
	d := a.phases[a.index]
	if d < 0 {
		return false
	}
	a.ticks++
	if a.ticks < d || a.index == len(a.phases)-1 {
		return false
	}
	a.index++
	a.ticks = 0
	return true
}

// Phase is Scattering on even phases and Chasing on odd ones.
func (a *AttackSchedule) Phase() actor.PursuerState {
	if a.index%2 == 0 {
		return actor.Scattering
	}
	return actor.Chasing
}

func (a *AttackSchedule) Index() int { return a.index }

// Remaining returns the ticks left in the current phase, or -1.
func (a *AttackSchedule) Remaining() int {
	if a.index >= len(a.phases) || a.phases[a.index] < 0 {
		return -1
	}
	return a.phases[a.index] - a.ticks
}

package actor

import (
	"github.com/milk9111/mazechase/fsm"
	"github.com/milk9111/mazechase/level"
	"github.com/sirupsen/logrus"
)

type MadnessState int

const (
	Healthy MadnessState = iota
	Elroy1
	Elroy2
	Suspended
)

var madnessStateNames = []string{"healthy", "elroy1", "elroy2", "suspended"}

func (s MadnessState) String() string {
	return stateName(madnessStateNames, int(s))
}

func (s MadnessState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Madness escalates the lead pursuer as food runs out. After a lost life it is
// suspended until Resume reports that the house is empty again.
type Madness struct {
	Params   level.Params
	FoodLeft func() int
	Resume   func() bool

	fsm *fsm.Machine[MadnessState]
}

func NewMadness(foodLeft func() int, resume func() bool, log *logrus.Entry) *Madness {
	m := &Madness{FoodLeft: foodLeft, Resume: resume}
	m.fsm = fsm.New("madness", Healthy).SetLogger(log)

	elroy1 := func() bool { return m.FoodLeft() <= m.Params.Elroy1DotsLeft }
	elroy2 := func() bool { return m.FoodLeft() <= m.Params.Elroy2DotsLeft }
	resumed := func(cond func() bool) func() bool {
		return func() bool { return m.Resume() && cond() }
	}

	m.fsm.Add(fsm.Transition[MadnessState]{From: Healthy, To: Elroy2, When: elroy2})
	m.fsm.Add(fsm.Transition[MadnessState]{From: Healthy, To: Elroy1, When: elroy1})
	m.fsm.Add(fsm.Transition[MadnessState]{From: Elroy1, To: Elroy2, When: elroy2})
	m.fsm.Add(fsm.Transition[MadnessState]{From: Suspended, To: Elroy2, When: resumed(elroy2)})
	m.fsm.Add(fsm.Transition[MadnessState]{From: Suspended, To: Elroy1, When: resumed(elroy1)})
	m.fsm.Add(fsm.Transition[MadnessState]{From: Suspended, To: Healthy, When: m.Resume})
	m.fsm.Init()
	return m
}

func (m *Madness) Update() {
	m.fsm.Update()
}

func (m *Madness) Reset() {
	m.fsm.SetState(Healthy)
}

func (m *Madness) Suspend() {
	m.fsm.SetState(Suspended)
}

func (m *Madness) State() MadnessState {
	if m == nil {
		return Healthy
	}
	return m.fsm.Current()
}

// Elroy returns 1 or 2 for the escalation level, 0 otherwise.
func (m *Madness) Elroy() int {
	switch m.State() {
	case Elroy1:
		return 1
	case Elroy2:
		return 2
	}
	return 0
}

package fsm

import (
	"io"

	"github.com/sirupsen/logrus"
)

// StateDef holds the hooks of a single state. Timeout, when set, is evaluated
// right after OnEnter and gives the state's duration in ticks; negative means
// endless.
type StateDef struct {
	OnEnter func()
	While   func()
	OnExit  func()
	Timeout func() int
}

// Transition fires from From to To when its guard holds. OnTimeout
// transitions additionally wait for the state's timer to run out.
type Transition[S comparable] struct {
	From      S
	To        S
	OnTimeout bool
	When      func() bool
	Act       func()
	Note      string
}

type Observer[S comparable] interface {
	StateEntered(s S)
	StateExited(s S)
}

// Machine is a polled, tick-driven state machine over the state tag S.
type Machine[S comparable] struct {
	name        string
	initial     S
	current     S
	states      map[S]StateDef
	transitions map[S][]Transition[S]
	observers   []Observer[S]

	ticks    int
	duration int
	changes  int

	log *logrus.Entry
}

func New[S comparable](name string, initial S) *Machine[S] {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Machine[S]{
		name:        name,
		initial:     initial,
		current:     initial,
		states:      make(map[S]StateDef),
		transitions: make(map[S][]Transition[S]),
		duration:    -1,
		log:         logrus.NewEntry(quiet),
	}
}

func (m *Machine[S]) SetLogger(log *logrus.Entry) *Machine[S] {
	if log != nil {
		m.log = log.WithField("fsm", m.name)
	}
	return m
}

func (m *Machine[S]) Define(s S, def StateDef) *Machine[S] {
	m.states[s] = def
	return m
}

func (m *Machine[S]) Add(t Transition[S]) *Machine[S] {
	m.transitions[t.From] = append(m.transitions[t.From], t)
	return m
}

func (m *Machine[S]) Observe(o Observer[S]) {
	m.observers = append(m.observers, o)
}

// Init enters the initial state, running its entry hook.
func (m *Machine[S]) Init() {
	m.log.Debugf("init %v", m.initial)
	m.enter(m.initial)
}

// Update runs the current state's tick hook, advances its timer and fires at
// most one transition. A state change made by the tick hook itself ends the
// update.
func (m *Machine[S]) Update() {
	changes := m.changes
	if def, ok := m.states[m.current]; ok && def.While != nil {
		def.While()
	}
	if m.changes != changes {
		return
	}
	m.ticks++
	for _, t := range m.transitions[m.current] {
		if t.OnTimeout && !m.TimedOut() {
			continue
		}
		if t.When != nil && !t.When() {
			continue
		}
		m.fire(t)
		return
	}
}

// SetState leaves the current state and enters s.
func (m *Machine[S]) SetState(s S) {
	m.log.Debugf("%v -> %v (forced)", m.current, s)
	m.exit()
	m.enter(s)
}

func (m *Machine[S]) Current() S {
	return m.current
}

func (m *Machine[S]) Is(states ...S) bool {
	for _, s := range states {
		if s == m.current {
			return true
		}
	}
	return false
}

// Ticks counts the updates spent in the current state.
func (m *Machine[S]) Ticks() int {
	return m.ticks
}

// Duration is the current state's timeout, or -1.
func (m *Machine[S]) Duration() int {
	return m.duration
}

// Remaining returns the ticks left before the current state times out, or -1
// for endless states.
func (m *Machine[S]) Remaining() int {
	if m.duration < 0 {
		return -1
	}
	if m.ticks >= m.duration {
		return 0
	}
	return m.duration - m.ticks
}

func (m *Machine[S]) TimedOut() bool {
	return m.duration >= 0 && m.ticks >= m.duration
}

// RestartTimer re-evaluates the state's timeout and clears the tick count.
func (m *Machine[S]) RestartTimer() {
	m.ticks = 0
	m.duration = -1
	if def, ok := m.states[m.current]; ok && def.Timeout != nil {
		m.duration = def.Timeout()
	}
}

func (m *Machine[S]) fire(t Transition[S]) {
	if t.Note != "" {
		m.log.Debugf("%v -> %v (%s)", t.From, t.To, t.Note)
	} else {
		m.log.Debugf("%v -> %v", t.From, t.To)
	}
	m.exit()
	if t.Act != nil {
		t.Act()
	}
	m.enter(t.To)
}

func (m *Machine[S]) exit() {
	if def, ok := m.states[m.current]; ok && def.OnExit != nil {
		def.OnExit()
	}
	for _, o := range m.observers {
		o.StateExited(m.current)
	}
}

// enter runs the entry hook before the timeout is evaluated, so a Timeout may
// depend on values the hook sets.
func (m *Machine[S]) enter(s S) {
	m.changes++
	changes := m.changes
	m.current = s
	m.ticks, m.duration = 0, -1
	if def, ok := m.states[s]; ok && def.OnEnter != nil {
		def.OnEnter()
	}
	if m.changes == changes {
		m.RestartTimer()
	}
	for _, o := range m.observers {
		o.StateEntered(s)
	}
}

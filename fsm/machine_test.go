package fsm

import (
	"reflect"
	"testing"
)

type light int

const (
	red light = iota
	green
	yellow
)

type recorder struct {
	log []string
}

func (r *recorder) StateEntered(s light) { r.log = append(r.log, "enter", names[s]) }
func (r *recorder) StateExited(s light)  { r.log = append(r.log, "exit", names[s]) }

var names = map[light]string{red: "red", green: "green", yellow: "yellow"}

func TestTimeoutTransitions(t *testing.T) {
	m := New("light", red)
	m.Define(red, StateDef{Timeout: func() int { return 3 }})
	m.Define(green, StateDef{Timeout: func() int { return 2 }})
	m.Add(Transition[light]{From: red, To: green, OnTimeout: true})
	m.Add(Transition[light]{From: green, To: yellow, OnTimeout: true})
	m.Init()

	want := []light{red, red, green, green, yellow}
	var got []light
	for range want {
		m.Update()
		got = append(got, m.Current())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestConditionTransitionRunsActAndHooks(t *testing.T) {
	open := false
	var calls []string
	m := New("door", red)
	m.Define(red, StateDef{
		OnExit: func() { calls = append(calls, "exit red") },
		While:  func() { calls = append(calls, "tick red") },
	})
	m.Define(green, StateDef{OnEnter: func() { calls = append(calls, "enter green") }})
	m.Add(Transition[light]{From: red, To: green, When: func() bool { return open }, Act: func() { calls = append(calls, "act") }})
	m.Init()

	m.Update()
	if !m.Is(red) {
		t.Fatalf("expected to stay red while closed")
	}
	open = true
	m.Update()
	if !m.Is(green) {
		t.Fatalf("expected green once open")
	}

	want := []string{"tick red", "tick red", "exit red", "act", "enter green"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestStateChangeInsideTickEndsUpdate(t *testing.T) {
	m := New("light", red)
	m.Define(red, StateDef{While: func() { m.SetState(yellow) }})
	m.Add(Transition[light]{From: yellow, To: green})
	m.Init()

	m.Update()
	if !m.Is(yellow) {
		t.Fatalf("expected yellow after forced change, got %v", m.Current())
	}
	if m.Ticks() != 0 {
		t.Fatalf("expected a fresh timer, got %d ticks", m.Ticks())
	}
	m.Update()
	if !m.Is(green) {
		t.Fatalf("expected green on the next update, got %v", m.Current())
	}
}

func TestRemainingAndObservers(t *testing.T) {
	m := New("light", red)
	m.Define(red, StateDef{Timeout: func() int { return 5 }})
	r := &recorder{}
	m.Observe(r)
	m.Init()

	if got := m.Remaining(); got != 5 {
		t.Fatalf("expected 5 ticks remaining, got %d", got)
	}
	m.Update()
	m.Update()
	if got := m.Remaining(); got != 3 {
		t.Fatalf("expected 3 ticks remaining, got %d", got)
	}
	m.SetState(green)
	if got := m.Remaining(); got != -1 {
		t.Fatalf("expected endless state, got %d", got)
	}

	want := []string{"enter", "red", "exit", "red", "enter", "green"}
	if !reflect.DeepEqual(r.log, want) {
		t.Fatalf("expected %v, got %v", want, r.log)
	}
}

func TestTimeoutSeesEntryHook(t *testing.T) {
	length := 0
	m := New("light", red)
	m.Define(green, StateDef{
		OnEnter: func() { length = 4 },
		Timeout: func() int { return length },
	})
	m.Add(Transition[light]{From: red, To: green})
	m.Add(Transition[light]{From: green, To: yellow, OnTimeout: true})
	m.Init()

	m.Update()
	if !m.Is(green) {
		t.Fatalf("expected green, got %v", m.Current())
	}
	if m.Duration() != 4 {
		t.Fatalf("expected the duration set by the entry hook, got %d", m.Duration())
	}
	for i := 0; i < 3; i++ {
		m.Update()
	}
	if !m.Is(green) {
		t.Fatalf("expected green before the fourth tick, got %v", m.Current())
	}
	m.Update()
	if !m.Is(yellow) {
		t.Fatalf("expected yellow after four ticks, got %v", m.Current())
	}
}

package event

import (
	"testing"

	"github.com/milk9111/mazechase/world"
)

func TestQueueDrainKeepsEmissionOrder(t *testing.T) {
	var q Queue
	q.Push(Food(world.T(1, 1), false))
	q.Push(Collision(2, world.T(1, 1)))
	q.Push(Of(PowerLost))

	if q.Len() != 3 {
		t.Fatalf("expected 3 queued events, got %d", q.Len())
	}
	got := q.Drain()
	want := []Kind{FoodFound, PursuerCollision, PowerLost}
	for i, k := range want {
		if got[i].Kind != k {
			t.Fatalf("expected event %d to be %s, got %s", i, k, got[i].Kind)
		}
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("expected an empty queue after drain")
	}
}

func TestNilQueueIsSafe(t *testing.T) {
	var q *Queue
	q.Push(Of(ExtraLife))
	if q.Drain() != nil || q.Len() != 0 {
		t.Fatalf("expected nil queue to stay empty")
	}
}

func TestKindString(t *testing.T) {
	if got := PursuerKilled.String(); got != "pursuer-killed" {
		t.Fatalf("expected pursuer-killed, got %s", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Fatalf("expected unknown, got %s", got)
	}
}

package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPollEventsStopsWhenScreenCloses(t *testing.T) {
	events := []tcell.Event{
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
	}
	poll := func() tcell.Event {
		if len(events) == 0 {
			return nil
		}
		ev := events[0]
		events = events[1:]
		return ev
	}

	out := make(chan tcell.Event, 4)
	pollEvents(poll, out, make(chan struct{}))
	if len(out) != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", len(out))
	}
}

func TestPollEventsStopsWhenNobodyListens(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone) }
	out := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pollEvents(poll, out, done)
		close(finished)
	}()

	<-out
	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("expected polling to stop once done is closed")
	}
}

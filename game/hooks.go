package game

import (
	"github.com/milk9111/mazechase/event"
)

// Listener is notified of controller state changes and of every event the
// round processes. Notifications never influence the round.
type Listener interface {
	StateEntered(s State)
	StateExited(s State)
	Event(evt event.Event)
}

// Recorder is a Listener that keeps everything it is told.
type Recorder struct {
	Entered []State
	Exited  []State
	Events  []event.Event
}

func (r *Recorder) StateEntered(s State) { r.Entered = append(r.Entered, s) }
func (r *Recorder) StateExited(s State)  { r.Exited = append(r.Exited, s) }
func (r *Recorder) Event(evt event.Event) { r.Events = append(r.Events, evt) }

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k event.Kind) int {
	n := 0
	for _, evt := range r.Events {
		if evt.Kind == k {
			n++
		}
	}
	return n
}

// Last returns the most recent event of kind k.
func (r *Recorder) Last(k event.Kind) (event.Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == k {
			return r.Events[i], true
		}
	}
	return event.Event{}, false
}

func (r *Recorder) EnteredCount(s State) int {
	n := 0
	for _, e := range r.Entered {
		if e == s {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Entered, r.Exited, r.Events = nil, nil, nil
}

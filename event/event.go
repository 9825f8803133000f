package event

import "github.com/milk9111/mazechase/world"

type Kind int

const (
	FoodFound Kind = iota
	BonusFound
	PowerGained
	PowerFading
	PowerLost
	PursuerCollision
	PursuerKilled
	PlayerKilled
	LevelCompleted
	ExtraLife
	NewRecord
)

var kindNames = [...]string{
	FoodFound:        "food-found",
	BonusFound:       "bonus-found",
	PowerGained:      "power-gained",
	PowerFading:      "power-fading",
	PowerLost:        "power-lost",
	PursuerCollision: "pursuer-collision",
	PursuerKilled:    "pursuer-killed",
	PlayerKilled:     "player-killed",
	LevelCompleted:   "level-completed",
	ExtraLife:        "extra-life",
	NewRecord:        "new-record",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a tagged variant; which payload fields are meaningful depends on
// Kind.
type Event struct {
	Kind      Kind       `json:"kind"`
	Tile      world.Tile `json:"tile"`
	Energizer bool       `json:"energizer,omitempty"`
	Pursuer   int        `json:"pursuer"`
	Points    int        `json:"points,omitempty"`
	Ticks     int        `json:"ticks,omitempty"`
}

func Food(t world.Tile, energizer bool) Event {
	return Event{Kind: FoodFound, Tile: t, Energizer: energizer, Pursuer: -1}
}

func Bonus(t world.Tile) Event {
	return Event{Kind: BonusFound, Tile: t, Pursuer: -1}
}

func Collision(pursuer int, t world.Tile) Event {
	return Event{Kind: PursuerCollision, Tile: t, Pursuer: pursuer}
}

func Of(kind Kind) Event {
	return Event{Kind: kind, Pursuer: -1}
}

// Queue is a FIFO of events produced within one tick.
type Queue struct {
	items []Event
}

func (q *Queue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *Queue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}

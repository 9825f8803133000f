package game

import "fmt"

// State is the round controller's state tag.
type State int

const (
	Loading State = iota
	Intro
	GettingReady
	Playing
	GhostDying
	PlayerDying
	ChangingLevel
	GameOver
)

var stateNames = [...]string{
	Loading:       "loading",
	Intro:         "intro",
	GettingReady:  "getting-ready",
	Playing:       "playing",
	GhostDying:    "ghost-dying",
	PlayerDying:   "player-dying",
	ChangingLevel: "changing-level",
	GameOver:      "game-over",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

package actor

import (
	"github.com/milk9111/mazechase/fsm"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

type BonusState int

const (
	BonusInactive BonusState = iota
	BonusEdible
	BonusConsumed
)

var bonusStateNames = []string{"inactive", "edible", "consumed"}

func (s BonusState) String() string {
	return stateName(bonusStateNames, int(s))
}

func (s BonusState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Bonus is the fruit that appears twice per level.
type Bonus struct {
	Spot          world.Spot
	Symbol        string
	Value         int
	ConsumedTicks int

	fsm         *fsm.Machine[BonusState]
	edibleTicks int
}

func NewBonus(spot world.Spot, log *logrus.Entry) *Bonus {
	b := &Bonus{Spot: spot, ConsumedTicks: 120}
	b.fsm = fsm.New("bonus", BonusInactive).SetLogger(log)
	b.fsm.Define(BonusEdible, fsm.StateDef{Timeout: func() int { return b.edibleTicks }})
	b.fsm.Define(BonusConsumed, fsm.StateDef{Timeout: func() int { return b.ConsumedTicks }})
	b.fsm.Add(fsm.Transition[BonusState]{From: BonusEdible, To: BonusInactive, OnTimeout: true, Note: "expired"})
	b.fsm.Add(fsm.Transition[BonusState]{From: BonusConsumed, To: BonusInactive, OnTimeout: true})
	b.fsm.Init()
	return b
}

func (b *Bonus) Activate(symbol string, value, ticks int) {
	b.Symbol, b.Value, b.edibleTicks = symbol, value, ticks
	b.fsm.SetState(BonusEdible)
}

// Eat consumes an edible bonus and reports whether there was one.
func (b *Bonus) Eat() bool {
	if !b.fsm.Is(BonusEdible) {
		return false
	}
	b.fsm.SetState(BonusConsumed)
	return true
}

func (b *Bonus) Deactivate() {
	b.fsm.SetState(BonusInactive)
}

func (b *Bonus) Update() {
	b.fsm.Update()
}

func (b *Bonus) Tile() world.Tile    { return b.Spot.Tile }
func (b *Bonus) State() BonusState   { return b.fsm.Current() }
func (b *Bonus) Edible() bool        { return b.fsm.Is(BonusEdible) }
func (b *Bonus) StateRemaining() int { return b.fsm.Remaining() }

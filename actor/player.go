package actor

import (
	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/fsm"
	"github.com/milk9111/mazechase/level"
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/steering"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

type PlayerState int

const (
	Asleep PlayerState = iota
	Running
	Dying
	Dead
)

var playerStateNames = []string{"asleep", "running", "dying", "dead"}

func (s PlayerState) String() string {
	return stateName(playerStateNames, int(s))
}

func (s PlayerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	DigestPelletTicks    = 1
	DigestEnergizerTicks = 3
)

// Player is the controlled agent. It reports food contact through the event
// queue; the food itself is removed by whoever drains the queue.
type Player struct {
	mover.Mover

	Steering     steering.Steering
	Params       level.Params
	PowerWarning float64
	DyingTicks   int
	Events       *event.Queue

	fsm       *fsm.Machine[PlayerState]
	board     steering.Board
	power     int
	powerFull int
	digestion int
	err       error
}

func NewPlayer(w *world.World, events *event.Queue, log *logrus.Entry) *Player {
	p := &Player{
		Mover:        mover.New(w, nil),
		PowerWarning: 0.25,
		DyingTicks:   180,
		Events:       events,
	}
	p.fsm = fsm.New("player", Asleep).SetLogger(log)
	p.fsm.Define(Running, fsm.StateDef{While: p.run})
	p.fsm.Define(Dying, fsm.StateDef{
		OnEnter: func() {
			p.power = 0
			p.digestion = 0
		},
		Timeout: func() int { return p.DyingTicks },
	})
	p.fsm.Add(fsm.Transition[PlayerState]{From: Dying, To: Dead, OnTimeout: true})
	p.fsm.Init()
	return p
}

// Reset puts the player back on its spawn spot, asleep.
func (p *Player) Reset() {
	p.PlaceAt(p.World.PlayerSpawn())
	p.Force(p.World.PlayerDir())
	p.power, p.powerFull, p.digestion = 0, 0, 0
	steering.Reset(p.Steering)
	p.fsm.SetState(Asleep)
}

func (p *Player) Update(b steering.Board) error {
	p.board = b
	p.err = nil
	p.fsm.Update()
	return p.err
}

func (p *Player) Wake()  { p.fsm.SetState(Running) }
func (p *Player) Sleep() { p.fsm.SetState(Asleep) }
func (p *Player) Kill()  { p.fsm.SetState(Dying) }

func (p *Player) State() PlayerState            { return p.fsm.Current() }
func (p *Player) Is(states ...PlayerState) bool { return p.fsm.Is(states...) }

// StateRemaining is the number of ticks left in a timed state.
func (p *Player) StateRemaining() int { return p.fsm.Remaining() }

func (p *Player) GainPower(ticks int) {
	p.power, p.powerFull = ticks, ticks
}

func (p *Player) LosePower() {
	p.power = 0
}

func (p *Player) Power() int { return p.power }

// PowerFading reports whether the remaining power has dropped to the warning
// fraction.
func (p *Player) PowerFading() bool {
	return p.power > 0 && p.power <= p.warnAt()
}

// Digest suspends movement after eating.
func (p *Player) Digest(energizer bool) {
	if energizer {
		p.digestion = DigestEnergizerTicks
	} else {
		p.digestion = DigestPelletTicks
	}
}

func (p *Player) Digesting() bool { return p.digestion > 0 }

func (p *Player) Speed() (float64, error) {
	switch s := p.fsm.Current(); s {
	case Asleep, Dying, Dead:
		return 0, nil
	case Running:
		if p.power > 0 {
			return common.Speed(p.Params.PowerSpeed), nil
		}
		return common.Speed(p.Params.PlayerSpeed), nil
	default:
		return 0, unhandled("player", s)
	}
}

func (p *Player) run() {
	p.updatePower()
	if p.digestion > 0 {
		p.digestion--
		p.EnteredNewTile = false
		p.Moved = 0
		return
	}

	steering.Apply(p.Steering, &p.Mover, p.board)
	speed, err := p.Speed()
	if err != nil {
		p.err = err
		return
	}
	p.Move(speed)

	if p.EnteredNewTile && !p.IsTeleporting() {
		t := p.Tile()
		if p.World.ContainsFood(t) {
			p.Events.Push(event.Food(t, p.World.ContainsEnergizer(t)))
		}
	}
}

func (p *Player) updatePower() {
	if p.power == 0 {
		return
	}
	p.power--
	switch {
	case p.power == 0:
		p.Events.Push(event.Of(event.PowerLost))
	case p.power == p.warnAt():
		evt := event.Of(event.PowerFading)
		evt.Ticks = p.power
		p.Events.Push(evt)
	}
}

func (p *Player) warnAt() int {
	return int(float64(p.powerFull) * p.PowerWarning)
}

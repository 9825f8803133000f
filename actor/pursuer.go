package actor

import (
	"math/rand"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/fsm"
	"github.com/milk9111/mazechase/level"
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/steering"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

type PursuerState int

const (
	Locked PursuerState = iota
	LeavingHouse
	Scattering
	Chasing
	Frightened
	Killed
	EnteringHouse
)

var pursuerStateNames = []string{"locked", "leaving-house", "scattering", "chasing", "frightened", "dead", "entering-house"}

func (s PursuerState) String() string {
	return stateName(pursuerStateNames, int(s))
}

func (s PursuerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PursuerConfig describes one pursuer of the roster.
type PursuerConfig struct {
	Index         int
	Name          string
	Seat          int
	RevivalSeat   int
	StartDir      world.Direction
	ScatterCorner world.Tile
	Chase         steering.Target
	Flee          steering.Steering
}

// Pursuer is a mover driven by its own mode machine. Each mode picks the
// active steering and the speed rule.
type Pursuer struct {
	mover.Mover
	PursuerConfig

	Params  level.Params
	Madness *Madness

	// FoodCount is the personal release counter.
	FoodCount   int
	Bounty      int
	BountyTicks int

	ReverseOnPhaseChange bool

	// Phase returns the attack phase of the round, Scattering or Chasing.
	Phase func() PursuerState
	// Release decides when a locked pursuer may leave the house.
	Release func(*Pursuer) bool

	fsm         *fsm.Machine[PursuerState]
	board       steering.Board
	seat        int
	frightTicks int
	steer       steering.Steering
	err         error

	scatter  *steering.Heading
	chase    *steering.Heading
	homing   *steering.Heading
	jitter   *steering.Jitter
	leaving  *steering.LeavingHouse
	entering *steering.EnteringHouse
}

func NewPursuer(w *world.World, cfg PursuerConfig, log *logrus.Entry) *Pursuer {
	p := &Pursuer{
		PursuerConfig: cfg,
		Phase:         func() PursuerState { return Scattering },
		Release:       func(*Pursuer) bool { return true },
		seat:          cfg.Seat,
		jitter:        &steering.Jitter{},
		leaving:       &steering.LeavingHouse{},
		entering:      &steering.EnteringHouse{},
	}
	p.Mover = mover.New(w, p)
	if p.Chase == nil {
		p.Chase = steering.DirectChase()
	}
	if p.Flee == nil {
		p.Flee = &steering.FleeRandom{Rand: rand.New(rand.NewSource(int64(cfg.Index)))}
	}
	p.chase = steering.HeadingFor(p.Chase)
	p.scatter = steering.HeadingFor(p.scatterTarget)
	p.homing = steering.HeadingFor(steering.Corner(w.House().Entry.Tile))

	p.fsm = fsm.New("pursuer", Locked).SetLogger(logEntry(log).WithField("pursuer", cfg.Name))
	p.define()
	p.fsm.Init()
	return p
}

func (p *Pursuer) define() {
	inPhase := func(s PursuerState) func() bool {
		return func() bool { return p.Phase() == s }
	}
	left := func(s PursuerState) func() bool {
		return func() bool { return p.leaving.Complete() && p.Phase() == s }
	}
	turn := func() {
		if p.ReverseOnPhaseChange {
			p.Force(p.MoveDir.Opposite())
		}
	}

	p.fsm.Define(Locked, fsm.StateDef{
		OnEnter: func() {
			p.steer = nil
			if p.World.InsideHouse(p.Tile()) {
				p.jitter.CenterY = p.World.House().Seat(p.seat).Y()
				p.steer = p.jitter
			}
		},
		While: p.move,
	})
	p.fsm.Define(LeavingHouse, fsm.StateDef{
		OnEnter: func() {
			p.leaving.Reset()
			p.leaving.RowY = p.World.House().Seat(p.seat).Y()
			p.steer = p.leaving
		},
		While: p.move,
	})
	p.fsm.Define(Scattering, fsm.StateDef{
		OnEnter: func() { p.use(p.scatter) },
		While:   p.move,
	})
	p.fsm.Define(Chasing, fsm.StateDef{
		OnEnter: func() { p.use(p.chase) },
		While:   p.move,
	})
	p.fsm.Define(Frightened, fsm.StateDef{
		OnEnter: func() {
			p.Force(p.MoveDir.Opposite())
			p.use(p.Flee)
		},
		While:   p.move,
		Timeout: func() int { return p.frightTicks },
	})
	p.fsm.Define(Killed, fsm.StateDef{
		OnEnter: func() {
			p.seat = p.RevivalSeat
			p.use(p.homing)
		},
		While: func() {
			if p.BountyTicks > 0 {
				p.BountyTicks--
				p.EnteredNewTile = false
				p.Moved = 0
				return
			}
			p.move()
		},
		OnExit: func() {
			p.Bounty, p.BountyTicks = 0, 0
		},
	})
	p.fsm.Define(EnteringHouse, fsm.StateDef{
		OnEnter: func() {
			p.entering.Reset()
			p.entering.Seat = p.World.House().Seat(p.seat)
			p.steer = p.entering
		},
		While: p.move,
	})

	p.fsm.Add(fsm.Transition[PursuerState]{From: Locked, To: LeavingHouse, When: func() bool { return p.Release(p) }, Note: "released"})
	p.fsm.Add(fsm.Transition[PursuerState]{From: LeavingHouse, To: Scattering, When: left(Scattering)})
	p.fsm.Add(fsm.Transition[PursuerState]{From: LeavingHouse, To: Chasing, When: left(Chasing)})
	p.fsm.Add(fsm.Transition[PursuerState]{From: Scattering, To: Chasing, When: inPhase(Chasing), Act: turn})
	p.fsm.Add(fsm.Transition[PursuerState]{From: Chasing, To: Scattering, When: inPhase(Scattering), Act: turn})
	p.fsm.Add(fsm.Transition[PursuerState]{From: Frightened, To: Scattering, OnTimeout: true, When: inPhase(Scattering)})
	p.fsm.Add(fsm.Transition[PursuerState]{From: Frightened, To: Chasing, OnTimeout: true, When: inPhase(Chasing)})
	p.fsm.Add(fsm.Transition[PursuerState]{From: Killed, To: EnteringHouse, When: func() bool {
		return p.BountyTicks == 0 && p.World.House().IsEntry(p.Tile())
	}})
	p.fsm.Add(fsm.Transition[PursuerState]{From: EnteringHouse, To: Locked, When: p.entering.Complete, Note: "revived"})
}

// Reset seats the pursuer for a new round.
func (p *Pursuer) Reset() {
	p.seat = p.Seat
	p.PlaceAt(p.World.House().Seat(p.seat))
	p.Force(p.StartDir)
	p.Bounty, p.BountyTicks = 0, 0
	for _, s := range []steering.Steering{p.scatter, p.chase, p.homing, p.leaving, p.entering, p.Flee} {
		steering.Reset(s)
	}
	p.fsm.SetState(Locked)
}

func (p *Pursuer) Update(b steering.Board) error {
	p.board = b
	p.err = nil
	p.fsm.Update()
	return p.err
}

func (p *Pursuer) State() PursuerState            { return p.fsm.Current() }
func (p *Pursuer) Is(states ...PursuerState) bool { return p.fsm.Is(states...) }

// StateRemaining is the number of ticks left in a timed state.
func (p *Pursuer) StateRemaining() int { return p.fsm.Remaining() }

// Frighten turns a roaming pursuer around and makes it flee for ticks. An
// already frightened pursuer starts over.
func (p *Pursuer) Frighten(ticks int) {
	p.frightTicks = ticks
	switch {
	case p.fsm.Is(Frightened):
		p.fsm.RestartTimer()
	case p.fsm.Is(Scattering, Chasing):
		p.fsm.SetState(Frightened)
	}
}

// TurnAround reverses a roaming pursuer without frightening it.
func (p *Pursuer) TurnAround() {
	if p.fsm.Is(Scattering, Chasing) {
		p.Force(p.MoveDir.Opposite())
	}
}

// Recover ends a fright early, returning to the current attack phase.
func (p *Pursuer) Recover() {
	if p.fsm.Is(Frightened) {
		p.fsm.SetState(p.Phase())
	}
}

// Kill sends the pursuer home. It stays put showing its bounty for
// bountyTicks.
func (p *Pursuer) Kill(bounty, bountyTicks int) {
	p.fsm.SetState(Killed)
	p.Bounty, p.BountyTicks = bounty, bountyTicks
}

// CanMoveBetween implements mover.Passage. Doors only open for pursuers
// leaving or entering the house, and roaming pursuers may not turn up on
// upwards-blocked tiles.
func (p *Pursuer) CanMoveBetween(from, to world.Tile) bool {
	w := p.World
	if w.IsDoor(to) {
		return p.fsm.Is(LeavingHouse, EnteringHouse)
	}
	if to == from.Towards(world.Up, 1) && w.IsUpwardsBlocked(from) && p.fsm.Is(Scattering, Chasing) {
		return false
	}
	return w.Accessible(to)
}

func (p *Pursuer) Speed() (float64, error) {
	w, lp, tile := p.World, p.Params, p.Tile()
	switch s := p.fsm.Current(); s {
	case Locked:
		if w.InsideHouse(tile) {
			return common.Speed(lp.GhostSpeed) / 2, nil
		}
		return 0, nil
	case LeavingHouse:
		return common.Speed(lp.GhostSpeed) / 2, nil
	case EnteringHouse:
		return common.Speed(lp.GhostSpeed), nil
	case Chasing, Scattering:
		if w.IsTunnel(tile) {
			return common.Speed(lp.GhostTunnelSpeed), nil
		}
		switch p.Madness.Elroy() {
		case 1:
			return common.Speed(lp.Elroy1Speed), nil
		case 2:
			return common.Speed(lp.Elroy2Speed), nil
		}
		return common.Speed(lp.GhostSpeed), nil
	case Frightened:
		if w.IsTunnel(tile) {
			return common.Speed(lp.GhostTunnelSpeed), nil
		}
		return common.Speed(lp.FrightenedSpeed), nil
	case Killed:
		if p.BountyTicks > 0 {
			return 0, nil
		}
		return 2 * common.Speed(lp.GhostSpeed), nil
	default:
		return 0, unhandled(p.Name, s)
	}
}

func (p *Pursuer) use(s steering.Steering) {
	steering.Reset(s)
	p.steer = s
}

func (p *Pursuer) move() {
	steering.Apply(p.steer, &p.Mover, p.board)
	speed, err := p.Speed()
	if err != nil {
		p.err = err
		return
	}
	p.Move(speed)
}

func (p *Pursuer) scatterTarget(m *mover.Mover, b steering.Board) (world.Tile, bool) {
	if p.Madness.Elroy() > 0 {
		return b.PlayerTile(), true
	}
	return p.ScatterCorner, true
}

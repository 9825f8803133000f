package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/fsm"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/level"
	"github.com/milk9111/mazechase/levels"
	"github.com/milk9111/mazechase/steering"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

const levelCounterSize = 7

type Option func(*Controller)

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, l) }
}

func WithHiscoreStore(s hiscore.Store) Option {
	return func(c *Controller) { c.store = s }
}

func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) { c.baseLog = log }
}

// WithAssetsReady holds the controller in Loading until ready reports true.
func WithAssetsReady(ready func() bool) Option {
	return func(c *Controller) { c.assetsReady = ready }
}

// WithIntroDone ends the intro early once done reports true.
func WithIntroDone(done func() bool) Option {
	return func(c *Controller) { c.introDone = done }
}

func WithWorld(w *world.World) Option {
	return func(c *Controller) { c.world = w }
}

func WithLevelTable(t level.Table) Option {
	return func(c *Controller) { c.table = t }
}

// Controller runs a game: it owns the maze, the agents and the event queue
// and advances all of them one tick per Update.
type Controller struct {
	cfg       Config
	world     *world.World
	table     level.Table
	params    level.Params
	store     hiscore.Store
	tracker   *hiscore.Tracker
	rng       *rand.Rand
	listeners []Listener

	fsm      *fsm.Machine[State]
	events   event.Queue
	player   *actor.Player
	pursuers []*actor.Pursuer
	madness  *actor.Madness
	bonus    *actor.Bonus
	doorMan  *DoorMan
	schedule AttackSchedule

	intent    world.Direction
	keyboard  steering.Steering
	autopilot *steering.FollowPath

	assetsReady func() bool
	introDone   func() bool
	start       bool

	session         uuid.UUID
	level           int
	score           int
	lives           int
	eaten           int
	kills           int
	killsThisLevel  int
	levelCounter    []string
	recordAnnounced bool
	clampWarned     bool

	immortal        bool
	demo            bool
	playerVisible   bool
	pursuersVisible bool
	mazeFlashing    bool
	flashTicks      int

	err     error
	baseLog *logrus.Entry
	log     *logrus.Entry
}

func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	c := &Controller{
		cfg:             cfg,
		immortal:        cfg.Immortal,
		demo:            cfg.Demo,
		assetsReady:     func() bool { return true },
		introDone:       func() bool { return false },
		session:         uuid.New(),
		level:           cfg.StartLevel,
		lives:           cfg.Lives,
		playerVisible:   true,
		pursuersVisible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseLog == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		c.baseLog = logrus.NewEntry(quiet)
	}
	c.baseLog = c.baseLog.WithField("component", "game")
	c.log = c.baseLog.WithField("session", c.session.String())
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if c.world == nil {
		w, err := levels.Load(cfg.Layout)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		c.world = w
	}
	if c.table.Len() == 0 {
		t, err := level.Load(cfg.LevelTable)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		c.table = t
	}

	c.tracker = hiscore.NewTracker(c.store, c.baseLog)
	if err := c.tracker.Load(); err != nil {
		c.log.WithError(err).Error("loading high score failed")
	}

	c.player = actor.NewPlayer(c.world, &c.events, c.baseLog)
	c.player.PowerWarning = cfg.PowerWarning
	c.player.DyingTicks = cfg.Timing.PlayerHide + cfg.Timing.PlayerDyingAnim
	c.keyboard = steering.Intent(func() world.Direction { return c.intent })
	c.autopilot = &steering.FollowPath{Target: steering.NearestFood()}
	c.useAutopilot(c.demo)

	if err := c.buildPursuers(); err != nil {
		return nil, err
	}
	c.doorMan = NewDoorMan(cfg.House, c.pursuers, c.baseLog)
	c.madness = actor.NewMadness(c.world.FoodRemaining, c.houseEmptied, c.baseLog)
	c.pursuers[0].Madness = c.madness
	c.bonus = actor.NewBonus(c.world.BonusSpot(), c.baseLog)
	c.bonus.ConsumedTicks = cfg.Timing.BonusConsumed

	c.fsm = fsm.New("game", Loading).SetLogger(c.baseLog)
	c.define()
	for _, l := range c.listeners {
		c.fsm.Observe(l)
	}
	c.startLevel(c.level)
	c.fsm.Init()
	return c, nil
}

func (c *Controller) define() {
	t := c.cfg.Timing
	m := c.fsm
	after := func(ticks int) func() int { return func() int { return ticks } }

	m.Define(Intro, fsm.StateDef{
		OnEnter: func() { c.log.Debug("intro") },
		Timeout: after(t.Intro),
	})
	m.Define(GettingReady, fsm.StateDef{
		OnEnter: c.newGame,
		Timeout: after(t.Ready),
	})
	m.Define(Playing, fsm.StateDef{
		OnEnter: func() {
			if c.player.Is(actor.Asleep) {
				c.player.Wake()
			}
		},
		While: c.playing,
	})
	m.Define(GhostDying, fsm.StateDef{
		OnEnter: func() { c.playerVisible = false },
		While:   c.ghostDying,
		OnExit:  func() { c.playerVisible = true },
		Timeout: after(t.GhostDying),
	})
	m.Define(PlayerDying, fsm.StateDef{
		OnEnter: c.enterPlayerDying,
		While:   c.playerDying,
		Timeout: after(t.PlayerDying),
	})
	m.Define(ChangingLevel, fsm.StateDef{
		OnEnter: c.enterChangingLevel,
		While:   c.changingLevel,
		Timeout: func() int { return t.LevelChangeWait + c.flashTicks + t.LevelComplete },
	})
	m.Define(GameOver, fsm.StateDef{
		OnEnter: c.enterGameOver,
		Timeout: after(t.GameOver),
	})

	m.Add(fsm.Transition[State]{From: Loading, To: Intro, When: c.assetsReady})
	m.Add(fsm.Transition[State]{From: Intro, To: GettingReady, When: func() bool {
		return c.cfg.SkipIntro || c.takeStart() || c.introDone()
	}})
	m.Add(fsm.Transition[State]{From: Intro, To: GettingReady, OnTimeout: true})
	m.Add(fsm.Transition[State]{From: GettingReady, To: Playing, OnTimeout: true})
	m.Add(fsm.Transition[State]{From: GhostDying, To: Playing, OnTimeout: true})
	m.Add(fsm.Transition[State]{From: PlayerDying, To: Playing, OnTimeout: true,
		When: func() bool { return c.lives > 0 },
		Act:  c.resumeAfterDeath,
		Note: "next life",
	})
	m.Add(fsm.Transition[State]{From: PlayerDying, To: GameOver, OnTimeout: true})
	m.Add(fsm.Transition[State]{From: ChangingLevel, To: Playing, OnTimeout: true})
	m.Add(fsm.Transition[State]{From: GameOver, To: GettingReady, When: c.takeStart, Note: "start requested"})
	m.Add(fsm.Transition[State]{From: GameOver, To: Intro, OnTimeout: true})
}

// Update advances the game by one tick. It returns the first agent error of
// the tick.
func (c *Controller) Update() error {
	c.err = nil
	c.fsm.Update()
	return c.err
}

func (c *Controller) try(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Controller) newGame() {
	c.session = uuid.New()
	c.log = c.baseLog.WithField("session", c.session.String())
	c.score, c.lives = 0, c.cfg.Lives
	c.levelCounter = nil
	c.recordAnnounced = false
	c.start = false
	if err := c.tracker.Load(); err != nil {
		c.log.WithError(err).Error("loading high score failed")
	}
	c.startLevel(c.cfg.StartLevel)
	c.log.WithField("record", c.tracker.Record().Points).Info("new game")
}

func (c *Controller) startLevel(n int) {
	params, clamped := c.table.Row(n)
	if clamped && !c.clampWarned {
		c.clampWarned = true
		c.log.WithField("level", n).WithField("rows", c.table.Len()).Warn("level beyond table, using last row")
	}
	c.level, c.params = n, params
	c.log = c.log.WithField("level", n)

	c.world.RestoreFood()
	c.eaten = 0
	c.kills, c.killsThisLevel = 0, 0
	c.player.Params = params
	for _, p := range c.pursuers {
		p.Params = params
	}
	c.madness.Params = params
	c.madness.Reset()
	c.doorMan.StartLevel(n)
	c.bonus.Deactivate()
	c.levelCounter = append(c.levelCounter, params.Bonus)
	if len(c.levelCounter) > levelCounterSize {
		c.levelCounter = c.levelCounter[len(c.levelCounter)-levelCounterSize:]
	}
	c.resetAgents()
	c.log.Info("level started")
}

func (c *Controller) resetAgents() {
	c.player.Reset()
	for _, p := range c.pursuers {
		p.Reset()
	}
	c.schedule.Start(PhasesFor(c.cfg.Schedule, c.level))
	c.events.Clear()
	c.playerVisible, c.pursuersVisible = true, true
	c.mazeFlashing = false
}

func (c *Controller) playing() {
	if c.schedule.Update(c.player.Power() > 0) {
		c.log.WithField("phase", c.schedule.Phase()).Debug("attack phase changed")
	}
	c.doorMan.Update()
	c.bonus.Update()
	c.madness.Update()

	c.try(c.player.Update(c))
	for _, p := range c.pursuers {
		c.try(p.Update(c))
	}
	c.detectContacts()
	c.dispatch()
}

func (c *Controller) ghostDying() {
	for _, p := range c.pursuers {
		if p.Is(actor.Killed, actor.EnteringHouse) {
			c.try(p.Update(c))
		}
	}
}

func (c *Controller) enterPlayerDying() {
	c.lives--
	c.player.Kill()
	c.madness.Suspend()
	c.doorMan.LifeLost()
	c.log.WithField("lives", c.lives).Info("life lost")
}

func (c *Controller) playerDying() {
	if c.fsm.Ticks() == c.cfg.Timing.PlayerHide {
		c.pursuersVisible = false
		c.bonus.Deactivate()
	}
	c.try(c.player.Update(c))
}

func (c *Controller) resumeAfterDeath() {
	c.bonus.Deactivate()
	c.resetAgents()
}

func (c *Controller) enterChangingLevel() {
	c.flashTicks = c.params.Flashes * c.cfg.Timing.Flash
	c.player.LosePower()
	c.bonus.Deactivate()
	c.log.WithField("score", c.score).Info("level completed")
}

func (c *Controller) changingLevel() {
	t := c.cfg.Timing
	ticks := c.fsm.Ticks()
	flashEnd := t.LevelChangeWait + c.flashTicks
	if ticks == t.LevelChangeWait {
		c.mazeFlashing = true
		c.pursuersVisible = false
	}
	if ticks == flashEnd {
		c.startLevel(c.level + 1)
		c.pursuersVisible = false
	}
	if ticks == flashEnd+t.LevelResume {
		c.pursuersVisible = true
	}
}

func (c *Controller) enterGameOver() {
	c.playerVisible = false
	if err := c.tracker.Save(); err != nil {
		c.log.WithError(err).Error("saving high score at game over failed")
	}
	c.log.WithField("score", c.score).Info("game over")
}

// houseEmptied reports whether the last pursuer of the roster is out.
func (c *Controller) houseEmptied() bool {
	return !c.pursuers[len(c.pursuers)-1].Is(actor.Locked, actor.LeavingHouse)
}

func (c *Controller) takeStart() bool {
	if !c.start {
		return false
	}
	c.start = false
	return true
}

func (c *Controller) useAutopilot(on bool) {
	c.demo = on
	if on {
		steering.Reset(c.autopilot)
		c.player.Steering = c.autopilot
		return
	}
	c.player.Steering = c.keyboard
}

// SetIntent sets the direction the player turns to at the next opportunity.
// None keeps the previous wish.
func (c *Controller) SetIntent(d world.Direction) {
	c.intent = d
}

// RequestStart starts a game from the intro or the game over screen.
func (c *Controller) RequestStart() {
	c.start = true
}

// SetLevelTable replaces the difficulty table from the next level on.
func (c *Controller) SetLevelTable(t level.Table) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	c.table = t
	c.clampWarned = false
	c.log.WithField("rows", t.Len()).Info("level table replaced")
	return nil
}

// Close writes a pending high score.
func (c *Controller) Close() error {
	return c.tracker.Save()
}

func (c *Controller) State() State            { return c.fsm.Current() }
func (c *Controller) Is(states ...State) bool { return c.fsm.Is(states...) }
func (c *Controller) Score() int              { return c.score }
func (c *Controller) Lives() int              { return c.lives }
func (c *Controller) Level() int              { return c.level }
func (c *Controller) Session() uuid.UUID      { return c.session }
func (c *Controller) Config() Config          { return c.cfg }

// World implements steering.Board. Callers outside the game must treat it as
// read-only.
func (c *Controller) World() *world.World { return c.world }

func (c *Controller) PlayerTile() world.Tile     { return c.player.Tile() }
func (c *Controller) PlayerDir() world.Direction { return c.player.MoveDir }

func (c *Controller) PursuerTile(i int) world.Tile {
	if i < 0 || i >= len(c.pursuers) {
		return c.player.Tile()
	}
	return c.pursuers[i].Tile()
}

package game

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/world"
	"gopkg.in/yaml.v3"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := LoadConfig(DefaultConfig)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.SkipIntro = true
	cfg.Timing.Ready = 1
	return cfg
}

func newTestController(t *testing.T, cfg Config, opts ...Option) (*Controller, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	opts = append([]Option{
		WithListener(rec),
		WithRand(rand.New(rand.NewSource(1))),
		WithHiscoreStore(&hiscore.MemoryStore{}),
	}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, rec
}

func update(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Update(); err != nil {
		t.Fatalf("update in %s: %v", c.State(), err)
	}
}

// runUntil updates c until cond holds and returns the number of ticks it took.
func runUntil(t *testing.T, c *Controller, limit int, cond func() bool) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return i
		}
		update(t, c)
	}
	if !cond() {
		t.Fatalf("condition not reached within %d ticks, state %s", limit, c.State())
	}
	return limit
}

func playing(t *testing.T, cfg Config, opts ...Option) (*Controller, *Recorder) {
	t.Helper()
	c, rec := newTestController(t, cfg, opts...)
	runUntil(t, c, 100, func() bool { return c.Is(Playing) })
	return c, rec
}

// roaming waits for the lead pursuer to leave the house.
func roaming(t *testing.T, c *Controller) *actor.Pursuer {
	t.Helper()
	lead := c.pursuers[0]
	runUntil(t, c, 100, func() bool { return lead.Is(actor.Scattering, actor.Chasing) })
	return lead
}

func eat(c *Controller, tile world.Tile) {
	c.events.Push(event.Food(tile, c.world.ContainsEnergizer(tile)))
	c.dispatch()
}

func pellets(c *Controller) []world.Tile {
	var tiles []world.Tile
	for _, tile := range c.world.FoodTiles() {
		if c.world.ContainsPellet(tile) {
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

func TestStartupReachesPlaying(t *testing.T) {
	c, rec := playing(t, testConfig(t))

	want := []State{Loading, Intro, GettingReady, Playing}
	if len(rec.Entered) != len(want) {
		t.Fatalf("expected states %v, got %v", want, rec.Entered)
	}
	for i, s := range want {
		if rec.Entered[i] != s {
			t.Fatalf("expected state %d to be %s, got %s", i, s, rec.Entered[i])
		}
	}
	if c.Lives() != 3 || c.Score() != 0 || c.Level() != 1 {
		t.Fatalf("expected a fresh game, got lives %d score %d level %d", c.Lives(), c.Score(), c.Level())
	}
	if !c.player.Is(actor.Running) {
		t.Fatalf("expected the player to run, got %s", c.player.State())
	}
}

func TestIntroWaitsForStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkipIntro = false
	c, _ := newTestController(t, cfg)

	update(t, c)
	for i := 0; i < 10; i++ {
		update(t, c)
	}
	if !c.Is(Intro) {
		t.Fatalf("expected to stay in the intro, got %s", c.State())
	}
	c.RequestStart()
	update(t, c)
	if !c.Is(GettingReady) {
		t.Fatalf("expected a start request to end the intro, got %s", c.State())
	}
}

func TestLoadingWaitsForAssets(t *testing.T) {
	ready := false
	c, _ := newTestController(t, testConfig(t), WithAssetsReady(func() bool { return ready }))
	for i := 0; i < 5; i++ {
		update(t, c)
	}
	if !c.Is(Loading) {
		t.Fatalf("expected to stay loading, got %s", c.State())
	}
	ready = true
	update(t, c)
	if !c.Is(Intro) {
		t.Fatalf("expected the intro once assets are ready, got %s", c.State())
	}
}

func TestFoodCountAndElroyThreshold(t *testing.T) {
	c, _ := playing(t, testConfig(t))
	threshold := c.params.Elroy1DotsLeft
	if threshold != 20 {
		t.Fatalf("expected the level 1 threshold 20, got %d", threshold)
	}

	for _, tile := range pellets(c) {
		eat(c, tile)
		if got, want := c.world.FoodRemaining(), c.world.TotalFood()-c.eaten; got != want {
			t.Fatalf("expected %d food left, got %d", want, got)
		}
		left := c.world.FoodRemaining()
		if left > threshold && c.madness.State() != actor.Healthy {
			t.Fatalf("expected healthy with %d food left, got %s", left, c.madness.State())
		}
		if left == threshold {
			if c.madness.State() != actor.Elroy1 {
				t.Fatalf("expected elroy1 at %d food left, got %s", left, c.madness.State())
			}
			return
		}
	}
	t.Fatalf("never reached %d food left", threshold)
}

func TestBonusAppearsAfterSeventyBites(t *testing.T) {
	c, rec := playing(t, testConfig(t))
	for i, tile := range pellets(c) {
		if i == 69 {
			break
		}
		eat(c, tile)
	}
	if c.bonus.Edible() {
		t.Fatalf("expected no bonus after 69 pellets")
	}
	eat(c, pellets(c)[0])
	if !c.bonus.Edible() {
		t.Fatalf("expected the bonus after 70 pellets")
	}
	remaining := c.bonus.StateRemaining()
	if remaining < 540 || remaining > 600 {
		t.Fatalf("expected 9 to 10 seconds of bonus, got %d ticks", remaining)
	}

	score := c.Score()
	c.events.Push(event.Bonus(c.bonus.Tile()))
	c.dispatch()
	if got := c.Score() - score; got != 100 {
		t.Fatalf("expected cherries worth 100, got %d", got)
	}
	if rec.Count(event.BonusFound) != 1 {
		t.Fatalf("expected one bonus notification, got %d", rec.Count(event.BonusFound))
	}
	if c.bonus.State() != actor.BonusConsumed {
		t.Fatalf("expected the bonus consumed, got %s", c.bonus.State())
	}
}

func TestDeathResumesAtSpawn(t *testing.T) {
	c, rec := playing(t, testConfig(t))
	lead := roaming(t, c)

	c.events.Push(event.Collision(lead.Index, c.player.Tile()))
	c.dispatch()

	if !c.Is(PlayerDying) {
		t.Fatalf("expected player dying, got %s", c.State())
	}
	if c.Lives() != 2 {
		t.Fatalf("expected 2 lives, got %d", c.Lives())
	}
	if !c.player.Is(actor.Dying) {
		t.Fatalf("expected the player dying, got %s", c.player.State())
	}

	ticks := runUntil(t, c, 1000, func() bool { return !c.Is(PlayerDying) })
	if ticks != c.cfg.Timing.PlayerDying {
		t.Fatalf("expected %d dying ticks, got %d", c.cfg.Timing.PlayerDying, ticks)
	}
	if !c.Is(Playing) {
		t.Fatalf("expected to resume playing, got %s", c.State())
	}
	spawn := c.world.PlayerSpawn()
	if c.player.X != spawn.X() || c.player.Y != spawn.Y() {
		t.Fatalf("expected the player at %v,%v, got %v,%v", spawn.X(), spawn.Y(), c.player.X, c.player.Y)
	}
	for _, p := range c.pursuers {
		if !p.Is(actor.Locked) {
			t.Fatalf("expected %s locked after the reset, got %s", p.Name, p.State())
		}
		seat := c.world.House().Seat(p.Seat)
		if p.X != seat.X() || p.Y != seat.Y() {
			t.Fatalf("expected %s on its seat", p.Name)
		}
	}
	if rec.Count(event.PlayerKilled) != 1 {
		t.Fatalf("expected one player killed notification, got %d", rec.Count(event.PlayerKilled))
	}
}

func TestIgnoredEventsAreNotHeard(t *testing.T) {
	c, rec := playing(t, testConfig(t))

	score := c.Score()
	c.events.Push(event.Bonus(c.player.Tile()))
	c.dispatch()
	if rec.Count(event.BonusFound) != 0 {
		t.Fatalf("expected no notification for a bonus that is not there, got %d", rec.Count(event.BonusFound))
	}
	if c.Score() != score {
		t.Fatalf("expected score %d, got %d", score, c.Score())
	}

	c.Debug(NextLevel)
	if !c.Is(ChangingLevel) {
		t.Fatalf("expected changing level, got %s", c.State())
	}
	lead := c.pursuers[0]
	evt := event.Of(event.PlayerKilled)
	evt.Pursuer, evt.Tile = lead.Index, lead.Tile()
	c.events.Push(evt)
	c.events.Push(event.Of(event.LevelCompleted))
	c.dispatch()
	if rec.Count(event.PlayerKilled) != 0 {
		t.Fatalf("expected no player killed notification, got %d", rec.Count(event.PlayerKilled))
	}
	if rec.Count(event.LevelCompleted) != 1 {
		t.Fatalf("expected one level completed, got %d", rec.Count(event.LevelCompleted))
	}
	if !c.Is(ChangingLevel) {
		t.Fatalf("expected changing level, got %s", c.State())
	}
}

func TestLastLifeEndsTheGame(t *testing.T) {
	cfg := testConfig(t)
	cfg.Lives = 1
	c, _ := playing(t, cfg)
	lead := roaming(t, c)

	c.events.Push(event.Collision(lead.Index, c.player.Tile()))
	c.dispatch()
	runUntil(t, c, 1000, func() bool { return !c.Is(PlayerDying) })
	if !c.Is(GameOver) {
		t.Fatalf("expected game over, got %s", c.State())
	}

	c.RequestStart()
	update(t, c)
	if !c.Is(GettingReady) {
		t.Fatalf("expected a new game on start, got %s", c.State())
	}
	if c.Lives() != 1 || c.Score() != 0 {
		t.Fatalf("expected lives and score reset, got %d and %d", c.Lives(), c.Score())
	}
}

func TestContactWithRoamingPursuer(t *testing.T) {
	c, _ := playing(t, testConfig(t))
	lead := roaming(t, c)

	lead.X, lead.Y = c.player.X, c.player.Y
	lead.EnteredNewTile = true
	c.detectContacts()
	if c.events.Len() != 1 {
		t.Fatalf("expected one contact, got %d", c.events.Len())
	}

	c.Debug(ToggleImmortal)
	c.dispatch()
	if !c.Is(Playing) || c.Lives() != 3 {
		t.Fatalf("expected an immortal player to survive, got %s with %d lives", c.State(), c.Lives())
	}

	lead.EnteredNewTile = false
	c.player.EnteredNewTile = false
	c.detectContacts()
	if c.events.Len() != 0 {
		t.Fatalf("expected no contact without a tile change, got %d", c.events.Len())
	}
}

func TestKillScoring(t *testing.T) {
	c, rec := playing(t, testConfig(t))
	lead := roaming(t, c)

	eat(c, world.T(1, 6))
	if !lead.Is(actor.Frightened) {
		t.Fatalf("expected the lead frightened, got %s", lead.State())
	}
	if rec.Count(event.PowerGained) != 1 {
		t.Fatalf("expected power gained")
	}

	c.events.Push(event.Collision(lead.Index, lead.Tile()))
	c.dispatch()
	if !c.Is(GhostDying) {
		t.Fatalf("expected ghost dying, got %s", c.State())
	}
	if !lead.Is(actor.Killed) || lead.Bounty != 200 {
		t.Fatalf("expected a 200 bounty, got %s with %d", lead.State(), lead.Bounty)
	}

	for i := 0; i < 4; i++ {
		c.killPursuer(lead)
		c.dispatch()
	}
	var bounties []int
	for _, evt := range rec.Events {
		if evt.Kind == event.PursuerKilled {
			bounties = append(bounties, evt.Points)
		}
	}
	want := []int{200, 400, 800, 1600, 1600}
	for i, b := range want {
		if bounties[i] != b {
			t.Fatalf("expected bounties %v, got %v", want, bounties)
		}
	}

	eat(c, world.T(26, 6))
	c.killPursuer(lead)
	if lead.Bounty != 200 {
		t.Fatalf("expected a new energizer to reset the bounty, got %d", lead.Bounty)
	}
}

func TestGhostDyingReturnsToPlaying(t *testing.T) {
	c, _ := playing(t, testConfig(t))
	lead := roaming(t, c)
	eat(c, world.T(1, 6))
	c.events.Push(event.Collision(lead.Index, lead.Tile()))
	c.dispatch()

	if c.playerVisible {
		t.Fatalf("expected the player hidden while a pursuer dies")
	}
	ticks := runUntil(t, c, 200, func() bool { return c.Is(Playing) })
	if ticks != c.cfg.Timing.GhostDying {
		t.Fatalf("expected %d ticks, got %d", c.cfg.Timing.GhostDying, ticks)
	}
	if !c.playerVisible {
		t.Fatalf("expected the player visible again")
	}
}

func TestLevelChange(t *testing.T) {
	c, rec := playing(t, testConfig(t))
	c.Debug(NextLevel)
	if !c.Is(ChangingLevel) {
		t.Fatalf("expected changing level, got %s", c.State())
	}
	if c.world.FoodRemaining() != 0 {
		t.Fatalf("expected the maze eaten")
	}
	tm := c.cfg.Timing
	want := tm.LevelChangeWait + 5*tm.Flash + tm.LevelComplete
	if got := c.fsm.Duration(); got != want {
		t.Fatalf("expected the level change to last %d ticks, got %d", want, got)
	}

	if got := runUntil(t, c, 2000, func() bool { return c.Is(Playing) }); got != want {
		t.Fatalf("expected playing after %d ticks, got %d", want, got)
	}
	for _, p := range c.Snapshot().Pursuers {
		if !p.Visible {
			t.Fatalf("expected %s visible once the next level starts", p.Name)
		}
	}
	if c.Level() != 2 {
		t.Fatalf("expected level 2, got %d", c.Level())
	}
	if c.world.FoodRemaining() != c.world.TotalFood() {
		t.Fatalf("expected the food restored, got %d of %d", c.world.FoodRemaining(), c.world.TotalFood())
	}
	if rec.Count(event.LevelCompleted) != 1 {
		t.Fatalf("expected one level completed, got %d", rec.Count(event.LevelCompleted))
	}
	if got := c.Snapshot().LevelCounter; len(got) != 2 || got[1] != "strawberry" {
		t.Fatalf("expected the strawberry counted, got %v", got)
	}

	// the second change uses the same choreography
	c.Debug(NextLevel)
	if got := runUntil(t, c, 2000, func() bool { return c.Is(Playing) }); got != want {
		t.Fatalf("expected the second level change to take %d ticks, got %d", want, got)
	}
	for _, p := range c.Snapshot().Pursuers {
		if !p.Visible {
			t.Fatalf("expected %s visible on level 3", p.Name)
		}
	}
}

func TestExtraLifeOnce(t *testing.T) {
	c, rec := playing(t, testConfig(t))
	c.addPoints(10000)
	c.addPoints(5000)
	c.dispatch()
	if c.Lives() != 4 {
		t.Fatalf("expected 4 lives, got %d", c.Lives())
	}
	if rec.Count(event.ExtraLife) != 1 {
		t.Fatalf("expected one extra life, got %d", rec.Count(event.ExtraLife))
	}
}

func TestNewRecordIsSavedAndAnnouncedOnce(t *testing.T) {
	store := &hiscore.MemoryStore{}
	if err := store.Save(hiscore.Record{Points: 100, Level: 1}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	c, rec := playing(t, testConfig(t), WithHiscoreStore(store))

	for _, tile := range pellets(c)[:20] {
		eat(c, tile)
	}
	if rec.Count(event.NewRecord) != 1 {
		t.Fatalf("expected one new record, got %d", rec.Count(event.NewRecord))
	}
	if evt, _ := rec.Last(event.NewRecord); evt.Points != 110 {
		t.Fatalf("expected the record announced at 110, got %d", evt.Points)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Points != 200 {
		t.Fatalf("expected 200 stored, got %d", got.Points)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDemoAutopilotEats(t *testing.T) {
	cfg := testConfig(t)
	cfg.Demo = true
	cfg.Immortal = true
	c, _ := playing(t, cfg)

	total := c.world.TotalFood()
	runUntil(t, c, 3000, func() bool { return c.world.FoodRemaining() < total-20 })
	if got, want := c.world.FoodRemaining(), total-c.eaten; got != want {
		t.Fatalf("expected %d food left, got %d", want, got)
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	cfg := testConfig(t)
	cfg.Demo = true
	c, _ := playing(t, cfg)

	for i := 0; i < 20000; i++ {
		update(t, c)
		if c.Is(Playing) {
			if got, want := c.world.FoodRemaining(), c.world.TotalFood()-c.eaten; got != want {
				t.Fatalf("tick %d: expected %d food left, got %d", i, want, got)
			}
		}
		for _, p := range c.pursuers {
			if tile := p.Tile(); c.world.IsWall(tile) {
				t.Fatalf("tick %d: %s inside a wall at %s", i, p.Name, tile)
			}
		}
		if c.Is(GameOver) {
			c.RequestStart()
		}
	}
}

func TestSnapshotSerializes(t *testing.T) {
	c, _ := playing(t, testConfig(t))
	s := c.Snapshot()
	if s.State != Playing || len(s.Pursuers) != 4 || s.FoodRemaining != len(s.Food) {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(data), "state: playing") {
		t.Fatalf("expected the state tag in yaml, got\n%s", data)
	}
	data, err = json.Marshal(s)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(data), `"move_dir":"left"`) {
		t.Fatalf("expected directions as text, got %s", data)
	}
}

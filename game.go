package main

import (
	"errors"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/game"
	"github.com/milk9111/mazechase/level"
	"github.com/milk9111/mazechase/prefabs"
	"github.com/milk9111/mazechase/spectate"
	"github.com/sirupsen/logrus"
)

const (
	// scale is the number of screen pixels per maze pixel.
	scale = 3
	// hudRows of tiles sit above the maze, footRows below it.
	hudRows  = 3
	footRows = 2
)

// Game adapts the controller to ebiten's loop.
type Game struct {
	frames int

	ctrl    *game.Controller
	hub     *spectate.Hub
	watcher *prefabs.Watcher
	log     *logrus.Entry

	paused  bool
	pauseUI *ebitenui.UI

	input  *Input
	tweens *Tweens
	last   game.Snapshot
}

func NewGame(cfg game.Config, hub *spectate.Hub, log *logrus.Entry, opts ...game.Option) (*Game, error) {
	g := &Game{
		hub:    hub,
		log:    log,
		input:  NewInput(),
		tweens: NewTweens(),
	}

	ctrl, err := game.New(cfg, append(opts, game.WithListener(g))...)
	if err != nil {
		return nil, err
	}
	g.ctrl = ctrl
	g.last = ctrl.Snapshot()

	// Tuning files are only watched when running from the source tree.
	if w, err := prefabs.NewWatcher("prefabs"); err != nil {
		log.WithError(err).Debug("prefab hot reload disabled")
	} else {
		g.watcher = w
	}

	g.pauseUI = NewPauseUI(g)
	g.tweens.Blink()
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if g.input.PausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.reload()

	if d, ok := g.input.Direction(); ok {
		g.ctrl.SetIntent(d)
	}
	if g.input.StartPressed() {
		g.ctrl.RequestStart()
	}

	if err := g.ctrl.Update(); err != nil {
		return err
	}
	g.tweens.Update(1.0 / common.TicksPerSecond)

	g.last = g.ctrl.Snapshot()
	if g.hub != nil {
		g.hub.Publish(g.last)
	}
	return nil
}

// reload applies edits of the level table made while the game runs.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Poll() {
		name := change.Name
		if change.Kind != prefabs.Tuning || name != g.ctrl.Config().LevelTable {
			continue
		}
		table, err := level.Load(name)
		if err == nil {
			err = g.ctrl.SetLevelTable(table)
		}
		if err != nil {
			g.log.WithError(err).WithField("file", name).Warn("level table not reloaded")
			continue
		}
		g.log.WithField("file", name).Info("level table reloaded")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawMaze(screen, g.ctrl.World(), &g.last, g.tweens)
	drawAgents(screen, &g.last, g.tweens)
	drawHUD(screen, &g.last, g.frames)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) StateEntered(game.State) {}
func (g *Game) StateExited(game.State)  {}

func (g *Game) Event(evt event.Event) {
	if evt.Kind == event.PursuerKilled || evt.Kind == event.BonusFound {
		g.tweens.Pop(evt.Tile)
	}
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.hub != nil {
		g.hub.Close()
	}
	errs = append(errs, g.ctrl.Close())
	return errors.Join(errs...)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w := g.ctrl.World()
	return float64(w.Cols() * common.TS * scale), float64((w.Rows() + hudRows + footRows) * common.TS * scale)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

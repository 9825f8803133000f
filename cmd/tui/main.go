// Command tui plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/config"
	"github.com/milk9111/mazechase/game"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/level"
	"github.com/milk9111/mazechase/prefabs"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

var (
	wallStyle   = tcell.StyleDefault.Background(tcell.ColorNavy)
	doorStyle   = tcell.StyleDefault.Foreground(tcell.ColorPink)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 218, 185))
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	scaredStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	bonusStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)

	pursuerStyles = map[string]tcell.Style{
		"blinky": tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		"pinky":  tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
		"inky":   tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
		"clyde":  tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	}
)

type view struct {
	screen  tcell.Screen
	ctrl    *game.Controller
	watcher *prefabs.Watcher
	log     *logrus.Entry
}

func main() {
	logFile := flag.String("log", "", "write logs to this file")
	level := flag.Int("level", 0, "first level of a new game")
	demo := flag.Bool("demo", false, "let the autopilot play")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	env := config.Load(logger.WithField("component", "config"))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = config.NewLogger(env.LogLevel)
		logger.SetOutput(f)
	}
	if *level > 0 {
		env.StartLevel = *level
	}
	env.Demo = env.Demo || *demo

	cfg, err := game.LoadConfig(game.DefaultConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctrl, err := game.New(cfg.WithEnv(env),
		game.WithLogger(logger.WithField("component", "game")),
		game.WithHiscoreStore(hiscore.FileStore{Path: env.HiscoreFile}),
		game.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new game: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := &view{screen: screen, ctrl: ctrl, log: logger.WithField("component", "tui")}
	if w, err := prefabs.NewWatcher("prefabs"); err == nil {
		v.watcher = w
		defer w.Close()
	}
	runErr := v.run()
	screen.Fini()

	if err := ctrl.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "save hiscore: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}

func (v *view) run() error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return nil
			}
		case <-ticker.C:
			v.reload()
			if err := v.ctrl.Update(); err != nil {
				return err
			}
			v.draw()
		}
	}
}

// pollEvents forwards events to out until poll returns nil, which it does once
// the screen is finalized, or until done is closed.
func pollEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (v *view) reload() {
	if v.watcher == nil {
		return
	}
	for _, change := range v.watcher.Poll() {
		name := change.Name
		if change.Kind != prefabs.Tuning || name != v.ctrl.Config().LevelTable {
			continue
		}
		table, err := level.Load(name)
		if err == nil {
			err = v.ctrl.SetLevelTable(table)
		}
		if err != nil {
			v.log.WithError(err).Warn("level table not reloaded")
		}
	}
}

func (v *view) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.ctrl.SetIntent(world.Up)
		case tcell.KeyDown:
			v.ctrl.SetIntent(world.Down)
		case tcell.KeyLeft:
			v.ctrl.SetIntent(world.Left)
		case tcell.KeyRight:
			v.ctrl.SetIntent(world.Right)
		case tcell.KeyEnter:
			v.ctrl.RequestStart()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'i':
				v.ctrl.Debug(game.ToggleImmortal)
			case 'd':
				v.ctrl.Debug(game.ToggleDemo)
			case 'n':
				v.ctrl.Debug(game.NextLevel)
			case ' ':
				v.ctrl.RequestStart()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// put draws one tile as two terminal cells so the maze keeps its aspect.
func (v *view) put(t world.Tile, s string, style tcell.Style) {
	x, y := t.Col*2, t.Row+2
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *view) draw() {
	s := v.ctrl.Snapshot()
	w := v.ctrl.World()
	v.screen.Clear()

	v.text(0, 0, fmt.Sprintf("SCORE %-7d HIGH %-7d LEVEL %d", s.Score, max(s.Score, s.Hiscore.Points), s.Level), textStyle)

	walls := wallStyle
	if s.MazeFlashing && (s.StateTicks/12)%2 == 0 {
		walls = tcell.StyleDefault.Background(tcell.ColorWhite)
	}
	for row := 0; row < w.Rows(); row++ {
		for col := 0; col < w.Cols(); col++ {
			t := world.T(col, row)
			switch {
			case w.IsWall(t):
				v.put(t, "  ", walls)
			case w.IsDoor(t):
				v.put(t, "--", doorStyle)
			}
		}
	}
	for _, t := range s.Food {
		if w.IsEnergizerTile(t) {
			v.put(t, "()", foodStyle)
		} else {
			v.put(t, " .", foodStyle)
		}
	}

	if s.Bonus.Symbol != "" {
		label := "%%"
		if s.Bonus.Value > 0 && s.Bonus.State == actor.BonusConsumed {
			label = fmt.Sprint(s.Bonus.Value)
		}
		v.put(s.Bonus.Tile, label, bonusStyle)
	}
	for _, p := range s.Pursuers {
		if !p.Visible {
			continue
		}
		style, ok := pursuerStyles[p.Name]
		if !ok {
			style = textStyle
		}
		glyph := "MM"
		switch {
		case p.Bounty > 0:
			glyph, style = fmt.Sprint(p.Bounty), textStyle
		case p.Mode == "frightened":
			style = scaredStyle
			if p.Flashing && (s.StateTicks/10)%2 == 0 {
				style = textStyle
			}
		case p.Mode == "dead" || p.Mode == "entering-house":
			glyph, style = "\"\"", textStyle
		}
		v.put(p.Tile, glyph, style)
	}
	if s.Player.Visible {
		v.put(s.Player.Tile, "<>", playerStyle)
	}

	bottom := w.Rows() + 2
	switch s.State {
	case game.Intro:
		v.text(0, bottom, "PRESS ENTER TO START", textStyle)
	case game.GettingReady:
		v.text(0, bottom, "READY!", playerStyle)
	case game.GameOver:
		v.text(0, bottom, "GAME OVER - PRESS ENTER", bonusStyle)
	default:
		v.text(0, bottom, fmt.Sprintf("LIVES %d  %v", s.Lives, s.LevelCounter), textStyle)
	}

	v.screen.Show()
}

// Command headless runs the game without a window, letting the autopilot
// play. It is used for soak runs and to feed the spectator view.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/config"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/game"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/spectate"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := config.NewLogger("info")
	env := config.Load(logger.WithField("component", "config"))

	ticks := flag.Int("ticks", 60*60*10, "number of ticks to run, 0 runs until game over")
	realtime := flag.Bool("realtime", false, "run at 60 ticks per second")
	seed := flag.Int64("seed", env.Seed, "random seed, 0 picks one from the clock")
	immortal := flag.Bool("immortal", env.Immortal, "pursuers cannot kill the player")
	spectateAddr := flag.String("spectate", env.SpectateAddr, "listen address of the spectator feed")
	logLevel := flag.String("log-level", env.LogLevel, "log level")
	flag.Parse()

	logger = config.NewLogger(*logLevel)
	log := logger.WithField("component", "headless")

	env.Demo = true
	env.SkipIntro = true
	env.Immortal = *immortal
	cfg, err := game.LoadConfig(game.DefaultConfig)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats := &game.Recorder{}
	opts := []game.Option{
		game.WithLogger(logger.WithField("component", "game")),
		game.WithHiscoreStore(hiscore.FileStore{Path: env.HiscoreFile}),
		game.WithRand(rand.New(rand.NewSource(*seed))),
		game.WithListener(stats),
	}

	var hub *spectate.Hub
	if *spectateAddr != "" {
		hub = spectate.NewHub(logger.WithField("component", "spectate"))
		opts = append(opts, game.WithListener(hub))
		go func() {
			if err := hub.ListenAndServe(ctx, *spectateAddr); err != nil {
				log.WithError(err).Error("spectator feed stopped")
			}
		}()
		*realtime = true
	}

	ctrl, err := game.New(cfg.WithEnv(env), opts...)
	if err != nil {
		log.WithError(err).Fatal("new game")
	}

	var tick <-chan time.Time
	if *realtime {
		ticker := time.NewTicker(time.Second / common.TicksPerSecond)
		defer ticker.Stop()
		tick = ticker.C
	}

	n := 0
	for ; *ticks == 0 || n < *ticks; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			break
		}
		if err := ctrl.Update(); err != nil {
			log.WithError(err).Error("update")
			break
		}
		if hub != nil {
			hub.Publish(ctrl.Snapshot())
		}
		if *ticks == 0 && ctrl.Is(game.GameOver) {
			break
		}
	}

	if err := ctrl.Close(); err != nil {
		log.WithError(err).Warn("save hiscore")
	}
	if hub != nil {
		hub.Close()
	}

	log.WithFields(logrus.Fields{
		"ticks":   n,
		"seed":    *seed,
		"level":   ctrl.Level(),
		"score":   ctrl.Score(),
		"lives":   ctrl.Lives(),
		"food":    stats.Count(event.FoodFound),
		"kills":   stats.Count(event.PursuerKilled),
		"deaths":  stats.Count(event.PlayerKilled),
		"levels":  stats.Count(event.LevelCompleted),
		"session": ctrl.Session(),
	}).Info("run finished")
}

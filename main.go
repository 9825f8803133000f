package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mazechase/config"
	"github.com/milk9111/mazechase/game"
	"github.com/milk9111/mazechase/hiscore"
	"github.com/milk9111/mazechase/sound"
	"github.com/milk9111/mazechase/spectate"
)

func main() {
	logger := config.NewLogger("info")
	env := config.Load(logger.WithField("component", "config"))

	level := flag.Int("level", env.StartLevel, "first level of a new game")
	immortal := flag.Bool("immortal", env.Immortal, "pursuers cannot kill the player")
	demo := flag.Bool("demo", env.Demo, "let the autopilot play")
	skipIntro := flag.Bool("skip-intro", env.SkipIntro, "start the first game right away")
	hiscoreFile := flag.String("hiscore", env.HiscoreFile, "high-score file")
	spectateAddr := flag.String("spectate", env.SpectateAddr, "listen address of the spectator feed")
	logLevel := flag.String("log-level", env.LogLevel, "log level")
	mute := flag.Bool("mute", false, "disable sound")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	env.StartLevel = *level
	env.Immortal = *immortal
	env.Demo = *demo
	env.SkipIntro = *skipIntro
	env.HiscoreFile = *hiscoreFile
	env.SpectateAddr = *spectateAddr
	logger = config.NewLogger(*logLevel)
	entry := logger.WithField("component", "main")

	cfg, err := game.LoadConfig(game.DefaultConfig)
	if err != nil {
		log.Fatal(err)
	}
	cfg = cfg.WithEnv(env)

	seed := env.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []game.Option{
		game.WithLogger(logger.WithField("component", "game")),
		game.WithHiscoreStore(hiscore.FileStore{Path: env.HiscoreFile}),
		game.WithRand(rand.New(rand.NewSource(seed))),
	}

	if !*mute {
		synth := sound.New(logger.WithField("component", "sound"))
		if err := synth.Init(); err != nil {
			entry.WithError(err).Warn("sound disabled")
		} else {
			defer synth.Close()
			opts = append(opts, game.WithListener(synth))
		}
	}

	var hub *spectate.Hub
	if env.SpectateAddr != "" {
		hub = spectate.NewHub(logger.WithField("component", "spectate"))
		opts = append(opts, game.WithListener(hub))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := hub.ListenAndServe(ctx, env.SpectateAddr); err != nil {
				entry.WithError(err).Error("spectator feed stopped")
			}
		}()
		entry.WithField("addr", env.SpectateAddr).Info("spectator feed listening")
	}

	g, err := NewGame(cfg, hub, logger.WithField("component", "frontend"), opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := g.LayoutF(0, 0)
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle("mazechase")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

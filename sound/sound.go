package sound

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/game"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate = beep.SampleRate(44100)
	maxPlayed  = 64
)

type Cue int

const (
	Chomp Cue = iota
	Energizer
	BonusEaten
	PursuerEaten
	Death
	ExtraLife
	Ready
	LevelDone
)

var cueNames = [...]string{"chomp", "energizer", "bonus", "pursuer-eaten", "death", "extra-life", "ready", "level-done"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

type note struct {
	freq float64
	dur  time.Duration
}

var tunes = map[Cue][]note{
	Chomp:        {{520, 40 * time.Millisecond}, {390, 40 * time.Millisecond}},
	Energizer:    {{260, 60 * time.Millisecond}, {520, 60 * time.Millisecond}, {780, 80 * time.Millisecond}},
	BonusEaten:   {{660, 50 * time.Millisecond}, {880, 50 * time.Millisecond}, {1320, 90 * time.Millisecond}},
	PursuerEaten: {{1200, 40 * time.Millisecond}, {900, 40 * time.Millisecond}, {600, 40 * time.Millisecond}, {300, 80 * time.Millisecond}},
	Death:        {{880, 150 * time.Millisecond}, {830, 150 * time.Millisecond}, {780, 150 * time.Millisecond}, {740, 150 * time.Millisecond}, {700, 150 * time.Millisecond}, {660, 150 * time.Millisecond}, {220, 300 * time.Millisecond}},
	ExtraLife:    {{1046, 80 * time.Millisecond}, {0, 40 * time.Millisecond}, {1046, 80 * time.Millisecond}, {0, 40 * time.Millisecond}, {1046, 80 * time.Millisecond}},
	Ready:        {{494, 120 * time.Millisecond}, {988, 120 * time.Millisecond}, {740, 120 * time.Millisecond}, {622, 120 * time.Millisecond}, {988, 240 * time.Millisecond}},
	LevelDone:    {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1046, 200 * time.Millisecond}},
}

// Tune renders a cue as a finite stream.
func Tune(c Cue) (beep.Streamer, error) {
	notes, ok := tunes[c]
	if !ok {
		return nil, fmt.Errorf("sound: no tune for %s", c)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := tone(n)
		if err != nil {
			return nil, fmt.Errorf("sound: %s: %w", c, err)
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}

func tone(n note) (beep.Streamer, error) {
	samples := sampleRate.N(n.dur)
	if n.freq == 0 {
		return beep.Silence(samples), nil
	}
	sine, err := generators.SineTone(sampleRate, n.freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(samples, sine), nil
}

// Synth plays game notifications through the speaker. It implements
// game.Listener and stays silent until Init succeeds.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	siren  *beep.Ctrl
	fright *beep.Ctrl
	ready  bool
	volume float64

	// Played keeps the most recent cues, newest last.
	Played []Cue

	log *logrus.Entry
}

func New(log *logrus.Entry) *Synth {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = logrus.NewEntry(quiet)
	}
	s := &Synth{
		mixer:  &beep.Mixer{},
		volume: -1.5,
		log:    log.WithField("component", "sound"),
	}
	s.siren = &beep.Ctrl{Streamer: beep.Iterate(s.loop(220, 440)), Paused: true}
	s.fright = &beep.Ctrl{Streamer: beep.Iterate(s.loop(110, 150)), Paused: true}
	s.mixer.Add(s.siren, s.fright)
	return s
}

// loop returns an endless wailing phrase between two pitches.
func (s *Synth) loop(low, high float64) func() beep.Streamer {
	return func() beep.Streamer {
		up, err := tone(note{high, 180 * time.Millisecond})
		if err != nil {
			return nil
		}
		down, err := tone(note{low, 180 * time.Millisecond})
		if err != nil {
			return nil
		}
		return beep.Seq(up, down)
	}
}

// Init opens the audio device.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("sound: init speaker: %w", err)
	}
	speaker.Play(&effects.Volume{Streamer: s.mixer, Base: 2, Volume: s.volume})
	s.ready = true
	return nil
}

// Close silences everything.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}

func (s *Synth) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Played = append(s.Played, c)
	if len(s.Played) > maxPlayed {
		s.Played = s.Played[len(s.Played)-maxPlayed:]
	}
	if !s.ready {
		return
	}
	stream, err := Tune(c)
	if err != nil {
		s.log.WithError(err).Warn("cannot play cue")
		return
	}
	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()
}

func (s *Synth) StateEntered(st game.State) {
	switch st {
	case game.GettingReady:
		s.Play(Ready)
	case game.Playing:
		s.setLoop(s.siren, true)
	case game.ChangingLevel:
		s.Play(LevelDone)
	}
}

func (s *Synth) StateExited(st game.State) {
	if st == game.Playing {
		s.setLoop(s.siren, false)
		s.setLoop(s.fright, false)
	}
}

func (s *Synth) Event(evt event.Event) {
	switch evt.Kind {
	case event.FoodFound:
		if evt.Energizer {
			s.Play(Energizer)
		} else {
			s.Play(Chomp)
		}
	case event.PowerGained:
		s.setLoop(s.fright, true)
	case event.PowerLost:
		s.setLoop(s.fright, false)
	case event.BonusFound:
		s.Play(BonusEaten)
	case event.PursuerKilled:
		s.Play(PursuerEaten)
	case event.PlayerKilled:
		s.Play(Death)
	case event.ExtraLife:
		s.Play(ExtraLife)
	}
}

// Looping reports whether the siren and the fright loop are playing.
func (s *Synth) Looping() (siren, fright bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.siren.Paused, !s.fright.Paused
}

func (s *Synth) setLoop(ctrl *beep.Ctrl, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		speaker.Lock()
		defer speaker.Unlock()
	}
	ctrl.Paused = !on
}

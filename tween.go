package main

import (
	"github.com/milk9111/mazechase/world"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type tweenAction struct {
	onChange func(float32)
	onFinish func()
}

// Tweens drives the purely cosmetic animations of the frontend.
type Tweens struct {
	running map[*gween.Tween]tweenAction

	// blink is the alpha of energizers and of fading pursuers.
	blink float32
	// pops scales the score labels popping up where something was eaten.
	pops map[world.Tile]float32
}

func NewTweens() *Tweens {
	return &Tweens{
		running: make(map[*gween.Tween]tweenAction),
		blink:   1,
		pops:    make(map[world.Tile]float32),
	}
}

// Blink starts the endless energizer blink.
func (t *Tweens) Blink() {
	fadeOut := gween.New(1, 0.2, 0.2, ease.InOutSine)
	t.running[fadeOut] = tweenAction{
		onChange: func(v float32) { t.blink = v },
		onFinish: func() {
			fadeIn := gween.New(0.2, 1, 0.2, ease.InOutSine)
			t.running[fadeIn] = tweenAction{
				onChange: func(v float32) { t.blink = v },
				onFinish: t.Blink,
			}
		},
	}
}

// Pop shows a growing score label on tile for a second.
func (t *Tweens) Pop(tile world.Tile) {
	tw := gween.New(1, 1.6, 1, ease.OutBack)
	t.running[tw] = tweenAction{
		onChange: func(v float32) { t.pops[tile] = v },
		onFinish: func() { delete(t.pops, tile) },
	}
}

func (t *Tweens) Update(dt float32) {
	for tw, a := range t.running {
		curr, finished := tw.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			delete(t.running, tw)
			if a.onFinish != nil {
				a.onFinish()
			}
		}
	}
}

func (t *Tweens) BlinkAlpha() float32 { return t.blink }

// PopScale returns the label scale on tile, if a pop is running there.
func (t *Tweens) PopScale(tile world.Tile) (float32, bool) {
	s, ok := t.pops[tile]
	return s, ok
}

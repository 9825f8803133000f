package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/mazechase/actor"
	"github.com/milk9111/mazechase/common"
	"github.com/milk9111/mazechase/game"
	"github.com/milk9111/mazechase/world"
	"golang.org/x/image/colornames"
)

const ts = common.TS * scale

var pursuerColors = map[string]color.Color{
	"blinky": colornames.Red,
	"pinky":  colornames.Pink,
	"inky":   colornames.Cyan,
	"clyde":  colornames.Orange,
}

// screenXY converts maze pixels to screen pixels.
func screenXY(x, y float64) (float32, float32) {
	return float32(x * scale), float32((y + hudRows*common.TS) * scale)
}

func tileXY(t world.Tile) (float32, float32) {
	return screenXY(t.X(), t.Y())
}

func drawMaze(screen *ebiten.Image, w *world.World, s *game.Snapshot, tw *Tweens) {
	wallColor := color.Color(colornames.Mediumblue)
	if s.MazeFlashing && (s.StateTicks/12)%2 == 0 {
		wallColor = colornames.White
	}

	for row := 0; row < w.Rows(); row++ {
		for col := 0; col < w.Cols(); col++ {
			t := world.T(col, row)
			x, y := tileXY(t)
			switch {
			case w.IsWall(t):
				vector.FillRect(screen, x, y, ts, ts, wallColor, false)
			case w.IsDoor(t):
				vector.FillRect(screen, x, y+ts/2-scale, ts, 2*scale, colornames.Lightpink, false)
			}
		}
	}

	blink := tw.BlinkAlpha()
	for _, t := range s.Food {
		x, y := tileXY(t)
		cx, cy := x+ts/2, y+ts/2
		if w.IsEnergizerTile(t) {
			c := color.NRGBA{R: 0xff, G: 0xda, B: 0xb9, A: uint8(255 * blink)}
			vector.FillCircle(screen, cx, cy, ts/2-scale, c, true)
			continue
		}
		vector.FillRect(screen, cx-scale, cy-scale, 2*scale, 2*scale, colornames.Peachpuff, false)
	}
}

func drawAgents(screen *ebiten.Image, s *game.Snapshot, tw *Tweens) {
	if b := s.Bonus; b.Symbol != "" {
		x, y := screenXY(b.X, b.Y)
		if b.State == actor.BonusEdible {
			vector.FillCircle(screen, x+ts/2, y+ts/2, ts/2, colornames.Crimson, true)
		} else {
			drawLabel(screen, fmt.Sprint(b.Value), x, y, tw, b.Tile)
		}
	}

	for _, p := range s.Pursuers {
		if !p.Visible {
			continue
		}
		x, y := screenXY(p.X, p.Y)
		if p.Bounty > 0 {
			drawLabel(screen, fmt.Sprint(p.Bounty), x, y, tw, p.Tile)
			continue
		}
		drawPursuer(screen, p, x, y, tw.BlinkAlpha())
	}

	if s.Player.Visible {
		x, y := screenXY(s.Player.X, s.Player.Y)
		c := colornames.Yellow
		if s.Player.Mode == "dying" || s.Player.Mode == "dead" {
			c = colornames.Gold
		}
		vector.FillCircle(screen, x+ts/2, y+ts/2, ts/2+scale, c, true)
	}
}

func drawPursuer(screen *ebiten.Image, p game.AgentView, x, y float32, blink float32) {
	var c color.Color = pursuerColors[p.Name]
	if c == nil {
		c = colornames.Green
	}
	switch p.Mode {
	case "frightened":
		c = colornames.Blue
		if p.Flashing && blink < 0.6 {
			c = colornames.White
		}
	case "dead", "entering-house":
		c = nil
	}

	cx, cy, r := x+ts/2, y+ts/2, float32(ts/2+scale)
	if c != nil {
		vector.FillCircle(screen, cx, cy-scale, r, c, true)
		vector.FillRect(screen, cx-r, cy-scale, 2*r, r+scale, c, false)
	}

	// eyes look where the pursuer is going
	dx, dy := p.MoveDir.Vector()
	for _, ex := range []float32{cx - r/2, cx + r/2} {
		vector.FillCircle(screen, ex, cy-2*scale, 2*scale, colornames.White, true)
		vector.FillCircle(screen, ex+float32(dx)*scale, cy-2*scale+float32(dy)*scale, scale, colornames.Navy, true)
	}
}

// drawLabel prints a score label, scaled while a pop tween runs on its tile.
func drawLabel(screen *ebiten.Image, label string, x, y float32, tw *Tweens, t world.Tile) {
	img := ebiten.NewImage(len(label)*6+2, 16)
	defer img.Deallocate()
	ebitenutil.DebugPrintAt(img, label, 1, 0)

	s, ok := tw.PopScale(t)
	if !ok {
		s = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(img.Bounds().Dx())/2, -8)
	op.GeoM.Scale(float64(s)*1.5, float64(s)*1.5)
	op.GeoM.Translate(float64(x+ts/2), float64(y+ts/2))
	op.ColorScale.ScaleWithColor(colornames.Cyan)
	screen.DrawImage(img, op)
}

func drawHUD(screen *ebiten.Image, s *game.Snapshot, frames int) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %7d", s.Score), 2*ts, 0)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HIGH SCORE %7d", max(s.Hiscore.Points, s.Score)), 12*ts, 0)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL %d", s.Level), 2*ts, ts)

	var flags []string
	if s.Immortal {
		flags = append(flags, "IMMORTAL")
	}
	if s.Demo {
		flags = append(flags, "DEMO")
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(flags, " "), 12*ts, ts)

	switch s.State {
	case game.Intro, game.GameOver:
		if s.State == game.GameOver {
			ebitenutil.DebugPrintAt(screen, "GAME  OVER", screen.Bounds().Dx()/2-30, screen.Bounds().Dy()/2+ts)
		}
		if (frames/30)%2 == 0 {
			ebitenutil.DebugPrintAt(screen, "PRESS ENTER", screen.Bounds().Dx()/2-33, screen.Bounds().Dy()/2+3*ts)
		}
	case game.GettingReady:
		ebitenutil.DebugPrintAt(screen, "READY!", screen.Bounds().Dx()/2-18, screen.Bounds().Dy()/2+ts)
	}

	bottom := screen.Bounds().Dy() - footRows*ts
	lives := strings.Repeat("C ", max(s.Lives-1, 0))
	ebitenutil.DebugPrintAt(screen, lives, 2*ts, bottom)
	ebitenutil.DebugPrintAt(screen, strings.Join(s.LevelCounter, " "), 10*ts, bottom)
}

package steering

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mazechase/mover"
	"github.com/milk9111/mazechase/prefabs"
	"github.com/milk9111/mazechase/world"
	"github.com/sirupsen/logrus"
)

// Script is a chase target computed by a tengo script. The script sees the
// pursuer, player, lead pursuer and corner tiles as globals and assigns
// target_col and target_row.
type Script struct {
	name     string
	compiled *tengo.Compiled
	corner   world.Tile
	lead     int
	log      *logrus.Entry
}

var scriptGlobals = []string{
	"self_col", "self_row",
	"player_col", "player_row", "player_dir",
	"lead_col", "lead_row",
	"corner_col", "corner_row",
	"target_col", "target_row",
}

// LoadScript compiles the named script from prefabs/scripts.
func LoadScript(name string, corner world.Tile, lead int, log *logrus.Entry) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("steering: load script %q: %w", name, err)
	}
	return NewScript(name, src, corner, lead, log)
}

func NewScript(name string, src []byte, corner world.Tile, lead int, log *logrus.Entry) (*Script, error) {
	script := tengo.NewScript(src)
	for _, g := range scriptGlobals {
		var initial any = 0
		if g == "player_dir" {
			initial = world.None.String()
		}
		if err := script.Add(g, initial); err != nil {
			return nil, fmt.Errorf("steering: script %q: add %s: %w", name, g, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("steering: compile script %q: %w", name, err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Script{
		name:     name,
		compiled: compiled,
		corner:   corner,
		lead:     lead,
		log:      log.WithField("script", name),
	}, nil
}

func (s *Script) Name() string { return s.name }

// Target adapts the script to a heading target. A failing run falls back to
// the player's tile.
func (s *Script) Target() Target {
	return func(m *mover.Mover, b Board) (world.Tile, bool) {
		t, err := s.run(m, b)
		if err != nil {
			s.log.WithError(err).Warn("script target failed, chasing the player")
			return b.PlayerTile(), true
		}
		return t, true
	}
}

func (s *Script) run(m *mover.Mover, b Board) (world.Tile, error) {
	self := m.Tile()
	player := b.PlayerTile()
	lead := b.PursuerTile(s.lead)
	values := map[string]any{
		"self_col": self.Col, "self_row": self.Row,
		"player_col": player.Col, "player_row": player.Row,
		"player_dir": b.PlayerDir().String(),
		"lead_col":   lead.Col, "lead_row": lead.Row,
		"corner_col": s.corner.Col, "corner_row": s.corner.Row,
		"target_col": player.Col, "target_row": player.Row,
	}
	for name, v := range values {
		if err := s.compiled.Set(name, v); err != nil {
			return world.Tile{}, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return world.Tile{}, err
	}
	return world.T(s.compiled.Get("target_col").Int(), s.compiled.Get("target_row").Int()), nil
}

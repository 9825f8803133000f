package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/mazechase/world"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

const Default = "arcade.yaml"

// LoadLayout reads a maze layout, preferring levels/<name> on disk over the
// embedded copy.
func LoadLayout(name string) (world.Layout, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return world.Layout{}, fmt.Errorf("read level: %w", err)
	}
	var layout world.Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return world.Layout{}, fmt.Errorf("unmarshal level %s: %w", clean, err)
	}
	return layout, nil
}

func Load(name string) (*world.World, error) {
	layout, err := LoadLayout(name)
	if err != nil {
		return nil, err
	}
	return world.New(layout)
}

func cleanLevelPath(path string) string {
	if path == "" {
		return Default
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

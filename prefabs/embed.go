package prefabs

import (
	"embed"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// DiskDir is searched for edited copies before the embedded files.
var DiskDir = "prefabs"

var errNoName = errors.New("prefabs: empty file name")

type Kind int

const (
	Tuning Kind = iota
	Script
)

func (k Kind) String() string {
	if k == Script {
		return "script"
	}
	return "tuning"
}

// KindOf classifies a file by extension.
func KindOf(name string) (Kind, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return Tuning, true
	case ".tengo":
		return Script, true
	}
	return Tuning, false
}

// Load reads a tuning file such as "game.yaml".
func Load(name string) ([]byte, error) {
	return read(tuningPath(name))
}

// LoadScript reads a tengo script; the extension may be omitted.
func LoadScript(name string) ([]byte, error) {
	return read(scriptPath(name))
}

func read(rel string) ([]byte, error) {
	if rel == "" {
		return nil, errNoName
	}
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

func tuningPath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func scriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

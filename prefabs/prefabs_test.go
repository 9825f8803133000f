package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestDecodeSpec(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		want    sample
		wantErr bool
	}{
		{name: "fields", data: "name: blinky\ncount: 3\n", want: sample{Name: "blinky", Count: 3}},
		{name: "empty document", data: "", want: sample{}},
		{name: "unknown field", data: "name: blinky\nspeed: 2\n", wantErr: true},
		{name: "wrong type", data: "count: many\n", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DecodeSpec[sample]([]byte(c.data))
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[sample]("missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
}

func TestScriptPath(t *testing.T) {
	cases := map[string]string{
		"cowardly":                     "scripts/cowardly.tengo",
		"cowardly.tengo":               "scripts/cowardly.tengo",
		"scripts/shadow.tengo":         "scripts/shadow.tengo",
		"prefabs/scripts/shadow.tengo": "scripts/shadow.tengo",
		"":                             "",
	}
	for in, want := range cases {
		if got := scriptPath(in); got != want {
			t.Fatalf("scriptPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		known bool
	}{
		{name: "game.yaml", kind: Tuning, known: true},
		{name: "LEVELS.YML", kind: Tuning, known: true},
		{name: "scripts/shadow.tengo", kind: Script, known: true},
		{name: "notes.txt", known: false},
	}
	for _, c := range cases {
		kind, known := KindOf(c.name)
		if known != c.known || (known && kind != c.kind) {
			t.Fatalf("KindOf(%q): expected %s/%v, got %s/%v", c.name, c.kind, c.known, kind, known)
		}
	}
}

func TestEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"cowardly", "shadow"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s to have a body", name)
		}
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "level_table.yaml"), []byte("levels: []\n"), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, c := range w.Poll() {
			if c.Name == "notes.txt" {
				t.Fatalf("expected non-prefab files to be ignored")
			}
			if c.Name == "level_table.yaml" {
				if c.Kind != Tuning {
					t.Fatalf("expected a tuning change, got %s", c.Kind)
				}
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected an edit of level_table.yaml to be reported")
}

package prefabs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is one edited tuning file or script.
type Change struct {
	Name string // base name, e.g. "level_table.yaml"
	Kind Kind
}

// Watcher collects edits made to the prefab directories while the game runs.
// Repeated writes of one file within Debounce are reported once.
type Watcher struct {
	Debounce time.Duration

	fs      *fsnotify.Watcher
	changes chan Change
	errs    chan error
	done    chan struct{}
	stop    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Debounce: 100 * time.Millisecond,
		fs:       fw,
		changes:  make(chan Change, 16),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Poll returns the changes seen since the last call without blocking.
func (w *Watcher) Poll() []Change {
	var out []Change
	for {
		select {
		case c := <-w.changes:
			out = append(out, c)
		default:
			return out
		}
	}
}

// Err returns the latest watch error, if one is pending.
func (w *Watcher) Err() error {
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	seen := make(map[string]time.Time)
	const edits = fsnotify.Write | fsnotify.Create | fsnotify.Rename

	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind, known := KindOf(ev.Name)
			if !known || ev.Op&edits == 0 {
				continue
			}
			now := time.Now()
			if last, ok := seen[ev.Name]; ok && now.Sub(last) < w.Debounce {
				continue
			}
			seen[ev.Name] = now

			select {
			case w.changes <- Change{Name: filepath.Base(ev.Name), Kind: kind}:
			case <-w.done:
				return
			}
		}
	}
}

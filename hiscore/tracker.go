package hiscore

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Tracker holds the best record of a session and writes it back whenever a
// running score beats it.
type Tracker struct {
	store  Store
	best   Record
	loaded Record
	dirty  bool
	log    *logrus.Entry
}

func NewTracker(store Store, log *logrus.Entry) *Tracker {
	if store == nil {
		store = &MemoryStore{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Tracker{store: store, log: log.WithField("component", "hiscore")}
}

// Load reads the stored record. A missing record counts as zero.
func (t *Tracker) Load() error {
	r, err := t.store.Load()
	if errors.Is(err, ErrNoRecord) {
		r, err = Record{}, nil
	}
	if err != nil {
		return err
	}
	t.best, t.loaded, t.dirty = r, r, false
	return nil
}

func (t *Tracker) Record() Record { return t.best }

// Loaded is the record as read at the last Load.
func (t *Tracker) Loaded() Record { return t.loaded }

// Consider offers a running score. It reports whether the score is a new
// record and saves it if so.
func (t *Tracker) Consider(points, level int) (bool, error) {
	r := Record{Points: points, Level: level}
	if !r.Beats(t.best) {
		return false, nil
	}
	t.best, t.dirty = r, true
	return true, t.Save()
}

// Save writes the best record if it changed since the last write.
func (t *Tracker) Save() error {
	if !t.dirty {
		return nil
	}
	if err := t.store.Save(t.best); err != nil {
		t.log.WithError(err).Error("saving high score failed")
		return err
	}
	t.dirty = false
	return nil
}

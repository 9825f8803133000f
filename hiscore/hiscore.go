package hiscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrNoRecord = errors.New("hiscore: no record saved")

// Record is the best result so far.
type Record struct {
	Points int `yaml:"points" json:"points"`
	Level  int `yaml:"level" json:"level"`
}

// Beats reports whether r is a better result than o.
func (r Record) Beats(o Record) bool {
	return r.Points > o.Points
}

type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore keeps the record in a YAML file.
type FileStore struct {
	Path string
}

func (s FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, fmt.Errorf("hiscore: read %s: %w", s.Path, err)
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("hiscore: unmarshal %s: %w", s.Path, err)
	}
	return r, nil
}

// Save replaces the file through a temporary file and a rename.
func (s FileStore) Save(r Record) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("hiscore: marshal: %w", err)
	}
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".hiscore-*")
	if err != nil {
		return fmt.Errorf("hiscore: save %s: %w", s.Path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("hiscore: save %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("hiscore: save %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("hiscore: save %s: %w", s.Path, err)
	}
	return nil
}

// MemoryStore is a Store without persistence.
type MemoryStore struct {
	record Record
	stored bool
	Saves  int
}

func (s *MemoryStore) Load() (Record, error) {
	if !s.stored {
		return Record{}, ErrNoRecord
	}
	return s.record, nil
}

func (s *MemoryStore) Save(r Record) error {
	s.record, s.stored = r, true
	s.Saves++
	return nil
}

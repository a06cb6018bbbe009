package buildver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
)

// State is the persistent version counter: a calendar year and a build
// number that increases monotonically within that year.
type State struct {
	Year  int `json:"year"`
	Build int `json:"build"`
}

// Store reads and writes the version state file. The file is plain JSON
// with the two counter fields, committed alongside the code it versions.
type Store struct {
	path string
}

// NewStore returns a Store for the state file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current counter. A missing file is ErrMissingState; a
// file that does not parse into non-negative integers is ErrCorruptState.
// Absent fields default to zero, which the bump policy treats as a fresh
// counter.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, fmt.Errorf("%w: %s", ErrMissingState, s.path)
		}
		return State{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}
	if st.Year < 0 || st.Build < 0 {
		return State{}, fmt.Errorf("%w: %s: negative counter fields", ErrCorruptState, s.path)
	}
	return st, nil
}

// Save writes the counter atomically and reports whether the file
// content actually changed. Writing the same state twice is a no-op so
// repeated runs do not show up as modifications.
func (s *Store) Save(st State) (bool, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')

	if old, err := os.ReadFile(s.path); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", s.path, err)
	}
	return true, nil
}

// CurrentVersionText loads the counter and returns its bare rendering
// without modifying anything.
func (s *Store) CurrentVersionText() (string, error) {
	st, err := s.Load()
	if err != nil {
		return "", err
	}
	return st.Bare(), nil
}

// Lock acquires the exclusive lock guarding the state file and the
// artifacts derived from it. A second invocation against the same
// checkout fails fast instead of racing the first. The returned release
// function removes the lock file.
func (s *Store) Lock() (release func(), err error) {
	lockPath := s.path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("version state is locked by another process (remove %s if stale)", lockPath)
		}
		return nil, fmt.Errorf("acquiring lock %s: %w", lockPath, err)
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	if err := f.Close(); err != nil {
		os.Remove(lockPath)
		return nil, fmt.Errorf("acquiring lock %s: %w", lockPath, err)
	}
	return func() { os.Remove(lockPath) }, nil
}

package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileState represents the last check of a single fixture
type FileState struct {
	MTime        int64  `json:"mtime"`
	Hash         string `json:"hash"`
	Snapshot     string `json:"snapshot"`
	SnapshotHash string `json:"snapshot_hash,omitempty"`
	Passed       bool   `json:"passed"`
}

// State represents the fixture check state. It is safe for concurrent use.
type State struct {
	mu    sync.Mutex
	Files map[string]*FileState `json:"files"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// snapshotHash hashes the snapshot, or returns "" if it does not exist
func snapshotHash(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	hash, err := ComputeHash(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	return hash, err
}

// HasChanged checks if a fixture or its snapshot changed since the last check
// Uses hybrid mtime + hash approach for the fixture
func (s *State) HasChanged(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasChanged(path)
}

func (s *State) hasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	fileState, exists := s.Files[path]
	if !exists {
		// New fixture
		return true, nil
	}

	snapHash, err := snapshotHash(fileState.Snapshot)
	if err != nil {
		return false, err
	}
	if snapHash != fileState.SnapshotHash {
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// NeedsCheck reports whether a fixture has to be checked again
func (s *State) NeedsCheck(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fileState, exists := s.Files[path]; exists && !fileState.Passed {
		return true, nil
	}
	return s.hasChanged(path)
}

// Update records the result of checking a fixture
func (s *State) Update(path, snapshot string, passed bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	snapHash, err := snapshotHash(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[path] = &FileState{
		MTime:        info.ModTime().Unix(),
		Hash:         hash,
		Snapshot:     snapshot,
		SnapshotHash: snapHash,
		Passed:       passed,
	}

	return nil
}

// LastChecked returns the modification time recorded for a fixture
func (s *State) LastChecked(path string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fileState, exists := s.Files[path]; exists {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}

package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
)

// StorageKey names the saved planner state.
const StorageKey = "financial-planner-state"

// Store persists a single PlannerState blob in a directory.
type Store struct {
	dir    string
	logger calculation.Logger
}

// NewStore creates a store rooted at dir. The directory is created on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, logger: calculation.NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Store) SetLogger(l calculation.Logger) {
	s.logger = calculation.OrNop(l)
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return filepath.Join(s.dir, StorageKey+".json")
}

// Save writes the state atomically.
func (s *Store) Save(st *domain.PlannerState) error {
	if st == nil {
		return fmt.Errorf("save state: state is nil")
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, StorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	s.logger.Debugf("saved planner state to %s (%d bytes)", s.Path(), len(data))
	return nil
}

// Load reads the saved state. A missing file yields (nil, nil).
func (s *Store) Load() (*domain.PlannerState, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var envelope struct {
		Profile      json.RawMessage `json:"profile"`
		SelectedCell *domain.CellRef `json:"selectedCell"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	profile, err := config.NewInputParser().ParseProfileJSON(envelope.Profile)
	if err != nil {
		return nil, fmt.Errorf("decode state profile: %w", err)
	}
	s.logger.Debugf("loaded planner state from %s", s.Path())
	return &domain.PlannerState{Profile: *profile, SelectedCell: envelope.SelectedCell}, nil
}

// Clear removes the saved state. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

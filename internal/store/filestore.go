package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"terranova/internal/lot"
)

const snapshotFile = "terranova.json"

// FileStore persists the snapshot as indented JSON in the user config
// directory. Last writer wins; there is no conflict detection.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at dir, or at
// ~/.config/terranova when dir is empty.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = filepath.Join(os.Getenv("HOME"), ".config")
		}
		dir = filepath.Join(configDir, "terranova")
	}
	return &FileStore{path: filepath.Join(dir, snapshotFile)}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is a first run and yields the
// defaults; a corrupt file is an error so the caller can decide whether
// to overwrite it.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("no snapshot found, starting from defaults")
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.LotsByDivision == nil {
		snap.LotsByDivision = make(map[string][]*lot.Lot)
	}
	if snap.DivisionMaps == nil {
		snap.DivisionMaps = make(map[string]string)
	}
	return &snap, nil
}

// Save writes the snapshot atomically: write a temp file, then rename.
func (s *FileStore) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

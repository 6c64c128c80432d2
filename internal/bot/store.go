package bot

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store reads and writes the full bot roster as a single JSON document.
// The registry overwrites the document wholesale on every mutation and
// reads it once at startup.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store over the given filesystem. Tests pass an
// afero.NewMemMapFs; the server passes afero.NewOsFs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load reads the persisted roster. A missing or unreadable file is
// returned as an error; the caller decides the fallback.
func (s *Store) Load() ([]Bot, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("reading bot store %s: %w", s.path, err)
	}
	var bots []Bot
	if err := json.Unmarshal(data, &bots); err != nil {
		return nil, fmt.Errorf("decoding bot store %s: %w", s.path, err)
	}
	return bots, nil
}

// Save overwrites the roster document with the given bots.
func (s *Store) Save(bots []Bot) error {
	data, err := json.MarshalIndent(bots, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bot store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating bot store directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing bot store %s: %w", s.path, err)
	}
	return nil
}

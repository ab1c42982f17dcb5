package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes JSON artifacts under a single output directory.
type Store struct {
	dir string
}

// NewStore creates the output directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the absolute location of a named artifact.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// SaveJSON writes v pretty-printed to filename inside the store directory.
func (s *Store) SaveJSON(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := os.WriteFile(s.Path(filename), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// LoadJSON reads filename from the store directory into v.
func (s *Store) LoadJSON(v any, filename string) error {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}
	return nil
}

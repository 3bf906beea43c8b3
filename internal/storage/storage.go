package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/cine/internal/model"
)

var (
	ErrMalformed      = errors.New("malformed favorites data")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage defines the interface for the favorites persistence slot.
type Storage interface {
	Load() ([]model.MovieSummary, error)
	Save(movies []model.MovieSummary) error
}

// JSONStorage implements Storage using a single JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the favorites from the JSON file.
// Returns an empty slice if the file doesn't exist.
func (s *JSONStorage) Load() ([]model.MovieSummary, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.MovieSummary{}, nil
		}
		return nil, err
	}
	return DecodeMovies(data)
}

// Save writes the favorites to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(movies []model.MovieSummary) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if movies == nil {
		movies = []model.MovieSummary{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DecodeMovies parses a serialized favorites sequence.
// Entries that don't decode or carry no ID are dropped; only a broken
// top-level array is an error.
func DecodeMovies(data []byte) ([]model.MovieSummary, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	movies := make([]model.MovieSummary, 0, len(raw))
	for _, entry := range raw {
		var m model.MovieSummary
		if err := json.Unmarshal(entry, &m); err != nil {
			continue
		}
		if m.ID == 0 {
			continue
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// DefaultDir returns the config directory: ~/.config/cine
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "cine"), nil
}

// DefaultFavoritesPath returns the default JSON slot path: ~/.config/cine/favorites.json
func DefaultFavoritesPath() (string, error) {
	return defaultFile("favorites.json")
}

func defaultFile(name string) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Backend names accepted in the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// OpenStorage opens the storage backend named in the config.
// The returned close function is a no-op for the JSON backend.
func OpenStorage(backend string) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "", BackendJSON:
		path, err := DefaultFavoritesPath()
		if err != nil {
			return nil, nil, err
		}
		return NewJSONStorage(path), noop, nil

	case BackendSQLite:
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, nil, err
		}
		s, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case BackendBolt:
		path, err := DefaultBoltPath()
		if err != nil {
			return nil, nil, err
		}
		s, err := NewBoltStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

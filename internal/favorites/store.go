// Package favorites owns the user's favorites set and keeps it persisted.
package favorites

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/storage"
)

// ErrPersistence marks a failed read or write of the favorites slot.
// It is logged and exposed through LastError, never returned by mutators.
var ErrPersistence = errors.New("favorites persistence failed")

// Store is the in-memory favorites set plus its persistence slot.
// The in-memory set is authoritative; a failed write does not roll it back.
type Store struct {
	mu      sync.Mutex
	set     *model.Favorites
	storage storage.Storage
	logger  hclog.Logger
	lastErr error
}

// New creates an empty store. Call Load once to read the slot.
func New(s storage.Storage, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		set:     &model.Favorites{},
		storage: s,
		logger:  logger.Named("favorites"),
	}
}

// Load reads the persisted set. A missing slot yields an empty set; an
// unreadable or malformed one yields an empty set and records the failure.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies, err := s.storage.Load()
	if err != nil {
		s.fail("load", err)
		s.set = &model.Favorites{}
		return
	}

	s.set = model.NewFavorites(movies)
	s.logger.Debug("loaded favorites", "count", s.set.Len())
}

// Add appends movie unless its ID is already present.
func (s *Store) Add(movie model.MovieSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if movie.ID == 0 {
		return
	}
	if s.set.Add(movie) {
		s.persist()
	}
}

// Remove deletes the movie with id, if present.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set.Remove(id) {
		s.persist()
	}
}

// Toggle removes movie if it is a favorite and adds it otherwise.
// Returns the new favorite state.
func (s *Store) Toggle(movie model.MovieSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if movie.ID == 0 {
		return false
	}
	on := s.set.Toggle(movie)
	s.persist()
	return on
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Contains(id)
}

// All returns the favorites in insertion order.
func (s *Store) All() []model.MovieSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Movies()
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Len()
}

// LastError returns the most recent persistence failure, or nil once a
// later write has succeeded.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// persist writes the full set. Caller holds mu.
func (s *Store) persist() {
	if err := s.storage.Save(s.set.Movies()); err != nil {
		s.fail("save", err)
		return
	}
	s.lastErr = nil
}

func (s *Store) fail(op string, err error) {
	s.lastErr = fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
	s.logger.Error("favorites "+op+" failed", "error", err)
}

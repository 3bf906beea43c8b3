package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nikbrunner/cine/internal/model"
)

var favoritesBucket = []byte("favorites")

// BoltStorage implements Storage using a bbolt bucket.
// Keys are big-endian positions so a cursor walk yields insertion order.
type BoltStorage struct {
	db   *bolt.DB
	path string
}

// NewBoltStorage opens (or creates) the bolt file at path.
func NewBoltStorage(path string) (*BoltStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(favoritesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStorage{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *BoltStorage) Path() string {
	return s.path
}

// Close closes the database.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}

// Load reads the favorites in insertion order.
// Undecodable values are skipped like in the JSON slot.
func (s *BoltStorage) Load() ([]model.MovieSummary, error) {
	movies := []model.MovieSummary{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(favoritesBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var m model.MovieSummary
			if err := json.Unmarshal(v, &m); err != nil || m.ID == 0 {
				return nil
			}
			movies = append(movies, m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return movies, nil
}

// Save replaces the bucket contents in one transaction.
func (s *BoltStorage) Save(movies []model.MovieSummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(favoritesBucket) != nil {
			if err := tx.DeleteBucket(favoritesBucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(favoritesBucket)
		if err != nil {
			return err
		}

		for i, m := range movies {
			data, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := b.Put(positionKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

// DefaultBoltPath returns the default bolt database path: ~/.config/cine/favorites.bolt
func DefaultBoltPath() (string, error) {
	return defaultFile("favorites.bolt")
}

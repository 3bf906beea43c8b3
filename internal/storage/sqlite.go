package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/cine/internal/model"
)

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS favorites (
			id INTEGER PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			poster_path TEXT,
			release_date TEXT NOT NULL DEFAULT '',
			vote_average REAL NOT NULL DEFAULT 0,
			overview TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_favorites_position ON favorites(position);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the favorites in insertion order.
func (s *SQLiteStorage) Load() ([]model.MovieSummary, error) {
	movies := []model.MovieSummary{}

	rows, err := s.db.Query(`
		SELECT id, title, poster_path, release_date, vote_average, overview
		FROM favorites
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.MovieSummary
		var posterPath sql.NullString

		if err := rows.Scan(&m.ID, &m.Title, &posterPath, &m.ReleaseDate, &m.VoteAverage, &m.Overview); err != nil {
			return nil, err
		}
		if posterPath.Valid {
			m.PosterPath = &posterPath.String
		}

		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// Save replaces the stored favorites.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(movies []model.MovieSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM favorites"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO favorites (id, position, title, poster_path, release_date, vote_average, overview)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range movies {
		if _, err := stmt.Exec(m.ID, i, m.Title, m.PosterPath, m.ReleaseDate, m.VoteAverage, m.Overview); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/cine/favorites.db
func DefaultSQLitePath() (string, error) {
	return defaultFile("favorites.db")
}

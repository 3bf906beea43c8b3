package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/storage"
)

func stringPtr(s string) *string { return &s }

func sampleMovies() []model.MovieSummary {
	return []model.MovieSummary{
		{ID: 155, Title: "The Dark Knight", PosterPath: stringPtr("/qJ2tW6WMUDux911r6m7haRef0WH.jpg"), ReleaseDate: "2008-07-16", VoteAverage: 8.5, Overview: "Batman raises the stakes..."},
		{ID: 272, Title: "Batman Begins", PosterPath: nil, ReleaseDate: "2005-06-10", VoteAverage: 7.7},
		{ID: 414906, Title: "The Batman", ReleaseDate: "", VoteAverage: 7.7, Overview: ""},
	}
}

// assertSameMovies checks identifiers, field values and order.
func assertSameMovies(t *testing.T, got, want []model.MovieSummary) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d movies, got %d", len(want), len(got))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.ReleaseDate != w.ReleaseDate ||
			g.VoteAverage != w.VoteAverage || g.Overview != w.Overview {
			t.Errorf("movie %d mismatch: got %+v, want %+v", i, g, w)
		}
		if (g.PosterPath == nil) != (w.PosterPath == nil) {
			t.Errorf("movie %d poster nil-ness mismatch", i)
		} else if g.PosterPath != nil && *g.PosterPath != *w.PosterPath {
			t.Errorf("movie %d poster mismatch: got %q, want %q", i, *g.PosterPath, *w.PosterPath)
		}
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "favorites.json")

	s := storage.NewJSONStorage(path)
	if err := s.Save(sampleMovies()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("favorites file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	assertSameMovies(t, loaded, sampleMovies())
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	s := storage.NewJSONStorage(filepath.Join(tmpDir, "nonexistent.json"))

	movies, err := s.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(movies) != 0 {
		t.Error("expected empty favorites for missing file")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "favorites.json")

	s := storage.NewJSONStorage(path)
	if err := s.Save(nil); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("favorites file was not created in nested directory")
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array for nil favorites, got %q", string(data))
	}
}

func TestJSONStorage_MalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "favorites.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := storage.NewJSONStorage(path).Load()
	if !errors.Is(err, storage.ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestDecodeMovies_Lenient(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantIDs []int
		wantErr bool
	}{
		{"empty array", `[]`, nil, false},
		{"valid entries", `[{"id":1,"title":"A"},{"id":2,"title":"B"}]`, []int{1, 2}, false},
		{"drops entries without id", `[{"title":"no id"},{"id":3}]`, []int{3}, false},
		{"drops wrong shapes", `[42, "str", {"id":"x"}, {"id":4}]`, []int{4}, false},
		{"extra fields ignored", `[{"id":5,"genre_ids":[1,2],"adult":false}]`, []int{5}, false},
		{"object instead of array", `{"id":1}`, nil, true},
		{"garbage", `<html>`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.DecodeMovies([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, storage.ErrMalformed) {
					t.Fatalf("expected ErrMalformed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d movies, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("movie %d: got id %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestBoltStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := storage.NewBoltStorage(filepath.Join(tmpDir, "favorites.bolt"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Save(sampleMovies()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	assertSameMovies(t, loaded, sampleMovies())
}

func TestBoltStorage_SaveReplaces(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := storage.NewBoltStorage(filepath.Join(tmpDir, "favorites.bolt"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Save(sampleMovies()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := s.Save(sampleMovies()[:1]); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 155 {
		t.Errorf("expected only the last saved set, got %+v", loaded)
	}
}

func TestBoltStorage_EmptyDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := storage.NewBoltStorage(filepath.Join(tmpDir, "nested", "empty.bolt"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	movies, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load empty db: %v", err)
	}
	if len(movies) != 0 {
		t.Error("expected empty favorites")
	}
}

func TestSession_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "session")

	loc, err := storage.LoadSession(path)
	if err != nil {
		t.Fatalf("missing session should not error: %v", err)
	}
	if loc != "" {
		t.Errorf("expected empty location, got %q", loc)
	}

	if err := storage.SaveSession(path, "?q=batman&page=2"); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
	loc, err = storage.LoadSession(path)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	if loc != "?q=batman&page=2" {
		t.Errorf("got %q, want %q", loc, "?q=batman&page=2")
	}
}

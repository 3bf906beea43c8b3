package search

import (
	"testing"

	"github.com/nikbrunner/cine/internal/model"
)

func favorites() []model.MovieSummary {
	return []model.MovieSummary{
		{ID: 155, Title: "The Dark Knight"},
		{ID: 272, Title: "Batman Begins"},
		{ID: 414906, Title: "The Batman"},
		{ID: 603, Title: "The Matrix"},
	}
}

func TestFilterMovies_EmptyQueryReturnsAll(t *testing.T) {
	results := FilterMovies(favorites(), "")

	if len(results) != 4 {
		t.Fatalf("expected 4 results for empty query, got %d", len(results))
	}
	for i, r := range results {
		if r.Movie.ID != favorites()[i].ID {
			t.Errorf("result %d: expected id %d, got %d", i, favorites()[i].ID, r.Movie.ID)
		}
		if r.MatchedIndexes != nil {
			t.Errorf("result %d: expected no highlights", i)
		}
	}
}

func TestFilterMovies_ExactMatch(t *testing.T) {
	results := FilterMovies(favorites(), "The Matrix")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Movie.ID != 603 {
		t.Errorf("expected The Matrix, got %s", results[0].Movie.Title)
	}
}

func TestFilterMovies_FuzzyMatchesSeveral(t *testing.T) {
	results := FilterMovies(favorites(), "batman")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	ids := map[int]bool{}
	for _, r := range results {
		ids[r.Movie.ID] = true
		if len(r.MatchedIndexes) != len("batman") {
			t.Errorf("%s: expected %d matched indexes, got %d", r.Movie.Title, len("batman"), len(r.MatchedIndexes))
		}
	}
	if !ids[272] || !ids[414906] {
		t.Errorf("expected both Batman titles, got %v", ids)
	}
}

func TestFilterMovies_CaseInsensitive(t *testing.T) {
	results := FilterMovies(favorites(), "DARK")
	if len(results) != 1 || results[0].Movie.ID != 155 {
		t.Errorf("expected The Dark Knight, got %+v", results)
	}
}

func TestFilterMovies_NoMatch(t *testing.T) {
	if results := FilterMovies(favorites(), "xyz"); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFilterMovies_Empty(t *testing.T) {
	if results := FilterMovies(nil, "batman"); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/cine/internal/model"
)

// Match is a favorite whose title fuzzy-matched a filter.
type Match struct {
	Movie          model.MovieSummary
	MatchedIndexes []int
	Score          int
}

// movieTitles implements fuzzy.Source over a movie slice.
type movieTitles []model.MovieSummary

func (mt movieTitles) String(i int) string {
	return mt[i].Title
}

func (mt movieTitles) Len() int {
	return len(mt)
}

// FilterMovies fuzzy-matches movies by title.
// Results are sorted by match score (best first). An empty query returns
// every movie unranked, in the original order.
func FilterMovies(movies []model.MovieSummary, query string) []Match {
	if query == "" {
		all := make([]Match, len(movies))
		for i, m := range movies {
			all[i] = Match{Movie: m}
		}
		return all
	}

	matches := fuzzy.FindFrom(query, movieTitles(movies))

	results := make([]Match, len(matches))
	for i, m := range matches {
		results[i] = Match{
			Movie:          movies[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

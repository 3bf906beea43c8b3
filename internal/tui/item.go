package tui

import (
	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/search"
)

// Item is one row of a movie list.
type Item struct {
	Movie    model.MovieSummary
	Favorite bool
	Matched  []int // Highlighted title rune indexes, from the favorites filter
}

// Title returns the row title with the release year, e.g. "Alien (1979)".
func (i Item) Title() string {
	return i.Movie.Title + " (" + i.Movie.Year() + ")"
}

// itemsFromResults marks which results are favorites.
func itemsFromResults(movies []model.MovieSummary, isFavorite func(int) bool) []Item {
	items := make([]Item, len(movies))
	for i, m := range movies {
		items[i] = Item{Movie: m, Favorite: isFavorite(m.ID)}
	}
	return items
}

// itemsFromMatches turns filter matches into rows. Every row is a favorite.
func itemsFromMatches(matches []search.Match) []Item {
	items := make([]Item, len(matches))
	for i, m := range matches {
		items[i] = Item{Movie: m.Movie, Favorite: true, Matched: m.MatchedIndexes}
	}
	return items
}

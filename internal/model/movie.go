package model

import (
	"fmt"
	"sort"
)

// MovieSummary is the compact movie record returned by list and search endpoints.
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"` // nil = no poster
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

// Year returns the release year, or "----" when the release date is unknown.
func (m MovieSummary) Year() string {
	if len(m.ReleaseDate) < 4 {
		return "----"
	}
	return m.ReleaseDate[:4]
}

// Rating returns the average rating with one decimal.
func (m MovieSummary) Rating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed actor of a movie.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewMember is one crew credit of a movie.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds the cast and crew of a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MovieDetails is the full movie record shown in the details view.
type MovieDetails struct {
	MovieSummary

	BackdropPath     *string `json:"backdrop_path"`
	Tagline          string  `json:"tagline"`
	Runtime          *int    `json:"runtime"` // minutes, nil = unknown
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Genres           []Genre `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
	Status           string  `json:"status"`
	VoteCount        int     `json:"vote_count"`
	Credits          Credits `json:"credits"`
}

// Summary returns the summary part of the details, e.g. for adding to favorites.
func (d MovieDetails) Summary() MovieSummary {
	return d.MovieSummary
}

// Director returns the first crew member credited as director, or nil.
func (d MovieDetails) Director() *CrewMember {
	for i := range d.Credits.Crew {
		if d.Credits.Crew[i].Job == "Director" {
			return &d.Credits.Crew[i]
		}
	}
	return nil
}

// MainCast returns at most n cast members in billing order.
func (d MovieDetails) MainCast(n int) []CastMember {
	if n > len(d.Credits.Cast) {
		n = len(d.Credits.Cast)
	}
	if n <= 0 {
		return nil
	}
	return d.Credits.Cast[:n]
}

// RuntimeLabel formats the runtime as "2h 5min", or "" when unknown.
func (d MovieDetails) RuntimeLabel() string {
	if d.Runtime == nil || *d.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dmin", *d.Runtime/60, *d.Runtime%60)
}

// SortCast orders the cast by billing order, keeping catalog order for ties.
func (d *MovieDetails) SortCast() {
	sort.SliceStable(d.Credits.Cast, func(i, j int) bool {
		return d.Credits.Cast[i].Order < d.Credits.Cast[j].Order
	})
}

// Normalize fills nil slices so callers never have to nil-check.
func (d *MovieDetails) Normalize() {
	if d.Genres == nil {
		d.Genres = []Genre{}
	}
	if d.Credits.Cast == nil {
		d.Credits.Cast = []CastMember{}
	}
	if d.Credits.Crew == nil {
		d.Credits.Crew = []CrewMember{}
	}
	d.SortCast()
}

// FormatMoney formats a dollar amount in millions: 150000000 -> "$150M".
func FormatMoney(amount int64) string {
	return fmt.Sprintf("$%.0fM", float64(amount)/1_000_000)
}

// ResultPage is one page of search or listing results.
type ResultPage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
}

// Normalize ensures Results is never nil.
func (p *ResultPage) Normalize() {
	if p.Results == nil {
		p.Results = []MovieSummary{}
	}
}

package model

// Favorites is an ordered set of movies, unique by ID.
// The zero value is an empty set ready to use.
type Favorites struct {
	movies []MovieSummary
}

// NewFavorites builds a set from movies, dropping later duplicates and entries without an ID.
func NewFavorites(movies []MovieSummary) *Favorites {
	f := &Favorites{movies: make([]MovieSummary, 0, len(movies))}
	for _, m := range movies {
		if m.ID == 0 {
			continue
		}
		f.Add(m)
	}
	return f
}

// Add appends the movie unless an entry with the same ID exists.
// Returns true if the set changed.
func (f *Favorites) Add(movie MovieSummary) bool {
	if f.Contains(movie.ID) {
		return false
	}
	f.movies = append(f.movies, movie)
	return true
}

// Remove deletes the entry with the given ID.
// Returns true if the set changed.
func (f *Favorites) Remove(id int) bool {
	idx := f.indexOf(id)
	if idx < 0 {
		return false
	}
	f.movies = append(f.movies[:idx], f.movies[idx+1:]...)
	return true
}

// Toggle removes the movie if present, adds it otherwise.
// Returns the new membership state.
func (f *Favorites) Toggle(movie MovieSummary) bool {
	if f.Remove(movie.ID) {
		return false
	}
	f.Add(movie)
	return true
}

// Contains reports whether a movie with the given ID is in the set.
func (f *Favorites) Contains(id int) bool {
	return f.indexOf(id) >= 0
}

// Get returns the entry with the given ID, or nil.
func (f *Favorites) Get(id int) *MovieSummary {
	idx := f.indexOf(id)
	if idx < 0 {
		return nil
	}
	m := f.movies[idx]
	return &m
}

// Movies returns a copy of the entries in insertion order.
func (f *Favorites) Movies() []MovieSummary {
	out := make([]MovieSummary, len(f.movies))
	copy(out, f.movies)
	return out
}

// Len returns the number of entries.
func (f *Favorites) Len() int {
	return len(f.movies)
}

func (f *Favorites) indexOf(id int) int {
	for i := range f.movies {
		if f.movies[i].ID == id {
			return i
		}
	}
	return -1
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/cine/internal/model"
)

var (
	ErrNetwork  = errors.New("catalog request failed")
	ErrNotFound = errors.New("movie not found")
	ErrNoAPIKey = errors.New("TMDB API key not configured (set TMDB_API_KEY or apiKey in config)")
)

// Client is the read-only catalog contract used by the browse controller
// and the details view.
type Client interface {
	Search(ctx context.Context, query string, page int) (*model.ResultPage, error)
	ListPopular(ctx context.Context, page int) (*model.ResultPage, error)
	GetDetails(ctx context.Context, id int) (*model.MovieDetails, error)
}

// ImageSize is a TMDB image width bucket.
type ImageSize string

const (
	SizeTiny     ImageSize = "w185"
	SizeSmall    ImageSize = "w342"
	SizeMedium   ImageSize = "w500"
	SizeLarge    ImageSize = "w780"
	SizeOriginal ImageSize = "original"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p"
	movieBaseURL = "https://www.themoviedb.org/movie"

	// PlaceholderImage is returned for movies without artwork.
	PlaceholderImage = "/placeholder.svg"
)

// ImageURL resolves an image path to a full URL.
// An empty size means SizeMedium.
func ImageURL(path *string, size ImageSize) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = SizeMedium
	}
	return fmt.Sprintf("%s/%s%s", imageBaseURL, size, *path)
}

// MovieURL returns the public TMDB page of a movie.
func MovieURL(id int) string {
	return fmt.Sprintf("%s/%d", movieBaseURL, id)
}

package culler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
)

// Status is the catalog state of a favorite.
type Status int

const (
	Available   Status = iota // details fetched
	Missing                   // catalog answered 404
	Unreachable               // timeout, DNS failure, server error, etc.
)

func (s Status) String() string {
	switch s {
	case Missing:
		return "missing"
	case Unreachable:
		return "unreachable"
	default:
		return "available"
	}
}

// Result holds the check result for a single favorite.
type Result struct {
	Movie  model.MovieSummary
	Status Status
	Error  string // short reason for unreachable entries
}

// ProgressFunc is called after each favorite is checked.
// completed is the number checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Check looks every favorite up in the catalog, at most concurrency at a
// time. Results keep the order of movies. Cancelling ctx marks the
// remaining entries unreachable.
func Check(ctx context.Context, client catalog.Client, movies []model.MovieSummary, concurrency int, onProgress ProgressFunc) []Result {
	if len(movies) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(movies))

	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range movies {
		i := i
		g.Go(func() error {
			results[i] = checkMovie(gctx, client, movies[i])

			if onProgress != nil {
				progressMu.Lock()
				completed++
				onProgress(completed, len(movies))
				progressMu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func checkMovie(ctx context.Context, client catalog.Client, movie model.MovieSummary) Result {
	result := Result{Movie: movie}

	if err := ctx.Err(); err != nil {
		result.Status = Unreachable
		result.Error = normalizeError(err.Error())
		return result
	}

	_, err := client.GetDetails(ctx, movie.ID)
	switch {
	case err == nil:
		result.Status = Available
	case errors.Is(err, catalog.ErrNotFound):
		result.Status = Missing
	default:
		result.Status = Unreachable
		result.Error = normalizeError(err.Error())
	}
	return result
}

// MissingIDs returns the IDs of favorites the catalog no longer knows.
func MissingIDs(results []Result) []int {
	var ids []int
	for _, r := range results {
		if r.Status == Missing {
			ids = append(ids, r.Movie.ID)
		}
	}
	return ids
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "status 401"):
		return "Unauthorized (check API key)"
	case strings.Contains(lower, "status 429"):
		return "Rate limited"
	case strings.Contains(lower, "status 5"):
		return "Server error"
	case strings.Contains(lower, "certificate"), strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}

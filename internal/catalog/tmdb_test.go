package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
)

const batmanPage = `{
  "page": 1,
  "total_results": 2,
  "total_pages": 1,
  "results": [
    {"id": 272, "title": "Batman Begins", "poster_path": "/8RW2runSEc34IwKN2D1aPcJd2UL.jpg", "release_date": "2005-06-10", "vote_average": 7.7, "overview": "Driven by tragedy...", "adult": false},
    {"id": 414906, "title": "The Batman", "poster_path": null, "release_date": "2022-03-01", "vote_average": 7.7}
  ]
}`

const darkKnight = `{
  "id": 155,
  "title": "The Dark Knight",
  "poster_path": "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
  "backdrop_path": null,
  "release_date": "2008-07-16",
  "vote_average": 8.5,
  "vote_count": 32000,
  "overview": "Batman raises the stakes...",
  "tagline": "Why so serious?",
  "runtime": 152,
  "budget": 185000000,
  "revenue": 1004558444,
  "genres": [{"id": 28, "name": "Action"}],
  "original_language": "en",
  "status": "Released"
}`

const darkKnightCredits = `{
  "id": 155,
  "cast": [
    {"id": 1810, "name": "Heath Ledger", "character": "Joker", "order": 1},
    {"id": 3894, "name": "Christian Bale", "character": "Bruce Wayne", "order": 0}
  ],
  "crew": [
    {"id": 1, "name": "Someone Else", "job": "Producer", "department": "Production"},
    {"id": 525, "name": "Christopher Nolan", "job": "Director", "department": "Directing"}
  ]
}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *catalog.TMDB {
	t.Helper()
	c, err := catalog.NewTMDB(catalog.Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	assert.NilError(t, err)
	return c
}

func TestNewTMDB_RequiresAPIKey(t *testing.T) {
	_, err := catalog.NewTMDB(catalog.Options{})
	assert.Assert(t, errors.Is(err, catalog.ErrNoAPIKey))
}

func TestSearch_SendsQueryAndDecodes(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(r.URL.Path, "/search/movie"))
		q := r.URL.Query()
		assert.Check(t, is.Equal(q.Get("query"), "batman begins"))
		assert.Check(t, is.Equal(q.Get("page"), "2"))
		assert.Check(t, is.Equal(q.Get("api_key"), "test-key"))
		assert.Check(t, is.Equal(q.Get("language"), "pt-BR"))
		fmt.Fprint(w, batmanPage)
	})

	page, err := newClient(t, srv).Search(context.Background(), "batman begins", 2)
	assert.NilError(t, err)
	assert.Equal(t, page.TotalResults, 2)
	assert.Assert(t, is.Len(page.Results, 2))
	assert.Equal(t, page.Results[0].Title, "Batman Begins")
	assert.Assert(t, page.Results[1].PosterPath == nil)
}

func TestListPopular_EmptyResultsNotNil(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(r.URL.Path, "/movie/popular"))
		fmt.Fprint(w, `{"page": 3, "total_results": 0, "total_pages": 0}`)
	})

	page, err := newClient(t, srv).ListPopular(context.Background(), 3)
	assert.NilError(t, err)
	assert.Equal(t, page.Page, 3)
	assert.Assert(t, page.Results != nil)
	assert.Assert(t, is.Len(page.Results, 0))
}

func TestGetDetails_MergesCredits(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/155":
			assert.Check(t, is.Equal(r.URL.Query().Get("language"), "pt-BR"))
			fmt.Fprint(w, darkKnight)
		case "/movie/155/credits":
			assert.Check(t, is.Equal(r.URL.Query().Get("language"), ""))
			fmt.Fprint(w, darkKnightCredits)
		default:
			http.NotFound(w, r)
		}
	})

	d, err := newClient(t, srv).GetDetails(context.Background(), 155)
	assert.NilError(t, err)
	assert.Equal(t, d.Title, "The Dark Knight")
	assert.Equal(t, d.Tagline, "Why so serious?")
	assert.Assert(t, d.BackdropPath == nil)
	assert.Equal(t, d.RuntimeLabel(), "2h 32min")
	assert.Equal(t, d.Credits.Cast[0].Name, "Christian Bale")
	assert.Equal(t, d.Director().Name, "Christopher Nolan")
}

func TestGetDetails_NotFound(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code": 34, "status_message": "The resource you requested could not be found."}`)
	})

	_, err := newClient(t, srv).GetDetails(context.Background(), 999999999)
	assert.Assert(t, errors.Is(err, catalog.ErrNotFound))
	assert.Assert(t, !errors.Is(err, catalog.ErrNetwork))
}

func TestGetDetails_CreditsFailureIsNetworkError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/155" {
			fmt.Fprint(w, darkKnight)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := newClient(t, srv).GetDetails(context.Background(), 155)
	assert.Assert(t, errors.Is(err, catalog.ErrNetwork))
}

func TestGet_NetworkErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"bad body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>rate limited</html>`)
		}},
		{"search 404", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.handler)
			_, err := newClient(t, srv).Search(context.Background(), "batman", 1)
			assert.Assert(t, errors.Is(err, catalog.ErrNetwork))
		})
	}
}

func TestGet_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newClient(t, srv)
	srv.Close()

	_, err := c.ListPopular(context.Background(), 1)
	assert.Assert(t, errors.Is(err, catalog.ErrNetwork))
}

func TestImageURL(t *testing.T) {
	path := "/qJ2tW6WMUDux911r6m7haRef0WH.jpg"
	empty := ""

	assert.Equal(t, catalog.ImageURL(&path, catalog.SizeSmall), "https://image.tmdb.org/t/p/w342"+path)
	assert.Equal(t, catalog.ImageURL(&path, ""), "https://image.tmdb.org/t/p/w500"+path)
	assert.Equal(t, catalog.ImageURL(&path, catalog.SizeOriginal), "https://image.tmdb.org/t/p/original"+path)
	assert.Equal(t, catalog.ImageURL(nil, catalog.SizeTiny), catalog.PlaceholderImage)
	assert.Equal(t, catalog.ImageURL(&empty, catalog.SizeLarge), catalog.PlaceholderImage)
}

func TestMovieURL(t *testing.T) {
	assert.Equal(t, catalog.MovieURL(155), "https://www.themoviedb.org/movie/155")
}

// countingClient counts calls and can be told to fail.
type countingClient struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingClient) Search(_ context.Context, query string, page int) (*model.ResultPage, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, catalog.ErrNetwork
	}
	return &model.ResultPage{Page: page, Results: []model.MovieSummary{{ID: 1, Title: query}}}, nil
}

func (c *countingClient) ListPopular(_ context.Context, page int) (*model.ResultPage, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, catalog.ErrNetwork
	}
	return &model.ResultPage{Page: page, Results: []model.MovieSummary{}}, nil
}

func (c *countingClient) GetDetails(_ context.Context, id int) (*model.MovieDetails, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, catalog.ErrNotFound
	}
	return &model.MovieDetails{MovieSummary: model.MovieSummary{ID: id}}, nil
}

func TestCached_MemoizesByKey(t *testing.T) {
	next := &countingClient{}
	c := catalog.NewCached(next, catalog.CacheOptions{})
	ctx := context.Background()

	_, _ = c.Search(ctx, "batman", 1)
	_, _ = c.Search(ctx, "batman", 1)
	assert.Equal(t, next.calls.Load(), int32(1))

	_, _ = c.Search(ctx, "batman", 2)
	_, _ = c.ListPopular(ctx, 1)
	_, _ = c.ListPopular(ctx, 1)
	_, _ = c.GetDetails(ctx, 155)
	_, _ = c.GetDetails(ctx, 155)
	assert.Equal(t, next.calls.Load(), int32(4))
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	next := &countingClient{fail: true}
	c := catalog.NewCached(next, catalog.CacheOptions{})
	ctx := context.Background()

	_, err := c.GetDetails(ctx, 155)
	assert.Assert(t, errors.Is(err, catalog.ErrNotFound))

	next.fail = false
	d, err := c.GetDetails(ctx, 155)
	assert.NilError(t, err)
	assert.Equal(t, d.ID, 155)
	assert.Equal(t, next.calls.Load(), int32(2))
}

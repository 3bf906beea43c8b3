package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/cine/internal/model"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "pt-BR"
	DefaultTimeout  = 10 * time.Second
)

// Options configures a TMDB client.
type Options struct {
	APIKey   string
	Language string // default DefaultLanguage
	BaseURL  string // default DefaultBaseURL
	Timeout  time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// TMDB talks to The Movie Database REST API.
type TMDB struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	logger     hclog.Logger
}

// NewTMDB creates a TMDB client.
// Returns ErrNoAPIKey if no key is configured.
func NewTMDB(opts Options) (*TMDB, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	return &TMDB{
		apiKey:     opts.APIKey,
		language:   opts.Language,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger.Named("tmdb"),
	}, nil
}

// Search returns one page of movies matching query.
func (c *TMDB) Search(ctx context.Context, query string, page int) (*model.ResultPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("language", c.language)

	var result model.ResultPage
	if _, err := c.get(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// ListPopular returns one page of the popular movies listing.
func (c *TMDB) ListPopular(ctx context.Context, page int) (*model.ResultPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("language", c.language)

	var result model.ResultPage
	if _, err := c.get(ctx, "/movie/popular", params, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// GetDetails fetches the movie record and its credits in parallel.
// Both must succeed. A 404 on the movie record yields ErrNotFound.
func (c *TMDB) GetDetails(ctx context.Context, id int) (*model.MovieDetails, error) {
	var details model.MovieDetails
	var credits model.Credits
	var detailsErr error

	// No shared cancellation: a failed credits call must not mask a 404
	// on the movie record.
	var g errgroup.Group

	g.Go(func() error {
		params := url.Values{}
		params.Set("language", c.language)
		status, err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &details)
		if status == http.StatusNotFound {
			err = fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		detailsErr = err
		return err
	})

	// Credits are requested without a language so names stay untranslated.
	g.Go(func() error {
		_, err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), url.Values{}, &credits)
		return err
	})

	err := g.Wait()
	if detailsErr != nil {
		return nil, detailsErr
	}
	if err != nil {
		return nil, err
	}

	details.Credits = credits
	details.Normalize()
	return &details, nil
}

// get performs a GET on path and decodes the JSON body into out.
// The returned status is 0 when no response arrived.
func (c *TMDB) get(ctx context.Context, path string, params url.Values, out any) (int, error) {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	reqID := uuid.NewString()
	start := time.Now()
	c.logger.Debug("request", "req_id", reqID, "path", path, "page", params.Get("page"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "req_id", reqID, "path", path, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	c.logger.Debug("response", "req_id", reqID, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%w: %s: status %d", ErrNetwork, path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s: %v", ErrNetwork, path, err)
	}

	return resp.StatusCode, nil
}

package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nikbrunner/cine/internal/model"
)

// CacheOptions sizes and ages the memoization layer.
type CacheOptions struct {
	Size       int
	SearchTTL  time.Duration
	PopularTTL time.Duration
	DetailsTTL time.Duration
}

// DefaultCacheOptions returns the stale times used by the web client:
// five minutes for searches, ten for the popular listing and details.
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{
		Size:       256,
		SearchTTL:  5 * time.Minute,
		PopularTTL: 10 * time.Minute,
		DetailsTTL: 10 * time.Minute,
	}
}

type searchKey struct {
	query string
	page  int
}

// Cached memoizes successful responses of another Client.
// Errors are never cached.
type Cached struct {
	next    Client
	search  *expirable.LRU[searchKey, *model.ResultPage]
	popular *expirable.LRU[int, *model.ResultPage]
	details *expirable.LRU[int, *model.MovieDetails]
}

// NewCached wraps next. Zero fields in opts take the defaults.
func NewCached(next Client, opts CacheOptions) *Cached {
	defaults := DefaultCacheOptions()
	if opts.Size <= 0 {
		opts.Size = defaults.Size
	}
	if opts.SearchTTL <= 0 {
		opts.SearchTTL = defaults.SearchTTL
	}
	if opts.PopularTTL <= 0 {
		opts.PopularTTL = defaults.PopularTTL
	}
	if opts.DetailsTTL <= 0 {
		opts.DetailsTTL = defaults.DetailsTTL
	}

	return &Cached{
		next:    next,
		search:  expirable.NewLRU[searchKey, *model.ResultPage](opts.Size, nil, opts.SearchTTL),
		popular: expirable.NewLRU[int, *model.ResultPage](opts.Size, nil, opts.PopularTTL),
		details: expirable.NewLRU[int, *model.MovieDetails](opts.Size, nil, opts.DetailsTTL),
	}
}

func (c *Cached) Search(ctx context.Context, query string, page int) (*model.ResultPage, error) {
	key := searchKey{query: query, page: page}
	if p, ok := c.search.Get(key); ok {
		return p, nil
	}

	p, err := c.next.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	c.search.Add(key, p)
	return p, nil
}

func (c *Cached) ListPopular(ctx context.Context, page int) (*model.ResultPage, error) {
	if p, ok := c.popular.Get(page); ok {
		return p, nil
	}

	p, err := c.next.ListPopular(ctx, page)
	if err != nil {
		return nil, err
	}
	c.popular.Add(page, p)
	return p, nil
}

func (c *Cached) GetDetails(ctx context.Context, id int) (*model.MovieDetails, error) {
	if d, ok := c.details.Get(id); ok {
		return d, nil
	}

	d, err := c.next.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	c.details.Add(id, d)
	return d, nil
}

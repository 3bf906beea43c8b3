// Package browse implements the browse/search session: which catalog
// listing to show for a (query, page) pair, kept in sync with a location
// string and protected against out-of-order responses.
package browse

import (
	"context"
	"strings"
	"sync"

	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
)

// MaxDisplayPages caps the page count offered for navigation.
// The catalog refuses pages beyond it.
const MaxDisplayPages = 500

// Key identifies a fetch by everything that determines its result.
type Key struct {
	Mode  Mode
	Query string
	Page  int
}

// Request is an issued fetch. Gen increases with every request.
type Request struct {
	Gen uint64
	Key Key
}

// Result is the outcome of fetching a Request.
type Result struct {
	Request Request
	Page    *model.ResultPage
	Err     error
}

// Status is the visible state of the results view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// View is a snapshot of the results view.
type View struct {
	Status Status
	Key    Key
	Page   *model.ResultPage // set when Status is StatusReady
	Err    error             // set when Status is StatusFailed
}

// Empty reports a successful fetch with no results.
func (v View) Empty() bool {
	return v.Status == StatusReady && v.Page != nil && len(v.Page.Results) == 0
}

// DisplayPages returns the navigable page count, capped at MaxDisplayPages.
func (v View) DisplayPages() int {
	if v.Page == nil {
		return 0
	}
	return min(v.Page.TotalPages, MaxDisplayPages)
}

// Options configures a Controller.
type Options struct {
	// Location seeds the initial state, e.g. "?q=batman&page=2".
	Location string
	// OnLocation is called with the encoded state after every transition.
	OnLocation func(location string)
}

// Controller drives the browse session. Transitions return a Request that
// the caller fetches (on any goroutine) and hands back to Apply.
type Controller struct {
	client     catalog.Client
	onLocation func(string)

	mu    sync.Mutex
	state State
	gen   uint64
	view  View
}

// New creates a controller seeded from opts.Location.
func New(client catalog.Client, opts Options) *Controller {
	state := Decode(opts.Location)
	return &Controller{
		client:     client,
		onLocation: opts.OnLocation,
		state:      state,
		view:       View{Status: StatusIdle, Key: keyOf(state)},
	}
}

func keyOf(s State) Key {
	return Key{Mode: s.Mode(), Query: s.Query, Page: s.Page}
}

// Start issues the initial fetch for the seeded state.
func (c *Controller) Start() Request {
	return c.transition(func(*State) {})
}

// SetQuery replaces the query and resets the page to 1.
func (c *Controller) SetQuery(query string) Request {
	return c.transition(func(s *State) {
		s.Query = strings.TrimSpace(query)
		s.Page = 1
	})
}

// SetPage moves to page within the current mode. Values below 1 become 1;
// the upper bound is left to the caller.
func (c *Controller) SetPage(page int) Request {
	return c.transition(func(s *State) {
		s.Page = max(page, 1)
	})
}

// Refresh re-issues the current state, e.g. to retry after a failure.
func (c *Controller) Refresh() Request {
	return c.transition(func(*State) {})
}

func (c *Controller) transition(update func(*State)) Request {
	c.mu.Lock()
	update(&c.state)
	c.gen++
	req := Request{Gen: c.gen, Key: keyOf(c.state)}
	c.view = View{Status: StatusLoading, Key: req.Key}
	location := Encode(c.state)
	c.mu.Unlock()

	if c.onLocation != nil {
		c.onLocation(location)
	}
	return req
}

// Fetch runs the catalog call for req. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	var (
		page *model.ResultPage
		err  error
	)
	if req.Key.Mode == ModeSearch {
		page, err = c.client.Search(ctx, req.Key.Query, req.Key.Page)
	} else {
		page, err = c.client.ListPopular(ctx, req.Key.Page)
	}
	if err == nil && page == nil {
		page = &model.ResultPage{Page: req.Key.Page}
	}
	if page != nil {
		page.Normalize()
	}
	return Result{Request: req, Page: page, Err: err}
}

// Apply installs res if it answers the latest issued request.
// Results of superseded requests are dropped and Apply returns false.
func (c *Controller) Apply(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Request.Gen != c.gen {
		return false
	}

	if res.Err != nil {
		c.view = View{Status: StatusFailed, Key: res.Request.Key, Err: res.Err}
	} else {
		c.view = View{Status: StatusReady, Key: res.Request.Key, Page: res.Page}
	}
	return true
}

// Run fetches req and applies the result.
func (c *Controller) Run(ctx context.Context, req Request) bool {
	return c.Apply(c.Fetch(ctx, req))
}

// State returns the current (query, page).
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Location returns the encoded current state.
func (c *Controller) Location() string {
	return Encode(c.State())
}

// View returns the current results view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// DisplayPages returns the capped page count of the current results.
func (c *Controller) DisplayPages() int {
	return c.View().DisplayPages()
}

// Generation returns the id of the latest issued request.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

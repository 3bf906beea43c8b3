package browse

import (
	"net/url"
	"strconv"
	"strings"
)

// Mode selects the data source for a browse state.
type Mode int

const (
	ModePopular Mode = iota // empty query
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "popular"
}

// State is the user-controlled part of a browse session.
type State struct {
	Query string
	Page  int
}

// Mode returns ModeSearch for a non-empty query, ModePopular otherwise.
func (s State) Mode() Mode {
	if s.Query == "" {
		return ModePopular
	}
	return ModeSearch
}

// Encode returns the compact location for s: "?q=batman&page=2".
// q is omitted when empty and page when it is 1, so the initial state
// encodes to "".
func Encode(s State) string {
	var parts []string
	if s.Query != "" {
		parts = append(parts, "q="+url.QueryEscape(s.Query))
	}
	if s.Page > 1 {
		parts = append(parts, "page="+strconv.Itoa(s.Page))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// Decode parses a location back into a State. It accepts a bare query
// string, one with a leading "?", or a full URL. A missing, invalid or
// non-positive page reads as 1.
func Decode(location string) State {
	raw := strings.TrimSpace(location)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		raw = ""
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}

	// ParseQuery keeps the pairs it could parse even when it reports an error.
	values, _ := url.ParseQuery(raw)

	state := State{
		Query: strings.TrimSpace(values.Get("q")),
		Page:  1,
	}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		state.Page = p
	}
	return state
}

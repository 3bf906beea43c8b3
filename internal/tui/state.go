package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeBrowse        Mode = iota // popular/search results
	ModeSearch                    // typing into the search bar
	ModeDetails                   // single movie
	ModeFavorites                 // favorites list
	ModeFilter                    // typing into the favorites filter
	ModeConfirmRemove             // asking before removing a favorite
	ModeHelp
)

// MessageType styles the one-line status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// newInput builds a focused-on-demand text input with a steady cursor.
func newInput(placeholder string, charLimit, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = charLimit
	input.Width = width
	input.Prompt = "/ "
	_ = input.Cursor.SetMode(cursor.CursorStatic)
	return input
}

// SearchState holds the catalog search bar.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	return SearchState{
		Input: newInput("Search movies...", cfg.Input.SearchCharLimit, cfg.Input.SearchWidth),
	}
}

// FilterState holds the local fuzzy filter over favorites.
type FilterState struct {
	Input textinput.Model
	Query string // Active filter (persists after closing the input)
}

// NewFilterState creates a new FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	return FilterState{
		Input: newInput("Filter favorites...", cfg.Input.FilterCharLimit, cfg.Input.FilterWidth),
	}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Query = ""
}

// DetailsState holds the movie shown in the details view.
type DetailsState struct {
	Gen     uint64             // Latest issued details request
	Movie   model.MovieSummary // What was selected; shown while loading
	Details *model.MovieDetails
	Err     error
	Loading bool
	Scroll  int
	Return  Mode // Screen to go back to
}

// FavoritesNav holds the cursor over the (filtered) favorites list.
type FavoritesNav struct {
	Cursor   int
	RemoveID int // Pending removal in ModeConfirmRemove
}

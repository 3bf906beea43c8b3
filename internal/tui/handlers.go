package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/cine/internal/browse"
	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/search"
)

// handleKey dispatches a key press to the handler of the current mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Any key dismisses the previous message
	a.messageText = ""

	switch a.mode {
	case ModeSearch:
		return a.handleSearchKey(msg)
	case ModeFilter:
		return a.handleFilterKey(msg)
	case ModeConfirmRemove:
		return a.handleConfirmRemoveKey(msg)
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Quit, a.keys.Back) {
			a.mode = a.helpReturn
		}
		return a, nil
	case ModeDetails:
		return a.handleDetailsKey(msg)
	case ModeFavorites:
		return a.handleFavoritesKey(msg)
	default:
		return a.handleBrowseKey(msg)
	}
}

// moveCursor applies j/k/gg/G to cursor over n rows.
// Returns false when msg is not a motion key.
func (a *App) moveCursor(msg tea.KeyMsg, cursor *int, n int) bool {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			*cursor = 0
			a.lastKeyWasG = false
			return true
		}
		a.lastKeyWasG = true
		return true
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Down):
		if n > 0 && *cursor < n-1 {
			*cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if *cursor > 0 {
			*cursor--
		}
	case key.Matches(msg, a.keys.Bottom):
		if n > 0 {
			*cursor = n - 1
		}
	default:
		return false
	}
	return true
}

func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.moveCursor(msg, &a.cursor, len(a.Results())) {
		return a, nil
	}

	state := a.browse.State()
	view := a.browse.View()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.helpReturn = a.mode
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(state.Query)
		a.search.Input.CursorEnd()
		a.search.Input.Focus()

	case key.Matches(msg, a.keys.ClearSearch):
		if state.Query != "" {
			return a, a.issue(a.browse.SetQuery(""))
		}

	case key.Matches(msg, a.keys.NextPage):
		if view.Status == browse.StatusReady && state.Page < view.DisplayPages() {
			return a, a.issue(a.browse.SetPage(state.Page + 1))
		}

	case key.Matches(msg, a.keys.PrevPage):
		if state.Page > 1 {
			return a, a.issue(a.browse.SetPage(state.Page - 1))
		}

	case key.Matches(msg, a.keys.Retry):
		return a, a.issue(a.browse.Refresh())

	case key.Matches(msg, a.keys.Favorites):
		a.mode = ModeFavorites
		a.clampFavoritesCursor()

	case key.Matches(msg, a.keys.Open):
		if m := a.selectedResult(); m != nil {
			return a.openDetails(*m, ModeBrowse)
		}

	case key.Matches(msg, a.keys.Favorite):
		if m := a.selectedResult(); m != nil {
			a.toggleFavorite(*m)
		}

	case key.Matches(msg, a.keys.YankURL):
		if m := a.selectedResult(); m != nil {
			a.yankURL(m.ID)
		}

	case key.Matches(msg, a.keys.Browser):
		if m := a.selectedResult(); m != nil {
			a.openInBrowser(m.ID)
		}
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.search.Input.Blur()
		a.mode = ModeBrowse
		return a, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(a.search.Input.Value())
		a.search.Input.Blur()
		a.mode = ModeBrowse
		if query == "" {
			return a, nil
		}
		return a, a.issue(a.browse.SetQuery(query))
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	return a, cmd
}

func (a App) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.moveCursor(msg, &a.favNav.Cursor, len(a.favoriteItems())) {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.helpReturn = a.mode
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Back, a.keys.Favorites):
		a.mode = ModeBrowse

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Open):
		if m := a.selectedFavorite(); m != nil {
			return a.openDetails(*m, ModeFavorites)
		}

	case key.Matches(msg, a.keys.Remove, a.keys.Favorite):
		if m := a.selectedFavorite(); m != nil {
			if a.confirmRemove {
				a.favNav.RemoveID = m.ID
				a.mode = ModeConfirmRemove
				return a, nil
			}
			a.removeFavorite(m.ID)
		}

	case key.Matches(msg, a.keys.YankURL):
		if m := a.selectedFavorite(); m != nil {
			a.yankURL(m.ID)
		}

	case key.Matches(msg, a.keys.Browser):
		if m := a.selectedFavorite(); m != nil {
			a.openInBrowser(m.ID)
		}
	}

	return a, nil
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filter.Reset()
		a.filter.Input.Blur()
		a.favNav.Cursor = 0
		a.mode = ModeFavorites
		return a, nil

	case tea.KeyEnter:
		a.filter.Query = strings.TrimSpace(a.filter.Input.Value())
		a.filter.Input.Blur()
		a.mode = ModeFavorites
		a.clampFavoritesCursor()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.filter.Query = strings.TrimSpace(a.filter.Input.Value())
	a.favNav.Cursor = 0
	return a, cmd
}

func (a App) handleConfirmRemoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.removeFavorite(a.favNav.RemoveID)
		a.favNav.RemoveID = 0
		a.mode = ModeFavorites
	case key.Matches(msg, a.keys.Cancel):
		a.favNav.RemoveID = 0
		a.mode = ModeFavorites
	}
	return a, nil
}

func (a App) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.moveCursor(msg, &a.details.Scroll, len(a.detailsLines(a.detailsWidth()))) {
		return a, nil
	}

	movie := a.details.Movie
	if a.details.Details != nil {
		movie = a.details.Details.Summary()
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.helpReturn = a.mode
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Back):
		// Drop whatever is still in flight for this view
		a.details.Gen++
		a.details.Loading = false
		a.mode = a.details.Return
		if a.mode == ModeFavorites {
			a.clampFavoritesCursor()
		}

	case key.Matches(msg, a.keys.Retry):
		if a.details.Err != nil {
			return a.openDetails(a.details.Movie, a.details.Return)
		}

	case key.Matches(msg, a.keys.Favorite):
		if a.details.Details != nil {
			a.toggleFavorite(movie)
		}

	case key.Matches(msg, a.keys.YankURL):
		a.yankURL(movie.ID)

	case key.Matches(msg, a.keys.Browser):
		a.openInBrowser(movie.ID)
	}

	return a, nil
}

// openDetails switches to the details view and fetches movie's record.
// Each call supersedes the previous one.
func (a App) openDetails(movie model.MovieSummary, from Mode) (tea.Model, tea.Cmd) {
	a.details = DetailsState{
		Gen:     a.details.Gen + 1,
		Movie:   movie,
		Loading: true,
		Return:  from,
	}
	a.mode = ModeDetails
	return a, a.fetchDetails(a.details.Gen, movie.ID)
}

func (a App) selectedResult() *model.MovieSummary {
	results := a.Results()
	if a.cursor < 0 || a.cursor >= len(results) {
		return nil
	}
	return &results[a.cursor]
}

// favoriteItems returns the favorites list, narrowed by the active filter.
func (a App) favoriteItems() []Item {
	return itemsFromMatches(search.FilterMovies(a.favorites.All(), a.filter.Query))
}

func (a App) selectedFavorite() *model.MovieSummary {
	items := a.favoriteItems()
	if a.favNav.Cursor < 0 || a.favNav.Cursor >= len(items) {
		return nil
	}
	return &items[a.favNav.Cursor].Movie
}

func (a *App) clampFavoritesCursor() {
	n := len(a.favoriteItems())
	if a.favNav.Cursor >= n {
		a.favNav.Cursor = max(n-1, 0)
	}
}

func (a *App) toggleFavorite(movie model.MovieSummary) {
	if a.favorites.Toggle(movie) {
		a.setMessage(MessageSuccess, fmt.Sprintf("Added %q to favorites", movie.Title))
	} else {
		a.setMessage(MessageInfo, fmt.Sprintf("Removed %q from favorites", movie.Title))
	}
}

func (a *App) removeFavorite(id int) {
	title := ""
	for _, m := range a.favorites.All() {
		if m.ID == id {
			title = m.Title
			break
		}
	}

	a.favorites.Remove(id)
	a.clampFavoritesCursor()
	if title != "" {
		a.setMessage(MessageInfo, fmt.Sprintf("Removed %q from favorites", title))
	}
}

func (a *App) yankURL(id int) {
	url := catalog.MovieURL(id)
	if err := a.copyURL(url); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		a.setMessage(MessageError, "Could not copy URL: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied "+url)
}

func (a *App) openInBrowser(id int) {
	url := catalog.MovieURL(id)
	if err := a.openURL(url); err != nil {
		a.logger.Warn("open browser failed", "url", url, "error", err)
		a.setMessage(MessageError, "Could not open browser: "+err.Error())
		return
	}
	a.setMessage(MessageInfo, "Opened "+url)
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

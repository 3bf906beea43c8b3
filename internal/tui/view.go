package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/cine/internal/browse"
	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/tui/layout"
)

const castShown = 6

// renderView creates the complete screen for the current mode.
func (a App) renderView() string {
	var body string
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeConfirmRemove:
		return a.renderConfirmRemove()
	case ModeDetails:
		body = a.renderDetails()
	case ModeFavorites, ModeFilter:
		body = a.renderFavorites()
	default:
		body = a.renderBrowse()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderBreadcrumb(), body, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderBreadcrumb renders the app name, the location and the favorites badge.
func (a App) renderBreadcrumb() string {
	var where string
	switch a.mode {
	case ModeFavorites, ModeFilter, ModeConfirmRemove:
		where = "favorites"
	case ModeDetails:
		where = "movie/" + strconv.Itoa(a.details.Movie.ID)
	default:
		where = a.browse.Location()
	}

	left := a.styles.Title.Render("cine")
	if where != "" {
		left += " " + where
	}
	badge := a.styles.Favorite.Render("♥ " + strconv.Itoa(a.favorites.Count()))

	// Terminal width minus app padding (left=2, right=2) and breadcrumb padding
	available := a.width - 5
	gap := available - layout.VisibleLength(left) - layout.VisibleLength(badge)
	if gap < 1 {
		left = layout.TruncateText(left, max(available-layout.VisibleLength(badge)-1, 0), a.layoutConfig.Text)
		gap = 1
	}

	return a.styles.Breadcrumb.Render(left + strings.Repeat(" ", gap) + badge)
}

// renderBrowse renders the search bar, heading, results and preview panes and the page bar.
func (a App) renderBrowse() string {
	view := a.browse.View()
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	split := layout.CalculateSplitLayout(a.width, a.layoutConfig.Pane)

	var inputLine string
	switch {
	case a.mode == ModeSearch:
		inputLine = a.search.Input.View()
	case view.Key.Query != "":
		inputLine = a.styles.Empty.Render("/ " + view.Key.Query)
	default:
		inputLine = a.styles.Empty.Render("s to search")
	}

	items := itemsFromResults(a.Results(), a.favorites.IsFavorite)
	listPane := a.renderListPane(a.renderResultsBody(view, items, split.ListWidth, paneHeight), split.ListWidth, paneHeight, true)

	panes := listPane
	if split.PreviewWidth > 0 {
		var preview string
		if m := a.selectedResult(); m != nil {
			preview = a.renderPreview(*m, split.PreviewWidth)
		}
		panes = lipgloss.JoinHorizontal(lipgloss.Top, listPane, a.renderListPane(preview, split.PreviewWidth, paneHeight, false))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		inputLine,
		a.renderHeading(view),
		panes,
		a.renderPageBar(view),
	)
}

// renderHeading titles the results with their count.
func (a App) renderHeading(view browse.View) string {
	var text string
	switch view.Status {
	case browse.StatusLoading, browse.StatusIdle:
		if view.Key.Mode == browse.ModeSearch {
			text = fmt.Sprintf("%s Searching for %q...", a.spinner.View(), view.Key.Query)
		} else {
			text = a.spinner.View() + " Loading popular movies..."
		}
	case browse.StatusFailed:
		return a.styles.Heading.Render(a.styles.Error.Render("Could not load movies"))
	default:
		if view.Key.Mode == browse.ModeSearch {
			text = fmt.Sprintf("Results for %q (%s)", view.Key.Query, resultCount(view.Page.TotalResults))
		} else {
			text = "Popular movies"
		}
	}
	return a.styles.Heading.Render(text)
}

// resultCount formats n with a singular or plural noun.
func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return strconv.Itoa(n) + " results"
}

func (a App) renderResultsBody(view browse.View, items []Item, width, height int) string {
	switch {
	case view.Status == browse.StatusFailed:
		lines := []string{
			a.styles.Error.Render("✗ " + errorSummary(view.Err)),
			"",
			a.styles.Empty.Render("Check your connection and press r to retry."),
		}
		return strings.Join(lines, "\n")
	case view.Status != browse.StatusReady:
		return a.styles.Empty.Render(a.spinner.View() + " Loading...")
	case view.Empty():
		if view.Key.Mode == browse.ModeSearch {
			return a.styles.Empty.Render("No movies found. Try another search.")
		}
		return a.styles.Empty.Render("No movies to show on this page.")
	}
	return a.renderRows(items, a.cursor, width, height)
}

// errorSummary turns catalog errors into a short user-facing line.
func errorSummary(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "Not found"
	case errors.Is(err, catalog.ErrNetwork):
		return "Network error while talking to the catalog"
	case err == nil:
		return "Unknown error"
	default:
		return err.Error()
	}
}

// renderRows renders the visible window of items around cursor.
func (a App) renderRows(items []Item, cursor, width, height int) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visible := layout.CalculateVisibleHeight(height, 0)
	offset := layout.CalculateViewportOffset(cursor, len(items), visible)

	var content strings.Builder
	for i, item := range items {
		// Skip items before viewport
		if i < offset {
			continue
		}
		// Stop after viewport is filled
		if i >= offset+visible {
			break
		}
		content.WriteString(a.renderItem(item, i == cursor, itemWidth) + "\n")
	}
	return strings.TrimRight(content.String(), "\n")
}

// renderItem renders one row: favorite marker, title with year, rating.
func (a App) renderItem(item Item, selected bool, maxWidth int) string {
	marker := "  "
	if item.Favorite {
		marker = "♥ "
	}
	rating := " ★ " + item.Movie.Rating()

	title := a.highlight(item.Movie.Title, item.Matched)
	room := maxWidth - layout.VisibleLength(marker) - layout.VisibleLength(rating)
	text := layout.TruncateWithSuffix(title, " ("+item.Movie.Year()+")", room, a.layoutConfig.Text)

	pad := max(room-layout.VisibleLength(text), 0)
	line := marker + text + strings.Repeat(" ", pad) + rating

	if selected {
		return a.styles.ItemSelected.Render(layout.StripANSI(line))
	}
	if item.Favorite {
		line = a.styles.Favorite.Render(marker) + text + strings.Repeat(" ", pad) + a.styles.Rating.Render(rating)
	}
	return a.styles.Item.Render(line)
}

// highlight styles the runes of title at the matched indexes.
func (a App) highlight(title string, matched []int) string {
	if len(matched) == 0 {
		return title
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(title) {
		if hit[i] {
			b.WriteString(a.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderListPane frames content in a pane of the given size.
func (a App) renderListPane(content string, width, height int, active bool) string {
	style := a.styles.Pane
	if active {
		style = a.styles.PaneActive
	}
	return style.Width(width).Height(height).Render(content)
}

// renderPreview shows the summary of movie next to the list.
func (a App) renderPreview(movie model.MovieSummary, width int) string {
	textWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	var b strings.Builder
	title := movie.Title
	if a.favorites.IsFavorite(movie.ID) {
		title += " " + a.styles.Favorite.Render("♥")
	}
	b.WriteString(a.styles.Title.Render(layout.TruncateText(title, textWidth, a.layoutConfig.Text)) + "\n")
	b.WriteString(a.styles.Year.Render(movie.Year()) + "  " + a.styles.Rating.Render("★ "+movie.Rating()) + "\n\n")

	overview := movie.Overview
	if overview == "" {
		overview = "No synopsis available."
	}
	for _, line := range layout.WrapText(overview, textWidth) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + a.styles.Empty.Render(layout.TruncateText(catalog.ImageURL(movie.PosterPath, catalog.SizeSmall), textWidth, a.layoutConfig.Text)))
	return b.String()
}

// renderPageBar renders the numbered page window, e.g. "‹ 1 … 4 5 [6] 7 8 … 500 ›".
func (a App) renderPageBar(view browse.View) string {
	total := view.DisplayPages()
	pages := layout.PageWindow(view.Key.Page, total, a.layoutConfig.Pagination.Delta)
	if len(pages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pages)+2)
	if view.Key.Page > 1 {
		parts = append(parts, a.styles.Page.Render("‹"))
	}
	for _, p := range pages {
		switch {
		case p == layout.Ellipsis:
			parts = append(parts, a.styles.Page.Render("…"))
		case p == view.Key.Page:
			parts = append(parts, a.styles.PageCurrent.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, a.styles.Page.Render(strconv.Itoa(p)))
		}
	}
	if view.Key.Page < total {
		parts = append(parts, a.styles.Page.Render("›"))
	}
	return strings.Join(parts, "")
}

// renderFavorites renders the favorites screen.
func (a App) renderFavorites() string {
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	split := layout.CalculateSplitLayout(a.width, a.layoutConfig.Pane)
	items := a.favoriteItems()
	total := a.favorites.Count()

	var inputLine string
	switch {
	case a.mode == ModeFilter:
		inputLine = a.filter.Input.View()
	case a.filter.Query != "":
		inputLine = a.styles.Empty.Render("/ " + a.filter.Query)
	default:
		inputLine = a.styles.Empty.Render("/ to filter")
	}

	heading := fmt.Sprintf("Favorites (%s)", movieCount(total))
	if a.filter.Query != "" {
		heading = fmt.Sprintf("Favorites matching %q (%d of %d)", a.filter.Query, len(items), total)
	}

	var body string
	switch {
	case total == 0:
		body = a.styles.Empty.Render("No favorites yet. Press f on a movie to add it.")
	case len(items) == 0:
		body = a.styles.Empty.Render(fmt.Sprintf("No favorites match %q.", a.filter.Query))
	default:
		body = a.renderRows(items, a.favNav.Cursor, split.ListWidth, paneHeight)
	}

	panes := a.renderListPane(body, split.ListWidth, paneHeight, true)
	if split.PreviewWidth > 0 {
		var preview string
		if m := a.selectedFavorite(); m != nil {
			preview = a.renderPreview(*m, split.PreviewWidth)
		}
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes, a.renderListPane(preview, split.PreviewWidth, paneHeight, false))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		inputLine,
		a.styles.Heading.Render(heading),
		panes,
		"",
	)
}

func movieCount(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return strconv.Itoa(n) + " movies"
}

// detailsWidth is the text width inside the details pane.
func (a App) detailsWidth() int {
	return max(a.width-6-a.layoutConfig.Pane.ContentPadding, 20)
}

// renderDetails renders the details screen: loading, error, not found or the movie.
func (a App) renderDetails() string {
	// No input line, heading, page bar or global hints here
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane) + 4
	width := a.width - 6

	var content string
	switch {
	case a.details.Loading:
		content = fmt.Sprintf("%s Loading %q...", a.spinner.View(), a.details.Movie.Title)
	case errors.Is(a.details.Err, catalog.ErrNotFound):
		content = strings.Join([]string{
			a.styles.Title.Render("Movie not found"),
			"",
			a.styles.Empty.Render(fmt.Sprintf("The catalog has no movie with id %d.", a.details.Movie.ID)),
			a.styles.Empty.Render("Press h to go back."),
		}, "\n")
	case a.details.Err != nil:
		content = strings.Join([]string{
			a.styles.Error.Render("✗ Could not load details"),
			"",
			a.styles.Empty.Render(errorSummary(a.details.Err)),
			a.styles.Empty.Render("Press r to retry or h to go back."),
		}, "\n")
	default:
		lines := a.detailsLines(a.detailsWidth())
		start := min(a.details.Scroll, max(len(lines)-1, 0))
		end := min(start+paneHeight, len(lines))
		content = strings.Join(lines[start:end], "\n")
	}

	return a.renderListPane(content, width, paneHeight, true)
}

// detailsLines lays out the loaded movie as wrapped lines for scrolling.
func (a App) detailsLines(width int) []string {
	d := a.details.Details
	if d == nil {
		return nil
	}

	field := func(label, value string) string {
		return a.styles.Label.Render(label) + value
	}

	title := d.Title
	if a.favorites.IsFavorite(d.ID) {
		title += " " + a.styles.Favorite.Render("♥")
	}
	lines := []string{a.styles.Title.Render(title)}
	if d.Tagline != "" {
		lines = append(lines, a.styles.Tagline.Render(d.Tagline))
	}
	lines = append(lines, "")

	rating := a.styles.Rating.Render("★ " + d.Rating())
	if d.VoteCount > 0 {
		rating += a.styles.Empty.Render(fmt.Sprintf(" (%d votes)", d.VoteCount))
	}
	lines = append(lines, field("Rating", rating), field("Year", d.Year()))

	if runtime := d.RuntimeLabel(); runtime != "" {
		lines = append(lines, field("Runtime", runtime))
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		lines = append(lines, field("Genres", strings.Join(names, ", ")))
	}
	if director := d.Director(); director != nil {
		lines = append(lines, field("Director", director.Name))
	}
	if d.OriginalLanguage != "" {
		lines = append(lines, field("Language", strings.ToUpper(d.OriginalLanguage)))
	}
	if d.Status != "" {
		lines = append(lines, field("Status", d.Status))
	}
	if d.Budget > 0 {
		lines = append(lines, field("Budget", model.FormatMoney(d.Budget)))
	}
	if d.Revenue > 0 {
		lines = append(lines, field("Revenue", model.FormatMoney(d.Revenue)))
	}

	lines = append(lines, "", a.styles.Title.Render("Overview"))
	overview := d.Overview
	if overview == "" {
		overview = "No synopsis available."
	}
	lines = append(lines, layout.WrapText(overview, width)...)

	if cast := d.MainCast(castShown); len(cast) > 0 {
		lines = append(lines, "", a.styles.Title.Render("Cast"))
		for _, c := range cast {
			line := c.Name
			if c.Character != "" {
				line += a.styles.Empty.Render(" as " + c.Character)
			}
			lines = append(lines, layout.TruncateText(line, width, a.layoutConfig.Text))
		}
	}

	lines = append(lines, "",
		field("Poster", a.styles.Empty.Render(catalog.ImageURL(d.PosterPath, catalog.SizeMedium))),
		field("Backdrop", a.styles.Empty.Render(catalog.ImageURL(d.BackdropPath, catalog.SizeLarge))),
		field("TMDB", a.styles.Empty.Render(catalog.MovieURL(d.ID))),
	)
	return lines
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: message, persistence warning or an empty gap
	switch {
	case a.messageText != "":
		lines = append(lines, a.renderMessageLine())
	case a.favorites.LastError() != nil:
		lines = append(lines, a.styles.Warning.Render("⚠ Favorites not saved: "+a.favorites.LastError().Error()))
	default:
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	if localHints := a.renderHints(a.getContextualHints()); localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global hints on the list screens
	if a.mode == ModeBrowse || a.mode == ModeFavorites {
		lines = append(lines, a.styles.HintLabel.Render("Global ")+a.renderHintSlice(a.getGlobalHints()))
	}

	return strings.Join(lines, "\n")
}

// renderConfirmRemove renders the remove confirmation modal.
func (a App) renderConfirmRemove() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.PaneActive.
		Padding(1, 2).
		Width(modalWidth)

	title := "this movie"
	for _, m := range a.favorites.All() {
		if m.ID == a.favNav.RemoveID {
			title = fmt.Sprintf("%q", m.Title)
			break
		}
	}

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Remove favorite") + "\n\n")
	content.WriteString("Remove " + title + " from favorites?\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "y", Desc: "remove"},
		{Key: "n", Desc: "cancel"},
	}))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(content.String()))
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageWarning:
		return a.styles.Warning.Render("⚠ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Title.Render(a.messageText)
	}
}

func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: navigation and browsing
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("n/p  page\n")
	left.WriteString("l    details\n")
	left.WriteString("h    back\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("find") + "\n")
	left.WriteString("s /  search\n")
	left.WriteString("x    clear\n")
	left.WriteString("r    retry\n")

	// Right column: favorites and actions
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("favorites") + "\n")
	right.WriteString("f    toggle favorite\n")
	right.WriteString("F    favorites list\n")
	right.WriteString("/    filter (in list)\n")
	right.WriteString("d    remove (in list)\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("o    open in browser\n")
	right.WriteString("Y    yank TMDB url\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

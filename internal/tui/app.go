package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/nikbrunner/cine/internal/browse"
	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/favorites"
	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/tui/layout"
)

// resultsMsg carries a finished browse fetch back to Update.
type resultsMsg struct {
	result browse.Result
}

// detailsMsg carries a finished details fetch back to Update.
type detailsMsg struct {
	gen     uint64
	details *model.MovieDetails
	err     error
}

// App is the main bubbletea model for the movie browser.
type App struct {
	catalog      catalog.Client
	browse       *browse.Controller
	favorites    *favorites.Store
	logger       hclog.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	confirmRemove bool
	copyURL       func(string) error
	openURL       func(string) error

	mode       Mode
	helpReturn Mode // Mode to restore when the help overlay closes
	cursor     int  // Selected row in the results list
	favNav     FavoritesNav
	search     SearchState
	filter     FilterState
	details    DetailsState
	spinner    spinner.Model

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Catalog   catalog.Client   // required
	Favorites *favorites.Store // required, already loaded
	// Location seeds the browse state, e.g. "?q=alien&page=2".
	Location string
	// OnLocation is called whenever the browse state changes.
	OnLocation    func(location string)
	ConfirmRemove *bool        // optional, defaults to true
	Logger        hclog.Logger // optional, discards if nil
	Keys          *KeyMap      // optional, uses default if nil
	Styles        *Styles      // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig
	Clipboard     func(string) error // optional, uses the system clipboard
	OpenURL       func(string) error // optional, uses the system browser
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	confirm := true
	if params.ConfirmRemove != nil {
		confirm = *params.ConfirmRemove
	}

	copyURL := params.Clipboard
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}
	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenURL
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	return App{
		catalog: params.Catalog,
		browse: browse.New(params.Catalog, browse.Options{
			Location:   params.Location,
			OnLocation: params.OnLocation,
		}),
		favorites:     params.Favorites,
		logger:        logger.Named("tui"),
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutCfg,
		confirmRemove: confirm,
		copyURL:       copyURL,
		openURL:       openURL,
		mode:          ModeBrowse,
		search:        NewSearchState(layoutCfg),
		filter:        NewFilterState(layoutCfg),
		spinner:       sp,
		width:         80,
		height:        24,
	}
}

// WithDimensions returns a copy of the App with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the selected row in the results list.
func (a App) Cursor() int {
	return a.cursor
}

// FavoritesCursor returns the selected row in the favorites list.
func (a App) FavoritesCursor() int {
	return a.favNav.Cursor
}

// Location returns the encoded browse state.
func (a App) Location() string {
	return a.browse.Location()
}

// Results returns the movies of the current results page, or nil while
// loading or after a failure.
func (a App) Results() []model.MovieSummary {
	view := a.browse.View()
	if view.Status != browse.StatusReady {
		return nil
	}
	return view.Page.Results
}

// Details returns the loaded details, or nil.
func (a App) Details() *model.MovieDetails {
	return a.details.Details
}

// DetailsErr returns the error of the last details fetch.
func (a App) DetailsErr() error {
	return a.details.Err
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

// Init implements tea.Model. It issues the fetch for the seeded location.
func (a App) Init() tea.Cmd {
	return a.issue(a.browse.Start())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case resultsMsg:
		req := msg.result.Request
		if !a.browse.Apply(msg.result) {
			a.logger.Debug("dropped stale results", "gen", req.Gen, "mode", req.Key.Mode, "page", req.Key.Page)
			return a, nil
		}
		if msg.result.Err != nil {
			a.logger.Warn("fetch failed", "mode", req.Key.Mode, "query", req.Key.Query, "page", req.Key.Page, "error", msg.result.Err)
		}
		a.cursor = 0
		return a, nil

	case detailsMsg:
		if msg.gen != a.details.Gen {
			a.logger.Debug("dropped stale details", "gen", msg.gen)
			return a, nil
		}
		a.details.Loading = false
		a.details.Details = msg.details
		a.details.Err = msg.err
		if msg.err != nil {
			a.logger.Warn("details failed", "id", a.details.Movie.ID, "error", msg.err)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) loading() bool {
	return a.browse.View().Status == browse.StatusLoading || a.details.Loading
}

// issue starts the spinner and fetches req in the background. The outcome
// returns as a resultsMsg and goes through Controller.Apply.
func (a App) issue(req browse.Request) tea.Cmd {
	controller := a.browse
	fetch := func() tea.Msg {
		return resultsMsg{result: controller.Fetch(context.Background(), req)}
	}
	return tea.Batch(a.spinner.Tick, fetch)
}

// fetchDetails loads id in the background, tagged with gen.
func (a App) fetchDetails(gen uint64, id int) tea.Cmd {
	client := a.catalog
	fetch := func() tea.Msg {
		d, err := client.GetDetails(context.Background(), id)
		return detailsMsg{gen: gen, details: d, err: err}
	}
	return tea.Batch(a.spinner.Tick, fetch)
}

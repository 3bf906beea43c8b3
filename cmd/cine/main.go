package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/culler"
	"github.com/nikbrunner/cine/internal/exporter"
	"github.com/nikbrunner/cine/internal/favorites"
	"github.com/nikbrunner/cine/internal/importer"
	"github.com/nikbrunner/cine/internal/logging"
	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/picker"
	"github.com/nikbrunner/cine/internal/search"
	"github.com/nikbrunner/cine/internal/storage"
	"github.com/nikbrunner/cine/internal/tui"
)

// cullConcurrency bounds parallel catalog lookups during cull.
const cullConcurrency = 8

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "browse":
			location := ""
			if len(os.Args) >= 3 {
				location = os.Args[2]
			}
			runTUI(location, true)
			return
		case "details":
			if len(os.Args) < 3 {
				fatalf("Usage: cine details <id>\n")
			}
			runDetails(os.Args[2])
			return
		case "favorites":
			runFavorites(strings.Join(os.Args[2:], " "))
			return
		case "import":
			if len(os.Args) < 3 {
				fatalf("Usage: cine import <file.html>\n")
			}
			runImport(os.Args[2])
			return
		case "export":
			// Export with optional path
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "cull":
			remove := len(os.Args) >= 3 && os.Args[2] == "--remove"
			runCull(remove)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI, resuming the last session
	runTUI("", false)
}

func printHelp() {
	help := `cine - movie discovery and favorites in the terminal

Usage:
  cine                     Open interactive TUI (resumes the last location)
  cine browse [location]   Open TUI at a location, e.g. "?q=alien&page=2"
  cine <query>             Quick search → select → show details
  cine details <id>        Show details of a movie by TMDB id
  cine favorites [query]   List favorites, optionally fuzzy filtered
  cine import <file>       Import favorites from an exported HTML file
  cine export [path]       Export favorites to HTML
  cine cull [--remove]     Find favorites the catalog no longer has
  cine help                Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    n/p         Next/previous page
    l/Enter     Show details
    h/Esc       Go back

  Search:
    s or /      Search movies
    x           Clear search (back to popular)
    r           Retry after an error

  Favorites:
    f           Toggle favorite
    F           Favorites list
    /           Filter favorites (in list)
    d           Remove favorite (in list)

  Other:
    o           Open TMDB page in browser
    Y           Copy TMDB URL to clipboard
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/cine/config.json   (TMDB_API_KEY overrides apiKey)
Data Storage:
  ~/.config/cine/favorites.json (or favorites.db / favorites.bolt)
`
	fmt.Print(help)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// env is what every subcommand needs: config, logger and the favorites store.
type env struct {
	config  *storage.Config
	logger  hclog.Logger
	store   *favorites.Store
	closers []func() error
}

// setup loads config, opens the log file and the favorites store.
// Logs go to stderr when toStderr is set, else to the log file.
func setup(toStderr bool) *env {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fatalf("Error getting config path: %v\n", err)
	}
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		fatalf("Error loading config: %v\n", err)
	}

	e := &env{config: config}

	if toStderr {
		e.logger = logging.New(os.Stderr, config.LogLevel)
	} else {
		e.logger = e.openLogFile(config.LogLevel)
	}

	backend, closeStorage, err := storage.OpenStorage(config.StorageBackend)
	if err != nil {
		fatalf("Error opening favorites storage: %v\n", err)
	}
	e.closers = append(e.closers, closeStorage)

	e.store = favorites.New(backend, e.logger)
	e.store.Load()
	if err := e.store.LastError(); err != nil {
		e.logger.Warn("starting with empty favorites", "error", err)
	}
	return e
}

// openLogFile returns a file logger, or a null logger if the file can't be opened.
func (e *env) openLogFile(level string) hclog.Logger {
	path, err := storage.DefaultLogPath()
	if err != nil {
		return hclog.NewNullLogger()
	}
	logger, closeLog, err := logging.Open(path, level)
	if err != nil {
		return hclog.NewNullLogger()
	}
	e.closers = append(e.closers, closeLog)
	return logger
}

// catalog builds the cached TMDB client from the config.
func (e *env) catalog() catalog.Client {
	client, err := catalog.NewTMDB(catalog.Options{
		APIKey:   e.config.APIKey,
		Language: e.config.Language,
		Timeout:  e.config.RequestTimeout(),
		Logger:   e.logger,
	})
	if errors.Is(err, catalog.ErrNoAPIKey) {
		fatalf("No TMDB API key: set TMDB_API_KEY or apiKey in ~/.config/cine/config.json\n")
	}
	if err != nil {
		fatalf("Error creating catalog client: %v\n", err)
	}

	return catalog.NewCached(client, catalog.CacheOptions{
		Size:       e.config.CacheSize,
		SearchTTL:  time.Duration(e.config.SearchCacheMinutes) * time.Minute,
		PopularTTL: time.Duration(e.config.PopularCacheMinutes) * time.Minute,
		DetailsTTL: time.Duration(e.config.DetailsCacheMinutes) * time.Minute,
	})
}

// Close runs the closers in reverse order, so the log file goes last.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.logger.Warn("close failed", "error", err)
		}
	}
}

// runTUI runs the full interactive TUI. Unless explicit, the location
// is restored from the last session.
func runTUI(location string, explicit bool) {
	e := setup(false)
	defer e.Close()
	client := e.catalog()

	sessionPath, err := storage.DefaultSessionPath()
	if err != nil {
		fatalf("Error getting session path: %v\n", err)
	}
	if !explicit {
		location, err = storage.LoadSession(sessionPath)
		if err != nil {
			e.logger.Warn("could not read session", "error", err)
		}
	}

	confirm := e.config.ShouldConfirmRemove()
	app := tui.NewApp(tui.AppParams{
		Catalog:       client,
		Favorites:     e.store,
		Location:      location,
		ConfirmRemove: &confirm,
		Logger:        e.logger,
		OnLocation: func(loc string) {
			e.logger.Debug("location changed", "location", loc)
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		e.Close()
		fatalf("Error running app: %v\n", err)
	}

	finalApp := finalModel.(tui.App)
	if err := storage.SaveSession(sessionPath, finalApp.Location()); err != nil {
		e.logger.Warn("could not save session", "error", err)
	}
	if err := e.store.LastError(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: favorites may not be saved: %v\n", err)
	}
}

// runQuickSearch searches the catalog, lets the user pick one movie and
// prints its details.
func runQuickSearch(query string) {
	e := setup(true)
	defer e.Close()
	client := e.catalog()
	ctx := context.Background()

	page, err := client.Search(ctx, query, 1)
	if err != nil {
		e.Close()
		fatalf("Error searching: %v\n", err)
	}

	if len(page.Results) == 0 {
		fmt.Printf("No movies found for '%s'\n", query)
		return
	}

	var selected *model.MovieSummary

	if len(page.Results) == 1 {
		// Single result - select it directly
		selected = &page.Results[0]
	} else {
		// Multiple results - show picker
		p := picker.New(page.Results, query, page.TotalResults)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			e.Close()
			fatalf("Error running picker: %v\n", err)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		return
	}
	showDetails(e, client, selected.ID)
}

// runDetails prints the details of the movie with the given id.
func runDetails(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		fatalf("Invalid movie id: %s\n", arg)
	}

	e := setup(true)
	defer e.Close()
	showDetails(e, e.catalog(), id)
}

func showDetails(e *env, client catalog.Client, id int) {
	d, err := client.GetDetails(context.Background(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		e.Close()
		fatalf("Movie %d not found\n", id)
	}
	if err != nil {
		e.Close()
		fatalf("Error loading details: %v\n", err)
	}
	printDetails(os.Stdout, d, e.store.IsFavorite(d.ID))
}

// printDetails writes a plain-text rendition of the details view.
func printDetails(w io.Writer, d *model.MovieDetails, favorite bool) {
	title := d.Title
	if favorite {
		title += " ♥"
	}
	fmt.Fprintf(w, "%s (%s)\n", title, d.Year())
	if d.Tagline != "" {
		fmt.Fprintf(w, "%s\n", d.Tagline)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Rating    ★ %s (%d votes)\n", d.Rating(), d.VoteCount)
	if runtime := d.RuntimeLabel(); runtime != "" {
		fmt.Fprintf(w, "Runtime   %s\n", runtime)
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(w, "Genres    %s\n", strings.Join(names, ", "))
	}
	if director := d.Director(); director != nil {
		fmt.Fprintf(w, "Director  %s\n", director.Name)
	}
	if d.OriginalLanguage != "" {
		fmt.Fprintf(w, "Language  %s\n", strings.ToUpper(d.OriginalLanguage))
	}
	if d.Budget > 0 {
		fmt.Fprintf(w, "Budget    %s\n", model.FormatMoney(d.Budget))
	}
	if d.Revenue > 0 {
		fmt.Fprintf(w, "Revenue   %s\n", model.FormatMoney(d.Revenue))
	}

	overview := d.Overview
	if overview == "" {
		overview = "No synopsis available."
	}
	fmt.Fprintf(w, "\n%s\n", overview)

	if cast := d.MainCast(6); len(cast) > 0 {
		fmt.Fprintln(w, "\nCast:")
		for _, c := range cast {
			fmt.Fprintf(w, "  %s as %s\n", c.Name, c.Character)
		}
	}

	fmt.Fprintf(w, "\n%s\n", catalog.MovieURL(d.ID))
}

// runFavorites lists favorites, fuzzy filtered by query.
func runFavorites(query string) {
	e := setup(true)
	defer e.Close()

	matches := search.FilterMovies(e.store.All(), strings.TrimSpace(query))
	if len(matches) == 0 {
		if query == "" {
			fmt.Println("No favorites yet")
		} else {
			fmt.Printf("No favorites match '%s'\n", query)
		}
		return
	}

	for _, m := range matches {
		fmt.Printf("%-8d %s (%s)  ★ %s\n", m.Movie.ID, m.Movie.Title, m.Movie.Year(), m.Movie.Rating())
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		fatalf("Error opening file: %v\n", err)
	}
	defer file.Close()

	movies, err := importer.ParseHTMLFavorites(file)
	if err != nil {
		fatalf("Error parsing HTML: %v\n", err)
	}

	e := setup(true)
	defer e.Close()

	before := e.store.Count()
	for _, m := range movies {
		e.store.Add(m)
	}
	added := e.store.Count() - before

	if err := e.store.LastError(); err != nil {
		e.Close()
		fatalf("Error saving favorites: %v\n", err)
	}

	fmt.Printf("Imported %d favorites", added)
	if skipped := len(movies) - added; skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	// Determine output path
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fatalf("Error getting default export path: %v\n", err)
		}
	}

	e := setup(true)
	defer e.Close()

	movies := e.store.All()
	html := exporter.ExportHTML(movies)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		e.Close()
		fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("Exported %d favorites to %s\n", len(movies), outputPath)
}

// runCull checks every favorite against the catalog and reports the ones
// it no longer has. With remove, those are dropped from favorites.
func runCull(remove bool) {
	e := setup(true)
	defer e.Close()
	client := e.catalog()

	movies := e.store.All()
	if len(movies) == 0 {
		fmt.Println("No favorites to check")
		return
	}

	results := culler.Check(context.Background(), client, movies, cullConcurrency, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rChecked %d/%d", completed, total)
	})
	fmt.Fprintln(os.Stderr)

	var missing, unreachable int
	for _, r := range results {
		switch r.Status {
		case culler.Missing:
			missing++
			fmt.Printf("MISSING      %-8d %s\n", r.Movie.ID, r.Movie.Title)
		case culler.Unreachable:
			unreachable++
			fmt.Printf("UNREACHABLE  %-8d %s (%s)\n", r.Movie.ID, r.Movie.Title, r.Error)
		}
	}
	fmt.Printf("%d available, %d missing, %d unreachable\n", len(results)-missing-unreachable, missing, unreachable)

	if !remove || missing == 0 {
		return
	}

	ids := culler.MissingIDs(results)
	for _, id := range ids {
		e.store.Remove(id)
	}
	if err := e.store.LastError(); err != nil {
		e.Close()
		fatalf("Error saving favorites: %v\n", err)
	}
	fmt.Printf("Removed %d missing favorites\n", len(ids))
}

package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/cine/internal/model"
	"github.com/nikbrunner/cine/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			MarginBottom(1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker is a small TUI for choosing one movie from quick search results.
type Picker struct {
	movies    []model.MovieSummary
	query     string
	total     int
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
	cfg       layout.LayoutConfig
}

// New creates a Picker over movies. total is the catalog's result count
// for query, which may exceed len(movies).
func New(movies []model.MovieSummary, query string, total int) Picker {
	return Picker{
		movies: movies,
		query:  query,
		total:  total,
		width:  80,
		height: 24,
		cfg:    layout.DefaultConfig(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, keys.Select):
			if len(p.movies) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.movies)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Results for \"%s\" (%s)", p.query, resultCount(p.total))))
	b.WriteString("\n\n")

	if len(p.movies) == 0 {
		b.WriteString(metaStyle.Render("No movies found. Try another search."))
		b.WriteString("\n")
	}

	rowWidth := max(p.width-4, 10)
	start, end := layout.CalculateVisibleListItems(p.cfg.Modal.PickerMaxVisible, p.cursor, len(p.movies))
	for i := start; i < end; i++ {
		m := p.movies[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := layout.TruncateWithSuffix(m.Title, fmt.Sprintf(" (%s)", m.Year()), rowWidth, p.cfg.Text)
		fmt.Fprintf(&b, "%s%s\n", cursor, style.Render(title))

		meta := fmt.Sprintf("★ %s  #%d", m.Rating(), m.ID)
		fmt.Fprintf(&b, "   %s\n", metaStyle.Render(meta))
	}

	b.WriteString("\n")
	b.WriteString(metaStyle.Render("j/k: move  Enter: details  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen movie, or nil if cancelled.
func (p Picker) Selected() *model.MovieSummary {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.movies) {
		m := p.movies[p.cursor]
		return &m
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

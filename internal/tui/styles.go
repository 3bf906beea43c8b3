package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Heading      lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Match        lipgloss.Style // Fuzzy-matched characters in the favorites filter
	Favorite     lipgloss.Style // The ♥ marker
	Rating       lipgloss.Style
	Year         lipgloss.Style
	Label        lipgloss.Style // Field labels in the details view
	Tagline      lipgloss.Style
	Page         lipgloss.Style
	PageCurrent  lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Success      lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	HintLabel    lipgloss.Style // "Local"/"Global" row labels
	Breadcrumb   lipgloss.Style // Location and favorites badge above the panes
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent; favorites in a muted red.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	heart := lipgloss.AdaptiveColor{Light: "#A04040", Dark: "#C06060"}
	gold := lipgloss.AdaptiveColor{Light: "#8A7030", Dark: "#C0A050"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			PaddingLeft(1),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Favorite: lipgloss.NewStyle().
			Foreground(heart),

		Rating: lipgloss.NewStyle().
			Foreground(gold),

		Year: lipgloss.NewStyle().
			Foreground(subtle),

		Label: lipgloss.NewStyle().
			Foreground(subtle).
			Width(10),

		Tagline: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Page: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		PageCurrent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(accent).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(border),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),
	}
}

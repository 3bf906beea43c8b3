package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the rendered cell width of s, ignoring escape codes.
// Wide runes count as two cells.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText shortens text to maxWidth cells, ending with the ellipsis.
// Escape codes are preserved, so highlighted fuzzy matches survive.
func TruncateText(text string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis)
}

// TruncateWithSuffix shortens text while keeping suffix intact.
// Example: TruncateWithSuffix("The Lord of the Rings", " (2001)", 18, cfg) -> "The Lord... (2001)"
func TruncateWithSuffix(text, suffix string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(text)+VisibleLength(suffix) <= maxWidth {
		return text + suffix
	}

	room := maxWidth - VisibleLength(suffix)
	if room <= VisibleLength(cfg.Ellipsis) {
		return TruncateText(text+suffix, maxWidth, cfg)
	}
	return TruncateText(text, room, cfg) + suffix
}

// WrapText breaks text into lines of at most width cells, at spaces
// where possible.
func WrapText(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width <= 0 {
		return []string{text}
	}
	return strings.Split(ansi.Wrap(text, width, ""), "\n")
}

package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move h:back l:open"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for prompts: "y confirm  n cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, n/p, etc.)
	Action []Hint // Action hints (Enter, s, etc.)
	Edit   []Hint // Favorites hints (f, d)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeBrowse:
		return a.getBrowseModeHints()
	case ModeSearch:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "query"}},
			Action: []Hint{{Key: "Enter", Desc: "search"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeDetails:
		return a.getDetailsModeHints()
	case ModeFavorites:
		return a.getFavoritesModeHints()
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeConfirmRemove:
		return HintSet{
			Action: []Hint{{Key: "y", Desc: "remove"}},
			System: []Hint{{Key: "n/Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getBrowseModeHints returns hints for the results list.
func (a App) getBrowseModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "n/p", Desc: "page"},
			{Key: "l", Desc: "details"},
		},
		Action: []Hint{
			{Key: "s", Desc: "search"},
		},
		Edit: []Hint{
			{Key: "f", Desc: "fav"},
			{Key: "F", Desc: "favorites"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if a.browse.State().Query != "" {
		hints.Action = append(hints.Action, Hint{Key: "x", Desc: "clear"})
	}
	if a.browse.View().Err != nil {
		hints.Action = append(hints.Action, Hint{Key: "r", Desc: "retry"})
	}
	return hints
}

// getDetailsModeHints returns hints for the details view.
func (a App) getDetailsModeHints() HintSet {
	if a.details.Err != nil {
		return HintSet{
			Nav:    []Hint{{Key: "h", Desc: "back"}},
			Action: []Hint{{Key: "r", Desc: "retry"}},
			System: []Hint{{Key: "q", Desc: "quit"}},
		}
	}
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "scroll"},
			{Key: "h", Desc: "back"},
		},
		Action: []Hint{
			{Key: "o", Desc: "open"},
			{Key: "Y", Desc: "yank"},
		},
		Edit: []Hint{
			{Key: "f", Desc: "fav"},
		},
		System: []Hint{
			{Key: "q", Desc: "quit"},
		},
	}
}

// getFavoritesModeHints returns hints for the favorites list.
func (a App) getFavoritesModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h", Desc: "back"},
			{Key: "l", Desc: "details"},
		},
		Action: []Hint{
			{Key: "/", Desc: "filter"},
		},
		Edit: []Hint{
			{Key: "d", Desc: "remove"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getGlobalHints returns hints available from every list screen.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "Y", Desc: "yank url"},
		{Key: "o", Desc: "browser"},
		{Key: "gg/G", Desc: "top/bottom"},
	}
}

package layout

// SplitLayout holds the list and preview widths of the browse screen.
type SplitLayout struct {
	ListWidth    int
	PreviewWidth int // 0 when the preview is hidden
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSplitLayout divides the width between results list and preview.
// Narrow terminals drop the preview and give the list the full width.
func CalculateSplitLayout(terminalWidth int, cfg PaneConfig) SplitLayout {
	usable := terminalWidth - cfg.SplitWidthOffset
	list := usable * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}

	preview := usable - list
	if preview < cfg.MinPreviewWidth {
		// One pane: one border pair fewer to account for
		full := usable + 2
		if full < cfg.MinListWidth {
			full = cfg.MinListWidth
		}
		return SplitLayout{ListWidth: full}
	}

	return SplitLayout{ListWidth: list, PreviewWidth: preview}
}

// CalculateItemWidth computes the width available for row content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible row count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := max(selected-viewportHeight/2, 0)
	return min(offset, total-viewportHeight)
}

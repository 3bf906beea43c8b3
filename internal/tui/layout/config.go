package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane       PaneConfig
	Modal      ModalConfig
	Input      InputConfig
	Text       TextConfig
	Pagination PaginationConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + breadcrumb (1) + input (1) + heading (1) + pane borders (2) + page bar (1) + help bar (3) = 10
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// ListWidthPercent is the share of the width given to the results list.
	// The preview pane takes the rest.
	ListWidthPercent int

	// SplitWidthOffset is subtracted before splitting.
	// Accounts for app padding (4) and the borders of both panes (4).
	SplitWidthOffset int

	// MinListWidth is the minimum results list width.
	MinListWidth int

	// MinPreviewWidth is the minimum preview width; below it the preview is hidden.
	MinPreviewWidth int

	// ContentPadding is subtracted from pane width for row rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// PickerMaxVisible: max results shown in the quick search picker.
	PickerMaxVisible int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	FilterCharLimit int

	SearchWidth int
	FilterWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// PaginationConfig controls the page bar.
type PaginationConfig struct {
	// Delta is the number of pages shown on each side of the current page.
	Delta int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  10,
			MinHeight:        5,
			ListWidthPercent: 45,
			SplitWidthOffset: 8,
			MinListWidth:     30,
			MinPreviewWidth:  30,
			ContentPadding:   4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			PickerMaxVisible:     10,
			HelpLeftColumnWidth:  14,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			FilterCharLimit: 50,
			SearchWidth:     40,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Pagination: PaginationConfig{
			Delta: 2,
		},
	}
}

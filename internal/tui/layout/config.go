package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before splitting the width between the
	// card list and the detail pane: app padding (4) + pane borders (4).
	WidthOffset int

	// ListWidthPercent is the card list's share of the remaining width.
	ListWidthPercent int

	// MinPaneWidth is the minimum width of either pane.
	MinPaneWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane padding on each side.
	ContentPadding int

	// ListTop is the terminal row of the first card in the list:
	// app padding (1) + header (1) + pane top border (1).
	ListTop int

	// ListLeft is the terminal column where the list pane starts.
	ListLeft int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the artist modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HeightReduction is subtracted from terminal height for modal body lines.
	HeightReduction int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  7, // app padding (1) + header (1) + pane borders (2) + help bar (3)
			MinHeight:        5,
			WidthOffset:      8,
			ListWidthPercent: 45,
			MinPaneWidth:     20,
			ContentPadding:   2,
			ListTop:          3,
			ListLeft:         2,
		},
		Modal: ModalConfig{
			WidthPercent:         60,
			MinWidth:             50,
			MaxWidth:             90,
			HeightReduction:      8,
			HelpLeftColumnWidth:  26,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}

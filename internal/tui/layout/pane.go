package layout

// PaneLayout holds calculated pane dimensions.
type PaneLayout struct {
	ListWidth   int
	DetailWidth int
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

// CalculatePaneWidths splits the terminal width between the card list and
// the detail pane. Each pane gets at least MinPaneWidth.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	list := available * cfg.ListWidthPercent / 100
	if list < cfg.MinPaneWidth {
		list = cfg.MinPaneWidth
	}
	detail := available - list
	if detail < cfg.MinPaneWidth {
		detail = cfg.MinPaneWidth
	}

	return PaneLayout{
		ListWidth:   list,
		DetailWidth: detail,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

// ListHit describes where the card list sits on screen.
type ListHit struct {
	Top     int // first row
	Left    int // first column, including the border
	Width   int // pane width, including borders
	Visible int // rows of items shown
	Offset  int // index of the first shown item
	Total   int
}

// RowAt maps a terminal cell to the index of the item under it.
// Returns -1 when the cell is outside the list.
func RowAt(x, y int, hit ListHit) int {
	if x < hit.Left || x >= hit.Left+hit.Width {
		return -1
	}
	row := y - hit.Top
	if row < 0 || row >= hit.Visible {
		return -1
	}
	idx := hit.Offset + row
	if idx >= hit.Total {
		return -1
	}
	return idx
}

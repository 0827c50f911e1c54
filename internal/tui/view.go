package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/preview"
	"github.com/nikbrunner/groupie/internal/tui/layout"
)

// renderView creates the list and detail view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeModal:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	widths := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderListPane(widths.ListWidth, paneHeight),
		a.renderDetailPane(widths.DetailWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the search box, country, sort mode and count on one line.
func (a App) renderHeader() string {
	parts := []string{a.styles.Title.Render("groupie")}

	switch {
	case a.mode == ModeSearch:
		parts = append(parts, a.search.Input.View())
	case a.search.Input.Value() != "":
		parts = append(parts, "/"+a.search.Input.Value())
	}

	country := a.country.Selected()
	if country == "" {
		country = "all"
	}
	parts = append(parts,
		"country:"+country,
		"sort:"+a.sortMode.Label(),
		fmt.Sprintf("%d/%d", a.container.Len(), len(a.entries)),
	)

	return a.styles.Header.Render(strings.Join(parts, "  "))
}

func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	total := a.container.Len()

	if total == 0 {
		content.WriteString(a.styles.Empty.Render("(no matches)"))
	} else {
		offset := layout.CalculateViewportOffset(a.cursor, total, visibleHeight)
		for i := offset; i < total && i < offset+visibleHeight; i++ {
			content.WriteString(a.renderRow(i, itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.mode == ModeNormal {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderRow renders one card of the list. A previewed card is marked with
// a note, the row under the mouse with an arrow.
func (a App) renderRow(i, maxWidth int) string {
	card := a.container.At(i)
	name := card.Detail.Name
	if e := a.byCard[card]; e != nil && e.Name != "" {
		name = e.Name
	}

	marker := "  "
	switch {
	case card.LabelVisible():
		marker = "♪ "
	case i == a.hover:
		marker = "› "
	}

	text, _ := layout.TruncateText(marker+name, maxWidth, a.layoutConfig.Text)
	if i == a.cursor && a.mode == ModeNormal {
		return a.styles.ItemSelected.Width(maxWidth).Render(text)
	}
	return a.styles.Item.Render(text)
}

func (a App) renderDetailPane(width, height int) string {
	var content strings.Builder

	// Hover wins over the cursor.
	card := a.active
	if card == nil {
		card = a.container.At(a.cursor)
	}
	if card == nil {
		content.WriteString(a.styles.Empty.Render("(no artist selected)"))
	} else {
		a.writeDetail(&content, card)
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) writeDetail(b *strings.Builder, card *model.Card) {
	e := a.byCard[card]
	if e == nil {
		e = &model.ArtistEntry{Name: card.Detail.Name}
	}

	b.WriteString(a.styles.Title.Render(e.Name) + "\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(a.styles.Meta.Render(layout.PadRight(label, 10)) + value + "\n")
	}
	row("Country", e.Country)
	row("Cities", e.Cities)
	row("Tour", e.DateRange)
	if e.YearSet {
		row("Since", strconv.Itoa(e.Year))
	}
	row("Concerts", strconv.Itoa(e.ConcertCount))
	row("Members", strings.Join(card.Detail.Members, ", "))
	row("Album", card.Detail.FirstAlbum)

	if card.LabelVisible() {
		b.WriteString("\n")
		for i, line := range card.Label().Lines() {
			prefix := "  "
			if i == 0 {
				prefix = "♪ "
			}
			b.WriteString(a.styles.Label.Render(prefix+line) + "\n")
		}
		switch {
		case a.preview.Playing():
			b.WriteString(a.styles.Meta.Render("  playing") + "\n")
		case !a.preview.Interacted():
			b.WriteString(a.styles.Meta.Render("  muted until the first key or click") + "\n")
		}
		return
	}

	if a.preview.Card() == card {
		switch a.preview.State() {
		case preview.StatePending, preview.StateFetching:
			b.WriteString("\n" + a.styles.Meta.Render("preview "+a.preview.State().String()+"...") + "\n")
		}
	}
}

// renderHelpBar renders the message line, the contextual hints and the
// preview status.
func (a App) renderHelpBar() string {
	lines := make([]string, 0, 3)

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, a.styles.HintLabel.Render("Keys   ")+a.renderHints(a.getContextualHints()))
	lines = append(lines, a.renderStatusLine())

	return strings.Join(lines, "\n")
}

// renderStatusLine shows the preview state and the track being played.
func (a App) renderStatusLine() string {
	var status strings.Builder

	status.WriteString(a.styles.HintLabel.Render("Status "))
	status.WriteString("[preview:" + a.preview.State().String() + "]")
	if track, ok := a.preview.Current(); ok {
		state := "loaded"
		if a.preview.Playing() {
			state = "playing"
		}
		status.WriteString(fmt.Sprintf(" [%s:%s]", state, track.TrackName))
	}

	return a.styles.Help.Render(status.String())
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// modalWidth is the outer width of the artist modal.
func (a App) modalWidth() int {
	return layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.WidthPercent, a.layoutConfig.Modal)
}

// modalBodyLines lays out the open modal as wrapped lines for scrolling.
func (a App) modalBodyLines() []string {
	v := a.modal.View()
	width := a.modalWidth() - 4 // horizontal padding

	var lines []string
	add := func(text string) {
		lines = append(lines, wrap(text, width)...)
	}
	field := func(label, value string) {
		if value != "" {
			add(a.styles.Meta.Render(layout.PadRight(label, 13)) + value)
		}
	}

	lines = append(lines, a.styles.Title.Render(v.Name))
	field("Members", v.Members)
	field("First album", v.Album)
	field("Created", v.Date)
	field("Image", v.Image)

	if track, ok := a.preview.Current(); ok {
		lines = append(lines, "")
		add(a.styles.Label.Render("♪ " + track.TrackName + " · " + track.CollectionName))
	}

	lines = append(lines, "", a.styles.Title.Render("Tour dates"))
	if v.DatesNote != "" {
		lines = append(lines, a.styles.Empty.Render(v.DatesNote))
	} else {
		lines = append(lines, a.packBadges(v.TourDates, width, "")...)
	}

	lines = append(lines, "", a.styles.Title.Render("Events"))
	if v.EventsNote != "" {
		lines = append(lines, a.styles.Empty.Render(v.EventsNote))
	}
	for _, ev := range v.Events {
		add(a.styles.Item.Render(ev.Location))
		lines = append(lines, a.packBadges(ev.Dates, width, "  ")...)
	}

	lines = append(lines, "", a.styles.Title.Render("Locations"))
	if v.LocationsNote != "" {
		lines = append(lines, a.styles.Empty.Render(v.LocationsNote))
	} else {
		lines = append(lines, a.packBadges(v.Locations, width, "")...)
	}

	return lines
}

// renderModal renders the artist detail modal centered over the screen.
func (a App) renderModal() string {
	lines := a.modalBodyLines()
	bodyHeight := layout.CalculateModalBodyHeight(a.height, a.layoutConfig.Modal)
	scroll := layout.ClampScroll(a.modalScroll, len(lines), bodyHeight)
	end := min(scroll+bodyHeight, len(lines))

	var content strings.Builder
	content.WriteString(strings.Join(lines[scroll:end], "\n"))
	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline(a.getContextualHints().All()))

	box := a.styles.Modal.Width(a.modalWidth()).Render(content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

// packBadges renders items as badges and fills lines up to width.
func (a App) packBadges(items []string, width int, indent string) []string {
	var lines []string
	indentWidth := lipgloss.Width(indent)
	line, lineWidth := indent, indentWidth

	for _, item := range items {
		badge := a.styles.Badge.Render(item)
		w := lipgloss.Width(badge)
		if lineWidth > indentWidth && lineWidth+1+w > width {
			lines = append(lines, line)
			line, lineWidth = indent, indentWidth
		}
		if lineWidth > indentWidth {
			line += " "
			lineWidth++
		}
		line += badge
		lineWidth += w
	}
	if lineWidth > indentWidth {
		lines = append(lines, line)
	}
	return lines
}

func wrap(text string, width int) []string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return []string{text}
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg     top\n")
	left.WriteString("G      bottom\n")
	left.WriteString("mouse  hover to preview\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("filter") + "\n")
	left.WriteString("/      search names\n")
	left.WriteString("c/C    country\n")
	left.WriteString("o      sort mode\n")
	left.WriteString("esc    clear search\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("artist") + "\n")
	right.WriteString("enter  details\n")
	right.WriteString("click  details\n")
	right.WriteString("esc/q  close details\n")
	right.WriteString("Y      yank track\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("preview") + "\n")
	right.WriteString("stay on a card for a\n")
	right.WriteString("moment to hear it\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc/q] close  [ctrl+c] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

// scrollModal moves the modal body by delta lines within its bounds.
func (a *App) scrollModal(delta int) {
	visible := layout.CalculateModalBodyHeight(a.height, a.layoutConfig.Modal)
	a.modalScroll = layout.ClampScroll(a.modalScroll+delta, len(a.modalBodyLines()), visible)
}

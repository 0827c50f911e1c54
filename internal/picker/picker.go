package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F8787")).
			Underline(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a small TUI for choosing one artist from search results.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		cursor:  0,
		width:   80,
		height:  24,
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
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.move(1)
			return p, nil

		case tea.KeyUp:
			p.move(-1)
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.move(1)
				return p, nil
			case "k":
				p.move(-1)
				return p, nil
			case "g":
				p.cursor = 0
				return p, nil
			case "G":
				p.cursor = max(len(p.results)-1, 0)
				return p, nil
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next >= 0 && next < len(p.results) {
		p.cursor = next
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	noun := "artists"
	if len(p.results) == 1 {
		noun = "artist"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d %s match %q", len(p.results), noun, p.query)))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "♪ "
			style = selectedStyle
		}

		b.WriteString(cursor)
		for _, seg := range splitMatched(result.Entry.Name, result.MatchedIndexes) {
			if seg.matched {
				b.WriteString(style.Inherit(matchStyle).Render(seg.text))
			} else {
				b.WriteString(style.Render(seg.text))
			}
		}
		b.WriteString("\n")
		if meta := entryMeta(result.Entry); meta != "" {
			b.WriteString(fmt.Sprintf("   %s\n", metaStyle.Render(meta)))
		}
	}

	b.WriteString("\n")
	b.WriteString(metaStyle.Render("j/k: move  g/G: top/bottom  Enter: show details  q/Esc: cancel"))

	return b.String()
}

// segment is a run of name characters that either all matched the query or
// all did not.
type segment struct {
	text    string
	matched bool
}

// splitMatched cuts name into runs by the fuzzy match byte indexes.
func splitMatched(name string, indexes []int) []segment {
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}

	var segs []segment
	for i, r := range name {
		m := hit[i]
		if n := len(segs); n > 0 && segs[n-1].matched == m {
			segs[n-1].text += string(r)
			continue
		}
		segs = append(segs, segment{text: string(r), matched: m})
	}
	return segs
}

// entryMeta is the dim second line: country, year and concert count.
func entryMeta(e *model.ArtistEntry) string {
	var parts []string
	if e.Country != "" {
		parts = append(parts, e.Country)
	}
	if e.YearSet {
		parts = append(parts, fmt.Sprintf("since %d", e.Year))
	}
	if e.ConcertCount > 0 {
		parts = append(parts, fmt.Sprintf("%d concerts", e.ConcertCount))
	}
	return strings.Join(parts, " · ")
}

// Selected returns the chosen artist, or nil if cancelled.
func (p Picker) Selected() *model.ArtistEntry {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Entry
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

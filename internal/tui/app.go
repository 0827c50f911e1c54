package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/groupie/internal/catalog"
	"github.com/nikbrunner/groupie/internal/filter"
	"github.com/nikbrunner/groupie/internal/modal"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/preview"
	"github.com/nikbrunner/groupie/internal/render"
	"github.com/nikbrunner/groupie/internal/tui/layout"
)

// App is the main bubbletea model for the artist browser.
type App struct {
	entries   []*model.ArtistEntry
	byCard    map[*model.Card]*model.ArtistEntry
	engine    *filter.Engine
	container *render.Container
	preview   *preview.Scheduler
	modal     *modal.Controller
	clipboard func(string) error
	log       zerolog.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode     Mode
	search   SearchState
	country  CountryState
	sortMode model.SortMode

	cursor        int
	hover         int         // list row under the mouse, -1 for none
	active        *model.Card // card whose hover or focus armed the preview
	activeByHover bool
	modalScroll   int

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Entries      []*model.ArtistEntry
	Preview      *preview.Scheduler      // required
	Countries    []string                // optional, derived from Entries if nil
	Engine       *filter.Engine          // optional, English collation if nil
	Keys         *KeyMap                 // optional, uses default if nil
	Styles       *Styles                 // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig    // optional, uses default if nil
	Clipboard    func(text string) error // optional, system clipboard if nil
	Logger       *zerolog.Logger         // optional
}

// NewApp creates a new App and renders the unfiltered collection.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	engine := params.Engine
	if engine == nil {
		engine = filter.NewEngine("")
	}

	countries := params.Countries
	if countries == nil {
		countries = catalog.Countries(params.Entries)
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	log := zerolog.Nop()
	if params.Logger != nil {
		log = params.Logger.With().Str("component", "tui").Logger()
	}

	byCard := make(map[*model.Card]*model.ArtistEntry, len(params.Entries))
	for _, e := range params.Entries {
		byCard[e.Card] = e
	}

	app := App{
		entries:      params.Entries,
		byCard:       byCard,
		engine:       engine,
		container:    render.NewContainer(),
		preview:      params.Preview,
		modal:        modal.NewController(params.Preview),
		clipboard:    copyFn,
		log:          log,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		mode:         ModeNormal,
		search:       NewSearchState(layoutCfg),
		country:      NewCountryState(countries),
		hover:        -1,
		width:        80,
		height:       24,
	}

	app.refresh()
	return app
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Criteria returns the active filter and sort selection.
func (a App) Criteria() model.FilterCriteria {
	return model.FilterCriteria{
		Query:    a.search.Input.Value(),
		Country:  a.country.Selected(),
		SortMode: a.sortMode,
	}
}

// Visible returns the rendered entries in display order.
func (a App) Visible() []*model.ArtistEntry {
	cards := a.container.Children()
	out := make([]*model.ArtistEntry, len(cards))
	for i, c := range cards {
		out[i] = a.byCard[c]
	}
	return out
}

// Container exposes the rendered card container.
func (a App) Container() *render.Container {
	return a.container
}

// ActiveCard is the card whose preview is armed, or nil.
func (a App) ActiveCard() *model.Card {
	return a.active
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

// refresh re-runs the filter and re-renders the container.
func (a *App) refresh() {
	ordered := a.engine.Apply(a.entries, a.Criteria())
	render.Render(a.container, ordered)

	if a.cursor >= a.container.Len() {
		a.cursor = max(a.container.Len()-1, 0)
	}
	a.hover = -1
	if a.active != nil && a.container.IndexOf(a.active) < 0 {
		a.setActive(nil, false)
	}
}

// setActive moves the preview to card, disarming the previous one.
func (a *App) setActive(card *model.Card, byHover bool) tea.Cmd {
	if card == a.active {
		a.activeByHover = byHover
		return nil
	}
	if a.active != nil {
		a.preview.Disarm(a.modal.IsOpen())
	}
	a.active = card
	a.activeByHover = byHover
	if card == nil {
		return nil
	}

	name := card.Detail.Name
	if e, ok := a.byCard[card]; ok && e.Name != "" {
		name = e.Name
	}
	return a.preview.Arm(name, card)
}

func (a *App) focusCursor() tea.Cmd {
	return a.setActive(a.container.At(a.cursor), false)
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case preview.FireMsg, preview.ResolvedMsg:
		return a, a.preview.Update(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		a.preview.MarkInteracted()
		a.messageText = ""

		switch a.mode {
		case ModeSearch:
			return a.handleSearchKey(msg)
		case ModeModal:
			return a.handleModalKey(msg)
		case ModeHelp:
			return a.handleHelpKey(msg)
		default:
			return a.handleNormalKey(msg)
		}
	}

	if a.mode == ModeSearch {
		var cmd tea.Cmd
		a.search.Input, cmd = a.search.Input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.cursor = 0
			return a, a.focusCursor()
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.container.Len()-1 {
			a.cursor++
		}
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.Bottom):
		if a.container.Len() > 0 {
			a.cursor = a.container.Len() - 1
		}
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.setActive(nil, false)
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Country):
		a.country.Step(1)
		a.refresh()
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.CountryPrev):
		a.country.Step(-1)
		a.refresh()
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.Sort):
		a.sortMode = a.sortMode.Next()
		a.refresh()
		return a, a.focusCursor()

	case key.Matches(msg, a.keys.Open):
		a.openModal()
		return a, nil

	case key.Matches(msg, a.keys.YankTrack):
		a.yankTrack()
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case msg.Type == tea.KeyEsc:
		if a.search.Input.Value() != "" {
			a.search.Reset()
			a.cursor = 0
			a.refresh()
			return a, a.focusCursor()
		}
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a.quit()

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.search.Input.Blur()
		return a, a.focusCursor()

	case tea.KeyEsc:
		a.mode = ModeNormal
		a.search.Input.Blur()
		a.search.Reset()
		a.cursor = 0
		a.refresh()
		return a, a.focusCursor()
	}

	before := a.search.Input.Value()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if a.search.Input.Value() != before {
		a.cursor = 0
		a.refresh()
	}
	return a, cmd
}

func (a App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a.quit()

	case key.Matches(msg, a.keys.Close):
		a.closeModal()

	case key.Matches(msg, a.keys.Down):
		a.scrollModal(1)

	case key.Matches(msg, a.keys.Up):
		a.scrollModal(-1)

	case key.Matches(msg, a.keys.Top):
		a.modalScroll = 0

	case key.Matches(msg, a.keys.YankTrack):
		a.yankTrack()
	}
	return a, nil
}

func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a.quit()
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Close):
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress {
		a.preview.MarkInteracted()
	}

	if a.mode == ModeModal {
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			a.scrollModal(1)
		case tea.MouseButtonWheelUp:
			a.scrollModal(-1)
		}
		return a, nil
	}
	if a.mode != ModeNormal {
		return a, nil
	}

	idx := layout.RowAt(msg.X, msg.Y, a.listHit())

	switch {
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		if a.cursor < a.container.Len()-1 {
			a.cursor++
		}
		return a, a.focusCursor()

	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		if a.cursor > 0 {
			a.cursor--
		}
		return a, a.focusCursor()

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if idx < 0 {
			return a, nil
		}
		a.cursor = idx
		a.hover = idx
		a.openModal()
		return a, nil

	case msg.Action == tea.MouseActionMotion:
		a.hover = idx
		if idx >= 0 {
			return a, a.setActive(a.container.At(idx), true)
		}
		if a.activeByHover {
			return a, a.setActive(nil, false)
		}
	}

	return a, nil
}

// listHit places the card list on screen for mouse hit tests.
func (a App) listHit() layout.ListHit {
	cfg := a.layoutConfig.Pane
	widths := layout.CalculatePaneWidths(a.width, cfg)
	visible := layout.CalculateVisibleHeight(layout.CalculatePaneHeight(a.height, cfg), 0)
	total := a.container.Len()

	return layout.ListHit{
		Top:     cfg.ListTop,
		Left:    cfg.ListLeft,
		Width:   widths.ListWidth + 2,
		Visible: visible,
		Offset:  layout.CalculateViewportOffset(a.cursor, total, visible),
		Total:   total,
	}
}

func (a *App) openModal() {
	card := a.container.At(a.cursor)
	if card == nil {
		return
	}
	// Open ends the session itself and keeps its playback.
	a.modal.Open(card.Detail)
	a.active = nil
	a.activeByHover = false
	a.mode = ModeModal
	a.modalScroll = 0
}

func (a *App) closeModal() {
	a.modal.Close()
	a.active = nil
	a.mode = ModeNormal
	a.modalScroll = 0
}

func (a *App) yankTrack() {
	track, ok := a.preview.Current()
	if !ok {
		a.setMessage(MessageWarning, "No track previewed")
		return
	}

	text := fmt.Sprintf("%s - %s", track.ArtistName, track.TrackName)
	if err := a.clipboard(text); err != nil {
		a.log.Warn().Err(err).Msg("copy to clipboard")
		a.setMessage(MessageError, "Clipboard unavailable")
		return
	}
	a.setMessage(MessageSuccess, "Copied: "+text)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.preview.Disarm(false)
	a.active = nil
	return a, tea.Quit
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

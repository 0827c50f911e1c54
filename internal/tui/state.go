package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/groupie/internal/tui/layout"
)

// Mode is the input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeModal
	ModeHelp
)

// MessageType selects the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the free-text search box.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search artists..."
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth

	return SearchState{Input: input}
}

// Reset clears the query.
func (s *SearchState) Reset() {
	s.Input.Reset()
}

// CountryState is the country dropdown: "" followed by the sorted countries.
type CountryState struct {
	Options []string
	Index   int
}

// NewCountryState prepends the "all countries" option.
func NewCountryState(countries []string) CountryState {
	return CountryState{Options: append([]string{""}, countries...)}
}

// Selected returns the chosen country, "" for all.
func (c CountryState) Selected() string {
	if c.Index < 0 || c.Index >= len(c.Options) {
		return ""
	}
	return c.Options[c.Index]
}

// Step moves the selection by delta, wrapping around.
func (c *CountryState) Step(delta int) {
	n := len(c.Options)
	if n == 0 {
		return
	}
	c.Index = ((c.Index+delta)%n + n) % n
}

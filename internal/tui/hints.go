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

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Esc close  j/k scroll"
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
	Nav    []Hint
	Filter []Hint
	Action []Hint
	System []Hint
}

// All returns all hints flattened in display order: Nav + Filter + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Filter)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Filter...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeSearch:
		return HintSet{
			Action: []Hint{{"Enter", "apply"}},
			System: []Hint{{"Esc", "clear"}},
		}
	case ModeModal:
		return HintSet{
			Nav:    []Hint{{"j/k", "scroll"}},
			Action: []Hint{{"Y", "yank track"}},
			System: []Hint{{"Esc/q", "close"}},
		}
	case ModeHelp:
		return HintSet{System: []Hint{{"?/Esc", "close"}}}
	default:
		return a.getNormalModeHints()
	}
}

func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav:    []Hint{{"j/k", "move"}, {"gg/G", "top/bottom"}},
		Filter: []Hint{{"/", "search"}, {"c/C", "country"}, {"o", "sort"}},
		Action: []Hint{{"Enter", "details"}},
		System: []Hint{{"?", "help"}, {"q", "quit"}},
	}
	if a.search.Input.Value() != "" {
		hints.Filter = append(hints.Filter, Hint{"Esc", "clear search"})
	}
	if _, ok := a.preview.Current(); ok {
		hints.Action = append(hints.Action, Hint{"Y", "yank track"})
	}
	return hints
}

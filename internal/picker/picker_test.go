package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/search"
)

func twoResults() []search.Result {
	return []search.Result{
		{Entry: &model.ArtistEntry{Name: "Queen", Country: "UK", Year: 1970, YearSet: true, ConcertCount: 8}},
		{Entry: &model.ArtistEntry{Name: "Queens of the Stone Age", Country: "USA"}},
	}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(twoResults(), "queen")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_NavigateDownUp(t *testing.T) {
	p := New(twoResults(), "queen")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(twoResults()[:1], "queen")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 item), got %d", p.cursor)
	}
}

func TestPicker_JumpToBottom(t *testing.T) {
	p := New(twoResults(), "queen")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	results := twoResults()
	p := New(results, "queen")
	p.cursor = 1

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if got := p.Selected(); got != results[1].Entry {
		t.Errorf("expected Queens of the Stone Age, got %v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(twoResults(), "queen")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.Cancelled() {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.Selected() != nil {
		t.Error("expected nil when cancelled")
	}
}

func TestPicker_View(t *testing.T) {
	view := New(twoResults(), "queen").View()

	for _, want := range []string{"Queen", "UK · since 1970 · 8 concerts", "Queens of the Stone Age", "USA"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPicker_Top(t *testing.T) {
	p := New(twoResults(), "queen")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after g, got %d", p.cursor)
	}
}

func TestPicker_ViewHeader(t *testing.T) {
	view := New(twoResults()[:1], "que").View()

	if !strings.Contains(view, `1 artist match "que"`) {
		t.Errorf("expected singular header, got:\n%s", view)
	}
}

func TestSplitMatched(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		indexes []int
		want    []segment
	}{
		{"no match", "Queen", nil, []segment{{"Queen", false}}},
		{"prefix", "Queen", []int{0, 1, 2}, []segment{{"Que", true}, {"en", false}}},
		{"scattered", "ACDC", []int{0, 2}, []segment{{"A", true}, {"C", false}, {"D", true}, {"C", false}}},
		{"multibyte", "Ätna", []int{2}, []segment{{"Ä", false}, {"t", true}, {"na", false}}},
		{"empty", "", []int{0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMatched(tt.input, tt.indexes)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d segments, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

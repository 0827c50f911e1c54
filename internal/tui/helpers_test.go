package tui_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/groupie/internal/audio"
	"github.com/nikbrunner/groupie/internal/itunes"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/preview"
	"github.com/nikbrunner/groupie/internal/tui"
)

// echoSearcher returns one exact-match track for any artist.
type echoSearcher struct{}

func (echoSearcher) SearchSongs(_ context.Context, artist string) ([]itunes.Track, error) {
	return []itunes.Track{{
		ArtistName:      artist,
		TrackName:       artist + " Song",
		CollectionName:  artist + " Album",
		PreviewURL:      "https://previews/" + artist,
		ReleaseDate:     "1980-01-01T00:00:00Z",
		TrackTimeMillis: 125000,
	}}, nil
}

type stubHandle struct {
	playing bool
}

func (h *stubHandle) Play() error {
	h.playing = true
	return nil
}

func (h *stubHandle) Stop() error {
	h.playing = false
	return nil
}

func (h *stubHandle) Playing() bool { return h.playing }

type stubPlayer struct {
	handles []*stubHandle
}

func (p *stubPlayer) Load(string) (audio.Handle, error) {
	h := &stubHandle{}
	p.handles = append(p.handles, h)
	return h, nil
}

func testEntries() []*model.ArtistEntry {
	mk := func(name, country string, year, concerts int) *model.ArtistEntry {
		return &model.ArtistEntry{
			Name:         name,
			Country:      country,
			Year:         year,
			YearSet:      year > 0,
			ConcertCount: concerts,
			Card:         model.NewCard(model.Detail{Name: name, CreationDate: year}),
		}
	}
	return []*model.ArtistEntry{
		mk("Queen", "UK", 1970, 8),
		mk("ACDC", "AUSTRALIA", 1973, 12),
		mk("Pink Floyd", "UK", 1965, 3),
		mk("Alec Benjamin", "USA", 0, 5),
	}
}

type fixture struct {
	app       tui.App
	entries   []*model.ArtistEntry
	scheduler *preview.Scheduler
	player    *stubPlayer
	copied    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{entries: testEntries(), player: &stubPlayer{}}
	f.scheduler = preview.NewScheduler(preview.Params{
		Searcher: echoSearcher{},
		Player:   f.player,
		Delay:    time.Millisecond,
	})
	f.app = tui.NewApp(tui.AppParams{
		Entries: f.entries,
		Preview: f.scheduler,
		Clipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	}).WithDimensions(100, 30)
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	updated, cmd := f.app.Update(msg)
	f.app = updated.(tui.App)
	return cmd
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		switch k {
		case "enter":
			cmd = f.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			cmd = f.send(tea.KeyMsg{Type: tea.KeyEsc})
		default:
			cmd = f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
	return cmd
}

// resolve runs an armed preview through its timer and search.
func (f *fixture) resolve(t *testing.T, arm tea.Cmd) {
	t.Helper()
	assert.Assert(t, arm != nil, "expected an armed preview")

	fire, ok := arm().(preview.FireMsg)
	assert.Assert(t, ok, "arm command must deliver a FireMsg")

	fetch := f.send(fire)
	assert.Assert(t, fetch != nil, "timer must start a search")

	resolved, ok := fetch().(preview.ResolvedMsg)
	assert.Assert(t, ok, "search command must deliver a ResolvedMsg")
	f.send(resolved)
}

// hoverRow is mouse motion over the given list row.
func hoverRow(row int) tea.MouseMsg {
	return tea.MouseMsg{X: 6, Y: 3 + row, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func names(entries []*model.ArtistEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

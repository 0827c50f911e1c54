package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/groupie/internal/audio"
	"github.com/nikbrunner/groupie/internal/itunes"
	"github.com/nikbrunner/groupie/internal/model"
)

type fakeSearcher struct {
	tracks []itunes.Track
	err    error
	calls  []string
}

func (f *fakeSearcher) SearchSongs(ctx context.Context, artist string) ([]itunes.Track, error) {
	f.calls = append(f.calls, artist)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.tracks, f.err
}

type fakeHandle struct {
	url     string
	playErr error
	playing bool
	stops   int
}

func (h *fakeHandle) Play() error {
	if h.playErr != nil {
		return h.playErr
	}
	h.playing = true
	return nil
}

func (h *fakeHandle) Stop() error {
	h.stops++
	h.playing = false
	return nil
}

func (h *fakeHandle) Playing() bool { return h.playing }

type fakePlayer struct {
	playErr error
	handles []*fakeHandle
}

func (p *fakePlayer) Load(url string) (audio.Handle, error) {
	if url == "" {
		return nil, audio.ErrEmptyURL
	}
	h := &fakeHandle{url: url, playErr: p.playErr}
	p.handles = append(p.handles, h)
	return h, nil
}

type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

var queenTracks = []itunes.Track{
	{ArtistName: "Queen", TrackName: "Innuendo", CollectionName: "Innuendo", PreviewURL: "u1", ReleaseDate: "1991-02-05T08:00:00Z", TrackTimeMillis: 392000},
	{ArtistName: "Queen Latifah", TrackName: "U.N.I.T.Y.", PreviewURL: "u2"},
	{ArtistName: "QUEEN", TrackName: "Bicycle Race", CollectionName: "Jazz", PreviewURL: "u3", ReleaseDate: "1978-10-13T07:00:00Z", TrackTimeMillis: 181000},
}

func newTestScheduler(searcher Searcher, player audio.Player, r Rand) *Scheduler {
	return NewScheduler(Params{
		Searcher: searcher,
		Player:   player,
		Delay:    time.Millisecond,
		Rand:     r,
	})
}

// drive arms a session and runs its timer and search commands to completion.
func drive(t *testing.T, s *Scheduler, artist string, card *model.Card) {
	t.Helper()
	cmd := s.Arm(artist, card)
	assert.Assert(t, cmd != nil)
	assert.Equal(t, s.State(), StatePending)

	fetch := s.Update(cmd())
	assert.Assert(t, fetch != nil)
	assert.Equal(t, s.State(), StateFetching)

	assert.Assert(t, s.Update(fetch()) == nil)
}

func TestScheduler_ResolveShowsLabelAndPlaysAfterInteraction(t *testing.T) {
	searcher := &fakeSearcher{tracks: queenTracks}
	player := &fakePlayer{}
	s := newTestScheduler(searcher, player, fixedRand(1))
	s.MarkInteracted()
	card := model.NewCard(model.Detail{Name: "Queen"})

	drive(t, s, "Queen", card)

	assert.DeepEqual(t, searcher.calls, []string{"Queen"})
	assert.Equal(t, s.State(), StateResolved)
	assert.Equal(t, len(player.handles), 1)
	// index 1 of the exact matches is "Bicycle Race"
	assert.Equal(t, player.handles[0].url, "u3")
	assert.Assert(t, s.Playing())

	assert.Assert(t, card.LabelVisible())
	assert.DeepEqual(t, card.Label().Lines(), []string{"Bicycle Race", "Jazz", "Year: 1978 · 3:01"})

	track, ok := s.Current()
	assert.Assert(t, ok)
	assert.Equal(t, track.TrackName, "Bicycle Race")
}

func TestScheduler_NoInteractionLoadsWithoutPlaying(t *testing.T) {
	player := &fakePlayer{}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	card := model.NewCard(model.Detail{Name: "Queen"})

	drive(t, s, "Queen", card)

	assert.Equal(t, len(player.handles), 1)
	assert.Assert(t, !s.Playing())
	assert.Assert(t, card.LabelVisible())
}

func TestScheduler_ArmIsSingleFlight(t *testing.T) {
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, &fakePlayer{}, fixedRand(0))
	first := model.NewCard(model.Detail{Name: "Queen"})
	second := model.NewCard(model.Detail{Name: "ACDC"})

	cmd := s.Arm("Queen", first)
	assert.Assert(t, cmd != nil)
	assert.Assert(t, s.Arm("ACDC", second) == nil, "pending session must reject arm")

	fetch := s.Update(cmd())
	assert.Assert(t, s.Arm("ACDC", second) == nil, "fetching session must reject arm")
	s.Update(fetch())
	assert.Equal(t, s.State(), StateResolved)
	assert.Assert(t, s.Arm("ACDC", second) == nil, "resolved session must reject arm")
	assert.Equal(t, s.Card(), first)

	s.Disarm(false)
	assert.Assert(t, s.Arm("ACDC", second) != nil)
	assert.Equal(t, s.Card(), second)
}

func TestScheduler_DisarmWhilePendingDiscardsTimer(t *testing.T) {
	searcher := &fakeSearcher{tracks: queenTracks}
	s := newTestScheduler(searcher, &fakePlayer{}, fixedRand(0))

	cmd := s.Arm("Queen", model.NewCard(model.Detail{}))
	s.Disarm(false)
	assert.Equal(t, s.State(), StateIdle)

	assert.Assert(t, s.Update(cmd()) == nil)
	assert.Equal(t, len(searcher.calls), 0)
}

func TestScheduler_LateResultAfterDisarmIsDiscarded(t *testing.T) {
	player := &fakePlayer{}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	card := model.NewCard(model.Detail{Name: "Queen"})

	fetch := s.Update(s.Arm("Queen", card)())
	s.Disarm(false)

	// the cancelled context makes the fake fail; a forged success must be ignored too
	s.Update(fetch())
	s.Update(ResolvedMsg{Token: 1, Tracks: queenTracks})

	assert.Equal(t, len(player.handles), 0)
	assert.Assert(t, !card.HasLabel())
	assert.Equal(t, s.State(), StateIdle)
}

func TestScheduler_LateResultForSupersededSession(t *testing.T) {
	player := &fakePlayer{}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	old := model.NewCard(model.Detail{Name: "Queen"})
	next := model.NewCard(model.Detail{Name: "Queen"})

	s.Update(s.Arm("Queen", old)())
	s.Disarm(false)
	s.Arm("Queen", next)

	s.Update(ResolvedMsg{Token: 1, Tracks: queenTracks})
	assert.Equal(t, len(player.handles), 0)
	assert.Equal(t, s.State(), StatePending)
	assert.Assert(t, !old.HasLabel())
}

func TestScheduler_FailuresReturnToIdle(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
	}{
		{"network error", &fakeSearcher{err: errors.New("connection refused")}},
		{"no exact match", &fakeSearcher{tracks: []itunes.Track{{ArtistName: "Queens of the Stone Age", PreviewURL: "x"}}}},
		{"empty results", &fakeSearcher{}},
		{"empty preview url", &fakeSearcher{tracks: []itunes.Track{{ArtistName: "Queen"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &fakePlayer{}
			s := newTestScheduler(tt.searcher, player, fixedRand(0))
			card := model.NewCard(model.Detail{Name: "Queen"})

			drive(t, s, "Queen", card)

			assert.Equal(t, s.State(), StateIdle)
			assert.Assert(t, !card.LabelVisible())
			assert.Assert(t, !s.Playing())
			assert.Assert(t, s.Arm("Queen", card) != nil, "failed preview waits for the next arm")
		})
	}
}

func TestScheduler_PlaybackDeniedKeepsLabel(t *testing.T) {
	player := &fakePlayer{playErr: errors.New("autoplay denied")}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	s.MarkInteracted()
	card := model.NewCard(model.Detail{Name: "Queen"})

	drive(t, s, "Queen", card)

	assert.Equal(t, s.State(), StateResolved)
	assert.Assert(t, !s.Playing())
	assert.Assert(t, card.LabelVisible())
}

func TestScheduler_DisarmStopsPlaybackUnlessModalOpen(t *testing.T) {
	player := &fakePlayer{}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	s.MarkInteracted()
	card := model.NewCard(model.Detail{Name: "Queen"})

	drive(t, s, "Queen", card)
	s.Disarm(true)

	assert.Equal(t, s.State(), StateIdle)
	assert.Assert(t, s.Playing(), "modal keeps playback")
	assert.Assert(t, !card.LabelVisible())
	assert.Assert(t, card.HasLabel(), "hidden label is kept for reuse")

	s.Disarm(false)
	assert.Assert(t, !s.Playing())
	assert.Equal(t, player.handles[0].stops, 1)
	_, ok := s.Current()
	assert.Assert(t, !ok)
}

func TestScheduler_NewResolveStopsPreviousPlayback(t *testing.T) {
	player := &fakePlayer{}
	s := newTestScheduler(&fakeSearcher{tracks: queenTracks}, player, fixedRand(0))
	s.MarkInteracted()
	first := model.NewCard(model.Detail{Name: "Queen"})
	second := model.NewCard(model.Detail{Name: "Queen"})

	drive(t, s, "Queen", first)
	// modal open: session ends, playback continues
	s.Disarm(true)
	drive(t, s, "Queen", second)

	assert.Equal(t, len(player.handles), 2)
	assert.Assert(t, !player.handles[0].Playing())
	assert.Assert(t, player.handles[1].Playing())

	playing := 0
	for _, h := range player.handles {
		if h.Playing() {
			playing++
		}
	}
	assert.Equal(t, playing, 1)
}

func TestScheduler_IgnoresForeignMessages(t *testing.T) {
	s := newTestScheduler(&fakeSearcher{}, &fakePlayer{}, nil)
	assert.Assert(t, s.Update(tea.KeyMsg{}) == nil)
	assert.Equal(t, s.State(), StateIdle)
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{})
	assert.Equal(t, s.delay, DefaultDelay)
	assert.Equal(t, s.timeout, DefaultTimeout)
	assert.Assert(t, s.rand != nil)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, StateIdle.String(), "idle")
	assert.Equal(t, StatePending.String(), "pending")
	assert.Equal(t, StateFetching.String(), "fetching")
	assert.Equal(t, StateResolved.String(), "resolved")
}

// Package preview debounces hover and focus on an artist card into a single
// track preview: a delayed search, a random exact-artist pick, the card's
// label overlay and one exclusive audio playback.
package preview

import (
	"context"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/groupie/internal/audio"
	"github.com/nikbrunner/groupie/internal/itunes"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/overlay"
)

const (
	DefaultDelay   = 2000 * time.Millisecond
	DefaultTimeout = 10 * time.Second
)

// State is the lifecycle of the session.
type State int

const (
	StateIdle State = iota
	StatePending
	StateFetching
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetching:
		return "fetching"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Searcher finds candidate tracks for an artist name.
type Searcher interface {
	SearchSongs(ctx context.Context, artist string) ([]itunes.Track, error)
}

// Rand picks an index in [0, n).
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// FireMsg is delivered when the debounce delay of a session elapses.
type FireMsg struct {
	Token uint64
}

// ResolvedMsg carries the search result of a session.
type ResolvedMsg struct {
	Token  uint64
	Tracks []itunes.Track
	Err    error
}

type Params struct {
	Searcher Searcher
	Player   audio.Player
	Delay    time.Duration   // optional, defaults to DefaultDelay
	Timeout  time.Duration   // optional, defaults to DefaultTimeout
	Rand     Rand            // optional
	Logger   *zerolog.Logger // optional
}

type session struct {
	token  uint64
	artist string
	card   *model.Card
	state  State
	cancel context.CancelFunc
}

// Scheduler owns the one preview session, the one active playback and the
// page-wide interaction flag. Its methods must be called from the Update loop.
type Scheduler struct {
	searcher Searcher
	player   audio.Player
	delay    time.Duration
	timeout  time.Duration
	rand     Rand
	log      zerolog.Logger

	token      uint64
	session    *session
	labelled   *model.Card
	active     audio.Handle
	track      *itunes.Track
	interacted bool
}

func NewScheduler(params Params) *Scheduler {
	s := &Scheduler{
		searcher: params.Searcher,
		player:   params.Player,
		delay:    params.Delay,
		timeout:  params.Timeout,
		rand:     params.Rand,
		log:      zerolog.Nop(),
	}
	if s.delay <= 0 {
		s.delay = DefaultDelay
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.rand == nil {
		s.rand = globalRand{}
	}
	if params.Logger != nil {
		s.log = params.Logger.With().Str("component", "preview").Logger()
	}
	return s
}

// Arm starts a session for the card. It is dropped while any session exists.
func (s *Scheduler) Arm(artist string, card *model.Card) tea.Cmd {
	if s.session != nil {
		return nil
	}

	s.token++
	token := s.token
	s.session = &session{
		token:  token,
		artist: artist,
		card:   card,
		state:  StatePending,
	}

	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return FireMsg{Token: token}
	})
}

// Update advances the session on its own messages.
func (s *Scheduler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FireMsg:
		return s.fire(msg)
	case ResolvedMsg:
		s.resolve(msg)
	}
	return nil
}

func (s *Scheduler) fire(msg FireMsg) tea.Cmd {
	if !s.current(msg.Token) || s.session.state != StatePending {
		s.log.Debug().Uint64("token", msg.Token).Msg("stale timer")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.session.state = StateFetching
	s.session.cancel = cancel

	searcher, artist, token := s.searcher, s.session.artist, msg.Token
	return func() tea.Msg {
		tracks, err := searcher.SearchSongs(ctx, artist)
		return ResolvedMsg{Token: token, Tracks: tracks, Err: err}
	}
}

func (s *Scheduler) resolve(msg ResolvedMsg) {
	if !s.current(msg.Token) || s.session.state != StateFetching {
		s.log.Debug().Uint64("token", msg.Token).Msg("stale search result")
		return
	}

	sess := s.session
	sess.cancel()
	sess.cancel = nil

	if msg.Err != nil {
		s.log.Warn().Err(msg.Err).Str("artist", sess.artist).Msg("track search failed")
		s.session = nil
		return
	}

	matched := itunes.MatchArtist(msg.Tracks, sess.artist)
	if len(matched) == 0 {
		s.log.Debug().Str("artist", sess.artist).Int("results", len(msg.Tracks)).Msg("no exact artist match")
		s.session = nil
		return
	}

	track := matched[s.rand.IntN(len(matched))]
	s.StopPlayback()

	handle, err := s.player.Load(track.PreviewURL)
	if err != nil {
		s.log.Warn().Err(err).Str("track", track.TrackName).Msg("load preview")
		s.session = nil
		return
	}

	s.active = handle
	s.track = &track
	sess.state = StateResolved

	if sess.card != nil {
		sess.card.Label().Show(overlay.Info{
			Track:          track.TrackName,
			Album:          track.CollectionName,
			Year:           track.ReleaseYear(),
			DurationMillis: track.TrackTimeMillis,
		})
		s.labelled = sess.card
	}

	if !s.interacted {
		s.log.Debug().Str("track", track.TrackName).Msg("preview loaded without interaction, not playing")
		return
	}
	if err := handle.Play(); err != nil {
		s.log.Error().Err(err).Str("track", track.TrackName).Msg("playback denied")
	}
}

// Disarm ends the session. Playback survives while the modal is open.
func (s *Scheduler) Disarm(modalOpen bool) {
	if s.session != nil && s.session.cancel != nil {
		s.session.cancel()
	}
	s.session = nil

	if !modalOpen {
		s.StopPlayback()
	}
	if s.labelled != nil {
		s.labelled.Label().Hide()
		s.labelled = nil
	}
}

// StopPlayback stops and discards the active playback.
func (s *Scheduler) StopPlayback() {
	if s.active == nil {
		return
	}
	if err := s.active.Stop(); err != nil {
		s.log.Warn().Err(err).Msg("stop playback")
	}
	s.active = nil
	s.track = nil
}

// MarkInteracted records a user gesture; playback is allowed from now on.
func (s *Scheduler) MarkInteracted() {
	s.interacted = true
}

func (s *Scheduler) Interacted() bool {
	return s.interacted
}

func (s *Scheduler) State() State {
	if s.session == nil {
		return StateIdle
	}
	return s.session.state
}

// Current returns the track of the active playback.
func (s *Scheduler) Current() (itunes.Track, bool) {
	if s.track == nil {
		return itunes.Track{}, false
	}
	return *s.track, true
}

// Card returns the card of the live session, if any.
func (s *Scheduler) Card() *model.Card {
	if s.session == nil {
		return nil
	}
	return s.session.card
}

func (s *Scheduler) Playing() bool {
	return s.active != nil && s.active.Playing()
}

func (s *Scheduler) current(token uint64) bool {
	return s.session != nil && s.session.token == token
}

package itunes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikbrunner/groupie/internal/itunes"
	"gotest.tools/v3/assert"
)

func TestSearchSongs_QueryParameters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"term":      q.Get("term"),
			"entity":    q.Get("entity"),
			"attribute": q.Get("attribute"),
			"limit":     q.Get("limit"),
		}
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{
			"artistName":"Queen","trackName":"Innuendo","collectionName":"Innuendo",
			"previewUrl":"https://audio/innuendo.m4a","releaseDate":"1991-02-05T08:00:00Z","trackTimeMillis":392000}]}`))
	}))
	defer srv.Close()

	client := itunes.NewClient(itunes.ClientParams{BaseURL: srv.URL})
	tracks, err := client.SearchSongs(context.Background(), "Queen & Friends")
	assert.NilError(t, err)

	assert.DeepEqual(t, gotQuery, map[string]string{
		"term":      "Queen & Friends",
		"entity":    "song",
		"attribute": "artistTerm",
		"limit":     "20",
	})
	assert.Equal(t, len(tracks), 1)
	assert.Equal(t, tracks[0].PreviewURL, "https://audio/innuendo.m4a")
	assert.Equal(t, tracks[0].TrackTimeMillis, 392000)
	assert.Equal(t, tracks[0].ReleaseYear(), 1991)
}

func TestSearchSongs_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := itunes.NewClient(itunes.ClientParams{BaseURL: srv.URL}).SearchSongs(context.Background(), "x")
	assert.Assert(t, errors.Is(err, itunes.ErrUnexpectedStatus))
}

func TestSearchSongs_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := itunes.NewClient(itunes.ClientParams{BaseURL: srv.URL}).SearchSongs(ctx, "x")
	assert.Assert(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestMatchArtist_ExactCaseInsensitive(t *testing.T) {
	tracks := []itunes.Track{
		{ArtistName: "Foo", TrackName: "one"},
		{ArtistName: "foo bar", TrackName: "two"},
		{ArtistName: "FOO", TrackName: "three"},
		{ArtistName: "Fo", TrackName: "four"},
	}

	got := itunes.MatchArtist(tracks, "Foo")
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].TrackName, "one")
	assert.Equal(t, got[1].TrackName, "three")

	assert.Equal(t, len(itunes.MatchArtist(tracks[1:2], "Foo")), 0)
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2017-02-17T12:00:00Z", 2017},
		{"1985-06-01", 1985},
		{"", 0},
		{"soon", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, itunes.Track{ReleaseDate: tt.date}.ReleaseYear(), tt.want, tt.date)
	}
}

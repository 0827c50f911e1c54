// Package itunes queries the public iTunes Search API for track previews.
package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://itunes.apple.com/search"
	DefaultLimit   = 20

	entitySong       = "song"
	attributeArtist  = "artistTerm"
	defaultUserAgent = "groupie"
)

var ErrUnexpectedStatus = errors.New("unexpected search API status")

// Track is one search result.
type Track struct {
	ArtistName      string `json:"artistName"`
	TrackName       string `json:"trackName"`
	CollectionName  string `json:"collectionName"`
	PreviewURL      string `json:"previewUrl"`
	ReleaseDate     string `json:"releaseDate"`
	TrackTimeMillis int    `json:"trackTimeMillis"`
}

// ReleaseYear derives the year from the release date. Returns 0 when unknown.
func (t Track) ReleaseYear() int {
	if t.ReleaseDate == "" {
		return 0
	}
	if ts, err := time.Parse(time.RFC3339, t.ReleaseDate); err == nil {
		return ts.Year()
	}
	if len(t.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(t.ReleaseDate[:4]); err == nil {
			return y
		}
	}
	return 0
}

type searchResponse struct {
	ResultCount int     `json:"resultCount"`
	Results     []Track `json:"results"`
}

// Client performs song searches restricted to the artist attribute.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	BaseURL    string       // optional, defaults to DefaultBaseURL
	Limit      int          // optional, defaults to DefaultLimit
	HTTPClient *http.Client // optional
}

// NewClient creates a search client.
func NewClient(params ClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		limit:      limit,
		httpClient: httpClient,
	}
}

// SearchSongs returns up to the configured limit of songs for an artist term.
func (c *Client) SearchSongs(ctx context.Context, artist string) ([]Track, error) {
	params := url.Values{
		"term":      []string{artist},
		"entity":    []string{entitySong},
		"attribute": []string{attributeArtist},
		"limit":     []string{strconv.Itoa(c.limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", artist, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return result.Results, nil
}

// MatchArtist keeps the tracks whose artist equals name, ignoring case.
// Partial names do not match.
func MatchArtist(tracks []Track, name string) []Track {
	var matched []Track
	for _, t := range tracks {
		if strings.EqualFold(t.ArtistName, name) {
			matched = append(matched, t)
		}
	}
	return matched
}

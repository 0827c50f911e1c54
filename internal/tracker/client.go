// Package tracker fetches artist data from the groupietrackers API.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nikbrunner/groupie/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public groupietrackers API.
const DefaultBaseURL = "https://groupietrackers.herokuapp.com/api"

var (
	ErrNoAPIBase        = errors.New("tracker API base URL not set")
	ErrUnexpectedStatus = errors.New("unexpected tracker API status")
)

// Client reads the four tracker endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	BaseURL    string
	HTTPClient *http.Client // optional
}

// NewClient creates a tracker client.
func NewClient(params ClientParams) (*Client, error) {
	if params.BaseURL == "" {
		return nil, ErrNoAPIBase
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Artists fetches the artist list.
func (c *Client) Artists(ctx context.Context) ([]model.Artist, error) {
	var artists []model.Artist
	if err := c.get(ctx, "artists", &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// Locations fetches the location index.
func (c *Client) Locations(ctx context.Context) ([]model.LocationIndex, error) {
	var wrapper struct {
		Index []model.LocationIndex `json:"index"`
	}
	if err := c.get(ctx, "locations", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Index, nil
}

// Dates fetches the concert date index.
func (c *Client) Dates(ctx context.Context) ([]model.DatesIndex, error) {
	var wrapper struct {
		Index []model.DatesIndex `json:"index"`
	}
	if err := c.get(ctx, "dates", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Index, nil
}

// Relations fetches the location-to-dates index.
func (c *Client) Relations(ctx context.Context) ([]model.RelationIndex, error) {
	var wrapper struct {
		Index []model.RelationIndex `json:"index"`
	}
	if err := c.get(ctx, "relation", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Index, nil
}

// LoadDetails fetches all endpoints concurrently and joins them per artist,
// keeping the artist list order.
func (c *Client) LoadDetails(ctx context.Context) ([]model.Detail, error) {
	var (
		artists   []model.Artist
		locations []model.LocationIndex
		dates     []model.DatesIndex
		relations []model.RelationIndex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		artists, err = c.Artists(ctx)
		return err
	})
	g.Go(func() (err error) {
		locations, err = c.Locations(ctx)
		return err
	})
	g.Go(func() (err error) {
		dates, err = c.Dates(ctx)
		return err
	})
	g.Go(func() (err error) {
		relations, err = c.Relations(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return JoinDetails(artists, locations, dates, relations), nil
}

// JoinDetails combines the endpoint payloads by artist ID.
// Artists without index rows get empty, non-nil collections.
func JoinDetails(artists []model.Artist, locations []model.LocationIndex, dates []model.DatesIndex, relations []model.RelationIndex) []model.Detail {
	locByID := make(map[int][]string, len(locations))
	for _, l := range locations {
		locByID[l.ID] = l.Locations
	}
	datesByID := make(map[int][]string, len(dates))
	for _, d := range dates {
		datesByID[d.ID] = d.Dates
	}
	relByID := make(map[int]map[string][]string, len(relations))
	for _, r := range relations {
		relByID[r.ID] = r.DatesLocations
	}

	details := make([]model.Detail, 0, len(artists))
	for _, a := range artists {
		d := model.Detail{
			Name:         a.Name,
			Image:        a.Image,
			Members:      nonNil(a.Members),
			FirstAlbum:   a.FirstAlbum,
			CreationDate: a.CreationDate,
			Dates:        nonNil(datesByID[a.ID]),
			Locations:    nonNil(locByID[a.ID]),
			Relations:    relByID[a.ID],
		}
		if d.Relations == nil {
			d.Relations = map[string][]string{}
		}
		details = append(details, d)
	}
	return details
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

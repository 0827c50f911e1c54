// Package catalog reads the rendered card markup once into artist entries.
package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nikbrunner/groupie/internal/model"
	"golang.org/x/net/html"
)

// ErrNoContainer is returned when the markup has no artists container.
var ErrNoContainer = errors.New("artists container not found")

const (
	containerID = "artists-container"
	nameClass   = "album-badge"
)

// Extract parses card markup and returns one entry per card, in document order.
// Missing or malformed attributes default to empty strings and zeroes.
func Extract(r io.Reader) ([]*model.ArtistEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	container := findByID(doc, containerID)
	if container == nil {
		return nil, ErrNoContainer
	}

	entries := []*model.ArtistEntry{}
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		entries = append(entries, extractCard(c))
	}
	return entries, nil
}

// Countries returns the unique non-empty countries, sorted ascending.
func Countries(entries []*model.ArtistEntry) []string {
	seen := make(map[string]bool)
	var countries []string
	for _, e := range entries {
		if e.Country == "" || seen[e.Country] {
			continue
		}
		seen[e.Country] = true
		countries = append(countries, e.Country)
	}
	sort.Strings(countries)
	return countries
}

func extractCard(n *html.Node) *model.ArtistEntry {
	var detail model.Detail
	if raw := getAttr(n, "data-detail"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &detail); err != nil {
			detail = model.Detail{}
		}
	}

	name := ""
	if badge := findByClass(n, nameClass); badge != nil {
		name = getTextContent(badge)
	}
	if name == "" {
		name = strings.TrimSpace(detail.Name)
	}
	if detail.Name == "" {
		detail.Name = name
	}

	entry := &model.ArtistEntry{
		Name:         name,
		Country:      normalize(getAttr(n, "data-country")),
		Cities:       normalize(getAttr(n, "data-cities")),
		DateRange:    normalize(getAttr(n, "data-dates")),
		ConcertCount: parseCount(getAttr(n, "data-concerts")),
		Card:         model.NewCard(detail),
	}
	if year, err := strconv.Atoi(strings.TrimSpace(getAttr(n, "data-year"))); err == nil {
		entry.Year = year
		entry.YearSet = true
	}
	return entry
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// findByID returns the first element with the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && getAttr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// findByClass returns the first descendant element carrying class.
func findByClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, class) {
			return c
		}
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

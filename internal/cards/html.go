// Package cards renders artist details as the card markup the catalog
// extractor reads.
package cards

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/groupie/internal/model"
)

// ContainerID is the id of the element holding every card.
const ContainerID = "artists-container"

// DefaultExportPath returns the default markup export path.
// Format: ~/Downloads/groupie-cards-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("groupie-cards-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// RenderHTML renders one card per detail inside the artists container.
func RenderHTML(details []model.Detail) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head><meta charset=\"UTF-8\"><title>Groupie Tracker</title></head>\n<body>\n")
	fmt.Fprintf(&b, "<div id=\"%s\">\n", ContainerID)

	for _, d := range details {
		writeCard(&b, d)
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}

func writeCard(b *strings.Builder, d model.Detail) {
	detailJSON, err := json.Marshal(d)
	if err != nil {
		detailJSON = []byte("{}")
	}

	fmt.Fprintf(b,
		"    <div class=\"artist-card\" data-country=\"%s\" data-cities=\"%s\" data-dates=\"%s\" data-year=\"%s\" data-concerts=\"%d\" data-detail=\"%s\">\n",
		html.EscapeString(Country(d.Locations)),
		html.EscapeString(Cities(d.Locations)),
		html.EscapeString(DateRange(d.Dates)),
		year(d.CreationDate),
		len(d.Dates),
		html.EscapeString(string(detailJSON)),
	)
	if d.Image != "" {
		fmt.Fprintf(b, "        <img src=\"%s\" alt=\"%s\">\n", html.EscapeString(d.Image), html.EscapeString(d.Name))
	}
	fmt.Fprintf(b, "        <span class=\"album-badge\">%s</span>\n", html.EscapeString(d.Name))
	b.WriteString("    </div>\n")
}

// Country returns the country code of the first location ("london-uk" -> "uk").
func Country(locations []string) string {
	if len(locations) == 0 {
		return ""
	}
	loc := locations[0]
	idx := strings.LastIndex(loc, "-")
	if idx < 0 {
		return ""
	}
	return loc[idx+1:]
}

// Cities returns the city part of every location, joined with ", ".
func Cities(locations []string) string {
	cities := make([]string, 0, len(locations))
	for _, loc := range locations {
		city := loc
		if idx := strings.LastIndex(loc, "-"); idx >= 0 {
			city = loc[:idx]
		}
		city = strings.ReplaceAll(city, "_", " ")
		if city != "" {
			cities = append(cities, city)
		}
	}
	return strings.Join(cities, ", ")
}

// DateRange returns "first - last" of the concert dates without the "*" marker.
func DateRange(dates []string) string {
	switch len(dates) {
	case 0:
		return ""
	case 1:
		return strings.TrimPrefix(dates[0], "*")
	default:
		return strings.TrimPrefix(dates[0], "*") + " - " + strings.TrimPrefix(dates[len(dates)-1], "*")
	}
}

func year(creationDate int) string {
	if creationDate <= 0 {
		return ""
	}
	return strconv.Itoa(creationDate)
}

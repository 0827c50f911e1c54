// Package modal builds the artist detail view and coordinates its
// lifetime with the preview scheduler.
package modal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nikbrunner/groupie/internal/model"
)

const (
	NoDates     = "No dates"
	NoEvents    = "No events"
	NoLocations = "No locations"
)

// Previewer is the part of the preview scheduler the modal drives.
type Previewer interface {
	StopPlayback()
	Disarm(modalOpen bool)
}

// Event is one city with its concert dates.
type Event struct {
	Location string
	Dates    []string
}

// View is the formatted content of an open modal.
// A non-empty *Note field replaces its list.
type View struct {
	Name    string
	Image   string
	Members string
	Album   string
	Date    string

	TourDates []string
	DatesNote string

	Events     []Event
	EventsNote string

	Locations     []string
	LocationsNote string
}

// Controller owns the modal-open flag.
type Controller struct {
	preview      Previewer
	open         bool
	scrollLocked bool
	view         View
}

func NewController(preview Previewer) *Controller {
	return &Controller{preview: preview}
}

// Open shows the detail of one artist. The preview session ends but its
// playback keeps going while the modal is open.
func (c *Controller) Open(detail model.Detail) {
	c.view = BuildView(detail)
	c.open = true
	c.scrollLocked = true
	if c.preview != nil {
		c.preview.Disarm(true)
	}
}

// Close hides the modal and always stops playback and the preview session.
func (c *Controller) Close() {
	c.open = false
	c.scrollLocked = false
	if c.preview != nil {
		c.preview.StopPlayback()
		c.preview.Disarm(false)
	}
}

func (c *Controller) IsOpen() bool {
	return c.open
}

// ScrollLocked reports whether the list behind the modal must not scroll.
func (c *Controller) ScrollLocked() bool {
	return c.scrollLocked
}

// View returns the content of the last opened artist.
func (c *Controller) View() View {
	return c.view
}

// BuildView formats detail for display.
func BuildView(detail model.Detail) View {
	v := View{
		Name:    detail.Name,
		Image:   detail.Image,
		Members: strings.Join(detail.Members, ", "),
		Album:   detail.FirstAlbum,
	}
	if detail.CreationDate > 0 {
		v.Date = strconv.Itoa(detail.CreationDate)
	}

	for _, d := range detail.Dates {
		v.TourDates = append(v.TourDates, StripMarker(d))
	}
	if len(v.TourDates) == 0 {
		v.DatesNote = NoDates
	}

	if len(detail.Relations) == 0 {
		v.EventsNote = NoEvents
	} else {
		cities := make([]string, 0, len(detail.Relations))
		for city := range detail.Relations {
			cities = append(cities, city)
		}
		sort.Strings(cities)

		for _, city := range cities {
			dates := detail.Relations[city]
			if len(dates) == 0 {
				continue
			}
			ev := Event{Location: FormatEventLocation(city)}
			for _, d := range dates {
				ev.Dates = append(ev.Dates, StripMarker(d))
			}
			v.Events = append(v.Events, ev)
		}
	}

	for _, loc := range detail.Locations {
		v.Locations = append(v.Locations, FormatLocation(loc))
	}
	if len(v.Locations) == 0 {
		v.LocationsNote = NoLocations
	}

	return v
}

// StripMarker removes one leading "*" from a date.
func StripMarker(date string) string {
	return strings.TrimPrefix(date, "*")
}

// FormatEventLocation turns "new_york-usa" into "NEW YORK | USA".
func FormatEventLocation(key string) string {
	return formatPlace(key, " | ")
}

// FormatLocation turns "north_carolina-usa" into "NORTH CAROLINA USA".
func FormatLocation(loc string) string {
	return formatPlace(loc, " ")
}

// formatPlace uppercases s with "-" and "_" as spaces. When there is more
// than one token the last one is the country and is joined with sep.
func formatPlace(s, sep string) string {
	formatted := strings.ToUpper(strings.NewReplacer("-", " ", "_", " ").Replace(s))
	parts := strings.Split(strings.TrimSpace(formatted), " ")
	if len(parts) < 2 {
		return formatted
	}
	country := parts[len(parts)-1]
	return strings.Join(parts[:len(parts)-1], " ") + sep + country
}

// String renders the view as plain text.
func (v View) String() string {
	var b strings.Builder

	b.WriteString(v.Name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(v.Name))) + "\n")
	writeField(&b, "Members", v.Members)
	writeField(&b, "First album", v.Album)
	writeField(&b, "Created", v.Date)
	writeField(&b, "Image", v.Image)

	b.WriteString("\nTour dates\n")
	writeList(&b, v.TourDates, v.DatesNote, "  ")

	b.WriteString("\nEvents\n")
	if v.EventsNote != "" {
		fmt.Fprintf(&b, "  %s\n", v.EventsNote)
	}
	for _, ev := range v.Events {
		fmt.Fprintf(&b, "  %s\n", ev.Location)
		writeList(&b, ev.Dates, "", "    ")
	}

	b.WriteString("\nLocations\n")
	writeList(&b, v.Locations, v.LocationsNote, "  ")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func writeList(b *strings.Builder, items []string, note, indent string) {
	if note != "" {
		fmt.Fprintf(b, "%s%s\n", indent, note)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "%s%s\n", indent, item)
	}
}

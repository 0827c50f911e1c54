// Package overlay holds the small track-info label shown on a card while
// its preview is resolved.
package overlay

import (
	"fmt"
	"strings"
)

// Info is the track detail displayed by a label.
type Info struct {
	Track          string
	Album          string
	Year           int // 0 = unknown
	DurationMillis int // 0 = unknown
}

// Label is a per-card overlay. It is created once and toggled between
// visible and hidden; hiding never discards it.
type Label struct {
	lines   []string
	visible bool
}

// New creates a hidden, empty label.
func New() *Label {
	return &Label{}
}

// Show renders info into the label and makes it visible.
func (l *Label) Show(info Info) {
	// Fresh slice: callers may still hold the previous Lines.
	l.lines = make([]string, 0, 3)
	if info.Track != "" {
		l.lines = append(l.lines, info.Track)
	}
	if info.Album != "" {
		l.lines = append(l.lines, info.Album)
	}
	if meta := FormatMeta(info.Year, info.DurationMillis); meta != "" {
		l.lines = append(l.lines, meta)
	}
	l.visible = true
}

// Hide makes the label invisible. Its content is kept until the next Show.
func (l *Label) Hide() {
	l.visible = false
}

// Visible reports whether the label is shown.
func (l *Label) Visible() bool {
	return l.visible
}

// Lines returns the rendered lines: track, album, then the year/duration line.
// Empty fields produce no line.
func (l *Label) Lines() []string {
	return l.lines
}

// FormatMeta joins "Year: <year>" and the formatted duration with " · ",
// leaving out whichever is unknown.
func FormatMeta(year, durationMillis int) string {
	var parts []string
	if year > 0 {
		parts = append(parts, fmt.Sprintf("Year: %d", year))
	}
	if d := FormatDuration(durationMillis); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

// FormatDuration formats milliseconds as M:SS. Zero or negative input gives "".
func FormatDuration(ms int) string {
	if ms <= 0 {
		return ""
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

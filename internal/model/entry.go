package model

// ArtistEntry is the extracted, normalized form of one card.
type ArtistEntry struct {
	Name         string
	Country      string // upper-cased country code
	Cities       string // upper-cased
	DateRange    string // upper-cased
	Year         int
	YearSet      bool // false when the card had no usable year
	ConcertCount int

	// Card is the renderable unit this entry was extracted from.
	Card *Card
}

// SortMode selects the ordering applied by the filter engine.
type SortMode string

const (
	SortDefault  SortMode = ""
	SortName     SortMode = "name"
	SortDate     SortMode = "date"
	SortConcerts SortMode = "concerts"
)

// SortModes lists the modes in selector order.
var SortModes = []SortMode{SortDefault, SortName, SortDate, SortConcerts}

// ParseSortMode maps a selector value to a SortMode.
// Unknown values fall back to SortDefault.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortName, SortDate, SortConcerts:
		return SortMode(s)
	default:
		return SortDefault
	}
}

// Label returns the display label for a sort mode.
func (m SortMode) Label() string {
	if m == SortDefault {
		return "default"
	}
	return string(m)
}

// Next returns the mode following m in selector order.
func (m SortMode) Next() SortMode {
	for i, mode := range SortModes {
		if mode == m {
			return SortModes[(i+1)%len(SortModes)]
		}
	}
	return SortDefault
}

// FilterCriteria is the user's current query, country and sort selection.
type FilterCriteria struct {
	Query    string
	Country  string // empty = no constraint
	SortMode SortMode
}

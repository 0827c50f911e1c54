// Package filter implements the query/country/sort pipeline over the
// extracted artist entries.
package filter

import (
	"sort"
	"strings"

	"github.com/nikbrunner/groupie/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine applies FilterCriteria to a collection.
// Sorting is stable: ties keep extraction order in every mode.
type Engine struct {
	collator *collate.Collator
}

// NewEngine creates an Engine comparing names under the given locale.
// An unparsable locale falls back to English.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Engine{collator: collate.New(tag)}
}

// Apply returns the entries matching c, ordered by c.SortMode.
// The input slice is not modified.
func (e *Engine) Apply(entries []*model.ArtistEntry, c model.FilterCriteria) []*model.ArtistEntry {
	query := strings.ToUpper(strings.TrimSpace(c.Query))
	country := strings.ToUpper(c.Country)

	result := make([]*model.ArtistEntry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry, query, country) {
			result = append(result, entry)
		}
	}

	switch c.SortMode {
	case model.SortName:
		sort.SliceStable(result, func(i, j int) bool {
			return e.collator.CompareString(result[i].Name, result[j].Name) < 0
		})
	case model.SortDate:
		// Unset years are 0 and sort first.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Year < result[j].Year
		})
	case model.SortConcerts:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ConcertCount > result[j].ConcertCount
		})
	}

	return result
}

// Matches reports whether entry passes an upper-cased query and country.
// The query is a substring match on the name only.
func Matches(entry *model.ArtistEntry, query, country string) bool {
	if query != "" && !strings.Contains(strings.ToUpper(entry.Name), query) {
		return false
	}
	if country != "" && entry.Country != country {
		return false
	}
	return true
}

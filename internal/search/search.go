package search

import (
	"strings"

	"github.com/nikbrunner/groupie/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result is a fuzzy match on an artist name.
type Result struct {
	Entry          *model.ArtistEntry
	MatchedIndexes []int
	Score          int
}

// artistNames implements fuzzy.Source over entries.
type artistNames []*model.ArtistEntry

func (a artistNames) String(i int) string {
	return a[i].Name
}

func (a artistNames) Len() int {
	return len(a)
}

// FuzzySearchArtists matches query against artist names.
// Returns results sorted by match score (best first).
func FuzzySearchArtists(entries []*model.ArtistEntry, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, artistNames(entries))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// Exact returns the result whose name equals query ignoring case, if any.
func Exact(results []Result, query string) (Result, bool) {
	for _, r := range results {
		if strings.EqualFold(r.Entry.Name, query) {
			return r, true
		}
	}
	return Result{}, false
}

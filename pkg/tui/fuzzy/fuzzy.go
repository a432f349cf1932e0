// ABOUTME: Thin wrapper over sahilm/fuzzy for fuzzy string matching
// ABOUTME: Find ranks matches by score; Filter keeps the source order for list views

package fuzzy

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	return convert(fuzzy.Find(pattern, items))
}

// Source is an indexed list of strings to match against.
type Source interface {
	String(i int) string
	Len() int
}

// FindFrom performs fuzzy matching using a custom string source.
func FindFrom(pattern string, data Source) []Match {
	return convert(fuzzy.FindFrom(pattern, data))
}

// Filter returns the indexes of the n items whose text matches pattern,
// in ascending index order. An empty pattern keeps every item.
func Filter(pattern string, n int, text func(i int) string) []int {
	if pattern == "" {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	results := fuzzy.FindFrom(pattern, funcSource{n: n, text: text})
	idx := make([]int, len(results))
	for i, r := range results {
		idx[i] = r.Index
	}
	slices.Sort(idx)
	return idx
}

type funcSource struct {
	n    int
	text func(int) string
}

func (s funcSource) String(i int) string { return s.text(i) }
func (s funcSource) Len() int            { return s.n }

func convert(results fuzzy.Matches) []Match {
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

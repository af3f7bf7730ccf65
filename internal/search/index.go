// Package search maintains a local fuzzy index of films for the blend-mode
// picker and the omnibar. This is interactive ranking, distinct from the
// exact substring filter applied to the film list.
package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// Match is one ranked picker candidate.
type Match struct {
	Film           domain.Film
	Score          int   // lower is better
	MatchedIndexes []int // character positions in the title, for highlighting
}

// Index implements sahilm/fuzzy.Source over the accumulated films.
type Index struct {
	mu          sync.RWMutex
	films       []domain.Film
	lowerTitles []string
	indexed     map[int]struct{} // film ids already indexed
}

// NewIndex creates an empty film index.
func NewIndex() *Index {
	return &Index{indexed: make(map[int]struct{})}
}

// String returns the lowercase title at index i (implements fuzzy.Source).
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of indexed films (implements fuzzy.Source).
func (idx *Index) Len() int { return len(idx.films) }

// Add indexes films, skipping ids already present.
func (idx *Index) Add(films []domain.Film) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, f := range films {
		if _, ok := idx.indexed[f.ID]; ok {
			continue
		}
		idx.indexed[f.ID] = struct{}{}
		idx.films = append(idx.films, f)
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(f.Title))
	}
}

// Clear drops the whole index.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.films = nil
	idx.lowerTitles = nil
	idx.indexed = make(map[int]struct{})
}

// Search returns at most limit films ranked for the query: exact and
// prefix matches first, then fuzzy matches by edit quality.
func (idx *Index) Search(query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := sahilm.FindFrom(query, idx)

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{
			Film:           idx.films[r.Index],
			Score:          rankScore(idx.lowerTitles[r.Index], query, r.Score),
			MatchedIndexes: r.MatchedIndexes,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// rankScore combines positional cues with fuzzy distance. Lower is better.
func rankScore(title, query string, fuzzyScore int) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, title) - fuzzyScore
}

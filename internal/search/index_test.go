package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/search"
)

func indexOf(titles ...string) *search.Index {
	idx := search.NewIndex()
	films := make([]domain.Film, 0, len(titles))
	for i, title := range titles {
		films = append(films, domain.Film{ID: i + 1, Title: title})
	}
	idx.Add(films)
	return idx
}

func matchTitles(matches []search.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Film.Title)
	}
	return out
}

func TestSearchRanking(t *testing.T) {
	idx := indexOf("Alien", "Aliens", "Alien: Resurrection", "The Shining")

	got := matchTitles(idx.Search("alien", 0))
	require.NotEmpty(t, got)
	// Exact title first, then prefix matches.
	assert.Equal(t, "Alien", got[0])
	assert.Contains(t, got, "Aliens")
	assert.Contains(t, got, "Alien: Resurrection")
	assert.NotContains(t, got, "The Shining")
}

func TestSearchSubstringBeatsFuzzy(t *testing.T) {
	idx := indexOf("The Godfather", "Gods of Egypt")

	got := idx.Search("godfather", 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "The Godfather", got[0].Film.Title)
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := indexOf("Anything")
	assert.Nil(t, idx.Search("", 10))
	assert.Nil(t, idx.Search("   ", 10))
}

func TestSearchLimit(t *testing.T) {
	idx := indexOf("Star Wars", "Star Trek", "Stardust", "A Star Is Born")
	got := idx.Search("star", 2)
	assert.Len(t, got, 2)
}

func TestAddDeduplicatesByID(t *testing.T) {
	idx := search.NewIndex()
	idx.Add([]domain.Film{{ID: 1, Title: "Dune"}})
	idx.Add([]domain.Film{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Dune: Part Two"}})

	got := idx.Search("dune", 0)
	assert.Len(t, got, 2, "re-adding the same film must not duplicate it")
}

func TestClear(t *testing.T) {
	idx := indexOf("Heat")
	require.NotEmpty(t, idx.Search("heat", 0))
	idx.Clear()
	assert.Empty(t, idx.Search("heat", 0))
	assert.Zero(t, idx.Len())
}

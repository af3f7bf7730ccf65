package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/filter"
)

func film(id int, title string, year *int, score *float64, genres ...string) domain.Film {
	tags := make([]domain.Tag, 0, len(genres))
	for _, g := range genres {
		tags = append(tags, domain.Tag{Name: g})
	}
	return domain.Film{ID: id, Title: title, Year: year, CriticScore: score, Genres: tags}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func catalog() []domain.Film {
	return []domain.Film{
		film(1, "Inception", intp(2010), floatp(8.8), "Sci-Fi", "Thriller"),
		film(2, "The Prestige", intp(2006), floatp(8.5), "Drama", "Mystery"),
		film(3, "Dunkirk", intp(2017), floatp(7.8), "Drama", "War"),
		film(4, "Timeless", nil, nil, "Drama"),
		film(5, "Arrival", intp(2016), floatp(7.9), "Sci-Fi", "Drama"),
	}
}

func titles(films []domain.Film) []string {
	out := make([]string, 0, len(films))
	for _, f := range films {
		out = append(out, f.Title)
	}
	return out
}

func TestDeriveTextFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query is identity", "", []string{"Inception", "The Prestige", "Dunkirk", "Timeless", "Arrival"}},
		{"title substring", "ince", []string{"Inception"}},
		{"case insensitive", "PRESTIGE", []string{"The Prestige"}},
		{"genre text matches too", "war", []string{"Dunkirk"}},
		{"year digits match", "2016", []string{"Arrival"}},
		{"no match", "zzzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := filter.Derive(catalog(), filter.State{Query: tt.query})
			assert.Equal(t, tt.want, titles(view.Films))
		})
	}
}

func TestDeriveGenreFilterIsConjunctive(t *testing.T) {
	// Selecting two genres keeps only films carrying both.
	view := filter.Derive(catalog(), filter.State{Genres: []string{"Sci-Fi", "Drama"}})
	assert.Equal(t, []string{"Arrival"}, titles(view.Films))

	// A single genre keeps every film carrying it, in accumulation order.
	view = filter.Derive(catalog(), filter.State{Genres: []string{"Drama"}})
	assert.Equal(t, []string{"The Prestige", "Dunkirk", "Timeless", "Arrival"}, titles(view.Films))

	// An impossible combination yields an empty list, not an error.
	view = filter.Derive(catalog(), filter.State{Genres: []string{"Drama", "Nonexistent"}})
	assert.Empty(t, view.Films)
}

func TestDeriveYearRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		want     []string
	}{
		{"both bounds inclusive", "2010", "2016", []string{"Inception", "Arrival"}},
		{"min only", "2016", "", []string{"Dunkirk", "Arrival"}},
		{"max only", "", "2006", []string{"The Prestige"}},
		{"malformed min is unbounded", "abc", "2006", []string{"The Prestige"}},
		{"equal bounds", "2017", "2017", []string{"Dunkirk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := filter.Derive(catalog(), filter.State{YearMin: tt.min, YearMax: tt.max})
			assert.Equal(t, tt.want, titles(view.Films))
		})
	}
}

func TestDeriveYearRangeExcludesUnknownYears(t *testing.T) {
	// "Timeless" has no year: present without bounds, gone with any bound.
	view := filter.Derive(catalog(), filter.State{})
	assert.Contains(t, titles(view.Films), "Timeless")

	view = filter.Derive(catalog(), filter.State{YearMin: "1900"})
	assert.NotContains(t, titles(view.Films), "Timeless")

	view = filter.Derive(catalog(), filter.State{YearMax: "9999"})
	assert.NotContains(t, titles(view.Films), "Timeless")
}

func TestDeriveSort(t *testing.T) {
	tests := []struct {
		name string
		sort filter.SortKey
		want []string
	}{
		{"none preserves order", filter.SortNone, []string{"Inception", "The Prestige", "Dunkirk", "Timeless", "Arrival"}},
		{"title", filter.SortTitle, []string{"Arrival", "Dunkirk", "Inception", "The Prestige", "Timeless"}},
		{"year desc, missing year sorts as zero", filter.SortYearDesc, []string{"Dunkirk", "Arrival", "Inception", "The Prestige", "Timeless"}},
		{"year asc", filter.SortYearAsc, []string{"Timeless", "The Prestige", "Inception", "Arrival", "Dunkirk"}},
		{"rating desc", filter.SortRatingDesc, []string{"Inception", "The Prestige", "Arrival", "Dunkirk", "Timeless"}},
		{"rating asc, missing score first", filter.SortRatingAsc, []string{"Timeless", "Dunkirk", "Arrival", "The Prestige", "Inception"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := filter.Derive(catalog(), filter.State{Sort: tt.sort})
			assert.Equal(t, tt.want, titles(view.Films))
		})
	}
}

func TestDeriveSortIsStable(t *testing.T) {
	films := []domain.Film{
		film(1, "B", intp(2000), nil),
		film(2, "A first", intp(2000), nil),
		film(3, "A second", intp(2000), nil),
	}
	// Equal years: accumulation order must survive the sort.
	view := filter.Derive(films, filter.State{Sort: filter.SortYearDesc})
	assert.Equal(t, []string{"B", "A first", "A second"}, titles(view.Films))
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	films := catalog()
	_ = filter.Derive(films, filter.State{Sort: filter.SortTitle, Query: "a"})
	assert.Equal(t, []string{"Inception", "The Prestige", "Dunkirk", "Timeless", "Arrival"}, titles(films))
}

func TestDeriveGenreUniverseIgnoresFilters(t *testing.T) {
	view := filter.Derive(catalog(), filter.State{Genres: []string{"War"}, Query: "dunkirk"})
	assert.Equal(t, []string{"Drama", "Mystery", "Sci-Fi", "Thriller", "War"}, view.AvailableGenres)
}

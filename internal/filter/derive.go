package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// View is the derived list: the visible films after filtering and sorting,
// plus the genre universe of the full accumulated list (independent of the
// current filters, so the genre control always offers every option).
type View struct {
	Films           []domain.Film
	AvailableGenres []string
}

// Derive computes the visible list from the accumulated films and the
// current criteria. Pure and idempotent: identical inputs produce
// value-identical output. The input slice is never mutated.
func Derive(films []domain.Film, s State) View {
	view := View{AvailableGenres: genreUniverse(films)}

	filtered := films

	// Free-text filter: substring match against the film's searchable text.
	// Empty term is the identity.
	if term := strings.ToLower(strings.TrimSpace(s.Query)); term != "" {
		kept := make([]domain.Film, 0, len(filtered))
		for _, f := range filtered {
			if strings.Contains(f.SearchableText(), term) {
				kept = append(kept, f)
			}
		}
		filtered = kept
	}

	// Genre filter: the film's genres must be a superset of the selection
	// (AND semantics).
	if len(s.Genres) > 0 {
		kept := make([]domain.Film, 0, len(filtered))
		for _, f := range filtered {
			if hasAllGenres(f, s.Genres) {
				kept = append(kept, f)
			}
		}
		filtered = kept
	}

	// Year range: inclusive bounds; a film with no year is excluded as
	// soon as either bound is set. Malformed bounds parse as unbounded.
	if s.YearMin != "" || s.YearMax != "" {
		min := parseYear(s.YearMin, 0)
		max := parseYear(s.YearMax, 9999)
		kept := make([]domain.Film, 0, len(filtered))
		for _, f := range filtered {
			if f.Year == nil {
				continue
			}
			if *f.Year >= min && *f.Year <= max {
				kept = append(kept, f)
			}
		}
		filtered = kept
	}

	view.Films = sortFilms(filtered, s.Sort)
	return view
}

// genreUniverse collects every genre label across every film, case as
// given, deduplicated and sorted for display.
func genreUniverse(films []domain.Film) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, f := range films {
		for _, g := range f.Genres {
			if g.Name == "" {
				continue
			}
			if _, ok := seen[g.Name]; ok {
				continue
			}
			seen[g.Name] = struct{}{}
			genres = append(genres, g.Name)
		}
	}
	sort.Strings(genres)
	return genres
}

func hasAllGenres(f domain.Film, selected []string) bool {
	for _, want := range selected {
		found := false
		for _, g := range f.Genres {
			if g.Name == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// parseYear parses a year bound defensively; malformed input falls back
// to the unbounded default.
func parseYear(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return year
}

// sortFilms returns a stably sorted copy; SortNone preserves the filtered
// order, which is accumulation order. Missing numeric values sort as 0.
func sortFilms(films []domain.Film, key SortKey) []domain.Film {
	if key == SortNone {
		return films
	}
	sorted := make([]domain.Film, len(films))
	copy(sorted, films)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortYearDesc:
			return a.YearOrZero() > b.YearOrZero()
		case SortYearAsc:
			return a.YearOrZero() < b.YearOrZero()
		case SortRatingDesc:
			return a.Score() > b.Score()
		case SortRatingAsc:
			return a.Score() < b.Score()
		case SortPopularityDesc:
			return a.Pop() > b.Pop()
		default:
			return false
		}
	})
	return sorted
}

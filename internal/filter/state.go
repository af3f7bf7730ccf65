// Package filter owns the user-adjustable list criteria and derives the
// visible film list from them. The state serializes to a query string
// (the shareable address) so a view can be reproduced from a copied link.
package filter

import (
	"net/url"
	"strings"
)

// SortKey selects the list ordering. The zero value preserves
// accumulation order.
type SortKey string

const (
	SortNone           SortKey = ""
	SortTitle          SortKey = "title"
	SortYearDesc       SortKey = "year_desc"
	SortYearAsc        SortKey = "year_asc"
	SortRatingDesc     SortKey = "rating_desc"
	SortRatingAsc      SortKey = "rating_asc"
	SortPopularityDesc SortKey = "popularity_desc"
)

// SortKeys lists the selectable orderings in menu order.
var SortKeys = []SortKey{
	SortTitle,
	SortYearDesc,
	SortYearAsc,
	SortRatingDesc,
	SortRatingAsc,
	SortPopularityDesc,
}

// Label returns the human-readable name of a sort key.
func (k SortKey) Label() string {
	switch k {
	case SortTitle:
		return "Title (A-Z)"
	case SortYearDesc:
		return "Year (newest)"
	case SortYearAsc:
		return "Year (oldest)"
	case SortRatingDesc:
		return "Rating (high)"
	case SortRatingAsc:
		return "Rating (low)"
	case SortPopularityDesc:
		return "Popularity"
	default:
		return "Default"
	}
}

// State is the single source of truth for list criteria. Year bounds are
// kept as the raw strings the user typed; parsing is deferred to Derive,
// which treats malformed bounds as unbounded.
type State struct {
	Query   string   // free-text search term
	Sort    SortKey
	Genres  []string // selected genre tags, first-selected order
	YearMin string
	YearMax string
}

// SetSort replaces the sort key.
func (s *State) SetSort(key SortKey) {
	s.Sort = key
}

// ToggleGenre adds the genre to the selection, or removes it if already
// selected.
func (s *State) ToggleGenre(genre string) {
	for i, g := range s.Genres {
		if g == genre {
			s.Genres = append(s.Genres[:i], s.Genres[i+1:]...)
			return
		}
	}
	s.Genres = append(s.Genres, genre)
}

// HasGenre reports whether the genre is currently selected.
func (s *State) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// SetYearRange replaces both year bounds. Empty string means unbounded.
func (s *State) SetYearRange(min, max string) {
	s.YearMin = strings.TrimSpace(min)
	s.YearMax = strings.TrimSpace(max)
}

// Reset clears sort, genres and year bounds. The free-text term is owned
// by the search input and survives a filter reset.
func (s *State) Reset() {
	s.Sort = SortNone
	s.Genres = nil
	s.YearMin = ""
	s.YearMax = ""
}

// HasActiveFilters reports whether any criterion beyond the text term is set.
func (s *State) HasActiveFilters() bool {
	return s.Sort != SortNone || len(s.Genres) > 0 || s.YearMin != "" || s.YearMax != ""
}

// ActiveFilterCount counts set criteria: one for a sort key, one per
// selected genre, one per present year bound. Used to badge the filter
// toggle.
func (s *State) ActiveFilterCount() int {
	count := len(s.Genres)
	if s.Sort != SortNone {
		count++
	}
	if s.YearMin != "" {
		count++
	}
	if s.YearMax != "" {
		count++
	}
	return count
}

// Encode serializes the state as the shareable address. Only non-default
// fields are written: sort when set, genres comma-joined when non-empty,
// year bounds when present, the text term when non-empty.
func (s *State) Encode() string {
	params := url.Values{}
	if s.Sort != SortNone {
		params.Set("sort", string(s.Sort))
	}
	if len(s.Genres) > 0 {
		params.Set("genres", strings.Join(s.Genres, ","))
	}
	if s.YearMin != "" {
		params.Set("yearMin", s.YearMin)
	}
	if s.YearMax != "" {
		params.Set("yearMax", s.YearMax)
	}
	if s.Query != "" {
		params.Set("q", s.Query)
	}
	return params.Encode()
}

// Decode restores a state from a shareable address. Unknown parameters
// are ignored; a malformed string yields the zero state.
func Decode(address string) State {
	var s State
	params, err := url.ParseQuery(strings.TrimPrefix(address, "?"))
	if err != nil {
		return s
	}
	s.Sort = SortKey(params.Get("sort"))
	if genres := params.Get("genres"); genres != "" {
		s.Genres = strings.Split(genres, ",")
	}
	s.YearMin = params.Get("yearMin")
	s.YearMax = params.Get("yearMax")
	s.Query = params.Get("q")
	return s
}

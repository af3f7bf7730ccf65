package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

func TestFilmDecodesMixedTagShapes(t *testing.T) {
	// Genres arrive as bare strings from list endpoints and as objects
	// from the detail endpoint; both must decode.
	raw := `{
		"id": 1,
		"title": "Arrival",
		"year": 2016,
		"genres": ["Sci-Fi", {"name": "Drama"}],
		"cast": ["Amy Adams", {"person_name": "Jeremy Renner", "job": "Actor"}]
	}`
	var f domain.Film
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	assert.Equal(t, []string{"Sci-Fi", "Drama"}, f.GenreNames())
	require.Len(t, f.Cast, 2)
	assert.Equal(t, "Amy Adams", f.Cast[0].Name)
	assert.Equal(t, "Jeremy Renner", f.Cast[1].Name)
	assert.Equal(t, "Actor", f.Cast[1].Role)
}

func TestDisplayTitle(t *testing.T) {
	year := 1982
	withYear := domain.Film{Title: "Blade Runner", Year: &year}
	assert.Equal(t, "Blade Runner (1982)", withYear.DisplayTitle())

	noYear := domain.Film{Title: "Blade Runner"}
	assert.Equal(t, "Blade Runner", noYear.DisplayTitle())
}

func TestSearchableTextSkipsMissingFields(t *testing.T) {
	f := domain.Film{
		Title:  "Heat",
		Genres: []domain.Tag{{Name: "Crime"}, {Name: ""}},
		Cast:   []domain.Credit{{Name: "Al Pacino"}},
	}
	text := f.SearchableText()
	assert.Equal(t, "heat crime al pacino", text)
}

func TestNumericFallbacks(t *testing.T) {
	var f domain.Film
	assert.Zero(t, f.YearOrZero())
	assert.Zero(t, f.Score())
	assert.Zero(t, f.Pop())
}

func TestFavouriteDecodesBothShapes(t *testing.T) {
	var fromObject domain.Favourite
	require.NoError(t, json.Unmarshal([]byte(`{"id": 12, "film": {"id": 7, "title": "x"}}`), &fromObject))
	assert.Equal(t, 12, fromObject.ID)
	assert.Equal(t, 7, fromObject.FilmID)

	var fromID domain.Favourite
	require.NoError(t, json.Unmarshal([]byte(`{"id": 13, "film": 9}`), &fromID))
	assert.Equal(t, 9, fromID.FilmID)
}

func TestFavouriteCacheRoundTrip(t *testing.T) {
	fav := domain.Favourite{ID: 12, FilmID: 7}
	data, err := json.Marshal(fav)
	require.NoError(t, err)

	var back domain.Favourite
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, fav, back)
}

func TestWatchlistEntryDefaultsName(t *testing.T) {
	var e domain.WatchlistEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "film": 5}`), &e))
	assert.Equal(t, domain.DefaultWatchlistName, e.Name)
	assert.Equal(t, 5, e.FilmID)

	var named domain.WatchlistEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "film_id": 6, "name": "Date night"}`), &named))
	assert.Equal(t, "Date night", named.Name)
	assert.Equal(t, 6, named.FilmID)
}

func TestWatchlistEntryCacheRoundTrip(t *testing.T) {
	entry := domain.WatchlistEntry{ID: 3, FilmID: 8, Name: "Classics"}
	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var back domain.WatchlistEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, entry, back)
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/store"
)

func intp(v int) *int { return &v }

func TestStoreFilmRoundTrip(t *testing.T) {
	s, err := store.NewStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	defer s.Close()

	film := &domain.Film{ID: 42, Title: "Blade Runner", Year: intp(1982)}
	require.NoError(t, s.SaveFilm(film))

	got, ok := s.GetFilm(42)
	require.True(t, ok)
	assert.Equal(t, "Blade Runner", got.Title)
	require.NotNil(t, got.Year)
	assert.Equal(t, 1982, *got.Year)

	_, ok = s.GetFilm(999)
	assert.False(t, ok)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.NewStore(dir, "http://localhost:8000")
	require.NoError(t, err)
	require.NoError(t, s.SaveFilm(&domain.Film{ID: 1, Title: "Persisted"}))
	require.NoError(t, s.Close())

	s2, err := store.NewStore(dir, "http://localhost:8000")
	require.NoError(t, err)
	defer s2.Close()

	got, ok := s2.GetFilm(1)
	require.True(t, ok)
	assert.Equal(t, "Persisted", got.Title)
}

func TestStoreIsScopedPerServer(t *testing.T) {
	dir := t.TempDir()

	s, err := store.NewStore(dir, "http://server-a:8000")
	require.NoError(t, err)
	require.NoError(t, s.SaveFilm(&domain.Film{ID: 1, Title: "A only"}))
	require.NoError(t, s.Close())

	other, err := store.NewStore(dir, "http://server-b:8000")
	require.NoError(t, err)
	defer other.Close()

	_, ok := other.GetFilm(1)
	assert.False(t, ok, "caches for different servers must not bleed into each other")
}

func TestStoreMemoryOnlyMode(t *testing.T) {
	s, err := store.NewStore("", "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveFilm(&domain.Film{ID: 7, Title: "Ephemeral"}))
	got, ok := s.GetFilm(7)
	require.True(t, ok)
	assert.Equal(t, "Ephemeral", got.Title)
}

func TestStoreCollectionsRoundTrip(t *testing.T) {
	s, err := store.NewStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	defer s.Close()

	favs := []domain.Favourite{{ID: 100, FilmID: 1}, {ID: 101, FilmID: 2}}
	require.NoError(t, s.SaveFavourites(favs))
	gotFavs, ok := s.GetFavourites()
	require.True(t, ok)
	assert.Equal(t, favs, gotFavs)

	entries := []domain.WatchlistEntry{{ID: 200, FilmID: 3, Name: "Watchlist"}}
	require.NoError(t, s.SaveWatchlist(entries))
	gotEntries, ok := s.GetWatchlist()
	require.True(t, ok)
	assert.Equal(t, entries, gotEntries)
}

func TestInvalidateUserKeepsFilms(t *testing.T) {
	s, err := store.NewStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveFilm(&domain.Film{ID: 1, Title: "Kept"}))
	require.NoError(t, s.SaveFavourites([]domain.Favourite{{ID: 100, FilmID: 1}}))
	require.NoError(t, s.SaveWatchlist([]domain.WatchlistEntry{{ID: 200, FilmID: 1, Name: "Watchlist"}}))

	s.InvalidateUser()

	_, ok := s.GetFavourites()
	assert.False(t, ok)
	_, ok = s.GetWatchlist()
	assert.False(t, ok)
	_, ok = s.GetFilm(1)
	assert.True(t, ok, "film details are not user state")
}

func TestInvalidateAll(t *testing.T) {
	s, err := store.NewStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveFilm(&domain.Film{ID: 1, Title: "Gone"}))
	s.InvalidateAll()
	_, ok := s.GetFilm(1)
	assert.False(t, ok)
}

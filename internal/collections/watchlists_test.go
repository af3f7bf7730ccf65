package collections_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/collections"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// watchServer is a minimal watchlist backend.
type watchServer struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]watchRecord
	lastAdd map[string]any
}

type watchRecord struct {
	filmID int
	name   string
}

func newWatchServer() *watchServer {
	return &watchServer{nextID: 200, entries: map[int]watchRecord{}}
}

func (s *watchServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/watchlist/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			items := make([]string, 0, len(s.entries))
			for id, rec := range s.entries {
				items = append(items, fmt.Sprintf(`{"id": %d, "film": %d, "name": %q}`, id, rec.filmID, rec.name))
			}
			fmt.Fprintf(w, `[%s]`, strings.Join(items, ","))
		case http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.lastAdd = body
			s.nextID++
			filmID := int(body["film"].(float64))
			name, _ := body["name"].(string)
			s.entries[s.nextID] = watchRecord{filmID: filmID, name: name}
			fmt.Fprintf(w, `{"id": %d, "film": %d, "name": %q}`, s.nextID, filmID, name)
		case http.MethodDelete:
			id := trailingID(r.URL.Path)
			if _, ok := s.entries[id]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(s.entries, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/films/", func(w http.ResponseWriter, r *http.Request) {
		id := trailingID(r.URL.Path)
		fmt.Fprintf(w, `{"id": %d, "title": "Film %d"}`, id, id)
	})
	return mux
}

func TestAddToListDefaultsName(t *testing.T) {
	backend := newWatchServer()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, fakeSession{authed: true}, nil)

	entry, err := wls.AddToList(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWatchlistName, entry.Name)
	assert.Equal(t, 9, entry.FilmID)

	// The film id goes out under both accepted field names.
	assert.EqualValues(t, 9, backend.lastAdd["film"])
	assert.EqualValues(t, 9, backend.lastAdd["film_id"])
	assert.Equal(t, domain.DefaultWatchlistName, backend.lastAdd["name"])
}

func TestAddToListRequiresLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call should be made when unauthenticated")
	}))
	defer srv.Close()

	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, fakeSession{authed: false}, nil)
	_, err := wls.AddToList(context.Background(), 9, "")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestNamedListsAreGroupedByName(t *testing.T) {
	backend := newWatchServer()
	backend.entries[201] = watchRecord{filmID: 1, name: "Watchlist"}
	backend.entries[202] = watchRecord{filmID: 2, name: "Date night"}
	backend.entries[203] = watchRecord{filmID: 3, name: "Date night"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, fakeSession{authed: true}, nil)
	require.NoError(t, wls.Refresh(context.Background()))

	assert.Equal(t, []string{"Date night", "Watchlist"}, wls.ListNames())
	assert.Len(t, wls.EntriesFor("Date night"), 2)
	assert.Len(t, wls.EntriesFor("Watchlist"), 1)
	assert.Len(t, wls.EntriesFor(""), 3, "empty name selects all entries")

	assert.True(t, wls.IsFilmInList(2, "Date night"))
	assert.False(t, wls.IsFilmInList(2, "Watchlist"))
	assert.True(t, wls.IsFilmInList(2, ""), "empty name matches any list")
	assert.Equal(t, []string{"Date night"}, wls.ListsForFilm(3))
}

func TestEntriesAreHydrated(t *testing.T) {
	backend := newWatchServer()
	backend.entries[201] = watchRecord{filmID: 5, name: "Watchlist"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, fakeSession{authed: true}, nil)
	require.NoError(t, wls.Refresh(context.Background()))

	entries := wls.EntriesFor("Watchlist")
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Film)
	assert.Equal(t, "Film 5", entries[0].Film.Title)
}

func TestRemoveEntry(t *testing.T) {
	backend := newWatchServer()
	backend.entries[201] = watchRecord{filmID: 5, name: "Watchlist"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, fakeSession{authed: true}, nil)
	require.NoError(t, wls.Refresh(context.Background()))
	require.Len(t, wls.EntriesFor(""), 1)

	require.NoError(t, wls.Remove(context.Background(), 201))
	assert.Empty(t, wls.EntriesFor(""))
	assert.False(t, wls.IsFilmInList(5, ""))

	// Removing a gone entry surfaces the not-found error.
	err := wls.Remove(context.Background(), 201)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClearOnLogout(t *testing.T) {
	backend := newWatchServer()
	backend.entries[201] = watchRecord{filmID: 5, name: "Watchlist"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	session := &mutableSession{authed: true}
	wls := collections.NewWatchlists(api.NewClient(srv.URL, nil, nil), nil, session, nil)
	require.NoError(t, wls.Refresh(context.Background()))
	require.NotEmpty(t, wls.EntriesFor(""))

	wls.Clear()
	assert.Empty(t, wls.EntriesFor(""))
	assert.Empty(t, wls.ListNames())
}

package collections

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/store"
)

// Entry is a watchlist membership joined with its hydrated film, when
// hydration succeeded.
type Entry struct {
	domain.WatchlistEntry
	Film *domain.Film
}

// Watchlists tracks the user's named watchlists. Lists are keyed by their
// name string: entries sharing a name form one logical list, and duplicate
// names collapse into one for selection purposes.
type Watchlists struct {
	client  *api.Client
	cache   *store.Store
	session Session
	logger  *slog.Logger

	mu      sync.RWMutex
	entries []domain.WatchlistEntry
	films   map[int]domain.Film
}

// NewWatchlists creates the watchlists collection.
func NewWatchlists(client *api.Client, cache *store.Store, session Session, logger *slog.Logger) *Watchlists {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watchlists{
		client:  client,
		cache:   cache,
		session: session,
		logger:  logger,
		films:   make(map[int]domain.Film),
	}
}

// Refresh reloads all watchlist entries and lazily hydrates their films.
func (w *Watchlists) Refresh(ctx context.Context) error {
	if !w.session.IsAuthenticated() {
		w.Clear()
		return nil
	}

	entries, err := w.client.ListWatchlist(ctx, "")
	if err != nil {
		w.logger.Error("failed to fetch watchlist", "error", err)
		return err
	}

	w.mu.Lock()
	w.entries = entries
	w.mu.Unlock()

	w.hydrateMissing(ctx, entries)

	if w.cache != nil {
		w.cache.SaveWatchlist(entries)
	}
	w.logger.Debug("watchlist refreshed", "entries", len(entries))
	return nil
}

// AddToList creates a membership of the film in the named list. An empty
// name selects the default list.
func (w *Watchlists) AddToList(ctx context.Context, filmID int, name string) (*domain.WatchlistEntry, error) {
	if !w.session.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}

	entry, err := w.client.AddToWatchlist(ctx, api.WatchlistAdd{FilmID: filmID, Name: name})
	if err != nil {
		w.logger.Error("failed to add to watchlist", "filmID", filmID, "name", name, "error", err)
		return nil, err
	}

	w.mu.Lock()
	w.entries = append(w.entries, *entry)
	w.mu.Unlock()

	w.hydrateMissing(ctx, []domain.WatchlistEntry{*entry})
	return entry, nil
}

// Remove deletes a membership by entry id.
func (w *Watchlists) Remove(ctx context.Context, entryID int) error {
	if !w.session.IsAuthenticated() {
		return domain.ErrLoginRequired
	}

	if err := w.client.RemoveFromWatchlist(ctx, entryID); err != nil {
		w.logger.Error("failed to remove watchlist entry", "entryID", entryID, "error", err)
		return err
	}

	w.mu.Lock()
	for i, e := range w.entries {
		if e.ID == entryID {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// ListNames returns the distinct list names, sorted.
func (w *Watchlists) ListNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	seen := make(map[string]struct{})
	var names []string
	for _, e := range w.entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// EntriesFor returns the entries of one named list, each joined with its
// hydrated film when available. An empty name returns all entries.
func (w *Watchlists) EntriesFor(name string) []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var result []Entry
	for _, e := range w.entries {
		if name != "" && e.Name != name {
			continue
		}
		entry := Entry{WatchlistEntry: e}
		if film, ok := w.films[e.FilmID]; ok {
			filmCopy := film
			entry.Film = &filmCopy
		}
		result = append(result, entry)
	}
	return result
}

// ListsForFilm returns the names of the lists containing the film.
func (w *Watchlists) ListsForFilm(filmID int) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	seen := make(map[string]struct{})
	var names []string
	for _, e := range w.entries {
		if e.FilmID != filmID {
			continue
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

// IsFilmInList reports membership; an empty name matches any list.
func (w *Watchlists) IsFilmInList(filmID int, name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, e := range w.entries {
		if e.FilmID == filmID && (name == "" || e.Name == name) {
			return true
		}
	}
	return false
}

// Clear drops all local watchlist state. Called on logout.
func (w *Watchlists) Clear() {
	w.mu.Lock()
	w.entries = nil
	w.films = make(map[int]domain.Film)
	w.mu.Unlock()
}

func (w *Watchlists) hydrateMissing(ctx context.Context, entries []domain.WatchlistEntry) {
	for _, e := range entries {
		if e.FilmID == 0 {
			continue
		}
		w.mu.RLock()
		_, have := w.films[e.FilmID]
		w.mu.RUnlock()
		if have {
			continue
		}

		var film *domain.Film
		if w.cache != nil {
			if cached, ok := w.cache.GetFilm(e.FilmID); ok {
				film = cached
			}
		}
		if film == nil {
			fetched, err := w.client.GetFilm(ctx, e.FilmID)
			if err != nil {
				w.logger.Warn("failed to hydrate watchlist film", "filmID", e.FilmID, "error", err)
				continue
			}
			film = fetched
			if w.cache != nil {
				w.cache.SaveFilm(film)
			}
		}

		w.mu.Lock()
		w.films[e.FilmID] = *film
		w.mu.Unlock()
	}
}

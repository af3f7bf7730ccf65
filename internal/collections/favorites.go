// Package collections holds the per-user film collections: favourites and
// named watchlists. Both are fetched on authentication, mutated
// optimistically, and cleared on logout.
package collections

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/store"
)

// Session is the slice of session state the collections need.
type Session interface {
	IsAuthenticated() bool
}

// Favorites tracks which films the user has favourited. Toggle applies the
// change optimistically and rolls it back if the backend rejects it; the
// optimistic value is a hint, the backend is the truth, so callers should
// follow a settled mutation with a background Refresh.
type Favorites struct {
	client  *api.Client
	cache   *store.Store
	session Session
	logger  *slog.Logger

	mu          sync.RWMutex
	ids         map[int]struct{}
	favIDByFilm map[int]int // DELETE wants the favourite id, not the film id
	films       []domain.Film
}

// NewFavorites creates the favourites collection.
func NewFavorites(client *api.Client, cache *store.Store, session Session, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = slog.Default()
	}
	return &Favorites{
		client:      client,
		cache:       cache,
		session:     session,
		logger:      logger,
		ids:         make(map[int]struct{}),
		favIDByFilm: make(map[int]int),
	}
}

// Refresh reloads the favourites from the backend and hydrates film
// details for display. No-op (clearing state) when unauthenticated.
func (f *Favorites) Refresh(ctx context.Context) error {
	if !f.session.IsAuthenticated() {
		f.Clear()
		return nil
	}

	items, err := f.client.ListFavourites(ctx)
	if err != nil {
		f.logger.Error("failed to fetch favourites", "error", err)
		return err
	}

	ids := make(map[int]struct{}, len(items))
	favIDs := make(map[int]int, len(items))
	for _, it := range items {
		if it.FilmID == 0 {
			continue
		}
		ids[it.FilmID] = struct{}{}
		if it.ID != 0 {
			favIDs[it.FilmID] = it.ID
		}
	}

	films := make([]domain.Film, 0, len(ids))
	for _, it := range items {
		if it.FilmID == 0 {
			continue
		}
		if film := f.hydrate(ctx, it.FilmID); film != nil {
			films = append(films, *film)
		}
	}

	f.mu.Lock()
	f.ids = ids
	f.favIDByFilm = favIDs
	f.films = films
	f.mu.Unlock()

	if f.cache != nil {
		f.cache.SaveFavourites(items)
	}
	f.logger.Debug("favourites refreshed", "count", len(ids))
	return nil
}

// Toggle flips the favourite state of the film: POST when absent, DELETE
// when present. Exactly one mutating call per invocation. Requires an
// authenticated session; otherwise no network call is made.
func (f *Favorites) Toggle(ctx context.Context, filmID int) (nowFavorite bool, err error) {
	if !f.session.IsAuthenticated() {
		return false, domain.ErrLoginRequired
	}

	if f.IsFavorited(filmID) {
		return false, f.remove(ctx, filmID)
	}
	return true, f.add(ctx, filmID)
}

func (f *Favorites) add(ctx context.Context, filmID int) error {
	// Optimistic: mark favourited before the call settles.
	f.mu.Lock()
	f.ids[filmID] = struct{}{}
	f.mu.Unlock()

	fav, err := f.client.AddFavourite(ctx, filmID)
	if err != nil {
		// Roll back the optimistic flag.
		f.mu.Lock()
		delete(f.ids, filmID)
		f.mu.Unlock()
		f.logger.Error("failed to add favourite", "filmID", filmID, "error", err)
		return err
	}

	f.mu.Lock()
	if fav.ID != 0 {
		f.favIDByFilm[filmID] = fav.ID
	}
	f.mu.Unlock()

	if film := f.hydrate(ctx, filmID); film != nil {
		f.mu.Lock()
		found := false
		for _, existing := range f.films {
			if existing.ID == filmID {
				found = true
				break
			}
		}
		if !found {
			f.films = append(f.films, *film)
		}
		f.mu.Unlock()
	}
	return nil
}

func (f *Favorites) remove(ctx context.Context, filmID int) error {
	f.mu.Lock()
	delete(f.ids, filmID)
	favID, haveFavID := f.favIDByFilm[filmID]
	f.mu.Unlock()

	var err error
	if haveFavID {
		err = f.client.DeleteFavourite(ctx, favID)
	} else {
		// Fallback: delete by film id; on 404 re-fetch the map and retry once.
		err = f.client.DeleteFavourite(ctx, filmID)
		if errors.Is(err, domain.ErrNotFound) {
			if refreshErr := f.Refresh(ctx); refreshErr == nil {
				f.mu.RLock()
				retryID, ok := f.favIDByFilm[filmID]
				f.mu.RUnlock()
				if ok {
					err = f.client.DeleteFavourite(ctx, retryID)
				}
			}
		}
	}

	if err != nil {
		// Roll back: the film is still favourited server-side.
		f.mu.Lock()
		f.ids[filmID] = struct{}{}
		f.mu.Unlock()
		f.logger.Error("failed to remove favourite", "filmID", filmID, "error", err)
		return err
	}

	f.mu.Lock()
	// The fallback refetch above may have re-marked the film; drop it again.
	delete(f.ids, filmID)
	delete(f.favIDByFilm, filmID)
	for i, film := range f.films {
		if film.ID == filmID {
			f.films = append(f.films[:i], f.films[i+1:]...)
			break
		}
	}
	f.mu.Unlock()
	return nil
}

// IsFavorited reports whether the film is currently favourited.
func (f *Favorites) IsFavorited(filmID int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[filmID]
	return ok
}

// Films returns hydrated details for the favourited films.
func (f *Favorites) Films() []domain.Film {
	f.mu.RLock()
	defer f.mu.RUnlock()
	films := make([]domain.Film, len(f.films))
	copy(films, f.films)
	return films
}

// Count returns the number of favourited films.
func (f *Favorites) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}

// Clear drops all local favourite state. Called on logout.
func (f *Favorites) Clear() {
	f.mu.Lock()
	f.ids = make(map[int]struct{})
	f.favIDByFilm = make(map[int]int)
	f.films = nil
	f.mu.Unlock()
}

// hydrate resolves full film details, store-first then API. Returns nil
// when the film cannot be resolved; hydration failures never fail the
// collection operation.
func (f *Favorites) hydrate(ctx context.Context, filmID int) *domain.Film {
	if f.cache != nil {
		if film, ok := f.cache.GetFilm(filmID); ok {
			return film
		}
	}
	film, err := f.client.GetFilm(ctx, filmID)
	if err != nil {
		f.logger.Warn("failed to hydrate film", "filmID", filmID, "error", err)
		return nil
	}
	if f.cache != nil {
		f.cache.SaveFilm(film)
	}
	return film
}

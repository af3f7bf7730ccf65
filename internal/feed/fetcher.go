// Package feed incrementally loads cursor-paginated film listings.
//
// The backend paginates via a "next" URL embedded in each response; a nil
// cursor signals exhaustion. Page N+1 is never requested before page N's
// response is processed: a single in-flight guard drops overlapping
// triggers instead of queuing them.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// State is the fetcher lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoadingFirst
	StateReady
	StateLoadingNext
	StateExhausted
	StateError // first page failed; reset to retry
)

// PageSource fetches one page of a film listing.
type PageSource interface {
	FilmPage(ctx context.Context, path string) ([]domain.Film, string, error)
}

// Fetcher accumulates films from sequential page requests. Accumulation is
// append-only for the life of one query; Reset starts a fresh accumulation
// and discards responses still in flight for the old one.
type Fetcher struct {
	source PageSource
	logger *slog.Logger

	mu      sync.Mutex
	gen     int // bumped on Reset; stale responses are dropped
	state   State
	path    string // initial listing path for the current query
	next    string // cursor for the next page, "" when exhausted
	items   []domain.Film
	loadErr error // first-page error, terminal until Reset
	pageErr error // later-page error; items are kept, pagination stops
}

// NewFetcher creates a fetcher for the given listing path.
func NewFetcher(source PageSource, path string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source: source,
		logger: logger,
		state:  StateIdle,
		path:   path,
	}
}

// Reset points the fetcher at a new listing path, clearing accumulated
// items. In-flight responses from the previous query are discarded.
func (f *Fetcher) Reset(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.state = StateIdle
	f.path = path
	f.next = ""
	f.items = nil
	f.loadErr = nil
	f.pageErr = nil
}

// LoadFirst fetches the first page. A failure here is terminal for this
// query; callers retry via Reset + LoadFirst.
func (f *Fetcher) LoadFirst(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return f.loadErr
	}
	f.state = StateLoadingFirst
	gen := f.gen
	path := f.path
	f.mu.Unlock()

	films, next, err := f.source.FilmPage(ctx, path)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return nil // query changed while in flight
	}
	if err != nil {
		f.logger.Error("first page load failed", "path", path, "error", err)
		f.state = StateError
		f.loadErr = err
		return err
	}
	f.items = films
	f.next = next
	if next == "" {
		f.state = StateExhausted
	} else {
		f.state = StateReady
	}
	f.logger.Debug("first page loaded", "path", path, "count", len(films), "hasMore", next != "")
	return nil
}

// LoadNext fetches the next page if a cursor exists and nothing is in
// flight. Overlapping triggers are ignored, not queued. A later-page
// failure keeps the accumulated items and silently stops pagination;
// the error is retained in PageErr.
func (f *Fetcher) LoadNext(ctx context.Context) bool {
	f.mu.Lock()
	if f.state != StateReady || f.next == "" {
		f.mu.Unlock()
		return false
	}
	f.state = StateLoadingNext
	gen := f.gen
	cursor := f.next
	f.mu.Unlock()

	films, next, err := f.source.FilmPage(ctx, cursor)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return false
	}
	if err != nil {
		f.logger.Warn("page load failed, stopping pagination", "cursor", cursor, "error", err)
		f.pageErr = err
		f.next = ""
		f.state = StateReady
		return false
	}
	f.items = append(f.items, films...)
	f.next = next
	if next == "" {
		f.state = StateExhausted
	} else {
		f.state = StateReady
	}
	return true
}

// ShouldLoadMore reports whether the proximity signal should fire: the
// cursor is within margin rows of the end of the rendered list, a next
// cursor exists, and no request is in flight.
func (f *Fetcher) ShouldLoadMore(cursor, margin int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReady || f.next == "" {
		return false
	}
	return cursor >= len(f.items)-margin
}

// Items returns the accumulated films in arrival order. Read-only to
// consumers.
func (f *Fetcher) Items() []domain.Film {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

// State returns the current lifecycle state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// HasMore reports whether further pages exist.
func (f *Fetcher) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next != ""
}

// Err returns the first-page error, if the first page failed.
func (f *Fetcher) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadErr
}

// PageErr returns the error that stopped pagination after the first page,
// if any. Accumulated items remain available.
func (f *Fetcher) PageErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageErr
}

// Len returns the number of accumulated films.
func (f *Fetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

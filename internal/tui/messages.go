package tui

import (
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// Message types for the TUI

// BootDoneMsg signals that the startup session check has settled.
type BootDoneMsg struct{}

// FirstPageMsg signals that the first catalog page has loaded (or failed).
type FirstPageMsg struct {
	Err error
}

// NextPageMsg signals that a subsequent catalog page settled.
type NextPageMsg struct {
	Loaded bool
}

// FilmLoadedMsg signals that a film's full details arrived.
type FilmLoadedMsg struct {
	Film *domain.Film
	Err  error
}

// ReviewsLoadedMsg signals that the detail view's reviews arrived.
type ReviewsLoadedMsg struct {
	Err error
}

// ReviewActionMsg signals that a review mutation (submit/delete/like/report)
// settled.
type ReviewActionMsg struct {
	Action string
	Err    error
}

// FavToggledMsg signals that a favourite toggle settled.
type FavToggledMsg struct {
	FilmID      int
	NowFavorite bool
	Err         error
}

// CollectionsRefreshedMsg signals a favourites/watchlist background resync.
type CollectionsRefreshedMsg struct {
	Err error
}

// WatchAddedMsg signals that a watchlist add settled.
type WatchAddedMsg struct {
	Entry *domain.WatchlistEntry
	Err   error
}

// WatchRemovedMsg signals that a watchlist removal settled.
type WatchRemovedMsg struct {
	EntryID int
	Err     error
}

// BlendResultMsg signals that a compromise query settled.
type BlendResultMsg struct {
	Resp *domain.BlendResponse
	Err  error
}

// LoginDoneMsg signals that a login or registration attempt settled.
type LoginDoneMsg struct {
	Err error
}

// LogoutDoneMsg signals that logout completed locally.
type LogoutDoneMsg struct{}

// NoticeTickMsg repaints after a success notice should have expired.
type NoticeTickMsg struct{}

// UndoneMsg signals that a one-shot undo action settled.
type UndoneMsg struct {
	Err error
}

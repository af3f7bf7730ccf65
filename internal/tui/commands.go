package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/notify"
)

// Commands run service calls off the update loop. Network calls are scoped
// to the program lifetime; results arriving for a superseded query are
// dropped by the feed's generation counter.

func (m *Model) bootCmd() tea.Cmd {
	return func() tea.Msg {
		m.Session.Boot(context.Background())
		return BootDoneMsg{}
	}
}

func (m *Model) loadFirstPageCmd() tea.Cmd {
	fetcher := m.activeFetcher()
	return func() tea.Msg {
		err := fetcher.LoadFirst(context.Background())
		return FirstPageMsg{Err: err}
	}
}

func (m *Model) loadNextPageCmd() tea.Cmd {
	fetcher := m.activeFetcher()
	return func() tea.Msg {
		loaded := fetcher.LoadNext(context.Background())
		return NextPageMsg{Loaded: loaded}
	}
}

func (m *Model) loadFilmCmd(filmID int) tea.Cmd {
	return func() tea.Msg {
		if m.Store != nil {
			if film, ok := m.Store.GetFilm(filmID); ok {
				return FilmLoadedMsg{Film: film}
			}
		}
		film, err := m.Client.GetFilm(context.Background(), filmID)
		if err == nil && m.Store != nil {
			m.Store.SaveFilm(film)
		}
		return FilmLoadedMsg{Film: film, Err: err}
	}
}

func (m *Model) loadReviewsCmd() tea.Cmd {
	svc := m.Reviews
	return func() tea.Msg {
		return ReviewsLoadedMsg{Err: svc.Refresh(context.Background())}
	}
}

func (m *Model) submitReviewCmd(rating int, body string) tea.Cmd {
	svc := m.Reviews
	return func() tea.Msg {
		return ReviewActionMsg{Action: "submit", Err: svc.Submit(context.Background(), rating, body)}
	}
}

func (m *Model) deleteReviewCmd() tea.Cmd {
	svc := m.Reviews
	return func() tea.Msg {
		return ReviewActionMsg{Action: "delete", Err: svc.Delete(context.Background())}
	}
}

func (m *Model) toggleLikeCmd(reviewID int) tea.Cmd {
	svc := m.Reviews
	return func() tea.Msg {
		return ReviewActionMsg{Action: "like", Err: svc.ToggleLike(context.Background(), reviewID)}
	}
}

func (m *Model) toggleReportCmd(reviewID int) tea.Cmd {
	svc := m.Reviews
	return func() tea.Msg {
		_, err := svc.ToggleReport(context.Background(), reviewID)
		return ReviewActionMsg{Action: "report", Err: err}
	}
}

func (m *Model) toggleFavoriteCmd(filmID int) tea.Cmd {
	return func() tea.Msg {
		nowFav, err := m.Favorites.Toggle(context.Background(), filmID)
		return FavToggledMsg{FilmID: filmID, NowFavorite: nowFav, Err: err}
	}
}

// refreshCollectionsCmd reconciles local collections with server truth
// after a settled mutation: the optimistic value is a hint, not a
// commitment.
func (m *Model) refreshCollectionsCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.Favorites.Refresh(context.Background()); err != nil {
			return CollectionsRefreshedMsg{Err: err}
		}
		return CollectionsRefreshedMsg{Err: m.Watchlists.Refresh(context.Background())}
	}
}

func (m *Model) addToWatchlistCmd(filmID int, name string) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.Watchlists.AddToList(context.Background(), filmID, name)
		return WatchAddedMsg{Entry: entry, Err: err}
	}
}

func (m *Model) removeFromWatchlistCmd(entryID int) tea.Cmd {
	return func() tea.Msg {
		return WatchRemovedMsg{EntryID: entryID, Err: m.Watchlists.Remove(context.Background(), entryID)}
	}
}

func (m *Model) blendCmd(filmAID, filmBID int, slider float64, limit int) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.Blend.Compromise(context.Background(), filmAID, filmBID, slider, limit)
		return BlendResultMsg{Resp: resp, Err: err}
	}
}

func (m *Model) loginCmd(creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		return LoginDoneMsg{Err: m.Session.Login(context.Background(), creds)}
	}
}

func (m *Model) registerCmd(reg domain.Registration) tea.Cmd {
	return func() tea.Msg {
		return LoginDoneMsg{Err: m.Session.Register(context.Background(), reg)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.Session.Logout(context.Background())
		m.Favorites.Clear()
		m.Watchlists.Clear()
		if m.Store != nil {
			m.Store.InvalidateUser()
		}
		return LogoutDoneMsg{}
	}
}

func (m *Model) undoCmd(undo func()) tea.Cmd {
	return func() tea.Msg {
		undo()
		return UndoneMsg{}
	}
}

// noticeTickCmd schedules a repaint for when the current notice expires.
func noticeTickCmd() tea.Cmd {
	return tea.Tick(notify.DefaultDuration+100*time.Millisecond, func(time.Time) tea.Msg {
		return NoticeTickMsg{}
	})
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/blend"
	"github.com/Kerem-Haeger/filmhive/internal/browser"
	"github.com/Kerem-Haeger/filmhive/internal/collections"
	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/feed"
	"github.com/Kerem-Haeger/filmhive/internal/filter"
	"github.com/Kerem-Haeger/filmhive/internal/notify"
	"github.com/Kerem-Haeger/filmhive/internal/reviews"
	"github.com/Kerem-Haeger/filmhive/internal/search"
	"github.com/Kerem-Haeger/filmhive/internal/session"
	"github.com/Kerem-Haeger/filmhive/internal/store"
	"github.com/Kerem-Haeger/filmhive/internal/tui/components"
)

// View identifies the active screen.
type View int

const (
	ViewFilms View = iota
	ViewForYou
	ViewBlend
	ViewFavorites
	ViewWatchlists
	ViewDetail
	ViewLogin
	ViewRegister
	ViewReview
	ViewHelp
)

// scrollMargin is how close to the end of the loaded list the cursor may
// get before the next page is requested.
const scrollMargin = 8

// blendStep is the alpha slider increment per key press.
const blendStep = 0.05

// Model is the root Bubble Tea model.
type Model struct {
	Session    *session.Service
	Client     *api.Client
	Store      *store.Store
	Favorites  *collections.Favorites
	Watchlists *collections.Watchlists
	Reviews    *reviews.Service
	Blend      *blend.Service

	cfg    *config.Config
	logger *slog.Logger
	opener *browser.Opener
	keys   KeyMap

	width  int
	height int

	view     View
	prevView View

	catalog *feed.Fetcher
	forYou  *feed.Fetcher

	filters     filter.State
	derived     filter.View
	list        components.FilmList
	filterPanel components.FilterPanel
	filterOpen  bool

	searchInput textinput.Model
	searching   bool

	index    *search.Index
	notifier *notify.Notifier

	detailID     int
	detail       *domain.Film
	reviewCursor int

	loginForm components.Form
	regForm   components.Form
	revForm   components.Form

	picker       components.Picker
	blendPicking int // 0 none, 1 choosing A, 2 choosing B
	blendA       *domain.Film
	blendB       *domain.Film
	blendSlider  float64
	blendResp    *domain.BlendResponse
	blendCursor  int
	blendBusy    bool

	favList components.FilmList

	wlName   string
	wlCursor int
}

// NewModel wires the root model from already constructed services.
func NewModel(cfg *config.Config, logger *slog.Logger, sess *session.Service, client *api.Client, cache *store.Store, favs *collections.Favorites, wls *collections.Watchlists, blendSvc *blend.Service) *Model {
	si := textinput.New()
	si.Placeholder = "search films"
	si.CharLimit = 100
	si.Width = 30

	m := &Model{
		Session:     sess,
		Client:      client,
		Store:       cache,
		Favorites:   favs,
		Watchlists:  wls,
		Blend:       blendSvc,
		cfg:         cfg,
		logger:      logger,
		opener:      browser.NewOpener(logger),
		keys:        DefaultKeyMap(),
		catalog:     feed.NewFetcher(client, api.FilmsPath("", cfg.UI.PageLimit), logger),
		forYou:      feed.NewFetcher(client, api.ForYouPath(), logger),
		list:        components.NewFilmList(),
		favList:     components.NewFilmList(),
		searchInput: si,
		index:       search.NewIndex(),
		notifier:    notify.New(nil),
		blendSlider: 0.5,
		wlName:      domain.DefaultWatchlistName,
	}
	m.filterPanel = components.NewFilterPanel(&m.filters)
	m.picker = components.NewPicker(m.index, "Pick a film")
	m.list.IsFavorite = favs.IsFavorited
	m.list.InWatchlist = func(id int) bool { return len(wls.ListsForFilm(id)) > 0 }
	m.favList.IsFavorite = favs.IsFavorited
	return m
}

// SetInitialAddress seeds the filter state from a shareable address string.
func (m *Model) SetInitialAddress(address string) {
	if address != "" {
		m.filters = filter.Decode(address)
	}
}

// Init kicks off the session boot.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bootCmd(), textinput.Blink)
}

// activeFetcher returns the fetcher feeding the current list view.
func (m *Model) activeFetcher() *feed.Fetcher {
	if m.view == ViewForYou {
		return m.forYou
	}
	return m.catalog
}

// applyFilters re-derives the visible list from the accumulated feed.
func (m *Model) applyFilters() {
	items := m.activeFetcher().Items()
	m.index.Add(items)
	m.derived = filter.Derive(items, m.filters)
	m.list.SetFilms(m.derived.Films)
	m.filterPanel.SetGenres(m.derived.AvailableGenres)
}

func (m *Model) setView(v View) tea.Cmd {
	if v == m.view {
		return nil
	}
	m.notifier.Clear()
	m.prevView = m.view
	m.view = v
	m.filterOpen = false
	m.searching = false

	switch v {
	case ViewFilms, ViewForYou:
		f := m.activeFetcher()
		if f.State() == feed.StateIdle {
			return m.loadFirstPageCmd()
		}
		m.applyFilters()
	case ViewFavorites:
		m.favList.SetFilms(m.Favorites.Films())
	case ViewWatchlists:
		m.clampWatchCursor()
	}
	return nil
}

func (m *Model) clampWatchCursor() {
	entries := m.Watchlists.EntriesFor(m.wlName)
	if m.wlCursor >= len(entries) {
		m.wlCursor = len(entries) - 1
	}
	if m.wlCursor < 0 {
		m.wlCursor = 0
	}
}

// selectedFilm returns the film relevant to the current view's cursor.
func (m *Model) selectedFilm() *domain.Film {
	switch m.view {
	case ViewFilms, ViewForYou:
		return m.list.Selected()
	case ViewFavorites:
		return m.favList.Selected()
	case ViewWatchlists:
		entries := m.Watchlists.EntriesFor(m.wlName)
		if m.wlCursor < len(entries) && entries[m.wlCursor].Film != nil {
			return entries[m.wlCursor].Film
		}
	case ViewDetail:
		return m.detail
	case ViewBlend:
		if m.blendResp != nil && m.blendCursor < len(m.blendResp.Results) {
			f := m.blendResp.Results[m.blendCursor].Film
			return &f
		}
	}
	return nil
}

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.height - 6
		if listHeight < 3 {
			listHeight = 3
		}
		m.list.SetSize(m.width-2, listHeight)
		m.favList.SetSize(m.width-2, listHeight)
		m.filterPanel.SetWidth(m.width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case BootDoneMsg:
		cmds := []tea.Cmd{m.loadFirstPageCmd()}
		if m.Session.IsAuthenticated() {
			cmds = append(cmds, m.refreshCollectionsCmd())
		}
		return m, tea.Batch(cmds...)

	case FirstPageMsg:
		if msg.Err != nil {
			m.notifier.Error(feedErrorMessage(msg.Err))
		}
		m.applyFilters()
		return m, nil

	case NextPageMsg:
		if msg.Loaded {
			m.applyFilters()
		}
		if err := m.activeFetcher().PageErr(); err != nil {
			m.notifier.Error("Could not load more films. Scroll again to retry.")
		}
		return m, nil

	case FilmLoadedMsg:
		if msg.Err != nil {
			m.notifier.Error("Could not load film details.")
			return m, nil
		}
		m.detail = msg.Film
		return m, nil

	case ReviewsLoadedMsg:
		if msg.Err != nil {
			m.notifier.Error("Could not load reviews.")
		}
		m.clampReviewCursor()
		return m, nil

	case ReviewActionMsg:
		return m.handleReviewAction(msg)

	case FavToggledMsg:
		return m.handleFavToggled(msg)

	case CollectionsRefreshedMsg:
		if msg.Err == nil {
			if m.view == ViewFavorites {
				m.favList.SetFilms(m.Favorites.Films())
			}
			m.clampWatchCursor()
		}
		return m, nil

	case WatchAddedMsg:
		if msg.Err != nil {
			m.notifier.Error(actionErrorMessage(msg.Err, "Could not add to watchlist."))
			return m, nil
		}
		m.notifier.Success(fmt.Sprintf("Added to %s.", msg.Entry.Name), m.undoWatchAdd(msg.Entry.ID), notify.DefaultDuration)
		return m, noticeTickCmd()

	case WatchRemovedMsg:
		if msg.Err != nil {
			m.notifier.Error(actionErrorMessage(msg.Err, "Could not remove from watchlist."))
			return m, nil
		}
		m.clampWatchCursor()
		m.notifier.Success("Removed from watchlist.", nil, notify.DefaultDuration)
		return m, noticeTickCmd()

	case BlendResultMsg:
		m.blendBusy = false
		if msg.Err != nil {
			m.notifier.Error(blend.UserMessage(msg.Err))
			return m, nil
		}
		m.blendResp = msg.Resp
		m.blendCursor = 0
		return m, nil

	case LoginDoneMsg:
		return m.handleLoginDone(msg)

	case LogoutDoneMsg:
		m.wlCursor = 0
		m.favList.SetFilms(nil)
		m.notifier.Success("Logged out.", nil, notify.DefaultDuration)
		return m, noticeTickCmd()

	case UndoneMsg:
		return m, m.refreshCollectionsCmd()

	case NoticeTickMsg:
		return m, nil
	}

	return m, nil
}

func (m *Model) handleReviewAction(msg ReviewActionMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		switch msg.Action {
		case "like":
			if errors.Is(msg.Err, domain.ErrLoginRequired) {
				m.notifier.Error("You must be logged in to like reviews.")
			} else {
				m.notifier.Error("Could not update like.")
			}
		case "report":
			m.notifier.Error(actionErrorMessage(msg.Err, "Could not update report."))
		default:
			m.notifier.Error(actionErrorMessage(msg.Err, "Could not save review."))
		}
		return m, nil
	}
	switch msg.Action {
	case "submit":
		if m.view == ViewReview {
			m.view = ViewDetail
		}
		m.notifier.Success("Review saved.", nil, notify.DefaultDuration)
		return m, tea.Batch(m.loadReviewsCmd(), noticeTickCmd())
	case "delete":
		m.notifier.Success("Review deleted.", nil, notify.DefaultDuration)
		return m, tea.Batch(m.loadReviewsCmd(), noticeTickCmd())
	case "report":
		m.notifier.Success("Report updated.", nil, notify.DefaultDuration)
		return m, noticeTickCmd()
	}
	m.clampReviewCursor()
	return m, nil
}

func (m *Model) handleFavToggled(msg FavToggledMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrLoginRequired) {
			m.notifier.Error("You must be logged in to favourite films.")
		} else {
			m.notifier.Error(actionErrorMessage(msg.Err, "Could not update favourites."))
		}
		return m, nil
	}
	verb := "Removed from"
	if msg.NowFavorite {
		verb = "Added to"
	}
	filmID := msg.FilmID
	m.notifier.Success(verb+" favourites.", func() {
		_, _ = m.Favorites.Toggle(context.Background(), filmID)
	}, notify.DefaultDuration)
	if m.view == ViewFavorites {
		m.favList.SetFilms(m.Favorites.Films())
	}
	return m, tea.Batch(m.refreshCollectionsCmd(), noticeTickCmd())
}

func (m *Model) handleLoginDone(msg LoginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		errText := loginErrorMessage(msg.Err)
		if m.view == ViewRegister {
			m.regForm.SetError(errText)
		} else {
			m.loginForm.SetError(errText)
		}
		return m, nil
	}
	m.view = m.prevView
	if m.view == ViewLogin || m.view == ViewRegister {
		m.view = ViewFilms
	}
	name := ""
	if u := m.Session.User(); u != nil {
		name = " " + u.Username
	}
	m.notifier.Success("Welcome"+name+"!", nil, notify.DefaultDuration)
	return m, tea.Batch(m.refreshCollectionsCmd(), noticeTickCmd())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal surfaces consume keys first.
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.filterOpen {
		event, cmd := m.filterPanel.Update(msg)
		switch event {
		case components.FilterChanged:
			m.applyFilters()
		case components.FilterClosed:
			m.filterOpen = false
		}
		return m, cmd
	}
	if m.blendPicking != 0 {
		return m.handlePickerKey(msg)
	}
	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewRegister:
		return m.handleRegisterKey(msg)
	case ViewReview:
		return m.handleReviewFormKey(msg)
	}

	if keyMatches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if cmd, handled := m.handleGlobalKey(msg); handled {
		return m, cmd
	}

	switch m.view {
	case ViewFilms, ViewForYou:
		return m.handleListKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewWatchlists:
		return m.handleWatchlistsKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewBlend:
		return m.handleBlendKey(msg)
	case ViewHelp:
		if keyMatches(msg, m.keys.Escape, m.keys.Back, m.keys.Help) {
			m.view = m.prevView
		}
		return m, nil
	}
	return m, nil
}

// handleGlobalKey covers keys shared across the main views.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case keyMatches(msg, m.keys.Films):
		return m.setView(ViewFilms), true
	case keyMatches(msg, m.keys.ForYou):
		if !m.Session.IsAuthenticated() {
			m.notifier.Error("Log in to see your For You feed.")
			return nil, true
		}
		return m.setView(ViewForYou), true
	case keyMatches(msg, m.keys.BlendMode):
		return m.setView(ViewBlend), true
	case keyMatches(msg, m.keys.Favorites):
		return m.setView(ViewFavorites), true
	case keyMatches(msg, m.keys.Watchlists):
		return m.setView(ViewWatchlists), true
	case keyMatches(msg, m.keys.Help):
		m.prevView = m.view
		m.view = ViewHelp
		return nil, true
	case keyMatches(msg, m.keys.Login):
		if m.Session.IsAuthenticated() {
			m.notifier.Error("Already logged in.")
			return nil, true
		}
		m.openLogin()
		return nil, true
	case keyMatches(msg, m.keys.Logout):
		if !m.Session.IsAuthenticated() {
			return nil, true
		}
		return m.logoutCmd(), true
	case keyMatches(msg, m.keys.Undo):
		if undo := m.notifier.TakeUndo(); undo != nil {
			return m.undoCmd(undo), true
		}
		return nil, true
	case keyMatches(msg, m.keys.Refresh):
		return m.refreshActive(), true
	case keyMatches(msg, m.keys.CopyAddress):
		addr := m.filters.Encode()
		if addr == "" {
			m.notifier.Success("No active filters to share.", nil, notify.DefaultDuration)
		} else {
			m.notifier.Success("Address: "+addr, nil, notify.DefaultDuration)
		}
		return noticeTickCmd(), true
	}
	return nil, false
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.view {
	case ViewFilms:
		m.catalog.Reset(api.FilmsPath("", m.cfg.UI.PageLimit))
		return m.loadFirstPageCmd()
	case ViewForYou:
		m.forYou.Reset(api.ForYouPath())
		return m.loadFirstPageCmd()
	case ViewFavorites, ViewWatchlists:
		return m.refreshCollectionsCmd()
	case ViewDetail:
		return tea.Batch(m.loadFilmCmd(m.detailID), m.loadReviewsCmd())
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Up):
		m.list.MoveUp()
	case keyMatches(msg, m.keys.Down):
		m.list.MoveDown()
	case keyMatches(msg, m.keys.PageUp):
		m.list.PageUp()
	case keyMatches(msg, m.keys.PageDown):
		m.list.PageDown()
	case keyMatches(msg, m.keys.Home):
		m.list.GoTop()
	case keyMatches(msg, m.keys.End):
		m.list.GoBottom()
	case keyMatches(msg, m.keys.Enter):
		if f := m.list.Selected(); f != nil {
			return m, m.openDetail(f)
		}
		return m, nil
	case keyMatches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.filters.Query)
		return m, m.searchInput.Focus()
	case keyMatches(msg, m.keys.Filter):
		m.filterOpen = true
		m.filterPanel.SetGenres(m.derived.AvailableGenres)
		return m, nil
	case keyMatches(msg, m.keys.Sort):
		m.cycleSort()
		return m, nil
	case keyMatches(msg, m.keys.ResetFilters):
		m.filters.Reset()
		m.filters.Query = ""
		m.searchInput.SetValue("")
		m.applyFilters()
		return m, nil
	case keyMatches(msg, m.keys.Favorite):
		if f := m.list.Selected(); f != nil {
			return m, m.toggleFavoriteCmd(f.ID)
		}
		return m, nil
	case keyMatches(msg, m.keys.Watchlist):
		if f := m.list.Selected(); f != nil {
			return m, m.addToWatchlistCmd(f.ID, m.wlName)
		}
		return m, nil
	case keyMatches(msg, m.keys.OpenPoster):
		return m, m.openPoster(m.list.Selected())
	case keyMatches(msg, m.keys.Escape):
		m.notifier.ClearError()
		return m, nil
	default:
		return m, nil
	}

	// Cursor moved: maybe request the next page. Filtered views page on
	// the underlying feed length, so the margin is checked against the
	// visible list.
	if m.activeFetcher().ShouldLoadMore(m.list.Cursor(), scrollMargin) && !m.filters.HasActiveFilters() && m.filters.Query == "" {
		return m, m.loadNextPageCmd()
	}
	if m.list.Cursor() >= m.list.Len()-scrollMargin && m.activeFetcher().HasMore() {
		return m, m.loadNextPageCmd()
	}
	return m, nil
}

func (m *Model) cycleSort() {
	idx := 0
	for i, k := range filter.SortKeys {
		if k == m.filters.Sort {
			idx = i
			break
		}
	}
	m.filters.SetSort(filter.SortKeys[(idx+1)%len(filter.SortKeys)])
	m.applyFilters()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filters.Query = m.searchInput.Value()
	m.applyFilters()
	return m, cmd
}

func (m *Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Up):
		m.favList.MoveUp()
	case keyMatches(msg, m.keys.Down):
		m.favList.MoveDown()
	case keyMatches(msg, m.keys.Enter):
		if f := m.favList.Selected(); f != nil {
			return m, m.openDetail(f)
		}
	case keyMatches(msg, m.keys.Favorite):
		if f := m.favList.Selected(); f != nil {
			return m, m.toggleFavoriteCmd(f.ID)
		}
	case keyMatches(msg, m.keys.Watchlist):
		if f := m.favList.Selected(); f != nil {
			return m, m.addToWatchlistCmd(f.ID, m.wlName)
		}
	case keyMatches(msg, m.keys.OpenPoster):
		return m, m.openPoster(m.favList.Selected())
	case keyMatches(msg, m.keys.Back, m.keys.Escape):
		return m, m.setView(ViewFilms)
	}
	return m, nil
}

func (m *Model) handleWatchlistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.Watchlists.EntriesFor(m.wlName)
	switch {
	case keyMatches(msg, m.keys.Up):
		if m.wlCursor > 0 {
			m.wlCursor--
		}
	case keyMatches(msg, m.keys.Down):
		if m.wlCursor < len(entries)-1 {
			m.wlCursor++
		}
	case keyMatches(msg, m.keys.Enter):
		if f := m.selectedFilm(); f != nil {
			return m, m.openDetail(f)
		}
	case keyMatches(msg, m.keys.Watchlist):
		if m.wlCursor < len(entries) {
			return m, m.removeFromWatchlistCmd(entries[m.wlCursor].ID)
		}
	case keyMatches(msg, m.keys.Sort):
		m.cycleWatchlistName()
	case keyMatches(msg, m.keys.Back, m.keys.Escape):
		return m, m.setView(ViewFilms)
	}
	return m, nil
}

// cycleWatchlistName steps through the distinct list names, plus an
// all-lists view keyed by the empty string.
func (m *Model) cycleWatchlistName() {
	names := m.Watchlists.ListNames()
	if len(names) == 0 {
		m.wlName = domain.DefaultWatchlistName
		return
	}
	options := append([]string{""}, names...)
	for i, n := range options {
		if n == m.wlName {
			m.wlName = options[(i+1)%len(options)]
			m.wlCursor = 0
			return
		}
	}
	m.wlName = options[0]
	m.wlCursor = 0
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Back, m.keys.Escape):
		m.view = m.prevView
		m.detail = nil
		m.Reviews = nil
		return m, nil
	case keyMatches(msg, m.keys.Up):
		if m.reviewCursor > 0 {
			m.reviewCursor--
		}
	case keyMatches(msg, m.keys.Down):
		if m.Reviews != nil && m.reviewCursor < len(m.Reviews.Reviews())-1 {
			m.reviewCursor++
		}
	case keyMatches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd(m.detailID)
	case keyMatches(msg, m.keys.Watchlist):
		return m, m.addToWatchlistCmd(m.detailID, m.wlName)
	case keyMatches(msg, m.keys.Like):
		if r := m.reviewUnderCursor(); r != nil {
			return m, m.toggleLikeCmd(r.ID)
		}
	case keyMatches(msg, m.keys.Report):
		if r := m.reviewUnderCursor(); r != nil {
			if r.IsOwner {
				m.notifier.Error("You cannot report your own review.")
				return m, nil
			}
			return m, m.toggleReportCmd(r.ID)
		}
	case keyMatches(msg, m.keys.Review):
		m.openReviewForm()
		return m, nil
	case keyMatches(msg, m.keys.OpenPoster):
		return m, m.openPoster(m.detail)
	}
	return m, nil
}

func (m *Model) reviewUnderCursor() *domain.Review {
	if m.Reviews == nil {
		return nil
	}
	rs := m.Reviews.Reviews()
	if m.reviewCursor < len(rs) {
		r := rs[m.reviewCursor]
		return &r
	}
	return nil
}

func (m *Model) clampReviewCursor() {
	if m.Reviews == nil {
		m.reviewCursor = 0
		return
	}
	n := len(m.Reviews.Reviews())
	if m.reviewCursor >= n {
		m.reviewCursor = n - 1
	}
	if m.reviewCursor < 0 {
		m.reviewCursor = 0
	}
}

func (m *Model) handleBlendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Slider keys overlap the Back binding (h/left), so they go first.
	case msg.String() == "left", msg.String() == "h":
		m.blendSlider -= blendStep
		if m.blendSlider < 0 {
			m.blendSlider = 0
		}
	case msg.String() == "right", msg.String() == "l":
		m.blendSlider += blendStep
		if m.blendSlider > 1 {
			m.blendSlider = 1
		}
	case keyMatches(msg, m.keys.Back, m.keys.Escape):
		return m, m.setView(ViewFilms)
	case msg.String() == "a":
		m.blendPicking = 1
		return m, m.picker.Open()
	case msg.String() == "b":
		m.blendPicking = 2
		return m, m.picker.Open()
	case keyMatches(msg, m.keys.Up):
		if m.blendCursor > 0 {
			m.blendCursor--
		}
	case keyMatches(msg, m.keys.Down):
		if m.blendResp != nil && m.blendCursor < len(m.blendResp.Results)-1 {
			m.blendCursor++
		}
	case keyMatches(msg, m.keys.Enter):
		if m.blendResp != nil && len(m.blendResp.Results) > 0 {
			f := m.blendResp.Results[m.blendCursor].Film
			return m, m.openDetail(&f)
		}
		return m, m.runBlend()
	case msg.String() == "g":
		return m, m.runBlend()
	case keyMatches(msg, m.keys.Favorite):
		if f := m.selectedFilm(); f != nil {
			return m, m.toggleFavoriteCmd(f.ID)
		}
	}
	return m, nil
}

func (m *Model) runBlend() tea.Cmd {
	if !m.Session.IsAuthenticated() {
		m.notifier.Error("You must be logged in to use Blend Mode.")
		return nil
	}
	if m.blendA == nil || m.blendB == nil {
		m.notifier.Error("Pick both films first (a and b).")
		return nil
	}
	if m.blendBusy {
		return nil
	}
	m.blendBusy = true
	m.blendResp = nil
	return m.blendCmd(m.blendA.ID, m.blendB.ID, m.blendSlider, blend.DefaultLimit)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	event, cmd := m.picker.Update(msg)
	switch event {
	case components.PickerChosen:
		if m.blendPicking == 1 {
			m.blendA = m.picker.Chosen()
		} else {
			m.blendB = m.picker.Chosen()
		}
		m.blendPicking = 0
		m.blendResp = nil
	case components.PickerCancelled:
		m.blendPicking = 0
	}
	return m, cmd
}

func (m *Model) openLogin() {
	m.prevView = m.view
	m.view = ViewLogin
	m.loginForm = components.NewForm("Log in to FilmHive",
		components.Field{Label: "Username"},
		components.Field{Label: "Password", Secret: true},
	)
}

func (m *Model) openRegister() {
	m.view = ViewRegister
	m.regForm = components.NewForm("Create a FilmHive account",
		components.Field{Label: "Username"},
		components.Field{Label: "Email"},
		components.Field{Label: "Password", Secret: true},
		components.Field{Label: "Confirm password", Secret: true},
	)
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+r" {
		m.openRegister()
		return m, nil
	}
	event, cmd := m.loginForm.Update(msg)
	switch event {
	case components.FormSubmitted:
		vals := m.loginForm.Values()
		if vals[0] == "" || vals[1] == "" {
			m.loginForm.SetError("Username and password are required.")
			return m, nil
		}
		return m, m.loginCmd(domain.Credentials{Username: vals[0], Password: vals[1]})
	case components.FormCancelled:
		m.view = m.prevView
	}
	return m, cmd
}

func (m *Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	event, cmd := m.regForm.Update(msg)
	switch event {
	case components.FormSubmitted:
		vals := m.regForm.Values()
		if vals[0] == "" || vals[2] == "" {
			m.regForm.SetError("Username and password are required.")
			return m, nil
		}
		if vals[2] != vals[3] {
			m.regForm.SetError("Passwords do not match.")
			return m, nil
		}
		return m, m.registerCmd(domain.Registration{
			Username:  vals[0],
			Email:     vals[1],
			Password1: vals[2],
			Password2: vals[3],
		})
	case components.FormCancelled:
		m.view = ViewLogin
	}
	return m, cmd
}

func (m *Model) openReviewForm() {
	if !m.Session.IsAuthenticated() {
		m.notifier.Error("You must be logged in to review films.")
		return
	}
	rating, body := "", ""
	if m.Reviews != nil {
		if mine := m.Reviews.MyReview(); mine != nil {
			rating = strconv.Itoa(mine.Rating)
			body = mine.Body
		}
	}
	m.view = ViewReview
	m.revForm = components.NewForm("Your review",
		components.Field{Label: "Rating (1-5)", Value: rating},
		components.Field{Label: "Review", Value: body},
	)
}

func (m *Model) handleReviewFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+d" {
		if m.Reviews != nil && m.Reviews.MyReview() != nil {
			m.view = ViewDetail
			return m, m.deleteReviewCmd()
		}
		m.view = ViewDetail
		return m, nil
	}
	event, cmd := m.revForm.Update(msg)
	switch event {
	case components.FormSubmitted:
		vals := m.revForm.Values()
		rating, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil || rating < 1 || rating > 5 {
			m.revForm.SetError("Rating must be a whole number from 1 to 5.")
			return m, nil
		}
		return m, m.submitReviewCmd(rating, vals[1])
	case components.FormCancelled:
		m.view = ViewDetail
	}
	return m, cmd
}

func (m *Model) openDetail(f *domain.Film) tea.Cmd {
	m.prevView = m.view
	m.view = ViewDetail
	m.detailID = f.ID
	m.detail = f
	m.reviewCursor = 0
	m.Reviews = reviews.NewService(m.Client, m.Session, f.ID, m.logger)
	return tea.Batch(m.loadFilmCmd(f.ID), m.loadReviewsCmd())
}

func (m *Model) openPoster(f *domain.Film) tea.Cmd {
	if f == nil {
		return nil
	}
	url := browser.PosterURL(f.PosterPath)
	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return NoticeTickMsg{}
		}
		return NoticeTickMsg{}
	}
}

func (m *Model) undoWatchAdd(entryID int) func() {
	return func() {
		_ = m.Watchlists.Remove(context.Background(), entryID)
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kerem-Haeger/filmhive/internal/feed"
	"github.com/Kerem-Haeger/filmhive/internal/tui/styles"
)

// View renders the whole screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch {
	case m.blendPicking != 0:
		body = m.picker.View()
	case m.filterOpen:
		body = m.filterPanel.View()
	default:
		switch m.view {
		case ViewFilms, ViewForYou:
			body = m.listView()
		case ViewFavorites:
			body = m.favoritesView()
		case ViewWatchlists:
			body = m.watchlistsView()
		case ViewDetail:
			body = m.detailView()
		case ViewBlend:
			body = m.blendView()
		case ViewLogin:
			body = m.loginForm.View() + "\n\n" + styles.DimStyle.Render("ctrl+r create an account")
		case ViewRegister:
			body = m.regForm.View()
		case ViewReview:
			body = m.revForm.View() + "\n\n" + styles.DimStyle.Render("ctrl+d delete your review")
		case ViewHelp:
			body = m.helpView()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusBarView(),
	)
}

func (m *Model) headerView() string {
	tabs := []struct {
		label string
		view  View
	}{
		{"1 Films", ViewFilms},
		{"2 For You", ViewForYou},
		{"3 Blend", ViewBlend},
		{"4 Favourites", ViewFavorites},
		{"5 Watchlists", ViewWatchlists},
	}

	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, styles.TitleStyle.Render("FilmHive"))
	for _, t := range tabs {
		label := t.label
		if m.view == t.view || (m.view == ViewDetail && m.prevView == t.view) {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.DimStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m *Model) listView() string {
	var b strings.Builder

	if m.searching {
		b.WriteString("Search: " + m.searchInput.View() + "\n")
	} else if m.filters.Query != "" {
		b.WriteString(styles.DimStyle.Render("Search: ") + m.filters.Query + "\n")
	}

	fetcher := m.activeFetcher()
	switch fetcher.State() {
	case feed.StateIdle, feed.StateLoadingFirst:
		b.WriteString(styles.DimStyle.Render("Loading films..."))
		return b.String()
	case feed.StateError:
		b.WriteString(styles.ErrorStyle.Render(feedErrorMessage(fetcher.Err())))
		b.WriteString("\n" + styles.DimStyle.Render("R retry"))
		return b.String()
	}

	b.WriteString(m.resultHint() + "\n")
	b.WriteString(m.list.View())

	if fetcher.State() == feed.StateLoadingNext {
		b.WriteString("\n" + styles.DimStyle.Render("loading more..."))
	}
	return b.String()
}

// resultHint mirrors the web app's "N films found" line, shown whenever
// any filter narrows the list.
func (m *Model) resultHint() string {
	if !m.filters.HasActiveFilters() && m.filters.Query == "" {
		return styles.DimStyle.Render(fmt.Sprintf("%d films", m.list.Len()))
	}
	noun := "films"
	if m.list.Len() == 1 {
		noun = "film"
	}
	hint := fmt.Sprintf("%d %s found", m.list.Len(), noun)
	if n := m.filters.ActiveFilterCount(); n > 0 {
		hint += fmt.Sprintf(" · %d filters active", n)
	}
	return styles.AccentStyle.Render(hint)
}

func (m *Model) favoritesView() string {
	if !m.Session.IsAuthenticated() {
		return styles.DimStyle.Render("Log in (L) to keep favourites.")
	}
	if m.favList.Len() == 0 {
		return styles.DimStyle.Render("No favourites yet. Press v on a film to add one.")
	}
	return styles.SubtitleStyle.Render(fmt.Sprintf("Favourites (%d)", m.favList.Len())) + "\n" + m.favList.View()
}

func (m *Model) watchlistsView() string {
	if !m.Session.IsAuthenticated() {
		return styles.DimStyle.Render("Log in (L) to keep watchlists.")
	}

	var b strings.Builder
	title := m.wlName
	if title == "" {
		title = "All lists"
	}
	b.WriteString(styles.SubtitleStyle.Render(title))
	if names := m.Watchlists.ListNames(); len(names) > 1 || m.wlName == "" {
		b.WriteString(styles.DimStyle.Render("  (s next list)"))
	}
	b.WriteString("\n")

	entries := m.Watchlists.EntriesFor(m.wlName)
	if len(entries) == 0 {
		b.WriteString(styles.DimStyle.Render("Nothing saved here yet. Press w on a film to add it."))
		return b.String()
	}

	for i, e := range entries {
		cursor := "  "
		if i == m.wlCursor {
			cursor = styles.AccentStyle.Render("› ")
		}
		line := fmt.Sprintf("film #%d", e.FilmID)
		if e.Film != nil {
			line = e.Film.DisplayTitle()
		}
		if m.wlName == "" {
			line += styles.DimStyle.Render("  [" + e.Name + "]")
		}
		if i == m.wlCursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("w remove · enter details"))
	return b.String()
}

func (m *Model) detailView() string {
	if m.detail == nil {
		return styles.DimStyle.Render("Loading film...")
	}
	f := m.detail

	var b strings.Builder
	title := styles.TitleStyle.Render(f.DisplayTitle())
	if m.Favorites.IsFavorited(f.ID) {
		title += " " + styles.FavoriteOn
	}
	if lists := m.Watchlists.ListsForFilm(f.ID); len(lists) > 0 {
		title += " " + styles.WatchlistOn + styles.DimStyle.Render(" "+strings.Join(lists, ", "))
	}
	b.WriteString(title + "\n")

	var meta []string
	if f.CriticScore != nil {
		meta = append(meta, fmt.Sprintf("★ %.1f", *f.CriticScore))
	}
	if genres := f.GenreNames(); len(genres) > 0 {
		meta = append(meta, strings.Join(genres, ", "))
	}
	if f.Popularity != nil {
		meta = append(meta, fmt.Sprintf("popularity %.0f", *f.Popularity))
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(strings.Join(meta, "  ·  ")) + "\n")
	}
	b.WriteString("\n")

	if f.Overview != "" {
		b.WriteString(wrapText(f.Overview, m.width-4) + "\n\n")
	}

	if len(f.Cast) > 0 {
		var cast []string
		for _, c := range f.Cast {
			if len(cast) == 6 {
				break
			}
			entry := c.Name
			if c.Role != "" {
				entry += " (" + c.Role + ")"
			}
			cast = append(cast, entry)
		}
		b.WriteString(styles.DimStyle.Render("Cast: ") + strings.Join(cast, ", ") + "\n\n")
	}

	b.WriteString(m.reviewsSection())
	return b.String()
}

func (m *Model) reviewsSection() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Reviews"))
	b.WriteString(styles.DimStyle.Render("  (r write · + like · ! report)") + "\n")

	if m.Reviews == nil {
		return b.String()
	}
	rs := m.Reviews.Reviews()
	if len(rs) == 0 {
		b.WriteString(styles.DimStyle.Render("No reviews yet."))
		return b.String()
	}

	for i, r := range rs {
		cursor := "  "
		if i == m.reviewCursor {
			cursor = styles.AccentStyle.Render("› ")
		}
		head := r.Username
		if r.IsOwner {
			head += styles.DimStyle.Render(" (you)")
		}
		head += "  " + strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating)

		likes := fmt.Sprintf("  %s %d", styles.LikeChar, r.LikesCount)
		if r.LikedByMe {
			likes = "  " + styles.SuccessStyle.Render(fmt.Sprintf("%s %d", styles.LikeChar, r.LikesCount))
		}
		head += likes
		if r.ReportedByMe {
			head += styles.ErrorStyle.Render("  reported")
		}

		b.WriteString(cursor + head + "\n")
		if r.Body != "" {
			b.WriteString("    " + wrapText(r.Body, m.width-8) + "\n")
		}
	}
	return b.String()
}

func (m *Model) blendView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Blend Mode") + "\n")
	b.WriteString(styles.DimStyle.Render("Find a film two people can agree on.") + "\n\n")

	nameA := styles.DimStyle.Render("press a to pick")
	if m.blendA != nil {
		nameA = m.blendA.DisplayTitle()
	}
	nameB := styles.DimStyle.Render("press b to pick")
	if m.blendB != nil {
		nameB = m.blendB.DisplayTitle()
	}
	b.WriteString("Film A: " + nameA + "\n")
	b.WriteString("Film B: " + nameB + "\n\n")

	b.WriteString("Lean:   " + sliderBar(m.blendSlider) + "\n")
	b.WriteString(styles.DimStyle.Render("        ←/→ adjust · toward A ... toward B") + "\n\n")

	switch {
	case m.blendBusy:
		b.WriteString(styles.DimStyle.Render("Blending..."))
	case m.blendResp == nil:
		b.WriteString(styles.DimStyle.Render("g or enter to blend"))
	case len(m.blendResp.Results) == 0:
		b.WriteString(styles.DimStyle.Render("No compromise found. Try a different lean."))
	default:
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Top picks (%d)", m.blendResp.Meta.Returned)) + "\n")
		for i, r := range m.blendResp.Results {
			cursor := "  "
			if i == m.blendCursor {
				cursor = styles.AccentStyle.Render("› ")
			}
			line := fmt.Sprintf("%s  %s", r.Film.DisplayTitle(), styles.DimStyle.Render(fmt.Sprintf("%.2f", r.Score)))
			if i == m.blendCursor {
				line = styles.HighlightStyle.Render(r.Film.DisplayTitle()) + styles.DimStyle.Render(fmt.Sprintf("  %.2f", r.Score))
			}
			b.WriteString(cursor + line + "\n")
			if i == m.blendCursor && len(r.Reasons) > 0 {
				b.WriteString("    " + styles.DimStyle.Render(strings.Join(r.Reasons, " · ")) + "\n")
			}
		}
	}

	return b.String()
}

// sliderBar renders the lean slider: the marker sits toward the film the
// blend favours.
func sliderBar(v float64) string {
	const width = 21
	pos := int(v*float64(width-1) + 0.5)
	var b strings.Builder
	b.WriteString("A [")
	for i := 0; i < width; i++ {
		if i == pos {
			b.WriteString(styles.AccentStyle.Render("●"))
		} else {
			b.WriteString("─")
		}
	}
	b.WriteString("] B")
	return b.String()
}

func (m *Model) helpView() string {
	rows := [][2]string{
		{"1-5", "switch view (Films, For You, Blend, Favourites, Watchlists)"},
		{"↑/↓ j/k", "move cursor"},
		{"enter", "open film details"},
		{"/", "search loaded films"},
		{"f", "open filter panel"},
		{"s", "cycle sort (next list in Watchlists)"},
		{"F", "reset filters"},
		{"y", "show shareable filter address"},
		{"v", "toggle favourite"},
		{"w", "add to watchlist (remove inside Watchlists)"},
		{"r", "write or edit your review"},
		{"+ / !", "like / report the selected review"},
		{"o", "open poster in browser"},
		{"u", "undo the last action"},
		{"L / ctrl+l", "log in / log out"},
		{"R", "refresh the current view"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Help") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", styles.AccentStyle.Render(row[0]), row[1]))
	}
	b.WriteString("\n" + styles.DimStyle.Render("esc to close"))
	return b.String()
}

func (m *Model) statusBarView() string {
	left := styles.DimStyle.Render("guest")
	if m.Session.Booting() {
		left = styles.DimStyle.Render("connecting...")
	} else if u := m.Session.User(); u != nil {
		left = styles.AccentStyle.Render(u.Username)
	} else if m.Session.IsAuthenticated() {
		left = styles.AccentStyle.Render("logged in")
	}

	middle := ""
	if errText := m.notifier.Err(); errText != "" {
		middle = styles.ErrorStyle.Render(errText)
	} else if n := m.notifier.Notice(); n != nil {
		middle = styles.SuccessStyle.Render(n.Text)
		if n.Undo != nil {
			middle += styles.DimStyle.Render(" (u undo)")
		}
	}

	right := styles.DimStyle.Render("? help")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	half := gap / 2
	line := left + strings.Repeat(" ", half) + middle + strings.Repeat(" ", gap-half) + right
	return styles.StatusBarStyle.Width(m.width).Render(line)
}

// wrapText soft-wraps prose to the given width.
func wrapText(s string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}

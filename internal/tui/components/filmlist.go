package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/tui/styles"
)

// FilmList is a scrolling film list with a cursor. The cursor position
// doubles as the proximity signal for infinite loading: the owning view
// checks it against the accumulated length.
type FilmList struct {
	films  []domain.Film
	cursor int
	offset int
	width  int
	height int

	// IsFavorite reports membership for the heart indicator; nil hides it.
	IsFavorite func(filmID int) bool
	// InWatchlist reports membership for the watchlist indicator.
	InWatchlist func(filmID int) bool
}

// NewFilmList creates an empty list.
func NewFilmList() FilmList {
	return FilmList{}
}

// SetSize updates the rendering area.
func (l *FilmList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampScroll()
}

// SetFilms replaces the backing slice, keeping the cursor in bounds.
func (l *FilmList) SetFilms(films []domain.Film) {
	l.films = films
	if l.cursor >= len(films) {
		l.cursor = len(films) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
}

// Films returns the backing slice.
func (l *FilmList) Films() []domain.Film { return l.films }

// Len returns the number of rows.
func (l *FilmList) Len() int { return len(l.films) }

// Cursor returns the current cursor index.
func (l *FilmList) Cursor() int { return l.cursor }

// Selected returns the film under the cursor, or nil for an empty list.
func (l *FilmList) Selected() *domain.Film {
	if len(l.films) == 0 {
		return nil
	}
	f := l.films[l.cursor]
	return &f
}

func (l *FilmList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clampScroll()
}

func (l *FilmList) MoveDown() {
	if l.cursor < len(l.films)-1 {
		l.cursor++
	}
	l.clampScroll()
}

func (l *FilmList) PageUp() {
	l.cursor -= l.pageSize()
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
}

func (l *FilmList) PageDown() {
	l.cursor += l.pageSize()
	if l.cursor > len(l.films)-1 {
		l.cursor = len(l.films) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
}

func (l *FilmList) GoTop() {
	l.cursor = 0
	l.clampScroll()
}

func (l *FilmList) GoBottom() {
	l.cursor = len(l.films) - 1
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
}

func (l *FilmList) pageSize() int {
	if l.height > 1 {
		return l.height - 1
	}
	return 10
}

func (l *FilmList) clampScroll() {
	if l.height <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible window of rows.
func (l *FilmList) View() string {
	if len(l.films) == 0 {
		return styles.DimStyle.Render("No films to show.")
	}

	var b strings.Builder
	end := l.offset + l.height
	if l.height <= 0 || end > len(l.films) {
		end = len(l.films)
	}

	for i := l.offset; i < end; i++ {
		row := l.renderRow(l.films[i], i == l.cursor)
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (l *FilmList) renderRow(f domain.Film, selected bool) string {
	indicator := "  "
	if l.IsFavorite != nil && l.IsFavorite(f.ID) {
		indicator = styles.FavoriteOn + " "
	} else if l.InWatchlist != nil && l.InWatchlist(f.ID) {
		indicator = styles.WatchlistOn + " "
	}

	title := f.DisplayTitle()
	meta := ""
	if f.CriticScore != nil {
		meta = fmt.Sprintf(" ★%.1f", *f.CriticScore)
	}
	if genres := f.GenreNames(); len(genres) > 0 {
		shown := genres
		if len(shown) > 3 {
			shown = shown[:3]
		}
		meta += "  " + strings.Join(shown, ", ")
	}

	line := indicator + title + styles.DimStyle.Render(meta)
	if selected {
		return styles.HighlightStyle.Render(truncate(indicator+title, l.width-2)) + styles.DimStyle.Render(meta)
	}
	return truncateStyled(line, l.width)
}

func truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func truncateStyled(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	return s
}

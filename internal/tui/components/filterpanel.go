package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/filter"
	"github.com/Kerem-Haeger/filmhive/internal/tui/styles"
)

// FilterEvent reports what the panel changed, so the owning view can
// re-derive its list.
type FilterEvent int

const (
	FilterNone FilterEvent = iota
	FilterChanged
	FilterClosed
)

type filterRowKind int

const (
	rowSort filterRowKind = iota
	rowGenre
	rowYearMin
	rowYearMax
	rowReset
)

type filterRow struct {
	kind  filterRowKind
	genre string
}

// FilterPanel edits a filter.State in place: sort cycling, genre toggles
// over whatever genres the unfiltered universe contains, and a year range.
type FilterPanel struct {
	state   *filter.State
	rows    []filterRow
	cursor  int
	yearMin textinput.Model
	yearMax textinput.Model
	editing bool
	width   int
}

// NewFilterPanel wraps the shared filter state.
func NewFilterPanel(state *filter.State) FilterPanel {
	min := textinput.New()
	min.Placeholder = "----"
	min.CharLimit = 4
	min.Width = 6
	max := textinput.New()
	max.Placeholder = "----"
	max.CharLimit = 4
	max.Width = 6
	return FilterPanel{state: state, yearMin: min, yearMax: max}
}

// SetGenres rebuilds the rows from the available genre universe.
func (p *FilterPanel) SetGenres(genres []string) {
	rows := []filterRow{{kind: rowSort}}
	for _, g := range genres {
		rows = append(rows, filterRow{kind: rowGenre, genre: g})
	}
	rows = append(rows, filterRow{kind: rowYearMin}, filterRow{kind: rowYearMax}, filterRow{kind: rowReset})
	p.rows = rows
	if p.cursor >= len(rows) {
		p.cursor = len(rows) - 1
	}
	p.yearMin.SetValue(p.state.YearMin)
	p.yearMax.SetValue(p.state.YearMax)
}

func (p *FilterPanel) SetWidth(w int) { p.width = w }

// Update handles one key while the panel is open.
func (p *FilterPanel) Update(msg tea.Msg) (FilterEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return FilterNone, nil
	}

	if p.editing {
		switch key.String() {
		case "enter", "esc":
			p.editing = false
			p.yearMin.Blur()
			p.yearMax.Blur()
			p.state.SetYearRange(p.yearMin.Value(), p.yearMax.Value())
			return FilterChanged, nil
		default:
			var cmd tea.Cmd
			if p.rows[p.cursor].kind == rowYearMin {
				p.yearMin, cmd = p.yearMin.Update(msg)
			} else {
				p.yearMax, cmd = p.yearMax.Update(msg)
			}
			return FilterNone, cmd
		}
	}

	switch key.String() {
	case "esc", "f", "q":
		return FilterClosed, nil
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.activate()
	case "left", "h":
		if p.rows[p.cursor].kind == rowSort {
			p.cycleSort(-1)
			return FilterChanged, nil
		}
	case "right", "l":
		if p.rows[p.cursor].kind == rowSort {
			p.cycleSort(1)
			return FilterChanged, nil
		}
	}
	return FilterNone, nil
}

func (p *FilterPanel) activate() (FilterEvent, tea.Cmd) {
	switch row := p.rows[p.cursor]; row.kind {
	case rowSort:
		p.cycleSort(1)
		return FilterChanged, nil
	case rowGenre:
		p.state.ToggleGenre(row.genre)
		return FilterChanged, nil
	case rowYearMin:
		p.editing = true
		return FilterNone, p.yearMin.Focus()
	case rowYearMax:
		p.editing = true
		return FilterNone, p.yearMax.Focus()
	case rowReset:
		p.state.Reset()
		p.yearMin.SetValue("")
		p.yearMax.SetValue("")
		return FilterChanged, nil
	}
	return FilterNone, nil
}

func (p *FilterPanel) cycleSort(dir int) {
	idx := 0
	for i, k := range filter.SortKeys {
		if k == p.state.Sort {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(filter.SortKeys)) % len(filter.SortKeys)
	p.state.SetSort(filter.SortKeys[idx])
}

// View renders the panel.
func (p *FilterPanel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Filters"))
	if n := p.state.ActiveFilterCount(); n > 0 {
		b.WriteString(" " + styles.BadgeStyle.Render(fmt.Sprintf("%d active", n)))
	}
	b.WriteString("\n\n")

	for i, row := range p.rows {
		cursor := "  "
		if i == p.cursor {
			cursor = styles.AccentStyle.Render("› ")
		}
		var line string
		switch row.kind {
		case rowSort:
			line = "Sort: " + styles.AccentStyle.Render(p.state.Sort.Label())
		case rowGenre:
			mark := "[ ]"
			if p.state.HasGenre(row.genre) {
				mark = styles.SuccessStyle.Render("[x]")
			}
			line = mark + " " + row.genre
		case rowYearMin:
			line = "Year from: " + p.yearMin.View()
		case rowYearMax:
			line = "Year to:   " + p.yearMax.View()
		case rowReset:
			line = styles.DimStyle.Render("Reset filters")
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + styles.DimStyle.Render("enter toggle · ←/→ cycle sort · esc close"))
	return b.String()
}

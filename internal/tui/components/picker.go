package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/search"
	"github.com/Kerem-Haeger/filmhive/internal/tui/styles"
)

const pickerMaxResults = 12

// PickerEvent reports the outcome of a key press in the picker.
type PickerEvent int

const (
	PickerNone PickerEvent = iota
	PickerChosen
	PickerCancelled
)

// Picker is a fuzzy film chooser over everything the session has seen,
// used by Blend Mode to select the two source films.
type Picker struct {
	index   *search.Index
	input   textinput.Model
	results []search.Match
	cursor  int
	chosen  *domain.Film
	prompt  string
}

// NewPicker builds a picker over the shared search index.
func NewPicker(index *search.Index, prompt string) Picker {
	ti := textinput.New()
	ti.Placeholder = "type a film title"
	ti.CharLimit = 80
	ti.Width = 40
	return Picker{index: index, input: ti, prompt: prompt}
}

// Open resets and focuses the picker.
func (p *Picker) Open() tea.Cmd {
	p.input.SetValue("")
	p.cursor = 0
	p.chosen = nil
	p.results = p.index.Search("", pickerMaxResults)
	return p.input.Focus()
}

// Chosen returns the selected film after a PickerChosen event.
func (p *Picker) Chosen() *domain.Film { return p.chosen }

// Update handles one message while the picker is open.
func (p *Picker) Update(msg tea.Msg) (PickerEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return PickerNone, nil
	}

	switch key.String() {
	case "esc":
		p.input.Blur()
		return PickerCancelled, nil
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return PickerNone, nil
	case "down", "ctrl+n":
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}
		return PickerNone, nil
	case "enter":
		if p.cursor < len(p.results) {
			f := p.results[p.cursor].Film
			p.chosen = &f
			p.input.Blur()
			return PickerChosen, nil
		}
		return PickerNone, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.results = p.index.Search(p.input.Value(), pickerMaxResults)
	if p.cursor >= len(p.results) {
		p.cursor = 0
	}
	return PickerNone, cmd
}

// View renders the prompt, input and ranked results.
func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(p.prompt) + "\n\n")
	b.WriteString(p.input.View() + "\n\n")

	if len(p.results) == 0 {
		b.WriteString(styles.DimStyle.Render("no matches"))
		return b.String()
	}

	for i, m := range p.results {
		cursor := "  "
		if i == p.cursor {
			cursor = styles.AccentStyle.Render("› ")
		}
		line := m.Film.DisplayTitle()
		if i == p.cursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

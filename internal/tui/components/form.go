package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/tui/styles"
)

// FormEvent reports the outcome of a key press in a form.
type FormEvent int

const (
	FormNone FormEvent = iota
	FormSubmitted
	FormCancelled
)

// Field describes one text input in a Form.
type Field struct {
	Label  string
	Secret bool
	Value  string
}

// Form is a simple vertical stack of text inputs for login, registration
// and review editing. Tab and enter advance; enter on the last field
// submits.
type Form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

// NewForm builds a form from the given fields, focusing the first.
func NewForm(title string, fields ...Field) Form {
	f := Form{title: title}
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Label
		ti.CharLimit = 150
		ti.Width = 36
		ti.SetValue(field.Value)
		if field.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, field.Label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// Values returns the current value of every field, in order.
func (f *Form) Values() []string {
	vals := make([]string, len(f.inputs))
	for i := range f.inputs {
		vals[i] = f.inputs[i].Value()
	}
	return vals
}

// SetError shows an inline error under the form.
func (f *Form) SetError(msg string) { f.errMsg = msg }

// Update handles one message while the form is active.
func (f *Form) Update(msg tea.Msg) (FormEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return FormNone, f.updateFocused(msg)
	}

	switch key.String() {
	case "esc":
		return FormCancelled, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.inputs))
		return FormNone, nil
	case "shift+tab", "up":
		f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
		return FormNone, nil
	case "enter":
		if f.focus == len(f.inputs)-1 {
			return FormSubmitted, nil
		}
		f.setFocus(f.focus + 1)
		return FormNone, nil
	}
	return FormNone, f.updateFocused(msg)
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *Form) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(f.title) + "\n\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.DimStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n\n")
	}
	if f.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(f.errMsg) + "\n\n")
	}
	b.WriteString(styles.DimStyle.Render("enter submit · tab next field · esc cancel"))
	return b.String()
}

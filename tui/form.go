package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs. tab/down and shift+tab/up
// move focus; the owner decides what enter does.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, labels ...string) form {
	f := form{title: title, labels: labels}
	for range labels {
		f.inputs = append(f.inputs, newInput(""))
	}
	f.inputs[0].Focus()
	return f
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (f *form) setValues(values ...string) {
	for i, v := range values {
		if i < len(f.inputs) {
			f.inputs[i].SetValue(v)
		}
	}
}

func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.moveFocus(1)
		return nil
	case "shift+tab", "up":
		f.moveFocus(-1)
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "\n\n")
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(f.labels[i]) + " " + in.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field • enter save • esc cancel"))
	return b.String()
}

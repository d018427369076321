package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Key   string
	Label string
	Value string
	Mask  bool
}

// form is a vertical stack of text inputs with tab-cycled focus.
type form struct {
	fields []formField
	inputs []textinput.Model
	focus  int
}

func newForm(fields []formField) *form {
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = f.Label + ": "
		inp.SetValue(f.Value)
		if f.Mask {
			inp.EchoMode = textinput.EchoPassword
			inp.EchoCharacter = '*'
		}
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return &form{fields: fields, inputs: inputs}
}

// Update feeds a key to the form. It returns true when the key moved focus
// or was consumed by an input.
func (f *form) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
		f.inputs[f.focus].Focus()
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Values snapshots the current field values by key.
func (f *form) Values() map[string]string {
	vals := make(map[string]string, len(f.fields))
	for i, fld := range f.fields {
		vals[fld.Key] = strings.TrimSpace(f.inputs[i].Value())
	}
	return vals
}

func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue(f.fields[i].Value)
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *form) View() string {
	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

package tabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/agentdesk/core"
)

type FieldKind int

const (
	FieldLine FieldKind = iota
	FieldNumber
	FieldMultiline
)

type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
}

type field struct {
	spec FieldSpec
	line textinput.Model
	area textarea.Model
}

func (f *field) multiline() bool { return f.spec.Kind == FieldMultiline }

func (f *field) value() string {
	if f.multiline() {
		return f.area.Value()
	}
	return f.line.Value()
}

func (f *field) setValue(v string) {
	if f.multiline() {
		f.area.SetValue(v)
		return
	}
	f.line.SetValue(v)
}

func (f *field) focus() tea.Cmd {
	if f.multiline() {
		return f.area.Focus()
	}
	return f.line.Focus()
}

func (f *field) blur() {
	if f.multiline() {
		f.area.Blur()
		return
	}
	f.line.Blur()
}

// Form is the editable surface of a form tab: one input per field with a
// single focused input at a time.
type Form struct {
	fields []*field
	focus  int
}

var (
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
)

func NewForm(specs ...FieldSpec) *Form {
	f := &Form{fields: make([]*field, 0, len(specs))}
	for _, s := range specs {
		fd := &field{spec: s}
		switch s.Kind {
		case FieldMultiline:
			fd.area = textarea.New()
			fd.area.Placeholder = s.Placeholder
			fd.area.ShowLineNumbers = false
			fd.area.CharLimit = 0
			fd.area.SetHeight(6)
		default:
			fd.line = textinput.New()
			fd.line.Prompt = "› "
			fd.line.Placeholder = s.Placeholder
			if s.Kind == FieldNumber {
				fd.line.CharLimit = 24
			}
		}
		f.fields = append(f.fields, fd)
	}
	if len(f.fields) > 0 {
		f.fields[0].focus()
	}
	return f
}

// Keys lists field keys in display order.
func (f *Form) Keys() []string {
	out := make([]string, 0, len(f.fields))
	for _, fd := range f.fields {
		out = append(out, fd.spec.Key)
	}
	return out
}

func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].spec.Key
}

// FocusedMultiline reports whether enter belongs to the input as a newline.
func (f *Form) FocusedMultiline() bool {
	return len(f.fields) > 0 && f.fields[f.focus].multiline()
}

func (f *Form) Focus() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].focus()
}

func (f *Form) Next() tea.Cmd { return f.move(1) }
func (f *Form) Prev() tea.Cmd { return f.move(-1) }

func (f *Form) move(dir int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].blur()
	f.focus = (f.focus + dir + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].focus()
}

// Update feeds msg to the focused input and reports the field's new text.
func (f *Form) Update(msg tea.Msg) (key, value string, cmd tea.Cmd) {
	if len(f.fields) == 0 {
		return "", "", nil
	}
	fd := f.fields[f.focus]
	if fd.multiline() {
		fd.area, cmd = fd.area.Update(msg)
	} else {
		fd.line, cmd = fd.line.Update(msg)
	}
	return fd.spec.Key, fd.value(), cmd
}

// Load replaces the inputs' text with the state's values.
func (f *Form) Load(state core.FormState) {
	for _, fd := range f.fields {
		fd.setValue(state.Get(fd.spec.Key))
	}
}

func (f *Form) View(width, height int) string {
	width = max(8, width)
	fixed := 0
	for _, fd := range f.fields {
		if !fd.multiline() {
			fixed += 2
		} else {
			fixed++
		}
	}
	var b strings.Builder
	for i, fd := range f.fields {
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(fd.spec.Label))
		b.WriteString("\n")
		if fd.multiline() {
			fd.area.SetWidth(width)
			fd.area.SetHeight(max(3, height-fixed))
			b.WriteString(fd.area.View())
		} else {
			fd.line.Width = max(1, width-lipgloss.Width(fd.line.Prompt)-1)
			b.WriteString(fd.line.View())
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

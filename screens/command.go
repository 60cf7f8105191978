package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/agentdesk/core"
)

type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Disabled bool
	Reason   string
}

func (i CommandOption) Title() string {
	if i.Disabled && i.Reason != "" {
		return fmt.Sprintf("%s (%s)", i.Name, i.Reason)
	}
	return i.Name
}
func (i CommandOption) Description() string { return i.Desc }
func (i CommandOption) FilterValue() string { return i.Name + " " + i.Desc + " " + i.ID }

var paletteTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)

// CommandScreen is the palette: a query input over a ranked command list.
type CommandScreen struct {
	scope    string
	search   func(query string) []CommandOption
	onSelect func(id string) tea.Msg
	input    textinput.Model
	list     list.Model
}

func NewCommandScreen(scope string, search func(query string) []CommandOption, onSelect func(id string) tea.Msg) *CommandScreen {
	inp := textinput.New()
	inp.Placeholder = "Search commands"
	inp.Prompt = "cmd> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	s := &CommandScreen{scope: scope, search: search, onSelect: onSelect, input: inp, list: lst}
	s.refresh()
	return s
}

// NewPalette builds a CommandScreen over the model's registry, searching in scope.
func NewPalette(m *core.Model, scope string) core.Screen {
	reg := m.CommandRegistry()
	search := func(query string) []CommandOption {
		res := reg.Search(query, scope, m)
		out := make([]CommandOption, 0, len(res))
		for _, r := range res {
			out = append(out, CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
		}
		return out
	}
	return NewCommandScreen(scope, search, func(id string) tea.Msg {
		return core.CommandExecuteMsg{CommandID: id}
	})
}

func (s *CommandScreen) Title() string { return "Command Palette" }
func (s *CommandScreen) Scope() string { return core.ScopeCommand }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "enter":
			it, ok := s.list.SelectedItem().(CommandOption)
			if !ok {
				return s, nil, false
			}
			if it.Disabled {
				return s, core.StatusCmd(it.Reason), true
			}
			if s.onSelect != nil {
				return s, func() tea.Msg { return s.onSelect(it.ID) }, true
			}
			return s, nil, true
		case "up", "down", "ctrl+p", "ctrl+n":
			var cmd tea.Cmd
			s.list, cmd = s.list.Update(remapNav(msg))
			return s, cmd, false
		}
	}
	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd, false
}

// remapNav lets ctrl+p/ctrl+n move the list like up/down while typing.
func remapNav(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.String() {
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return msg
}

func (s *CommandScreen) refresh() {
	query := strings.TrimSpace(s.input.Value())
	items := s.search(query)
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
	s.list.Select(0)
}

func (s *CommandScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-4))
	return paletteTitleStyle.Render("Commands") + "\n" + s.input.View() + "\n" + s.list.View()
}

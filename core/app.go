package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/widgets"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

type TabInitializer interface {
	InitTab(m *Model) tea.Cmd
}

// Submitter is implemented by tabs that can send a request to the agent.
type Submitter interface {
	Submit(m *Model) tea.Cmd
	// CanSubmit reports whether Submit would send a request, and why not.
	CanSubmit() (bool, string)
	// InFlight reports whether any request is still outstanding.
	InFlight() bool
}

// Resetter is implemented by tabs whose input can be cleared.
type Resetter interface {
	ResetInput(m *Model) tea.Cmd
}

// ResultClearer is implemented by tabs that show a settled result.
type ResultClearer interface {
	ClearResult(m *Model)
	HasResult() bool
}

type Model struct {
	width            int
	height           int
	tabs             []Tab
	activeTab        int
	screens          ScreenStack
	keys             *KeyRegistry
	commands         *CommandRegistry
	status           string
	statusErr        bool
	quitting         bool
	title            string
	OpenCommandModal func(m *Model, scope string) Screen
}

func NewModel(tabs []Tab, keys *KeyRegistry, commands *CommandRegistry) Model {
	return Model{
		tabs:      tabs,
		keys:      keys,
		commands:  commands,
		status:    "Ready",
		title:     "agentdesk",
		activeTab: 0,
		width:     100,
		height:    32,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		if initTab, ok := t.(TabInitializer); ok {
			if cmd := initTab.InitTab(&m); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

func (m Model) ActiveTab() Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m Model) ActiveIndex() int { return m.activeTab }

func (m Model) Tabs() []Tab { return m.tabs }

// TabByID returns the tab registered under id, or nil.
func (m Model) TabByID(id string) Tab {
	for _, t := range m.tabs {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// SwitchTab changes the visible tab. In-flight requests keep running and
// settle into their own tab.
func (m *Model) SwitchTab(index int) tea.Cmd {
	if index < 0 || index >= len(m.tabs) {
		return nil
	}
	m.activeTab = index
	if f, ok := m.tabs[index].(interface{ FocusTab() tea.Cmd }); ok {
		return f.FocusTab()
	}
	return nil
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

func (m Model) ScreenDepth() int { return m.screens.Len() }

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m *Model) Keys() *KeyRegistry {
	return m.keys
}


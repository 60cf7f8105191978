package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/widgets"
)

type routerTab struct {
	id   string
	hits int
	got  []tea.Msg
}

func (t *routerTab) ID() string {
	if t.id == "" {
		return "r"
	}
	return t.id
}
func (t *routerTab) Title() string                 { return "Router" }
func (t *routerTab) Scope() string                 { return "tab:" + t.ID() }
func (t *routerTab) Build(m *Model) widgets.Widget { return widgets.Pane{Title: "t", Content: "x"} }
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.hits++
	}
	t.got = append(t.got, msg)
	return nil
}

type fakeScreen struct{ hits int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil))
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if tab.hits != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil))
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestRoutedMessageReachesOwnerWhenHidden(t *testing.T) {
	first := &routerTab{id: "chat"}
	second := &routerTab{id: "budget"}
	m := NewModel([]Tab{first, second}, NewKeyRegistry(nil), NewCommandRegistry(nil))
	m.SwitchTab(0)

	next, _ := m.Update(SettledMsg[string]{Tab: "budget", Outcome: Outcome[string]{Token: 1, Payload: "ok"}})
	_ = next.(Model)
	if len(first.got) != 0 {
		t.Fatalf("active tab should not see another tab's settlement")
	}
	if len(second.got) != 1 {
		t.Fatalf("owning tab should receive the settlement, got %d messages", len(second.got))
	}
}

func TestRoutedMessageForUnknownTabIsDropped(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil))
	_, cmd := m.Update(TabMsg{Tab: "missing", Msg: "tick"})
	if cmd != nil || len(tab.got) != 0 {
		t.Fatalf("unknown target should be ignored")
	}
}

func TestSwitchTabKeys(t *testing.T) {
	a, b := &routerTab{id: "a"}, &routerTab{id: "b"}
	m := NewModel([]Tab{a, b}, NewKeyRegistry(DefaultKeyBindings()), NewCommandRegistry(nil))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	updated := next.(Model)
	if updated.ActiveIndex() != 1 {
		t.Fatalf("f2 should select the second tab, got %d", updated.ActiveIndex())
	}
	if a.hits != 0 || b.hits != 0 {
		t.Fatalf("tab switch keys should not reach tabs")
	}
}

func TestScreenStackReplace(t *testing.T) {
	var s ScreenStack
	first, second := &fakeScreen{}, &fakeScreen{}
	s.Replace(first)
	if s.Len() != 1 || s.Top() != first {
		t.Fatalf("replace on empty stack should push")
	}
	s.Replace(second)
	if s.Len() != 1 || s.Top() != second {
		t.Fatalf("replace should swap the top screen")
	}
}

func TestForTabWrapsMessage(t *testing.T) {
	cmd := ForTab("chat", func() tea.Msg { return "tick" })
	msg, ok := cmd().(TabMsg)
	if !ok || msg.Tab != "chat" || msg.Msg != "tick" {
		t.Fatalf("unexpected wrapped message: %#v", msg)
	}
	if ForTab("chat", nil) != nil {
		t.Fatalf("nil command should stay nil")
	}
}

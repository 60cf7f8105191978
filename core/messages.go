package core

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text  string
	IsErr bool
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

type CommandExecuteMsg struct {
	CommandID string
}

type TabSwitchMsg struct {
	Index int
}

// Routed messages are delivered to the tab named by TargetTab, even when
// another tab is visible.
type Routed interface {
	TargetTab() string
}

// TabMsg addresses an arbitrary message (spinner ticks, focus blinks) to one tab.
type TabMsg struct {
	Tab string
	Msg tea.Msg
}

func (m TabMsg) TargetTab() string { return m.Tab }

// ForTab wraps cmd so its message comes back as a TabMsg for tab.
func ForTab(tab string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			wrapped := make(tea.BatchMsg, 0, len(batch))
			for _, c := range batch {
				wrapped = append(wrapped, ForTab(tab, c))
			}
			return wrapped
		}
		return TabMsg{Tab: tab, Msg: msg}
	}
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

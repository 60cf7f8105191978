package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		return m, m.SwitchTab(msg.Index)
	case Routed:
		if t := m.TabByID(msg.TargetTab()); t != nil {
			return m, t.Update(&m, msg)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if top := m.screens.Top(); top != nil {
			return m, m.updateTopScreen(top, msg)
		}

		scope := m.ActiveScope()
		if m.keys.IsAction(msg, "quit", scope) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
			m.screens.Push(m.OpenCommandModal(&m, scope))
			return m, nil
		}
		for i := range m.tabs {
			if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
				return m, m.SwitchTab(i)
			}
		}
		if m.keys.IsAction(msg, "next-tab", scope) && len(m.tabs) > 0 {
			return m, m.SwitchTab((m.activeTab + 1) % len(m.tabs))
		}
		if len(m.tabs) > 0 {
			return m, m.tabs[m.activeTab].Update(&m, msg)
		}
		return m, nil
	}

	if top := m.screens.Top(); top != nil {
		return m, m.updateTopScreen(top, msg)
	}
	if len(m.tabs) > 0 {
		return m, m.tabs[m.activeTab].Update(&m, msg)
	}
	return m, nil
}

func (m *Model) updateTopScreen(top Screen, msg tea.Msg) tea.Cmd {
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return cmd
	}
	if next != nil {
		m.screens.Replace(next)
	}
	return cmd
}

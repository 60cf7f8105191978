package core

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const switchTabPrefix = "switch-tab-"

var footerHelp = func() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colorMuted)
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(colorMuted)
	return h
}()

// footerBindings turns the active scope's bindings into help entries: one
// per action, hidden ones skipped, and the tab switch keys folded into a
// single "f1-f4 tabs" entry placed last.
func footerBindings(m Model) []key.Binding {
	scope := m.ActiveScope()
	var (
		out       []key.Binding
		done      = map[string]bool{}
		firstTab  string
		lastTab   string
		tabLabels int
	)
	for _, b := range m.keys.BindingsForScope(scope) {
		if len(b.Keys) == 0 || done[b.Action] {
			continue
		}
		done[b.Action] = true
		if strings.HasPrefix(b.Action, switchTabPrefix) {
			if firstTab == "" {
				firstTab = b.Keys[0]
			}
			lastTab = b.Keys[0]
			tabLabels++
			continue
		}
		if b.Hidden {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)))
	}
	switch {
	case tabLabels > 1:
		out = append(out, key.NewBinding(key.WithKeys(firstTab), key.WithHelp(firstTab+"-"+lastTab, "tabs")))
	case tabLabels == 1:
		out = append(out, key.NewBinding(key.WithKeys(firstTab), key.WithHelp(firstTab, "tab")))
	}
	return out
}

func RenderFooter(m Model) string {
	h := footerHelp
	h.Width = max(1, m.width-2)
	line := h.ShortHelpView(footerBindings(m))
	if line == "" {
		line = lipgloss.NewStyle().Foreground(colorMuted).Render("No shortcuts")
	}
	return fillLine(footerStyle, m.width, " "+line, "")
}

// RenderStatusBar shows the last status on the left and, on the right, the
// tabs still waiting for a reply, so a hidden tab's request stays visible.
func RenderStatusBar(m Model) string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	style := statusBarStyle
	if m.statusErr {
		style = statusErrBarStyle
	}
	return fillLine(style, m.width, " "+msg, waitingSummary(m))
}

func waitingSummary(m Model) string {
	var names []string
	for _, t := range m.tabs {
		if s, ok := t.(Submitter); ok && s.InFlight() {
			names = append(names, t.Title())
		}
	}
	if len(names) == 0 {
		return ""
	}
	return waitingStyle.Render("waiting: "+strings.Join(names, ", ")) + " "
}

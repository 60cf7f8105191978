package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/agentdesk/widgets"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	width := max(1, m.width)
	chrome := []string{renderHeader(m), RenderStatusBar(m), RenderFooter(m)}
	bodyHeight := m.height
	for _, c := range chrome {
		bodyHeight -= lipgloss.Height(c)
	}
	bodyHeight = max(0, bodyHeight)

	rows := make([]string, 0, bodyHeight+len(chrome))
	rows = append(rows, chrome[0])
	if bodyHeight > 0 {
		rows = append(rows, renderBody(m, width, bodyHeight))
	}
	rows = append(rows, chrome[1:]...)
	return appStyle.Width(width).MaxWidth(width).Render(strings.Join(rows, "\n"))
}

// renderBody draws the active tab, with the top screen as a centered popup.
func renderBody(m Model, width, height int) string {
	var body string
	if len(m.tabs) > 0 {
		body = m.tabs[m.activeTab].Build(&m).Render(width, height)
	}
	if top := m.screens.Top(); top != nil {
		popup := top.View(max(20, width*2/3), max(6, height-6))
		body = widgets.RenderPopup(body, popup, width, height)
	}
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderHeader shows the app title and numbered tabs; a tab with a request
// in flight carries a busy mark.
func renderHeader(m Model) string {
	labels := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf("%d:%s", i+1, t.Title())
		if s, ok := t.(Submitter); ok && s.InFlight() {
			label += " " + busyTabMark
		}
		style := inactiveTabStyle
		if i == m.activeTab {
			style = activeTabStyle
		}
		labels[i] = style.Render(label)
	}
	tabs := strings.Join(labels, tabSepStyle.Render("│"))
	title := headerAppStyle.Render(m.title)
	if ansi.StringWidth(title)+1+ansi.StringWidth(tabs) > m.width {
		// narrow terminals keep the tabs and lose the title
		return fillLine(headerBarStyle, m.width, tabs, "")
	}
	return fillLine(headerBarStyle, m.width, title, tabs)
}

// fillLine renders one full-width bar with left flush left and right flush
// right. Right is dropped when both do not fit; left is truncated last.
func fillLine(style lipgloss.Style, width int, left, right string) string {
	width = max(1, width)
	left = strings.ReplaceAll(left, "\n", " ")
	right = strings.ReplaceAll(right, "\n", " ")
	lw, rw := ansi.StringWidth(left), ansi.StringWidth(right)
	if rw > 0 && lw+1+rw > width {
		right, rw = "", 0
	}
	left = ansi.Truncate(left, width, "")
	lw = ansi.StringWidth(left)
	line := left + strings.Repeat(" ", max(0, width-lw-rw)) + right
	return style.Width(width).MaxWidth(width).Render(line)
}

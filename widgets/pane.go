package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane draws rounded chrome with the title set into the top border. A zero
// Height fills whatever the parent offers.
type Pane struct {
	Title   string
	Height  int
	Content string
	Focused bool
	// Body, when set, is rendered inside the chrome instead of Content.
	Body Widget
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	h := height
	if p.Height > 0 && p.Height < h {
		h = p.Height
	}
	h = max(3, h)
	width = max(6, width)

	border := colorOverlay
	prefix := ""
	if p.Focused {
		border = colorAccent
		prefix = "● "
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)

	innerWidth := width - 2
	contentWidth := innerWidth - 2
	innerHeight := h - 2

	titleText := " " + ansi.Truncate(prefix+p.Title, max(1, innerWidth-3), "…") + " "
	if strings.TrimSpace(p.Title) == "" {
		titleText = ""
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText)-1)
	top := borderStyle.Render("╭─") + titleStyle.Render(titleText) + borderStyle.Render(strings.Repeat("─", dashes)+"╮")
	if titleText == "" {
		top = borderStyle.Render("╭" + strings.Repeat("─", innerWidth) + "╮")
	}

	content := p.Content
	if p.Body != nil {
		content = p.Body.Render(contentWidth, innerHeight)
	}
	lines := splitToLines(content, innerHeight)
	v := borderStyle.Render("│")
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for _, line := range lines {
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bubble is one conversation entry. User bubbles sit on the right.
type Bubble struct {
	Text    string
	FromMe  bool
	IsError bool
}

var (
	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorAccent).
			Padding(0, 1)
	agentBubbleStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface1).
				Padding(0, 1)
	errorBubbleStyle = agentBubbleStyle.Foreground(colorError)
)

// RenderConversation draws bubbles top to bottom, each at most three quarters
// of width wide.
func RenderConversation(bubbles []Bubble, width int) string {
	width = max(8, width)
	limit := max(4, width*3/4)
	rows := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		style := agentBubbleStyle
		switch {
		case b.FromMe:
			style = userBubbleStyle
		case b.IsError:
			style = errorBubbleStyle
		}
		text := b.Text
		if lipgloss.Width(text)+2 > limit {
			style = style.Width(limit)
		}
		card := style.Render(text)
		pos := lipgloss.Left
		if b.FromMe {
			pos = lipgloss.Right
		}
		rows = append(rows, lipgloss.PlaceHorizontal(width, pos, card))
	}
	return strings.Join(rows, "\n\n")
}

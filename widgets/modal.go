package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(1, 2)

// RenderPopup centers popup in a card over base, leaving base visible around it.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := popupStyle.Render(popup)
	over := splitToLines(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), height)
	under := splitToLines(base, height)
	out := make([]string, height)
	for i := range out {
		b := padRight(under[i], width)
		o := padRight(over[i], width)
		start, end, ok := inkBounds(o, width)
		if !ok {
			out[i] = b
			continue
		}
		left := ansi.Truncate(b, start, "")
		mid := ansi.Truncate(dropColumns(o, start), end-start, "")
		right := dropColumns(b, end)
		out[i] = padRight(left+mid+right, width)
	}
	return strings.Join(out, "\n")
}

// inkBounds finds the columns of line that hold something other than padding.
func inkBounds(line string, width int) (start, end int, ok bool) {
	plain := []rune(ansi.Strip(ansi.Truncate(line, width, "")))
	end = len(plain)
	for end > 0 && plain[end-1] == ' ' {
		end--
	}
	for start < end && plain[start] == ' ' {
		start++
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

package widgets

import "github.com/charmbracelet/lipgloss"

var (
	triggerStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorAccent).
			Bold(true).
			Padding(0, 2)
	triggerBusyStyle = lipgloss.NewStyle().
				Foreground(colorSubtext).
				Background(colorSurface0).
				Padding(0, 2)
	hintStyle = lipgloss.NewStyle().Foreground(colorOverlay)
)

// Trigger is the submit affordance. While Busy it is drawn disabled with the
// busy label and an optional spinner frame.
type Trigger struct {
	Label   string
	Busy    bool
	Spinner string
	Hint    string
}

func (t Trigger) Render(width, height int) string {
	label := t.Label
	style := triggerStyle
	if t.Busy {
		style = triggerBusyStyle
		if t.Spinner != "" {
			label = t.Spinner + " " + label
		}
	}
	out := style.Render(label)
	if t.Hint != "" && !t.Busy {
		out += "  " + hintStyle.Render(t.Hint)
	}
	return fitCanvas(out, width, height)
}

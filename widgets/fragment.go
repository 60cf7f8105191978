package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type FragmentKind int

const (
	// FragmentField is a labeled scalar.
	FragmentField FragmentKind = iota
	// FragmentList is a labeled bulleted sequence, in order.
	FragmentList
	// FragmentError is a payload or failure message on its own line.
	FragmentError
)

// Fragment is one display unit of a settled result.
type Fragment struct {
	Kind  FragmentKind
	Label string
	Text  string
	Items []string
}

func Field(label, text string) Fragment {
	return Fragment{Kind: FragmentField, Label: label, Text: text}
}

func List(label string, items []string) Fragment {
	return Fragment{Kind: FragmentList, Label: label, Items: append([]string(nil), items...)}
}

func ErrorLine(text string) Fragment {
	return Fragment{Kind: FragmentError, Text: text}
}

var (
	fragLabelStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fragTextStyle  = lipgloss.NewStyle().Foreground(colorText)
	fragBullet     = lipgloss.NewStyle().Foreground(colorPeach).Render("•")
	fragErrorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	fragEmptyStyle = lipgloss.NewStyle().Foreground(colorOverlay).Italic(true)
)

// RenderFragments lays fragments out for a terminal of the given width,
// wrapping long text.
func RenderFragments(frags []Fragment, width int) string {
	width = max(4, width)
	wrap := lipgloss.NewStyle().Width(width)
	blocks := make([]string, 0, len(frags))
	for _, f := range frags {
		switch f.Kind {
		case FragmentError:
			blocks = append(blocks, fragErrorStyle.Width(width).Render(f.Text))
		case FragmentList:
			rows := []string{fragLabelStyle.Render(f.Label + ":")}
			itemWrap := lipgloss.NewStyle().Width(max(1, width-2))
			for _, it := range f.Items {
				item := strings.Split(itemWrap.Render(fragTextStyle.Render(it)), "\n")
				for i, line := range item {
					lead := "  "
					if i == 0 {
						lead = fragBullet + " "
					}
					rows = append(rows, lead+line)
				}
			}
			blocks = append(blocks, strings.Join(rows, "\n"))
		default:
			blocks = append(blocks, fragLabelStyle.Render(f.Label+":")+"\n"+wrap.Render(fragTextStyle.Render(f.Text)))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// PlainFragments renders fragments without styling, for non-interactive output.
func PlainFragments(frags []Fragment) string {
	var b strings.Builder
	for i, f := range frags {
		if i > 0 {
			b.WriteString("\n")
		}
		switch f.Kind {
		case FragmentError:
			b.WriteString("error: " + f.Text + "\n")
		case FragmentList:
			b.WriteString(f.Label + ":\n")
			for _, it := range f.Items {
				b.WriteString("  - " + it + "\n")
			}
		default:
			b.WriteString(f.Label + ":\n  " + f.Text + "\n")
		}
	}
	return b.String()
}

// Result shows fragments, or Empty when there are none.
type Result struct {
	Fragments []Fragment
	Empty     string
}

func (r Result) Render(width, height int) string {
	if len(r.Fragments) == 0 {
		return fitCanvas(fragEmptyStyle.Render(r.Empty), width, height)
	}
	return fitCanvas(RenderFragments(r.Fragments, width), width, height)
}

package widgets

import (
	"strconv"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

type ChartPoint struct {
	Label string
	Value float64
}

// BarChart plots one bar per point. Negative values are drawn as zero.
type BarChart struct {
	Title string
	Data  []ChartPoint
}

var (
	chartTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	chartBarStyle   = lipgloss.NewStyle().Foreground(colorPeach)
	chartEmptyStyle = lipgloss.NewStyle().Foreground(colorOverlay).Italic(true)
)

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if !c.hasData() || height < 4 {
		return fitCanvas(chartTitleStyle.Render(c.Title)+"\n"+chartEmptyStyle.Render("(no spending entered)"), width, height)
	}
	data := make([]barchart.BarData, 0, len(c.Data))
	for _, p := range c.Data {
		v := max(0, p.Value)
		data = append(data, barchart.BarData{
			Label: shortLabel(p.Label, width/max(1, len(c.Data))),
			Values: []barchart.BarValue{{
				Name:  p.Label + " " + strconv.FormatFloat(v, 'f', -1, 64),
				Value: v,
				Style: chartBarStyle,
			}},
		})
	}
	bc := barchart.New(width, height-1)
	bc.PushAll(data)
	bc.Draw()
	return fitCanvas(chartTitleStyle.Render(c.Title)+"\n"+bc.View(), width, height)
}

func (c BarChart) hasData() bool {
	for _, p := range c.Data {
		if p.Value > 0 {
			return true
		}
	}
	return false
}

func shortLabel(s string, width int) string {
	r := []rune(s)
	if width < 1 {
		width = 1
	}
	if len(r) > width {
		return string(r[:width])
	}
	return s
}

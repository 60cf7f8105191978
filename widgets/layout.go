package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom. Heights pins rows to a fixed size; a
// zero entry shares the remaining space according to Ratios.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
	Heights []int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacingTotal := max(0, v.Spacing*(len(v.Widgets)-1))
	usable := max(1, height-spacingTotal)
	heights := v.rowHeights(usable)
	lines := make([]string, 0, height)
	for i, w := range v.Widgets {
		if heights[i] <= 0 {
			continue
		}
		lines = append(lines, fitCanvas(w.Render(width, heights[i]), width, heights[i]))
		if i < len(v.Widgets)-1 {
			for s := 0; s < v.Spacing; s++ {
				lines = append(lines, "")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (v VStack) rowHeights(usable int) []int {
	n := len(v.Widgets)
	out := make([]int, n)
	fixed := 0
	flex := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i < len(v.Heights) && v.Heights[i] > 0 {
			out[i] = min(v.Heights[i], max(0, usable-fixed))
			fixed += out[i]
			continue
		}
		flex = append(flex, i)
	}
	if len(flex) == 0 {
		return out
	}
	var ratios []float64
	if len(v.Ratios) == n {
		for _, i := range flex {
			ratios = append(ratios, v.Ratios[i])
		}
	}
	shares := splitWidths(max(0, usable-fixed), len(flex), ratios)
	for j, i := range flex {
		out[i] = shares[j]
	}
	return out
}

type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gapTotal := max(0, h.Gap*(len(h.Widgets)-1))
	usable := max(1, width-gapTotal)
	widths := splitWidths(usable, len(h.Widgets), h.Ratios)
	cols := make([][]string, len(h.Widgets))
	for i, w := range h.Widgets {
		cols[i] = splitToLines(w.Render(max(1, widths[i]), height), height)
	}
	gap := strings.Repeat(" ", h.Gap)
	out := make([]string, height)
	for line := 0; line < height; line++ {
		parts := make([]string, len(cols))
		for i := range cols {
			parts[i] = padRight(cols[i][line], widths[i])
		}
		out[line] = strings.Join(parts, gap)
	}
	return strings.Join(out, "\n")
}

func splitWidths(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	if total <= 0 {
		return out
	}
	if len(ratios) != n {
		for i := range out {
			out[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	weights := make([]float64, n)
	sum := 0.0
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	used := 0
	for i := range out {
		out[i] = int(math.Floor((weights[i] / sum) * float64(total)))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

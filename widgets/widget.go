package widgets

type Widget interface {
	Render(width, height int) string
}

// Text renders preformatted content clipped to the given size.
type Text string

func (t Text) Render(width, height int) string {
	return fitCanvas(string(t), width, height)
}

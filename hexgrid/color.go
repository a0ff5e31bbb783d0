package hexgrid

import colorful "github.com/lucasb-eyer/go-colorful"

// CellColor converts a cell hue in [0,1), a saturation percentage and a
// lightness in [0,1] to a clamped RGB color.
func CellColor(hue01, saturation, lightness float64) colorful.Color {
	return colorful.Hsl(hue01*360, saturation/100, lightness).Clamped()
}

// RGB returns the components of CellColor as floats in [0,1].
func RGB(hue01, saturation, lightness float64) (r, g, b float64) {
	c := CellColor(hue01, saturation, lightness)
	return c.R, c.G, c.B
}

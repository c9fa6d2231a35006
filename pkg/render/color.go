package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

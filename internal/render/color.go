package render

import (
	"image/color"

	"conjam/internal/core"
)

// colorToFloat converts a color to normalized RGBA components.
func colorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	const inv = 1.0 / 65535.0
	return [4]float32{
		float32(r) * inv,
		float32(g) * inv,
		float32(b) * inv,
		float32(a) * inv,
	}
}

// gradient matches the cell fragment program: red follows x, green follows
// y, blue falls off with x.
func gradient(x, y int, size core.Size) [4]float32 {
	cx := float32(x) / float32(size.W)
	cy := float32(y) / float32(size.H)
	return [4]float32{cx, cy, 1 - cx, 1}
}

// ToRGBA converts normalized components back to an 8-bit color.
func ToRGBA(c [4]float32) color.RGBA {
	return color.RGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

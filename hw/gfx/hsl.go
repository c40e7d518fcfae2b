package gfx

import (
	"fmt"
	"math"

	"w4kit/hw/hwio"
)

// HSL is a color in the hue, saturation, lightness space. Hue is in degrees
// [0, 360], saturation and lightness in [0, 1].
type HSL struct {
	Hue, Saturation, Lightness float64
}

// NewHSL returns a validated HSL color.
func NewHSL(hue, saturation, lightness float64) (HSL, error) {
	if err := hwio.CheckRange("hue", hue, 0, 360); err != nil {
		return HSL{}, err
	}
	if err := hwio.CheckRange("saturation", saturation, 0, 1); err != nil {
		return HSL{}, err
	}
	if err := hwio.CheckRange("lightness", lightness, 0, 1); err != nil {
		return HSL{}, err
	}
	return HSL{hue, saturation, lightness}, nil
}

// MustHSL is like NewHSL but panics if a component is out of range.
func MustHSL(hue, saturation, lightness float64) HSL {
	hsl, err := NewHSL(hue, saturation, lightness)
	if err != nil {
		panic(err)
	}
	return hsl
}

// ToHSL converts c to the HSL space.
func ToHSL(c Color) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	cmax := max(r, g, b)
	cmin := min(r, g, b)
	delta := cmax - cmin

	var hsl HSL
	hsl.Lightness = (cmax + cmin) / 2
	if delta == 0 {
		return hsl
	}

	switch cmax {
	case r:
		hsl.Hue = 60 * math.Mod((g-b)/delta, 6)
	case g:
		hsl.Hue = 60 * ((b-r)/delta + 2)
	default:
		hsl.Hue = 60 * ((r-g)/delta + 4)
	}
	if hsl.Hue < 0 {
		hsl.Hue += 360
	}
	hsl.Saturation = delta / (1 - math.Abs(2*hsl.Lightness-1))
	return hsl
}

// Color converts h to RGB. Channels are rounded to the nearest integer.
func (h HSL) Color() Color {
	chroma := (1 - math.Abs(2*h.Lightness-1)) * h.Saturation
	hp := math.Mod(h.Hue, 360) / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = chroma, x, 0
	case hp < 2:
		r, g, b = x, chroma, 0
	case hp < 3:
		r, g, b = 0, chroma, x
	case hp < 4:
		r, g, b = 0, x, chroma
	case hp < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	m := h.Lightness - chroma/2
	return Color{
		R: channel(r + m),
		G: channel(g + m),
		B: channel(b + m),
	}
}

func channel(f float64) uint8 {
	return uint8(math.Round(min(max(f, 0), 1) * 255))
}

func (h HSL) String() string {
	return fmt.Sprintf("hsl(%.0f°, %.0f%%, %.0f%%)", h.Hue, h.Saturation*100, h.Lightness*100)
}

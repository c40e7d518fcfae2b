package gfx

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Black   = RGB(0x000000)
	White   = RGB(0xffffff)
	Red     = RGB(0xff0000)
	Green   = RGB(0x00ff00)
	Blue    = RGB(0x0000ff)
	Yellow  = RGB(0xffff00)
	Cyan    = RGB(0x00ffff)
	Magenta = RGB(0xff00ff)
)

// RGB returns the color held in the 24 low bits of v, red in bits 16-23, green
// in bits 8-15 and blue in bits 0-7. The upper 8 bits are ignored.
func RGB(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Pack returns the color packed as in RGB. The upper 8 bits are 0.
func (c Color) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a color in the "#rrggbb" form. The leading '#' is
// optional.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 {
		return fmt.Errorf("malformed color %q", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("malformed color %q", text)
	}
	*c = RGB(uint32(v))
	return nil
}

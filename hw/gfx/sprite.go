package gfx

import (
	"strings"

	"w4kit/hw/hwdefs"
)

// BlitFlags control how the host blits a sprite.
type BlitFlags uint32

const (
	Blit1BPP  BlitFlags = hwdefs.Blit1BPP
	Blit2BPP  BlitFlags = hwdefs.Blit2BPP
	BlitFlipX BlitFlags = hwdefs.BlitFlipX
	BlitFlipY BlitFlags = hwdefs.BlitFlipY
	BlitRot   BlitFlags = hwdefs.BlitRot
)

func (f BlitFlags) String() string {
	names := []string{"1bpp"}
	if f&Blit2BPP != 0 {
		names[0] = "2bpp"
	}
	if f&BlitFlipX != 0 {
		names = append(names, "flipx")
	}
	if f&BlitFlipY != 0 {
		names = append(names, "flipy")
	}
	if f&BlitRot != 0 {
		names = append(names, "rot")
	}
	return strings.Join(names, "|")
}

// A Sprite is an image in the host pixel format: 1 or 2 bits per pixel,
// rows packed without padding.
type Sprite struct {
	Width  int
	Height int
	Flags  BlitFlags
	Data   []byte
}

// BPP returns the number of bits per pixel.
func (s *Sprite) BPP() int {
	if s.Flags&Blit2BPP != 0 {
		return 2
	}
	return 1
}

// Valid reports whether Data holds enough bytes for the sprite dimensions.
func (s *Sprite) Valid() bool {
	bits := s.Width * s.Height * s.BPP()
	return s.Width >= 0 && s.Height >= 0 && len(s.Data)*8 >= bits
}

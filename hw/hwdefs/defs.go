// Package hwdefs holds the constants of the console host ABI: memory map,
// screen geometry, button bits and reset values.
package hwdefs

import (
	"strings"

	"w4kit/geom"
)

// Memory map.
const (
	PaletteAddr     = 0x04
	DrawColorsAddr  = 0x14
	GamepadsAddr    = 0x16 // 4 consecutive bytes, one per gamepad
	MouseXAddr      = 0x1a
	MouseYAddr      = 0x1c
	MouseButtonAddr = 0x1e
	SystemFlagsAddr = 0x1f
	NetplayAddr     = 0x20
	FramebufferAddr = 0xa0

	MemSize = 0x10000
)

const (
	ScreenWidth  = 160
	ScreenHeight = 160
	CharWidth    = 8
	CharHeight   = 8

	// 2 bits per pixel.
	FramebufferSize = ScreenWidth * ScreenHeight / 4

	NumGamepads      = 4
	NumPaletteColors = 4
	NumDrawColors    = 4
)

func ScreenSize() geom.Size[int] { return geom.Sz(ScreenWidth, ScreenHeight) }
func CharSize() geom.Size[int]   { return geom.Sz(CharWidth, CharHeight) }

// Frame rate of the host, in frames per second.
const FrameRate = 60

// Reset values.
const (
	ResetDrawColors = 0x1203
)

// ResetPalette holds the 24-bit colors the host loads into the palette at
// startup.
var ResetPalette = [NumPaletteColors]uint32{
	0xe0f8cf,
	0x86c06c,
	0x306850,
	0x071821,
}

// Gamepad button bits.
const (
	Button1 = 0x01
	Button2 = 0x02
	Left    = 0x10
	Right   = 0x20
	Up      = 0x40
	Down    = 0x80
)

// Mouse button bits.
const (
	MouseLeft   = 0x01
	MouseRight  = 0x02
	MouseMiddle = 0x04
)

// SystemFlags is the value of the system flags register.
type SystemFlags uint8

const (
	PreserveFramebuffer SystemFlags = 1 << iota
	HideGamepadOverlay

	numSystemFlags = 2
)

var sysFlagNames = [numSystemFlags]string{
	"preserve-fb",
	"hide-overlay",
}

func (f SystemFlags) String() string {
	var names []string
	for i := range numSystemFlags {
		if f&(1<<i) != 0 {
			names = append(names, sysFlagNames[i])
		}
	}
	return strings.Join(names, "|")
}

// Blit flags.
const (
	Blit1BPP  = 0
	Blit2BPP  = 1
	BlitFlipX = 2
	BlitFlipY = 4
	BlitRot   = 8
)

const NumToneChannels = 4 // Pulse1, Pulse2, Triangle, Noise

// Package gfx gives typed access to the graphic registers of the console (draw
// colors and palette) and forwards the drawing primitives to the host.
package gfx

import (
	"unicode/utf8"

	"w4kit/emu/log"
	"w4kit/geom"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

// Palette holds the 4 colors of the palette.
type Palette [hwdefs.NumPaletteColors]Color

// DefaultPalette is the palette loaded by the host at startup.
var DefaultPalette = Palette{
	RGB(hwdefs.ResetPalette[0]),
	RGB(hwdefs.ResetPalette[1]),
	RGB(hwdefs.ResetPalette[2]),
	RGB(hwdefs.ResetPalette[3]),
}

// A Drawer implements the drawing primitives of the host. Coordinates are in
// pixels, the origin is the top-left corner of the screen. Primitives use the
// colors selected in the draw colors register at call time.
type Drawer interface {
	Line(x1, y1, x2, y2 int32)
	HLine(x, y int32, length uint32)
	VLine(x, y int32, length uint32)
	Oval(x, y int32, width, height uint32)
	Rect(x, y int32, width, height uint32)
	Text(s string, x, y int32)
	Blit(data []byte, x, y int32, width, height, flags uint32)
}

// Ports are the hardware registers accessed by a Framebuffer.
type Ports struct {
	DrawColors hwio.Port[uint16]
	Palette    [hwdefs.NumPaletteColors]hwio.Port[uint32]
}

// Framebuffer is the application's view of the screen: draw colors, palette
// and drawing primitives.
type Framebuffer struct {
	ports  Ports
	drawer Drawer
}

func NewFramebuffer(ports Ports, drawer Drawer) *Framebuffer {
	return &Framebuffer{ports: ports, drawer: drawer}
}

func (fb *Framebuffer) Width() int  { return hwdefs.ScreenWidth }
func (fb *Framebuffer) Height() int { return hwdefs.ScreenHeight }

// Bounds returns the screen rectangle.
func (fb *Framebuffer) Bounds() geom.Rect {
	return geom.R(0, 0, hwdefs.ScreenWidth, hwdefs.ScreenHeight)
}

// SetDrawColors updates the draw colors register in a single write. Roles
// selected with Keep are left as they are.
func (fb *Framebuffer) SetDrawColors(sel [hwdefs.NumDrawColors]Selection) {
	hwio.Modify(fb.ports.DrawColors, func(reg uint16) uint16 {
		return EncodeDrawColors(reg, sel)
	})
}

// SetDrawColor sets a single role, leaving the 3 others untouched. An index
// above 4 is logged and the register is left as is.
func (fb *Framebuffer) SetDrawColor(dc DrawColor, idx PaletteIndex) {
	var sel [hwdefs.NumDrawColors]Selection
	sel[dc&3] = Use(idx)
	fb.SetDrawColors(sel)
}

// DrawColors returns the palette index selected for each role.
func (fb *Framebuffer) DrawColors() ([hwdefs.NumDrawColors]PaletteIndex, error) {
	reg := fb.ports.DrawColors.Read()
	idx, err := DecodeDrawColors(reg)
	if err != nil {
		log.ModGfx.WarnZ("invalid draw colors").Hex16("reg", reg).Error("err", err).End()
	}
	return idx, err
}

func (fb *Framebuffer) Palette() Palette {
	var pal Palette
	for i, p := range fb.ports.Palette {
		pal[i] = RGB(p.Read())
	}
	return pal
}

func (fb *Framebuffer) SetPalette(pal Palette) {
	for i, p := range fb.ports.Palette {
		p.Write(pal[i].Pack())
	}
}

// PaletteColor returns the color of the palette entry i (0 to 3).
func (fb *Framebuffer) PaletteColor(i int) Color {
	return RGB(fb.ports.Palette[i].Read())
}

// SetPaletteColor sets the color of the palette entry i (0 to 3).
func (fb *Framebuffer) SetPaletteColor(i int, c Color) {
	fb.ports.Palette[i].Write(c.Pack())
}

// Drawing primitives.

func (fb *Framebuffer) Line(x1, y1, x2, y2 int) {
	fb.drawer.Line(int32(x1), int32(y1), int32(x2), int32(y2))
}

func (fb *Framebuffer) HLine(x, y, length int) {
	fb.drawer.HLine(int32(x), int32(y), uint32(length))
}

func (fb *Framebuffer) VLine(x, y, length int) {
	fb.drawer.VLine(int32(x), int32(y), uint32(length))
}

func (fb *Framebuffer) Oval(x, y, width, height int) {
	fb.drawer.Oval(int32(x), int32(y), uint32(width), uint32(height))
}

func (fb *Framebuffer) Rect(x, y, width, height int) {
	fb.drawer.Rect(int32(x), int32(y), uint32(width), uint32(height))
}

// FillRect draws r.
func (fb *Framebuffer) FillRect(r geom.Rect) {
	fb.Rect(r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// Text draws s with the host font, whose characters are 8x8 pixels.
func (fb *Framebuffer) Text(s string, x, y int) {
	fb.drawer.Text(s, int32(x), int32(y))
}

// TextSize returns the size of s drawn on a single line.
func TextSize(s string) geom.Size[int] {
	return geom.Sz(utf8.RuneCountInString(s)*hwdefs.CharWidth, hwdefs.CharHeight)
}

func (fb *Framebuffer) Sprite(spr *Sprite, x, y int) {
	fb.drawer.Blit(spr.Data, int32(x), int32(y), uint32(spr.Width), uint32(spr.Height), uint32(spr.Flags))
}

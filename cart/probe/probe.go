// Package probe is a built-in cartridge showing the state of the gamepads. It
// records every button transition it observes, which makes it the reference
// cartridge to check input handling on a host.
package probe

import (
	"w4kit/cart"
	"w4kit/geom"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
)

// A Record holds the transitions observed during a frame.
type Record struct {
	Frame  uint64
	Events []input.Event
}

const (
	title       = "input probe"
	boxSize     = 12
	boxSpacing  = 16
	rowHeight   = 30
	firstRow    = 20
	cursorSize  = 6
	cursorSpeed = 1.5
)

// The tone played on each press of button 1.
var pressTone = audio.Tone{
	Freq:     audio.LinearFrequency(440, 880),
	Envelope: audio.NewEnvelope(0, 2, 4, 4),
	Volume:   audio.MustVolume(80, 40),
	Flags:    audio.MustFlags(audio.Pulse1, audio.Duty1_4, audio.Center),
}

// Probe is the probe cartridge application.
type Probe struct {
	// Records has one entry per frame having at least one transition.
	Records []Record

	held   [hwdefs.NumGamepads]input.Button
	cursor geom.Point[float64]
}

// Start is the cartridge start function.
func Start(sys *cart.System) (cart.Application, error) {
	return New(), nil
}

func New() *Probe {
	center := geom.R(0, 0, hwdefs.ScreenWidth, hwdefs.ScreenHeight).Centered(geom.Sz(0, 0)).Origin
	return &Probe{cursor: geom.Pt(float64(center.X), float64(center.Y))}
}

// Cursor returns the position of the cursor moved with the first gamepad
// directional buttons.
func (p *Probe) Cursor() geom.Point[int] {
	return geom.Pt(int(p.cursor.X), int(p.cursor.Y))
}

func (p *Probe) Update(sys *cart.System) {
	if evs := sys.Inputs.Events(); len(evs) > 0 {
		p.Records = append(p.Records, Record{Frame: sys.Frame(), Events: evs})
		for _, ev := range evs {
			sys.Tracef("frame %d: gamepad %d %s %s", sys.Frame(), ev.Gamepad+1, ev.Button, ev.Kind)
		}
	}

	for i := range p.held {
		gp := sys.Inputs.Gamepad(i)
		p.held[i] = gp.State()
		if gp.Pressed(input.Button1) {
			sys.Audio.Play(pressTone)
		}
	}

	p.moveCursor(sys.Inputs.Gamepad1())
}

func (p *Probe) moveCursor(gp *input.Gamepad) {
	var dir geom.Vector[int]
	if gp.Held(input.Left) {
		dir.X--
	}
	if gp.Held(input.Right) {
		dir.X++
	}
	if gp.Held(input.Up) {
		dir.Y--
	}
	if gp.Held(input.Down) {
		dir.Y++
	}

	// Same speed in all directions.
	v := dir.Normalized()
	v.X *= cursorSpeed
	v.Y *= cursorSpeed

	next := p.cursor.Move(v)
	screen := geom.R(0, 0, hwdefs.ScreenWidth-cursorSize, hwdefs.ScreenHeight-cursorSize)
	if screen.Contains(geom.Pt(int(next.X), int(next.Y))) {
		p.cursor = next
	}
}

// ButtonBox returns the rectangle representing button number btn (in
// input.Buttons) of gamepad pad.
func ButtonBox(pad, btn int) geom.Rect {
	row := geom.R(0, firstRow+pad*rowHeight, hwdefs.ScreenWidth, boxSize)
	width := len(input.Buttons)*boxSpacing - (boxSpacing - boxSize)
	first := row.Centered(geom.Sz(width, boxSize))
	return geom.R(0, 0, boxSize, boxSize).Add(first.Origin).Add(geom.Pt(btn*boxSpacing, 0))
}

func (p *Probe) Render(fb *gfx.Framebuffer) {
	fb.SetDrawColors(gfx.Selections(gfx.Palette4))
	top := fb.Bounds().Centered(gfx.TextSize(title))
	fb.Text(title, top.Origin.X, 4)

	for pad, held := range p.held {
		for i, b := range input.Buttons {
			// Held buttons are filled, others only have an outline.
			fill := gfx.Transparent
			if held&b != 0 {
				fill = gfx.Palette2
			}
			fb.SetDrawColors(gfx.Selections(fill, gfx.Palette4))
			fb.FillRect(ButtonBox(pad, i))
		}
	}

	fb.SetDrawColors(gfx.Selections(gfx.Palette3, gfx.Palette4))
	c := p.Cursor()
	fb.Oval(c.X, c.Y, cursorSize, cursorSize)
}

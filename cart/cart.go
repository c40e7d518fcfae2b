// Package cart drives a cartridge (the application) frame after frame, owning
// the input, graphic and sound subsystems it hands to the application.
package cart

import (
	"fmt"

	"w4kit/emu/log"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
	"w4kit/hw/input"
)

// Host is the console as seen by a cartridge: its memory-mapped registers and
// the calls it implements.
type Host interface {
	gfx.Drawer
	audio.ToneGenerator

	Gamepad(i int) hwio.Port[uint8]
	DrawColors() hwio.Port[uint16]
	PaletteEntry(i int) hwio.Port[uint32]
	SystemFlags() hwio.Port[uint8]

	Trace(msg string)
}

// An Application is a cartridge. Update is called once per frame, about 60
// times per second, then Render.
type Application interface {
	Update(sys *System)
	Render(fb *gfx.Framebuffer)
}

// StartFunc creates the application. It's called once, before the first
// frame.
type StartFunc func(sys *System) (Application, error)

// System gives the application access to the console subsystems.
type System struct {
	Inputs      *input.Inputs
	Framebuffer *gfx.Framebuffer
	Audio       *audio.Audio

	host  Host
	flags hwio.Port[uint8]
	frame uint64
}

// Trace prints msg on the host debug console.
func (sys *System) Trace(msg string) { sys.host.Trace(msg) }

func (sys *System) Tracef(format string, args ...any) {
	sys.host.Trace(fmt.Sprintf(format, args...))
}

// Frame returns the number of frames run so far.
func (sys *System) Frame() uint64 { return sys.frame }

func (sys *System) SystemFlags() hwdefs.SystemFlags {
	return hwdefs.SystemFlags(sys.flags.Read())
}

func (sys *System) SetSystemFlags(f hwdefs.SystemFlags) {
	sys.flags.Write(uint8(f))
}

// Runtime runs an application on a host. It must be driven from a single
// goroutine.
type Runtime struct {
	sys   System
	start StartFunc
	app   Application
}

// New builds the subsystems on top of host. The application is created on
// Start.
func New(host Host, start StartFunc) *Runtime {
	var pads [hwdefs.NumGamepads]hwio.Port[uint8]
	for i := range pads {
		pads[i] = host.Gamepad(i)
	}
	ports := gfx.Ports{DrawColors: host.DrawColors()}
	for i := range ports.Palette {
		ports.Palette[i] = host.PaletteEntry(i)
	}

	return &Runtime{
		sys: System{
			Inputs:      input.NewInputs(pads),
			Framebuffer: gfx.NewFramebuffer(ports, host),
			Audio:       audio.NewAudio(host),
			host:        host,
			flags:       host.SystemFlags(),
		},
		start: start,
	}
}

// System returns the subsystems owned by the runtime.
func (rt *Runtime) System() *System { return &rt.sys }

// App returns the running application, nil before Start.
func (rt *Runtime) App() Application { return rt.app }

// Start creates the application.
func (rt *Runtime) Start() error {
	app, err := rt.start(&rt.sys)
	if err != nil {
		return fmt.Errorf("cartridge start: %w", err)
	}
	rt.app = app
	log.ModCart.InfoZ("cartridge started").End()
	return nil
}

// Update runs one frame of the application: update, render, then the input
// snapshots advance so that the next frame sees the edges relative to this
// one. It's the only place where Inputs.LateUpdate is called.
func (rt *Runtime) Update() {
	if rt.app == nil {
		log.ModCart.ErrorZ("update called before start").End()
		return
	}
	rt.app.Update(&rt.sys)
	rt.app.Render(rt.sys.Framebuffer)
	rt.sys.Inputs.LateUpdate()
	rt.sys.frame++
}

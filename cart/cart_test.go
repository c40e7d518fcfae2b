package cart_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"w4kit/cart"
	"w4kit/emu"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
)

func newMachine(t *testing.T) *emu.Machine {
	t.Helper()
	cfg := emu.DefaultConfig()
	cfg.Audio.DisableAudio = true
	m, err := emu.NewMachine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// stepApp logs the order in which the runtime calls it, along with what the
// first gamepad looks like at that time.
type stepApp struct {
	log []string
}

func (app *stepApp) Update(sys *cart.System) {
	gp := sys.Inputs.Gamepad1()
	s := "update"
	if gp.Pressed(input.Button1) {
		s += " pressed"
	}
	if gp.Held(input.Button1) {
		s += " held"
	}
	if gp.Released(input.Button1) {
		s += " released"
	}
	app.log = append(app.log, s)
}

func (app *stepApp) Render(fb *gfx.Framebuffer) {
	app.log = append(app.log, "render")
}

func TestRuntimeFrameOrder(t *testing.T) {
	m := newMachine(t)
	app := &stepApp{}

	var started *cart.System
	rt := cart.New(m, func(sys *cart.System) (cart.Application, error) {
		started = sys
		return app, nil
	})
	if rt.App() != nil {
		t.Fatalf("App() should be nil before Start")
	}
	if err := rt.Start(); err != nil {
		t.Fatal(err)
	}
	if started != rt.System() {
		t.Errorf("start function got a different system")
	}

	for _, mask := range []uint8{hwdefs.Button1, hwdefs.Button1, 0, 0} {
		m.SetGamepad(0, mask)
		m.RunFrame(rt)
	}

	want := []string{
		"update pressed held", "render",
		"update held", "render",
		"update released", "render",
		"update", "render",
	}
	if diff := cmp.Diff(want, app.log); diff != "" {
		t.Errorf("frame log mismatch (-want +got):\n%s", diff)
	}
	if got := rt.System().Frame(); got != 4 {
		t.Errorf("Frame() = %d, want 4", got)
	}
}

func TestRuntimeUpdateBeforeStart(t *testing.T) {
	m := newMachine(t)
	app := &stepApp{}
	rt := cart.New(m, func(*cart.System) (cart.Application, error) { return app, nil })

	// Must not crash nor advance.
	rt.Update()
	if len(app.log) != 0 || rt.System().Frame() != 0 {
		t.Errorf("Update() before Start() ran the application")
	}
}

func TestRuntimeStartError(t *testing.T) {
	m := newMachine(t)
	errBoom := errors.New("boom")
	rt := cart.New(m, func(*cart.System) (cart.Application, error) { return nil, errBoom })

	err := rt.Start()
	if !errors.Is(err, errBoom) {
		t.Fatalf("Start() = %v, want %v", err, errBoom)
	}
	if got, want := err.Error(), "cartridge start: boom"; got != want {
		t.Errorf("Start() error = %q, want %q", got, want)
	}
}

func TestSystemFlags(t *testing.T) {
	m := newMachine(t)
	rt := cart.New(m, func(*cart.System) (cart.Application, error) { return &stepApp{}, nil })
	sys := rt.System()

	sys.SetSystemFlags(hwdefs.PreserveFramebuffer | hwdefs.HideGamepadOverlay)
	if got := m.Mem.Read8(hwdefs.SystemFlagsAddr); got != 0x03 {
		t.Errorf("system flags register = %02x, want 03", got)
	}
	if got := sys.SystemFlags().String(); got != "preserve-fb|hide-overlay" {
		t.Errorf("SystemFlags() = %q", got)
	}
}

func TestSystemSubsystems(t *testing.T) {
	m := newMachine(t)
	rt := cart.New(m, func(*cart.System) (cart.Application, error) { return &stepApp{}, nil })
	sys := rt.System()

	sys.Framebuffer.SetDrawColors(gfx.Selections(gfx.Transparent, gfx.Palette1))
	if got := m.DrawColors().Read(); got != 0x1210 {
		t.Errorf("draw colors = %04x, want 1210", got)
	}

	sys.Framebuffer.SetPaletteColor(3, gfx.RGB(0xff0000))
	if got := m.Mem.Read32(hwdefs.PaletteAddr + 12); got != 0xff0000 {
		t.Errorf("palette[3] = %06x, want ff0000", got)
	}
}

package emu

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"w4kit/cart"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
)

func newTestMachine(t *testing.T, audioOn bool) *Machine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Audio.DisableAudio = !audioOn
	m, err := NewMachine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// testApp records the input events seen at each frame and draws a rectangle
// per frame.
type testApp struct {
	events [][]input.Event
	tone   *audio.Tone
}

func (app *testApp) Update(sys *cart.System) {
	app.events = append(app.events, sys.Inputs.Events())
	if app.tone != nil && sys.Inputs.Gamepad1().Pressed(input.Button1) {
		sys.Audio.Play(*app.tone)
	}
}

func (app *testApp) Render(fb *gfx.Framebuffer) {
	fb.SetDrawColor(gfx.DrawColor1, gfx.Palette4)
	fb.Rect(10, 20, 30, 40)
	fb.Text("hi", 1, 2)
}

func startTestApp(t *testing.T, m *Machine, app *testApp) *cart.Runtime {
	t.Helper()
	rt := cart.New(m, func(*cart.System) (cart.Application, error) { return app, nil })
	if err := rt.Start(); err != nil {
		t.Fatal(err)
	}
	return rt
}

func TestMachineReset(t *testing.T) {
	m := newTestMachine(t, false)

	for i, want := range hwdefs.ResetPalette {
		if got := m.PaletteEntry(i).Read(); got != want {
			t.Errorf("palette[%d] = %06x, want %06x", i, got, want)
		}
		if got := m.Mem.Read32(uint16(hwdefs.PaletteAddr + 4*i)); got != want {
			t.Errorf("mem palette[%d] = %06x, want %06x", i, got, want)
		}
	}
	if got := m.DrawColors().Read(); got != hwdefs.ResetDrawColors {
		t.Errorf("draw colors = %04x, want %04x", got, hwdefs.ResetDrawColors)
	}
	for i := range hwdefs.NumGamepads {
		if got := m.Gamepad(i).Read(); got != 0 {
			t.Errorf("gamepad %d = %02x, want 0", i, got)
		}
	}

	m.SetGamepad(0, 0xff)
	m.DrawColors().Write(0x4321)
	m.Reset()
	if m.Gamepad(0).Read() != 0 || m.DrawColors().Read() != hwdefs.ResetDrawColors {
		t.Errorf("Reset() did not restore the reset values")
	}
}

func TestMachineConfigPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.DisableAudio = true
	cfg.Video.Palette = []gfx.Color{gfx.RGB(0x112233), gfx.RGB(0x445566), gfx.RGB(0x778899), gfx.RGB(0xaabbcc)}
	m, err := NewMachine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0x112233, 0x445566, 0x778899, 0xaabbcc}
	for i, w := range want {
		if got := m.PaletteEntry(i).Read(); got != w {
			t.Errorf("palette[%d] = %06x, want %06x", i, got, w)
		}
	}
}

func TestMachineGamepads(t *testing.T) {
	m := newTestMachine(t, false)

	// Gamepads are read-only from the cartridge side.
	m.Gamepad(1).Write(0xff)
	if got := m.Gamepad(1).Read(); got != 0 {
		t.Errorf("gamepad 2 = %02x after a cartridge write, want 0", got)
	}

	m.SetGamepad(1, hwdefs.Left|hwdefs.Button1)
	if got := m.Gamepad(1).Read(); got != hwdefs.Left|hwdefs.Button1 {
		t.Errorf("gamepad 2 = %02x, want %02x", got, hwdefs.Left|hwdefs.Button1)
	}

	m.SetButtons(1, hwdefs.Up|hwdefs.Down, true)
	m.SetButtons(1, hwdefs.Left, false)
	if got, want := m.Gamepad(1).Read(), uint8(hwdefs.Button1|hwdefs.Up|hwdefs.Down); got != want {
		t.Errorf("gamepad 2 = %02x, want %02x", got, want)
	}
	if got := m.Mem.Read8(hwdefs.GamepadsAddr + 1); got != hwdefs.Button1|hwdefs.Up|hwdefs.Down {
		t.Errorf("gamepad 2 memory = %02x", got)
	}
}

func TestMachineRunFrame(t *testing.T) {
	m := newTestMachine(t, false)
	app := &testApp{}
	rt := startTestApp(t, m, app)

	masks := []uint8{0, hwdefs.Button1, hwdefs.Button1, 0}
	for _, mask := range masks {
		m.SetGamepad(0, mask)
		m.RunFrame(rt)
	}

	if m.Frame() != 4 || rt.System().Frame() != 4 {
		t.Errorf("frame = %d/%d, want 4", m.Frame(), rt.System().Frame())
	}

	want := [][]input.Event{
		nil,
		{{Gamepad: 0, Button: input.Button1, Kind: input.Press}},
		nil,
		{{Gamepad: 0, Button: input.Button1, Kind: input.Release}},
	}
	if diff := cmp.Diff(want, app.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	// Only the calls of the last frame are kept.
	var got []string
	for _, dc := range m.DrawCalls() {
		got = append(got, dc.String())
	}
	wantCalls := []string{
		"rect 10 20 30 40 [1204]",
		`text "hi" 1 2 [1204]`,
	}
	if diff := cmp.Diff(wantCalls, got); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMachinePreserveFramebuffer(t *testing.T) {
	m := newTestMachine(t, false)
	rt := startTestApp(t, m, &testApp{})

	m.Framebuffer()[0] = 0xaa
	m.RunFrame(rt)
	if got := m.Mem.Read8(hwdefs.FramebufferAddr); got != 0 {
		t.Errorf("framebuffer[0] = %02x, want cleared", got)
	}

	rt.System().SetSystemFlags(hwdefs.PreserveFramebuffer)
	m.Framebuffer()[0] = 0xaa
	m.RunFrame(rt)
	if got := m.Mem.Read8(hwdefs.FramebufferAddr); got != 0xaa {
		t.Errorf("framebuffer[0] = %02x, want preserved", got)
	}
}

func TestMachineTone(t *testing.T) {
	m := newTestMachine(t, true)
	tone := audio.Tone{
		Freq:     audio.ConstantFrequency(440),
		Envelope: audio.ConstantEnvelope(30),
		Volume:   audio.DefaultVolume,
		Flags:    audio.MustFlags(audio.Pulse1, audio.Duty1_2, audio.Center),
	}
	rt := startTestApp(t, m, &testApp{tone: &tone})

	m.RunFrame(rt)
	m.SetGamepad(0, hwdefs.Button1)
	m.RunFrame(rt)
	m.RunFrame(rt)

	want := []ToneEvent{{Frame: 1, Tone: tone}}
	if diff := cmp.Diff(want, m.Tones()); diff != "" {
		t.Errorf("tones mismatch (-want +got):\n%s", diff)
	}

	samples := m.TakeSamples()
	if n := len(samples) / 2; n < 3*700 || n > 3*770 {
		t.Errorf("got %d stereo samples for 3 frames, want about %d", n, 3*735)
	}
	var loud bool
	for _, s := range samples {
		if s > 1000 || s < -1000 {
			loud = true
			break
		}
	}
	if !loud {
		t.Errorf("tone is not audible")
	}
	if len(m.TakeSamples()) != 0 {
		t.Errorf("TakeSamples() should drain the samples")
	}
}

func TestMachineInvalidTone(t *testing.T) {
	m := newTestMachine(t, false)

	// Pan 3 and a volume above 100%.
	m.Tone(440, 10, 100, 0x30)
	m.Tone(440, 10, 101, 0)
	if len(m.Tones()) != 0 {
		t.Errorf("invalid tones have been recorded: %v", m.Tones())
	}

	m.Tone(440, 10, 100, 0)
	if len(m.Tones()) != 1 {
		t.Errorf("got %d tones, want 1", len(m.Tones()))
	}
}

func TestMachineTrace(t *testing.T) {
	m := newTestMachine(t, false)
	rt := startTestApp(t, m, &testApp{})
	rt.System().Tracef("frame %d", 12)
	m.Trace("done")

	if diff := cmp.Diff([]string{"frame 12", "done"}, m.Traces()); diff != "" {
		t.Errorf("traces mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawCallString(t *testing.T) {
	m := newTestMachine(t, false)
	m.Line(-1, 2, 3, 4)
	m.HLine(0, 1, 2)
	m.VLine(3, 4, 5)
	m.Oval(1, 2, 3, 4)
	m.Blit([]byte{1, 2}, 8, 8, 8, 8, hwdefs.Blit2BPP)

	want := []string{
		"line -1 2 3 4 [1203]",
		"hline 0 1 2 [1203]",
		"vline 3 4 5 [1203]",
		"oval 1 2 3 4 [1203]",
		"blit 8 8 8 8 1 [1203]",
	}
	var got []string
	for _, dc := range m.DrawCalls() {
		got = append(got, dc.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{1, 2}, m.DrawCalls()[4].Data); diff != "" {
		t.Errorf("blit data mismatch (-want +got):\n%s", diff)
	}
}

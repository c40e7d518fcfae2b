package emu

import (
	"fmt"
	"strconv"
	"strings"

	"w4kit/cart"
	"w4kit/emu/log"
	"w4kit/hw/apu"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

// A DrawCall is a drawing primitive called by the cartridge. Primitives are
// recorded, not rasterized.
type DrawCall struct {
	Op         string
	Args       []int64
	Text       string // only for text
	Data       []byte // only for blit
	DrawColors uint16 // value of the draw colors register at call time
}

func (dc DrawCall) String() string {
	var sb strings.Builder
	sb.WriteString(dc.Op)
	if dc.Op == "text" {
		sb.WriteString(" " + strconv.Quote(dc.Text))
	}
	for _, a := range dc.Args {
		sb.WriteString(" " + strconv.FormatInt(a, 10))
	}
	fmt.Fprintf(&sb, " [%04x]", dc.DrawColors)
	return sb.String()
}

// A ToneEvent is a tone started by the cartridge.
type ToneEvent struct {
	Frame uint64
	Tone  audio.Tone
}

// Machine is a headless console host. It maps the hardware registers in a
// 64KiB linear memory, records the drawing primitives and synthesizes tones.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	Mem *hwio.Mem

	gamepads [hwdefs.NumGamepads]hwio.Port[uint8]
	palette  [hwdefs.NumPaletteColors]hwio.Port[uint32]

	synth   *apu.Synth // nil when audio is disabled
	samples []int16
	sampbuf []int16

	resetPalette gfx.Palette

	calls  []DrawCall
	tones  []ToneEvent
	traces []string
	frame  uint64
}

// NewMachine returns a powered up machine.
func NewMachine(cfg Config) (*Machine, error) {
	m := &Machine{
		Mem:          hwio.NewMem("ram", hwdefs.MemSize),
		resetPalette: gfx.DefaultPalette,
	}
	if len(cfg.Video.Palette) == hwdefs.NumPaletteColors {
		copy(m.resetPalette[:], cfg.Video.Palette)
	}

	for i := range m.gamepads {
		name := fmt.Sprintf("GAMEPAD%d", i+1)
		m.gamepads[i] = hwio.ReadOnly(name, m.Mem.Port8(uint16(hwdefs.GamepadsAddr+i)))
	}
	for i := range m.palette {
		m.palette[i] = m.Mem.Port32(uint16(hwdefs.PaletteAddr + 4*i))
	}

	if !cfg.Audio.DisableAudio {
		synth, err := apu.New(cfg.Audio.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("audio: %w", err)
		}
		m.synth = synth
		m.sampbuf = make([]int16, 2*synth.SamplesPerFrame()+16)
	}

	m.Reset()
	return m, nil
}

// Reset clears the memory and the recorded events, and loads the reset values
// into the registers.
func (m *Machine) Reset() {
	clear(m.Mem.Data)
	for i, c := range m.resetPalette {
		m.palette[i].Write(c.Pack())
	}
	m.Mem.Write16(hwdefs.DrawColorsAddr, hwdefs.ResetDrawColors)

	if m.synth != nil {
		m.synth.Reset()
	}
	m.samples = m.samples[:0]
	m.calls = nil
	m.tones = nil
	m.traces = nil
	m.frame = 0
	log.ModEmu.InfoZ("reset").End()
}

func (m *Machine) Gamepad(i int) hwio.Port[uint8]       { return m.gamepads[i] }
func (m *Machine) PaletteEntry(i int) hwio.Port[uint32] { return m.palette[i] }

func (m *Machine) DrawColors() hwio.Port[uint16] {
	return m.Mem.Port16(hwdefs.DrawColorsAddr)
}

func (m *Machine) SystemFlags() hwio.Port[uint8] {
	return m.Mem.Port8(hwdefs.SystemFlagsAddr)
}

// SetGamepad sets the raw button mask of gamepad i, as the host does when
// polling the controllers.
func (m *Machine) SetGamepad(i int, mask uint8) {
	m.Mem.Write8(uint16(hwdefs.GamepadsAddr+i), mask)
}

// SetButtons sets or clears the given button bits of gamepad i, leaving the
// others untouched.
func (m *Machine) SetButtons(i int, buttons uint8, pressed bool) {
	addr := uint16(hwdefs.GamepadsAddr + i)
	mask := m.Mem.Read8(addr)
	for bit := range uint(8) {
		if !hwio.GetBit8(buttons, bit) {
			continue
		}
		if pressed {
			hwio.SetBit8(&mask, bit)
		} else {
			hwio.ClearBit8(&mask, bit)
		}
	}
	m.Mem.Write8(addr, mask)
}

// Framebuffer returns the 2bpp framebuffer memory.
func (m *Machine) Framebuffer() []byte {
	return m.Mem.Slice(hwdefs.FramebufferAddr, hwdefs.FramebufferSize)
}

func (m *Machine) record(op string, args ...int64) *DrawCall {
	m.calls = append(m.calls, DrawCall{
		Op:         op,
		Args:       args,
		DrawColors: m.Mem.Read16(hwdefs.DrawColorsAddr),
	})
	return &m.calls[len(m.calls)-1]
}

func (m *Machine) Line(x1, y1, x2, y2 int32) {
	m.record("line", int64(x1), int64(y1), int64(x2), int64(y2))
}

func (m *Machine) HLine(x, y int32, length uint32) {
	m.record("hline", int64(x), int64(y), int64(length))
}

func (m *Machine) VLine(x, y int32, length uint32) {
	m.record("vline", int64(x), int64(y), int64(length))
}

func (m *Machine) Oval(x, y int32, width, height uint32) {
	m.record("oval", int64(x), int64(y), int64(width), int64(height))
}

func (m *Machine) Rect(x, y int32, width, height uint32) {
	m.record("rect", int64(x), int64(y), int64(width), int64(height))
}

func (m *Machine) Text(s string, x, y int32) {
	m.record("text", int64(x), int64(y)).Text = s
}

func (m *Machine) Blit(data []byte, x, y int32, width, height, flags uint32) {
	dc := m.record("blit", int64(x), int64(y), int64(width), int64(height), int64(flags))
	dc.Data = append([]byte(nil), data...)
}

// Tone implements the host tone call. Words that do not decode are logged
// and ignored.
func (m *Machine) Tone(freq, duration, volume, flags uint32) {
	t, err := audio.DecodeTone(freq, duration, volume, flags)
	if err != nil {
		log.ModSound.ErrorZ("invalid tone").
			Hex32("freq", freq).
			Hex32("duration", duration).
			Hex32("volume", volume).
			Hex32("flags", flags).
			Error("err", err).
			End()
		return
	}

	log.ModSound.DebugZ("tone").Stringer("tone", t).End()
	m.tones = append(m.tones, ToneEvent{Frame: m.frame, Tone: t})
	if m.synth != nil {
		m.synth.Play(t)
	}
}

// Trace implements the host trace call.
func (m *Machine) Trace(msg string) {
	log.ModCart.InfoZ(msg).End()
	m.traces = append(m.traces, msg)
}

// RunFrame runs one host frame of rt: the display list is cleared, as is the
// framebuffer unless the cartridge asked to preserve it, then the cartridge
// runs and the frame audio samples are produced.
func (m *Machine) RunFrame(rt *cart.Runtime) {
	m.calls = nil
	flags := hwdefs.SystemFlags(m.Mem.Read8(hwdefs.SystemFlagsAddr))
	if flags&hwdefs.PreserveFramebuffer == 0 {
		clear(m.Framebuffer())
	}

	rt.Update()

	if m.synth != nil {
		m.synth.EndFrame()
		for m.synth.SamplesAvailable() > 0 {
			n := m.synth.ReadSamples(m.sampbuf)
			m.samples = append(m.samples, m.sampbuf[:2*n]...)
		}
	}
	m.frame++
}

// Frame returns the number of frames run since the last reset.
func (m *Machine) Frame() uint64 { return m.frame }

// DrawCalls returns the primitives called during the last frame.
func (m *Machine) DrawCalls() []DrawCall { return m.calls }

// Tones returns all tones started since the last reset.
func (m *Machine) Tones() []ToneEvent { return m.tones }

// Traces returns all trace messages since the last reset.
func (m *Machine) Traces() []string { return m.traces }

// TakeSamples returns the interleaved stereo samples produced since the last
// call.
func (m *Machine) TakeSamples() []int16 {
	s := append([]int16(nil), m.samples...)
	m.samples = m.samples[:0]
	return s
}

// SampleRate returns the audio sample rate, 0 when audio is disabled.
func (m *Machine) SampleRate() int {
	if m.synth == nil {
		return 0
	}
	return m.synth.SampleRate()
}

// AddLogContext adds the current frame to log entries.
func (m *Machine) AddLogContext(z *log.EntryZ) {
	z.Uint64("frame", m.frame)
}

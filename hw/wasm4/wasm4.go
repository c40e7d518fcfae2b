//go:build tinygo && wasm

package wasm4

import (
	"runtime/volatile"
	"unsafe"

	"w4kit/cart"
	"w4kit/emu/log"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

//go:wasmimport env blit
func blit(sprite unsafe.Pointer, x, y int32, width, height, flags uint32)

//go:wasmimport env line
func line(x1, y1, x2, y2 int32)

//go:wasmimport env hline
func hline(x, y int32, length uint32)

//go:wasmimport env vline
func vline(x, y int32, length uint32)

//go:wasmimport env oval
func oval(x, y int32, width, height uint32)

//go:wasmimport env rect
func rect(x, y int32, width, height uint32)

//go:wasmimport env textUtf8
func textUtf8(text unsafe.Pointer, byteLength uint32, x, y int32)

//go:wasmimport env tone
func tone(frequency, duration, volume, flags uint32)

//go:wasmimport env traceUtf8
func traceUtf8(str unsafe.Pointer, byteLength uint32)

type port8 struct{ r *volatile.Register8 }

func (p port8) Read() uint8     { return p.r.Get() }
func (p port8) Write(val uint8) { p.r.Set(val) }

type port16 struct{ r *volatile.Register16 }

func (p port16) Read() uint16     { return p.r.Get() }
func (p port16) Write(val uint16) { p.r.Set(val) }

type port32 struct{ r *volatile.Register32 }

func (p port32) Read() uint32     { return p.r.Get() }
func (p port32) Write(val uint32) { p.r.Set(val) }

func reg8(addr uintptr) hwio.Port[uint8] {
	return port8{(*volatile.Register8)(unsafe.Pointer(addr))}
}

func reg16(addr uintptr) hwio.Port[uint16] {
	return port16{(*volatile.Register16)(unsafe.Pointer(addr))}
}

func reg32(addr uintptr) hwio.Port[uint32] {
	return port32{(*volatile.Register32)(unsafe.Pointer(addr))}
}

// Host is the console host. Its zero value is ready to use.
type Host struct{}

func (Host) Gamepad(i int) hwio.Port[uint8] {
	return hwio.ReadOnly("GAMEPAD", reg8(hwdefs.GamepadsAddr+uintptr(i)))
}

func (Host) DrawColors() hwio.Port[uint16] { return reg16(hwdefs.DrawColorsAddr) }

func (Host) PaletteEntry(i int) hwio.Port[uint32] {
	return reg32(hwdefs.PaletteAddr + 4*uintptr(i))
}

func (Host) SystemFlags() hwio.Port[uint8] { return reg8(hwdefs.SystemFlagsAddr) }

func (Host) Line(x1, y1, x2, y2 int32)                 { line(x1, y1, x2, y2) }
func (Host) HLine(x, y int32, length uint32)           { hline(x, y, length) }
func (Host) VLine(x, y int32, length uint32)           { vline(x, y, length) }
func (Host) Oval(x, y int32, width, height uint32)     { oval(x, y, width, height) }
func (Host) Rect(x, y int32, width, height uint32)     { rect(x, y, width, height) }
func (Host) Tone(freq, duration, volume, flags uint32) { tone(freq, duration, volume, flags) }

func (Host) Text(s string, x, y int32) {
	textUtf8(unsafe.Pointer(unsafe.StringData(s)), uint32(len(s)), x, y)
}

func (Host) Blit(data []byte, x, y int32, width, height, flags uint32) {
	blit(unsafe.Pointer(unsafe.SliceData(data)), x, y, width, height, flags)
}

func (Host) Trace(msg string) {
	traceUtf8(unsafe.Pointer(unsafe.StringData(msg)), uint32(len(msg)))
}

var (
	startFn cart.StartFunc
	rt      *cart.Runtime
)

// Run registers the cartridge start function. It must be called before the
// console calls start, that is from an init function.
func Run(start cart.StartFunc) {
	startFn = start
}

//go:export start
func start() {
	// There's no log output on the console.
	log.Disable()

	if startFn == nil {
		Host{}.Trace("wasm4: no cartridge registered")
		return
	}
	rt = cart.New(Host{}, startFn)
	if err := rt.Start(); err != nil {
		Host{}.Trace(err.Error())
		rt = nil
	}
}

//go:export update
func update() {
	if rt != nil {
		rt.Update()
	}
}

package hwio

import (
	"encoding/binary"

	"w4kit/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlagReadOnly  MemFlags = (1 << iota) // reject writes
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Mem is a little-endian linear memory area, such as the 64KiB memory of the
// console in which the host maps all registers.
type Mem struct {
	Name  string   // name of the memory area (for debugging)
	Data  []byte   // actual memory buffer
	Flags MemFlags // flags determining how the memory can be accessed
}

func NewMem(name string, size int) *Mem {
	return &Mem{Name: name, Data: make([]byte, size)}
}

func (m *Mem) writable(addr uint16) bool {
	if m.Flags&MemFlagReadOnly == 0 {
		return true
	}
	if m.Flags&MemFlagNoROLog == 0 {
		log.ModHwIo.ErrorZ("write to readonly memory").
			String("name", m.Name).
			Hex16("addr", addr).
			End()
	}
	return false
}

func (m *Mem) Read8(addr uint16) uint8 {
	return m.Data[addr]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	if m.writable(addr) {
		m.Data[addr] = val
	}
}

func (m *Mem) Read16(addr uint16) uint16 {
	return binary.LittleEndian.Uint16(m.Data[addr:])
}

func (m *Mem) Write16(addr uint16, val uint16) {
	if m.writable(addr) {
		binary.LittleEndian.PutUint16(m.Data[addr:], val)
	}
}

func (m *Mem) Read32(addr uint16) uint32 {
	return binary.LittleEndian.Uint32(m.Data[addr:])
}

func (m *Mem) Write32(addr uint16, val uint32) {
	if m.writable(addr) {
		binary.LittleEndian.PutUint32(m.Data[addr:], val)
	}
}

// Slice returns the n bytes starting at addr, aliasing the memory.
func (m *Mem) Slice(addr uint16, n int) []byte {
	return m.Data[int(addr) : int(addr)+n : int(addr)+n]
}

// Port8, Port16 and Port32 return ports accessing the register mapped at addr.

func (m *Mem) Port8(addr uint16) Port[uint8]   { return memPort8{m, addr} }
func (m *Mem) Port16(addr uint16) Port[uint16] { return memPort16{m, addr} }
func (m *Mem) Port32(addr uint16) Port[uint32] { return memPort32{m, addr} }

type memPort8 struct {
	m    *Mem
	addr uint16
}

func (p memPort8) Read() uint8     { return p.m.Read8(p.addr) }
func (p memPort8) Write(val uint8) { p.m.Write8(p.addr, val) }

type memPort16 struct {
	m    *Mem
	addr uint16
}

func (p memPort16) Read() uint16     { return p.m.Read16(p.addr) }
func (p memPort16) Write(val uint16) { p.m.Write16(p.addr, val) }

type memPort32 struct {
	m    *Mem
	addr uint16
}

func (p memPort32) Read() uint32     { return p.m.Read32(p.addr) }
func (p memPort32) Write(val uint32) { p.m.Write32(p.addr, val) }

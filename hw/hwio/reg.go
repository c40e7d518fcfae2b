package hwio

import (
	"fmt"
	"unsafe"

	"w4kit/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg is an in-memory register. Bits set in RoMask can't be modified by
// writes. ReadCb, when set, is called on read to compute the value returned.
// WriteCb, when set, is called after each write with the old and new values.
type Reg[T Word] struct {
	Name   string
	Value  T
	RoMask T

	Flags   RWFlags
	ReadCb  func(val T) T
	WriteCb func(old T, val T)
}

type (
	Reg8  = Reg[uint8]
	Reg16 = Reg[uint16]
	Reg32 = Reg[uint32]
)

func (reg *Reg[T]) String() string {
	s := fmt.Sprintf("%s{%0*x", reg.Name, int(unsafe.Sizeof(reg.Value))*2, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg[T]) write(val T) {
	old := reg.Value
	reg.Value = (reg.Value & reg.RoMask) | (val &^ reg.RoMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg[T]) Write(val T) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write to readonly reg").
			String("name", reg.Name).
			Hex32("val", uint32(val)).
			End()
		return
	}
	reg.write(val)
}

func (reg *Reg[T]) Read() T {
	if reg.Flags&WriteOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Read from writeonly reg").
			String("name", reg.Name).
			End()
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

// Peek returns the register value without triggering the read callback.
func (reg *Reg[T]) Peek() T {
	return reg.Value
}

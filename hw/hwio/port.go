// Package hwio provides access to the memory-mapped hardware registers of the
// console: ports, in-memory registers, linear memory and bit fields.
package hwio

import "w4kit/emu/log"

// Word is the set of register widths supported by the host ABI.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// A Port gives read and write access to a single hardware register.
//
// In production a port is backed by a fixed memory-mapped address. In tests and
// in the headless host, it is backed by a Reg or by a Mem location.
type Port[T Word] interface {
	Read() T
	Write(val T)
}

// ReadOnly wraps a port so that writes are rejected (and logged). Reads are
// forwarded to p.
func ReadOnly[T Word](name string, p Port[T]) Port[T] {
	return &roPort[T]{name: name, p: p}
}

type roPort[T Word] struct {
	name string
	p    Port[T]
}

func (ro *roPort[T]) Read() T { return ro.p.Read() }

func (ro *roPort[T]) Write(val T) {
	log.ModHwIo.ErrorZ("invalid write to readonly port").
		String("name", ro.name).
		Hex32("val", uint32(val)).
		End()
}

// Modify performs a read-modify-write cycle on p.
func Modify[T Word](p Port[T], f func(T) T) {
	p.Write(f(p.Read()))
}

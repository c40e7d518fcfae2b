package hwio

import (
	"fmt"
	"unsafe"
)

// A Field is a named bit range [Shift, Shift+Width) inside a register of type T.
type Field[T Word] struct {
	Name  string
	Shift uint8
	Width uint8
}

// NewField returns the field covering bits [shift, shift+width) of T. It panics
// if the range doesn't fit in T, so that field tables declared as package
// variables are checked at program start.
func NewField[T Word](name string, shift, width uint8) Field[T] {
	var zero T
	bits := uint8(unsafe.Sizeof(zero) * 8)
	if width == 0 || uint(shift)+uint(width) > uint(bits) {
		panic(fmt.Sprintf("hwio: field %s [%d:%d] doesn't fit in %d bits", name, shift, shift+width, bits))
	}
	return Field[T]{Name: name, Shift: shift, Width: width}
}

func (f Field[T]) max() T {
	return T((uint64(1) << f.Width) - 1)
}

// Mask returns the field mask, in place.
func (f Field[T]) Mask() T {
	return f.max() << f.Shift
}

// Get extracts the field value from v.
func (f Field[T]) Get(v T) T {
	return (v >> f.Shift) & f.max()
}

// Set returns v with the field replaced by x. Bits of x not fitting in the
// field are discarded.
func (f Field[T]) Set(v, x T) T {
	return v&^f.Mask() | (x&f.max())<<f.Shift
}

// Max returns the largest value the field can hold.
func (f Field[T]) Max() T {
	return f.max()
}

func (f Field[T]) String() string {
	return fmt.Sprintf("%s[%d:%d]", f.Name, f.Shift, f.Shift+f.Width-1)
}

package hwio

import (
	"fmt"
	"strconv"
)

// RangeError is returned when a parameter object is built with a value outside
// of its documented range. Nothing is written to the hardware in that case.
type RangeError struct {
	Param    string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: %s not in [%s, %s]",
		e.Param, ftoa(e.Value), ftoa(e.Min), ftoa(e.Max))
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type number interface {
	~uint8 | ~uint16 | ~uint32 | ~int | ~float32 | ~float64
}

// CheckRange returns a *RangeError if v is not in [min, max]. NaN is never in
// range.
func CheckRange[N number](param string, v, min, max N) error {
	if v >= min && v <= max {
		return nil
	}
	return &RangeError{
		Param: param,
		Value: float64(v),
		Min:   float64(min),
		Max:   float64(max),
	}
}

// DecodeError is returned when a register field read back from the hardware
// doesn't correspond to any known value.
type DecodeError struct {
	Field string
	Value uint32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid field value %#x", e.Field, e.Value)
}

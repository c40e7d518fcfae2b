// Package input implements the gamepad state machines, deriving per-frame
// press and release events from the raw gamepad registers.
package input

import (
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

// Inputs groups the gamepads of the console.
type Inputs struct {
	pads [hwdefs.NumGamepads]*Gamepad
}

// NewInputs creates the gamepads, reading the raw registers through ports.
func NewInputs(ports [hwdefs.NumGamepads]hwio.Port[uint8]) *Inputs {
	var in Inputs
	for i, p := range ports {
		in.pads[i] = NewGamepad(i, p)
	}
	return &in
}

// Gamepad returns the i-th gamepad (0 to 3).
func (in *Inputs) Gamepad(i int) *Gamepad { return in.pads[i] }

func (in *Inputs) Gamepad1() *Gamepad { return in.pads[0] }
func (in *Inputs) Gamepad2() *Gamepad { return in.pads[1] }
func (in *Inputs) Gamepad3() *Gamepad { return in.pads[2] }
func (in *Inputs) Gamepad4() *Gamepad { return in.pads[3] }

// Events returns the transitions of all gamepads for the current frame.
func (in *Inputs) Events() []Event {
	var evs []Event
	for _, gp := range in.pads {
		evs = append(evs, gp.Events()...)
	}
	return evs
}

// LateUpdate advances the snapshot of every gamepad. See Gamepad.LateUpdate.
func (in *Inputs) LateUpdate() {
	for _, gp := range in.pads {
		gp.LateUpdate()
	}
}

package input

import (
	"w4kit/emu/log"
	"w4kit/hw/hwio"
)

//go:generate go tool stringer -type=Transition -linecomment

// A Transition is an edge of a button state between two frames.
type Transition uint8

const (
	Press   Transition = iota // pressed
	Release                   // released
)

// An Event is a button transition observed during the current frame.
type Event struct {
	Gamepad int
	Button  Button
	Kind    Transition
}

// Gamepad derives press and release events from the raw gamepad register.
//
// The register is overwritten by the host between frames. The Gamepad keeps
// the value observed at the end of the previous frame and compares it to the
// live register value:
//
//	Held:     set now
//	Pressed:  clear at the end of the previous frame, set now
//	Released: set at the end of the previous frame, clear now
//
// LateUpdate must be called exactly once per frame, after the application has
// finished reading input for that frame. When it's never called, edges never
// fire (Held still works). When it's called twice in the same frame, the
// second call snapshots the current state again and a press (or release)
// happening on the next frame may go unseen, since the snapshot already
// reflects it. A button pressed and released between two frames is not seen
// at all: only the state at frame boundaries is sampled.
type Gamepad struct {
	idx  int
	port hwio.Port[uint8]
	last uint8
}

// NewGamepad returns the gamepad reading the raw register through port. idx
// identifies the gamepad in events and logs (0 for the first player).
func NewGamepad(idx int, port hwio.Port[uint8]) *Gamepad {
	return &Gamepad{idx: idx, port: port}
}

func (gp *Gamepad) Index() int { return gp.idx }

// State returns the buttons currently held.
func (gp *Gamepad) State() Button { return Button(gp.port.Read()) }

// Last returns the buttons that were held at the end of the previous frame.
func (gp *Gamepad) Last() Button { return Button(gp.last) }

// Held reports whether any of the buttons in b is held.
func (gp *Gamepad) Held(b Button) bool {
	return gp.port.Read()&uint8(b) != 0
}

// Pressed reports whether any of the buttons in b went down since the previous
// frame.
func (gp *Gamepad) Pressed(b Button) bool {
	return ^gp.last&gp.port.Read()&uint8(b) != 0
}

// Released reports whether any of the buttons in b went up since the previous
// frame.
func (gp *Gamepad) Released(b Button) bool {
	return gp.last&^gp.port.Read()&uint8(b) != 0
}

// Events returns the transitions of the current frame, in bit order.
func (gp *Gamepad) Events() []Event {
	cur := gp.port.Read()
	changed := gp.last ^ cur
	if changed == 0 {
		return nil
	}

	var evs []Event
	for i := range 8 {
		bit := uint8(1) << i
		if changed&bit == 0 {
			continue
		}
		ev := Event{Gamepad: gp.idx, Button: Button(bit), Kind: Release}
		if cur&bit != 0 {
			ev.Kind = Press
		}
		evs = append(evs, ev)
	}
	return evs
}

// LateUpdate ends the frame for this gamepad: the current register value
// becomes the reference for the next frame's edges.
func (gp *Gamepad) LateUpdate() {
	cur := gp.port.Read()
	if cur != gp.last {
		log.ModInput.DebugZ("gamepad state").
			Int("pad", gp.idx+1).
			Stringer("prev", Button(gp.last)).
			Stringer("cur", Button(cur)).
			End()
	}
	gp.last = cur
}

package input

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"w4kit/hw/hwio"
)

func newTestPad() (*Gamepad, *hwio.Reg8) {
	reg := &hwio.Reg8{Name: "GAMEPAD1"}
	return NewGamepad(0, reg), reg
}

// For every previous and current state and every bit, check the edges against
// their definition.
func TestGamepadEdgesExhaustive(t *testing.T) {
	gp, reg := newTestPad()

	for prev := range 256 {
		for cur := range 256 {
			reg.Value = uint8(prev)
			gp.LateUpdate()
			reg.Value = uint8(cur)

			for bit := range 8 {
				b := Button(1 << bit)
				mask := uint8(b)

				wantHeld := uint8(cur)&mask != 0
				wantPressed := ^uint8(prev)&uint8(cur)&mask != 0
				wantReleased := uint8(prev)&^uint8(cur)&mask != 0

				held, pressed, released := gp.Held(b), gp.Pressed(b), gp.Released(b)
				if held != wantHeld || pressed != wantPressed || released != wantReleased {
					t.Fatalf("prev=%08b cur=%08b bit=%d: held/pressed/released = %t/%t/%t, want %t/%t/%t",
						prev, cur, bit, held, pressed, released, wantHeld, wantPressed, wantReleased)
				}

				differ := (prev^cur)&int(mask) != 0
				if differ && pressed == released {
					t.Fatalf("prev=%08b cur=%08b bit=%d: want exactly one edge", prev, cur, bit)
				}
				if !differ && (pressed || released) {
					t.Fatalf("prev=%08b cur=%08b bit=%d: unexpected edge", prev, cur, bit)
				}
			}
		}
	}
}

func TestGamepadLateUpdateIdempotent(t *testing.T) {
	gp, reg := newTestPad()

	reg.Value = uint8(Button1 | Up)
	if !gp.Pressed(Button1) || !gp.Pressed(Up) {
		t.Fatalf("Pressed() = false on first frame")
	}

	for i := range 10 {
		gp.LateUpdate()
		for _, b := range Buttons {
			if gp.Pressed(b) || gp.Released(b) {
				t.Fatalf("frame %d: unexpected edge on %v", i, b)
			}
		}
		if !gp.Held(Button1) || !gp.Held(Up) || gp.Held(Down) {
			t.Fatalf("frame %d: Held() mismatch, state=%v", i, gp.State())
		}
		if gp.Events() != nil {
			t.Fatalf("frame %d: Events() = %v, want none", i, gp.Events())
		}
	}
}

// Frame-level simulation of the ordering contract: the host writes the
// register, the application reads input, then LateUpdate runs.
func TestGamepadOrderingContract(t *testing.T) {
	type frame struct {
		state        Button
		wantPressed  bool
		wantReleased bool
	}
	frames := []frame{
		{NoButton, false, false},
		{Button2, true, false},
		{Button2, false, false},
		{NoButton, false, true},
		{NoButton, false, false},
	}

	t.Run("once per frame", func(t *testing.T) {
		gp, reg := newTestPad()
		for i, f := range frames {
			reg.Value = uint8(f.state)
			if got := gp.Pressed(Button2); got != f.wantPressed {
				t.Errorf("frame %d: Pressed() = %t, want %t", i, got, f.wantPressed)
			}
			if got := gp.Released(Button2); got != f.wantReleased {
				t.Errorf("frame %d: Released() = %t, want %t", i, got, f.wantReleased)
			}
			gp.LateUpdate()
		}
	})

	t.Run("never", func(t *testing.T) {
		gp, reg := newTestPad()
		for i, f := range frames[2:] {
			reg.Value = uint8(f.state)
			if f.state != NoButton && !gp.Held(Button2) {
				t.Errorf("frame %d: Held() = false, want true", i)
			}
		}
		// Without snapshots, the edge is relative to the power-on state
		// forever: the release is never seen.
		if gp.Released(Button2) {
			t.Errorf("Released() = true, want false")
		}
		if gp.Last() != NoButton {
			t.Errorf("Last() = %v, want none", gp.Last())
		}
	})

	t.Run("twice", func(t *testing.T) {
		gp, reg := newTestPad()

		// Frame 0: nothing held, LateUpdate called twice, the second time
		// after the host already wrote the next frame's state.
		gp.LateUpdate()
		reg.Value = uint8(Button2)
		gp.LateUpdate()

		// Frame 1: the press is lost.
		if gp.Pressed(Button2) {
			t.Errorf("Pressed() = true, want false after a double LateUpdate")
		}
		if !gp.Held(Button2) {
			t.Errorf("Held() = false, want true")
		}
	})
}

func TestGamepadSubFrameTransitionInvisible(t *testing.T) {
	gp, reg := newTestPad()
	gp.LateUpdate()

	// Pressed and released between two frames.
	reg.Value = uint8(Left)
	reg.Value = 0

	if gp.Pressed(Left) || gp.Released(Left) || gp.Held(Left) {
		t.Errorf("sub-frame transition should not be observed")
	}
}

func TestGamepadEvents(t *testing.T) {
	reg := &hwio.Reg8{}
	gp := NewGamepad(2, reg)

	reg.Value = uint8(Button1 | Down)
	gp.LateUpdate()
	reg.Value = uint8(Button2 | Down | Left)

	want := []Event{
		{Gamepad: 2, Button: Button1, Kind: Release},
		{Gamepad: 2, Button: Button2, Kind: Press},
		{Gamepad: 2, Button: Left, Kind: Press},
	}
	if diff := cmp.Diff(want, gp.Events()); diff != "" {
		t.Errorf("Events() mismatch (-want +got):\n%s", diff)
	}
}

func TestInputs(t *testing.T) {
	var regs [4]hwio.Reg8
	var ports [4]hwio.Port[uint8]
	for i := range regs {
		ports[i] = &regs[i]
	}
	in := NewInputs(ports)

	regs[0].Value = uint8(Button1)
	regs[3].Value = uint8(Right)

	if !in.Gamepad1().Pressed(Button1) || in.Gamepad2().Pressed(Button1) {
		t.Errorf("gamepads are not independent")
	}
	want := []Event{
		{Gamepad: 0, Button: Button1, Kind: Press},
		{Gamepad: 3, Button: Right, Kind: Press},
	}
	if diff := cmp.Diff(want, in.Events()); diff != "" {
		t.Errorf("Events() mismatch (-want +got):\n%s", diff)
	}

	in.LateUpdate()
	if in.Gamepad4().Pressed(Right) || !in.Gamepad4().Held(Right) {
		t.Errorf("Inputs.LateUpdate didn't advance gamepad 4")
	}
	if got := in.Gamepad(3).Index(); got != 3 {
		t.Errorf("Gamepad(3).Index() = %d, want 3", got)
	}
}

func TestButtonText(t *testing.T) {
	tests := []struct {
		text string
		b    *Button // nil for unmarshal errors
		out  string  // expected MarshalText when different from text
	}{
		{"x", ptr(Button1), ""},
		{"z", ptr(Button2), ""},
		{"y", ptr(Button2), "z"},
		{"left|up", ptr(Left | Up), ""},
		{"down|x", ptr(Down | Button1), "x|down"},
		{"", ptr(NoButton), "none"},
		{"none", ptr(NoButton), ""},
		{"LEFT", ptr(Left), "left"},

		{"start", nil, ""},
		{"x||z", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var b Button
			err := b.UnmarshalText([]byte(tt.text))
			if tt.b == nil {
				if err == nil {
					t.Fatalf("UnmarshalText(%q) = %v, want an error", tt.text, b)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText(%q) error: %v", tt.text, err)
			}
			if b != *tt.b {
				t.Fatalf("UnmarshalText(%q) = %v, want %v", tt.text, b, *tt.b)
			}

			want := tt.out
			if want == "" {
				want = tt.text
			}
			text, _ := b.MarshalText()
			if diff := cmp.Diff(want, string(text)); diff != "" {
				t.Errorf("MarshalText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestTransitionString(t *testing.T) {
	if got := Press.String(); got != "pressed" {
		t.Errorf("Press.String() = %q", got)
	}
	if got := Release.String(); got != "released" {
		t.Errorf("Release.String() = %q", got)
	}
}

package input

import (
	"fmt"
	"strings"

	"w4kit/hw/hwdefs"
)

// A Button is a set of gamepad buttons, as a mask of the raw gamepad
// register bits. Most APIs take a single button but accept combinations.
type Button uint8

const (
	Button1 Button = hwdefs.Button1 // X key
	Button2 Button = hwdefs.Button2 // Z key
	Left    Button = hwdefs.Left
	Right   Button = hwdefs.Right
	Up      Button = hwdefs.Up
	Down    Button = hwdefs.Down

	NoButton Button = 0
)

// Buttons lists the buttons wired on a gamepad, in bit order.
var Buttons = [...]Button{Button1, Button2, Left, Right, Up, Down}

var buttonNames = [8]string{
	"x", "z", "bit2", "bit3", "left", "right", "up", "down",
}

func (b Button) String() string {
	if b == NoButton {
		return "none"
	}
	var names []string
	for i := range 8 {
		if b&(1<<i) != 0 {
			names = append(names, buttonNames[i])
		}
	}
	return strings.Join(names, "|")
}

func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a button set as produced by MarshalText, such as "x" or
// "left|up". "y" is accepted as an alias for "z".
func (b *Button) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" || s == "none" {
		*b = NoButton
		return nil
	}

	var mask Button
	for _, name := range strings.Split(s, "|") {
		bit, ok := buttonByName(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown button %q", name)
		}
		mask |= bit
	}
	*b = mask
	return nil
}

func buttonByName(name string) (Button, bool) {
	name = strings.ToLower(name)
	if name == "y" {
		return Button2, true
	}
	for i, s := range buttonNames {
		if s == name {
			return Button(1 << i), true
		}
	}
	return NoButton, false
}

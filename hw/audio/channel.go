package audio

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Channel,DutyCycle,Pan -linecomment

// Channel is one of the 4 independent sound channels, each dedicated to a
// waveform.
type Channel uint8

const (
	Pulse1   Channel = iota // pulse1
	Pulse2                  // pulse2
	Triangle                // triangle
	Noise                   // noise

	numChannels
)

// IsPulse reports whether ch is one of the square wave channels.
func (ch Channel) IsPulse() bool { return ch == Pulse1 || ch == Pulse2 }

// DutyCycle is the ratio of the high part of a pulse wave period.
type DutyCycle uint8

const (
	Duty1_8 DutyCycle = iota // 12.5%
	Duty1_4                  // 25%
	Duty1_2                  // 50%
	Duty3_4                  // 75%

	numDutyCycles
)

// Ratio returns the duty cycle as a fraction of the period.
func (d DutyCycle) Ratio() float64 {
	return [numDutyCycles]float64{0.125, 0.25, 0.5, 0.75}[d&3]
}

// Pan routes a tone to the left speaker, the right one or both.
type Pan uint8

const (
	Center   Pan = iota // center
	PanLeft             // left
	PanRight            // right

	numPans
)

func (ch Channel) MarshalText() ([]byte, error)  { return []byte(ch.String()), nil }
func (d DutyCycle) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (p Pan) MarshalText() ([]byte, error)       { return []byte(p.String()), nil }

func (ch *Channel) UnmarshalText(text []byte) error {
	return unmarshalEnum(ch, text, numChannels, "channel")
}

// UnmarshalText accepts the String form ("12.5%") as well as "1/8", "1/4",
// "1/2" and "3/4".
func (d *DutyCycle) UnmarshalText(text []byte) error {
	switch strings.TrimSpace(string(text)) {
	case "1/8":
		*d = Duty1_8
	case "1/4":
		*d = Duty1_4
	case "1/2":
		*d = Duty1_2
	case "3/4":
		*d = Duty3_4
	default:
		return unmarshalEnum(d, text, numDutyCycles, "duty cycle")
	}
	return nil
}

func (p *Pan) UnmarshalText(text []byte) error {
	return unmarshalEnum(p, text, numPans, "pan")
}

func unmarshalEnum[E ~uint8](e *E, text []byte, n E, what string) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for v := range n {
		if fmt.Sprint(v) == s {
			*e = v
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", what, text)
}

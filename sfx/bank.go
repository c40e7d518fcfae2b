// Package sfx handles sound effect banks: TOML files describing named tones,
// rendered to WAV files or played on the host audio device.
package sfx

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"w4kit/hw/audio"
)

// A Bank is a set of named sound effects.
//
//	[effects.jump]
//	freq = [262, 523]     # start and end frequencies in Hz, or a single one
//	attack = 0            # ADSR durations, in frames
//	decay = 4
//	sustain = 10
//	release = 6
//	volume = [100, 50]    # peak and sustain volumes in percent, or a single one
//	channel = "pulse1"    # pulse1, pulse2, triangle or noise
//	duty = "25%"          # 12.5%, 25%, 50% or 75%, pulse channels only
//	pan = "center"        # center, left or right
type Bank struct {
	Effects map[string]Effect `toml:"effects"`
}

type Effect struct {
	Freq    []uint16        `toml:"freq"`
	Attack  uint8           `toml:"attack"`
	Decay   uint8           `toml:"decay"`
	Sustain uint8           `toml:"sustain"`
	Release uint8           `toml:"release"`
	Volume  []uint8         `toml:"volume"`
	Channel audio.Channel   `toml:"channel"`
	Duty    audio.DutyCycle `toml:"duty"`
	Pan     audio.Pan       `toml:"pan"`
}

// Tone validates e and returns the tone it describes.
func (e Effect) Tone() (audio.Tone, error) {
	var t audio.Tone

	switch len(e.Freq) {
	case 1:
		t.Freq = audio.ConstantFrequency(e.Freq[0])
	case 2:
		t.Freq = audio.LinearFrequency(e.Freq[0], e.Freq[1])
	default:
		return t, fmt.Errorf("freq: want 1 or 2 values, got %d", len(e.Freq))
	}

	t.Envelope = audio.NewEnvelope(
		audio.Frames(e.Attack),
		audio.Frames(e.Decay),
		audio.Frames(e.Sustain),
		audio.Frames(e.Release),
	)
	if t.Envelope.Frames() == 0 {
		return t, fmt.Errorf("envelope: zero duration")
	}

	var err error
	switch len(e.Volume) {
	case 0:
		t.Volume = audio.DefaultVolume
	case 1:
		t.Volume, err = audio.ConstantVolume(e.Volume[0])
	case 2:
		t.Volume, err = audio.NewVolume(e.Volume[0], e.Volume[1])
	default:
		err = fmt.Errorf("want 1 or 2 values, got %d", len(e.Volume))
	}
	if err != nil {
		return t, fmt.Errorf("volume: %w", err)
	}

	if t.Flags, err = audio.NewFlags(e.Channel, e.Duty, e.Pan); err != nil {
		return t, err
	}
	return t, nil
}

// DecodeBank reads a bank in TOML format. Unknown keys are errors.
func DecodeBank(r io.Reader) (*Bank, error) {
	var b Bank
	md, err := toml.NewDecoder(r).Decode(&b)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	for name := range b.Effects {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("invalid effect name %q", name)
		}
	}
	return &b, nil
}

// Names returns the effect names, sorted.
func (b *Bank) Names() []string {
	return slices.Sorted(maps.Keys(b.Effects))
}

// Tone returns the tone of the effect with the given name.
func (b *Bank) Tone(name string) (audio.Tone, error) {
	e, ok := b.Effects[name]
	if !ok {
		return audio.Tone{}, fmt.Errorf("no effect named %q", name)
	}
	t, err := e.Tone()
	if err != nil {
		return t, fmt.Errorf("effect %q: %w", name, err)
	}
	return t, nil
}

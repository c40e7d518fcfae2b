// Package audio encodes the parameters of the console tone generator
// (frequency, ADSR durations, volume and flags) into the words expected by the
// host, and decodes them back.
package audio

import "w4kit/emu/log"

// A ToneGenerator implements the host tone call.
type ToneGenerator interface {
	Tone(freq, duration, volume, flags uint32)
}

// Audio is the application's access to the sound system.
type Audio struct {
	gen ToneGenerator
}

func NewAudio(gen ToneGenerator) *Audio {
	return &Audio{gen: gen}
}

// Tone plays a tone.
func (a *Audio) Tone(freq Frequency, env Envelope, vol Volume, flags Flags) {
	a.Play(Tone{Freq: freq, Envelope: env, Volume: vol, Flags: flags})
}

// Play plays t. A tone whose volume or flags are out of range is logged and
// never reaches the host.
func (a *Audio) Play(t Tone) {
	if err := t.Check(); err != nil {
		log.ModSound.ErrorZ("invalid tone").Stringer("tone", t).Error("err", err).End()
		return
	}
	w := t.Words()
	log.ModSound.DebugZ("tone").
		Hex32("freq", w[0]).
		Hex32("duration", w[1]).
		Hex32("volume", w[2]).
		Hex32("flags", w[3]).
		End()
	a.gen.Tone(w[0], w[1], w[2], w[3])
}

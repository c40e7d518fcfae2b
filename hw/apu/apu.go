// Package apu synthesizes the tones of the console: two pulse channels, a
// triangle channel and a noise channel, mixed in stereo.
package apu

import (
	"fmt"

	"w4kit/emu/log"
	"w4kit/hw/audio"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

// Synth plays tones and produces 16-bit stereo samples, one frame at a time.
type Synth struct {
	mixer *Mixer

	chans [hwdefs.NumToneChannels]channel

	// Bit n is set while channel n is playing.
	STATUS hwio.Reg8 `hwio:"readonly,rcb"`
}

// New returns a synthesizer producing samples at sampleRate Hz.
func New(sampleRate int) (*Synth, error) {
	if err := hwio.CheckRange("sample rate", sampleRate, MinSampleRate, MaxSampleRate); err != nil {
		return nil, err
	}

	s := &Synth{mixer: NewMixer(sampleRate)}
	s.chans = [...]channel{
		audio.Pulse1:   newPulseChannel(s.mixer),
		audio.Pulse2:   newPulseChannel(s.mixer),
		audio.Triangle: newTriangleChannel(s.mixer),
		audio.Noise:    newNoiseChannel(s.mixer),
	}

	if err := hwio.InitRegs(s); err != nil {
		return nil, fmt.Errorf("apu: %v", err)
	}
	return s, nil
}

func (s *Synth) SampleRate() int { return s.mixer.sampleRate }

// SamplesPerFrame returns the approximate number of stereo samples produced
// by each frame.
func (s *Synth) SamplesPerFrame() int {
	return (s.mixer.sampleRate + hwdefs.FrameRate - 1) / hwdefs.FrameRate
}

func (s *Synth) Reset() {
	for _, ch := range s.chans {
		ch.reset()
	}
	s.mixer.Reset()
}

// Play starts t on its channel, replacing the tone it was playing.
func (s *Synth) Play(t audio.Tone) {
	log.ModSound.DebugZ("play tone").
		Stringer("channel", t.Flags.Channel()).
		Stringer("freq", t.Freq).
		Stringer("env", t.Envelope).
		Stringer("vol", t.Volume).
		End()
	s.chans[t.Flags.Channel()&3].start(t)
}

// EndFrame runs all channels until the end of the current frame and makes the
// frame samples available.
func (s *Synth) EndFrame() {
	for _, ch := range s.chans {
		ch.run(cyclesPerFrame)
		ch.endFrame()
	}
	s.mixer.EndFrame(cyclesPerFrame)
}

// ReadSamples reads interleaved stereo samples into out. See Mixer.ReadSamples.
func (s *Synth) ReadSamples(out []int16) int {
	return s.mixer.ReadSamples(out)
}

// SamplesAvailable returns the number of stereo samples ready to be read.
func (s *Synth) SamplesAvailable() int {
	return s.mixer.SamplesAvailable()
}

func (s *Synth) ReadSTATUS(_ uint8) uint8 {
	var status uint8
	for i, ch := range s.chans {
		if ch.active() {
			status |= 1 << i
		}
	}
	return status
}

// Busy reports whether a channel is still playing.
func (s *Synth) Busy() bool {
	return s.STATUS.Read() != 0
}

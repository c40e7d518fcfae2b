package apu

import "w4kit/hw/audio"

// Virtual clock of the synthesizer. Channel timers count cycles of this clock,
// and a frame lasts exactly cyclesPerFrame cycles.
const (
	cyclesPerFrame = 16000
	clockRate      = cyclesPerFrame * 60
)

// Amplitude of a channel playing at 100% volume.
const maxAmplitude = 6000

type mixer interface {
	AddDelta(pan audio.Pan, time uint32, delta int16)
}

type channel interface {
	start(t audio.Tone)
	run(targetCycle uint32)
	endFrame()
	active() bool
	reset()
}

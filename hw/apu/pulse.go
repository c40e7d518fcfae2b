package apu

import "w4kit/hw/audio"

// voice holds what all channels share: a timer clocking the waveform
// sequencer and a volume envelope. The frequency slides, if requested, over
// the whole envelope length.
type voice struct {
	timer timer
	env   envelope
	freq  audio.Frequency
	steps int // sequencer steps per waveform period
}

func (v *voice) start(t audio.Tone) {
	v.env.start(t.Envelope, t.Volume)
	v.freq = t.Freq
	v.timer.pan = t.Flags.Pan()
	v.updatePeriod()
}

func (v *voice) updatePeriod() {
	if !v.env.active() {
		v.timer.period = 0
		return
	}
	v.timer.setFrequency(v.freq.At(v.env.elapsed, v.env.length()), v.steps)
}

func (v *voice) endFrame() {
	v.timer.endFrame()
	v.env.tick()
	v.updatePeriod()
	if !v.env.active() {
		v.timer.addOutput(0)
	}
}

func (v *voice) active() bool {
	return v.env.active()
}

func (v *voice) resetVoice() {
	v.timer.reset()
	v.env.reset()
	v.freq = audio.Frequency{}
}

var dutySteps = [4]uint8{1, 2, 4, 6}

// pulseChannel generates a square wave, high during the first part of its 8
// steps sequence, as set by the duty cycle.
type pulseChannel struct {
	voice

	duty audio.DutyCycle
	pos  uint8
}

func newPulseChannel(m mixer) *pulseChannel {
	pc := &pulseChannel{voice: voice{steps: 8}}
	pc.timer.mixer = m
	return pc
}

func (pc *pulseChannel) start(t audio.Tone) {
	pc.duty = t.Flags.Duty()
	pc.pos = 0
	pc.voice.start(t)
}

func (pc *pulseChannel) run(targetCycle uint32) {
	for pc.timer.run(targetCycle) {
		pc.pos = (pc.pos + 1) & 0x07

		amp := pc.env.amplitude()
		if pc.pos >= dutySteps[pc.duty&3] {
			amp = -amp
		}
		pc.timer.addOutput(amp)
	}
}

func (pc *pulseChannel) reset() {
	pc.resetVoice()
	pc.duty = audio.Duty1_8
	pc.pos = 0
}

package apu

// noiseChannel generates pseudo-random 1-bit noise from a 15-bit linear
// feedback shift register, shifted once per period of the tone frequency.
//
//	Timer --> Shift Register
//	              |
//	              v
//	Envelope --> Gate --> (to mixer)
type noiseChannel struct {
	voice

	shiftReg uint16
}

func newNoiseChannel(m mixer) *noiseChannel {
	nc := &noiseChannel{voice: voice{steps: 1}, shiftReg: 1}
	nc.timer.mixer = m
	return nc
}

func (nc *noiseChannel) run(targetCycle uint32) {
	for nc.timer.run(targetCycle) {
		// Feedback is the exclusive-OR of bits 0 and 1.
		feedback := (nc.shiftReg & 0x01) ^ ((nc.shiftReg >> 1) & 0x01)
		nc.shiftReg >>= 1
		nc.shiftReg |= feedback << 14

		amp := nc.env.amplitude()
		if nc.shiftReg&0x01 != 0 {
			amp = -amp
		}
		nc.timer.addOutput(amp)
	}
}

func (nc *noiseChannel) reset() {
	nc.resetVoice()
	nc.shiftReg = 1
}

package apu

// triangleChannel steps through a 32 steps triangle sequence. It has no duty
// cycle, and its volume envelope scales the whole sequence.
type triangleChannel struct {
	voice

	pos uint8 // current position on "triangleSequence".
}

func newTriangleChannel(m mixer) *triangleChannel {
	tc := &triangleChannel{voice: voice{steps: 32}}
	tc.timer.mixer = m
	return tc
}

var triangleSequence = [32]int8{
	15, 14, 13, 12, 11, 10, 9, 8,
	7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
}

func (tc *triangleChannel) run(targetCycle uint32) {
	for tc.timer.run(targetCycle) {
		tc.pos = (tc.pos + 1) & 0x1F

		// Center the sequence around 0: levels go from -amp to +amp.
		lvl := int32(triangleSequence[tc.pos])*2 - 15
		tc.timer.addOutput(int16(lvl * int32(tc.env.amplitude()) / 15))
	}
}

func (tc *triangleChannel) reset() {
	tc.resetVoice()
	tc.pos = 0
}

package apu

import "w4kit/hw/audio"

// timer divides the clock by period and tracks the last level sent to the
// mixer, so that only level changes are emitted.
type timer struct {
	previousCycle uint32
	timer         uint32
	period        uint32 // 0 means stopped
	lastOutput    int16

	pan   audio.Pan
	mixer mixer
}

func (t *timer) reset() {
	t.timer = 0
	t.period = 0
	t.previousCycle = 0
	t.lastOutput = 0
}

func (t *timer) addOutput(output int16) {
	if output != t.lastOutput {
		t.mixer.AddDelta(t.pan, t.previousCycle, output-t.lastOutput)
		t.lastOutput = output
	}
}

// run advances the timer up to targetCycle. It returns true each time the
// period elapses, and must be called until it returns false.
func (t *timer) run(targetCycle uint32) bool {
	if t.period == 0 {
		t.previousCycle = targetCycle
		return false
	}

	cyclesToRun := targetCycle - t.previousCycle
	if cyclesToRun > t.timer {
		t.previousCycle += t.timer + 1
		t.timer = t.period - 1
		return true
	}

	t.timer -= cyclesToRun
	t.previousCycle = targetCycle
	return false
}

func (t *timer) endFrame() {
	t.previousCycle = 0
}

// setFrequency sets the period so that steps ticks happen per cycle of a wave
// of frequency hz. Frequencies too low to be heard stop the timer.
func (t *timer) setFrequency(hz float64, steps int) {
	if hz < 1 {
		t.period = 0
		return
	}
	t.period = max(uint32(clockRate/(hz*float64(steps))), 1)
}

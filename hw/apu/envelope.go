package apu

import "w4kit/hw/audio"

// envelope computes the volume of a tone at each frame, following the ADSR
// durations:
//
//	volume
//	 peak  |   /\
//	       |  /  \
//	sustain| /    +--------+
//	       |/              \
//	     0 +----------------+---> frames
//	        |A |D |   S    |R|
type envelope struct {
	adsr    audio.Envelope
	vol     audio.Volume
	elapsed int // frames since the tone started
}

func (env *envelope) start(adsr audio.Envelope, vol audio.Volume) {
	env.adsr = adsr
	env.vol = vol
	env.elapsed = 0
}

func (env *envelope) reset() {
	*env = envelope{}
}

func (env *envelope) length() int {
	return env.adsr.Frames()
}

func (env *envelope) active() bool {
	return env.elapsed < env.length()
}

func (env *envelope) tick() {
	if env.active() {
		env.elapsed++
	}
}

// volume returns the current volume, in percent.
func (env *envelope) volume() float64 {
	a := int(env.adsr.Attack)
	d := int(env.adsr.Decay)
	s := int(env.adsr.Sustain)
	r := int(env.adsr.Release)
	peak := float64(env.vol.Peak())
	sustain := float64(env.vol.Sustain())

	t := env.elapsed
	switch {
	case t < a:
		return peak * float64(t) / float64(a)
	case t < a+d:
		return peak + (sustain-peak)*float64(t-a)/float64(d)
	case t < a+d+s:
		return sustain
	case t < a+d+s+r:
		return sustain * (1 - float64(t-a-d-s)/float64(r))
	}
	return 0
}

// amplitude returns the current channel amplitude.
func (env *envelope) amplitude() int16 {
	return int16(env.volume() * maxAmplitude / audio.MaxVolume)
}

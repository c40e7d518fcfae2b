package audio

import (
	"fmt"

	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

// Layout of the words passed to the host tone call.
var (
	freqStart = hwio.NewField[uint32]("freq.start", 0, 16)
	freqEnd   = hwio.NewField[uint32]("freq.end", 16, 16)

	envSustain = hwio.NewField[uint32]("duration.sustain", 0, 8)
	envRelease = hwio.NewField[uint32]("duration.release", 8, 8)
	envDecay   = hwio.NewField[uint32]("duration.decay", 16, 8)
	envAttack  = hwio.NewField[uint32]("duration.attack", 24, 8)

	volSustain = hwio.NewField[uint32]("volume.sustain", 0, 8)
	volPeak    = hwio.NewField[uint32]("volume.peak", 8, 8)

	flagChannel = hwio.NewField[uint32]("flags.channel", 0, 2)
	flagDuty    = hwio.NewField[uint32]("flags.duty", 2, 2)
	flagPan     = hwio.NewField[uint32]("flags.pan", 4, 2)
)

// Frequency is the frequency of a tone, in Hz. The tone slides linearly from
// Start to End over its whole duration. End is 0 for a constant frequency.
type Frequency struct {
	Start, End uint16
}

// ConstantFrequency returns a frequency of hz Hertz.
func ConstantFrequency(hz uint16) Frequency {
	return Frequency{Start: hz}
}

// LinearFrequency returns a frequency sliding from start to end Hertz.
func LinearFrequency(start, end uint16) Frequency {
	return Frequency{Start: start, End: end}
}

// At returns the frequency at time t of a tone of total length n (same unit).
func (f Frequency) At(t, n int) float64 {
	if f.End == 0 || n <= 0 {
		return float64(f.Start)
	}
	start, end := float64(f.Start), float64(f.End)
	return start + (end-start)*float64(t)/float64(n)
}

func (f Frequency) Word() uint32 {
	var w uint32
	w = freqStart.Set(w, uint32(f.Start))
	w = freqEnd.Set(w, uint32(f.End))
	return w
}

func DecodeFrequency(w uint32) Frequency {
	return Frequency{
		Start: uint16(freqStart.Get(w)),
		End:   uint16(freqEnd.Get(w)),
	}
}

func (f Frequency) String() string {
	if f.End == 0 {
		return fmt.Sprintf("%dHz", f.Start)
	}
	return fmt.Sprintf("%d-%dHz", f.Start, f.End)
}

// Duration is a tone duration in frames, 1/60s each.
type Duration uint8

const msPerFrame = 16

// Frames returns a duration of n frames.
func Frames(n uint8) Duration { return Duration(n) }

// Millis returns the duration closest to ms milliseconds, counting 16ms per
// frame and truncating. ms must be in [0, 4095].
func Millis(ms int) (Duration, error) {
	if err := hwio.CheckRange("duration (ms)", ms, 0, 255*msPerFrame+msPerFrame-1); err != nil {
		return 0, err
	}
	return Duration(ms / msPerFrame), nil
}

// Envelope holds the ADSR durations of a tone:
//
//	Attack:  time to ramp up from 0 to the peak volume.
//	Decay:   time to ramp down from the peak to the sustain volume.
//	Sustain: time to hold the sustain volume.
//	Release: time to ramp down from the sustain volume to 0.
type Envelope struct {
	Attack, Decay, Sustain, Release Duration
}

func NewEnvelope(attack, decay, sustain, release Duration) Envelope {
	return Envelope{attack, decay, sustain, release}
}

// ConstantEnvelope returns an envelope made of a sustain phase only.
func ConstantEnvelope(d Duration) Envelope {
	return Envelope{Sustain: d}
}

// Frames returns the total length of the envelope, in frames.
func (e Envelope) Frames() int {
	return int(e.Attack) + int(e.Decay) + int(e.Sustain) + int(e.Release)
}

func (e Envelope) Word() uint32 {
	var w uint32
	w = envSustain.Set(w, uint32(e.Sustain))
	w = envRelease.Set(w, uint32(e.Release))
	w = envDecay.Set(w, uint32(e.Decay))
	w = envAttack.Set(w, uint32(e.Attack))
	return w
}

func DecodeEnvelope(w uint32) Envelope {
	return Envelope{
		Attack:  Duration(envAttack.Get(w)),
		Decay:   Duration(envDecay.Get(w)),
		Sustain: Duration(envSustain.Get(w)),
		Release: Duration(envRelease.Get(w)),
	}
}

func (e Envelope) String() string {
	return fmt.Sprintf("a=%d,d=%d,s=%d,r=%d", e.Attack, e.Decay, e.Sustain, e.Release)
}

// MaxVolume is the maximum volume percentage.
const MaxVolume = 100

// Volume holds the volume percentages of a tone: the peak is reached at the
// end of the attack, the sustain volume is held during the sustain phase.
// Volumes are built by NewVolume or ConstantVolume, so they're always in
// range.
type Volume struct {
	peak, sustain uint8
}

// DefaultVolume is a constant volume of 100%.
var DefaultVolume = Volume{peak: MaxVolume, sustain: MaxVolume}

// NewVolume returns a validated volume. Both percentages must be in [0, 100].
func NewVolume(peak, sustain uint8) (Volume, error) {
	if err := hwio.CheckRange("peak volume", peak, 0, MaxVolume); err != nil {
		return Volume{}, err
	}
	if err := hwio.CheckRange("sustain volume", sustain, 0, MaxVolume); err != nil {
		return Volume{}, err
	}
	return Volume{peak: peak, sustain: sustain}, nil
}

// ConstantVolume returns a validated volume whose peak and sustain are both v.
func ConstantVolume(v uint8) (Volume, error) {
	if err := hwio.CheckRange("volume", v, 0, MaxVolume); err != nil {
		return Volume{}, err
	}
	return Volume{peak: v, sustain: v}, nil
}

// MustVolume is like NewVolume but panics on error.
func MustVolume(peak, sustain uint8) Volume {
	v, err := NewVolume(peak, sustain)
	if err != nil {
		panic(err)
	}
	return v
}

// MustConstantVolume is like ConstantVolume but panics on error.
func MustConstantVolume(v uint8) Volume {
	vol, err := ConstantVolume(v)
	if err != nil {
		panic(err)
	}
	return vol
}

func (v Volume) Peak() uint8    { return v.peak }
func (v Volume) Sustain() uint8 { return v.sustain }

func (v Volume) Equal(o Volume) bool { return v == o }

func (v Volume) check() error {
	if v.peak > MaxVolume {
		return &hwio.DecodeError{Field: volPeak.Name, Value: uint32(v.peak)}
	}
	if v.sustain > MaxVolume {
		return &hwio.DecodeError{Field: volSustain.Name, Value: uint32(v.sustain)}
	}
	return nil
}

func (v Volume) Word() uint32 {
	var w uint32
	w = volSustain.Set(w, uint32(v.sustain))
	w = volPeak.Set(w, uint32(v.peak))
	return w
}

// DecodeVolume decodes a volume word. Percentages above 100 are reported as
// a *hwio.DecodeError.
func DecodeVolume(w uint32) (Volume, error) {
	v := Volume{
		peak:    uint8(volPeak.Get(w)),
		sustain: uint8(volSustain.Get(w)),
	}
	if err := v.check(); err != nil {
		return Volume{}, err
	}
	return v, nil
}

func (v Volume) String() string {
	if v.peak == v.sustain {
		return fmt.Sprintf("%d%%", v.sustain)
	}
	return fmt.Sprintf("%d%%/%d%%", v.peak, v.sustain)
}

// Flags selects the channel playing a tone, its duty cycle and its stereo
// panning. Flags are built by NewFlags.
type Flags struct {
	ch   Channel
	duty DutyCycle // pulse channels only
	pan  Pan
}

// NewFlags returns validated flags.
func NewFlags(ch Channel, duty DutyCycle, pan Pan) (Flags, error) {
	f := Flags{ch: ch, duty: duty, pan: pan}
	if err := f.check(); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// MustFlags is like NewFlags but panics on error.
func MustFlags(ch Channel, duty DutyCycle, pan Pan) Flags {
	f, err := NewFlags(ch, duty, pan)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Flags) Channel() Channel { return f.ch }
func (f Flags) Duty() DutyCycle  { return f.duty }
func (f Flags) Pan() Pan         { return f.pan }

func (f Flags) Equal(o Flags) bool { return f == o }

func (f Flags) check() error {
	if err := hwio.CheckRange("channel", f.ch, 0, numChannels-1); err != nil {
		return err
	}
	if err := hwio.CheckRange("duty cycle", f.duty, 0, numDutyCycles-1); err != nil {
		return err
	}
	return hwio.CheckRange("pan", f.pan, 0, numPans-1)
}

func (f Flags) Word() uint32 {
	var w uint32
	w = flagChannel.Set(w, uint32(f.ch))
	w = flagDuty.Set(w, uint32(f.duty))
	w = flagPan.Set(w, uint32(f.pan))
	return w
}

// DecodeFlags decodes a flags word. The pan value 3 is reported as a
// *hwio.DecodeError.
func DecodeFlags(w uint32) (Flags, error) {
	pan := flagPan.Get(w)
	if pan >= uint32(numPans) {
		return Flags{}, &hwio.DecodeError{Field: flagPan.Name, Value: pan}
	}
	return Flags{
		ch:   Channel(flagChannel.Get(w)),
		duty: DutyCycle(flagDuty.Get(w)),
		pan:  Pan(pan),
	}, nil
}

func (f Flags) String() string {
	if f.ch.IsPulse() {
		return fmt.Sprintf("%s,%s,%s", f.ch, f.duty, f.pan)
	}
	return fmt.Sprintf("%s,%s", f.ch, f.pan)
}

// Tone gathers the parameters of a host tone call.
type Tone struct {
	Freq     Frequency
	Envelope Envelope
	Volume   Volume
	Flags    Flags
}

// Words returns the 4 words passed to the host tone call: frequency,
// duration, volume and flags.
func (t Tone) Words() [4]uint32 {
	return [4]uint32{t.Freq.Word(), t.Envelope.Word(), t.Volume.Word(), t.Flags.Word()}
}

// DecodeTone decodes the 4 words of a tone call.
func DecodeTone(freq, duration, volume, flags uint32) (Tone, error) {
	vol, err := DecodeVolume(volume)
	if err != nil {
		return Tone{}, err
	}
	fl, err := DecodeFlags(flags)
	if err != nil {
		return Tone{}, err
	}
	return Tone{
		Freq:     DecodeFrequency(freq),
		Envelope: DecodeEnvelope(duration),
		Volume:   vol,
		Flags:    fl,
	}, nil
}

// Check reports whether the volume and flags of t are in range.
func (t Tone) Check() error {
	if err := t.Volume.check(); err != nil {
		return err
	}
	return t.Flags.check()
}

// Frames returns the tone length in frames.
func (t Tone) Frames() int { return t.Envelope.Frames() }

// Seconds returns the tone length in seconds.
func (t Tone) Seconds() float64 { return float64(t.Frames()) / hwdefs.FrameRate }

func (t Tone) String() string {
	return fmt.Sprintf("%v %v %v %v", t.Freq, t.Envelope, t.Volume, t.Flags)
}

package apu

import (
	"errors"
	"testing"

	"w4kit/hw/audio"
	"w4kit/hw/hwio"
)

func newTestSynth(t *testing.T) *Synth {
	t.Helper()
	s, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// runFrames runs n frames and returns the peak absolute level of the left and
// right samples produced.
func runFrames(s *Synth, n int) (left, right int) {
	buf := make([]int16, 2*s.SamplesPerFrame()+16)
	for range n {
		s.EndFrame()
		for s.SamplesAvailable() > 0 {
			cnt := s.ReadSamples(buf)
			for i := range cnt {
				left = max(left, abs(int(buf[2*i])))
				right = max(right, abs(int(buf[2*i+1])))
			}
		}
	}
	return left, right
}

func TestSamplesAvailable(t *testing.T) {
	s := newTestSynth(t)
	if n := s.SamplesAvailable(); n != 0 {
		t.Fatalf("SamplesAvailable() = %d before the first frame, want 0", n)
	}

	s.EndFrame()
	n := s.SamplesAvailable()
	if spf := s.SamplesPerFrame(); n < spf-1 || n > spf+1 {
		t.Errorf("SamplesAvailable() = %d after a frame, want about %d", n, spf)
	}

	buf := make([]int16, 2*n)
	if got := s.ReadSamples(buf); got != n {
		t.Errorf("ReadSamples() = %d, want %d", got, n)
	}
	if got := s.SamplesAvailable(); got != 0 {
		t.Errorf("SamplesAvailable() = %d after reading, want 0", got)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestNewSampleRate(t *testing.T) {
	for _, rate := range []int{0, 7999, 96001} {
		_, err := New(rate)
		var rerr *hwio.RangeError
		if !errors.As(err, &rerr) {
			t.Errorf("New(%d) error = %v, want a *hwio.RangeError", rate, err)
		}
	}
}

func TestSilence(t *testing.T) {
	s := newTestSynth(t)
	if s.Busy() {
		t.Fatalf("Busy() = true at power on")
	}
	if l, r := runFrames(s, 10); l != 0 || r != 0 {
		t.Errorf("peak levels = %d/%d, want silence", l, r)
	}
}

func TestToneDuration(t *testing.T) {
	tests := []struct {
		name string
		ch   audio.Channel
	}{
		{"pulse1", audio.Pulse1},
		{"pulse2", audio.Pulse2},
		{"triangle", audio.Triangle},
		{"noise", audio.Noise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynth(t)
			s.Play(audio.Tone{
				Freq:     audio.ConstantFrequency(440),
				Envelope: audio.NewEnvelope(2, 2, 4, 2),
				Volume:   audio.MustVolume(100, 50),
				Flags:    audio.MustFlags(tt.ch, audio.Duty1_2, audio.Center),
			})

			if got := s.STATUS.Read(); got != 1<<tt.ch {
				t.Fatalf("STATUS = %02x, want %02x", got, 1<<tt.ch)
			}

			l, r := runFrames(s, 9)
			if l == 0 || r == 0 {
				t.Errorf("peak levels = %d/%d, want sound on both sides", l, r)
			}
			if !s.Busy() {
				t.Fatalf("Busy() = false before the end of the tone")
			}

			runFrames(s, 1)
			if s.Busy() {
				t.Errorf("Busy() = true after the end of the tone")
			}

			// Let the band-limited output settle, then expect silence.
			runFrames(s, 10)
			if l, r := runFrames(s, 5); l > 64 || r > 64 {
				t.Errorf("peak levels = %d/%d after tone end, want silence", l, r)
			}
		})
	}
}

func TestPan(t *testing.T) {
	tests := []struct {
		pan       audio.Pan
		wantLeft  bool
		wantRight bool
	}{
		{audio.Center, true, true},
		{audio.PanLeft, true, false},
		{audio.PanRight, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.pan.String(), func(t *testing.T) {
			s := newTestSynth(t)
			s.Play(audio.Tone{
				Freq:     audio.ConstantFrequency(262),
				Envelope: audio.ConstantEnvelope(10),
				Volume:   audio.DefaultVolume,
				Flags:    audio.MustFlags(audio.Pulse1, audio.Duty1_4, tt.pan),
			})
			l, r := runFrames(s, 10)
			if (l != 0) != tt.wantLeft || (r != 0) != tt.wantRight {
				t.Errorf("peak levels = %d/%d, want left %t right %t", l, r, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestToneRestart(t *testing.T) {
	s := newTestSynth(t)
	tone := audio.Tone{
		Freq:     audio.LinearFrequency(200, 800),
		Envelope: audio.ConstantEnvelope(5),
		Volume:   audio.DefaultVolume,
		Flags:    audio.MustFlags(audio.Triangle, 0, audio.Center),
	}
	s.Play(tone)
	runFrames(s, 4)
	s.Play(tone)
	runFrames(s, 4)
	if !s.Busy() {
		t.Errorf("Busy() = false, restarted tone should still play")
	}
	runFrames(s, 1)
	if s.Busy() {
		t.Errorf("Busy() = true after the restarted tone ended")
	}
}

func TestEnvelopeVolume(t *testing.T) {
	var env envelope
	env.start(audio.NewEnvelope(2, 2, 2, 2), audio.MustVolume(100, 50))

	want := []float64{0, 50, 100, 75, 50, 50, 50, 25, 0, 0}
	for i, w := range want {
		if got := env.volume(); got != w {
			t.Errorf("frame %d: volume() = %v, want %v", i, got, w)
		}
		env.tick()
	}
	if env.active() {
		t.Errorf("active() = true after the envelope end")
	}
}

func TestTimer(t *testing.T) {
	tm := timer{period: 4, mixer: nopMixer{}}
	ticks := 0
	for tm.run(16) {
		ticks++
	}
	if ticks != 4 {
		t.Errorf("timer ticked %d times over 16 cycles with period 4, want 4", ticks)
	}

	tm = timer{mixer: nopMixer{}}
	if tm.run(16) {
		t.Errorf("stopped timer ticked")
	}
}

type nopMixer struct{}

func (nopMixer) AddDelta(audio.Pan, uint32, int16) {}

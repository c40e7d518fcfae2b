package sfx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"

	"w4kit/hw/audio"
	"w4kit/hw/hwio"
)

const testBank = `
[effects.jump]
freq = [262, 523]
decay = 4
sustain = 10
release = 6
volume = [100, 50]
channel = "pulse1"
duty = "25%"

[effects.hit]
freq = [100]
sustain = 3
volume = [80]
channel = "noise"
pan = "left"

[effects.beep]
freq = [880]
sustain = 2
channel = "triangle"
pan = "right"
`

func decodeTestBank(t *testing.T, s string) *Bank {
	t.Helper()
	b, err := DecodeBank(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecodeBank(t *testing.T) {
	b := decodeTestBank(t, testBank)

	if diff := cmp.Diff([]string{"beep", "hit", "jump"}, b.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	want := map[string]audio.Tone{
		"jump": {
			Freq:     audio.LinearFrequency(262, 523),
			Envelope: audio.NewEnvelope(0, 4, 10, 6),
			Volume:   audio.MustVolume(100, 50),
			Flags:    audio.MustFlags(audio.Pulse1, audio.Duty1_4, audio.Center),
		},
		"hit": {
			Freq:     audio.ConstantFrequency(100),
			Envelope: audio.ConstantEnvelope(3),
			Volume:   audio.MustConstantVolume(80),
			Flags:    audio.MustFlags(audio.Noise, audio.Duty1_8, audio.PanLeft),
		},
		"beep": {
			Freq:     audio.ConstantFrequency(880),
			Envelope: audio.ConstantEnvelope(2),
			Volume:   audio.DefaultVolume,
			Flags:    audio.MustFlags(audio.Triangle, audio.Duty1_8, audio.PanRight),
		},
	}
	for name, w := range want {
		got, err := b.Tone(name)
		if err != nil {
			t.Errorf("Tone(%q) error: %v", name, err)
			continue
		}
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("Tone(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := b.Tone("missing"); err == nil {
		t.Errorf("Tone(missing) should fail")
	}
}

func TestDecodeBankErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[effects.a]\nfreq = [1]\nsustain = 1\nloud = true\n"},
		{"unknown channel", "[effects.a]\nfreq = [1]\nchannel = \"saw\"\n"},
		{"invalid duty", "[effects.a]\nduty = \"33%\"\n"},
		{"duration overflow", "[effects.a]\nsustain = 256\n"},
		{"invalid name", "[effects.\"a/b\"]\nfreq = [1]\n"},
		{"syntax", "[effects.a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBank(strings.NewReader(tt.toml)); err == nil {
				t.Errorf("DecodeBank() should fail")
			}
		})
	}
}

func TestEffectToneErrors(t *testing.T) {
	tests := []struct {
		name      string
		eff       Effect
		wantRange bool
	}{
		{"no freq", Effect{Sustain: 1}, false},
		{"3 freqs", Effect{Freq: []uint16{1, 2, 3}, Sustain: 1}, false},
		{"no duration", Effect{Freq: []uint16{440}}, false},
		{"3 volumes", Effect{Freq: []uint16{440}, Sustain: 1, Volume: []uint8{1, 2, 3}}, false},
		{"volume 101", Effect{Freq: []uint16{440}, Sustain: 1, Volume: []uint8{101}}, true},
		{"peak 101", Effect{Freq: []uint16{440}, Sustain: 1, Volume: []uint8{101, 50}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.eff.Tone()
			if err == nil {
				t.Fatalf("Tone() should fail")
			}
			var rerr *hwio.RangeError
			if got := errors.As(err, &rerr); got != tt.wantRange {
				t.Errorf("Tone() error = %v, is RangeError: %t, want %t", err, got, tt.wantRange)
			}
		})
	}
}

func TestRender(t *testing.T) {
	b := decodeTestBank(t, testBank)
	tone, err := b.Tone("jump")
	if err != nil {
		t.Fatal(err)
	}

	samples, err := Render(tone, 48000)
	if err != nil {
		t.Fatal(err)
	}

	// 20 frames plus one, 800 samples per frame at 48kHz.
	const want = 21 * 800
	if n := len(samples) / 2; n < want-10 || n > want+10 {
		t.Errorf("rendered %d stereo samples, want about %d", n, want)
	}
	if len(samples)%2 != 0 {
		t.Errorf("odd number of samples: %d", len(samples))
	}

	var peak int16
	for _, s := range samples {
		peak = max(peak, s, -s)
	}
	if peak < 1000 {
		t.Errorf("peak level is %d, tone is not audible", peak)
	}

	if _, err := Render(tone, 100); err == nil {
		t.Errorf("Render() with a sample rate of 100Hz should fail")
	}
}

func TestWriteWAV(t *testing.T) {
	samples := []int16{0, 0, 1000, -1000, 32767, -32768, -5, 5}
	path := filepath.Join(t.TempDir(), "out.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteWAV(f, samples, 22050); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != 22050 || dec.NumChans != 2 || dec.BitDepth != 16 {
		t.Errorf("format = %dHz %d channels %d bits, want 22050Hz 2 channels 16 bits",
			dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	got := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		got[i] = int16(v)
	}
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBank(t *testing.T) {
	b := decodeTestBank(t, testBank)
	dir := t.TempDir()

	paths, err := RenderBank(context.Background(), b, dir, 22050)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "beep.wav"),
		filepath.Join(dir, "hit.wav"),
		filepath.Join(dir, "jump.wav"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() <= 44 {
			t.Errorf("%s: size = %d, want more than a wav header", p, fi.Size())
		}
	}
}

func TestRenderBankError(t *testing.T) {
	b := decodeTestBank(t, testBank+"\n[effects.bad]\nfreq = [1, 2, 3]\nsustain = 1\n")
	_, err := RenderBank(context.Background(), b, t.TempDir(), 22050)
	if err == nil || !strings.Contains(err.Error(), `effect "bad"`) {
		t.Errorf("RenderBank() error = %v, want an error about effect \"bad\"", err)
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.toml")
	if err := os.WriteFile(path, []byte(testBank), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() error {
			calls.Add(1)
			return nil
		})
	}()

	waitCalls := func(n int32) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for calls.Load() < n {
			if time.Now().After(deadline) {
				t.Fatalf("fn called %d times, want %d", calls.Load(), n)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitCalls(1)

	// Changes to other files of the directory are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(testBank+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitCalls(2)

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch() = %v, want %v", err, context.Canceled)
	}
}

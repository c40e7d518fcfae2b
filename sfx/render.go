package sfx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/sync/errgroup"

	"w4kit/emu/log"
	"w4kit/hw/apu"
	hwaudio "w4kit/hw/audio"
)

// Render synthesizes t and returns its interleaved 16-bit stereo samples.
func Render(t hwaudio.Tone, sampleRate int) ([]int16, error) {
	synth, err := apu.New(sampleRate)
	if err != nil {
		return nil, err
	}
	synth.Play(t)

	buf := make([]int16, 2*synth.SamplesPerFrame()+16)
	out := make([]int16, 0, 2*synth.SamplesPerFrame()*(t.Frames()+1))

	// The extra frame lets the final level change reach the output.
	for range t.Frames() + 1 {
		synth.EndFrame()
		for synth.SamplesAvailable() > 0 {
			n := synth.ReadSamples(buf)
			out = append(out, buf[:2*n]...)
		}
	}
	return out, nil
}

// WriteWAV writes interleaved 16-bit stereo samples as a WAV file.
func WriteWAV(w io.WriteSeeker, samples []int16, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 2, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// RenderFile renders t into a WAV file at path.
func RenderFile(path string, t hwaudio.Tone, sampleRate int) error {
	samples, err := Render(t, sampleRate)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderBank renders every effect of the bank into dir, one <name>.wav file
// per effect, and returns the paths of the created files in name order.
// Effects are rendered concurrently; the first error cancels the remaining
// ones.
func RenderBank(ctx context.Context, b *Bank, dir string, sampleRate int) ([]string, error) {
	names := b.Names()
	paths := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := b.Tone(name)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, name+".wav")
			if err := RenderFile(path, t, sampleRate); err != nil {
				return fmt.Errorf("effect %q: %w", name, err)
			}
			log.ModSfx.InfoZ("rendered").
				String("effect", name).
				String("path", path).
				Stringer("tone", t).
				End()
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

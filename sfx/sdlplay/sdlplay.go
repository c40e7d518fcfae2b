// Package sdlplay plays rendered sound effects on the default SDL audio
// device.
package sdlplay

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"w4kit/emu/log"
)

const (
	AudioFormat     = sdl.AUDIO_S16LSB
	AudioChannels   = 2
	AudioBufferSize = 1024
)

// Play queues interleaved 16-bit stereo samples to the default audio device
// and waits until they have been played, or ctx is done.
func Play(ctx context.Context, samples []int16, sampleRate int) error {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("sdl init: %v", err)
	}
	defer sdl.Quit()

	want := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   AudioFormat,
		Channels: AudioChannels,
		Samples:  AudioBufferSize,
	}
	dev, err := sdl.OpenAudioDevice("", false, &want, nil, 0)
	if err != nil {
		return fmt.Errorf("open audio device: %v", err)
	}
	defer sdl.CloseAudioDevice(dev)

	if len(samples) > 0 {
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*2)
		if err := sdl.QueueAudio(dev, buf); err != nil {
			return fmt.Errorf("queue audio: %v", err)
		}
	}
	log.ModSfx.DebugZ("playing").
		Int("samples", len(samples)/2).
		Int("rate", sampleRate).
		End()

	sdl.PauseAudioDevice(dev, false)

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for sdl.GetQueuedAudioSize(dev) > 0 {
		select {
		case <-ctx.Done():
			sdl.ClearQueuedAudio(dev)
			return ctx.Err()
		case <-tick.C:
		}
	}

	// Let the device play its last buffer.
	time.Sleep(time.Second * AudioBufferSize / time.Duration(sampleRate))
	return nil
}

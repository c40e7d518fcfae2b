package apu

import (
	"github.com/arl/blip"

	"w4kit/hw/audio"
)

const (
	MinSampleRate = 8000
	MaxSampleRate = 96000

	maxSamplesPerFrame = MaxSampleRate / 60 * 2
)

// Mixer sums the channel outputs into two band-limited buffers, one per
// stereo side. Centered channels go to both sides.
type Mixer struct {
	bufleft  *blip.Buffer
	bufright *blip.Buffer

	sampleRate int
}

func NewMixer(sampleRate int) *Mixer {
	m := &Mixer{
		bufleft:    blip.NewBuffer(maxSamplesPerFrame),
		bufright:   blip.NewBuffer(maxSamplesPerFrame),
		sampleRate: sampleRate,
	}
	m.Reset()
	return m
}

func (m *Mixer) Reset() {
	m.bufleft.Clear()
	m.bufright.Clear()
	m.bufleft.SetRates(clockRate, float64(m.sampleRate))
	m.bufright.SetRates(clockRate, float64(m.sampleRate))
}

func (m *Mixer) AddDelta(pan audio.Pan, time uint32, delta int16) {
	if delta == 0 {
		return
	}
	if pan != audio.PanRight {
		m.bufleft.AddDelta(uint64(time), int32(delta))
	}
	if pan != audio.PanLeft {
		m.bufright.AddDelta(uint64(time), int32(delta))
	}
}

// EndFrame makes the samples of the frame of the given length (in clock
// cycles) available.
func (m *Mixer) EndFrame(time uint32) {
	m.bufleft.EndFrame(int(time))
	m.bufright.EndFrame(int(time))
}

// SamplesAvailable returns the number of stereo samples ready to be read.
func (m *Mixer) SamplesAvailable() int {
	return m.bufleft.SamplesAvailable()
}

// ReadSamples reads up to len(out)/2 stereo samples into out, interleaved
// left then right, and returns the number of stereo samples read.
func (m *Mixer) ReadSamples(out []int16) int {
	count := len(out) / 2
	if count == 0 {
		return 0
	}
	n := m.bufleft.ReadSamples(out, count, blip.Stereo)
	m.bufright.ReadSamples(out[1:], n, blip.Stereo)
	return n
}

// ABOUTME: Sine oscillator state and render callback
// ABOUTME: Fills interleaved float32 buffers with a phase-continuous tone
package tone

import (
	"fmt"
	"math"
)

// DefaultFrequency is the tone played when no frequency is configured (A4).
const DefaultFrequency = 440.0

// Oscillator holds the persistent state of one continuously-running sine
// generator. It is owned by a single playback session: construction happens
// on the caller's goroutine, after which only the backend's render thread
// may touch it, one Render call at a time. The struct carries no locks;
// serialization of Render calls is the backend's job.
type Oscillator struct {
	phase      float64 // position within one cycle, in sample units, [0, period)
	sampleRate float64
	channels   int
	frequency  float64
	period     float64 // sampleRate / frequency, in samples
}

// New creates an oscillator with phase zero. Sample rate and frequency are
// in Hz. All three parameters are fixed for the oscillator's lifetime.
func New(sampleRate float64, channels int, frequency float64) (*Oscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %v: must be positive", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d: must be positive", channels)
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("invalid frequency %v: must be positive", frequency)
	}
	// The wrap step subtracts the period at most once per frame, which is
	// only sound while the period exceeds the per-frame phase increment
	// of 1, hence frequencies at or above the sample rate are rejected.
	if frequency >= sampleRate {
		return nil, fmt.Errorf("invalid frequency %v: must be below sample rate %v", frequency, sampleRate)
	}

	return &Oscillator{
		sampleRate: sampleRate,
		channels:   channels,
		frequency:  frequency,
		period:     sampleRate / frequency,
	}, nil
}

// Render fills dst with frames*channels interleaved float32 samples and
// advances the oscillator by exactly frames sample-periods. The same sample
// value is written to every channel slot of a frame (mono broadcast).
//
// dst must hold at least frames*channels values. frames may be zero, in
// which case nothing is written and the phase is untouched.
//
// Render performs no allocation, no locking, and no I/O, so it is safe to
// call from a real-time audio thread. Back-to-back calls produce the same
// stream as one call for the combined frame count.
func (o *Oscillator) Render(dst []float32, frames int) {
	phase := o.phase
	period := o.period
	channels := o.channels

	for i := 0; i < frames; i++ {
		phase += 1.0
		// Single subtraction is enough: the per-frame increment is 1 and
		// New guarantees the period is greater than 1.
		if phase > period {
			phase -= period
		}

		sample := float32(math.Sin(2 * math.Pi * phase / period))
		for ch := 0; ch < channels; ch++ {
			dst[channels*i+ch] = sample
		}
	}

	o.phase = phase
}

// Phase returns the current position within the waveform cycle, in sample
// units. Only meaningful between Render calls.
func (o *Oscillator) Phase() float64 { return o.phase }

// SampleRate returns the configured sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Channels returns the configured channel count.
func (o *Oscillator) Channels() int { return o.channels }

// Frequency returns the configured tone frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// Period returns the waveform period in samples (sampleRate / frequency).
func (o *Oscillator) Period() float64 { return o.period }

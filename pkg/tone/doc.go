// ABOUTME: Package documentation for tone generation
// ABOUTME: Describes the oscillator and its real-time render contract
// Package tone implements the real-time sine oscillator at the heart of
// tonegen.
//
// An Oscillator holds the phase state for one continuous waveform and fills
// caller-provided buffers on demand. Render is designed to run on an audio
// backend's real-time thread: it never allocates, never locks, and never
// blocks, and it produces a phase-continuous stream no matter how the
// backend chunks its requests.
//
// Example:
//
//	osc, err := tone.New(44100, 2, 440)
//	buf := make([]float32, 512*2)
//	osc.Render(buf, 512)
package tone

// ABOUTME: Package documentation for audio types
// ABOUTME: Shared format description and sample conversion helpers
// Package audio defines the stream format shared by the oscillator and the
// output backends.
//
// tonegen works in exactly one wire format: 32-bit floating point samples,
// little-endian, interleaved by channel. Format carries the two per-session
// parameters (sample rate and channel count); the helpers here convert
// between float32 sample slices and their byte representation for backends
// that consume raw bytes.
package audio

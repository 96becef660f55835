// ABOUTME: Audio type definitions
// ABOUTME: Defines the stream format and float32 byte conversion helpers
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// DefaultSampleRate is used when no sample rate is configured.
	DefaultSampleRate = 44100
	// DefaultChannels is used when no channel count is configured.
	DefaultChannels = 2

	// BytesPerSample is the size of one 32-bit float sample on the wire.
	BytesPerSample = 4
)

// Format describes an audio stream: 32-bit float, little-endian,
// interleaved. Sample rate and channel count are fixed for the lifetime of
// a session.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat returns 44.1kHz stereo.
func DefaultFormat() Format {
	return Format{SampleRate: DefaultSampleRate, Channels: DefaultChannels}
}

// Validate checks that the format is usable.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d: must be positive", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count %d: must be positive", f.Channels)
	}
	return nil
}

// FrameBytes returns the byte size of one frame (all channels of one
// instant).
func (f Format) FrameBytes() int {
	return f.Channels * BytesPerSample
}

// EncodeSamples writes src as little-endian float32 bytes into dst.
// dst must hold len(src)*BytesPerSample bytes.
func EncodeSamples(dst []byte, src []float32) {
	for i, s := range src {
		binary.LittleEndian.PutUint32(dst[i*BytesPerSample:], math.Float32bits(s))
	}
}

// DecodeSamples reads little-endian float32 bytes from src into dst.
// src must hold len(dst)*BytesPerSample bytes.
func DecodeSamples(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*BytesPerSample:]))
	}
}

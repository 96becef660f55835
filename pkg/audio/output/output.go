// ABOUTME: Audio output interface definition
// ABOUTME: Common pull-driven interface for audio playback backends
package output

import (
	"fmt"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

// Renderer produces interleaved float32 samples on demand. Render fills
// dst with frames*channels samples for the stream format the renderer was
// bound with.
//
// Backends call Render from their own audio thread, never concurrently
// with itself, and expect it to return well within the real-time budget of
// frames/sampleRate seconds: no blocking, no locks, no allocation.
type Renderer interface {
	Render(dst []float32, frames int)
}

// RenderFunc adapts a plain function to the Renderer interface.
type RenderFunc func(dst []float32, frames int)

// Render calls f.
func (f RenderFunc) Render(dst []float32, frames int) { f(dst, frames) }

// Output represents an audio output device driven by a Renderer.
type Output interface {
	// Open provisions the device for the given format and binds the
	// renderer. The renderer is not invoked until Start.
	Open(format audio.Format, r Renderer) error

	// Start begins playback. The backend's audio thread starts pulling
	// samples from the renderer.
	Start() error

	// Stop halts playback. No renderer invocations happen after Stop
	// returns.
	Stop() error

	// Close releases device resources. The output cannot be reopened.
	Close() error
}

// New returns the backend registered under name. An empty name selects the
// default (oto) backend.
func New(name string) (Output, error) {
	switch name {
	case "", "oto":
		return NewOto(), nil
	case "malgo":
		return NewMalgo(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (available: oto, malgo, portaudio, null)", name)
	}
}

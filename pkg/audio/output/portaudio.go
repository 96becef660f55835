//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Pulls float32 samples from a Renderer via PortAudio's stream callback
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

// PortAudio output implementation. PortAudio invokes the stream callback
// with a float32 slice sized by the host, so the renderer writes straight
// into the device buffer.
type PortAudio struct {
	stream   *portaudio.Stream
	renderer Renderer
	channels int
}

// NewPortAudio creates a new PortAudio output.
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio and opens the default output stream.
func (p *PortAudio) Open(format audio.Format, r Renderer) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if p.stream != nil {
		return fmt.Errorf("output already open")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.renderer = r
	p.channels = format.Channels

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0, p.callback)
	if err != nil {
		if terr := portaudio.Terminate(); terr != nil {
			log.Printf("Warning: portaudio terminate error: %v", terr)
		}
		return fmt.Errorf("failed to open stream: %w", err)
	}
	p.stream = stream

	log.Printf("Audio output initialized: %dHz, %d channels (portaudio)", format.SampleRate, format.Channels)

	return nil
}

// callback runs on PortAudio's stream thread.
func (p *PortAudio) callback(out []float32) {
	p.renderer.Render(out, len(out)/p.channels)
}

// Start begins playback.
func (p *PortAudio) Start() error {
	if p.stream == nil {
		return fmt.Errorf("output not opened")
	}
	return p.stream.Start()
}

// Stop halts playback.
func (p *PortAudio) Stop() error {
	if p.stream == nil {
		return nil
	}
	return p.stream.Stop()
}

// Close releases the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	return portaudio.Terminate()
}

// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Pulls float32 samples from a Renderer via miniaudio's data callback
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

// Malgo output implementation using the malgo/miniaudio library. miniaudio
// drives playback through a data callback invoked on its device thread
// with an exact frame count, which maps one-to-one onto the Renderer
// contract.
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	renderer Renderer
	format   audio.Format
	samples  []float32
	mu       sync.Mutex
}

// NewMalgo creates a new Malgo output.
func NewMalgo() *Malgo {
	return &Malgo{}
}

// Open initializes a playback device for the given format and binds the
// renderer.
func (m *Malgo) Open(format audio.Format, r Renderer) error {
	if err := format.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("output already open")
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	m.renderer = r
	m.format = format
	m.samples = make([]float32, 4096*format.Channels)

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutputSample, pInputSamples []byte, frameCount uint32) {
			m.dataCallback(pOutputSample, frameCount)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}
	m.device = device

	log.Printf("Audio output initialized: %dHz, %d channels (malgo)", format.SampleRate, format.Channels)

	return nil
}

// Start begins playback on the device thread.
func (m *Malgo) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return fmt.Errorf("output not opened")
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

// Stop halts the device. miniaudio guarantees the data callback is not in
// flight once Stop returns.
func (m *Malgo) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return nil
	}
	if err := m.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop device: %w", err)
	}
	return nil
}

// dataCallback is invoked by miniaudio whenever the device needs samples.
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	frames := int(frameCount)
	need := frames * m.format.Channels
	if len(m.samples) < need {
		m.samples = make([]float32, need)
	}
	buf := m.samples[:need]
	m.renderer.Render(buf, frames)
	audio.EncodeSamples(pOutput, buf)
}

// Close releases the device and context.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// ABOUTME: Oto-based audio output implementation
// ABOUTME: Pulls float32 samples from a Renderer via oto's reader interface
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

// Oto output implementation using the oto library. Oto's player pulls
// bytes from an io.Reader on its own audio goroutine, which gives us the
// pull cadence directly.
type Oto struct {
	otoCtx  *oto.Context
	player  *oto.Player
	reader  *renderReader
	format  audio.Format
	started bool
	mu      sync.Mutex
}

// NewOto creates a new Oto output.
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the oto context and binds the renderer.
func (o *Oto) Open(format audio.Format, r Renderer) error {
	if err := format.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// oto allows only one context per process and no reinitialization.
	if o.otoCtx != nil {
		return fmt.Errorf("output already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.format = format
	o.reader = newRenderReader(r, format)
	o.player = ctx.NewPlayer(o.reader)

	log.Printf("Audio output initialized: %dHz, %d channels (oto)", format.SampleRate, format.Channels)

	return nil
}

// Start begins playback.
func (o *Oto) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return fmt.Errorf("output not opened")
	}
	if !o.started {
		o.player.Play()
		o.started = true
	}
	return nil
}

// Stop halts playback. The player drains without pulling more samples.
func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil && o.started {
		o.player.Pause()
		o.started = false
	}
	return nil
}

// Close releases the player. The oto context itself cannot be torn down,
// so it is suspended instead.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
		o.started = false
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto context suspend error: %v", err)
		}
	}
	return nil
}

// renderReader adapts a Renderer to the io.Reader oto pulls from. Reads
// happen on oto's audio goroutine; the sample scratch buffer grows to the
// largest request once and is reused afterwards, keeping the steady state
// allocation-free.
type renderReader struct {
	renderer Renderer
	channels int
	samples  []float32
	frameBuf []byte
	pending  []byte // unconsumed tail of an encoded frame
}

func newRenderReader(r Renderer, format audio.Format) *renderReader {
	return &renderReader{
		renderer: r,
		channels: format.Channels,
		samples:  make([]float32, 4096),
		frameBuf: make([]byte, format.FrameBytes()),
	}
}

// Read fills p with rendered samples encoded as little-endian float32.
// oto does not guarantee frame-aligned read sizes, so a partially consumed
// frame is carried over to the next call rather than re-rendered, keeping
// the stream phase-exact.
func (r *renderReader) Read(p []byte) (int, error) {
	n := 0

	if len(r.pending) > 0 {
		c := copy(p, r.pending)
		r.pending = r.pending[c:]
		n += c
	}

	frameBytes := r.channels * audio.BytesPerSample
	if frames := (len(p) - n) / frameBytes; frames > 0 {
		need := frames * r.channels
		if len(r.samples) < need {
			r.samples = make([]float32, need)
		}
		buf := r.samples[:need]
		r.renderer.Render(buf, frames)
		audio.EncodeSamples(p[n:n+frames*frameBytes], buf)
		n += frames * frameBytes
	}

	if rem := len(p) - n; rem > 0 {
		// Render one more frame and hold the unconsumed bytes. pending is
		// always empty here, so frameBuf is free to reuse.
		frame := r.samples[:r.channels]
		r.renderer.Render(frame, 1)
		audio.EncodeSamples(r.frameBuf, frame)
		c := copy(p[n:], r.frameBuf)
		r.pending = r.frameBuf[c:]
		n += c
	}

	return n, nil
}

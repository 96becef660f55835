// ABOUTME: Null audio output implementation
// ABOUTME: Pulls samples at real-time cadence and discards them
package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

const nullPullInterval = 10 * time.Millisecond

// Null output renders into a discard buffer at real-time cadence. It keeps
// the render path honest on machines without an audio device and backs the
// session tests.
type Null struct {
	renderer Renderer
	format   audio.Format
	interval time.Duration
	buf      []float32
	frames   int
	done     chan struct{}
	wg       sync.WaitGroup
	started  bool
	mu       sync.Mutex
}

// NewNull creates a new Null output pulling every 10ms.
func NewNull() *Null {
	return &Null{interval: nullPullInterval}
}

// Open binds the renderer and sizes the pull buffer for one interval of
// audio.
func (n *Null) Open(format audio.Format, r Renderer) error {
	if err := format.Validate(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.renderer != nil {
		return fmt.Errorf("output already open")
	}

	n.renderer = r
	n.format = format
	n.frames = int(time.Duration(format.SampleRate) * n.interval / time.Second)
	if n.frames < 1 {
		n.frames = 1
	}
	n.buf = make([]float32, n.frames*format.Channels)

	log.Printf("Audio output initialized: %dHz, %d channels (null)", format.SampleRate, format.Channels)

	return nil
}

// Start launches the pull goroutine.
func (n *Null) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.renderer == nil {
		return fmt.Errorf("output not opened")
	}
	if n.started {
		return nil
	}

	n.done = make(chan struct{})
	n.started = true
	n.wg.Add(1)
	go n.pullLoop(n.done)

	return nil
}

func (n *Null) pullLoop(done chan struct{}) {
	defer n.wg.Done()

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.renderer.Render(n.buf, n.frames)
		case <-done:
			return
		}
	}
}

// Stop halts the pull goroutine and waits for an in-flight render to
// finish, so no renderer invocation happens after Stop returns.
func (n *Null) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started {
		return nil
	}
	close(n.done)
	n.wg.Wait()
	n.started = false
	return nil
}

// Close stops the output.
func (n *Null) Close() error {
	return n.Stop()
}

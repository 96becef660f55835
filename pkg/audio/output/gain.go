// ABOUTME: Gain wrapper for renderers
// ABOUTME: Applies lock-free volume and mute on the render path
package output

import (
	"log"
	"sync/atomic"
)

// Gain wraps a Renderer and scales its samples by a volume setting. Volume
// and mute are stored atomically so the control surface (TUI, API callers)
// can adjust them while the backend thread is inside Render, without a
// lock on the real-time path.
type Gain struct {
	renderer Renderer
	channels int
	volume   atomic.Int64 // 0-100
	muted    atomic.Bool
}

// NewGain wraps r at full volume. channels must match the stream format r
// was built for.
func NewGain(r Renderer, channels int) *Gain {
	g := &Gain{renderer: r, channels: channels}
	g.volume.Store(100)
	return g
}

// Render delegates to the wrapped renderer, then scales the produced
// samples in place. At full volume the pass is skipped entirely.
func (g *Gain) Render(dst []float32, frames int) {
	g.renderer.Render(dst, frames)

	mult := g.multiplier()
	if mult == 1 {
		return
	}

	n := frames * g.channels
	for i := 0; i < n; i++ {
		dst[i] *= mult
	}
}

func (g *Gain) multiplier() float32 {
	if g.muted.Load() {
		return 0
	}
	return float32(g.volume.Load()) / 100.0
}

// SetVolume sets the volume (0-100, clamped).
func (g *Gain) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	g.volume.Store(int64(volume))
	log.Printf("Volume set to %d", volume)
}

// Volume returns the current volume.
func (g *Gain) Volume() int {
	return int(g.volume.Load())
}

// SetMuted sets mute state.
func (g *Gain) SetMuted(muted bool) {
	g.muted.Store(muted)
	log.Printf("Muted: %v", muted)
}

// Muted returns mute state.
func (g *Gain) Muted() bool {
	return g.muted.Load()
}

// ABOUTME: Main player application orchestration
// ABOUTME: Wires oscillator, gain, session, and TUI together
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tonegen-audio/tonegen-go/internal/session"
	"github.com/tonegen-audio/tonegen-go/internal/ui"
	"github.com/tonegen-audio/tonegen-go/pkg/audio"
	"github.com/tonegen-audio/tonegen-go/pkg/audio/output"
	"github.com/tonegen-audio/tonegen-go/pkg/tone"
)

// Config holds player configuration
type Config struct {
	Frequency  float64
	SampleRate int
	Channels   int
	Volume     int
	Backend    string
	Duration   time.Duration // 0 plays until the context is cancelled
	NoTUI      bool
}

func (c Config) withDefaults() Config {
	if c.Frequency == 0 {
		c.Frequency = tone.DefaultFrequency
	}
	if c.SampleRate == 0 {
		c.SampleRate = audio.DefaultSampleRate
	}
	if c.Channels == 0 {
		c.Channels = audio.DefaultChannels
	}
	return c
}

// Player represents the tone player application
type Player struct {
	cfg     Config
	osc     *tone.Oscillator
	gain    *output.Gain
	session *session.Session
	volCtrl *ui.VolumeControl
	tuiProg *tea.Program
}

// New creates a player. The oscillator is constructed here and owned by
// the session for its whole lifetime; the gain wrapper is the only control
// surface shared with the UI.
func New(cfg Config) (*Player, error) {
	cfg = cfg.withDefaults()

	osc, err := tone.New(float64(cfg.SampleRate), cfg.Channels, cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("invalid tone configuration: %w", err)
	}

	gain := output.NewGain(osc, cfg.Channels)
	gain.SetVolume(cfg.Volume)

	sess := session.New(session.Config{
		Format:  audio.Format{SampleRate: cfg.SampleRate, Channels: cfg.Channels},
		Backend: cfg.Backend,
	}, gain)

	return &Player{
		cfg:     cfg,
		osc:     osc,
		gain:    gain,
		session: sess,
	}, nil
}

// Session returns the playback session, mainly for exit code mapping.
func (p *Player) Session() *session.Session { return p.session }

// Run starts playback and blocks until the context is cancelled, the
// configured duration elapses, or the user quits the TUI. Shutdown is
// observed, never polled.
func (p *Player) Run(ctx context.Context) error {
	if err := p.session.Start(); err != nil {
		return err
	}
	defer func() {
		if err := p.session.Stop(); err != nil {
			log.Printf("Warning: session stop: %v", err)
		}
	}()

	log.Printf("Playing %.1fHz sine: %dHz, %d channels, volume %d",
		p.cfg.Frequency, p.cfg.SampleRate, p.cfg.Channels, p.gain.Volume())

	if !p.cfg.NoTUI {
		if err := p.startTUI(); err != nil {
			return err
		}
		defer p.tuiProg.Quit()
	}

	var timeout <-chan time.Time
	if p.cfg.Duration > 0 {
		timer := time.NewTimer(p.cfg.Duration)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutdown requested")
			return nil
		case <-timeout:
			log.Printf("Duration elapsed")
			return nil
		case <-p.quitRequests():
			log.Printf("Quit from UI")
			return nil
		case change := <-p.volumeChanges():
			p.gain.SetVolume(change.Volume)
			p.gain.SetMuted(change.Muted)
		}
	}
}

func (p *Player) startTUI() error {
	p.volCtrl = ui.NewVolumeControl()
	prog, err := ui.Run(p.volCtrl)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	p.tuiProg = prog

	go func() {
		if _, err := prog.Run(); err != nil {
			log.Printf("TUI error: %v", err)
		}
	}()

	playing := true
	volume := p.gain.Volume()
	muted := p.gain.Muted()
	prog.Send(ui.StatusMsg{
		SessionID:  p.session.ID(),
		Backend:    p.backendName(),
		Playing:    &playing,
		Frequency:  p.cfg.Frequency,
		SampleRate: p.cfg.SampleRate,
		Channels:   p.cfg.Channels,
		Volume:     &volume,
		Muted:      &muted,
	})

	return nil
}

func (p *Player) backendName() string {
	if p.cfg.Backend == "" {
		return "oto"
	}
	return p.cfg.Backend
}

// volumeChanges returns the TUI volume channel, or nil (blocking forever
// in select) when no TUI is running.
func (p *Player) volumeChanges() <-chan ui.VolumeChangeMsg {
	if p.volCtrl == nil {
		return nil
	}
	return p.volCtrl.Changes
}

func (p *Player) quitRequests() <-chan ui.QuitMsg {
	if p.volCtrl == nil {
		return nil
	}
	return p.volCtrl.Quit
}

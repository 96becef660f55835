// ABOUTME: Playback session lifecycle management
// ABOUTME: Binds a renderer to an output backend with distinct setup failure stages
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
	"github.com/tonegen-audio/tonegen-go/pkg/audio/output"
)

// Setup failure stages. Each stage is distinct so operators can tell where
// provisioning failed; any of them is fatal to the session, there is no
// retry and no partial-success state.
var (
	// ErrNoDevice means the requested audio backend is unknown or
	// unavailable on this system.
	ErrNoDevice = errors.New("audio backend unavailable")
	// ErrCallbackBind means no render callback was bound to the session.
	ErrCallbackBind = errors.New("render callback not bound")
	// ErrFormatRejected means the stream format was rejected.
	ErrFormatRejected = errors.New("stream format rejected")
	// ErrDeviceInit means the output device could not be provisioned.
	ErrDeviceInit = errors.New("audio device initialization failed")
	// ErrStartFailed means playback could not be started.
	ErrStartFailed = errors.New("audio playback start failed")
)

// Config holds session configuration. Format and backend are fixed for the
// session's lifetime.
type Config struct {
	Format  audio.Format
	Backend string
}

// Session owns one playback lifecycle: it provisions an output backend,
// binds the render callback, and guarantees the callback is never invoked
// after Stop returns. The bound renderer is exclusively owned by the
// session's backend thread between Start and Stop.
type Session struct {
	id       string
	cfg      Config
	renderer output.Renderer
	out      output.Output
	started  bool
	mu       sync.Mutex
}

// New creates a session bound to the given renderer. The renderer becomes
// the session's render callback; nothing else may drive it while the
// session is started.
func New(cfg Config, r output.Renderer) *Session {
	return &Session{
		id:       uuid.New().String(),
		cfg:      cfg,
		renderer: r,
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Start provisions the output device, binds the render callback plus the
// stream format, and begins playback. Each failure is wrapped in the stage
// sentinel it occurred at.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("session %s already started", s.id)
	}
	if s.renderer == nil {
		return ErrCallbackBind
	}
	if err := s.cfg.Format.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatRejected, err)
	}

	out, err := output.New(s.cfg.Backend)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	if err := out.Open(s.cfg.Format, s.renderer); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("Warning: output close after failed open: %v", cerr)
		}
		return fmt.Errorf("%w: %v", ErrDeviceInit, err)
	}

	if err := out.Start(); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("Warning: output close after failed start: %v", cerr)
		}
		return fmt.Errorf("%w: %v", ErrStartFailed, err)
	}

	s.out = out
	s.started = true

	log.Printf("Session %s started: %dHz, %d channels, backend=%s",
		s.id, s.cfg.Format.SampleRate, s.cfg.Format.Channels, backendName(s.cfg.Backend))

	return nil
}

// Stop halts playback and releases the device. Once Stop returns, the
// render callback is guaranteed not to be invoked again. Stop is
// idempotent.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	var firstErr error
	if err := s.out.Stop(); err != nil {
		firstErr = fmt.Errorf("failed to stop output: %w", err)
	}
	if err := s.out.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close output: %w", err)
	}

	s.out = nil
	s.started = false

	log.Printf("Session %s stopped", s.id)

	return firstErr
}

// Started reports whether the session is currently playing.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func backendName(name string) string {
	if name == "" {
		return "oto"
	}
	return name
}

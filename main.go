// ABOUTME: Entry point for the tonegen player
// ABOUTME: Parses CLI flags, wires signals to cancellation, and maps exit codes
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tonegen-audio/tonegen-go/internal/app"
	"github.com/tonegen-audio/tonegen-go/internal/session"
)

var (
	freq       = flag.Float64("freq", 440, "Tone frequency in Hz")
	sampleRate = flag.Int("sample-rate", 44100, "Sample rate in Hz")
	channels   = flag.Int("channels", 2, "Output channel count")
	volume     = flag.Int("volume", 100, "Initial volume (0-100)")
	backend    = flag.String("backend", "", "Audio backend: oto (default), malgo, portaudio, null")
	duration   = flag.Duration("duration", 0, "Stop after this long (0 = play until interrupted)")
	logFile    = flag.String("log-file", "tonegen.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if *noTUI {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		// TUI mode: log only to file
		log.SetOutput(f)
	}

	log.Printf("Starting tonegen: %.1fHz, %dHz sample rate, %d channels", *freq, *sampleRate, *channels)

	player, err := app.New(app.Config{
		Frequency:  *freq,
		SampleRate: *sampleRate,
		Channels:   *channels,
		Volume:     *volume,
		Backend:    *backend,
		Duration:   *duration,
		NoTUI:      *noTUI,
	})
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Ctrl-C and SIGTERM cancel the context; playback observes it rather
	// than polling a flag.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := player.Run(ctx); err != nil {
		log.Printf("Failed to start audio playback: %v", err)
		os.Exit(exitCode(err))
	}

	log.Printf("Stopped after %s", time.Since(start).Round(time.Millisecond))
}

// exitCode maps each setup failure stage to a distinct process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, session.ErrNoDevice):
		return 1
	case errors.Is(err, session.ErrCallbackBind):
		return 2
	case errors.Is(err, session.ErrFormatRejected):
		return 3
	case errors.Is(err, session.ErrDeviceInit):
		return 4
	case errors.Is(err, session.ErrStartFailed):
		return 5
	default:
		return 1
	}
}

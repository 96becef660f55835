// ABOUTME: Audio output package for pull-driven playback
// ABOUTME: Provides the Output interface and backend implementations
// Package output provides pull-driven audio playback backends.
//
// A backend owns the real-time render thread: once started, it invokes the
// bound Renderer whenever the device needs more samples, one invocation at
// a time, with a frame count of its choosing. Renderers must fill the
// requested frames without blocking or allocating.
//
// Backends: oto (default, cross-platform), malgo (miniaudio), portaudio
// (build with -tags portaudio), and null (renders to nowhere, for tests
// and headless use).
//
// Example:
//
//	out, err := output.New("oto")
//	err = out.Open(audio.DefaultFormat(), renderer)
//	err = out.Start()
package output

// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and volume control plumbing
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // VolumeControl is optional for testing

	if model.playing {
		t.Error("expected playing to be false initially")
	}

	if model.volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.volume)
	}

	if model.muted {
		t.Error("expected muted to be false initially")
	}
}

func TestStatusMsgSession(t *testing.T) {
	model := NewModel(nil)

	playing := true
	msg := StatusMsg{
		SessionID: "abc-123",
		Backend:   "oto",
		Playing:   &playing,
	}

	model.applyStatus(msg)

	if model.sessionID != "abc-123" {
		t.Errorf("expected sessionID 'abc-123', got '%s'", model.sessionID)
	}

	if model.backend != "oto" {
		t.Errorf("expected backend 'oto', got '%s'", model.backend)
	}

	if !model.playing {
		t.Error("expected playing to be true after status update")
	}
}

func TestStatusMsgStopped(t *testing.T) {
	model := NewModel(nil)

	playing := true
	model.applyStatus(StatusMsg{Playing: &playing})

	stopped := false
	model.applyStatus(StatusMsg{Playing: &stopped})

	if model.playing {
		t.Error("expected playing to be false after stop status")
	}
}

func TestStatusMsgStreamInfo(t *testing.T) {
	model := NewModel(nil)

	msg := StatusMsg{
		Frequency:  440,
		SampleRate: 44100,
		Channels:   2,
	}

	model.applyStatus(msg)

	if model.frequency != 440 {
		t.Errorf("expected frequency 440, got %v", model.frequency)
	}

	if model.sampleRate != 44100 {
		t.Errorf("expected sampleRate 44100, got %d", model.sampleRate)
	}

	if model.channels != 2 {
		t.Errorf("expected channels 2, got %d", model.channels)
	}
}

func TestStatusMsgVolume(t *testing.T) {
	model := NewModel(nil)

	volume := 60
	muted := true
	model.applyStatus(StatusMsg{Volume: &volume, Muted: &muted})

	if model.volume != 60 {
		t.Errorf("expected volume 60, got %d", model.volume)
	}

	if !model.muted {
		t.Error("expected muted to be true after status update")
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestVolumeKeys(t *testing.T) {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)

	updated, _ := model.Update(keyMsg("down"))
	model = updated.(Model)

	if model.volume != 95 {
		t.Errorf("expected volume 95 after down, got %d", model.volume)
	}

	select {
	case change := <-ctrl.Changes:
		if change.Volume != 95 {
			t.Errorf("expected change volume 95, got %d", change.Volume)
		}
	default:
		t.Error("expected volume change message")
	}

	updated, _ = model.Update(keyMsg("up"))
	model = updated.(Model)

	if model.volume != 100 {
		t.Errorf("expected volume 100 after up, got %d", model.volume)
	}
}

func TestVolumeClampAtBounds(t *testing.T) {
	model := NewModel(nil)

	// Already at 100, up must not exceed it.
	updated, _ := model.Update(keyMsg("up"))
	model = updated.(Model)
	if model.volume != 100 {
		t.Errorf("expected volume clamped at 100, got %d", model.volume)
	}

	for i := 0; i < 25; i++ {
		updated, _ = model.Update(keyMsg("down"))
		model = updated.(Model)
	}
	if model.volume != 0 {
		t.Errorf("expected volume clamped at 0, got %d", model.volume)
	}
}

func TestMuteKey(t *testing.T) {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)

	updated, _ := model.Update(keyMsg("m"))
	model = updated.(Model)

	if !model.muted {
		t.Error("expected muted after 'm'")
	}

	select {
	case change := <-ctrl.Changes:
		if !change.Muted {
			t.Error("expected muted change message")
		}
	default:
		t.Error("expected volume change message")
	}

	updated, _ = model.Update(keyMsg("m"))
	model = updated.(Model)

	if model.muted {
		t.Error("expected unmuted after second 'm'")
	}
}

func TestQuitKey(t *testing.T) {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)

	_, cmd := model.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit message")
	}
}

func TestViewRendersState(t *testing.T) {
	model := NewModel(nil)
	model.width = 80
	model.height = 24

	playing := true
	model.applyStatus(StatusMsg{
		SessionID:  "abc-123",
		Backend:    "null",
		Playing:    &playing,
		Frequency:  440,
		SampleRate: 44100,
		Channels:   2,
	})

	view := model.View()

	for _, want := range []string{"Playing", "abc-123", "440", "44100", "Stereo", "null"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewBeforeSize(t *testing.T) {
	model := NewModel(nil)
	if got := model.View(); got != "Loading..." {
		t.Errorf("expected loading placeholder, got %q", got)
	}
}

func TestWindowSize(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model = updated.(Model)

	if model.width != 120 || model.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", model.width, model.height)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a-very-long-session-id", 10); got != "a-very-..." {
		t.Errorf("truncate long = %q", got)
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		channels int
		want     string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "6ch"},
	}
	for _, tt := range tests {
		if got := channelName(tt.channels); got != tt.want {
			t.Errorf("channelName(%d) = %q, want %q", tt.channels, got, tt.want)
		}
	}
}

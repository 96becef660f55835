// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backend selection and the render reader byte carry
package output

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tonegen-audio/tonegen-go/pkg/audio"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*Malgo)(nil)
	var _ Output = (*PortAudio)(nil)
	var _ Output = (*Null)(nil)
}

func TestNewBackendSelection(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{"default", "", false},
		{"oto", "oto", false},
		{"malgo", "malgo", false},
		{"portaudio", "portaudio", false},
		{"null", "null", false},
		{"unknown", "pulseaudio", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out == nil {
				t.Fatal("New returned nil output")
			}
		})
	}
}

func TestRenderFunc(t *testing.T) {
	called := 0
	var r Renderer = RenderFunc(func(dst []float32, frames int) {
		called++
		for i := range dst[:frames] {
			dst[i] = 0.5
		}
	})

	buf := make([]float32, 4)
	r.Render(buf, 4)
	if called != 1 {
		t.Errorf("render func called %d times, want 1", called)
	}
	if buf[3] != 0.5 {
		t.Errorf("buffer not filled: %v", buf)
	}
}

// seqRenderer writes the running frame index to every channel slot, so the
// byte stream encodes the exact pull order.
type seqRenderer struct {
	channels int
	frame    int
}

func (s *seqRenderer) Render(dst []float32, frames int) {
	for i := 0; i < frames; i++ {
		for ch := 0; ch < s.channels; ch++ {
			dst[i*s.channels+ch] = float32(s.frame)
		}
		s.frame++
	}
}

func TestRenderReaderAlignedReads(t *testing.T) {
	format := audio.Format{SampleRate: 44100, Channels: 2}
	r := newRenderReader(&seqRenderer{channels: 2}, format)

	buf := make([]byte, 16*format.FrameBytes())
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read = %d bytes, want %d", n, len(buf))
	}

	samples := make([]float32, 16*2)
	audio.DecodeSamples(samples, buf)
	for i := 0; i < 16; i++ {
		if samples[i*2] != float32(i) || samples[i*2+1] != float32(i) {
			t.Fatalf("frame %d = (%v, %v), want (%d, %d)", i, samples[i*2], samples[i*2+1], i, i)
		}
	}
}

// Unaligned read sizes must not drop or re-render frames: the reassembled
// stream has to match a single aligned read.
func TestRenderReaderUnalignedReads(t *testing.T) {
	format := audio.Format{SampleRate: 44100, Channels: 2}

	aligned := newRenderReader(&seqRenderer{channels: 2}, format)
	want := make([]byte, 32*format.FrameBytes())
	if _, err := aligned.Read(want); err != nil {
		t.Fatal(err)
	}

	unaligned := newRenderReader(&seqRenderer{channels: 2}, format)
	var got []byte
	for _, size := range []int{3, 13, 1, 64, 7, 100, 5, 63} {
		chunk := make([]byte, size)
		n, err := unaligned.Read(chunk)
		if err != nil {
			t.Fatal(err)
		}
		if n != size {
			t.Fatalf("short read: %d of %d bytes", n, size)
		}
		got = append(got, chunk...)
	}

	if diff := cmp.Diff(want[:len(got)], got); diff != "" {
		t.Errorf("unaligned stream mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReaderEmptyRead(t *testing.T) {
	format := audio.Format{SampleRate: 44100, Channels: 2}
	src := &seqRenderer{channels: 2}
	r := newRenderReader(src, format)

	n, err := r.Read(nil)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if n != 0 {
		t.Errorf("Read = %d, want 0", n)
	}
	if src.frame != 0 {
		t.Errorf("renderer advanced by empty read: %d frames", src.frame)
	}
}

// countRenderer counts invocations and frames for lifecycle tests.
type countRenderer struct {
	calls  atomic.Int64
	frames atomic.Int64
}

func (c *countRenderer) Render(dst []float32, frames int) {
	c.calls.Add(1)
	c.frames.Add(int64(frames))
}

func TestNullOutputLifecycle(t *testing.T) {
	r := &countRenderer{}
	n := NewNull()
	n.interval = time.Millisecond

	if err := n.Start(); err == nil {
		t.Fatal("Start before Open should fail")
	}
	if err := n.Open(audio.Format{SampleRate: 44100, Channels: 2}, r); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if got := r.calls.Load(); got != 0 {
		t.Fatalf("renderer invoked %d times before Start", got)
	}

	if err := n.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	deadline := time.After(time.Second)
	for r.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("renderer not pulled within 1s")
		case <-time.After(time.Millisecond):
		}
	}

	if err := n.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	after := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := r.calls.Load(); got != after {
		t.Errorf("renderer invoked after Stop: %d -> %d", after, got)
	}

	// Stop is idempotent.
	if err := n.Stop(); err != nil {
		t.Errorf("second Stop error: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}

func TestNullOpenRejectsInvalidFormat(t *testing.T) {
	n := NewNull()
	if err := n.Open(audio.Format{SampleRate: 0, Channels: 2}, &countRenderer{}); err == nil {
		t.Error("expected error for invalid format")
	}
}

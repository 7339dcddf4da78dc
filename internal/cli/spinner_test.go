package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, true, "Rendering 4 tasks...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.SetMessage("Writing files...")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Rendering 4 tasks...") {
		t.Errorf("output missing first message: %q", got)
	}
	if !strings.Contains(got, "Writing files...") {
		t.Errorf("output missing updated message: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("output should end by clearing the line: %q", got)
	}
}

func TestSpinnerQuietWithoutTerminal(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, false, "hidden")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	if got := out.String(); got != "" {
		t.Errorf("non-terminal spinner wrote %q", got)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &syncBuffer{}, true, "cancel me")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStop(t *testing.T) {
	tests := []struct {
		name  string
		start bool
	}{
		{"after start", true},
		{"without start", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinnerTo(context.Background(), &syncBuffer{}, true, "stop")
			if tt.start {
				s.Start()
			}
			s.Stop()
			s.Stop()
			s.Start() // no-op once stopped
			if !s.Cancelled() {
				t.Error("Cancelled() = false after Stop")
			}
		})
	}
}

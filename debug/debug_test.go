package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

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

func runFor(t *testing.T, d time.Duration, fn func(ctx context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("logger returned %v", err)
		}
	case <-time.After(d + 3*time.Second):
		t.Fatalf("logger did not stop after context cancellation")
	}
}

func TestRunGoroutineLogger(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	runFor(t, 120*time.Millisecond, func(ctx context.Context) error {
		return RunGoroutineLogger(ctx, 20*time.Millisecond, logger)
	})
	if !strings.Contains(out.String(), `"msg":"goroutine-stacks"`) {
		t.Fatalf("no goroutine record logged: %s", out.String())
	}
}

func TestRunMemLogger(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	runFor(t, 120*time.Millisecond, func(ctx context.Context) error {
		return RunMemLogger(ctx, 20*time.Millisecond, logger)
	})
	if !strings.Contains(out.String(), `"msg":"memstats"`) {
		t.Fatalf("no memstats record logged: %s", out.String())
	}
}

func TestRunProcessLogger(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	runFor(t, 400*time.Millisecond, func(ctx context.Context) error {
		return RunProcessLogger(ctx, 50*time.Millisecond, func() int { return 42 }, logger)
	})
	if !strings.Contains(out.String(), `"fps":42`) {
		t.Fatalf("process record missing fps: %s", out.String())
	}
}

func TestRecoverLog(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	func() {
		defer recoverLog(logger, "test")
		panic("boom")
	}()
	if !strings.Contains(out.String(), "recovered panic") {
		t.Fatalf("panic not logged: %s", out.String())
	}
}

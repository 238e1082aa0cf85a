package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count (runtime metrics) and stack usage at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// RunGoroutineLogger logs goroutine count and stack memory every interval
// until ctx is done. It always returns nil.
func RunGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = time.Second
	}
	defer recoverLog(logger, "goroutine logger")

	t := time.NewTicker(interval)
	defer t.Stop()
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		metrics.Read(samples)
		var goroutines uint64
		if samples[0].Value.Kind() == metrics.KindUint64 {
			goroutines = samples[0].Value.Uint64()
		}
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		logger.Info("goroutine-stacks",
			slog.Uint64("goroutines", goroutines),
			slog.Uint64("stack_inuse", ms.StackInuse),
			slog.Uint64("stack_sys", ms.StackSys),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
		)
	}
}

// recoverLog turns a panic in a debug goroutine into an error record.
func recoverLog(logger *slog.Logger, what string) {
	if r := recover(); r != nil && logger != nil {
		logger.Error("debug: recovered panic", slog.String("loop", what), slog.Any("panic", r))
	}
}

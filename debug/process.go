package debug

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

var (
	selfOnce sync.Once
	selfProc *process.Process
	selfErr  error
)

// self returns the gopsutil handle of the current process.
func self() (*process.Process, error) {
	selfOnce.Do(func() {
		selfProc, selfErr = process.NewProcess(int32(os.Getpid()))
		if selfErr != nil {
			selfErr = fmt.Errorf("open self process: %w", selfErr)
		}
	})
	return selfProc, selfErr
}

// RateSource reports the most recent frame rate. It must be safe to call from
// any goroutine.
type RateSource func() int

// RunProcessLogger logs CPU usage and RSS next to the current frame rate so a
// drop in FPS can be matched with process load. Each CPU measurement spans
// interval; it returns when ctx is done or the process cannot be inspected.
func RunProcessLogger(ctx context.Context, interval time.Duration, rate RateSource, logger *slog.Logger) error {
	if interval <= 0 {
		interval = time.Second
	}
	defer recoverLog(logger, "process logger")

	p, err := self()
	if err != nil {
		return err
	}
	for {
		cpu, err := p.PercentWithContext(ctx, interval)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.Warn("process: cpu query failed", slog.String("err", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
			}
			continue
		}
		var rss uint64
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
			rss = mi.RSS
		}
		fps := -1
		if rate != nil {
			fps = rate()
		}
		logger.Info("process",
			slog.Float64("cpu_percent", cpu),
			slog.Uint64("rss", rss),
			slog.Int("fps", fps),
		)
	}
}

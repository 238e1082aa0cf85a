package host

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
)

// DefaultFramePeriod paces EventLoop frames at roughly 60 Hz.
const DefaultFramePeriod = time.Second / 60

// EventLoop is a cooperative single-goroutine run loop for hosts without a UI
// toolkit. Run drives one frame per period and executes posted tasks in order,
// all on the goroutine that called Run.
//
// Register, Invalidate, SetTracking and Step must be called on the loop (from a
// frame callback or a posted task) or before Run starts. Post is the only
// method safe to call from other goroutines.
type EventLoop struct {
	period time.Duration
	logger *slog.Logger

	regs     Registry
	tracking bool
	frames   uint64

	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed atomic.Bool
}

// NewEventLoop returns a loop producing a frame every period (DefaultFramePeriod if ≤ 0).
func NewEventLoop(period time.Duration, logger *slog.Logger) *EventLoop {
	if period <= 0 {
		period = DefaultFramePeriod
	}
	return &EventLoop{
		period: period,
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

// Register implements framerate.RunLoop.
func (l *EventLoop) Register(mode framerate.DispatchMode, fn func(now time.Time)) (framerate.Registration, error) {
	if l.closed.Load() {
		return nil, ErrLoopClosed
	}
	return l.regs.Add(mode, fn), nil
}

// Live returns the number of live registrations.
func (l *EventLoop) Live() int { return l.regs.Len() }

// Frames returns how many frames the loop has dispatched.
func (l *EventLoop) Frames() uint64 { return l.frames }

// Period returns the target frame period.
func (l *EventLoop) Period() time.Duration { return l.period }

// SetTracking marks the loop as tracking user interaction. While set, only
// ModeCommon registrations receive frames.
func (l *EventLoop) SetTracking(tracking bool) { l.tracking = tracking }

// Step dispatches a single frame stamped now.
func (l *EventLoop) Step(now time.Time) {
	l.frames++
	l.regs.Dispatch(now, func(m framerate.DispatchMode) bool {
		return !l.tracking || m == framerate.ModeCommon
	})
}

// Post queues fn to run on the loop. It never blocks.
func (l *EventLoop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if l.closed.Load() {
		return ErrLoopClosed
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Run drives the loop until ctx is done. Pending tasks are drained before it returns.
func (l *EventLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()
	if l.logger != nil {
		l.logger.Debug("event_loop.start", "period", l.period)
	}
	for {
		select {
		case <-ctx.Done():
			l.closed.Store(true)
			l.drain()
			if l.logger != nil {
				l.logger.Debug("event_loop.stop", "frames", l.frames)
			}
			return nil
		case now := <-ticker.C:
			l.drain()
			l.Step(now)
		case <-l.wake:
			l.drain()
		}
	}
}

func (l *EventLoop) drain() {
	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		l.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}

var _ framerate.RunLoop = (*EventLoop)(nil)

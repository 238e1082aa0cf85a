package framerate

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Sampler counts frame ticks against wall-clock time and reports the frame
// rate once per interval to a single observer.
//
// A Sampler is confined to the execution context of the RunLoop it tracks on.
// It holds no locks; every method must be called from that context.
type Sampler struct {
	clock    func() time.Time
	interval time.Duration
	gap      GapPolicy
	maxGap   time.Duration
	logger   *slog.Logger

	observer Observer
	reg      Registration
	mode     DispatchMode

	// sampling window
	frames int
	start  time.Time

	registrations uint64
	delivered     uint64
	discarded     uint64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithClock overrides time.Now, used when a window is (re)started.
func WithClock(clock func() time.Time) Option {
	return func(s *Sampler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithInterval sets the reporting interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithGapPolicy sets how windows longer than maxGap are handled.
// maxGap is raised to the interval when smaller.
func WithGapPolicy(p GapPolicy, maxGap time.Duration) Option {
	return func(s *Sampler) {
		s.gap = p
		if maxGap > 0 {
			s.maxGap = maxGap
		}
	}
}

// WithLogger attaches a logger; nil keeps the sampler silent.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// NewSampler returns an idle sampler with a one second reporting interval.
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{clock: time.Now, interval: DefaultInterval, gap: GapReport, maxGap: DefaultMaxGap}
	for _, o := range opts {
		o(s)
	}
	if s.maxGap < s.interval {
		s.maxGap = s.interval
	}
	return s
}

// SetObserver replaces the observer slot. Passing nil clears it.
func (s *Sampler) SetObserver(o Observer) {
	if s == nil {
		return
	}
	s.observer = o
}

// Tracking reports whether a registration is live.
func (s *Sampler) Tracking() bool { return s != nil && s.reg != nil }

// Interval returns the reporting interval.
func (s *Sampler) Interval() time.Duration { return s.interval }

// StartTracking registers the per-frame callback on loop under mode.
//
// A sampler that is already tracking drops its current registration first, so
// at most one registration is ever live. The sampling window restarts at the
// current clock time in every case.
func (s *Sampler) StartTracking(loop RunLoop, mode DispatchMode) error {
	if s == nil {
		return nil
	}
	if loop == nil {
		return ErrNilRunLoop
	}
	s.StopTracking()

	reg, err := loop.Register(mode, s.Tick)
	if err != nil {
		return fmt.Errorf("register frame callback: %w", err)
	}
	s.reg = reg
	s.mode = mode
	s.registrations++
	s.resetWindow(s.clock())
	if s.logger != nil {
		s.logger.Debug("sampler.start", "mode", mode.String(), "interval", s.interval)
	}
	return nil
}

// StopTracking invalidates the live registration, if any. It is a no-op when
// the sampler is idle and leaves the sampler ready for a fresh StartTracking.
func (s *Sampler) StopTracking() {
	if s == nil || s.reg == nil {
		return
	}
	reg := s.reg
	s.reg = nil
	reg.Invalidate()
	s.frames = 0
	if s.logger != nil {
		s.logger.Debug("sampler.stop", "mode", s.mode.String())
	}
}

// Tick is the per-frame callback. It counts one frame and, once the interval
// has elapsed, computes the rate, resets the window and notifies the observer.
func (s *Sampler) Tick(now time.Time) {
	if s == nil || s.reg == nil {
		return
	}
	s.frames++
	elapsed := now.Sub(s.start)
	if elapsed < s.interval {
		return
	}

	frames := s.frames
	s.resetWindow(now)

	divisor := elapsed
	clamped := false
	if elapsed > s.maxGap {
		switch s.gap {
		case GapDiscard:
			s.discarded++
			if s.logger != nil {
				s.logger.Debug("sampler.discard", "elapsed", elapsed, "frames", frames)
			}
			return
		case GapClamp:
			divisor = s.maxGap
			clamped = true
		}
	}

	sample := RateSample{
		FramesPerSecond: Rate(frames, divisor),
		Frames:          frames,
		Elapsed:         elapsed,
		At:              now,
		Clamped:         clamped,
	}
	s.delivered++
	if s.observer != nil {
		s.observer.OnFrameRate(sample)
	}
}

// Stats returns a snapshot of the sampler counters.
func (s *Sampler) Stats() SamplerStats {
	if s == nil {
		return SamplerStats{}
	}
	live := 0
	if s.reg != nil {
		live = 1
	}
	return SamplerStats{
		Registrations: s.registrations,
		Live:          live,
		Delivered:     s.delivered,
		Discarded:     s.discarded,
		Frames:        s.frames,
	}
}

func (s *Sampler) resetWindow(now time.Time) {
	s.frames = 0
	s.start = now
}

// Rate returns round(frames / elapsed seconds). It returns 0 for a
// non-positive elapsed duration or a negative frame count.
func Rate(frames int, elapsed time.Duration) int {
	if elapsed <= 0 || frames <= 0 {
		return 0
	}
	return int(math.Round(float64(frames) / elapsed.Seconds()))
}

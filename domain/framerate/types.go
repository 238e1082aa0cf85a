package framerate

import (
	"errors"
	"time"
)

// DefaultInterval is the reporting interval between two rate computations.
const DefaultInterval = time.Second

// DefaultMaxGap is the elapsed window length above which a gap policy other
// than GapReport kicks in.
const DefaultMaxGap = 3 * time.Second

// ErrNilRunLoop is returned by StartTracking when no run loop is supplied.
var ErrNilRunLoop = errors.New("framerate: nil run loop")

// DispatchMode selects which kind of event loop activity a registration fires during.
type DispatchMode int

const (
	// ModeDefault fires only while the loop processes ordinary activity. Ticks are
	// suppressed while the host tracks user interaction (drag, resize, menus).
	ModeDefault DispatchMode = iota
	// ModeCommon fires during all loop activity including interaction tracking.
	ModeCommon
)

func (m DispatchMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeCommon:
		return "common"
	default:
		return "unknown"
	}
}

// ParseDispatchMode converts "default" or "common" into a DispatchMode.
// Unknown values map to ModeCommon, the mode the overlay uses out of the box.
func ParseDispatchMode(s string) DispatchMode {
	if s == "default" {
		return ModeDefault
	}
	return ModeCommon
}

// Registration is the handle a RunLoop returns for a per-frame callback.
// Invalidate must be synchronous: once it returns the callback never fires again.
// Calling it more than once is allowed.
type Registration interface {
	Invalidate()
}

// RunLoop is the host scheduler that produces one callback per rendered frame.
type RunLoop interface {
	Register(mode DispatchMode, fn func(now time.Time)) (Registration, error)
}

// RateSample is the result of one rate computation.
type RateSample struct {
	FramesPerSecond int
	Frames          int
	Elapsed         time.Duration
	At              time.Time
	Clamped         bool // elapsed exceeded MaxGap and GapClamp was applied
}

// Observer receives rate samples on the run loop's execution context.
type Observer interface {
	OnFrameRate(s RateSample)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(RateSample)

func (f ObserverFunc) OnFrameRate(s RateSample) {
	if f != nil {
		f(s)
	}
}

// GapPolicy decides what happens to a window that stayed open much longer than
// the reporting interval, e.g. because the application was suspended.
type GapPolicy int

const (
	// GapReport reports frames/elapsed as-is, usually a near-zero rate.
	GapReport GapPolicy = iota
	// GapDiscard drops the sample and starts a fresh window without notifying.
	GapDiscard
	// GapClamp divides by MaxGap instead of the real elapsed time.
	GapClamp
)

func (p GapPolicy) String() string {
	switch p {
	case GapReport:
		return "report"
	case GapDiscard:
		return "discard"
	case GapClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParseGapPolicy maps a config token onto a GapPolicy, defaulting to GapReport.
func ParseGapPolicy(s string) GapPolicy {
	switch s {
	case "discard":
		return GapDiscard
	case "clamp":
		return GapClamp
	default:
		return GapReport
	}
}

// SamplerStats summarises sampler activity for tests and debug logging.
type SamplerStats struct {
	Registrations uint64 // total successful registrations
	Live          int    // 0 or 1
	Delivered     uint64 // samples handed to the observer
	Discarded     uint64 // samples dropped by GapDiscard
	Frames        int    // frames counted in the open window
}

package view

import (
	"log/slog"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TkRunLoop is the Tk frame source. One TclAfter chain paces frames at the
// configured period while registrations exist. ModeCommon callbacks run from
// the timer directly; ModeDefault callbacks hop through TclAfterIdle so they
// wait until Tk has finished pending user interaction and redraws.
//
// All methods run on the Tk thread.
type TkRunLoop struct {
	period time.Duration
	logger *slog.Logger

	regs    host.Registry
	afterID string
	idleID  string
	closed  bool
	frames  uint64
}

// NewTkRunLoop returns an idle loop. A non-positive period selects host.DefaultFramePeriod.
func NewTkRunLoop(period time.Duration, logger *slog.Logger) *TkRunLoop {
	if period <= 0 {
		period = host.DefaultFramePeriod
	}
	l := &TkRunLoop{period: period, logger: logger}
	l.regs.OnEmpty = l.cancel
	return l
}

// Register implements framerate.RunLoop.
func (l *TkRunLoop) Register(mode framerate.DispatchMode, fn func(now time.Time)) (framerate.Registration, error) {
	if l.closed {
		return nil, host.ErrLoopClosed
	}
	r := l.regs.Add(mode, fn)
	l.schedule()
	return r, nil
}

// Live returns the number of live registrations.
func (l *TkRunLoop) Live() int { return l.regs.Len() }

// Close cancels pending timers and refuses further registrations.
func (l *TkRunLoop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.regs.Clear()
	l.cancel()
	if l.logger != nil {
		l.logger.Debug("tk_loop.closed", "frames", l.frames)
	}
}

func (l *TkRunLoop) schedule() {
	if l.closed || l.afterID != "" || l.regs.Len() == 0 {
		return
	}
	l.afterID = TclAfter(l.period, l.frame)
}

func (l *TkRunLoop) frame() {
	l.afterID = ""
	if l.closed {
		return
	}
	l.frames++
	l.regs.Dispatch(time.Now(), isCommon)
	if l.idleID == "" && l.regs.Has(framerate.ModeDefault) {
		l.idleID = TclAfterIdle(l.idle)
	}
	l.schedule()
}

func (l *TkRunLoop) idle() {
	l.idleID = ""
	if l.closed {
		return
	}
	l.regs.Dispatch(time.Now(), isDefault)
}

func (l *TkRunLoop) cancel() {
	if l.afterID != "" {
		TclAfterCancel(l.afterID)
		l.afterID = ""
	}
	if l.idleID != "" {
		TclAfterCancel(l.idleID)
		l.idleID = ""
	}
}

func isCommon(m framerate.DispatchMode) bool  { return m == framerate.ModeCommon }
func isDefault(m framerate.DispatchMode) bool { return m != framerate.ModeCommon }

var _ framerate.RunLoop = (*TkRunLoop)(nil)

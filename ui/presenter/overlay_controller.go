package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/domain/readout"
	"github.com/soocke/fps-overlay-go/ui/model"
)

// ErrNoHostWindow is returned by Show when there is no main window to attach to.
var ErrNoHostWindow = errors.New("presenter: no host window")

// DefaultOverlayHeight is used when the host reports no top inset.
const DefaultOverlayHeight = 20

// ShowOptions selects the frame source the overlay samples.
// A nil Loop falls back to the host's own run loop.
type ShowOptions struct {
	Loop framerate.RunLoop
	Mode framerate.DispatchMode
}

// OverlayController owns the overlay surface and the sampler feeding it.
// It is the sampler's observer. All methods run on the host run loop.
type OverlayController struct {
	sampler   *framerate.Sampler
	surface   host.Surface
	formatter readout.Formatter
	logger    *slog.Logger

	model   *model.OverlayModel
	history *framerate.History
	height  int
	now     func() time.Time

	host        host.Host
	unsubscribe func()
}

// NewOverlayController wires the controller as the sampler's observer.
func NewOverlayController(sampler *framerate.Sampler, surface host.Surface, formatter readout.Formatter, logger *slog.Logger) *OverlayController {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &OverlayController{
		sampler:   sampler,
		surface:   surface,
		formatter: formatter,
		logger:    logger,
		model:     model.NewOverlayModel(),
		history:   framerate.NewHistory(60),
		height:    DefaultOverlayHeight,
		now:       time.Now,
	}
	if sampler != nil {
		sampler.SetObserver(c)
	}
	return c
}

// SetDefaultHeight sets the strip height used when the host has no top inset.
// An attached overlay is re-framed right away.
func (c *OverlayController) SetDefaultHeight(h int) {
	if c == nil || h <= 0 || h == c.height {
		return
	}
	c.height = h
	if c.host == nil || c.surface == nil {
		return
	}
	if bounds, err := c.host.Bounds(); err == nil {
		c.applyFrame(bounds)
	}
}

// SetHistory replaces the rate history ring.
func (c *OverlayController) SetHistory(h *framerate.History) {
	if c == nil || h == nil {
		return
	}
	c.history = h
}

// SetFormatter swaps the readout formatter; the next sample uses it.
func (c *OverlayController) SetFormatter(f readout.Formatter) {
	if c == nil {
		return
	}
	c.formatter = f
}

// History returns the ring of recent samples.
func (c *OverlayController) History() *framerate.History {
	if c == nil {
		return nil
	}
	return c.history
}

// Model exposes the presentation state.
func (c *OverlayController) Model() *model.OverlayModel {
	if c == nil {
		return nil
	}
	return c.model
}

// Show attaches the overlay to h and (re)starts sampling. Calling it while
// visible re-applies geometry and restarts the sampling window.
func (c *OverlayController) Show(h host.Host, opts ShowOptions) error {
	if c == nil || c.surface == nil {
		return nil
	}
	if h == nil {
		c.logger.Warn("overlay.show skipped", "reason", "no host")
		return ErrNoHostWindow
	}
	bounds, err := h.Bounds()
	if err != nil {
		c.logger.Warn("overlay.show skipped", "reason", "no main window", "error", err)
		return fmt.Errorf("%w: %v", ErrNoHostWindow, err)
	}
	c.attach(h)
	c.applyFrame(bounds)
	c.surface.Show()
	wasVisible := c.model.Visible()
	c.model.SetVisible(true, c.now())

	loop := opts.Loop
	if loop == nil {
		loop = h.RunLoop()
	}
	if err := c.sampler.StartTracking(loop, opts.Mode); err != nil {
		c.surface.Hide()
		c.model.SetVisible(false, c.now())
		c.logger.Error("overlay.show failed", "error", err)
		return fmt.Errorf("start sampling: %w", err)
	}
	if !wasVisible {
		c.logger.Info("overlay.shown", "frame", c.model.Frame().String(), "mode", opts.Mode.String())
	}
	return nil
}

// Hide stops sampling and hides the surface. Idempotent.
func (c *OverlayController) Hide() {
	if c == nil || !c.model.Visible() {
		return
	}
	c.sampler.StopTracking()
	if c.surface != nil {
		c.surface.Hide()
	}
	now := c.now()
	c.model.SetVisible(false, now)
	snap := c.history.Snapshot()
	c.logger.Info("overlay.hidden",
		"shown_for", c.model.ShownFor(now).String(),
		"samples", snap.Count,
		"min_fps", snap.Min,
		"max_fps", snap.Max,
		"mean_fps", snap.Mean,
	)
}

// IsVisible reports whether the overlay is shown.
func (c *OverlayController) IsVisible() bool { return c != nil && c.model.Visible() }

// OnFrameRate renders a sample. The overlay must never keep keyboard focus,
// so focus is handed back to the main window first.
func (c *OverlayController) OnFrameRate(s framerate.RateSample) {
	if c == nil || c.surface == nil {
		return
	}
	if c.surface.HasFocus() && c.host != nil {
		c.host.FocusMain()
		c.logger.Debug("overlay.focus returned")
	}
	r := c.formatter.Format(s.FramesPerSecond)
	c.surface.SetText(r.Text)
	c.surface.SetSeverity(r.Severity)
	c.model.SetReadout(r)
	c.history.Add(s)
	c.logger.Debug("overlay.rate", "fps", r.Rate, "period_ms", r.PeriodMs, "severity", r.Severity.String(), "clamped", s.Clamped)
}

// OnGeometryChange re-applies the frame from new host bounds, visible or not.
func (c *OverlayController) OnGeometryChange(bounds image.Rectangle) {
	if c == nil || c.surface == nil {
		return
	}
	c.applyFrame(bounds)
}

// Close detaches from the host and stops sampling.
func (c *OverlayController) Close() {
	if c == nil {
		return
	}
	c.Hide()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.sampler.StopTracking()
	c.host = nil
}

// attach subscribes to geometry changes once per host.
func (c *OverlayController) attach(h host.Host) {
	if c.host == h && c.unsubscribe != nil {
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.host = h
	c.unsubscribe = h.OnGeometryChange(c.OnGeometryChange)
}

func (c *OverlayController) applyFrame(bounds image.Rectangle) {
	h := c.height
	if c.host != nil {
		if inset := c.host.TopInset(); inset > 0 {
			h = inset
		}
	}
	frame := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h)
	c.surface.SetFrame(frame)
	c.model.SetFrame(frame)
}

var _ framerate.Observer = (*OverlayController)(nil)

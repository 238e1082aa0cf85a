package app

import (
	"context"
	"errors"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/fps-overlay-go/capture"
	"github.com/soocke/fps-overlay-go/config"
	"github.com/soocke/fps-overlay-go/debug"
	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/ui/images"
)

// fallbackBounds is the virtual main window used when no screen is available.
var fallbackBounds = image.Rect(0, 0, 1280, 720)

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	// FramePeriod paces the event loop; zero uses the config value.
	FramePeriod time.Duration
	// Duration stops the run after the given time; zero runs until ctx is done.
	Duration time.Duration
}

// RunHeadless drives the overlay on an EventLoop with a LogSurface, so every
// readout is logged instead of drawn. The config watcher and debug loggers run
// alongside the loop in one errgroup; the first failure stops them all.
func RunHeadless(ctx context.Context, c *AppContainer, opts HeadlessOptions) error {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}
	period := opts.FramePeriod
	if period <= 0 {
		period = c.Config.FramePeriod()
	}
	loop := host.NewEventLoop(period, c.Logger)
	bounds, err := capture.ScreenBounds()
	if err != nil {
		c.Logger.Debug("headless.screen unavailable", "error", err)
		bounds = fallbackBounds
	}
	h := host.NewStaticHost(bounds, 0, loop)

	// synthetic content so the configured load shows up in the rate
	pattern := images.Pattern{Width: 320, Height: 90, Load: c.Config.DemoLoad}
	phase := 0
	if _, err := loop.Register(framerate.ModeCommon, func(time.Time) {
		phase += 4
		_ = pattern.Render(phase)
	}); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error {
		err := config.Watch(ctx, c.ConfigPath, c.Logger, func(cfg *config.Config) {
			if err := loop.Post(func() { c.ApplyConfig(cfg) }); err != nil && !errors.Is(err, host.ErrLoopClosed) {
				c.Logger.Warn("config.apply dropped", "error", err)
			}
		})
		if err != nil {
			// hot reload is optional
			c.Logger.Warn("config.watch disabled", "error", err)
		}
		return nil
	})
	if c.Config.Debug {
		StartDebugLoggers(ctx, g, c)
	}

	if err := loop.Post(func() {
		if err := c.Overlay.Show(h, c.ShowOptions(nil)); err != nil {
			c.Logger.Error("overlay.show failed", "error", err)
		}
	}); err != nil {
		return err
	}

	err = g.Wait()
	// the loop has stopped, so the overlay can be released from this goroutine
	c.Overlay.Close()
	return err
}

// StartDebugLoggers adds the debug loggers to g.
func StartDebugLoggers(ctx context.Context, g *errgroup.Group, c *AppContainer) {
	g.Go(func() error { return debug.RunGoroutineLogger(ctx, 5*time.Second, c.Logger) })
	g.Go(func() error { return debug.RunMemLogger(ctx, 5*time.Second, c.Logger) })
	if s := c.Config.ProcessStatsSeconds; s > 0 {
		g.Go(func() error {
			return debug.RunProcessLogger(ctx, time.Duration(s)*time.Second, c.LastFPS, c.Logger)
		})
	}
}

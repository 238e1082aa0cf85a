package app

import (
	"log/slog"
	"sync/atomic"

	"github.com/soocke/fps-overlay-go/config"
	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/ui/presenter"
)

// AppContainer assembles the sampler, the shared overlay and its configuration.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Sampler    *framerate.Sampler
	Overlay    *presenter.SharedOverlay

	lastFPS atomic.Int64
}

// BuildContainer constructs all components. The overlay surface is created by
// newSurface the first time the overlay is used.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, newSurface func() host.Surface) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.lastFPS.Store(-1)
	c.Sampler = framerate.NewSampler(cfg.SamplerOptions(logger)...)
	c.Overlay = presenter.NewSharedOverlay(func() *presenter.OverlayController {
		ctrl := presenter.NewOverlayController(c.Sampler, newSurface(), cfg.Formatter(), logger)
		ctrl.SetDefaultHeight(cfg.OverlayHeight)
		ctrl.SetHistory(framerate.NewHistory(cfg.HistorySize))
		// wrap the controller so the debug loggers can read the last rate off-loop
		c.Sampler.SetObserver(framerate.ObserverFunc(func(s framerate.RateSample) {
			ctrl.OnFrameRate(s)
			c.lastFPS.Store(int64(s.FramesPerSecond))
		}))
		return ctrl
	})
	return c
}

// LastFPS returns the most recent rate or -1 before the first sample. Safe from any goroutine.
func (c *AppContainer) LastFPS() int { return int(c.lastFPS.Load()) }

// ShowOptions returns the options Show is called with for loop.
func (c *AppContainer) ShowOptions(loop framerate.RunLoop) presenter.ShowOptions {
	return presenter.ShowOptions{Loop: loop, Mode: c.Config.Mode()}
}

// ApplyConfig adopts a reloaded configuration. Readout thresholds, rounding
// and strip height apply immediately; sampling settings apply the next time
// the process starts. Must run on the host loop.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	if c == nil || cfg == nil {
		return
	}
	*c.Config = *cfg
	ctrl := c.Overlay.Controller()
	ctrl.SetFormatter(cfg.Formatter())
	ctrl.SetDefaultHeight(cfg.OverlayHeight)
	if c.Logger != nil {
		c.Logger.Info("config.applied",
			"good_fps", cfg.GoodFPS,
			"warning_fps", cfg.WarningFPS,
			"period_rounding", cfg.PeriodRounding,
			"overlay_height", cfg.OverlayHeight,
		)
	}
}

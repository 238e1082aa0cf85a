// Package desktop runs the overlay on top of a Tk demo window.
package desktop

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/fps-overlay-go/app"
	"github.com/soocke/fps-overlay-go/config"
	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/ui/theme"
	"github.com/soocke/fps-overlay-go/ui/view"
)

const (
	// OverlayTitle names the overlay Toplevel; focus restore looks it up by title.
	OverlayTitle = "FPS Overlay"
	// statsTick paces the stats labels and config reload polling.
	statsTick = 250 * time.Millisecond
	// showDelay lets the main window map before the overlay reads its geometry.
	showDelay = 200 * time.Millisecond
)

type desktop struct {
	c      *app.AppContainer
	title  string
	width  int
	height int

	loop    *view.TkRunLoop
	host    *view.TkHost
	root    *view.RootView
	anim    framerate.Registration
	afterID string

	reloads chan *config.Config
	cancel  context.CancelFunc
}

// NewSurface is the overlay surface factory for BuildContainer.
func NewSurface() host.Surface { return view.NewOverlayWindow(OverlayTitle) }

// Run builds the demo window, shows the overlay and blocks until the window is closed.
func Run(ctx context.Context, c *app.AppContainer, title string, width, height int) error {
	d := &desktop{c: c, title: title, width: width, height: height, reloads: make(chan *config.Config, 1)}
	ctx, d.cancel = context.WithCancel(ctx)
	defer d.cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := config.Watch(gctx, c.ConfigPath, c.Logger, func(cfg *config.Config) {
			// keep only the newest pending config
			select {
			case <-d.reloads:
			default:
			}
			d.reloads <- cfg
		})
		if err != nil {
			c.Logger.Warn("config.watch disabled", "error", err)
		}
		return nil
	})
	if c.Config.Debug {
		app.StartDebugLoggers(gctx, g, c)
	}

	d.start()
	App.Wait()

	d.cancel()
	return g.Wait()
}

func (d *desktop) start() {
	App.WmTitle(d.title)
	WmProtocol(App, "WM_DELETE_WINDOW", d.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", d.width, d.height))
	theme.InitStyles()

	cfg := d.c.Config
	d.loop = view.NewTkRunLoop(cfg.FramePeriod(), d.c.Logger)
	d.host = view.NewTkHost(d.loop, d.title, OverlayTitle, 0, d.c.Logger)
	d.root = view.NewRootView(cfg, d.c.ConfigPath, d.c.Logger)
	d.root.Build(view.Handlers{
		ShowOverlay: d.showOverlay,
		HideOverlay: d.c.Overlay.Hide,
		ChangeLoad:  func(delta int) { d.root.SetLoad(d.root.Load() + delta) },
		Exit:        d.exitHandler,
		Applied:     d.c.ApplyConfig,
	})

	reg, err := d.loop.Register(framerate.ModeCommon, d.root.Animate)
	if err != nil {
		d.c.Logger.Error("animation.register failed", "error", err)
	} else {
		d.anim = reg
	}
	TclAfter(showDelay, d.showOverlay)
	d.scheduleUpdate()
}

func (d *desktop) showOverlay() {
	if err := d.c.Overlay.Show(d.host, d.c.ShowOptions(d.loop)); err != nil {
		d.c.Logger.Error("overlay.show failed", "error", err)
	}
}

// update refreshes the stats labels and applies a pending config reload.
func (d *desktop) update() {
	select {
	case cfg := <-d.reloads:
		d.c.ApplyConfig(cfg)
		d.root.ConfigPanel.Refresh()
	default:
	}
	if ctrl := d.c.Overlay.Controller(); ctrl != nil {
		d.root.Stats.SetShown(ctrl.Model().ShownFor(time.Now()))
		d.root.Stats.SetHistory(ctrl.History().Snapshot())
	}
	d.scheduleUpdate()
}

func (d *desktop) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	d.afterID = TclAfter(statsTick, d.update)
}

func (d *desktop) exitHandler() {
	if d.afterID != "" {
		TclAfterCancel(d.afterID)
		d.afterID = ""
	}
	if d.anim != nil {
		d.anim.Invalidate()
	}
	d.c.Overlay.Close()
	d.loop.Close()
	d.cancel()
	Destroy(App)
}

package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/fps-overlay-go/capture"
	"github.com/soocke/fps-overlay-go/domain/action"
	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TkHost exposes the Tk main window (App) as an overlay host.
type TkHost struct {
	loop         *TkRunLoop
	logger       *slog.Logger
	mainTitle    string
	overlayTitle string
	inset        int

	geometry host.Geometry
	last     image.Rectangle
}

// NewTkHost binds <Configure> on App so size and position changes reach
// geometry subscribers. inset is the reserved top strip height (0 = unknown).
func NewTkHost(loop *TkRunLoop, mainTitle, overlayTitle string, inset int, logger *slog.Logger) *TkHost {
	h := &TkHost{loop: loop, logger: logger, mainTitle: mainTitle, overlayTitle: overlayTitle, inset: inset}
	Bind(App, "<Configure>", Command(h.onConfigure))
	return h
}

// Bounds parses the main window geometry. Before the window is mapped Tk
// reports 1x1, in which case the primary screen is used instead.
func (h *TkHost) Bounds() (image.Rectangle, error) {
	if r, ok := host.ParseGeometry(WmGeometry(App)); ok && r.Dx() > 1 && r.Dy() > 1 {
		return r, nil
	}
	r, err := capture.ScreenBounds()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("%w: %v", host.ErrNoMainWindow, err)
	}
	return r, nil
}

func (h *TkHost) TopInset() int { return h.inset }

// FocusMain moves Tk focus back to App and, on Windows, brings the main window
// to the foreground when the overlay grabbed it.
func (h *TkHost) FocusMain() {
	Focus(App)
	moved, err := action.RestoreForeground(h.overlayTitle, h.mainTitle)
	if h.logger == nil {
		return
	}
	if err != nil {
		h.logger.Debug("host.focus restore failed", "error", err)
		return
	}
	if moved {
		h.logger.Debug("host.focus restored", "window", h.mainTitle)
	}
}

func (h *TkHost) RunLoop() framerate.RunLoop { return h.loop }

func (h *TkHost) OnGeometryChange(fn func(image.Rectangle)) func() {
	return h.geometry.Subscribe(fn)
}

// onConfigure fires for App and every child widget; only real bounds changes are forwarded.
func (h *TkHost) onConfigure() {
	r, err := h.Bounds()
	if err != nil || r == h.last {
		return
	}
	h.last = r
	h.geometry.Notify(r)
}

var _ host.Host = (*TkHost)(nil)

package host

import (
	"image"

	"github.com/soocke/fps-overlay-go/domain/framerate"
)

// StaticHost is a Host with fixed bounds, used for headless runs.
// Resize simulates a geometry change notification.
type StaticHost struct {
	bounds   image.Rectangle
	inset    int
	loop     framerate.RunLoop
	geometry Geometry

	// FocusRestores counts FocusMain calls.
	FocusRestores int
}

// NewStaticHost returns a host with the given bounds and top inset running on loop.
func NewStaticHost(bounds image.Rectangle, inset int, loop framerate.RunLoop) *StaticHost {
	return &StaticHost{bounds: bounds, inset: inset, loop: loop}
}

func (h *StaticHost) Bounds() (image.Rectangle, error) {
	if h.bounds.Empty() {
		return image.Rectangle{}, ErrNoMainWindow
	}
	return h.bounds, nil
}

func (h *StaticHost) TopInset() int             { return h.inset }
func (h *StaticHost) FocusMain()                { h.FocusRestores++ }
func (h *StaticHost) RunLoop() framerate.RunLoop { return h.loop }

func (h *StaticHost) OnGeometryChange(fn func(image.Rectangle)) func() {
	return h.geometry.Subscribe(fn)
}

// Resize changes the bounds and notifies geometry subscribers.
func (h *StaticHost) Resize(bounds image.Rectangle) {
	h.bounds = bounds
	h.geometry.Notify(bounds)
}

var _ Host = (*StaticHost)(nil)

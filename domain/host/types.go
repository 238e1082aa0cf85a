package host

import (
	"errors"
	"image"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/readout"
)

// ErrLoopClosed is returned by EventLoop.Post once the loop has exited.
var ErrLoopClosed = errors.New("host: event loop closed")

// ErrNoMainWindow is returned by Host.Bounds when the host has no main window yet.
var ErrNoMainWindow = errors.New("host: no main window")

// Host is the application the overlay is attached to.
// All methods are called from the host's run loop.
type Host interface {
	// Bounds returns the main window bounds in screen coordinates.
	Bounds() (image.Rectangle, error)
	// TopInset returns the height of the top strip (status bar, title area) or 0 if unknown.
	TopInset() int
	// FocusMain gives input focus back to the main window.
	FocusMain()
	// RunLoop returns the default frame source of the host.
	RunLoop() framerate.RunLoop
	// OnGeometryChange subscribes fn to size/orientation changes.
	OnGeometryChange(fn func(bounds image.Rectangle)) (unsubscribe func())
}

// Surface is the top-level overlay window.
type Surface interface {
	SetFrame(r image.Rectangle)
	Show()
	Hide()
	Visible() bool
	SetText(text string)
	SetSeverity(s readout.Severity)
	// HasFocus reports whether the overlay currently receives keyboard input.
	HasFocus() bool
}

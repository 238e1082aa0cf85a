package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// screenRect is swapped in tests.
var screenRect = screenshot.ScreenRect

// ScreenBounds returns the bounds of the primary screen.
func ScreenBounds() (image.Rectangle, error) {
	r, err := screenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen bounds: %w", err)
	}
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("screen bounds: empty rectangle %v", r)
	}
	return r, nil
}

// ClampToScreen moves r so it lies inside screen, keeping its size where possible.
// A rectangle larger than the screen is cut to the screen.
func ClampToScreen(r, screen image.Rectangle) image.Rectangle {
	if screen.Empty() || r.Empty() {
		return r
	}
	w, h := min(r.Dx(), screen.Dx()), min(r.Dy(), screen.Dy())
	x := min(max(r.Min.X, screen.Min.X), screen.Max.X-w)
	y := min(max(r.Min.Y, screen.Min.Y), screen.Max.Y-h)
	return image.Rect(x, y, x+w, y+h)
}

package images

import (
	"image"
	"image/color"
)

// Pattern renders the animated test card shown by the demo window.
// Load repeats the blend pass so the frame cost can be raised on demand.
type Pattern struct {
	Width, Height int
	BarWidth      int
	Load          int
}

// Render draws the pattern at the given phase (pixels scrolled).
// A vertical bar sweeps across a horizontal gradient and wraps at the right edge.
func (p Pattern) Render(phase int) *image.RGBA {
	w, h := max(p.Width, 1), max(p.Height, 1)
	bar := p.BarWidth
	if bar <= 0 {
		bar = max(w/16, 1)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	offset := ((phase % w) + w) % w
	for pass := 0; pass <= max(p.Load, 0); pass++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				shade := uint8(x * 255 / w)
				c := color.RGBA{shade / 3, shade / 2, shade, 0xff}
				if inBar(x, offset, bar, w) {
					c = color.RGBA{0xf1, 0xf5, 0xf9, 0xff}
				}
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// inBar reports whether column x lies in the bar starting at offset, wrapping at w.
func inBar(x, offset, bar, w int) bool {
	end := offset + bar
	if end <= w {
		return x >= offset && x < end
	}
	return x >= offset || x < end-w
}

package host

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

// Geometry fans out geometry change notifications to subscribers.
// The zero value is ready to use. Not safe for concurrent use; keep it on the run loop.
type Geometry struct {
	next int
	subs map[int]func(image.Rectangle)
}

// Subscribe registers fn and returns a function removing it again.
// The returned function may be called more than once.
func (g *Geometry) Subscribe(fn func(image.Rectangle)) (unsubscribe func()) {
	if g == nil || fn == nil {
		return func() {}
	}
	if g.subs == nil {
		g.subs = make(map[int]func(image.Rectangle))
	}
	id := g.next
	g.next++
	g.subs[id] = fn
	return func() { delete(g.subs, id) }
}

// Notify calls every subscriber with bounds.
func (g *Geometry) Notify(bounds image.Rectangle) {
	if g == nil {
		return
	}
	for _, fn := range g.subs {
		fn(bounds)
	}
}

// Len returns the number of subscribers.
func (g *Geometry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.subs)
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)([+-]-?\d+)([+-]-?\d+)$`)

// ParseGeometry parses a window manager geometry string and returns the corresponding rectangle.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, errX := parseOffset(m[3])
	y, errY := parseOffset(m[4])
	if w <= 0 || h <= 0 || errX != nil || errY != nil {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// FormatGeometry renders r as "WIDTHxHEIGHT+X+Y".
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// parseOffset accepts "+N", "-N" and "+-N" (Tk reports negative positions that way).
func parseOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "+")
	return strconv.Atoi(s)
}

package host

import (
	"sort"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
)

// Registry holds frame callbacks for a run loop and dispatches them in
// registration order. The zero value is ready to use. It is confined to the
// loop's execution context.
type Registry struct {
	regs   map[uint64]*registration
	nextID uint64

	// OnEmpty, when set, runs after the last registration is invalidated.
	OnEmpty func()
}

type registration struct {
	owner *Registry
	id    uint64
	mode  framerate.DispatchMode
	fn    func(time.Time)
}

// Invalidate removes the registration. It takes effect immediately, including
// for the frame currently being dispatched, and may be called more than once.
func (r *registration) Invalidate() {
	if r == nil || r.owner == nil {
		return
	}
	reg := r.owner
	r.owner = nil
	if _, ok := reg.regs[r.id]; !ok {
		return
	}
	delete(reg.regs, r.id)
	if len(reg.regs) == 0 && reg.OnEmpty != nil {
		reg.OnEmpty()
	}
}

// Add registers fn under mode.
func (g *Registry) Add(mode framerate.DispatchMode, fn func(time.Time)) framerate.Registration {
	if g.regs == nil {
		g.regs = make(map[uint64]*registration)
	}
	g.nextID++
	r := &registration{owner: g, id: g.nextID, mode: mode, fn: fn}
	g.regs[r.id] = r
	return r
}

// Len returns the number of live registrations.
func (g *Registry) Len() int { return len(g.regs) }

// Has reports whether a live registration uses mode.
func (g *Registry) Has(mode framerate.DispatchMode) bool {
	for _, r := range g.regs {
		if r.mode == mode {
			return true
		}
	}
	return false
}

// Dispatch calls every live registration whose mode passes accept (nil accepts all).
func (g *Registry) Dispatch(now time.Time, accept func(framerate.DispatchMode) bool) {
	ids := make([]uint64, 0, len(g.regs))
	for id := range g.regs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r, ok := g.regs[id] // a previous callback may have invalidated it
		if !ok {
			continue
		}
		if accept != nil && !accept(r.mode) {
			continue
		}
		if r.fn != nil {
			r.fn(now)
		}
	}
}

// Clear drops every registration without running OnEmpty.
func (g *Registry) Clear() {
	for _, r := range g.regs {
		r.owner = nil
	}
	g.regs = nil
}

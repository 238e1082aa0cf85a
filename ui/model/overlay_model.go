package model

import (
	"image"
	"time"

	"github.com/soocke/fps-overlay-go/domain/readout"
)

// OverlayModel holds the overlay's presentation state. The zero value is hidden and usable.
// No synchronization needed: updates occur on the host run loop.
type OverlayModel struct {
	visible    bool
	frame      image.Rectangle
	last       readout.Readout
	hasReadout bool

	shownAt     time.Time
	accumulated time.Duration
}

// NewOverlayModel returns a hidden overlay model.
func NewOverlayModel() *OverlayModel { return &OverlayModel{} }

// Visible reports whether the overlay is shown.
func (m *OverlayModel) Visible() bool {
	if m == nil {
		return false
	}
	return m.visible
}

// SetVisible stores the visibility flag and tracks how long the overlay stays shown.
func (m *OverlayModel) SetVisible(v bool, now time.Time) {
	if m == nil || m.visible == v {
		return
	}
	m.visible = v
	if v {
		m.shownAt = now
		return
	}
	if !m.shownAt.IsZero() {
		m.accumulated += now.Sub(m.shownAt)
	}
}

// ShownFor returns the total time the overlay has been visible, including the current session.
func (m *OverlayModel) ShownFor(now time.Time) time.Duration {
	if m == nil {
		return 0
	}
	total := m.accumulated
	if m.visible && !m.shownAt.IsZero() {
		total += now.Sub(m.shownAt)
	}
	return total
}

// Frame returns the last applied overlay frame (may be empty).
func (m *OverlayModel) Frame() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.frame
}

// SetFrame stores the overlay frame. Empty rectangles are stored as-is.
func (m *OverlayModel) SetFrame(r image.Rectangle) {
	if m == nil {
		return
	}
	m.frame = r
}

// Readout returns the last rendered readout and whether one exists.
func (m *OverlayModel) Readout() (readout.Readout, bool) {
	if m == nil {
		return readout.Readout{}, false
	}
	return m.last, m.hasReadout
}

// SetReadout stores the last rendered readout.
func (m *OverlayModel) SetReadout(r readout.Readout) {
	if m == nil {
		return
	}
	m.last = r
	m.hasReadout = true
}

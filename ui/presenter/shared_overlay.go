package presenter

import (
	"sync"

	"github.com/soocke/fps-overlay-go/domain/host"
)

// SharedOverlay is the process-wide overlay. The controller is built on
// first use; IsVisible never triggers the build.
type SharedOverlay struct {
	build func() *OverlayController
	once  sync.Once
	ctrl  *OverlayController
	built bool
}

// NewSharedOverlay returns a lazily built overlay.
func NewSharedOverlay(build func() *OverlayController) *SharedOverlay {
	return &SharedOverlay{build: build}
}

// Controller builds the controller on first call and returns it afterwards.
func (s *SharedOverlay) Controller() *OverlayController {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if s.build != nil {
			s.ctrl = s.build()
		}
		s.built = true
	})
	return s.ctrl
}

// Show delegates to the shared controller.
func (s *SharedOverlay) Show(h host.Host, opts ShowOptions) error {
	return s.Controller().Show(h, opts)
}

// Hide delegates to the shared controller. It does not build one.
func (s *SharedOverlay) Hide() {
	if s == nil || !s.built {
		return
	}
	s.ctrl.Hide()
}

// IsVisible is false until the controller has been built and shown.
func (s *SharedOverlay) IsVisible() bool {
	if s == nil || !s.built {
		return false
	}
	return s.ctrl.IsVisible()
}

// Close releases the controller if it was built.
func (s *SharedOverlay) Close() {
	if s == nil || !s.built {
		return
	}
	s.ctrl.Close()
}

package model

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/fps-overlay-go/domain/readout"
)

func TestOverlayModel_VisibilityLifecycle(t *testing.T) {
	m := NewOverlayModel()
	base := time.Unix(0, 0)

	if m.Visible() {
		t.Fatalf("new model should be hidden")
	}
	m.SetVisible(true, base)
	m.SetVisible(true, base.Add(2*time.Second)) // no restart of the session
	if got := m.ShownFor(base.Add(5 * time.Second)); got != 5*time.Second {
		t.Fatalf("expected 5s shown, got %v", got)
	}
	m.SetVisible(false, base.Add(5*time.Second))
	if got := m.ShownFor(base.Add(9 * time.Second)); got != 5*time.Second {
		t.Fatalf("hidden time must not accumulate, got %v", got)
	}
	m.SetVisible(true, base.Add(10*time.Second))
	m.SetVisible(false, base.Add(13*time.Second))
	if got := m.ShownFor(base.Add(20 * time.Second)); got != 8*time.Second {
		t.Fatalf("expected 8s total, got %v", got)
	}
}

func TestOverlayModel_FrameAndReadout(t *testing.T) {
	m := NewOverlayModel()
	if _, ok := m.Readout(); ok {
		t.Fatalf("no readout expected yet")
	}
	r := image.Rect(0, 0, 800, 20)
	m.SetFrame(r)
	m.SetReadout(readout.NewFormatter().Format(42))
	got, ok := m.Readout()
	if !ok || got.Rate != 42 || m.Frame() != r {
		t.Fatalf("unexpected state: readout=%+v ok=%v frame=%v", got, ok, m.Frame())
	}

	var nilModel *OverlayModel
	nilModel.SetVisible(true, time.Now())
	if nilModel.Visible() || nilModel.ShownFor(time.Now()) != 0 {
		t.Fatalf("nil model must be inert")
	}
}

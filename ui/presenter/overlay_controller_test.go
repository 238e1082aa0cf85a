package presenter

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/domain/readout"
)

var t0 = time.Unix(1_700_000_000, 0)

type mockSurface struct {
	frame          image.Rectangle
	visible        bool
	focused        bool
	text           string
	severity       readout.Severity
	shows, hides   int
	frames, labels int
}

func (s *mockSurface) SetFrame(r image.Rectangle)       { s.frame = r; s.frames++ }
func (s *mockSurface) Show()                            { s.visible = true; s.shows++ }
func (s *mockSurface) Hide()                            { s.visible = false; s.hides++ }
func (s *mockSurface) Visible() bool                    { return s.visible }
func (s *mockSurface) SetText(text string)              { s.text = text; s.labels++ }
func (s *mockSurface) SetSeverity(sev readout.Severity) { s.severity = sev }
func (s *mockSurface) HasFocus() bool                   { return s.focused }

var _ host.Surface = (*mockSurface)(nil)

type mockHost struct {
	bounds   image.Rectangle
	err      error
	inset    int
	loop     framerate.RunLoop
	focus    int
	geometry host.Geometry
}

func (h *mockHost) Bounds() (image.Rectangle, error) { return h.bounds, h.err }
func (h *mockHost) TopInset() int                    { return h.inset }
func (h *mockHost) FocusMain()                       { h.focus++ }
func (h *mockHost) RunLoop() framerate.RunLoop       { return h.loop }
func (h *mockHost) OnGeometryChange(fn func(image.Rectangle)) func() {
	return h.geometry.Subscribe(fn)
}

var _ host.Host = (*mockHost)(nil)

type fixture struct {
	loop    *host.EventLoop
	host    *mockHost
	surface *mockSurface
	ctrl    *OverlayController
}

func newFixture() *fixture {
	loop := host.NewEventLoop(0, nil)
	h := &mockHost{bounds: image.Rect(0, 0, 800, 600), loop: loop}
	s := &mockSurface{}
	sampler := framerate.NewSampler(framerate.WithClock(func() time.Time { return t0 }))
	c := NewOverlayController(sampler, s, readout.NewFormatter(), nil)
	c.now = func() time.Time { return t0 }
	return &fixture{loop: loop, host: h, surface: s, ctrl: c}
}

// runFrames steps the loop n times evenly across d.
func (f *fixture) runFrames(n int, d time.Duration) {
	for i := 1; i <= n; i++ {
		f.loop.Step(t0.Add(time.Duration(i) * d / time.Duration(n)))
	}
}

func TestOverlayController_ShowTwiceIsIdempotent(t *testing.T) {
	f := newFixture()
	for i := 0; i < 2; i++ {
		if err := f.ctrl.Show(f.host, ShowOptions{}); err != nil {
			t.Fatalf("show %d: %v", i, err)
		}
	}
	if !f.ctrl.IsVisible() || !f.surface.visible {
		t.Fatalf("overlay should be visible")
	}
	if f.loop.Live() != 1 {
		t.Fatalf("expected exactly one live registration, got %d", f.loop.Live())
	}
	if f.host.geometry.Len() != 1 {
		t.Fatalf("expected one geometry subscription, got %d", f.host.geometry.Len())
	}
	want := image.Rect(0, 0, 800, DefaultOverlayHeight)
	if f.surface.frame != want {
		t.Fatalf("frame=%v want %v", f.surface.frame, want)
	}
}

func TestOverlayController_HideWhenHiddenIsNoop(t *testing.T) {
	f := newFixture()
	f.ctrl.Hide()
	if f.surface.hides != 0 || f.ctrl.IsVisible() {
		t.Fatalf("hide on hidden overlay touched the surface: hides=%d", f.surface.hides)
	}
	_ = f.ctrl.Show(f.host, ShowOptions{})
	f.ctrl.Hide()
	f.ctrl.Hide()
	if f.surface.hides != 1 || f.loop.Live() != 0 {
		t.Fatalf("hides=%d live=%d", f.surface.hides, f.loop.Live())
	}
}

func TestOverlayController_SixtyFPSLabel(t *testing.T) {
	f := newFixture()
	if err := f.ctrl.Show(f.host, ShowOptions{Mode: framerate.ModeCommon}); err != nil {
		t.Fatalf("show: %v", err)
	}
	f.runFrames(60, time.Second)
	if f.surface.text != "60 FPS (16ms)" {
		t.Fatalf("label=%q", f.surface.text)
	}
	if f.surface.severity != readout.SeverityGood {
		t.Fatalf("severity=%v", f.surface.severity)
	}
	if got, ok := f.ctrl.Model().Readout(); !ok || got.Rate != 60 {
		t.Fatalf("model readout=%+v ok=%v", got, ok)
	}
	if f.ctrl.History().Len() != 1 {
		t.Fatalf("history len=%d", f.ctrl.History().Len())
	}
}

func TestOverlayController_SeverityFollowsRate(t *testing.T) {
	f := newFixture()
	_ = f.ctrl.Show(f.host, ShowOptions{Mode: framerate.ModeCommon})
	f.runFrames(20, time.Second)
	if f.surface.text != "20 FPS (50ms)" || f.surface.severity != readout.SeverityBad {
		t.Fatalf("label=%q severity=%v", f.surface.text, f.surface.severity)
	}
}

func TestOverlayController_ReturnsFocusToMainWindow(t *testing.T) {
	f := newFixture()
	_ = f.ctrl.Show(f.host, ShowOptions{})
	f.surface.focused = true
	f.runFrames(30, time.Second)
	if f.host.focus != 1 {
		t.Fatalf("expected one focus restore, got %d", f.host.focus)
	}
	f.surface.focused = false
	f.runFrames(30, time.Second) // same timestamps, window already reset
	if f.host.focus != 1 {
		t.Fatalf("focus restored without overlay focus: %d", f.host.focus)
	}
}

func TestOverlayController_GeometryWhileHidden(t *testing.T) {
	f := newFixture()
	_ = f.ctrl.Show(f.host, ShowOptions{})
	f.ctrl.Hide()
	f.host.geometry.Notify(image.Rect(0, 0, 600, 800))
	if f.surface.frame != image.Rect(0, 0, 600, DefaultOverlayHeight) {
		t.Fatalf("frame not updated while hidden: %v", f.surface.frame)
	}
	if f.surface.visible || f.loop.Live() != 0 {
		t.Fatalf("geometry change must not show or sample: visible=%v live=%d", f.surface.visible, f.loop.Live())
	}
}

func TestOverlayController_UsesTopInset(t *testing.T) {
	f := newFixture()
	f.host.inset = 44
	f.host.bounds = image.Rect(100, 50, 500, 350)
	_ = f.ctrl.Show(f.host, ShowOptions{})
	if want := image.Rect(100, 50, 500, 94); f.surface.frame != want {
		t.Fatalf("frame=%v want %v", f.surface.frame, want)
	}
	f.host.inset = 0
	f.ctrl.SetDefaultHeight(24)
	f.host.geometry.Notify(image.Rect(0, 0, 300, 300))
	if want := image.Rect(0, 0, 300, 24); f.surface.frame != want {
		t.Fatalf("frame=%v want %v", f.surface.frame, want)
	}
}

func TestOverlayController_NoHostWindow(t *testing.T) {
	f := newFixture()
	if err := f.ctrl.Show(nil, ShowOptions{}); !errors.Is(err, ErrNoHostWindow) {
		t.Fatalf("nil host: %v", err)
	}
	f.host.err = host.ErrNoMainWindow
	if err := f.ctrl.Show(f.host, ShowOptions{}); !errors.Is(err, ErrNoHostWindow) {
		t.Fatalf("missing window: %v", err)
	}
	if f.surface.shows != 0 || f.ctrl.IsVisible() || f.loop.Live() != 0 {
		t.Fatalf("failed show left state behind: shows=%d live=%d", f.surface.shows, f.loop.Live())
	}
}

func TestOverlayController_ExplicitLoopOverridesHost(t *testing.T) {
	f := newFixture()
	other := host.NewEventLoop(0, nil)
	_ = f.ctrl.Show(f.host, ShowOptions{Loop: other})
	if other.Live() != 1 || f.loop.Live() != 0 {
		t.Fatalf("other=%d host=%d", other.Live(), f.loop.Live())
	}
	// re-show on the host loop moves the registration
	_ = f.ctrl.Show(f.host, ShowOptions{})
	if other.Live() != 0 || f.loop.Live() != 1 {
		t.Fatalf("after move: other=%d host=%d", other.Live(), f.loop.Live())
	}
}

func TestOverlayController_ClosedLoopFailsShow(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.loop.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	err := f.ctrl.Show(f.host, ShowOptions{})
	if !errors.Is(err, host.ErrLoopClosed) {
		t.Fatalf("expected ErrLoopClosed, got %v", err)
	}
	if f.ctrl.IsVisible() || f.surface.visible {
		t.Fatalf("overlay must be hidden after a failed start")
	}
}

func TestOverlayController_Close(t *testing.T) {
	f := newFixture()
	_ = f.ctrl.Show(f.host, ShowOptions{})
	f.ctrl.Close()
	if f.host.geometry.Len() != 0 || f.loop.Live() != 0 || f.ctrl.IsVisible() {
		t.Fatalf("close left subs=%d live=%d", f.host.geometry.Len(), f.loop.Live())
	}
	f.ctrl.Close()
}

func TestOverlayController_NilSafe(t *testing.T) {
	var c *OverlayController
	if err := c.Show(&mockHost{}, ShowOptions{}); err != nil {
		t.Fatalf("nil show: %v", err)
	}
	c.Hide()
	c.OnFrameRate(framerate.RateSample{FramesPerSecond: 60})
	c.OnGeometryChange(image.Rect(0, 0, 1, 1))
	c.Close()
	if c.IsVisible() {
		t.Fatalf("nil controller cannot be visible")
	}
}

func TestSharedOverlay_LazyBuild(t *testing.T) {
	f := newFixture()
	builds := 0
	shared := NewSharedOverlay(func() *OverlayController {
		builds++
		return f.ctrl
	})
	if shared.IsVisible() {
		t.Fatalf("unbuilt overlay reported visible")
	}
	shared.Hide()
	if builds != 0 {
		t.Fatalf("IsVisible/Hide built the controller")
	}
	if err := shared.Show(f.host, ShowOptions{}); err != nil {
		t.Fatalf("show: %v", err)
	}
	_ = shared.Show(f.host, ShowOptions{})
	if builds != 1 || !shared.IsVisible() {
		t.Fatalf("builds=%d visible=%v", builds, shared.IsVisible())
	}
	shared.Hide()
	if shared.IsVisible() || f.loop.Live() != 0 {
		t.Fatalf("hide did not stop sampling")
	}
	shared.Close()
}

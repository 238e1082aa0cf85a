package view

import (
	"image"
	"runtime"
	"strings"

	"github.com/soocke/fps-overlay-go/capture"
	"github.com/soocke/fps-overlay-go/domain/host"
	"github.com/soocke/fps-overlay-go/domain/readout"
	"github.com/soocke/fps-overlay-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// OverlayWindow is the top-most translucent strip holding the readout label.
// The Toplevel is built on first use and only ever withdrawn, never destroyed.
type OverlayWindow struct {
	title   string
	win     *ToplevelWidget
	label   *LabelWidget
	frame   image.Rectangle
	visible bool
}

// NewOverlayWindow returns an unbuilt overlay window.
func NewOverlayWindow(title string) *OverlayWindow {
	return &OverlayWindow{title: title}
}

func (o *OverlayWindow) build() {
	if o.win != nil {
		return
	}
	win := App.Toplevel(Borderwidth(0), Background(theme.ColorOverlayBg))
	win.WmTitle(o.title)
	WmWithdraw(win.Window)
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", theme.OverlayAlpha)
	if runtime.GOOS == "windows" {
		WmAttributes(win.Window, "-toolwindow", true)
	}
	o.label = win.Label(Txt(""), Background(theme.ColorOverlayBg), Foreground(theme.ColorBad), Anchor("center"))
	Pack(o.label, Fill("both"), Expand(true))
	o.win = win
}

// SetFrame moves the strip, keeping it on screen when the screen size is known.
func (o *OverlayWindow) SetFrame(r image.Rectangle) {
	if r.Empty() {
		return
	}
	o.build()
	if screen, err := capture.ScreenBounds(); err == nil {
		r = capture.ClampToScreen(r, screen)
	}
	o.frame = r
	WmGeometry(o.win.Window, host.FormatGeometry(r))
}

func (o *OverlayWindow) Show() {
	o.build()
	if o.visible {
		return
	}
	WmDeiconify(o.win.Window)
	o.visible = true
}

func (o *OverlayWindow) Hide() {
	if o.win == nil || !o.visible {
		return
	}
	WmWithdraw(o.win.Window)
	o.visible = false
}

func (o *OverlayWindow) Visible() bool { return o.visible }

func (o *OverlayWindow) SetText(text string) {
	o.build()
	o.label.Configure(Txt(text))
}

func (o *OverlayWindow) SetSeverity(s readout.Severity) {
	o.build()
	o.label.Configure(Foreground(theme.SeverityColor(s)))
}

// HasFocus compares Tk's focus path with the overlay's window path.
func (o *OverlayWindow) HasFocus() bool {
	if o.win == nil {
		return false
	}
	focused := Focus()
	path := o.win.Window.String()
	return focused == path || strings.HasPrefix(focused, path+".")
}

var _ host.Surface = (*OverlayWindow)(nil)

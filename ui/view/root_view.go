package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/fps-overlay-go/config"
	"github.com/soocke/fps-overlay-go/ui/images"
	"github.com/soocke/fps-overlay-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	animationW = 480
	animationH = 160
	// pixels the bar advances per frame
	animationStep = 4
)

// RootView composes the demo main window: animated content whose cost can be
// raised, overlay controls, live stats and the readout settings form.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats       StatsPanel
	ConfigPanel ConfigPanel

	// Widgets
	animation *LabelWidget
	photo     *Img
	loadLabel *LabelWidget

	pattern images.Pattern
	phase   int
}

// Handlers are invoked on user actions.
type Handlers struct {
	ShowOverlay func()
	HideOverlay func()
	ChangeLoad  func(delta int)
	Exit        func()
	Applied     func(cfg *config.Config)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		pattern: images.Pattern{Width: animationW, Height: animationH, Load: cfg.DemoLoad},
	}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: animated content spanning the form columns, buttons on the right
	rv.photo = NewPhoto(Data(images.EncodePNG(rv.pattern.Render(0))))
	rv.animation = Label(Image(rv.photo), Borderwidth(1), Relief("sunken"))
	Grid(rv.animation, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	showBtn := TButton(Txt("Show FPS"), Style(theme.StylePrimaryButton), Command(h.ShowOverlay))
	Grid(showBtn, In(btnFrame), Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	hideBtn := Button(Txt("Hide FPS"), Command(h.HideOverlay))
	Grid(hideBtn, In(btnFrame), Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	lessBtn := Button(Txt("Load -"), Command(func() { h.ChangeLoad(-1) }))
	Grid(lessBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	moreBtn := Button(Txt("Load +"), Command(func() { h.ChangeLoad(1) }))
	Grid(moreBtn, In(btnFrame), Row(2), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.loadLabel = Label(Txt(loadText(rv.pattern.Load)), Anchor("center"))
	Grid(rv.loadLabel, In(btnFrame), Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"))
	themeBtn := Button(Txt("Toggle Dark"), Command(func() { theme.ToggleDark() }))
	Grid(themeBtn, In(btnFrame), Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.Exit))
	Grid(exitBtn, In(btnFrame), Row(5), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: stats
	rv.Stats = NewStatsPanel(nil, 1, 0)

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.Applied)
	rv.ConfigPanel.Build(2)
}

// Animate advances the test card by one frame. It is a frame callback.
func (rv *RootView) Animate(time.Time) {
	if rv == nil || rv.animation == nil {
		return
	}
	rv.phase += animationStep
	pngBytes := images.EncodePNG(rv.pattern.Render(rv.phase))
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if rv.photo != nil {
		rv.photo.Delete()
	}
	rv.photo = NewPhoto(Data(pngBytes))
	rv.animation.Configure(Image(rv.photo))
}

// SetLoad sets how many extra render passes each frame costs.
func (rv *RootView) SetLoad(n int) {
	if rv == nil {
		return
	}
	rv.pattern.Load = max(n, 0)
	if rv.loadLabel != nil {
		rv.loadLabel.Configure(Txt(loadText(rv.pattern.Load)))
	}
}

// Load returns the current extra render passes.
func (rv *RootView) Load() int {
	if rv == nil {
		return 0
	}
	return rv.pattern.Load
}

func loadText(n int) string { return fmt.Sprintf("Load: %d", n) }

package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/fps-overlay-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the readout settings form and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges() // parses widget text into underlying config and persists
	Refresh()      // reloads widget text from the config
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applied  func(*config.Config)
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by config key
}

// NewConfigPanel creates the view bound to cfg. applied runs after a successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, applied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, applied: applied, widgets: make(map[string]*TextWidget)}
}

var panelRows = []struct{ key, label string }{
	{"good_fps", "Good FPS (green at or above)"},
	{"warning_fps", "Warning FPS (orange at or above)"},
	{"period_rounding", "Period Rounding (floor/nearest)"},
	{"report_interval_ms", "Report Interval ms"},
	{"gap_policy", "Gap Policy (report/discard/clamp)"},
	{"max_gap_ms", "Max Gap ms"},
	{"dispatch_mode", "Dispatch Mode (default/common)"},
	{"overlay_height", "Overlay Height px"},
}

func (v *configPanel) Build(startRow int) (row int) {
	row = startRow
	values := v.cfg.Fields()
	for _, r := range panelRows {
		lbl := Label(Txt(r.label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", values[r.key])
		v.widgets[r.key] = w
		row++
	}
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) Refresh() {
	if v.cfg == nil {
		return
	}
	values := v.cfg.Fields()
	for key, w := range v.widgets {
		w.Delete("1.0", END)
		w.Insert("1.0", values[key])
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.TrimSpace(strings.Join(parts, ""))
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	fields := make(map[string]string, len(v.widgets))
	for key, w := range v.widgets {
		fields[key] = v.text(w)
	}
	cfg, rejected := v.cfg.WithFields(fields)
	if len(rejected) > 0 && v.logger != nil {
		v.logger.Warn("config fields rejected", "fields", rejected)
	}
	*v.cfg = cfg
	v.Refresh()
	if v.cfgPath != "" {
		if err := v.cfg.Save(v.cfgPath); err != nil {
			if v.logger != nil {
				v.logger.Error("config save failed", "error", err)
			}
		} else if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
	if v.applied != nil {
		v.applied(v.cfg)
	}
}

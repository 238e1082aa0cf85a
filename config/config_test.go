package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/readout"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	c := DefaultConfig()
	before := *c
	_ = c.Validate()
	if *c != before {
		t.Fatalf("validate changed defaults: %+v -> %+v", before, *c)
	}
	if c.Mode() != framerate.ModeCommon || c.ReportInterval() != time.Second || c.MaxGap() != 3*time.Second {
		t.Fatalf("unexpected derived values: mode=%v interval=%v gap=%v", c.Mode(), c.ReportInterval(), c.MaxGap())
	}
	if f := c.Formatter(); f != readout.NewFormatter() {
		t.Fatalf("default formatter mismatch: %+v", f)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{
		ReportIntervalMs: -1,
		GapPolicy:        "explode",
		MaxGapMs:         10,
		DispatchMode:     "sometimes",
		GoodFPS:          20,
		WarningFPS:       40,
		PeriodRounding:   "ceil",
		DemoLoad:         -3,
	}
	_ = c.Validate()
	d := DefaultConfig()
	if c.ReportIntervalMs != d.ReportIntervalMs || c.GapPolicy != "report" || c.DispatchMode != "common" {
		t.Fatalf("sampling fields not reset: %+v", c)
	}
	if c.MaxGapMs != 3000 {
		t.Fatalf("max gap not raised: %d", c.MaxGapMs)
	}
	if c.GoodFPS != 50 || c.WarningFPS != 30 {
		t.Fatalf("inverted thresholds not reset: good=%d warning=%d", c.GoodFPS, c.WarningFPS)
	}
	if c.PeriodRounding != "floor" || c.OverlayHeight != 20 || c.FramePeriodMs != 16 || c.HistorySize != 60 || c.DemoLoad != 0 {
		t.Fatalf("remaining fields not clamped: %+v", c)
	}

	long := &Config{ReportIntervalMs: 5000, MaxGapMs: 1000}
	_ = long.Validate()
	if long.MaxGapMs != 5000 {
		t.Fatalf("max gap below interval should be raised to it, got %d", long.MaxGapMs)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if *c != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoad_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "overlay.json")
	if err := os.WriteFile(jsonPath, []byte(`{"good_fps": 55, "warning_fps": 25, "period_rounding": "nearest", "gap_policy": "clamp"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if c.GoodFPS != 55 || c.WarningFPS != 25 || c.PeriodRounding != "nearest" || c.GapPolicy != "clamp" {
		t.Fatalf("json values not applied: %+v", c)
	}
	if c.OverlayHeight != 20 {
		t.Fatalf("unset keys should keep defaults, overlay_height=%d", c.OverlayHeight)
	}
	if got := c.Formatter().Format(60).Text; got != "60 FPS (17ms)" {
		t.Fatalf("nearest rounding label=%q", got)
	}

	yamlPath := filepath.Join(dir, "overlay.yaml")
	if err := os.WriteFile(yamlPath, []byte("dispatch_mode: default\noverlay_height: 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if c.Mode() != framerate.ModeDefault || c.OverlayHeight != 32 {
		t.Fatalf("yaml values not applied: %+v", c)
	}
}

func TestLoad_ParseErrorReturnsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(p, []byte(`{"good_fps": `), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if c == nil || *c != *DefaultConfig() {
		t.Fatalf("expected defaults alongside the error, got %+v", c)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FPSOVERLAY_GOOD_FPS", "58")
	t.Setenv("FPSOVERLAY_DEBUG", "true")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.GoodFPS != 58 || !c.Debug {
		t.Fatalf("env overrides not applied: %+v", c)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cfg.json", "cfg.yml"} {
		c := DefaultConfig()
		c.GoodFPS = 90
		c.WarningFPS = 45
		c.HistorySize = 120
		p := filepath.Join(dir, name)
		if err := c.Save(p); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		back, err := Load(p)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if *back != *c {
			t.Fatalf("%s round trip mismatch:\n got %+v\nwant %+v", name, back, c)
		}
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "watched.json")
	if err := DefaultConfig().Save(p); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, nil, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	next := DefaultConfig()
	next.WarningFPS = 12
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case c := <-got:
			if c.WarningFPS == 12 {
				break wait
			}
		case <-tick.C:
			// the watcher may not be armed yet; keep writing
			if err := next.Save(p); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatalf("no reload observed")
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch did not stop")
	}
}

func TestWatch_EmptyPathBlocksUntilDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := Watch(ctx, "", nil, func(*Config) {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

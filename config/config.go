package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/domain/readout"
)

// EnvPrefix prefixes environment overrides, e.g. FPSOVERLAY_GOOD_FPS=55.
const EnvPrefix = "FPSOVERLAY"

// Config holds runtime configuration for sampling, the readout and the demo app.
// Fields may be loaded from a JSON or YAML file and overridden by environment
// variables and command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`

	// Sampling
	ReportIntervalMs int    `json:"report_interval_ms" yaml:"report_interval_ms" mapstructure:"report_interval_ms"`
	GapPolicy        string `json:"gap_policy" yaml:"gap_policy" mapstructure:"gap_policy"`
	MaxGapMs         int    `json:"max_gap_ms" yaml:"max_gap_ms" mapstructure:"max_gap_ms"`
	DispatchMode     string `json:"dispatch_mode" yaml:"dispatch_mode" mapstructure:"dispatch_mode"`
	HistorySize      int    `json:"history_size" yaml:"history_size" mapstructure:"history_size"`

	// Readout
	GoodFPS        int    `json:"good_fps" yaml:"good_fps" mapstructure:"good_fps"`
	WarningFPS     int    `json:"warning_fps" yaml:"warning_fps" mapstructure:"warning_fps"`
	PeriodRounding string `json:"period_rounding" yaml:"period_rounding" mapstructure:"period_rounding"`
	OverlayHeight  int    `json:"overlay_height" yaml:"overlay_height" mapstructure:"overlay_height"`

	// Host loop and demo content
	FramePeriodMs int `json:"frame_period_ms" yaml:"frame_period_ms" mapstructure:"frame_period_ms"`
	DemoLoad      int `json:"demo_load" yaml:"demo_load" mapstructure:"demo_load"`

	// Debug loggers (seconds, 0 disables)
	ProcessStatsSeconds int `json:"process_stats_seconds" yaml:"process_stats_seconds" mapstructure:"process_stats_seconds"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		ReportIntervalMs:    1000,
		GapPolicy:           framerate.GapReport.String(),
		MaxGapMs:            3000,
		DispatchMode:        framerate.ModeCommon.String(),
		HistorySize:         60,
		GoodFPS:             readout.DefaultGoodFPS,
		WarningFPS:          readout.DefaultWarningFPS,
		PeriodRounding:      "floor",
		OverlayHeight:       20,
		FramePeriodMs:       16,
		DemoLoad:            0,
		ProcessStatsSeconds: 0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.ReportIntervalMs <= 0 {
		c.ReportIntervalMs = d.ReportIntervalMs
	}
	switch c.GapPolicy {
	case "report", "discard", "clamp":
	default:
		c.GapPolicy = d.GapPolicy
	}
	if c.MaxGapMs < c.ReportIntervalMs {
		c.MaxGapMs = max(d.MaxGapMs, c.ReportIntervalMs)
	}
	switch c.DispatchMode {
	case "default", "common":
	default:
		c.DispatchMode = d.DispatchMode
	}
	if c.HistorySize <= 0 {
		c.HistorySize = d.HistorySize
	}
	if c.GoodFPS < 0 || c.WarningFPS < 0 || c.WarningFPS > c.GoodFPS {
		c.GoodFPS, c.WarningFPS = d.GoodFPS, d.WarningFPS
	}
	switch c.PeriodRounding {
	case "floor", "nearest":
	default:
		c.PeriodRounding = d.PeriodRounding
	}
	if c.OverlayHeight <= 0 {
		c.OverlayHeight = d.OverlayHeight
	}
	if c.FramePeriodMs <= 0 {
		c.FramePeriodMs = d.FramePeriodMs
	}
	if c.DemoLoad < 0 {
		c.DemoLoad = 0
	}
	if c.ProcessStatsSeconds < 0 {
		c.ProcessStatsSeconds = 0
	}
	return nil
}

// ReportInterval is the sampler reporting interval.
func (c *Config) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalMs) * time.Millisecond
}

// MaxGap is the gap policy threshold.
func (c *Config) MaxGap() time.Duration { return time.Duration(c.MaxGapMs) * time.Millisecond }

// FramePeriod is the host loop target frame period.
func (c *Config) FramePeriod() time.Duration {
	return time.Duration(c.FramePeriodMs) * time.Millisecond
}

// Mode returns the configured dispatch mode.
func (c *Config) Mode() framerate.DispatchMode { return framerate.ParseDispatchMode(c.DispatchMode) }

// Formatter builds the readout formatter from the thresholds and rounding.
func (c *Config) Formatter() readout.Formatter {
	return readout.Formatter{
		GoodFPS:    c.GoodFPS,
		WarningFPS: c.WarningFPS,
		Rounding:   readout.ParseRounding(c.PeriodRounding),
	}
}

// SamplerOptions returns the sampler options derived from c.
func (c *Config) SamplerOptions(logger *slog.Logger) []framerate.Option {
	return []framerate.Option{
		framerate.WithInterval(c.ReportInterval()),
		framerate.WithGapPolicy(framerate.ParseGapPolicy(c.GapPolicy), c.MaxGap()),
		framerate.WithLogger(logger),
	}
}

// Load reads configuration from path (JSON or YAML by extension) and applies
// FPSOVERLAY_* environment overrides. A missing file yields defaults. On a
// parse error it returns defaults with the error. An empty path reads only the
// environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("debug", d.Debug)
	v.SetDefault("report_interval_ms", d.ReportIntervalMs)
	v.SetDefault("gap_policy", d.GapPolicy)
	v.SetDefault("max_gap_ms", d.MaxGapMs)
	v.SetDefault("dispatch_mode", d.DispatchMode)
	v.SetDefault("history_size", d.HistorySize)
	v.SetDefault("good_fps", d.GoodFPS)
	v.SetDefault("warning_fps", d.WarningFPS)
	v.SetDefault("period_rounding", d.PeriodRounding)
	v.SetDefault("overlay_height", d.OverlayHeight)
	v.SetDefault("frame_period_ms", d.FramePeriodMs)
	v.SetDefault("demo_load", d.DemoLoad)
	v.SetDefault("process_stats_seconds", d.ProcessStatsSeconds)
}

// Save writes the configuration to path, as YAML for .yaml/.yml and JSON otherwise.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
}

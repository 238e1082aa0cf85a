package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/soocke/fps-overlay-go/app"
	"github.com/soocke/fps-overlay-go/app/desktop"
	"github.com/soocke/fps-overlay-go/config"
	"github.com/soocke/fps-overlay-go/domain/host"
)

var version = "dev"

func main() {
	cfgPath := flag.String("config", "fps-overlay.json", "path to the JSON or YAML config file")
	headless := flag.Bool("headless", false, "log readouts instead of opening windows")
	debugFlag := flag.Bool("debug", false, "enable debug logging and resource loggers")
	mode := flag.String("mode", "", "dispatch mode: default or common (overrides config)")
	fps := flag.Int("fps", 0, "target frame rate of the host loop (overrides config)")
	duration := flag.Duration("duration", 0, "headless only: stop after this long (0 runs until interrupted)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("fps-overlay", version)
		return
	}

	cfg, err := config.Load(*cfgPath)
	level := slog.LevelInfo
	if *debugFlag || cfg.Debug {
		cfg.Debug = true
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *mode != "" {
		cfg.DispatchMode = *mode
	}
	if *fps > 0 {
		cfg.FramePeriodMs = max(1000 / *fps, 1)
	}
	_ = cfg.Validate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		c := app.BuildContainer(cfg, *cfgPath, logger, func() host.Surface { return host.NewLogSurface(logger) })
		if err := app.RunHeadless(ctx, c, app.HeadlessOptions{Duration: *duration}); err != nil {
			logger.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	c := app.BuildContainer(cfg, *cfgPath, logger, desktop.NewSurface)
	if err := desktop.Run(ctx, c, "FPS Overlay Demo", 820, 560); err != nil {
		logger.Error("desktop run failed", "error", err)
		os.Exit(1)
	}
}

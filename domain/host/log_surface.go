package host

import (
	"image"
	"log/slog"

	"github.com/soocke/fps-overlay-go/domain/readout"
)

// LogSurface is a headless Surface that writes each readout to a logger
// instead of drawing it. It never takes focus.
type LogSurface struct {
	logger   *slog.Logger
	frame    image.Rectangle
	visible  bool
	text     string
	severity readout.Severity
}

// NewLogSurface returns a hidden log surface. A nil logger discards output.
func NewLogSurface(logger *slog.Logger) *LogSurface {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogSurface{logger: logger}
}

func (s *LogSurface) SetFrame(r image.Rectangle) { s.frame = r }

func (s *LogSurface) Show() { s.visible = true }

func (s *LogSurface) Hide() { s.visible = false }

func (s *LogSurface) Visible() bool { return s.visible }

func (s *LogSurface) SetText(text string) { s.text = text }

// SetSeverity completes a readout update; the label is logged here so each
// sample produces a single record.
func (s *LogSurface) SetSeverity(sev readout.Severity) {
	s.severity = sev
	if !s.visible {
		return
	}
	s.logger.Info("overlay.readout", "text", s.text, "severity", sev.String(), "frame", FormatGeometry(s.frame))
}

func (s *LogSurface) HasFocus() bool { return false }

// Text returns the last label text.
func (s *LogSurface) Text() string { return s.text }

var _ Surface = (*LogSurface)(nil)

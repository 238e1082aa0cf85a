package view

import (
	"fmt"
	"time"

	"github.com/soocke/fps-overlay-go/domain/framerate"
	"github.com/soocke/fps-overlay-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsPanel shows how long the overlay has been visible and a summary of recent rates.
type StatsPanel interface {
	SetShown(d time.Duration)
	SetHistory(s framerate.HistorySnapshot)
}

type statsPanel struct {
	shownLbl   *TLabelWidget
	historyLbl *TLabelWidget
}

// NewStatsPanel creates the shown-time and history labels in a grid layout.
// The shown label is placed at (row, startCol) and the history label at (row, startCol+1).
// If parent is nil, labels are positioned relative to the App root.
func NewStatsPanel(parent *FrameWidget, row, startCol int) StatsPanel {
	s := &statsPanel{
		shownLbl:   TLabel(Width(14), Style(theme.StyleStatsLabel)),
		historyLbl: TLabel(Width(36), Style(theme.StyleStatsLabel)),
	}
	if parent != nil {
		Grid(s.shownLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.historyLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.shownLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.historyLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	}
	s.shownLbl.Configure(Txt("Shown: 00:00"))
	s.historyLbl.Configure(Txt("No samples"))
	return s
}

// SetShown updates the visible duration display.
func (s *statsPanel) SetShown(d time.Duration) {
	if s == nil || s.shownLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.shownLbl.Configure(Txt(fmt.Sprintf("Shown: %02d:%02d", min, sec)))
}

// SetHistory updates the recent rate summary.
func (s *statsPanel) SetHistory(h framerate.HistorySnapshot) {
	if s == nil || s.historyLbl == nil {
		return
	}
	if h.Count == 0 {
		s.historyLbl.Configure(Txt("No samples"))
		return
	}
	s.historyLbl.Configure(Txt(fmt.Sprintf("Last %d: min %d  avg %.1f  max %d FPS", h.Count, h.Min, h.Mean, h.Max)))
}

package readout

import (
	"fmt"
	"math"
)

// Severity classifies a frame rate for coloring.
type Severity int

const (
	SeverityBad Severity = iota
	SeverityWarning
	SeverityGood
)

func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityWarning:
		return "warning"
	default:
		return "bad"
	}
}

// Rounding selects how the frame period in milliseconds is rounded.
type Rounding int

const (
	// RoundFloor truncates, 60 FPS shows as 16ms.
	RoundFloor Rounding = iota
	// RoundNearest rounds half away from zero, 60 FPS shows as 17ms.
	RoundNearest
)

// ParseRounding maps "nearest" to RoundNearest and everything else to RoundFloor.
func ParseRounding(s string) Rounding {
	if s == "nearest" {
		return RoundNearest
	}
	return RoundFloor
}

const (
	DefaultGoodFPS    = 50
	DefaultWarningFPS = 30
)

// Readout is the displayable form of one frame rate.
type Readout struct {
	Rate     int
	PeriodMs int
	Text     string
	Severity Severity
}

// Formatter turns rates into readouts. The zero value is not valid; use NewFormatter.
type Formatter struct {
	GoodFPS    int
	WarningFPS int
	Rounding   Rounding
}

// NewFormatter returns a formatter with the default thresholds (50/30) and floor rounding.
func NewFormatter() Formatter {
	return Formatter{GoodFPS: DefaultGoodFPS, WarningFPS: DefaultWarningFPS, Rounding: RoundFloor}
}

// Format maps rate to its readout. Negative rates are treated as 0.
func (f Formatter) Format(rate int) Readout {
	if rate < 0 {
		rate = 0
	}
	period := f.Period(rate)
	return Readout{
		Rate:     rate,
		PeriodMs: period,
		Text:     fmt.Sprintf("%d FPS (%dms)", rate, period),
		Severity: f.Classify(rate),
	}
}

// Period returns the frame period in milliseconds for rate, always ≥ 1.
func (f Formatter) Period(rate int) int {
	r := max(rate, 1)
	var p int
	switch f.Rounding {
	case RoundNearest:
		p = int(math.Round(1000 / float64(r)))
	default:
		p = 1000 / r
	}
	return max(p, 1)
}

// Classify applies the severity thresholds.
func (f Formatter) Classify(rate int) Severity {
	switch {
	case rate >= f.GoodFPS:
		return SeverityGood
	case rate >= f.WarningFPS:
		return SeverityWarning
	default:
		return SeverityBad
	}
}

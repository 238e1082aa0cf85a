package config

import (
	"sort"
	"strconv"
	"strings"
)

// Fields renders the user-editable settings as text keyed by config key.
func (c *Config) Fields() map[string]string {
	if c == nil {
		return nil
	}
	return map[string]string{
		"good_fps":           strconv.Itoa(c.GoodFPS),
		"warning_fps":        strconv.Itoa(c.WarningFPS),
		"period_rounding":    c.PeriodRounding,
		"report_interval_ms": strconv.Itoa(c.ReportIntervalMs),
		"gap_policy":         c.GapPolicy,
		"max_gap_ms":         strconv.Itoa(c.MaxGapMs),
		"dispatch_mode":      c.DispatchMode,
		"overlay_height":     strconv.Itoa(c.OverlayHeight),
	}
}

// WithFields returns a validated copy of c with the given text fields applied.
// Unknown keys and values that do not parse are left unchanged and reported,
// sorted, in rejected.
func (c *Config) WithFields(fields map[string]string) (out Config, rejected []string) {
	out = *c
	ints := map[string]*int{
		"good_fps":           &out.GoodFPS,
		"warning_fps":        &out.WarningFPS,
		"report_interval_ms": &out.ReportIntervalMs,
		"max_gap_ms":         &out.MaxGapMs,
		"overlay_height":     &out.OverlayHeight,
	}
	strs := map[string]*string{
		"period_rounding": &out.PeriodRounding,
		"gap_policy":      &out.GapPolicy,
		"dispatch_mode":   &out.DispatchMode,
	}
	for key, raw := range fields {
		raw = strings.TrimSpace(raw)
		if dst, ok := ints[key]; ok {
			i, err := strconv.Atoi(raw)
			if err != nil {
				rejected = append(rejected, key)
				continue
			}
			*dst = i
			continue
		}
		if dst, ok := strs[key]; ok && raw != "" {
			*dst = strings.ToLower(raw)
			continue
		}
		rejected = append(rejected, key)
	}
	_ = out.Validate()
	sort.Strings(rejected)
	return out, rejected
}

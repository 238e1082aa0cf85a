package config

import (
	"reflect"
	"testing"
)

func TestWithFields(t *testing.T) {
	base := DefaultConfig()
	out, rejected := base.WithFields(map[string]string{
		"good_fps":        " 55 ",
		"warning_fps":     "abc",
		"period_rounding": "Nearest",
		"dispatch_mode":   "",
		"colour":          "red",
	})
	if out.GoodFPS != 55 || out.WarningFPS != 30 || out.PeriodRounding != "nearest" || out.DispatchMode != "common" {
		t.Fatalf("unexpected result %+v", out)
	}
	if want := []string{"colour", "dispatch_mode", "warning_fps"}; !reflect.DeepEqual(rejected, want) {
		t.Fatalf("rejected=%v want %v", rejected, want)
	}
	if base.GoodFPS != 50 {
		t.Fatalf("WithFields must not modify the receiver")
	}
}

func TestWithFields_ValidatesResult(t *testing.T) {
	out, rejected := DefaultConfig().WithFields(map[string]string{"good_fps": "10", "warning_fps": "40"})
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejections %v", rejected)
	}
	if out.GoodFPS != 50 || out.WarningFPS != 30 {
		t.Fatalf("inverted thresholds should be reset, got %d/%d", out.GoodFPS, out.WarningFPS)
	}
}

func TestFields_RoundTrip(t *testing.T) {
	c := DefaultConfig()
	c.OverlayHeight = 28
	out, rejected := c.WithFields(c.Fields())
	if len(rejected) != 0 || out != *c {
		t.Fatalf("fields round trip changed config: %+v rejected=%v", out, rejected)
	}
}

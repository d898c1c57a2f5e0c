package ggplot

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.margin != DefaultMargin {
		t.Errorf("margin = %v, want %v", o.margin, DefaultMargin)
	}
	if o.pollInterval != DefaultPollInterval {
		t.Errorf("pollInterval = %v, want %v", o.pollInterval, DefaultPollInterval)
	}
	if o.borderWidth != DefaultBorderWidth {
		t.Errorf("borderWidth = %v, want %v", o.borderWidth, DefaultBorderWidth)
	}
	if o.border != DefaultBorderColor || o.frame != DefaultFrameColor || o.background != DefaultBackgroundColor {
		t.Errorf("colors = %v %v %v", o.border, o.frame, o.background)
	}
	if o.logger != nil {
		t.Error("logger should default to nil")
	}
}

func TestLoopOptions(t *testing.T) {
	l := slog.New(nopHandler{})
	o := defaultOptions()
	for _, opt := range []LoopOption{
		WithMargin(0.2),
		WithPollInterval(time.Millisecond),
		WithBorderWidth(0.01),
		WithBorderColor(Black),
		WithFrameColor(Red),
		WithBackgroundColor(Blue),
		WithLogger(l),
	} {
		opt(&o)
	}

	if o.margin != 0.2 || o.pollInterval != time.Millisecond || o.borderWidth != 0.01 {
		t.Errorf("got margin %v poll %v border width %v", o.margin, o.pollInterval, o.borderWidth)
	}
	if o.border != Black || o.frame != Red || o.background != Blue {
		t.Errorf("colors = %v %v %v", o.border, o.frame, o.background)
	}
	if o.logger != l {
		t.Error("logger not set")
	}
}

func TestLoopOptions_NegativeClamped(t *testing.T) {
	o := defaultOptions()
	WithMargin(-1)(&o)
	WithPollInterval(-time.Second)(&o)
	WithBorderWidth(-0.5)(&o)
	if o.margin != 0 || o.pollInterval != 0 || o.borderWidth != 0 {
		t.Errorf("got margin %v poll %v border width %v, want zeros", o.margin, o.pollInterval, o.borderWidth)
	}
}

package gallery

import (
	"math"
	"testing"
)

func TestResolveFit(t *testing.T) {
	const (
		wide = 1.5
		tall = 0.75
	)
	cases := []struct {
		mode          Containment
		ratio, parent float64
		want          Fit
	}{
		{ContainNone, wide, wide, FitCover},
		{ContainAll, tall, wide, FitContain},
		{ContainAll, 0, wide, FitContain},
		{ContainLandscape, wide, tall, FitContain},
		{ContainLandscape, 1, tall, FitCover},
		{ContainPortrait, 1, wide, FitContain},
		{ContainPortrait, wide, wide, FitCover},
		{ContainParent, wide, tall, FitContain},
		{ContainParent, tall, wide, FitContain},
		{ContainParent, wide, wide, FitCover},
		{ContainParent, tall, tall, FitCover},
		{ContainParent, 0, tall, FitCover},
		{ContainPortrait, 0, wide, FitCover},
		{ContainPortrait, math.NaN(), wide, FitCover},
		{Containment("sideways"), tall, wide, FitCover},
	}
	for _, tc := range cases {
		if got := ResolveFit(tc.mode, tc.ratio, tc.parent); got != tc.want {
			t.Fatalf("ResolveFit(%q, %v, %v) = %v, want %v", tc.mode, tc.ratio, tc.parent, got, tc.want)
		}
	}
}

func TestFitClass(t *testing.T) {
	if FitCover.Class() != "vg_cover" || FitContain.Class() != "vg_contain" {
		t.Fatalf("classes = %q/%q", FitCover.Class(), FitContain.Class())
	}
}

func TestAspect(t *testing.T) {
	if got := aspect(800, 400); got != 2 {
		t.Fatalf("aspect(800, 400) = %v, want 2", got)
	}
	if got := aspect(10, 0); !math.IsInf(got, 1) {
		t.Fatalf("aspect(10, 0) = %v, want +Inf", got)
	}
	if got := aspect(0, 0); !math.IsNaN(got) {
		t.Fatalf("aspect(0, 0) = %v, want NaN", got)
	}
}

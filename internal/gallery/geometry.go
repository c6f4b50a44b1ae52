package gallery

import (
	"math"

	"github.com/five82/vgallery/internal/surface"
)

// visibleThumbs is the number of thumbnail slots shown in the strip.
const visibleThumbs = 5

// ThumbGeometry is the pixel layout of the thumbnail strip.
type ThumbGeometry struct {
	HPadding       int
	VPadding       int
	Height         int
	Width          int
	ButtonSize     int
	WrapperWidth   int
	WrapperPadding int
	Offset         int
	MostLeft       int
	MostRight      int
	Wrap           int
	Total          int // thumbs rendered: images × repeat
	CaptionHeight  int
}

// Center is the strip position of the active thumbnail.
func (g ThumbGeometry) Center() int { return g.Offset * 2 }

// ComputeThumbGeometry derives the strip layout from the strip container's
// size. It is pure and safe to call on every resize.
func ComputeThumbGeometry(width, height int, cfg Config) ThumbGeometry {
	var g ThumbGeometry
	g.HPadding = roundPx(float64(width) * 0.015)
	g.VPadding = roundPx(float64(width) * 0.01)
	g.Height = height - g.VPadding*2
	g.ButtonSize = buttonSize(g.Height)

	g.WrapperWidth = width - g.HPadding*2
	if cfg.Thumbnails.Buttons {
		g.WrapperWidth -= g.ButtonSize * 2
	}
	g.Width = roundPx(float64(g.WrapperWidth-g.HPadding*4) / visibleThumbs)
	g.WrapperPadding = (height - g.Height) / 2

	repeat := cfg.Thumbnails.Repeat
	if repeat <= 0 {
		repeat = repeatCount(len(cfg.Images))
	}
	g.Total = len(cfg.Images) * repeat
	g.Offset = g.Width + g.HPadding
	g.MostLeft = -3 * g.Offset
	g.MostRight = (g.Total - 3) * g.Offset
	g.Wrap = abs(g.MostLeft) + g.MostRight
	g.CaptionHeight = captionHeight(g.Height)
	return g
}

func buttonSize(thumbHeight int) int {
	switch {
	case thumbHeight > 60:
		return 30
	case thumbHeight > 50:
		return 25
	}
	return 20
}

func captionHeight(thumbHeight int) int {
	switch {
	case thumbHeight > 80:
		return 18
	case thumbHeight > 60:
		return 15
	case thumbHeight > 50:
		return 12
	}
	return 10
}

// IndicatorGeometry is the pixel layout of the dot navigator.
type IndicatorGeometry struct {
	Size             int
	HPadding         int
	VPadding         int
	Background       surface.Paint
	ActiveBackground surface.Paint
}

// Pitch is the horizontal distance between two dots.
func (g IndicatorGeometry) Pitch() int { return g.Size + g.HPadding*2 }

// ComputeIndicatorGeometry derives dot sizes from the container height.
func ComputeIndicatorGeometry(height int, cfg Config) IndicatorGeometry {
	size := roundPx(float64(height) * 0.5)
	g := IndicatorGeometry{
		Size:     size,
		HPadding: roundPx(float64(height-size) / 4),
		VPadding: roundPx(float64(height-size) / 2),
	}
	g.Background = surface.Paint{Color: cfg.Indicators.Color}
	if cfg.Indicators.Image != "" {
		g.Background = surface.Paint{Image: cfg.Indicators.Image}
	}
	g.ActiveBackground = surface.Paint{Color: cfg.Indicators.ActiveColor}
	if cfg.Indicators.ActiveImage != "" {
		g.ActiveBackground = surface.Paint{Image: cfg.Indicators.ActiveImage}
	}
	return g
}

// roundPx rounds half up, matching how layout engines round pixel values.
func roundPx(v float64) int {
	return int(math.Floor(v + 0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

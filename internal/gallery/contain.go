package gallery

import "math"

// Fit is how a slide fills the gallery.
type Fit int

const (
	FitCover Fit = iota
	FitContain
)

// Class returns the layer class for the fit.
func (f Fit) Class() string {
	if f == FitContain {
		return classContain
	}
	return classCover
}

// ResolveFit decides cover or contain for an image. ratio and parentRatio are
// width/height; a ratio of 0 means the image has not loaded yet, and unknown
// ratios never satisfy an orientation test.
func ResolveFit(mode Containment, ratio, parentRatio float64) Fit {
	known := ratio > 0 && !math.IsNaN(ratio)
	landscape := known && ratio > 1
	portrait := known && ratio <= 1

	switch mode {
	case ContainAll:
		return FitContain
	case ContainLandscape:
		if landscape {
			return FitContain
		}
	case ContainPortrait:
		if portrait {
			return FitContain
		}
	case ContainParent:
		if (landscape && parentRatio <= 1) || (portrait && parentRatio > 1) {
			return FitContain
		}
	}
	return FitCover
}

// aspect returns w/h the way a layout engine would: +Inf for a zero height
// with positive width, NaN when both are zero.
func aspect(w, h int) float64 {
	if h == 0 {
		if w == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return float64(w) / float64(h)
}

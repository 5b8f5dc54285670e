package convert

import "github.com/paulmach/orb"

// Sample-point bounds for interactive hosts. The converter itself
// accepts any count of at least 2.
const (
	MinSamplePoints     = 50
	MaxSamplePoints     = 2000
	DefaultSamplePoints = 250
	MaxPrecision        = 6
)

const (
	defaultViewport    = 512
	defaultPointRadius = 2
)

// TransformOptions control the SVG to feature-collection leg.
type TransformOptions struct {
	SamplePoints int  // points sampled per path
	FlipY        bool // negate Y, mapping screen space onto a Y-up plane
	Precision    int  // decimal digits kept after transforming
}

// DefaultTransformOptions returns the options the host starts from.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		SamplePoints: DefaultSamplePoints,
		FlipY:        true,
		Precision:    MaxPrecision,
	}
}

func (o TransformOptions) normalized() TransformOptions {
	if o.SamplePoints < 2 {
		o.SamplePoints = DefaultSamplePoints
	}
	o.Precision = clampPrecision(o.Precision)
	return o
}

// FitMode selects how the viewport scale derives from the extent.
type FitMode uint8

const (
	// FitWidth scales both axes by width/extentWidth, preserving
	// aspect; vertical overflow is allowed.
	FitWidth FitMode = iota
	// FitHeight scales both axes by height/extentHeight.
	FitHeight
	// FitNone scales each axis independently to fill the viewport.
	FitNone
)

func (f FitMode) String() string {
	switch f {
	case FitHeight:
		return "height"
	case FitNone:
		return "none"
	default:
		return "width"
	}
}

// RenderOptions control the feature-collection to SVG leg.
type RenderOptions struct {
	Width, Height float64
	FitTo         FitMode
	Precision     int
	PointRadius   float64
	FlipY         bool       // treat Y as growing upward and flip into screen space
	Extent        *orb.Bound // caller-declared extent; wins over the computed one
}

// DefaultRenderOptions returns the options the host starts from.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:       defaultViewport,
		Height:      defaultViewport,
		FitTo:       FitWidth,
		Precision:   2,
		PointRadius: defaultPointRadius,
		FlipY:       true,
	}
}

func (o RenderOptions) normalized() RenderOptions {
	if o.Width <= 0 {
		o.Width = defaultViewport
	}
	if o.Height <= 0 {
		o.Height = defaultViewport
	}
	if o.PointRadius <= 0 {
		o.PointRadius = defaultPointRadius
	}
	o.Precision = clampPrecision(o.Precision)
	return o
}

func clampPrecision(p int) int {
	if p < 0 {
		return 0
	}
	if p > MaxPrecision {
		return MaxPrecision
	}
	return p
}

package geom

import (
	"fmt"
	"math"
)

// Curve maps normalized time [0,1] onto a normalized value.
type Curve func(t float64) float64

func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseInOut is a smoothstep curve.
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// Arc rises from 0 to 1 at the midpoint and falls back to 0.
func Arc(t float64) float64 {
	t = clamp01(t)
	return 4 * t * (1 - t)
}

// Bounce overshoots slightly past 1 before settling.
func Bounce(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Cos(t*math.Pi*2.5)*(1-t)
}

// ParseCurve resolves a curve by name. Empty selects Linear.
func ParseCurve(name string) (Curve, error) {
	switch name {
	case "", "linear":
		return Linear, nil
	case "ease", "ease-in-out":
		return EaseInOut, nil
	case "arc":
		return Arc, nil
	case "bounce":
		return Bounce, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCurve, name)
	}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

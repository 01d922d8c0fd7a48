package choreo

import "math"

// EaseFunc maps normalized time t in [0,1] to normalized progress. Progress
// may leave [0,1] mid-flight (overshoot easings) but equals 0 at t=0 and 1
// at t=1, so tweens always land exactly on their end value.
type EaseFunc func(t float64) float64

// EaseLinear is constant-speed interpolation.
func EaseLinear(t float64) float64 { return t }

// EaseOutCubic decelerates into the end position. The default easing.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutQuad accelerates then decelerates.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutBack overshoots the target slightly before settling on it.
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Package easing provides easing functions for animating widget movement.
//
// All functions map an animation progress value in [0, 1] to an eased
// position, with f(0) = 0 and f(1) = 1. The In/Out/InOut variants follow the
// common Penner forms: In starts slow, Out ends slow, InOut does both.
//
// Back and Elastic momentarily leave the [0, 1] range (they overshoot or
// anticipate). Scrolling widgets that clamp their position to a fixed range
// flatten the overshoot against the range limits, so prefer the monotonic
// families (Quad through Expo) for scrolling.
package easing

import "math"

// Function maps animation progress t in [0, 1] to an eased position.
type Function func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 { return t * t }

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 { return -(t * (t - 2)) }

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

// InCubic accelerates from zero velocity.
func InCubic(t float64) float64 { return t * t * t }

// OutCubic decelerates to zero velocity.
func OutCubic(t float64) float64 {
	f := t - 1
	return f*f*f + 1
}

// InOutCubic accelerates until halfway, then decelerates.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

// InQuart accelerates from zero velocity.
func InQuart(t float64) float64 { return t * t * t * t }

// OutQuart decelerates to zero velocity.
func OutQuart(t float64) float64 {
	f := t - 1
	return f*f*f*(1-t) + 1
}

// InOutQuart accelerates until halfway, then decelerates.
func InOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	f := t - 1
	return -8*f*f*f*f + 1
}

// InQuint accelerates from zero velocity.
func InQuint(t float64) float64 { return t * t * t * t * t }

// OutQuint decelerates to zero velocity.
func OutQuint(t float64) float64 {
	f := t - 1
	return f*f*f*f*f + 1
}

// InOutQuint accelerates until halfway, then decelerates.
func InOutQuint(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f*f*f + 1
}

// InSine accelerates along a quarter sine wave.
func InSine(t float64) float64 { return math.Sin((t-1)*math.Pi/2) + 1 }

// OutSine decelerates along a quarter sine wave.
func OutSine(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// InOutSine follows a half sine wave.
func InOutSine(t float64) float64 { return 0.5 * (1 - math.Cos(t*math.Pi)) }

// InCirc accelerates along a quarter circle arc.
func InCirc(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

// OutCirc decelerates along a quarter circle arc.
func OutCirc(t float64) float64 { return math.Sqrt((2 - t) * t) }

// InOutCirc follows two quarter circle arcs.
func InOutCirc(t float64) float64 {
	if t < 0.5 {
		return 0.5 * (1 - math.Sqrt(1-4*t*t))
	}
	return 0.5 * (math.Sqrt(-(2*t-3)*(2*t-1)) + 1)
}

// InExpo accelerates exponentially. Exact at the endpoints.
func InExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// OutExpo decelerates exponentially. Exact at the endpoints.
func OutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// InOutExpo accelerates exponentially until halfway, then decelerates.
// Exact at the endpoints. This is the default easing for the ScrollBox.
func InOutExpo(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	if t < 0.5 {
		return 0.5 * math.Pow(2, 20*t-10)
	}
	return -0.5*math.Pow(2, -20*t+10) + 1
}

// InElastic snaps in with a damped spring oscillation.
func InElastic(t float64) float64 {
	return math.Sin(13*(math.Pi/2)*t) * math.Pow(2, 10*(t-1))
}

// OutElastic snaps out with a damped spring oscillation.
func OutElastic(t float64) float64 {
	return math.Sin(-13*(math.Pi/2)*(t+1))*math.Pow(2, -10*t) + 1
}

// InOutElastic springs in and out around the midpoint.
func InOutElastic(t float64) float64 {
	if t < 0.5 {
		return 0.5 * math.Sin(13*(math.Pi/2)*(2*t)) * math.Pow(2, 10*(2*t-1))
	}
	return 0.5 * (math.Sin(-13*(math.Pi/2)*((2*t-1)+1))*math.Pow(2, -10*(2*t-1)) + 2)
}

// InBack pulls back slightly before accelerating.
func InBack(t float64) float64 { return t*t*t - t*math.Sin(t*math.Pi) }

// OutBack overshoots slightly before settling.
func OutBack(t float64) float64 {
	f := 1 - t
	return 1 - (f*f*f - f*math.Sin(f*math.Pi))
}

// InOutBack pulls back, then overshoots around the midpoint.
func InOutBack(t float64) float64 {
	if t < 0.5 {
		f := 2 * t
		return 0.5 * (f*f*f - f*math.Sin(f*math.Pi))
	}
	f := 1 - (2*t - 1)
	return 0.5*(1-(f*f*f-f*math.Sin(f*math.Pi))) + 0.5
}

// InBounce bounces against the start before releasing.
func InBounce(t float64) float64 { return 1 - OutBounce(1-t) }

// OutBounce bounces against the end before settling.
func OutBounce(t float64) float64 {
	switch {
	case t < 4/11.0:
		return (121 * t * t) / 16.0
	case t < 8/11.0:
		return (363/40.0)*t*t - (99/10.0)*t + 17/5.0
	case t < 9/10.0:
		return (4356/361.0)*t*t - (35442/1805.0)*t + 16061/1805.0
	default:
		return (54/5.0)*t*t - (513/25.0)*t + 268/25.0
	}
}

// InOutBounce bounces at both ends.
func InOutBounce(t float64) float64 {
	if t < 0.5 {
		return 0.5 * InBounce(2*t)
	}
	return 0.5*OutBounce(2*t-1) + 0.5
}

package system

import "math"

// direction returns -1 for negative values and 1 otherwise.
func direction(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// SmoothDamp moves current toward target as a critically damped spring
// that settles in roughly smoothTime seconds. It returns the new value and
// the updated velocity to pass into the next call.
func SmoothDamp(current, target, velocity, smoothTime, dt float64) (float64, float64) {
	if dt <= 0 {
		return current, velocity
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	originalTarget := target

	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// never overshoot
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		velocity = (output - originalTarget) / dt
	}
	return output, velocity
}

package gamemath

import "math"

// ApplyFriction reduces the length of v toward zero by friction amount.
func ApplyFriction(v Vec2, friction float64) Vec2 {
	speed := v.Len()
	if speed <= friction {
		return Vec2{}
	}
	return v.Scale((speed - friction) / speed)
}

// ClampSpeed limits the length of v to max.
func ClampSpeed(v Vec2, max float64) Vec2 {
	speed := v.Len()
	if speed > max {
		return v.Scale(max / speed)
	}
	return v
}

// Clamp clamps a value to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize clamps x to [lo, hi]. NaN becomes fallback, infinities the bound on their side.
func Sanitize(x, lo, hi, fallback float64) float64 {
	if math.IsNaN(x) {
		x = fallback
	}
	return Clamp(x, lo, hi)
}

// WrapAngle maps an angle in radians into [-pi, pi].
func WrapAngle(a float64) float64 {
	if !IsFinite(a) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

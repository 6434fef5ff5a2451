package utils

import (
	"math"
)

// Fl is the floating point type used for every length.
type Fl = float32

// Epsilon is the tolerance used when comparing lengths.
const Epsilon Fl = 1e-4

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

// Clamp returns v bounded by [min, max]. When min > max, min wins.
func Clamp(v, min, max Fl) Fl {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Mins(values ...Fl) Fl {
	min := values[0]
	for _, w := range values {
		if w < min {
			min = w
		}
	}
	return min
}

// Sum returns the sum of values, 0 for an empty slice.
func Sum(values []Fl) Fl {
	var s Fl
	for _, v := range values {
		s += v
	}
	return s
}

func Floor(x Fl) Fl {
	return Fl(math.Floor(float64(x)))
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(float64(f)*n10) / n10)
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}

// Hypot returns SQRT(a^2 + b^2)
func Hypot(a, b Fl) Fl {
	return Fl(math.Hypot(float64(a), float64(b)))
}

// IsClose returns true if a and b differ by less than Epsilon.
func IsClose(a, b Fl) bool {
	return math.Abs(float64(a-b)) < float64(Epsilon)
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package util

import "math"

//Relative tolerance used by all value comparisons. Coalition values come out
//of a numeric solver, so bitwise equality would report spurious instability.
const FloatTolerance = 1e-9

func maxAbs(x float64, y float64) float64 {
	return math.Max(math.Abs(x), math.Abs(y))
}

//EssentiallyEqual reports whether x and y are equal up to a relative tolerance.
func EssentiallyEqual(x float64, y float64) bool {
	if x == y {
		return true
	}
	return math.Abs(x-y) <= FloatTolerance*math.Min(math.Abs(x), math.Abs(y))
}

//ApproximatelyEqual is the weaker form of EssentiallyEqual, scaled by the
//larger of the two magnitudes.
func ApproximatelyEqual(x float64, y float64) bool {
	if x == y {
		return true
	}
	return math.Abs(x-y) <= FloatTolerance*maxAbs(x, y)
}

//DefinitelyGreater reports whether x exceeds y beyond the relative tolerance.
//Comparisons involving NaN are always false.
func DefinitelyGreater(x float64, y float64) bool {
	return x-y > FloatTolerance*maxAbs(x, y)
}

//DefinitelyLess reports whether x falls below y beyond the relative tolerance.
func DefinitelyLess(x float64, y float64) bool {
	return y-x > FloatTolerance*maxAbs(x, y)
}

// SPDX-License-Identifier: EPL-2.0

package utils

// Float is the set of sample types the interpolation kernels accept.
type Float interface {
	~float32 | ~float64
}

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at fraction t (0 <= t <= 1) between y1 and y2.
//
//	a = (3(y1-y2) - y0 + y3) / 2
//	b = 2*y2 + y0 - (5*y1 + y3) / 2
//	c = (y2 - y0) / 2
//	y = a*t³ + b*t² + c*t + y1
//
// The terms are summed in that order, each rounded to T, so results do not
// depend on whether the target fuses multiply-adds.
func CubicInterpolate[T Float](y0, y1, y2, y3, t T) T {
	a := 0.5 * (T(3*(y1-y2)) - y0 + y3)
	b := 2*y2 + y0 - 0.5*(T(5*y1)+y3)
	c := 0.5 * (y2 - y0)
	return T(a*t*t*t) + T(b*t*t) + T(c*t) + y1
}

package interpolate

import "math"

const bezierEpsilon = 1e-7

// bezier returns a CSS cubic-bezier timing function with endpoints (0,0) and (1,1).
func bezier(x1, y1, x2, y2 float64) Curve {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solveX := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			err := sampleX(t) - x
			if math.Abs(err) < bezierEpsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= err / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < bezierEpsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(p float64) float64 {
		return sampleY(solveX(p))
	}
}

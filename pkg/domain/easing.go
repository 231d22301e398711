package domain

import (
	"fmt"
	"strconv"
)

// Easing is a curve specification. Supported forms are the CSS keywords
// ("linear", "ease", "ease-in", "ease-out", "ease-in-out"), "cubic-bezier(x1,y1,x2,y2)",
// "steps(n)" and named curves such as "in-quad", "out-back" or "in-out-elastic".
// An empty Easing means linear.
type Easing string

const (
	EasingLinear    Easing = "linear"
	EasingEase      Easing = "ease"
	EasingEaseIn    Easing = "ease-in"
	EasingEaseOut   Easing = "ease-out"
	EasingEaseInOut Easing = "ease-in-out"
)

// DefaultEasing is assigned to new transitions.
const DefaultEasing = EasingEaseInOut

// CubicBezier builds a cubic-bezier easing.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return Easing(fmt.Sprintf("cubic-bezier(%s,%s,%s,%s)", ff(x1), ff(y1), ff(x2), ff(y2)))
}

// Steps builds a stepped easing with n jumps.
func Steps(n int) Easing {
	return Easing(fmt.Sprintf("steps(%d)", n))
}

// OrDefault returns e, or fallback when e is empty.
func (e Easing) OrDefault(fallback Easing) Easing {
	if e == "" {
		return fallback
	}
	return e
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package interpolate

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/tanema/gween/ease"
)

// Curve maps linear progress in [0,1] to eased progress. Curves may overshoot
// between the endpoints but always map 0 to 0 and 1 to 1.
type Curve func(float64) float64

// Linear is the identity curve.
func Linear(p float64) float64 { return p }

var named = map[string]ease.TweenFunc{
	"inquad": ease.InQuad, "outquad": ease.OutQuad, "inoutquad": ease.InOutQuad, "outinquad": ease.OutInQuad,
	"incubic": ease.InCubic, "outcubic": ease.OutCubic, "inoutcubic": ease.InOutCubic, "outincubic": ease.OutInCubic,
	"inquart": ease.InQuart, "outquart": ease.OutQuart, "inoutquart": ease.InOutQuart, "outinquart": ease.OutInQuart,
	"inquint": ease.InQuint, "outquint": ease.OutQuint, "inoutquint": ease.InOutQuint, "outinquint": ease.OutInQuint,
	"insine": ease.InSine, "outsine": ease.OutSine, "inoutsine": ease.InOutSine, "outinsine": ease.OutInSine,
	"inexpo": ease.InExpo, "outexpo": ease.OutExpo, "inoutexpo": ease.InOutExpo, "outinexpo": ease.OutInExpo,
	"incirc": ease.InCirc, "outcirc": ease.OutCirc, "inoutcirc": ease.InOutCirc, "outincirc": ease.OutInCirc,
	"inelastic": ease.InElastic, "outelastic": ease.OutElastic, "inoutelastic": ease.InOutElastic, "outinelastic": ease.OutInElastic,
	"inback": ease.InBack, "outback": ease.OutBack, "inoutback": ease.InOutBack, "outinback": ease.OutInBack,
	"inbounce": ease.InBounce, "outbounce": ease.OutBounce, "inoutbounce": ease.InOutBounce, "outinbounce": ease.OutInBounce,
}

// CSS keyword control points.
var keywords = map[domain.Easing][4]float64{
	domain.EasingEase:      {0.25, 0.1, 0.25, 1},
	domain.EasingEaseIn:    {0.42, 0, 1, 1},
	domain.EasingEaseOut:   {0, 0, 0.58, 1},
	domain.EasingEaseInOut: {0.42, 0, 0.58, 1},
}

var curves sync.Map // domain.Easing -> Curve

// ResolveEasing returns the curve for e. Unknown or malformed specs resolve to
// Linear; the second result reports whether e was recognized.
func ResolveEasing(e domain.Easing) (Curve, bool) {
	if e == "" || e == domain.EasingLinear {
		return Linear, true
	}
	if c, ok := curves.Load(e); ok {
		return c.(Curve), true
	}
	c, ok := parse(e)
	if !ok {
		return Linear, false
	}
	curves.Store(e, c)
	return c, true
}

// Ease evaluates e at p with endpoints pinned.
func Ease(e domain.Easing, p float64) float64 {
	c, _ := ResolveEasing(e)
	return apply(c, p)
}

// Names lists the named curves accepted besides the CSS forms.
func Names() []string {
	out := []string{"linear", "ease", "ease-in", "ease-out", "ease-in-out"}
	for _, dir := range []string{"in", "out", "in-out", "out-in"} {
		for _, fam := range []string{"quad", "cubic", "quart", "quint", "sine", "expo", "circ", "elastic", "back", "bounce"} {
			out = append(out, dir+"-"+fam)
		}
	}
	return out
}

func apply(c Curve, p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return c(p)
}

func parse(e domain.Easing) (Curve, bool) {
	if pts, ok := keywords[e]; ok {
		return bezier(pts[0], pts[1], pts[2], pts[3]), true
	}

	s := strings.ToLower(strings.TrimSpace(string(e)))
	if args, ok := call(s, "cubic-bezier"); ok {
		if len(args) != 4 {
			return nil, false
		}
		// x control points must stay in [0,1] for the curve to be a function of time.
		if args[0] < 0 || args[0] > 1 || args[2] < 0 || args[2] > 1 {
			return nil, false
		}
		return bezier(args[0], args[1], args[2], args[3]), true
	}
	if args, ok := call(s, "steps"); ok {
		if len(args) != 1 || args[0] < 1 {
			return nil, false
		}
		n := math.Floor(args[0])
		return func(p float64) float64 { return math.Floor(p*n) / n }, true
	}

	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	key = strings.TrimPrefix(key, "ease")
	if fn, ok := named[key]; ok {
		return func(p float64) float64 {
			return float64(fn(float32(p), 0, 1, 1))
		}, true
	}
	return nil, false
}

func call(s, name string) ([]float64, bool) {
	if !strings.HasPrefix(s, name+"(") || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	body := s[len(name)+1 : len(s)-1]
	parts := strings.Split(body, ",")
	args := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}

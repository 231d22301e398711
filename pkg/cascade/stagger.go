package cascade

import (
	"math"

	"github.com/aretw0/storyboard/pkg/domain"
)

// StaggerIndex returns the position of item i in a sequence of n items when the
// stagger starts at origin. Center and edges yield fractional distances for even n.
func StaggerIndex(i, n int, origin domain.StaggerOrigin) float64 {
	if n <= 0 || i < 0 || i >= n {
		return 0
	}
	last := float64(n - 1)
	switch NormalizeOrigin(origin) {
	case domain.OriginLast:
		return last - float64(i)
	case domain.OriginCenter:
		return math.Abs(float64(i) - last/2)
	case domain.OriginEdges:
		return math.Min(float64(i), last-float64(i))
	default:
		return float64(i)
	}
}

// CalculateStaggerDelays assigns index*perElementDelay to each id, with the
// index computed by StaggerIndex. Duplicate ids keep their first position.
func CalculateStaggerDelays(elementIDs []string, perElementDelay float64, origin domain.StaggerOrigin) map[string]float64 {
	delays := make(map[string]float64, len(elementIDs))
	n := len(elementIDs)
	for i, id := range elementIDs {
		if _, seen := delays[id]; seen {
			continue
		}
		delays[id] = StaggerIndex(i, n, origin) * perElementDelay
	}
	return delays
}

// NormalizeOrigin maps legacy aliases ("start", "end", "") onto the four origins.
func NormalizeOrigin(origin domain.StaggerOrigin) domain.StaggerOrigin {
	switch origin {
	case domain.OriginLast, "end":
		return domain.OriginLast
	case domain.OriginCenter, "middle":
		return domain.OriginCenter
	case domain.OriginEdges:
		return domain.OriginEdges
	default:
		return domain.OriginFirst
	}
}

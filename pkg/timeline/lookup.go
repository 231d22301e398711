package timeline

import "github.com/aretw0/storyboard/pkg/domain"

// ActiveSegment returns the index of the segment covering t, or -1 for an empty
// timeline. Transition segments win over state segments sharing a boundary,
// and t at or past the end resolves to the last segment.
func ActiveSegment(tl domain.ComputedTimeline, t float64) int {
	n := len(tl.Segments)
	if n == 0 {
		return -1
	}
	if t <= 0 {
		// A zero-length first state hands over to its transition immediately.
		if tl.Segments[0].Duration() <= 0 && n > 1 && tl.Segments[1].Type == domain.SegmentTransition {
			return 1
		}
		return 0
	}
	if t >= tl.TotalDuration {
		return n - 1
	}

	match := -1
	for i, seg := range tl.Segments {
		if t < seg.StartTime || t > seg.EndTime {
			continue
		}
		if seg.Type == domain.SegmentTransition && seg.Duration() > 0 && t < seg.EndTime {
			return i
		}
		if match == -1 && t < seg.EndTime {
			match = i
		}
	}
	if match == -1 {
		return n - 1
	}
	return match
}

// Progress returns the normalized position of t inside seg. Zero-length
// segments are complete.
func Progress(seg domain.Segment, t float64) float64 {
	d := seg.Duration()
	if d <= 0 {
		return 1
	}
	p := (t - seg.StartTime) / d
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

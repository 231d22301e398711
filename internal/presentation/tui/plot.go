package tui

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
)

// PlotEasing samples an easing curve over [0, 1] and plots it. The second
// return is false when the name did not resolve and linear was plotted.
func PlotEasing(e domain.Easing, width, height int) (string, bool) {
	if width < 2 {
		width = 2
	}
	_, ok := interpolate.ResolveEasing(e)
	samples := make([]float64, width)
	for i := range samples {
		samples[i] = interpolate.Ease(e, float64(i)/float64(width-1))
	}
	caption := string(e.OrDefault(domain.EasingLinear))
	if !ok {
		caption += " (unknown, linear)"
	}
	return PlotSeries(samples, height, caption), ok
}

// PlotSeries plots arbitrary samples, e.g. one element property over a playback.
func PlotSeries(samples []float64, height int, caption string) string {
	if len(samples) == 0 {
		return fmt.Sprintf("%s: no samples\n", caption)
	}
	if height < 1 {
		height = 10
	}
	return asciigraph.Plot(samples,
		asciigraph.Height(height),
		asciigraph.Width(len(samples)),
		asciigraph.Caption(caption),
	)
}

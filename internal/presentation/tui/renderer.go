package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
	"github.com/aretw0/storyboard/pkg/studio"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TimelineMarkdown describes an artboard timeline as a markdown report.
func TimelineMarkdown(board studio.Board, tl domain.ComputedTimeline) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Artboard `%s`\n\n", board.ArtboardID)
	fmt.Fprintf(&sb, "%d states, %d transitions, %d chains. Total **%gms**.\n\n",
		len(board.States), len(board.Transitions), len(board.Chains), tl.TotalDuration)

	if len(tl.Segments) == 0 {
		sb.WriteString("_Empty timeline._\n")
		return sb.String()
	}

	sb.WriteString("| # | Type | Label | Start | End | Duration |\n")
	sb.WriteString("|---|------|-------|------:|----:|---------:|\n")
	for i, seg := range tl.Segments {
		kind := string(seg.Type)
		if seg.Type == domain.SegmentTransition && domain.IsImplicitTransitionID(seg.ReferenceID) {
			kind += " (implicit)"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %g | %g | %g |\n",
			i, kind, strings.ReplaceAll(seg.Label, "|", "\\|"), seg.StartTime, seg.EndTime, seg.Duration())
	}

	writeCascades(&sb, board)

	for _, ch := range board.Chains {
		marker := ""
		if ch.IsDefault {
			marker = " (default)"
		}
		fmt.Fprintf(&sb, "\n## Chain %s%s\n\nMode `%s`, %d steps.\n", ch.Name, marker, ch.EffectiveMode(), len(ch.Steps))
	}
	return sb.String()
}

// writeCascades lists cascade-enabled transitions with the time the last
// staggered element needs and the deepest level of the source hierarchy.
func writeCascades(sb *strings.Builder, board studio.Board) {
	states := make(map[string]domain.AnimationState, len(board.States))
	for _, st := range board.States {
		states[st.ID] = st
	}

	header := false
	for _, tr := range board.Transitions {
		if !tr.CascadeEnabled() {
			continue
		}
		from, ok := states[tr.FromStateID]
		if !ok {
			continue
		}
		if !header {
			sb.WriteString("\n## Cascades\n\n| From | To | Elements | Depth | Tail |\n|------|----|---------:|------:|-----:|\n")
			header = true
		}
		depth := 0
		for _, d := range cascade.Depths(from.Elements) {
			if d > depth {
				depth = d
			}
		}
		fmt.Fprintf(sb, "| %s | %s | %d | %d | %gms |\n",
			from.Name, states[tr.ToStateID].Name, len(from.Elements), depth,
			interpolate.CascadeDuration(from.Elements, *tr.Cascade, tr.Duration))
	}
}

package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/studio"
)

// GraphOverlay contains playback data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart of an artboard.
// States are shaped by trigger:
// - Initial: ((Circle))
// - Click: [/Parallelogram/]
// - Hover/Focus: ([Stadium])
// - Custom: [[Subroutine]]
// - Auto: [Rectangle]
// Explicit transitions are solid edges labelled with their timing. Consecutive
// states without one get a dashed edge for the implicit default transition.
// The default chain, if any, is drawn with thick edges.
func GenerateMermaid(board studio.Board, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, st := range board.States {
		opener, closer := shape(st.Trigger)
		label := escapeLabel(st.Name)
		if st.HoldTime > 0 {
			label = fmt.Sprintf("%s <br/> ⏱️ %gms", label, st.HoldTime)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(st.ID), opener, label, closer))
	}

	explicit := make(map[string]bool, len(board.Transitions))
	for _, tr := range board.Transitions {
		explicit[tr.FromStateID+"\x00"+tr.ToStateID] = true
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(tr.FromStateID), transitionLabel(tr), sanitizeMermaidID(tr.ToStateID)))
	}

	for i := 0; i+1 < len(board.States); i++ {
		from, to := board.States[i].ID, board.States[i+1].ID
		if explicit[from+"\x00"+to] {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", sanitizeMermaidID(from), sanitizeMermaidID(to)))
	}

	for _, ch := range board.Chains {
		if !ch.IsDefault || len(ch.Steps) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n    %%%% Chain: %s (%s)\n", escapeLabel(ch.Name), ch.EffectiveMode()))
		for i := 0; i+1 < len(ch.Steps); i++ {
			sb.WriteString(fmt.Sprintf("    %s == \"%d\" ==> %s\n",
				sanitizeMermaidID(ch.Steps[i].StateID), i+1, sanitizeMermaidID(ch.Steps[i+1].StateID)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

func shape(t domain.Trigger) (string, string) {
	if t == nil {
		return "[", "]"
	}
	switch t.Kind() {
	case domain.TriggerInitial:
		return "((", "))"
	case domain.TriggerClick:
		return "[/", "/]"
	case domain.TriggerHover, domain.TriggerFocus:
		return "([", "])"
	case domain.TriggerCustom:
		return "[[", "]]"
	}
	return "[", "]"
}

func transitionLabel(tr domain.StateTransition) string {
	label := fmt.Sprintf("%gms %s", tr.Duration, tr.Easing.OrDefault(domain.DefaultEasing))
	if tr.Delay > 0 {
		label += fmt.Sprintf(" +%gms", tr.Delay)
	}
	if tr.CascadeEnabled() {
		label += " ≋"
	}
	return escapeLabel(label)
}

// escapeLabel swaps double quotes, which would end a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

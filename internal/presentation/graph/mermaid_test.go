package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/storyboard/internal/presentation/graph"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/studio"
)

func state(id, name string, order int, trig domain.Trigger) domain.AnimationState {
	return domain.AnimationState{ID: id, Name: name, Order: order, Trigger: trig}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		board    studio.Board
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			board: studio.Board{States: []domain.AnimationState{
				state("s1", "Intro", 0, domain.InitialTrigger{}),
				state("s2", "Tap", 1, domain.ClickTrigger{Element: "btn"}),
				state("s3", "Peek", 2, domain.HoverTrigger{}),
				state("s4", "Hook", 3, domain.CustomTrigger{}),
				state("s5", "Rest", 4, domain.AutoTrigger{}),
			}},
			contains: []string{
				`s1(("Intro"))`,
				`s2[/"Tap"/]`,
				`s3(["Peek"])`,
				`s4[["Hook"]]`,
				`s5["Rest"]`,
			},
		},
		{
			name: "ID Sanitization",
			board: studio.Board{States: []domain.AnimationState{
				state("a-b.c/d", "Odd", 0, nil),
			}},
			contains: []string{`a_b_c_d["Odd"]`},
		},
		{
			name: "Explicit And Implicit Edges",
			board: studio.Board{
				States: []domain.AnimationState{
					state("a", "A", 0, nil),
					state("b", "B", 1, nil),
					state("c", "C", 2, nil),
				},
				Transitions: []domain.StateTransition{
					{ID: "t1", FromStateID: "a", ToStateID: "b", Duration: 250, Delay: 50, Easing: domain.EasingEaseOut},
				},
			},
			contains: []string{
				`a -- "250ms ease-out +50ms" --> b`,
				`b -.-> c`,
			},
			excludes: []string{`a -.-> b`},
		},
		{
			name: "Label Escaping",
			board: studio.Board{States: []domain.AnimationState{
				state("q", `Say "hi"`, 0, nil),
			}},
			contains: []string{`q["Say 'hi'"]`},
		},
		{
			name: "Default Chain",
			board: studio.Board{
				States: []domain.AnimationState{state("a", "A", 0, nil), state("b", "B", 1, nil)},
				Chains: []domain.AnimationChain{
					{ID: "c1", Name: "Main", IsDefault: true, Mode: domain.ModeLoop, Steps: []domain.ChainStep{
						{ID: "x", StateID: "b"}, {ID: "y", StateID: "a"},
					}},
				},
			},
			contains: []string{
				"%% Chain: Main (loop)",
				`b == "1" ==> a`,
			},
		},
		{
			name: "Overlay",
			board: studio.Board{States: []domain.AnimationState{
				state("a", "A", 0, nil), state("b", "B", 1, nil),
			}},
			overlay: &graph.GraphOverlay{VisitedStates: []string{"a", "a"}, CurrentState: "b"},
			contains: []string{
				"classDef current",
				"class a visited;",
				"class b current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.board, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
			if tt.overlay != nil && strings.Count(got, "class a visited;") != 1 {
				t.Errorf("visited states should be deduplicated:\n%v", got)
			}
		})
	}
}

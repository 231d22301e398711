package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/studio"
)

// SeedArtboard creates the two-state fixture used across packages:
// A (hold 500, box at x=0) then B (hold 0, box at x=100) joined by a linear
// 300ms transition. The timeline is 800ms long and box.x is 50 at t=650.
// It fails the test immediately on error.
func SeedArtboard(t testing.TB, s *studio.Studio, artboardID string) (string, string) {
	t.Helper()

	a := s.CreateState(artboardID, "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	b := s.CreateState(artboardID, "B", []domain.AnimationStateElement{domain.NewElement("box", 100, 0, 10, 10)})
	require.True(t, s.UpdateState(b.ID, func(st *domain.AnimationState) { st.HoldTime = 0 }), "Failed to set hold time")

	id, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok, "Failed to create transition")
	require.True(t, s.UpdateTransition(id, func(tr *domain.StateTransition) { tr.Easing = domain.EasingLinear }), "Failed to set easing")

	return a.ID, b.ID
}

package playback_test

import (
	"testing"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
	"github.com/aretw0/storyboard/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	f := newFixture(t)
	board := f.studio.Snapshot("board")
	tl := f.studio.Timeline("board")

	frame := playback.Evaluate(board, tl, 100)
	assert.Equal(t, 0, frame.SegmentIndex)
	assert.Equal(t, f.a.ID, frame.FromStateID)
	assert.Nil(t, frame.Transition)
	assert.Equal(t, 0.0, frame.Elements["box"].X)

	frame = playback.Evaluate(board, tl, 725)
	require.NotNil(t, frame.Transition)
	assert.Equal(t, domain.SegmentTransition, frame.Segment.Type)
	assert.InDelta(t, 75, frame.Elements["box"].X, 1e-9)
}

func TestEvaluate_ImplicitTransition(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.studio.DeleteTransition(f.trID))

	frame := playback.Evaluate(f.studio.Snapshot("board"), f.studio.Timeline("board"), 650)
	require.NotNil(t, frame.Transition)
	assert.True(t, domain.IsImplicitTransitionID(frame.Transition.ID))
	assert.InDelta(t, 50, frame.Elements["box"].X, 1e-3)
}

func TestEvaluate_Empty(t *testing.T) {
	frame := playback.Evaluate(studio.Board{}, domain.ComputedTimeline{}, 100)
	assert.Equal(t, -1, frame.SegmentIndex)
	assert.Empty(t, frame.Elements)
}

func TestEvaluateChain_DanglingSteps(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeOnce)
	chain, _ := model.Chain(chainID)
	require.True(t, model.DeleteState(chain.Steps[0].StateID))

	frame := playback.EvaluateChain(model.Snapshot("board"), chainID, domain.ChainPlaybackState{ActiveChainID: chainID})
	assert.Equal(t, 100.0, frame.Elements["box"].X, "steps with missing states are skipped")

	frame = playback.EvaluateChain(model.Snapshot("board"), "missing", domain.ChainPlaybackState{})
	assert.Empty(t, frame.Elements)
}

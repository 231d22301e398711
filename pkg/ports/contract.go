package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	artboardID := "contract-test-artboard-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Document {
		hold := 250.0
		el := domain.NewElement("box", 10, 20, 100, 50)
		el.Timing = &domain.ElementTiming{Duration: 120, Delay: 30, Easing: "out-back"}
		return &domain.Document{
			Version:    domain.DocumentVersion,
			ArtboardID: id,
			States: []domain.AnimationState{
				{ID: "s1", ArtboardID: id, Name: "Rest", Order: 0, Trigger: domain.InitialTrigger{}, HoldTime: 500, Elements: []domain.AnimationStateElement{el}},
				{ID: "s2", ArtboardID: id, Name: "Hover", Order: 1, Trigger: domain.HoverTrigger{Element: "box"}, HoldTime: 0},
			},
			Transitions: []domain.StateTransition{
				{
					ID: "t1", FromStateID: "s1", ToStateID: "s2", Duration: 400, Delay: 50, Easing: domain.EasingEaseOut,
					Cascade: &domain.CascadeConfig{Enabled: true, Stagger: domain.StaggerConfig{PerElementDelay: 40, Origin: domain.OriginCenter}},
				},
			},
			Chains: []domain.AnimationChain{
				{
					ID: "c1", ArtboardID: id, Name: "Intro", StartStateID: "s1", IsDefault: true, Mode: domain.ModePingPong,
					Steps: []domain.ChainStep{
						{ID: "st1", StateID: "s1"},
						{ID: "st2", StateID: "s2", Metadata: map[string]any{"hold_time": hold}},
					},
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		doc := sample(artboardID)

		err := store.Save(ctx, artboardID, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, artboardID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded.States, 2)
		assert.Equal(t, artboardID, loaded.ArtboardID)
		assert.Equal(t, "Hover", loaded.States[1].Name)
		assert.Equal(t, domain.HoverTrigger{Element: "box"}, loaded.States[1].Trigger)
		assert.Equal(t, domain.InitialTrigger{}, loaded.States[0].Trigger)
		require.Len(t, loaded.States[0].Elements, 1)
		assert.Equal(t, doc.States[0].Elements[0].Timing, loaded.States[0].Elements[0].Timing)

		require.Len(t, loaded.Transitions, 1)
		assert.Equal(t, doc.Transitions[0].Cascade, loaded.Transitions[0].Cascade)
		assert.Equal(t, 400.0, loaded.Transitions[0].Duration)

		require.Len(t, loaded.Chains, 1)
		assert.Equal(t, domain.ModePingPong, loaded.Chains[0].Mode)
		// Metadata round-trips through serialization, so numeric types may change.
		opts := loaded.Chains[0].Steps[1].Options()
		require.NotNil(t, opts.HoldTime)
		assert.Equal(t, 250.0, *opts.HoldTime)
	})

	t.Run("Save isolates caller", func(t *testing.T) {
		doc := sample(artboardID)
		require.NoError(t, store.Save(ctx, artboardID, doc))
		doc.States[0].Name = "mutated"

		loaded, err := store.Load(ctx, artboardID)
		require.NoError(t, err)
		assert.Equal(t, "Rest", loaded.States[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+artboardID)
		assert.ErrorIs(t, err, domain.ErrArtboardNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, artboardID, sample(artboardID))
		require.NoError(t, err)

		err = store.Delete(ctx, artboardID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, artboardID)
		assert.ErrorIs(t, err, domain.ErrArtboardNotFound, "Load after Delete should return ErrArtboardNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := artboardID + "-1"
		id2 := artboardID + "-2"
		_ = store.Save(ctx, id1, sample(id1))
		_ = store.Save(ctx, id2, sample(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		artboards, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, artboards, id1)
		assert.Contains(t, artboards, id2)
	})
}

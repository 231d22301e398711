package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/timeline"
)

func TestBuilder_SimpleArtboard(t *testing.T) {
	b := New("hero")

	b.State("collapsed").
		Name("Collapsed").
		Initial().
		Element(domain.NewElement("box", 0, 0, 100, 40)).
		To("expanded").
		Duration(250).
		Delay(50).
		Easing(domain.EasingEaseOut).
		Cascade("center-out")

	b.State("expanded").
		Hold(0).
		Element(domain.NewElement("box", 0, 0, 300, 200))

	b.Chain("intro", "Intro").Steps("collapsed", "expanded").Hold(100).Mode(domain.ModePingPong)

	doc, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "hero", doc.ArtboardID)
	require.Len(t, doc.States, 2)
	assert.Equal(t, "Collapsed", doc.States[0].Name)
	assert.Equal(t, "expanded", doc.States[1].Name)
	assert.Equal(t, 1, doc.States[1].Order)
	assert.Equal(t, domain.TriggerInitial, doc.States[0].Trigger.Kind())

	require.Len(t, doc.Transitions, 1)
	tr := doc.Transitions[0]
	assert.Equal(t, "collapsed->expanded", tr.ID)
	assert.True(t, tr.CascadeEnabled())
	assert.Equal(t, domain.OriginCenter, tr.Cascade.Stagger.Origin)

	require.Len(t, doc.Chains, 1)
	chain := doc.Chains[0]
	assert.True(t, chain.IsDefault)
	assert.Equal(t, "collapsed", chain.StartStateID)
	require.Len(t, chain.Steps, 2)
	hold := chain.Steps[1].Options().HoldTime
	require.NotNil(t, hold)
	assert.Equal(t, 100.0, *hold)

	// 500 hold + 50 delay + 250 transition
	assert.Equal(t, 800.0, timeline.Compute(doc.States, doc.Transitions).TotalDuration)
}

func TestBuilder_StateIsIdempotent(t *testing.T) {
	b := New("x")
	assert.Same(t, b.State("a"), b.State("a"))
	assert.Same(t, b.Chain("c", "C"), b.Chain("c", "other"))
}

func TestBuilder_DefaultChain(t *testing.T) {
	b := New("x")
	b.State("a")
	b.Chain("one", "One").Steps("a")
	b.Chain("two", "Two").Steps("a").Default()

	doc := b.MustBuild()
	assert.False(t, doc.Chains[0].IsDefault)
	assert.True(t, doc.Chains[1].IsDefault)
}

func TestBuilder_BrokenReference(t *testing.T) {
	b := New("x")
	b.State("a").To("ghost")

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Panics(t, func() { b.MustBuild() })
}

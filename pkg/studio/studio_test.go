package studio_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/adapters/memory"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStudio(t *testing.T, opts ...studio.Option) (*studio.Studio, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	base := []studio.Option{
		studio.WithClock(clk.now),
		studio.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
	return studio.New(append(base, opts...)...), clk
}

func orders(states []domain.AnimationState) []int {
	out := make([]int, len(states))
	for i, st := range states {
		out[i] = st.Order
	}
	return out
}

func names(states []domain.AnimationState) []string {
	out := make([]string, len(states))
	for i, st := range states {
		out[i] = st.Name
	}
	return out
}

func TestCreateState_Defaults(t *testing.T) {
	s, _ := newStudio(t)

	first := s.CreateState("board", "Idle", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	second := s.CreateState("board", "Hover", nil)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, domain.InitialTrigger{}, first.Trigger)
	assert.Equal(t, domain.AutoTrigger{}, second.Trigger)
	assert.Equal(t, domain.DefaultHoldTime, first.HoldTime)
	assert.Equal(t, []string{"board"}, s.Artboards())
	assert.Equal(t, uint64(2), s.Revision())
}

func TestUpdateState_ClampsHoldAndKeepsIdentity(t *testing.T) {
	s, _ := newStudio(t, studio.WithHoldTimeBounds(0, 2000))
	st := s.CreateState("board", "Idle", nil)

	ok := s.UpdateState(st.ID, func(next *domain.AnimationState) {
		next.ID = "hijack"
		next.Order = 7
		next.HoldTime = 9000
		next.Name = "Renamed"
		next.Trigger = domain.ClickTrigger{Element: "btn"}
	})
	require.True(t, ok)

	got, ok := s.State(st.ID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 0, got.Order)
	assert.Equal(t, 2000.0, got.HoldTime)
	assert.Equal(t, domain.ClickTrigger{Element: "btn"}, got.Trigger)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	assert.False(t, s.UpdateState("missing", func(*domain.AnimationState) {}))
}

func TestUpdateElement(t *testing.T) {
	s, _ := newStudio(t)
	st := s.CreateState("board", "Idle", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})

	require.True(t, s.UpdateElement(st.ID, "box", func(el *domain.AnimationStateElement) {
		el.X = 40
		el.Opacity = 3
	}))
	assert.False(t, s.UpdateElement(st.ID, "ghost", func(*domain.AnimationStateElement) {}))

	got, _ := s.State(st.ID)
	assert.Equal(t, 40.0, got.Elements[0].X)
	assert.Equal(t, 1.0, got.Elements[0].Opacity)
}

func TestDeleteState_ReindexesSiblings(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)
	s.CreateState("board", "C", nil)
	s.CreateState("board", "D", nil)
	trID, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)

	require.True(t, s.DeleteState(b.ID))
	assert.False(t, s.DeleteState(b.ID))

	states := s.States("board")
	assert.Equal(t, []int{0, 1, 2}, orders(states))
	assert.Equal(t, []string{"A", "C", "D"}, names(states))

	// Referencing transitions are kept.
	_, ok = s.Transition(trID)
	assert.True(t, ok)
}

func TestMoveState(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	s.CreateState("board", "B", nil)
	s.CreateState("board", "C", nil)

	require.True(t, s.MoveState(a.ID, 99))
	states := s.States("board")
	assert.Equal(t, []string{"B", "C", "A"}, names(states))
	assert.Equal(t, []int{0, 1, 2}, orders(states))
}

func TestDuplicateState(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", []domain.AnimationStateElement{domain.NewElement("box", 1, 2, 3, 4)})
	s.CreateState("board", "B", nil)

	id, ok := s.DuplicateState(a.ID)
	require.True(t, ok)
	assert.NotEqual(t, a.ID, id)

	dup, _ := s.State(id)
	assert.Equal(t, a.Name, dup.Name)
	assert.Equal(t, a.Elements, dup.Elements)
	assert.Equal(t, a.Trigger, dup.Trigger)
	assert.Equal(t, 1, dup.Order)
	assert.True(t, dup.CreatedAt.After(a.CreatedAt))
	assert.Equal(t, dup.CreatedAt, dup.UpdatedAt)

	assert.Equal(t, []string{"A", "A", "B"}, names(s.States("board")))

	_, ok = s.DuplicateState("missing")
	assert.False(t, ok)
}

func TestCreateTransition_Idempotent(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)

	id1, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)
	rev := s.Revision()

	id2, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)
	assert.Equal(t, id1, id2)
	assert.Len(t, s.Transitions("board"), 1)
	assert.Equal(t, rev, s.Revision(), "idempotent create must not mutate")

	tr, _ := s.Transition(id1)
	assert.Equal(t, domain.DefaultTransitionDuration, tr.Duration)
	assert.Equal(t, domain.DefaultEasing, tr.Easing)

	// Reverse direction is a different pair.
	id3, ok := s.CreateTransition(b.ID, a.ID)
	require.True(t, ok)
	assert.NotEqual(t, id1, id3)
}

func TestCreateTransition_Rejects(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	other := s.CreateState("other", "X", nil)

	_, ok := s.CreateTransition(a.ID, "missing")
	assert.False(t, ok)
	_, ok = s.CreateTransition(a.ID, a.ID)
	assert.False(t, ok)
	_, ok = s.CreateTransition(a.ID, other.ID)
	assert.False(t, ok)
}

func TestUpdateTransition(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)
	id, _ := s.CreateTransition(a.ID, b.ID)

	require.True(t, s.UpdateTransition(id, func(tr *domain.StateTransition) {
		tr.Duration = -5
		tr.Delay = 120
		tr.ToStateID = "elsewhere"
		tr.ElementOverrides = map[string]domain.ElementOverride{"box": {Duration: 50}}
	}))
	tr, _ := s.Transition(id)
	assert.Equal(t, 0.0, tr.Duration)
	assert.Equal(t, 120.0, tr.Delay)
	assert.Equal(t, b.ID, tr.ToStateID)
	assert.Contains(t, tr.ElementOverrides, "box")

	require.True(t, s.SetCascadePreset(id, "dramatic"))
	tr, _ = s.Transition(id)
	require.NotNil(t, tr.Cascade)
	assert.True(t, tr.Cascade.Enabled)
	assert.Equal(t, "dramatic", tr.Cascade.Preset)
	assert.False(t, s.SetCascadePreset(id, "unknown"))
}

func TestDuplicateTransition(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)
	c := s.CreateState("board", "C", nil)
	id, _ := s.CreateTransition(a.ID, b.ID)
	require.True(t, s.UpdateTransition(id, func(tr *domain.StateTransition) { tr.Duration = 800 }))

	// Same pair would violate uniqueness.
	_, ok := s.DuplicateTransition(id, "", "")
	assert.False(t, ok)

	dupID, ok := s.DuplicateTransition(id, b.ID, c.ID)
	require.True(t, ok)
	src, _ := s.Transition(id)
	dup, _ := s.Transition(dupID)
	assert.Equal(t, 800.0, dup.Duration)
	assert.Equal(t, src.Easing, dup.Easing)
	assert.Equal(t, b.ID, dup.FromStateID)
	assert.Equal(t, c.ID, dup.ToStateID)
	assert.True(t, dup.CreatedAt.After(src.UpdatedAt))

	require.True(t, s.DeleteTransition(id))
	_, ok = s.FindTransition(a.ID, b.ID)
	assert.False(t, ok)
}

func TestChains(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)

	first, ok := s.CreateChain("board", "Intro", a.ID)
	require.True(t, ok)
	second, ok := s.CreateChain("board", "Outro", b.ID)
	require.True(t, ok)
	_, ok = s.CreateChain("board", "Broken", "missing")
	assert.False(t, ok)

	def, ok := s.DefaultChain("board")
	require.True(t, ok)
	assert.Equal(t, first, def.ID)
	require.Len(t, def.Steps, 1)
	assert.Equal(t, a.ID, def.Steps[0].StateID)

	// A state may repeat within a chain.
	_, ok = s.AddChainStep(first, b.ID, map[string]any{"hold_time": 100})
	require.True(t, ok)
	stepID, ok := s.AddChainStep(first, a.ID, nil)
	require.True(t, ok)
	_, ok = s.AddChainStep(first, "missing", nil)
	assert.False(t, ok)

	require.True(t, s.MoveChainStep(first, stepID, 0))
	chain, _ := s.Chain(first)
	require.Len(t, chain.Steps, 3)
	assert.Equal(t, stepID, chain.Steps[0].ID)
	assert.Equal(t, a.ID, chain.StartStateID)

	require.True(t, s.RemoveChainStep(first, stepID))
	chain, _ = s.Chain(first)
	assert.Len(t, chain.Steps, 2)

	require.True(t, s.SetDefaultChain(second))
	def, _ = s.DefaultChain("board")
	assert.Equal(t, second, def.ID)

	require.True(t, s.DeleteChain(second))
	def, ok = s.DefaultChain("board")
	require.True(t, ok)
	assert.Equal(t, first, def.ID, "first remaining chain is promoted")
}

func TestDuplicateChain(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	id, _ := s.CreateChain("board", "Intro", a.ID)
	require.True(t, s.UpdateChain(id, func(c *domain.AnimationChain) { c.Mode = domain.ModeLoop }))

	dupID, ok := s.DuplicateChain(id)
	require.True(t, ok)

	src, _ := s.Chain(id)
	dup, _ := s.Chain(dupID)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, src.Name, dup.Name)
	assert.Equal(t, domain.ModeLoop, dup.Mode)
	assert.False(t, dup.IsDefault)
	assert.NotEqual(t, src.Steps[0].ID, dup.Steps[0].ID)
	assert.Equal(t, src.Steps[0].StateID, dup.Steps[0].StateID)
	assert.True(t, dup.CreatedAt.After(src.CreatedAt))
}

func TestSnapshotIsStable(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 1, 1)})

	snap := s.Snapshot("board")
	require.True(t, s.UpdateElement(a.ID, "box", func(el *domain.AnimationStateElement) { el.X = 50 }))

	assert.Equal(t, 0.0, snap.States[0].Elements[0].X)
	assert.Greater(t, s.Snapshot("board").Revision, snap.Revision)
}

func TestTimelineFollowsRevision(t *testing.T) {
	s, _ := newStudio(t)
	a := s.CreateState("board", "A", nil)
	b := s.CreateState("board", "B", nil)
	require.True(t, s.UpdateState(b.ID, func(st *domain.AnimationState) { st.HoldTime = 0 }))

	tl := s.Timeline("board")
	assert.Equal(t, domain.DefaultHoldTime+domain.DefaultTransitionDuration, tl.TotalDuration)

	id, _ := s.CreateTransition(a.ID, b.ID)
	require.True(t, s.UpdateTransition(id, func(tr *domain.StateTransition) {
		tr.Duration = 1000
		tr.Delay = 100
	}))
	tl = s.Timeline("board")
	assert.Equal(t, domain.DefaultHoldTime+100+1000, tl.TotalDuration)
}

func seed(t *testing.T, s *studio.Studio, artboard string) (domain.AnimationState, domain.AnimationState) {
	t.Helper()
	a := s.CreateState(artboard, "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	b := s.CreateState(artboard, "B", nil)
	_, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)
	chainID, ok := s.CreateChain(artboard, "Intro", a.ID)
	require.True(t, ok)
	_, ok = s.AddChainStep(chainID, b.ID, nil)
	require.True(t, ok)
	return a, b
}

func TestExportImport_Replace(t *testing.T) {
	src, _ := newStudio(t)
	seed(t, src, "source")
	doc := src.Export("source")

	dst, _ := newStudio(t)
	dst.CreateState("target", "Old", nil)

	res := dst.Import("target", doc, domain.ImportReplace)
	assert.Equal(t, domain.ImportResult{States: 2, Transitions: 1, Chains: 1}, res)

	states := dst.States("target")
	assert.Equal(t, []string{"A", "B"}, names(states))
	assert.Equal(t, []int{0, 1}, orders(states))

	tr := dst.Transitions("target")
	require.Len(t, tr, 1)
	assert.Equal(t, states[0].ID, tr[0].FromStateID)
	assert.Equal(t, states[1].ID, tr[0].ToStateID)

	chains := dst.Chains("target")
	require.Len(t, chains, 1)
	assert.True(t, chains[0].IsDefault)
	assert.Equal(t, states[0].ID, chains[0].StartStateID)
	assert.Equal(t, "target", chains[0].ArtboardID)
}

func TestExport_DropsReferencesToDeletedStates(t *testing.T) {
	s, _ := newStudio(t)
	a, b := seed(t, s, "board")
	require.True(t, s.DeleteState(b.ID))

	doc := s.Export("board")
	require.Len(t, doc.States, 1)
	assert.Empty(t, doc.Transitions)
	require.Len(t, doc.Chains, 1)
	require.Len(t, doc.Chains[0].Steps, 1)
	assert.Equal(t, a.ID, doc.Chains[0].Steps[0].StateID)
	assert.Equal(t, a.ID, doc.Chains[0].StartStateID)

	require.True(t, s.DeleteState(a.ID))
	doc = s.Export("board")
	assert.Empty(t, doc.Transitions)
	assert.Empty(t, doc.Chains, "a chain with no surviving step is left out")
}

func TestImport_WarnsOnDuplicateStateIDs(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newStudio(t, studio.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))

	doc := domain.Document{States: []domain.AnimationState{
		{Name: "One"}, {Name: "Two"}, {Name: "Three"},
	}}
	res := s.Import("board", doc, domain.ImportReplace)

	assert.Equal(t, 1, res.States)
	assert.Equal(t, 2, strings.Count(buf.String(), "duplicate state id dropped from import"))
}

func TestImport_MergeAppendsAndFilters(t *testing.T) {
	s, _ := newStudio(t)
	existing, _ := seed(t, s, "board")

	doc := domain.Document{
		States: []domain.AnimationState{
			{ID: "x", Name: "X", Order: 1},
			{ID: "w", Name: "W", Order: 0, HoldTime: 99999},
		},
		Transitions: []domain.StateTransition{
			{ID: "t1", FromStateID: "w", ToStateID: "x", Duration: 200},
			{ID: "t2", FromStateID: "w", ToStateID: "ghost"},
		},
		Chains: []domain.AnimationChain{
			{ID: "c1", Name: "Merged", StartStateID: "ghost", IsDefault: true, Steps: []domain.ChainStep{
				{ID: "s1", StateID: "ghost"}, {ID: "s2", StateID: "x"},
			}},
			{ID: "c2", Name: "Dropped", StartStateID: "ghost"},
		},
	}

	res := s.Import("board", doc, domain.ImportMerge)
	assert.Equal(t, domain.ImportResult{States: 2, Transitions: 1, Chains: 1}, res)

	states := s.States("board")
	assert.Equal(t, []string{"A", "B", "W", "X"}, names(states))
	assert.Equal(t, []int{0, 1, 2, 3}, orders(states))
	assert.Equal(t, domain.MaxHoldTime, states[2].HoldTime)
	assert.Equal(t, existing.ID, states[0].ID)

	def, _ := s.DefaultChain("board")
	assert.Equal(t, "Intro", def.Name, "merge keeps the existing default")

	chains := s.Chains("board")
	require.Len(t, chains, 2)
	merged := chains[1]
	assert.False(t, merged.IsDefault)
	require.Len(t, merged.Steps, 1)
	assert.Equal(t, states[3].ID, merged.StartStateID)
}

func TestSaveLoad(t *testing.T) {
	store := memory.NewStore()
	s, _ := newStudio(t, studio.WithStore(store))
	seed(t, s, "board")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "board"))

	restored, _ := newStudio(t, studio.WithStore(store))
	res, err := restored.Load(ctx, "board", domain.ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, res.States)

	_, err = restored.Load(ctx, "nope", domain.ImportReplace)
	assert.ErrorIs(t, err, domain.ErrArtboardNotFound)

	assert.ErrorIs(t, studio.New().Save(ctx, "board"), studio.ErrNoStore)
}

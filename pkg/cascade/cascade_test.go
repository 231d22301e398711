package cascade

import (
	"testing"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateStaggerDelays(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name   string
		origin domain.StaggerOrigin
		want   map[string]float64
	}{
		{
			name:   "First",
			origin: domain.OriginFirst,
			want:   map[string]float64{"a": 0, "b": 100, "c": 200, "d": 300, "e": 400},
		},
		{
			name:   "Last",
			origin: domain.OriginLast,
			want:   map[string]float64{"a": 400, "b": 300, "c": 200, "d": 100, "e": 0},
		},
		{
			name:   "Center",
			origin: domain.OriginCenter,
			want:   map[string]float64{"a": 200, "b": 100, "c": 0, "d": 100, "e": 200},
		},
		{
			name:   "Edges",
			origin: domain.OriginEdges,
			want:   map[string]float64{"a": 0, "b": 100, "c": 200, "d": 100, "e": 0},
		},
		{
			name:   "Legacy alias end",
			origin: "end",
			want:   map[string]float64{"a": 400, "b": 300, "c": 200, "d": 100, "e": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStaggerDelays(ids, 100, tt.origin))
		})
	}
}

func TestCalculateStaggerDelays_EvenCenter(t *testing.T) {
	got := CalculateStaggerDelays([]string{"a", "b", "c", "d"}, 100, domain.OriginCenter)
	assert.Equal(t, map[string]float64{"a": 150, "b": 50, "c": 50, "d": 150}, got)
}

func TestCalculateStaggerDelays_Empty(t *testing.T) {
	assert.Empty(t, CalculateStaggerDelays(nil, 100, domain.OriginFirst))
}

func el(id, parent string, mode domain.InheritanceMode) domain.AnimationStateElement {
	e := domain.NewElement(id, 0, 0, 10, 10)
	e.ParentID = parent
	e.InheritanceMode = mode
	return e
}

func TestHierarchyOffsets(t *testing.T) {
	elements := []domain.AnimationStateElement{
		el("root", "", domain.InheritRelative),
		el("a", "root", domain.InheritRelative),
		el("b", "root", domain.InheritRelative),
		el("a1", "a", domain.InheritRelative),
		el("free", "root", domain.InheritIndependent),
		el("free-child", "free", domain.InheritRelative),
	}
	cfg := domain.CascadeConfig{
		Enabled: true,
		Stagger: domain.StaggerConfig{PerElementDelay: 50, Origin: domain.OriginFirst},
	}

	got := HierarchyOffsets(elements, cfg)

	assert.Equal(t, 0.0, got["root"])
	// Children start one step after their parent, fanned out by sibling index.
	assert.Equal(t, 50.0, got["a"])
	assert.Equal(t, 100.0, got["b"])
	assert.Equal(t, 100.0, got["a1"])
	// Independent elements inherit nothing.
	assert.Equal(t, 0.0, got["free"])
	assert.Equal(t, 50.0, got["free-child"])
}

func TestHierarchyOffsets_Disabled(t *testing.T) {
	elements := []domain.AnimationStateElement{el("a", "", ""), el("b", "a", "")}
	got := HierarchyOffsets(elements, domain.CascadeConfig{Enabled: false, Stagger: domain.StaggerConfig{PerElementDelay: 80}})
	assert.Equal(t, map[string]float64{"a": 0, "b": 0}, got)
}

func TestHierarchyOffsets_DanglingParentAndCycle(t *testing.T) {
	elements := []domain.AnimationStateElement{
		el("orphan", "missing", domain.InheritRelative),
		el("x", "y", domain.InheritRelative),
		el("y", "x", domain.InheritRelative),
	}
	cfg := domain.CascadeConfig{Enabled: true, Stagger: domain.StaggerConfig{PerElementDelay: 10}}

	got := HierarchyOffsets(elements, cfg)

	assert.Len(t, got, 3)
	assert.Equal(t, 0.0, got["orphan"])
	assert.Contains(t, got, "x")
	assert.Contains(t, got, "y")
}

func TestDepths(t *testing.T) {
	elements := []domain.AnimationStateElement{
		el("root", "", ""), el("a", "root", ""), el("a1", "a", ""), el("lost", "gone", ""),
	}
	assert.Equal(t, map[string]int{"root": 0, "a": 1, "a1": 2, "lost": 0}, Depths(elements))
}

func TestApplyCascadePreset(t *testing.T) {
	cfg, ok := ApplyCascadePreset("center-out")
	assert.True(t, ok)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, domain.OriginCenter, cfg.Stagger.Origin)
	assert.Equal(t, "center-out", cfg.Preset)

	cfg, ok = ApplyCascadePreset("nope")
	assert.False(t, ok)
	assert.False(t, cfg.Enabled)

	assert.Len(t, Presets(), 7)
}

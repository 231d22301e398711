package capture

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElements(t *testing.T) {
	boxes := []Box{
		{ID: "child", ParentID: "row", ArtboardID: "a", Width: 10, Height: 10, Visible: true},
		{ID: "row", ArtboardID: "a", X: 5, Width: 100, Height: 20, Visible: true, Layout: json.RawMessage(`{"direction":"row"}`)},
		{ID: "elsewhere", ArtboardID: "b", Visible: true},
		{ID: "hidden", ArtboardID: "a", Visible: false},
	}
	layout := func(parent Box, children []Box) []domain.ChildPosition {
		out := make([]domain.ChildPosition, len(children))
		for i, c := range children {
			out[i] = domain.ChildPosition{ElementID: c.ID, X: parent.X + 2, Y: 3, Width: 8, Height: 8}
		}
		return out
	}

	els := Elements("a", boxes, layout)
	require.Len(t, els, 3)

	assert.Equal(t, "row", els[0].ElementID)
	require.NotNil(t, els[0].LayoutSnapshot)
	assert.JSONEq(t, `{"direction":"row"}`, string(els[0].LayoutSnapshot.Config))
	assert.Len(t, els[0].LayoutSnapshot.Children, 1)

	assert.Equal(t, "child", els[1].ElementID)
	assert.Equal(t, "row", els[1].ParentID)
	assert.Equal(t, 7.0, els[1].X)
	assert.Equal(t, 8.0, els[1].Width)
	assert.Equal(t, 1.0, els[1].Opacity)

	assert.Equal(t, "hidden", els[2].ElementID)
	assert.False(t, els[2].Visible)
}

func TestElements_NoLayoutFunc(t *testing.T) {
	boxes := []Box{
		{ID: "p", ArtboardID: "a", Layout: json.RawMessage(`{}`)},
		{ID: "c", ParentID: "p", ArtboardID: "a", X: 1},
	}
	els := Elements("a", boxes, nil)
	require.Len(t, els, 2)
	assert.NotNil(t, els[0].LayoutSnapshot)
	assert.Empty(t, els[0].LayoutSnapshot.Children)
	assert.Equal(t, 1.0, els[1].X)
}

func TestElements_Cycle(t *testing.T) {
	boxes := []Box{
		{ID: "x", ParentID: "y", ArtboardID: "a"},
		{ID: "y", ParentID: "x", ArtboardID: "a"},
	}
	assert.Len(t, Elements("a", boxes, nil), 2)
}

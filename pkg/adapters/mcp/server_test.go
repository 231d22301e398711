package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/pkg/domain"
)

func newTestServer(t *testing.T) (*Server, *storyboard.Engine) {
	t.Helper()
	eng, err := storyboard.New()
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	s := eng.Studio()
	a := s.CreateState("hero", "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	b := s.CreateState("hero", "B", []domain.AnimationStateElement{domain.NewElement("box", 100, 0, 10, 10)})
	id, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)
	require.True(t, s.UpdateTransition(id, func(tr *domain.StateTransition) { tr.Easing = domain.EasingLinear }))

	return NewServer(eng, "test"), eng
}

func TestComputeTimeline(t *testing.T) {
	srv, _ := newTestServer(t)

	tl, err := srv.handleComputeTimeline(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"artboard_id": "hero"})
	require.NoError(t, err)
	assert.Equal(t, 1300.0, tl.TotalDuration)
	assert.Len(t, tl.Segments, 3)

	_, err = srv.handleComputeTimeline(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestSampleFrame(t *testing.T) {
	srv, _ := newTestServer(t)

	frame, err := srv.handleSampleFrame(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"artboard_id": "hero", "time": 650.0})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, frame.Elements["box"].X, 1e-9)

	_, err = srv.handleSampleFrame(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"artboard_id": "hero", "time": "soon"})
	assert.Error(t, err)
}

func TestListStates(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.handleListStates(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"artboard_id": "hero"})
	require.NoError(t, err)
	require.Len(t, resp.States, 2)
	assert.Equal(t, "A", resp.States[0].Name)
	assert.Equal(t, []string{"box"}, resp.States[0].Elements)
	assert.Equal(t, 1, resp.States[1].Order)
}

func TestReadArtboard(t *testing.T) {
	srv, _ := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "storyboard://artboards/hero"
	contents, err := srv.readArtboard(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(text.Text), &doc))
	assert.Equal(t, "hero", doc.ArtboardID)
	assert.Len(t, doc.States, 2)

	req.Params.URI = "storyboard://artboards/ghost"
	_, err = srv.readArtboard(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrArtboardNotFound)
}

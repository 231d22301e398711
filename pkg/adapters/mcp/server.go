package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/internal/presentation/graph"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
	"github.com/aretw0/storyboard/pkg/studio"
)

const artboardURIPrefix = "storyboard://artboards/"

// Engine defines what the MCP server needs from storyboard.Engine.
type Engine interface {
	Studio() *studio.Studio
	Timeline(artboardID string) domain.ComputedTimeline
	Sample(artboardID string, t float64) playback.Frame
}

// StateSummary is the list_states row.
type StateSummary struct {
	ID       string   `json:"id" jsonschema_description:"State id"`
	Name     string   `json:"name"`
	Order    int      `json:"order"`
	HoldTime float64  `json:"hold_time" jsonschema_description:"Hold duration in ms"`
	Trigger  string   `json:"trigger" jsonschema_description:"Human readable trigger"`
	Elements []string `json:"elements" jsonschema_description:"Element ids captured by the state"`
}

// StatesResponse wraps list_states output; structured results must be objects.
type StatesResponse struct {
	ArtboardID string         `json:"artboard_id"`
	States     []StateSummary `json:"states"`
}

// Server wraps the Storyboard Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Keep it off stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("storyboard-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: compute_timeline
	s.mcpServer.AddTool(mcp.NewTool("compute_timeline",
		mcp.WithDescription("Compile an artboard's states and transitions into timed segments (ms)."),
		mcp.WithString("artboard_id", mcp.Required(), mcp.Description("Artboard to compile")),
		mcp.WithOutputSchema[domain.ComputedTimeline](),
	), mcp.NewStructuredToolHandler(s.handleComputeTimeline))

	// TOOL: sample_frame
	s.mcpServer.AddTool(mcp.NewTool("sample_frame",
		mcp.WithDescription("Interpolated element values of an artboard at a point of its timeline."),
		mcp.WithString("artboard_id", mcp.Required(), mcp.Description("Artboard to sample")),
		mcp.WithNumber("time", mcp.Required(), mcp.Description("Timeline position in ms")),
		mcp.WithOutputSchema[playback.Frame](),
	), mcp.NewStructuredToolHandler(s.handleSampleFrame))

	// TOOL: list_states
	s.mcpServer.AddTool(mcp.NewTool("list_states",
		mcp.WithDescription("List an artboard's states in playback order."),
		mcp.WithString("artboard_id", mcp.Required(), mcp.Description("Artboard to inspect")),
		mcp.WithOutputSchema[StatesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListStates))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Mermaid flowchart of an artboard's states, transitions and default chain."),
		mcp.WithString("artboard_id", mcp.Required(), mcp.Description("Artboard to draw")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("artboard_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.Studio().Snapshot(id), nil)), nil
	})
}

func artboardArg(args map[string]interface{}) (string, error) {
	id, _ := args["artboard_id"].(string)
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("artboard_id is required")
	}
	return id, nil
}

func (s *Server) handleComputeTimeline(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ComputedTimeline, error) {
	id, err := artboardArg(args)
	if err != nil {
		return domain.ComputedTimeline{}, err
	}
	return s.engine.Timeline(id), nil
}

func (s *Server) handleSampleFrame(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (playback.Frame, error) {
	id, err := artboardArg(args)
	if err != nil {
		return playback.Frame{}, err
	}
	t, ok := args["time"].(float64)
	if !ok {
		return playback.Frame{}, fmt.Errorf("time must be a number")
	}
	s.logger.Debug("MCP sample_frame", "artboard_id", id, "time", t)
	return s.engine.Sample(id, t), nil
}

func (s *Server) handleListStates(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StatesResponse, error) {
	id, err := artboardArg(args)
	if err != nil {
		return StatesResponse{}, err
	}
	board := s.engine.Studio().Snapshot(id)
	resp := StatesResponse{ArtboardID: id, States: make([]StateSummary, 0, len(board.States))}
	for _, st := range board.States {
		resp.States = append(resp.States, StateSummary{
			ID:       st.ID,
			Name:     st.Name,
			Order:    st.Order,
			HoldTime: st.HoldTime,
			Trigger:  domain.DescribeTrigger(st.Trigger),
			Elements: st.ElementIDs(),
		})
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: storyboard://artboards
	s.mcpServer.AddResource(mcp.NewResource("storyboard://artboards", "Artboards",
		mcp.WithResourceDescription("Ids of artboards holding animation data"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.engine.Studio().Artboards())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: request.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})

	// EXPOSE: storyboard://artboards/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(artboardURIPrefix+"{id}", "Artboard Document",
		mcp.WithTemplateDescription("Exported animation document of one artboard"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readArtboard)
}

func (s *Server) readArtboard(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(request.Params.URI, artboardURIPrefix)
	if id == "" || id == request.Params.URI {
		return nil, fmt.Errorf("invalid artboard uri %q", request.Params.URI)
	}
	doc := s.engine.Studio().Export(id)
	if len(doc.States)+len(doc.Transitions)+len(doc.Chains) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtboardNotFound, id)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artboard %s: %w", id, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: request.Params.URI, MIMEType: "application/json", Text: string(data)},
	}, nil
}

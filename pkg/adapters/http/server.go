package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
	"github.com/aretw0/storyboard/pkg/studio"
)

// Engine is the part of storyboard.Engine served over HTTP.
type Engine interface {
	Studio() *studio.Studio
	Player(artboardID string) *playback.Scheduler
	Timeline(artboardID string) domain.ComputedTimeline
	Sample(artboardID string, t float64) playback.Frame
	SampleChain(artboardID, chainID string, cursor domain.ChainPlaybackState) playback.Frame
	Save(ctx context.Context, artboardID string) error
	Load(ctx context.Context, artboardID string, mode domain.ImportMode) (domain.ImportResult, error)
}

// Server holds the HTTP handlers.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Version string

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager whose Hooks feed the engine, enabling
// GET /artboards/{id}/events.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/easings", s.ListEasings)
	r.Get("/cascade-presets", s.ListPresets)

	r.Route("/artboards", func(r chi.Router) {
		r.Get("/", s.ListArtboards)
		r.Route("/{artboardID}", func(r chi.Router) {
			r.Get("/", s.ExportDocument)
			r.Put("/", s.ImportDocument)
			r.Delete("/", s.ClearArtboard)
			r.Post("/save", s.SaveArtboard)
			r.Post("/load", s.LoadArtboard)

			r.Get("/timeline", s.GetTimeline)
			r.Get("/frame", s.SampleFrame)
			r.Get("/graph", s.GetGraph)
			r.Get("/events", s.SubscribeEvents)

			r.Post("/states", s.CreateState)
			r.Post("/chains", s.CreateChain)
			r.Get("/chains/{chainID}/frame", s.SampleChainFrame)

			r.Route("/playback", func(r chi.Router) {
				r.Get("/", s.GetPlayback)
				r.Post("/play", s.Play)
				r.Post("/pause", s.Pause)
				r.Post("/stop", s.Stop)
				r.Post("/seek", s.Seek)
				r.Post("/speed", s.SetSpeed)
				r.Post("/loop", s.SetLoop)
				r.Post("/chains/{chainID}/play", s.PlayChain)
				r.Post("/chain/pause", s.PauseChain)
				r.Post("/chain/stop", s.StopChain)
			})
		})
	})

	r.Route("/states/{stateID}", func(r chi.Router) {
		r.Get("/", s.GetState)
		r.Patch("/", s.UpdateState)
		r.Delete("/", s.DeleteState)
		r.Post("/duplicate", s.DuplicateState)
		r.Post("/move", s.MoveState)
		r.Put("/elements/{elementID}", s.UpdateElement)
	})

	r.Post("/transitions", s.CreateTransition)
	r.Route("/transitions/{transitionID}", func(r chi.Router) {
		r.Get("/", s.GetTransition)
		r.Patch("/", s.UpdateTransition)
		r.Delete("/", s.DeleteTransition)
		r.Put("/cascade", s.SetCascadePreset)
		r.Post("/duplicate", s.DuplicateTransition)
	})

	r.Route("/chains/{chainID}", func(r chi.Router) {
		r.Get("/", s.GetChain)
		r.Patch("/", s.UpdateChain)
		r.Delete("/", s.DeleteChain)
		r.Post("/default", s.SetDefaultChain)
		r.Post("/duplicate", s.DuplicateChain)
		r.Post("/steps", s.AddChainStep)
		r.Delete("/steps/{stepID}", s.RemoveChainStep)
		r.Post("/steps/{stepID}/move", s.MoveChainStep)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "storyboard-http",
		"version": s.Version,
	})
}

// -- Helpers --

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Warn("request rejected", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Join(errInvalidBody, err))
		return false
	}
	return true
}

var (
	errInvalidBody = errors.New("invalid request body")
	errRejected    = errors.New("operation rejected")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrArtboardNotFound),
		errors.Is(err, domain.ErrStateNotFound),
		errors.Is(err, domain.ErrChainNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrUnknownTrigger),
		errors.Is(err, errRejected):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func importMode(r *http.Request) domain.ImportMode {
	if domain.ImportMode(r.URL.Query().Get("mode")) == domain.ImportMerge {
		return domain.ImportMerge
	}
	return domain.ImportReplace
}

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
)

// StreamManager fans playback events out to SSE subscribers per artboard.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // ArtboardID -> Set of Channels
	logger      *slog.Logger
	// Frames also streams per-frame events, which are high volume.
	Frames bool
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

// SetLogger sets the logger used for dropped messages.
func (sm *StreamManager) SetLogger(logger *slog.Logger) {
	if logger != nil {
		sm.logger = logger
	}
}

// Subscribe registers a channel for artboardID. The returned func unsubscribes
// and closes it.
func (sm *StreamManager) Subscribe(artboardID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[artboardID]; !ok {
		sm.subscribers[artboardID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[artboardID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[artboardID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, artboardID)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of artboardID without blocking.
func (sm *StreamManager) Broadcast(artboardID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[artboardID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping message", "artboard_id", artboardID)
		}
	}
}

// Hooks returns playback hooks that broadcast each event as JSON, then call next.
func (sm *StreamManager) Hooks(next domain.PlaybackHooks) domain.PlaybackHooks {
	return domain.PlaybackHooks{
		OnPlayback: func(ctx context.Context, e *domain.PlaybackEvent) {
			sm.publish(e.ArtboardID, e)
			if next.OnPlayback != nil {
				next.OnPlayback(ctx, e)
			}
		},
		OnSegmentEnter: func(ctx context.Context, e *domain.SegmentEvent) {
			sm.publish(e.ArtboardID, e)
			if next.OnSegmentEnter != nil {
				next.OnSegmentEnter(ctx, e)
			}
		},
		OnChain: func(ctx context.Context, e *domain.ChainEvent) {
			sm.publish(e.ArtboardID, e)
			if next.OnChain != nil {
				next.OnChain(ctx, e)
			}
		},
		OnFrame: func(ctx context.Context, e *domain.FrameEvent) {
			if sm.Frames {
				sm.publish(e.ArtboardID, e)
			}
			if next.OnFrame != nil {
				next.OnFrame(ctx, e)
			}
		},
	}
}

func (sm *StreamManager) publish(artboardID string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		sm.logger.Error("SSE: event encode failed", "error", err)
		return
	}
	sm.Broadcast(artboardID, string(data))
}

// SubscribeEvents handles GET /artboards/{artboardID}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	artboardID := chi.URLParam(r, "artboardID")
	ch, cancel := s.Streams.Subscribe(artboardID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: subscribed", "artboard_id", artboardID)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "artboard_id", artboardID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
)

type playbackResponse struct {
	Playback      domain.PlaybackState      `json:"playback"`
	Chain         domain.ChainPlaybackState `json:"chain"`
	TotalDuration float64                   `json:"total_duration"`
	Frame         playback.Frame            `json:"frame"`
}

func (s *Server) player(r *http.Request) *playback.Scheduler {
	return s.Engine.Player(chi.URLParam(r, "artboardID"))
}

func (s *Server) writePlayback(w http.ResponseWriter, p *playback.Scheduler) {
	s.writeJSON(w, http.StatusOK, playbackResponse{
		Playback:      p.State(),
		Chain:         p.ChainState(),
		TotalDuration: p.TotalDuration(),
		Frame:         p.Frame(),
	})
}

// GetPlayback handles GET /artboards/{artboardID}/playback.
func (s *Server) GetPlayback(w http.ResponseWriter, r *http.Request) {
	s.writePlayback(w, s.player(r))
}

// Play handles POST /artboards/{artboardID}/playback/play.
func (s *Server) Play(w http.ResponseWriter, r *http.Request) {
	p := s.player(r)
	p.Play()
	s.writePlayback(w, p)
}

// Pause handles POST /artboards/{artboardID}/playback/pause.
func (s *Server) Pause(w http.ResponseWriter, r *http.Request) {
	p := s.player(r)
	p.Pause()
	s.writePlayback(w, p)
}

// Stop handles POST /artboards/{artboardID}/playback/stop.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	p := s.player(r)
	p.Stop()
	s.writePlayback(w, p)
}

type seekRequest struct {
	Time float64 `json:"time"`
}

// Seek handles POST /artboards/{artboardID}/playback/seek.
func (s *Server) Seek(w http.ResponseWriter, r *http.Request) {
	var body seekRequest
	if !s.decode(w, r, &body) {
		return
	}
	p := s.player(r)
	p.SeekTo(body.Time)
	s.writePlayback(w, p)
}

type speedRequest struct {
	Speed float64 `json:"speed"`
}

// SetSpeed handles POST /artboards/{artboardID}/playback/speed. Speeds off the
// allow-list fall back to the default; the response carries the applied value.
func (s *Server) SetSpeed(w http.ResponseWriter, r *http.Request) {
	var body speedRequest
	if !s.decode(w, r, &body) {
		return
	}
	p := s.player(r)
	p.SetPlaybackSpeed(body.Speed)
	s.writePlayback(w, p)
}

type loopRequest struct {
	Loop *bool `json:"loop"`
}

// SetLoop handles POST /artboards/{artboardID}/playback/loop. Without a body
// value the flag is toggled.
func (s *Server) SetLoop(w http.ResponseWriter, r *http.Request) {
	var body loopRequest
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}
	p := s.player(r)
	if body.Loop != nil {
		p.SetLoop(*body.Loop)
	} else {
		p.ToggleLoop()
	}
	s.writePlayback(w, p)
}

// PlayChain handles POST /artboards/{artboardID}/playback/chains/{chainID}/play.
func (s *Server) PlayChain(w http.ResponseWriter, r *http.Request) {
	chainID := chi.URLParam(r, "chainID")
	p := s.player(r)
	if !p.PlayChain(chainID) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, chainID))
		return
	}
	s.writePlayback(w, p)
}

// PauseChain handles POST /artboards/{artboardID}/playback/chain/pause.
func (s *Server) PauseChain(w http.ResponseWriter, r *http.Request) {
	p := s.player(r)
	p.PauseChain()
	s.writePlayback(w, p)
}

// StopChain handles POST /artboards/{artboardID}/playback/chain/stop.
func (s *Server) StopChain(w http.ResponseWriter, r *http.Request) {
	p := s.player(r)
	p.StopChain()
	s.writePlayback(w, p)
}

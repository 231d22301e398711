package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/storyboard/internal/presentation/graph"
	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
)

type idResponse struct {
	ID string `json:"id"`
}

// ListArtboards handles GET /artboards.
func (s *Server) ListArtboards(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Studio().Artboards())
}

// ExportDocument handles GET /artboards/{artboardID}.
func (s *Server) ExportDocument(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Studio().Export(chi.URLParam(r, "artboardID")))
}

// ImportDocument handles PUT /artboards/{artboardID}?mode=replace|merge.
func (s *Server) ImportDocument(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if !s.decode(w, r, &doc) {
		return
	}
	res := s.Engine.Studio().Import(chi.URLParam(r, "artboardID"), doc, importMode(r))
	s.writeJSON(w, http.StatusOK, res)
}

// ClearArtboard handles DELETE /artboards/{artboardID}.
func (s *Server) ClearArtboard(w http.ResponseWriter, r *http.Request) {
	s.Engine.Studio().ClearArtboard(chi.URLParam(r, "artboardID"))
	w.WriteHeader(http.StatusNoContent)
}

// SaveArtboard handles POST /artboards/{artboardID}/save.
func (s *Server) SaveArtboard(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Save(r.Context(), chi.URLParam(r, "artboardID")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadArtboard handles POST /artboards/{artboardID}/load?mode=replace|merge.
func (s *Server) LoadArtboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Load(r.Context(), chi.URLParam(r, "artboardID"), importMode(r))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GetTimeline handles GET /artboards/{artboardID}/timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Timeline(chi.URLParam(r, "artboardID")))
}

// SampleFrame handles GET /artboards/{artboardID}/frame?t=ms.
func (s *Server) SampleFrame(w http.ResponseWriter, r *http.Request) {
	t, err := queryFloat(r, "t", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid t: %w", err))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Sample(chi.URLParam(r, "artboardID"), t))
}

// SampleChainFrame handles GET /artboards/{artboardID}/chains/{chainID}/frame?step=i&elapsed=ms&reversing=bool.
func (s *Server) SampleChainFrame(w http.ResponseWriter, r *http.Request) {
	artboardID, chainID := chi.URLParam(r, "artboardID"), chi.URLParam(r, "chainID")
	if ch, ok := s.Engine.Studio().Chain(chainID); !ok || ch.ArtboardID != artboardID {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, chainID))
		return
	}
	step, err := queryFloat(r, "step", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid step: %w", err))
		return
	}
	elapsed, err := queryFloat(r, "elapsed", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid elapsed: %w", err))
		return
	}
	cursor := domain.ChainPlaybackState{
		CurrentStepIndex: int(step),
		ElapsedTime:      elapsed,
		IsReversing:      r.URL.Query().Get("reversing") == "true",
	}
	s.writeJSON(w, http.StatusOK, s.Engine.SampleChain(artboardID, chainID, cursor))
}

// GetGraph handles GET /artboards/{artboardID}/graph, returning Mermaid text.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	board := s.Engine.Studio().Snapshot(chi.URLParam(r, "artboardID"))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(board, nil))
}

// ListEasings handles GET /easings.
func (s *Server) ListEasings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, interpolate.Names())
}

// ListPresets handles GET /cascade-presets.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, cascade.Presets())
}

// -- States --

type createStateRequest struct {
	Name     string                         `json:"name"`
	Elements []domain.AnimationStateElement `json:"elements"`
}

// CreateState handles POST /artboards/{artboardID}/states.
func (s *Server) CreateState(w http.ResponseWriter, r *http.Request) {
	var body createStateRequest
	if !s.decode(w, r, &body) {
		return
	}
	st := s.Engine.Studio().CreateState(chi.URLParam(r, "artboardID"), body.Name, body.Elements)
	s.writeJSON(w, http.StatusCreated, st)
}

// GetState handles GET /states/{stateID}.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stateID")
	st, ok := s.Engine.Studio().State(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id))
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

type updateStateRequest struct {
	Name     *string                         `json:"name"`
	HoldTime *float64                        `json:"hold_time"`
	Trigger  map[string]any                  `json:"trigger"`
	Elements *[]domain.AnimationStateElement `json:"elements"`
}

// UpdateState handles PATCH /states/{stateID}. Absent fields are left unchanged.
func (s *Server) UpdateState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stateID")
	var body updateStateRequest
	if !s.decode(w, r, &body) {
		return
	}
	var trig domain.Trigger
	if body.Trigger != nil {
		var err error
		if trig, err = domain.DecodeTrigger(body.Trigger); err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
	}
	ok := s.Engine.Studio().UpdateState(id, func(st *domain.AnimationState) {
		if body.Name != nil {
			st.Name = *body.Name
		}
		if body.HoldTime != nil {
			st.HoldTime = *body.HoldTime
		}
		if trig != nil {
			st.Trigger = trig
		}
		if body.Elements != nil {
			st.Elements = *body.Elements
		}
	})
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id))
		return
	}
	s.GetState(w, r)
}

// UpdateElement handles PUT /states/{stateID}/elements/{elementID}.
func (s *Server) UpdateElement(w http.ResponseWriter, r *http.Request) {
	stateID, elementID := chi.URLParam(r, "stateID"), chi.URLParam(r, "elementID")
	var body domain.AnimationStateElement
	if !s.decode(w, r, &body) {
		return
	}
	ok := s.Engine.Studio().UpdateElement(stateID, elementID, func(el *domain.AnimationStateElement) {
		body.ElementID = elementID
		*el = body
	})
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: element %s in %s", domain.ErrStateNotFound, elementID, stateID))
		return
	}
	s.GetState(w, r)
}

// DeleteState handles DELETE /states/{stateID}.
func (s *Server) DeleteState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stateID")
	if !s.Engine.Studio().DeleteState(id) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateState handles POST /states/{stateID}/duplicate.
func (s *Server) DuplicateState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stateID")
	newID, ok := s.Engine.Studio().DuplicateState(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id))
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: newID})
}

type moveRequest struct {
	Index int `json:"index"`
}

// MoveState handles POST /states/{stateID}/move with {"index": n}.
func (s *Server) MoveState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stateID")
	var body moveRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !s.Engine.Studio().MoveState(id, body.Index) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id))
		return
	}
	s.GetState(w, r)
}

// -- Transitions --

type transitionPairRequest struct {
	FromStateID string `json:"from_state_id"`
	ToStateID   string `json:"to_state_id"`
}

// CreateTransition handles POST /transitions. Creating an existing pair
// returns the existing id.
func (s *Server) CreateTransition(w http.ResponseWriter, r *http.Request) {
	var body transitionPairRequest
	if !s.decode(w, r, &body) {
		return
	}
	id, ok := s.Engine.Studio().CreateTransition(body.FromStateID, body.ToStateID)
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: no transition between %q and %q", errRejected, body.FromStateID, body.ToStateID))
		return
	}
	s.writeJSON(w, http.StatusOK, idResponse{ID: id})
}

// GetTransition handles GET /transitions/{transitionID}.
func (s *Server) GetTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transitionID")
	tr, ok := s.Engine.Studio().Transition(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("transition not found: %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, tr)
}

type updateTransitionRequest struct {
	Duration         *float64                          `json:"duration"`
	Delay            *float64                          `json:"delay"`
	Easing           *domain.Easing                    `json:"easing"`
	ElementOverrides map[string]domain.ElementOverride `json:"element_overrides"`
	Cascade          *domain.CascadeConfig             `json:"cascade"`
	Stagger          *domain.LegacyStagger             `json:"stagger"`
}

// UpdateTransition handles PATCH /transitions/{transitionID}.
func (s *Server) UpdateTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transitionID")
	var body updateTransitionRequest
	if !s.decode(w, r, &body) {
		return
	}
	ok := s.Engine.Studio().UpdateTransition(id, func(tr *domain.StateTransition) {
		if body.Duration != nil {
			tr.Duration = *body.Duration
		}
		if body.Delay != nil {
			tr.Delay = *body.Delay
		}
		if body.Easing != nil {
			tr.Easing = *body.Easing
		}
		if body.ElementOverrides != nil {
			tr.ElementOverrides = body.ElementOverrides
		}
		if body.Cascade != nil {
			tr.Cascade = body.Cascade
		}
		if body.Stagger != nil {
			tr.Stagger = body.Stagger
		}
	})
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("transition not found: %s", id))
		return
	}
	s.GetTransition(w, r)
}

type presetRequest struct {
	Preset string `json:"preset"`
}

// SetCascadePreset handles PUT /transitions/{transitionID}/cascade.
func (s *Server) SetCascadePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transitionID")
	var body presetRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !s.Engine.Studio().SetCascadePreset(id, body.Preset) {
		s.writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("%w: preset %q on %s", errRejected, body.Preset, id))
		return
	}
	s.GetTransition(w, r)
}

// DeleteTransition handles DELETE /transitions/{transitionID}.
func (s *Server) DeleteTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transitionID")
	if !s.Engine.Studio().DeleteTransition(id) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("transition not found: %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateTransition handles POST /transitions/{transitionID}/duplicate.
// Empty endpoints keep the source's.
func (s *Server) DuplicateTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transitionID")
	var body transitionPairRequest
	if !s.decode(w, r, &body) {
		return
	}
	newID, ok := s.Engine.Studio().DuplicateTransition(id, body.FromStateID, body.ToStateID)
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("%w: cannot duplicate %s", errRejected, id))
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: newID})
}

// -- Chains --

type createChainRequest struct {
	Name         string `json:"name"`
	StartStateID string `json:"start_state_id"`
}

// CreateChain handles POST /artboards/{artboardID}/chains.
func (s *Server) CreateChain(w http.ResponseWriter, r *http.Request) {
	var body createChainRequest
	if !s.decode(w, r, &body) {
		return
	}
	id, ok := s.Engine.Studio().CreateChain(chi.URLParam(r, "artboardID"), body.Name, body.StartStateID)
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: start state %q is not on this artboard", errRejected, body.StartStateID))
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// GetChain handles GET /chains/{chainID}.
func (s *Server) GetChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	ch, ok := s.Engine.Studio().Chain(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id))
		return
	}
	s.writeJSON(w, http.StatusOK, ch)
}

type updateChainRequest struct {
	Name *string              `json:"name"`
	Mode *domain.PlaybackMode `json:"mode"`
}

// UpdateChain handles PATCH /chains/{chainID}.
func (s *Server) UpdateChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	var body updateChainRequest
	if !s.decode(w, r, &body) {
		return
	}
	ok := s.Engine.Studio().UpdateChain(id, func(ch *domain.AnimationChain) {
		if body.Name != nil {
			ch.Name = *body.Name
		}
		if body.Mode != nil {
			ch.Mode = *body.Mode
		}
	})
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id))
		return
	}
	s.GetChain(w, r)
}

// DeleteChain handles DELETE /chains/{chainID}.
func (s *Server) DeleteChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	if !s.Engine.Studio().DeleteChain(id) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDefaultChain handles POST /chains/{chainID}/default.
func (s *Server) SetDefaultChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	if !s.Engine.Studio().SetDefaultChain(id) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id))
		return
	}
	s.GetChain(w, r)
}

// DuplicateChain handles POST /chains/{chainID}/duplicate.
func (s *Server) DuplicateChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	newID, ok := s.Engine.Studio().DuplicateChain(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id))
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: newID})
}

type addStepRequest struct {
	StateID  string         `json:"state_id"`
	Metadata map[string]any `json:"metadata"`
}

// AddChainStep handles POST /chains/{chainID}/steps.
func (s *Server) AddChainStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chainID")
	var body addStepRequest
	if !s.decode(w, r, &body) {
		return
	}
	stepID, ok := s.Engine.Studio().AddChainStep(id, body.StateID, body.Metadata)
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: cannot add state %q to chain %s", errRejected, body.StateID, id))
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: stepID})
}

// RemoveChainStep handles DELETE /chains/{chainID}/steps/{stepID}.
func (s *Server) RemoveChainStep(w http.ResponseWriter, r *http.Request) {
	id, stepID := chi.URLParam(r, "chainID"), chi.URLParam(r, "stepID")
	if !s.Engine.Studio().RemoveChainStep(id, stepID) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: step %s in %s", domain.ErrChainNotFound, stepID, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveChainStep handles POST /chains/{chainID}/steps/{stepID}/move.
func (s *Server) MoveChainStep(w http.ResponseWriter, r *http.Request) {
	id, stepID := chi.URLParam(r, "chainID"), chi.URLParam(r, "stepID")
	var body moveRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !s.Engine.Studio().MoveChainStep(id, stepID, body.Index) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: step %s in %s", domain.ErrChainNotFound, stepID, id))
		return
	}
	s.GetChain(w, r)
}

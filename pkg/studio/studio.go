package studio

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/ports"
	"github.com/aretw0/storyboard/pkg/timeline"
	"github.com/google/uuid"
)

// Studio is the single owner of the animation model. Safe for concurrent use.
type Studio struct {
	mu sync.RWMutex

	boards          map[string]*board
	stateBoard      map[string]string
	transitionBoard map[string]string
	chainBoard      map[string]string
	revision        uint64

	cache *timeline.Cache
	store ports.DocumentStore

	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	minHold       float64
	maxHold       float64
	defaultHold   float64
	defaultDur    float64
	defaultEasing domain.Easing
}

type board struct {
	states      []domain.AnimationState // sorted by Order
	transitions []domain.StateTransition
	chains      []domain.AnimationChain
	revision    uint64
}

// Board is a read-only view of one artboard. Its slices are shared with the
// Studio and must not be modified.
type Board struct {
	ArtboardID  string
	Revision    uint64
	States      []domain.AnimationState
	Transitions []domain.StateTransition
	Chains      []domain.AnimationChain
}

// Option configures a Studio.
type Option func(*Studio)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the document store used by Save and Load.
func WithStore(store ports.DocumentStore) Option {
	return func(s *Studio) {
		s.store = store
	}
}

// WithHoldTimeBounds sets the hold time clamp range.
func WithHoldTimeBounds(min, max float64) Option {
	return func(s *Studio) {
		s.minHold, s.maxHold = min, max
	}
}

// WithDefaultHoldTime sets the hold time of new states.
func WithDefaultHoldTime(ms float64) Option {
	return func(s *Studio) {
		s.defaultHold = ms
	}
}

// WithDefaultTransition sets the duration and easing of new transitions.
func WithDefaultTransition(durationMs float64, easing domain.Easing) Option {
	return func(s *Studio) {
		s.defaultDur = durationMs
		if easing != "" {
			s.defaultEasing = easing
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) {
		s.now = now
	}
}

// WithIDGenerator sets the id source. Defaults to random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Studio) {
		s.newID = gen
	}
}

// New creates an empty Studio.
func New(opts ...Option) *Studio {
	s := &Studio{
		boards:          make(map[string]*board),
		stateBoard:      make(map[string]string),
		transitionBoard: make(map[string]string),
		chainBoard:      make(map[string]string),
		cache:           timeline.NewCache(),
		logger:          logging.NewNop(),
		now:             time.Now,
		newID:           uuid.NewString,
		minHold:         domain.MinHoldTime,
		maxHold:         domain.MaxHoldTime,
		defaultHold:     domain.DefaultHoldTime,
		defaultDur:      domain.DefaultTransitionDuration,
		defaultEasing:   domain.DefaultEasing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Revision returns a counter bumped by every successful mutation.
func (s *Studio) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Artboards lists artboards that hold any data.
func (s *Studio) Artboards() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.boards))
	for id, b := range s.boards {
		if len(b.states)+len(b.transitions)+len(b.chains) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns the current view of an artboard.
func (s *Studio) Snapshot(artboardID string) Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.boards[artboardID]
	if b == nil {
		return Board{ArtboardID: artboardID}
	}
	return Board{
		ArtboardID:  artboardID,
		Revision:    b.revision,
		States:      b.states,
		Transitions: b.transitions,
		Chains:      b.chains,
	}
}

// Timeline compiles the artboard timeline, memoized on the artboard revision.
func (s *Studio) Timeline(artboardID string) domain.ComputedTimeline {
	snap := s.Snapshot(artboardID)
	return s.cache.Get(artboardID, snap.Revision, func() domain.ComputedTimeline {
		// States are kept sorted by order.
		return timeline.ComputeSequence(snap.States, snap.Transitions)
	})
}

func (s *Studio) board(artboardID string) *board {
	b := s.boards[artboardID]
	if b == nil {
		b = &board{}
		s.boards[artboardID] = b
	}
	return b
}

// touch records a mutation of b. Callers hold the write lock.
func (s *Studio) touch(b *board) {
	s.revision++
	b.revision = s.revision
}

func (s *Studio) clampHold(hold float64) float64 {
	clamped := domain.ClampHoldTime(hold, s.minHold, s.maxHold)
	if clamped != hold {
		s.logger.Warn("hold time clamped", "requested", hold, "applied", clamped)
	}
	return clamped
}
